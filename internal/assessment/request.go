package assessment

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMinConcernChars is the shortest concern accepted, in runes.
const DefaultMinConcernChars = 20

// CommonConditions are the tags offered by the input pickers. Other tags are
// accepted as well.
var CommonConditions = []string{
	"Appendicitis",
	"Heart Conditions",
	"Cataract",
	"Gallstones",
	"Hernia",
	"Kidney Stones",
	"Tonsillitis",
	"Dental Problems",
	"Joint Pain",
}

const tagTrailer = "\n\nRelated conditions: "

// Request is one user submission. Build it with NewRequest.
type Request struct {
	concern string
	tags    []string
}

// NewRequest trims concern and de-duplicates tags case-insensitively,
// keeping the first spelling and order.
func NewRequest(concern string, tags []string) Request {
	seen := make(map[string]struct{}, len(tags))
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		k := strings.ToLower(t)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		clean = append(clean, t)
	}
	return Request{concern: strings.TrimSpace(concern), tags: clean}
}

func (r Request) ConcernText() string { return r.concern }

func (r Request) RelatedTags() []string { return append([]string(nil), r.tags...) }

// Validate enforces the minimum concern length. min <= 0 selects the default.
func (r Request) Validate(min int) error {
	if min <= 0 {
		min = DefaultMinConcernChars
	}
	if r.concern == "" {
		return &InputError{Reason: "concern text is empty"}
	}
	if n := utf8.RuneCountInString(r.concern); n < min {
		return &InputError{Reason: fmt.Sprintf("concern text has %d characters, at least %d are required", n, min)}
	}
	return nil
}

// PromptText is the concern with the tag trailer appended when tags exist.
func (r Request) PromptText() string {
	if len(r.tags) == 0 {
		return r.concern
	}
	return r.concern + tagTrailer + strings.Join(r.tags, ", ")
}
