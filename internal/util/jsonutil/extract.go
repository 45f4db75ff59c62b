package jsonutil

import (
	"strings"
	"unicode"
)

// fenceWindow is how far into a reply an opening code fence may start and
// still be treated as wrapping the whole reply.
const fenceWindow = 20

// StripFence removes an opening markdown code fence (with an optional
// language tag) found within the first fenceWindow bytes, along with any
// short preamble before it and the closing fence. ok is false when no such
// fence is present.
func StripFence(text string) (inner string, ok bool) {
	text = strings.TrimSpace(text)
	idx := strings.Index(text, "```")
	if idx < 0 || idx > fenceWindow {
		return text, false
	}
	if brace := strings.IndexByte(text, '{'); brace >= 0 && brace < idx {
		return text, false
	}
	body := text[idx+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		// Single-line fence: ```json {...}```
		body = strings.TrimLeftFunc(body, unicode.IsLetter)
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

// ObjectSpan returns the byte offsets of the first '{' and the last '}' in
// text. This is a greedy heuristic, not a parser: it assumes one top-level
// object and no stray braces in surrounding prose.
func ObjectSpan(text string) (start, end int, ok bool) {
	start = strings.IndexByte(text, '{')
	end = strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || end < start {
		return 0, 0, false
	}
	return start, end, true
}

// ExtractObject recovers the embedded JSON object from a model reply.
// The first '{' to the last '}' of the whole trimmed reply wins, so fences
// and prose around the object never cut into it. A reply without a brace
// pair has its leading fence stripped, or is returned trimmed and unchanged,
// so the caller's parse step reports the failure.
func ExtractObject(raw string) string {
	text := strings.TrimSpace(raw)
	if start, end, ok := ObjectSpan(text); ok {
		return text[start : end+1]
	}
	if inner, ok := StripFence(text); ok {
		return inner
	}
	return text
}
