package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/assessment"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

// DefaultCapacity bounds how many sessions a Store keeps.
const DefaultCapacity = 1024

// State is the last completed analysis of one caller. A State is created on a
// successful analysis and cleared on reset; nothing else mutates it.
type State struct {
	ID           string                    `json:"session_id"`
	Completed    bool                      `json:"completed"`
	Model        *llmclient.ModelCandidate `json:"model,omitempty"`
	Result       *assessment.Result        `json:"result,omitempty"`
	Presentation *assessment.Presentation  `json:"presentation,omitempty"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// New builds the state for a completed analysis. id is kept when non-empty.
func New(id string, out assessment.Outcome, now time.Time) State {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	res := out.Result.Clone()
	pres := assessment.Present(res)
	cand := out.Candidate
	return State{
		ID:           id,
		Completed:    true,
		Model:        &cand,
		Result:       &res,
		Presentation: &pres,
		UpdatedAt:    now.UTC(),
	}
}

func (s State) clone() State {
	if s.Result != nil {
		r := s.Result.Clone()
		s.Result = &r
		p := assessment.Present(r)
		s.Presentation = &p
	}
	if s.Model != nil {
		m := *s.Model
		s.Model = &m
	}
	return s
}

// ErrUnknownSession is returned when a caller names a session id the store
// never issued or has already cleared.
var ErrUnknownSession = errors.New("session: unknown session id")

// Store holds session states keyed by id, evicting the least recently used.
// Ids are issued by the store only.
type Store struct {
	mu    sync.Mutex
	cache *lru.Cache[string, State]
	now   func() time.Time
}

func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, State](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: cache, now: time.Now}, nil
}

// Commit stores a fresh state for out and returns it. An empty id allocates
// a new session; any other id must name a live session, which is replaced
// wholesale.
func (s *Store) Commit(id string, out assessment.Outcome) (State, error) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && !s.cache.Contains(id) {
		return State{}, ErrUnknownSession
	}
	st := New(id, out, s.now())
	s.cache.Add(st.ID, st)
	return st.clone(), nil
}

// Get returns a copy of the stored state.
func (s *Store) Get(id string) (State, bool) {
	st, ok := s.cache.Get(strings.TrimSpace(id))
	if !ok {
		return State{}, false
	}
	return st.clone(), true
}

// Reset clears the session. It reports whether the session existed.
func (s *Store) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(strings.TrimSpace(id))
}

func (s *Store) Len() int { return s.cache.Len() }
