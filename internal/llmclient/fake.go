package llmclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrUnknownModel = errors.New("model not found")

// FakeCall records one Generate invocation on a FakeClient.
type FakeCall struct {
	Model  string
	Prompt string
	Config GenerationConfig
}

type fakeReply struct {
	text string
	err  error
}

// FakeClient returns scripted replies per model identifier for offline use and tests.
// Models without a script fail with a TransportError wrapping ErrUnknownModel,
// unless a default reply is set.
type FakeClient struct {
	mu       sync.Mutex
	replies  map[string]fakeReply
	fallback *fakeReply
	calls    []FakeCall
}

func NewFakeClient() *FakeClient {
	return &FakeClient{replies: map[string]fakeReply{}}
}

// Reply scripts model to answer with text.
func (f *FakeClient) Reply(model, text string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[NormalizeModelName(model)] = fakeReply{text: text}
	return f
}

// Fail scripts model to fail with err.
func (f *FakeClient) Fail(model string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[NormalizeModelName(model)] = fakeReply{err: err}
	return f
}

// ReplyAll answers every unscripted model with text.
func (f *FakeClient) ReplyAll(text string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = &fakeReply{text: text}
	return f
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, prompt string, cfg GenerationConfig, cand ModelCandidate) (RawModelResponse, error) {
	model := NormalizeModelName(cand.Identifier)
	f.mu.Lock()
	f.calls = append(f.calls, FakeCall{Model: model, Prompt: prompt, Config: cfg})
	reply, ok := f.replies[model]
	if !ok && f.fallback != nil {
		reply, ok = *f.fallback, true
	}
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return RawModelResponse{}, NewTransportError(model, err)
	}
	if !ok {
		return RawModelResponse{}, NewTransportError(model, fmt.Errorf("%w: %s", ErrUnknownModel, model))
	}
	if reply.err != nil {
		if IsTransportError(reply.err) {
			return RawModelResponse{}, reply.err
		}
		return RawModelResponse{}, NewTransportError(model, reply.err)
	}
	return RawModelResponse{Text: reply.text, Candidate: cand}, nil
}

// Calls returns a copy of the recorded invocations in order.
func (f *FakeClient) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// StaticLister serves a fixed catalog, or Err when set.
type StaticLister struct {
	Models []string
	Err    error
}

func (s StaticLister) ListModels(ctx context.Context) ([]string, error) {
	if s.Err != nil {
		return nil, NewTransportError("", s.Err)
	}
	out := make([]string, len(s.Models))
	copy(out, s.Models)
	return out, nil
}
