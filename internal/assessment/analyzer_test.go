package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llm"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

const appendicitisConcern = "Severe right-side stomach pain for 3 days, doctor suspects appendicitis"

type staticResolver struct {
	cands []llmclient.ModelCandidate
	err   error
	calls int
}

func (s *staticResolver) Resolve(ctx context.Context, _ llm.Capability) ([]llmclient.ModelCandidate, error) {
	s.calls++
	return s.cands, s.err
}

func candidates(ids ...string) []llmclient.ModelCandidate {
	out := make([]llmclient.ModelCandidate, len(ids))
	for i, id := range ids {
		out[i] = llmclient.ModelCandidate{Identifier: id, Source: llmclient.SourceLiveCatalog}
	}
	out[len(out)-1].Source = llmclient.SourceStaticFallback
	return out
}

func newTestAnalyzer(t *testing.T, fake *llmclient.FakeClient, res CandidateResolver) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(fake, res, Options{})
	require.NoError(t, err)
	return a
}

func TestAnalyze_ScenarioA_FencedReply(t *testing.T) {
	fake := llmclient.NewFakeClient().
		Reply("gemini-2.5-flash", "```json\n{\"risk_level\":\"HIGH\",\"is_emergency\":true,\"condition_name\":\"Appendicitis\"}\n```")
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("gemini-2.5-flash")})

	out, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, []string{"Appendicitis"}))
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, appendicitisConcern)
	assert.Contains(t, calls[0].Prompt, "Related conditions: Appendicitis")
	assert.Equal(t, llmclient.DefaultGenerationConfig(), calls[0].Config)

	assert.Equal(t, RiskHigh, out.Result.RiskLevel)
	assert.True(t, out.Result.IsEmergency)
	assert.Equal(t, "Appendicitis", out.Result.ConditionName)
	assert.Equal(t, []string{}, out.Result.ActionSteps)
	assert.Equal(t, []string{}, out.Result.QuestionsForDoctor)
	assert.Equal(t, []string{}, out.Result.AlternativeTreatments)
	assert.Equal(t, []string{}, out.Result.WarningSigns)
	assert.Equal(t, []string{}, out.Result.LifestyleChanges)
	assert.Equal(t, "gemini-2.5-flash", out.Candidate.Identifier)
	assert.Equal(t, 1, out.Attempts)
}

func TestAnalyze_ScenarioB_NoBraces(t *testing.T) {
	fake := llmclient.NewFakeClient().ReplyAll("  I cannot help with that.  ")
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("m1", "m2")})

	out, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	var mal *MalformedResponseError
	require.ErrorAs(t, err, &mal)
	assert.Equal(t, "m1", mal.Model)
	assert.Equal(t, Outcome{}, out)
	assert.Len(t, fake.Calls(), 1, "a parse failure is not retried on other candidates")
	assert.Equal(t, "Error parsing response. Please try again.", UserNotice(err))
}

func TestAnalyze_ScenarioC_ShortInput(t *testing.T) {
	fake := llmclient.NewFakeClient().ReplyAll(`{}`)
	res := &staticResolver{cands: candidates("m1")}
	a := newTestAnalyzer(t, fake, res)

	_, err := a.Analyze(context.Background(), NewRequest("pain", nil))
	var in *InputError
	require.ErrorAs(t, err, &in)
	assert.Empty(t, fake.Calls())
	assert.Zero(t, res.calls)
	assert.Equal(t, KindInput, Classify(err))
}

func TestAnalyze_AdvancesPastFailingCandidates(t *testing.T) {
	fake := llmclient.NewFakeClient().
		Fail("gemini-1.5-pro", errors.New("404 model not found")).
		Reply("gemini-2.5-flash", `{"risk_level":"LOW"}`)
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("gemini-1.5-pro", "gemini-2.5-flash")})

	out, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	require.NoError(t, err)
	assert.Equal(t, RiskLow, out.Result.RiskLevel)
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, llmclient.SourceStaticFallback, out.Candidate.Source)
}

func TestAnalyze_AllCandidatesFail(t *testing.T) {
	fake := llmclient.NewFakeClient().
		Fail("m1", errors.New("unauthenticated")).
		Fail("m2", errors.New("deadline exceeded"))
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("m1", "m2")})

	_, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	var mu *ModelUnavailableError
	require.ErrorAs(t, err, &mu)
	assert.Equal(t, []string{"m1", "m2"}, mu.Attempts)
	assert.True(t, strings.Contains(err.Error(), "deadline exceeded"))
	assert.True(t, llmclient.IsTransportError(mu.Last))
	assert.Equal(t, KindModelUnavailable, Classify(err))
	assert.Len(t, fake.Calls(), 2)
}

func TestAnalyze_EmptyReplyIsExtractionError(t *testing.T) {
	fake := llmclient.NewFakeClient().ReplyAll("   \n ")
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("m1")})

	_, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	var ex *ExtractionError
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, KindExtraction, Classify(err))
}

func TestAnalyze_ResolverFailureIsConfiguration(t *testing.T) {
	fake := llmclient.NewFakeClient()
	a := newTestAnalyzer(t, fake, &staticResolver{err: llm.ErrNoFallbackModel})

	_, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	assert.Equal(t, KindConfiguration, Classify(err))
	assert.ErrorIs(t, err, llm.ErrNoFallbackModel)
}

func TestAnalyze_WithCatalogResolver(t *testing.T) {
	fake := llmclient.NewFakeClient().Reply(llm.DefaultFallbackModel, `{"urgency":"EMERGENCY"}`)
	resolver := llm.NewResolver(llmclient.StaticLister{Err: errors.New("offline")}, llm.ResolverOptions{Fallback: llm.DefaultFallbackModel})
	a := newTestAnalyzer(t, fake, resolver)

	out, err := a.Analyze(context.Background(), NewRequest(appendicitisConcern, nil))
	require.NoError(t, err)
	assert.Equal(t, UrgencyEmergency, out.Result.Urgency)
	assert.Equal(t, llmclient.SourceStaticFallback, out.Candidate.Source)
}

func TestAnalyze_CanceledContextStopsLoop(t *testing.T) {
	fake := llmclient.NewFakeClient().ReplyAll(`{}`)
	a := newTestAnalyzer(t, fake, &staticResolver{cands: candidates("m1", "m2", "m3")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, NewRequest(appendicitisConcern, nil))
	var mu *ModelUnavailableError
	require.ErrorAs(t, err, &mu)
	assert.Len(t, fake.Calls(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAnalyzer_RequiresCollaborators(t *testing.T) {
	_, err := NewAnalyzer(nil, &staticResolver{}, Options{})
	assert.Equal(t, KindConfiguration, Classify(err))
	_, err = NewAnalyzer(llmclient.NewFakeClient(), nil, Options{})
	assert.Equal(t, KindConfiguration, Classify(err))
}
