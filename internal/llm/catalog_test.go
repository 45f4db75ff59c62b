package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/llmclient"
)

func fallbackOnly(id string) []llmclient.ModelCandidate {
	return []llmclient.ModelCandidate{{Identifier: id, Source: llmclient.SourceStaticFallback}}
}

func TestResolve_LiveMatchesThenFallback(t *testing.T) {
	lister := llmclient.StaticLister{Models: []string{
		"models/gemini-2.0-flash",
		"models/text-embedding-004",
		"models/gemini-2.5-pro",
		"models/gemini-2.5-flash-image",
		"models/gemma-3-27b-it",
	}}
	r := NewResolver(lister, ResolverOptions{Fallback: "gemini-2.5-flash"})

	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, []llmclient.ModelCandidate{
		{Identifier: "gemini-2.0-flash", Source: llmclient.SourceLiveCatalog},
		{Identifier: "gemini-2.5-pro", Source: llmclient.SourceLiveCatalog},
		{Identifier: "gemini-2.5-flash", Source: llmclient.SourceStaticFallback},
	}, got)
}

func TestResolve_FallbackAlreadyLiveIsNotDuplicated(t *testing.T) {
	lister := llmclient.StaticLister{Models: []string{"models/gemini-2.5-flash", "models/gemini-2.5-flash"}}
	r := NewResolver(lister, ResolverOptions{Fallback: "gemini-2.5-flash"})

	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, []llmclient.ModelCandidate{
		{Identifier: "gemini-2.5-flash", Source: llmclient.SourceLiveCatalog},
	}, got)
}

func TestResolve_EnumerationFailureYieldsFallback(t *testing.T) {
	r := NewResolver(llmclient.StaticLister{Err: errors.New("401 unauthenticated")}, ResolverOptions{Fallback: "gemini-2.5-flash"})

	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, fallbackOnly("gemini-2.5-flash"), got)
}

func TestResolve_NoMatchesYieldsFallback(t *testing.T) {
	r := NewResolver(llmclient.StaticLister{Models: []string{"models/text-embedding-004", "models/gemma-3"}}, ResolverOptions{Fallback: "models/gemini-2.5-flash"})

	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, fallbackOnly("gemini-2.5-flash"), got)
}

func TestResolve_EmptyCatalogAndNilLister(t *testing.T) {
	r := NewResolver(llmclient.StaticLister{}, ResolverOptions{Fallback: "gemini-2.5-flash"})
	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, fallbackOnly("gemini-2.5-flash"), got)

	r = NewResolver(nil, ResolverOptions{Fallback: "gemini-2.5-flash"})
	got, err = r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	assert.Equal(t, fallbackOnly("gemini-2.5-flash"), got)
}

func TestResolve_MissingFallbackIsConfigurationFault(t *testing.T) {
	r := NewResolver(llmclient.StaticLister{Models: []string{"gemini-2.5-pro"}}, ResolverOptions{})
	_, err := r.Resolve(context.Background(), CapabilityGeneral)
	assert.ErrorIs(t, err, ErrNoFallbackModel)
}

func TestResolve_MaxLiveAndCustomFamilies(t *testing.T) {
	lister := llmclient.StaticLister{Models: []string{"gemini-a-pro", "gemini-b-pro", "gemini-c-pro", "gemini-d-flash"}}
	r := NewResolver(lister, ResolverOptions{Fallback: "gemini-2.5-flash", Families: []string{" PRO "}, MaxLive: 2})

	got, err := r.Resolve(context.Background(), CapabilityGeneral)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "gemini-a-pro", got[0].Identifier)
	assert.Equal(t, "gemini-b-pro", got[1].Identifier)
	assert.Equal(t, llmclient.SourceStaticFallback, got[2].Source)
}
