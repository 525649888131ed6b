package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDecommissioned = errors.New("model_decommissioned")

// probeFor returns a Prober that accepts only the listed identifiers and
// records every probe in order.
func probeFor(probed *[]string, working ...string) Prober {
	ok := map[string]bool{}
	for _, m := range working {
		ok[m] = true
	}
	return func(_ context.Context, modelID string) error {
		*probed = append(*probed, modelID)
		if ok[modelID] {
			return nil
		}
		return errDecommissioned
	}
}

// TestSelect_OverrideWins verifies a working operator override is used
// without touching cache or fallbacks.
func TestSelect_OverrideWins(t *testing.T) {
	var probed []string
	s := &Selector{
		Override: "llama3-70b-8192",
		Probe:    probeFor(&probed, "llama3-70b-8192"),
	}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3-70b-8192", m)
	assert.Equal(t, []string{"llama3-70b-8192"}, probed)
}

// TestSelect_OverrideFailureFallsThrough verifies a dead override is not
// fatal; selection continues down the fallback list.
func TestSelect_OverrideFailureFallsThrough(t *testing.T) {
	var probed []string
	s := &Selector{
		Override: "retired-model",
		Probe:    probeFor(&probed, "llama3-8b-8192"),
	}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3-8b-8192", m)
	assert.Equal(t, []string{"retired-model", "llama3-70b-8192", "llama3-8b-8192"}, probed)
}

// TestSelect_CachedModelPreferred verifies a cached identifier is probed
// before the fallback list.
func TestSelect_CachedModelPreferred(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "working_model.txt")
	require.NoError(t, os.WriteFile(cache, []byte("mixtral-8x7b-32768\n"), 0o644))

	var probed []string
	s := &Selector{
		CachePath: cache,
		Probe:     probeFor(&probed, "mixtral-8x7b-32768", "llama3-70b-8192"),
	}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", m)
	assert.Equal(t, []string{"mixtral-8x7b-32768"}, probed)
}

// TestSelect_StaleCacheFallsThrough verifies a cached model that no
// longer probes is skipped and the new pick replaces it in the cache.
func TestSelect_StaleCacheFallsThrough(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "working_model.txt")
	require.NoError(t, os.WriteFile(cache, []byte("retired-model"), 0o644))

	var probed []string
	s := &Selector{
		CachePath: cache,
		Probe:     probeFor(&probed, "llama3-8b-8192"),
	}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3-8b-8192", m)

	b, err := os.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, "llama3-8b-8192", string(b))
}

// TestSelect_FallbackOrder verifies the fixed preference order of the
// default list.
func TestSelect_FallbackOrder(t *testing.T) {
	var probed []string
	s := &Selector{Probe: probeFor(&probed, "mixtral-8x7b-32768")}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", m)
	assert.Equal(t, DefaultFallbackModels, probed)
}

// TestSelect_AllFail verifies ErrNoWorkingModel when nothing probes.
func TestSelect_AllFail(t *testing.T) {
	var probed []string
	s := &Selector{
		Override: "retired-model",
		Probe:    probeFor(&probed),
	}

	_, err := s.Select(context.Background())
	assert.ErrorIs(t, err, ErrNoWorkingModel)
	assert.Len(t, probed, 1+len(DefaultFallbackModels))
}

// TestSelect_CustomFallbacks verifies an explicit list replaces the
// default one.
func TestSelect_CustomFallbacks(t *testing.T) {
	var probed []string
	s := &Selector{
		Fallbacks: []string{"a", "b"},
		Probe:     probeFor(&probed, "b"),
	}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", m)
	assert.Equal(t, []string{"a", "b"}, probed)
}

// TestSelect_NoCachePath verifies selection works with caching disabled.
func TestSelect_NoCachePath(t *testing.T) {
	var probed []string
	s := &Selector{Probe: probeFor(&probed, "llama3-70b-8192")}

	m, err := s.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "llama3-70b-8192", m)
}
