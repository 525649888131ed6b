package llm

import (
	"context"
	"errors"
	"os"
	"strings"

	logx "github.com/krishigpt/server/pkg/logger"
)

// ErrNoWorkingModel means every candidate probe failed. The process must
// not serve traffic in that state.
var ErrNoWorkingModel = errors.New("no working model available on the completion provider")

// Prober reports whether a model identifier is currently callable.
type Prober func(ctx context.Context, modelID string) error

// DefaultFallbackModels is the fixed preference order of identifiers
// known to be served. The provider rotates and deprecates names, so the
// list is a safety net behind the operator override and the cached pick.
var DefaultFallbackModels = []string{
	"llama3-70b-8192",
	"llama3-8b-8192",
	"mixtral-8x7b-32768",
}

// Selector resolves, once at startup, which model identifier to use for
// the rest of the process lifetime.
type Selector struct {
	// Override is the operator-supplied identifier; its probe failure is
	// not fatal, selection just falls through.
	Override string
	// CachePath persists the last successful fallback pick between
	// restarts. Empty disables caching.
	CachePath string
	// Fallbacks overrides DefaultFallbackModels when non-empty.
	Fallbacks []string
	Probe     Prober
}

// Select walks override → cached → fallback list, probing each candidate
// and adopting the first success. A success from the fallback list is
// persisted to CachePath for future startups. Returns ErrNoWorkingModel
// when everything fails.
func (s *Selector) Select(ctx context.Context) (string, error) {
	if s.Override != "" {
		if err := s.Probe(ctx, s.Override); err == nil {
			logx.Info().Str("model", s.Override).Msg("using operator-supplied model")
			return s.Override, nil
		} else {
			logx.Warn().Err(err).Str("model", s.Override).Msg("operator-supplied model failed probe, falling back")
		}
	}

	if cached := s.cachedModel(); cached != "" {
		if err := s.Probe(ctx, cached); err == nil {
			logx.Info().Str("model", cached).Msg("using previously cached model")
			return cached, nil
		} else {
			logx.Warn().Err(err).Str("model", cached).Msg("cached model failed probe, trying fallback list")
		}
	}

	fallbacks := s.Fallbacks
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbackModels
	}
	for _, m := range fallbacks {
		if err := s.Probe(ctx, m); err != nil {
			logx.Debug().Err(err).Str("model", m).Msg("fallback model failed probe")
			continue
		}
		s.cacheModel(m)
		logx.Info().Str("model", m).Msg("using fallback model")
		return m, nil
	}

	return "", ErrNoWorkingModel
}

func (s *Selector) cachedModel() string {
	if s.CachePath == "" {
		return ""
	}
	b, err := os.ReadFile(s.CachePath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// cacheModel is best-effort; a read-only filesystem only costs the next
// startup an extra probe.
func (s *Selector) cacheModel(m string) {
	if s.CachePath == "" {
		return
	}
	if err := os.WriteFile(s.CachePath, []byte(m), 0o644); err != nil {
		logx.Warn().Err(err).Str("path", s.CachePath).Msg("could not persist working model")
	}
}
