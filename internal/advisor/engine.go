package advisor

import (
	"context"
	"time"

	"github.com/krishigpt/server/internal/advisor/llm"
	"github.com/krishigpt/server/internal/advisor/model"
	"github.com/krishigpt/server/internal/advisor/prompts"
	"github.com/krishigpt/server/internal/advisor/stage"
	"github.com/krishigpt/server/internal/kb"
	"github.com/krishigpt/server/internal/metrics"
	logx "github.com/krishigpt/server/pkg/logger"
	"github.com/cloudwego/eino/schema"
)

// Completer sends an assembled prompt to the selected model.
type Completer interface {
	Complete(ctx context.Context, model string, msgs []*schema.Message, sampling llm.SamplingConfig) (string, error)
}

// Config wires the engine's collaborators. Model must already be
// resolved by the selector before the engine serves traffic.
type Config struct {
	KB           *kb.KnowledgeBase
	Store        model.ConversationStore
	Completer    Completer
	Model        string
	SystemPrompt string
	Sampling     llm.SamplingConfig
	MaxRetries   int
	RetryDelay   time.Duration
}

// Engine orchestrates one conversation turn: detect crop and intent,
// build the knowledge context, assemble prompt plus history, call the
// model with bounded retries, and persist the exchange.
type Engine struct {
	kb           *kb.KnowledgeBase
	store        model.ConversationStore
	llm          Completer
	model        string
	systemPrompt string
	sampling     llm.SamplingConfig
	maxRetries   int
	retryDelay   time.Duration

	now func() time.Time
}

func New(cfg Config) *Engine {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Sampling == (llm.SamplingConfig{}) {
		cfg.Sampling = llm.DefaultSampling()
	}
	return &Engine{
		kb:           cfg.KB,
		store:        cfg.Store,
		llm:          cfg.Completer,
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		sampling:     cfg.Sampling,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
		now:          time.Now,
	}
}

// Model returns the identifier resolved at startup.
func (e *Engine) Model() string {
	return e.model
}

// StoreDegraded reports whether history runs on process memory only.
func (e *Engine) StoreDegraded() bool {
	return e.store.Degraded()
}

// Respond answers one farmer query. It never fails from the caller's
// point of view: exhausted retries yield the fixed apology string and
// leave history untouched.
func (e *Engine) Respond(ctx context.Context, userID, query string, meta *model.Meta) string {
	logx.Info().Str("user_id", userID).Str("query", truncate(query, 80)).Msg("processing query")

	history := e.store.History(ctx, userID)

	systemPrompt := e.systemPrompt
	if note, ok := e.stageNote(query, meta); ok {
		systemPrompt = note + "\n\n" + systemPrompt
	}
	systemPrompt = prompts.Augment(systemPrompt, prompts.BuildContext(query, e.kb))

	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(systemPrompt))
	msgs = append(msgs, history...)
	msgs = append(msgs, schema.UserMessage(query))

	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		start := e.now()
		answer, err := e.llm.Complete(ctx, e.model, msgs, e.sampling)
		if err == nil {
			logx.Info().
				Str("user_id", userID).
				Int("attempt", attempt).
				Dur("elapsed", e.now().Sub(start)).
				Msg("response generated")
			e.store.Append(ctx, userID,
				schema.UserMessage(query),
				schema.AssistantMessage(answer, nil),
			)
			return answer
		}

		logx.Error().Err(err).Str("user_id", userID).Int("attempt", attempt).Msg("completion attempt failed")
		if attempt < e.maxRetries {
			metrics.LLMRetriesTotal.Inc()
			time.Sleep(e.retryDelay)
		}
	}

	metrics.LLMExhaustedTotal.Inc()
	return prompts.Apology
}

// ClearHistory drops the stored conversation for the user.
func (e *Engine) ClearHistory(ctx context.Context, userID string) {
	e.store.Clear(ctx, userID)
}

// stageNote derives the growth-stage line from caller-supplied meta.
// The meta crop key wins over text detection; with only a sowing date
// the crop is inferred from the query. Anything unresolvable just means
// no note, never an error.
func (e *Engine) stageNote(query string, meta *model.Meta) (string, bool) {
	if meta == nil || meta.SowingDate == "" {
		return "", false
	}

	cropKey := meta.CropKey
	if cropKey == "" {
		if detected, _, ok := e.kb.DetectCrop(query); ok {
			cropKey = detected
		}
	}
	if cropKey == "" {
		return "", false
	}

	result, ok := stage.Estimate(cropKey, meta.SowingDate, e.now())
	if !ok {
		return "", false
	}

	name := cropKey
	if info, exists := e.kb.Crops[cropKey]; exists && info.DisplayName != "" {
		name = info.DisplayName
	}
	return prompts.StageNote(name, result), true
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
