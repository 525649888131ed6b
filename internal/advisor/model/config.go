package model

// ================ Config ================

// LLMConfig configures the completion provider. The provider speaks the
// OpenAI wire protocol (Groq), so BaseURL points at its compatibility
// endpoint and Model may name any identifier the provider currently serves.
type LLMConfig struct {
	APIKey  string `envconfig:"GROQ_API_KEY" required:"true"`
	BaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`

	// Model is an operator override; when empty the selector walks the
	// cached identifier and then the fixed fallback list.
	Model          string `envconfig:"LLM_MODEL"`
	ModelCachePath string `envconfig:"LLM_MODEL_CACHE_PATH" default:"working_model.txt"`

	MaxRetries int    `envconfig:"LLM_MAX_RETRIES" default:"3"`
	RetryDelay string `envconfig:"LLM_RETRY_DELAY" default:"1s"`

	Temperature float32 `envconfig:"LLM_TEMPERATURE" default:"0.4"`
	TopP        float32 `envconfig:"LLM_TOP_P" default:"0.9"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"800"`
}

// ConversationConfig bounds stored history. TTL applies only to the
// durable backend; in-memory history lives until process restart.
type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"168h"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"20"`
}

// KnowledgeConfig points at the static reference data. Empty paths fall
// back to the embedded defaults.
type KnowledgeConfig struct {
	CropDataPath     string `envconfig:"KB_PATH"`
	SystemPromptPath string `envconfig:"SYSTEM_PROMPT_PATH"`
}
