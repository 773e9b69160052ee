package model

// ================ Config ================
type ConversationConfig struct {
	// Store selects the session backend: "memory" or "redis".
	Store string `envconfig:"CONVERSATION_STORE" default:"memory"`
	// TTL of an idle session; "0s" keeps sessions until they are reset.
	TTL        string `envconfig:"CONVERSATION_TTL" default:"0s"`
	MaxHistory int    `envconfig:"CONVERSATION_MAX_HISTORY" default:"20"`
}

type PipelineConfig struct {
	// Mode is the default pipeline variant: "fast" or "full".
	Mode string `envconfig:"PIPELINE_MODE" default:"fast"`
	// ContextTurns is how many recent turns are quoted to every stage.
	ContextTurns int    `envconfig:"PIPELINE_CONTEXT_TURNS" default:"5"`
	StageTimeout string `envconfig:"PIPELINE_STAGE_TIMEOUT" default:"30s"`
}

type StageModelConfig struct {
	Model       string  `envconfig:"STAGE_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"STAGE_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"STAGE_TEMPERATURE" default:"0.2"`
}

type ReviewModelConfig struct {
	Model       string  `envconfig:"REVIEW_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"REVIEW_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"REVIEW_TEMPERATURE" default:"0.4"`
}
