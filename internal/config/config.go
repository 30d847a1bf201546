package config

// Config holds all backend server configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Payment  PaymentConfig  `mapstructure:"payment"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins is a comma-separated origin list; "*" allows any origin.
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins" validate:"required"`
	// GenerateRatePerMinute limits calls to the generation endpoint. Zero disables the limit.
	GenerateRatePerMinute int `mapstructure:"generate_rate_per_minute" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LLM provider names.
const (
	ProviderGemini      = "gemini"
	ProviderHuggingFace = "huggingface"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider           string `mapstructure:"provider"              validate:"required,oneof=gemini huggingface"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key"        validate:"required_if=Provider gemini"`
	HuggingFaceAPIKey  string `mapstructure:"huggingface_api_key"   validate:"required_if=Provider huggingface"`
	ModelName          string `mapstructure:"model_name"            validate:"required_if=Provider gemini"`
	HuggingFaceURL     string `mapstructure:"huggingface_model_url" validate:"omitempty,url"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
	MaxCards           int    `mapstructure:"max_cards"             validate:"gt=0,lte=20"`
	MaxNoteChars       int    `mapstructure:"max_note_chars"        validate:"gt=0"`
	// RequestTimeoutSeconds bounds a single call to the provider.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	// MaxRetries is the number of extra attempts after a transient provider failure.
	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// PaymentConfig contains the IntaSend integration settings.
type PaymentConfig struct {
	IntaSendSecretKey      string `mapstructure:"intasend_secret_key"      validate:"required"`
	IntaSendPublishableKey string `mapstructure:"intasend_publishable_key"`
	IntaSendEnv            string `mapstructure:"intasend_env"             validate:"required,oneof=sandbox live"`
	Currency               string `mapstructure:"currency"                 validate:"required,len=3"`
}

// ClientConfig holds settings for the command-line client.
type ClientConfig struct {
	APIBaseURL     string `mapstructure:"api_base_url"    validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
	LogLevel       string `mapstructure:"log_level"       validate:"required,oneof=debug info warn error"`
}
