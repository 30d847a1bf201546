package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "NOTECARDS"

// serverKeys lists every key of Config so AutomaticEnv can resolve them during Unmarshal.
var serverKeys = []string{
	"server.port",
	"server.log_level",
	"server.cors_allowed_origins",
	"server.generate_rate_per_minute",
	"database.url",
	"llm.provider",
	"llm.gemini_api_key",
	"llm.huggingface_api_key",
	"llm.model_name",
	"llm.huggingface_model_url",
	"llm.prompt_template_path",
	"llm.max_cards",
	"llm.max_note_chars",
	"llm.request_timeout_seconds",
	"llm.max_retries",
	"llm.retry_delay_seconds",
	"payment.intasend_secret_key",
	"payment.intasend_publishable_key",
	"payment.intasend_env",
	"payment.currency",
}

var clientKeys = []string{
	"api_base_url",
	"timeout_seconds",
	"log_level",
}

// Load reads the backend configuration from environment variables, an
// optional .env file in the working directory and an optional config.yaml.
// Environment variables take precedence over values from config files.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := newViper("config")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", "*")
	v.SetDefault("server.generate_rate_per_minute", 10)
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.huggingface_model_url", "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-v0.1")
	v.SetDefault("llm.max_cards", 3)
	v.SetDefault("llm.max_note_chars", 1500)
	v.SetDefault("llm.request_timeout_seconds", 45)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("payment.intasend_env", "sandbox")
	v.SetDefault("payment.currency", "KES")

	var cfg Config
	if err := unmarshal(v, serverKeys, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient reads the command-line client configuration. It uses the same
// sources as Load with a separate config file name (notecards.yaml).
func LoadClient() (*ClientConfig, error) {
	v := newViper("notecards")

	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("timeout_seconds", 60)
	v.SetDefault("log_level", "warn")

	var cfg ClientConfig
	if err := unmarshal(v, clientKeys, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(configName string) *viper.Viper {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper, keys []string, out any) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(out); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
