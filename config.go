package klingo

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the production Kling AI API endpoint.
const DefaultBaseURL = "https://api.klingai.com"

// Config holds the client configuration.
//
// APIKey is either a plain bearer token or an "access_key,secret_key" pair;
// the latter is exchanged for a short-lived signed token on every request.
type Config struct {
	APIKey     string `mapstructure:"api_key" validate:"required"`
	BaseURL    string `mapstructure:"base_url" validate:"required,url"`
	Timeout    int    `mapstructure:"timeout" validate:"gte=10,lte=120"` // seconds
	MaxRetries int    `mapstructure:"max_retries" validate:"gte=0,lte=5"`
}

// DefaultConfig returns a Config with production defaults for the given key.
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Timeout:    30,
		MaxRetries: 3,
	}
}

// ConfigFromEnv loads configuration from KLING_* environment variables
// (KLING_API_KEY, KLING_BASE_URL, KLING_TIMEOUT, KLING_MAX_RETRIES).
func ConfigFromEnv() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KLING")
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", 30)
	v.SetDefault("max_retries", 3)

	// AutomaticEnv alone does not surface unbound keys through Unmarshal.
	for _, key := range []string{"api_key", "base_url", "timeout", "max_retries"} {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrap(err, "failed to bind environment variable")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	return validateStruct(c)
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
