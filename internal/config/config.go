package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	APIBaseURL     string        `mapstructure:"VET_API_BASE_URL"`
	APITimeout     time.Duration `mapstructure:"VET_API_TIMEOUT"`
	APIInsecureTLS bool          `mapstructure:"VET_API_INSECURE_TLS"`
	EndpointsFile  string        `mapstructure:"ENDPOINTS_FILE"`

	// Store: memory | file | postgres
	Store     string `mapstructure:"STORE"`
	StateFile string `mapstructure:"STATE_FILE"`
	DBDSN     string `mapstructure:"DB_DSN"`

	MutationStrategy string `mapstructure:"MUTATION_STRATEGY"`
	Locale           string `mapstructure:"LOCALE"`
	CurrencySymbol   string `mapstructure:"CURRENCY_SYMBOL"`
	ImageMaxBytes    int    `mapstructure:"IMAGE_MAX_BYTES"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
	"VET_API_BASE_URL", "VET_API_TIMEOUT", "VET_API_INSECURE_TLS", "ENDPOINTS_FILE",
	"STORE", "STATE_FILE", "DB_DSN",
	"MUTATION_STRATEGY", "LOCALE", "CURRENCY_SYMBOL", "IMAGE_MAX_BYTES",
}

// Load lee .env (si existe) y variables de entorno.
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom permite inyectar un viper (tests) y un archivo opcional.
func LoadFrom(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("env")
	}
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "vetadmin")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("VET_API_BASE_URL", "https://localhost:7167/api")
	v.SetDefault("VET_API_TIMEOUT", "10s")
	v.SetDefault("VET_API_INSECURE_TLS", false)
	v.SetDefault("STORE", "file")
	v.SetDefault("STATE_FILE", ".vetadmin/state.json")
	v.SetDefault("MUTATION_STRATEGY", "optimistic")
	v.SetDefault("LOCALE", "es-MX")
	v.SetDefault("CURRENCY_SYMBOL", "$")
	v.SetDefault("IMAGE_MAX_BYTES", 2<<20)

	// Bind explícito para que Unmarshal vea las env vars
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env opcional
	if file != "" {
		_ = v.ReadInConfig()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.MutationStrategy = strings.ToLower(strings.TrimSpace(cfg.MutationStrategy))

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate revisa combinaciones que no pueden arrancar.
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.APIBaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("VET_API_BASE_URL must be an absolute url, got %q", c.APIBaseURL)
	}

	switch c.Store {
	case "memory":
	case "file":
		if strings.TrimSpace(c.StateFile) == "" {
			return fmt.Errorf("STATE_FILE is required when STORE=file")
		}
	case "postgres":
		if strings.TrimSpace(c.DBDSN) == "" {
			return fmt.Errorf("DB_DSN is required when STORE=postgres")
		}
	default:
		return fmt.Errorf("STORE must be \"memory\", \"file\" or \"postgres\", got %q", c.Store)
	}

	switch c.MutationStrategy {
	case "optimistic", "refetch":
	default:
		return fmt.Errorf("MUTATION_STRATEGY must be \"optimistic\" or \"refetch\", got %q", c.MutationStrategy)
	}

	if c.ImageMaxBytes <= 0 {
		return fmt.Errorf("IMAGE_MAX_BYTES must be positive")
	}
	return nil
}
