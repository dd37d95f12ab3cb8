package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"BudgetSync"`
		Port      int    `envconfig:"PORT" default:"8080"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"money_stuff"`
		Schema   string `envconfig:"DB_SCHEMA" default:"budget_app"`
		// Path is only used by the sqlite driver.
		Path string `envconfig:"DB_PATH" default:"budget.db"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Ingest struct {
		Person     string `envconfig:"INGEST_PERSON" default:"Hector Hernandez"`
		AppleGlob  string `envconfig:"INGEST_APPLE_GLOB" default:"apple_files/*.csv"`
		ChaseGlob  string `envconfig:"INGEST_CHASE_GLOB" default:"chase_files/*.pdf"`
		AmexGlob   string `envconfig:"INGEST_AMEX_GLOB" default:"Amex_files/*.csv"`
		CitiGlob   string `envconfig:"INGEST_CITI_GLOB" default:"Citi_files/*.CSV"`
		VendorFile string `envconfig:"INGEST_VENDOR_FILE"`
		KeepFiles  bool   `envconfig:"INGEST_KEEP_FILES" default:"false"`
	}

	Classifier struct {
		Provider      string        `envconfig:"CLASSIFIER_PROVIDER" default:"openai"`
		OpenAIKey     string        `envconfig:"OPENAI_API_KEY"`
		OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4.1-nano"`
		OpenAIBaseURL string        `envconfig:"OPENAI_BASE_URL"`
		GeminiKey     string        `envconfig:"GEMINI_API_KEY"`
		GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		Timeout       time.Duration `envconfig:"CLASSIFIER_TIMEOUT" default:"15s"`
		Rate          float64       `envconfig:"CLASSIFIER_RATE" default:"2"`
		Burst         int           `envconfig:"CLASSIFIER_BURST" default:"1"`
		CacheTTL      time.Duration `envconfig:"CLASSIFIER_CACHE_TTL" default:"1h"`
	}
}

// ConnectionString returns the DSN for the configured driver.
func (c *Config) ConnectionString() string {
	if c.DB.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.DB.Path)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Schema returns the namespace tables live in. SQLite has a single "main" schema.
func (c *Config) Schema() string {
	if c.DB.Driver == DriverSQLite {
		return "main"
	}

	return c.DB.Schema
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return &cfg, nil
}
