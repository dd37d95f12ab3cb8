package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budgetsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "budget_app", cfg.Schema())
	assert.Equal(t, "postgres://postgres:@localhost:5432/money_stuff?sslmode=disable", cfg.ConnectionString())
	assert.Equal(t, "Citi_files/*.CSV", cfg.Ingest.CitiGlob)
	assert.Equal(t, 15*time.Second, cfg.Classifier.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	type testCase struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "SQLite",
			env:  map[string]string{"DB_DRIVER": "sqlite", "DB_PATH": "/tmp/budget.db"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "main", cfg.Schema())
				assert.Contains(t, cfg.ConnectionString(), "file:/tmp/budget.db?")
			},
		},
		{
			name: "IngestAndClassifier",
			env: map[string]string{
				"INGEST_KEEP_FILES":    "true",
				"CLASSIFIER_PROVIDER":  "gemini",
				"CLASSIFIER_RATE":      "0.5",
				"CORS_ALLOWED_ORIGINS": "http://a.test,http://b.test",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.True(t, cfg.Ingest.KeepFiles)
				assert.Equal(t, config.ProviderGemini, cfg.Classifier.Provider)
				assert.InDelta(t, 0.5, cfg.Classifier.Rate, 1e-9)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
			},
		},
		{
			name:    "UnknownDriver",
			env:     map[string]string{"DB_DRIVER": "mysql"},
			wantErr: true,
		},
		{
			name:    "BadDuration",
			env:     map[string]string{"CLASSIFIER_TIMEOUT": "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := config.Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
