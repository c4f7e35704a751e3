package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("REDIS_URL", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, StoreBackendSQL, cfg.StoreBackend)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 20*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, int64(25<<20), cfg.MaxMediaSize)
	assert.True(t, cfg.SeedContent)
	assert.False(t, cfg.GenerationEnabled())
	assert.False(t, cfg.MediaStorageEnabled())
	assert.False(t, cfg.SyncEnabled())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name: "redis store",
			envVars: map[string]string{
				"STORE_BACKEND":    "redis",
				"REDIS_URL":        "redis://localhost:6379/0",
				"REDIS_KEY_PREFIX": "test:",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, StoreBackendRedis, cfg.StoreBackend)
				assert.Equal(t, "test:", cfg.RedisKeyPrefix)
				assert.True(t, cfg.SyncEnabled())
			},
		},
		{
			name: "generation",
			envVars: map[string]string{
				"GEMINI_API_KEY":     "key",
				"GEMINI_MODEL":       "gemini-test",
				"GENERATION_TIMEOUT": "3s",
			},
			expected: func(cfg *Config) {
				assert.True(t, cfg.GenerationEnabled())
				assert.Equal(t, "gemini-test", cfg.GeminiModel)
				assert.Equal(t, 3*time.Second, cfg.GenerationTimeout)
			},
		},
		{
			name: "invalid values fall back to defaults",
			envVars: map[string]string{
				"GENERATION_TIMEOUT": "soon",
				"SEED_CONTENT":       "maybe",
				"MAX_MEDIA_SIZE_MB":  "lots",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, 20*time.Second, cfg.GenerationTimeout)
				assert.True(t, cfg.SeedContent)
				assert.Equal(t, int64(25<<20), cfg.MaxMediaSize)
			},
		},
		{
			name: "media storage",
			envVars: map[string]string{
				"S3_BUCKET":   "choir",
				"S3_ENDPOINT": "http://localhost:9000",
			},
			expected: func(cfg *Config) {
				assert.True(t, cfg.MediaStorageEnabled())
				assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}
			tt.expected(Load())
		})
	}
}
