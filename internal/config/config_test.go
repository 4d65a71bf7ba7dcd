package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EWaste-App/internal/domain/model"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SUGGESTION_STORE", "SUBMIT_DELAY_MS", "NOMINATIM_RATE_PER_SEC", "KAFKA_BROKER", "SUGGESTION_KEY", "GEOCODE_TIMEOUT_SECONDS", "SUGGESTION_FILE_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreFile, cfg.SuggestionStore)
	assert.Equal(t, model.SuggestionsStorageKey, cfg.SuggestionKey)
	assert.Equal(t, time.Second, cfg.SubmitDelay)
	assert.Equal(t, 1.0, cfg.Nominatim.RequestsPerSecond)
	assert.Equal(t, 10*time.Second, cfg.Nominatim.Timeout)
	assert.False(t, cfg.KafkaEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SUGGESTION_STORE", "MEMORY")
	t.Setenv("SUBMIT_DELAY_MS", "0")
	t.Setenv("NOMINATIM_RATE_PER_SEC", "0.5")
	t.Setenv("KAFKA_BROKER", "localhost:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.SuggestionStore)
	assert.Equal(t, time.Duration(0), cfg.SubmitDelay)
	assert.Equal(t, 0.5, cfg.Nominatim.RequestsPerSecond)
	assert.True(t, cfg.KafkaEnabled())
}

func TestFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("SUBMIT_DELAY_MS", "soon")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("SUBMIT_DELAY_MS", "")
	t.Setenv("NOMINATIM_RATE_PER_SEC", "fast")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestValidate_StoreRequirements(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{SuggestionStore: StoreMemory}, false},
		{"file", Config{SuggestionStore: StoreFile, FileStoreDir: "data"}, false},
		{"fileでディレクトリなし", Config{SuggestionStore: StoreFile}, true},
		{"postgresでDSNなし", Config{SuggestionStore: StorePostgres}, true},
		{"postgres", Config{SuggestionStore: StorePostgres, Postgres: PostgresConfig{DSN: "postgres://x"}}, false},
		{"supabaseでキーなし", Config{SuggestionStore: StoreSupabase, Supabase: SupabaseConfig{URL: "https://x.supabase.co"}}, true},
		{"firestoreでプロジェクトなし", Config{SuggestionStore: StoreFirestore}, true},
		{"s3で認証情報なし", Config{SuggestionStore: StoreS3, MinIO: MinIOConfig{Endpoint: "localhost:9000"}}, true},
		{"不明な保存先", Config{SuggestionStore: "redis"}, true},
		{"負の待ち時間", Config{SuggestionStore: StoreMemory, SubmitDelay: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
