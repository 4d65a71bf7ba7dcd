package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"EWaste-App/internal/domain/model"
)

// 提案リストの保存先
const (
	StoreMemory    = "memory"
	StoreFile      = "file"
	StorePostgres  = "postgres"
	StoreSupabase  = "supabase"
	StoreFirestore = "firestore"
	StoreS3        = "s3"
)

// Config アプリケーション全体の設定
type Config struct {
	Port    string
	GinMode string

	Nominatim NominatimConfig

	SuggestionStore string
	SuggestionKey   string
	SubmitDelay     time.Duration
	FileStoreDir    string

	Postgres  PostgresConfig
	Supabase  SupabaseConfig
	Firestore FirestoreConfig
	MinIO     MinIOConfig
	Kafka     KafkaConfig
}

// NominatimConfig ジオコーディングAPIの設定
type NominatimConfig struct {
	URL               string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// PostgresConfig PostgreSQL直接接続の設定
type PostgresConfig struct {
	DSN string
}

// SupabaseConfig Supabaseの設定
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// FirestoreConfig Firestoreの設定
type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

// MinIOConfig S3互換ストレージの設定
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// KafkaConfig 提案イベント送信の設定（Brokerが空なら送信しない）
type KafkaConfig struct {
	Broker string
	Topic  string
}

// Load は .env と環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .envファイルが見つかりません。システムの環境変数を使用します")
	}
	return FromEnv()
}

// FromEnv は環境変数のみから設定を組み立てる
func FromEnv() (*Config, error) {
	rps, err := floatEnv("NOMINATIM_RATE_PER_SEC", 1)
	if err != nil {
		return nil, err
	}
	timeoutSec, err := intEnv("GEOCODE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	delayMs, err := intEnv("SUBMIT_DELAY_MS", int(model.DefaultSubmitDelay/time.Millisecond))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:    stringEnv("PORT", "8080"),
		GinMode: stringEnv("GIN_MODE", "release"),
		Nominatim: NominatimConfig{
			URL:               stringEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:         stringEnv("NOMINATIM_USER_AGENT", "ewaste-app/1.0"),
			RequestsPerSecond: rps,
			Timeout:           time.Duration(timeoutSec) * time.Second,
		},
		SuggestionStore: strings.ToLower(stringEnv("SUGGESTION_STORE", StoreFile)),
		SuggestionKey:   stringEnv("SUGGESTION_KEY", model.SuggestionsStorageKey),
		SubmitDelay:     time.Duration(delayMs) * time.Millisecond,
		FileStoreDir:    stringEnv("SUGGESTION_FILE_DIR", "data"),
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Supabase: SupabaseConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		},
		MinIO: MinIOConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
			Bucket:    stringEnv("MINIO_BUCKET", "ewaste-suggestions"),
		},
		Kafka: KafkaConfig{
			Broker: os.Getenv("KAFKA_BROKER"),
			Topic:  stringEnv("SUGGESTION_EVENTS_TOPIC", "center-suggestions"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 保存先ごとに必須の設定があるか確認する
func (c *Config) Validate() error {
	if c.SubmitDelay < 0 {
		return fmt.Errorf("SUBMIT_DELAY_MSは0以上である必要があります")
	}

	switch c.SuggestionStore {
	case StoreMemory:
	case StoreFile:
		if c.FileStoreDir == "" {
			return fmt.Errorf("SUGGESTION_FILE_DIR環境変数が設定されていません")
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL環境変数が設定されていません")
		}
	case StoreSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL環境変数が設定されていません")
		}
		if c.Supabase.AnonKey == "" {
			return fmt.Errorf("SUPABASE_ANON_KEY環境変数が設定されていません")
		}
	case StoreFirestore:
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID環境変数が設定されていません")
		}
	case StoreS3:
		if c.MinIO.Endpoint == "" || c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEYのいずれかが設定されていません")
		}
	default:
		return fmt.Errorf("不明なSUGGESTION_STOREです: %s", c.SuggestionStore)
	}
	return nil
}

// KafkaEnabled 提案イベントを送信するか
func (c *Config) KafkaEnabled() bool {
	return c.Kafka.Broker != ""
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%sは整数である必要があります: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%sは数値である必要があります: %w", key, err)
	}
	return f, nil
}
