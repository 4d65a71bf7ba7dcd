package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"EWaste-App/internal/config"
	"EWaste-App/internal/domain/registry"
	domainRepo "EWaste-App/internal/domain/repository"
	"EWaste-App/internal/domain/service"
	"EWaste-App/internal/handler"
	"EWaste-App/internal/infrastructure/database"
	"EWaste-App/internal/infrastructure/events"
	"EWaste-App/internal/infrastructure/firestore"
	"EWaste-App/internal/infrastructure/geocoding"
	"EWaste-App/internal/infrastructure/storage"
	"EWaste-App/internal/repository"
	"EWaste-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 設定の読み込みに失敗: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 提案リストの保存先
	store, closeStore, err := newKeyValueStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ 保存先の初期化に失敗 (%s): %v", cfg.SuggestionStore, err)
	}
	defer closeStore()
	log.Printf("✅ 提案リストの保存先: %s (key: %s)", cfg.SuggestionStore, cfg.SuggestionKey)

	suggestionOpts := []usecase.SuggestionOption{usecase.WithSubmitDelay(cfg.SubmitDelay)}
	if cfg.KafkaEnabled() {
		publisher := events.NewKafkaSuggestionPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("⚠️ Kafka publisherのクローズに失敗: %v", err)
			}
		}()
		suggestionOpts = append(suggestionOpts, usecase.WithEventPublisher(publisher))
	}

	// Dependency injection
	centers := registry.All()
	geocoder := geocoding.NewNominatimProvider(geocoding.NominatimConfig{
		BaseURL:           cfg.Nominatim.URL,
		UserAgent:         cfg.Nominatim.UserAgent,
		Timeout:           cfg.Nominatim.Timeout,
		RequestsPerSecond: cfg.Nominatim.RequestsPerSecond,
	})
	renderer := service.NewMapRenderer(centers, geocoder)
	suggestionsRepo := repository.NewKVSuggestionsRepository(store, cfg.SuggestionKey)

	router := handler.NewRouter(handler.Handlers{
		Centers:     handler.NewCentersHandler(centers),
		Maps:        handler.NewMapHandler(usecase.NewMapUseCase(renderer)),
		Suggestions: handler.NewSuggestionsHandler(usecase.NewSuggestionUseCase(suggestionsRepo, suggestionOpts...)),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		bound := registry.Bounds()
		log.Printf("🚀 EWaste-App server starting on :%s (%d centers, bounds: %v - %v)", cfg.Port, len(centers), bound.Min, bound.Max)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ サーバーの起動に失敗: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 終了シグナルを受信しました。シャットダウンします...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ シャットダウン中にエラー: %v", err)
	}
	log.Println("✅ サーバーを停止しました")
}

// newKeyValueStore は設定に応じたKVストアと後片付け用の関数を返す
func newKeyValueStore(ctx context.Context, cfg *config.Config) (domainRepo.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.SuggestionStore {
	case config.StoreMemory:
		log.Println("⚠️ メモリ保存のため、再起動すると提案リストは消えます")
		return repository.NewMemoryKeyValueStore(), noop, nil

	case config.StoreFile:
		store, err := repository.NewFileKeyValueStore(cfg.FileStoreDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.StorePostgres:
		client, err := database.NewPostgreSQLClientWithRetry(ctx, cfg.Postgres.DSN, 5, 2*time.Second)
		if err != nil {
			return nil, nil, err
		}
		if err := client.EnsureKeyValueTable(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repository.NewPostgresKeyValueStore(client), closer("PostgreSQL", client), nil

	case config.StoreSupabase:
		client, err := database.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		if err != nil {
			return nil, nil, err
		}
		if err := client.HealthCheck(); err != nil {
			return nil, nil, err
		}
		return repository.NewSupabaseKeyValueStore(client), noop, nil

	case config.StoreFirestore:
		client, err := firestore.NewFirestoreClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewFirestoreKeyValueStore(client.GetClient()), closer("Firestore", client), nil

	case config.StoreS3:
		client, err := storage.NewMinIOClient(ctx, cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewS3KeyValueStore(client), noop, nil
	}

	return nil, nil, fmt.Errorf("不明なSUGGESTION_STOREです: %s", cfg.SuggestionStore)
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Printf("⚠️ %s接続のクローズに失敗: %v", name, err)
		}
	}
}
