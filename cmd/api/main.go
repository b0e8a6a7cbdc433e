package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/studlink-api/internal/config"
	"github.com/studlink-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/studlink-api/internal/infrastructure/jwt"
	"github.com/studlink-api/internal/infrastructure/mail"
	"github.com/studlink-api/internal/infrastructure/memstore"
	s3infra "github.com/studlink-api/internal/infrastructure/s3"
	transporthttp "github.com/studlink-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	setupLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// Challenge store: DynamoDB with TTL eviction in production, in-memory
	// with a periodic sweeper for local development.
	var challenges transporthttp.ChallengeStore
	if cfg.ChallengeStore == "memory" {
		store := memstore.NewChallengeStore()
		store.StartSweeper(ctx, time.Minute)
		challenges = store
	} else {
		challenges = dynamo.NewChallengeRepo(dynamoClient, cfg.DynamoTables.Challenges)
	}

	s3Client := s3infra.NewClient(cfg)

	deps := &transporthttp.Deps{
		ChallengeStore: challenges,
		UserRepo:       dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		MessageRepo:    dynamo.NewMessageRepo(dynamoClient, cfg.DynamoTables.Messages),
		CommunityRepo:  dynamo.NewCommunityRepo(dynamoClient, cfg.DynamoTables.Communities),
		ObjectStore:    s3infra.NewStore(s3Client, cfg.S3BucketName),
		Mailer:         mail.NewMailer(cfg),
		JWTProvider:    jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	slog.Info("server stopped")
}

// setupLogger configures the global slog logger: colorized output in
// development, JSON elsewhere.
func setupLogger(env string) {
	var handler slog.Handler
	if env == "development" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}
