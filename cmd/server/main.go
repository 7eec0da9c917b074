// @title        AI Coding Assistant API
// @version      1.0
// @description  REST and WebSocket facade over external model providers for
// @description  code generation, debugging, security scanning and related tasks.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/devcopilot/assistant-api/internal/api"
	"github.com/devcopilot/assistant-api/internal/core/service"
	"github.com/devcopilot/assistant-api/internal/gateway"
	mongostore "github.com/devcopilot/assistant-api/internal/infrastructure/db/mongo"
	redisstore "github.com/devcopilot/assistant-api/internal/infrastructure/db/redis"
	"github.com/devcopilot/assistant-api/internal/infrastructure/queue"
	"github.com/devcopilot/assistant-api/internal/pkg/config"
	"github.com/devcopilot/assistant-api/internal/realtime"
	"github.com/devcopilot/assistant-api/internal/search"
	"github.com/devcopilot/assistant-api/pkg/logger"
)

func main() {
	// Local development convenience; the file is absent in deployed environments.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongostore.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Model provider ---
	var provider gateway.Provider
	switch cfg.Provider {
	case "openai":
		provider = gateway.NewOpenAIClient(cfg.OpenAIAPIKey)
	default:
		provider = gateway.NewGeminiClient(cfg.GeminiAPIKey)
	}
	retrying := gateway.WithRetry(provider)
	gw := gateway.New(retrying, logger.Component("gateway"))

	// --- Semantic search ---
	embedder := redisstore.NewEmbeddingCache(rdb, retrying)
	index := search.NewIndex(embedder, logger.Component("search"))

	snippetRepo := mongostore.NewSnippetRepository(db)
	if snippets, err := snippetRepo.All(ctx); err != nil {
		log.Warn().Err(err).Msg("search index warm-up skipped")
	} else {
		index.Warm(ctx, snippets)
		log.Info().Int("entries", index.Len()).Msg("search index warmed")
	}

	// --- History pipeline ---
	historyService := service.NewHistoryService(
		snippetRepo,
		mongostore.NewDebugSessionRepository(db),
		mongostore.NewScanRepository(db),
		index,
	)
	dispatcher := queue.NewDispatcher(cfg.HistoryWorkers, historyService, logger.Component("history"))
	dispatcher.Start(ctx)

	// --- Realtime relay ---
	hub := realtime.NewHub(gw, logger.Component("realtime"))
	go hub.Run(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.TokenExpiry) * time.Minute,
		Gateway:   gw,
		Index:     index,
		History:   dispatcher,
		Hub:       hub,
		Log:       log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("provider", cfg.Provider).
		Msg("assistant api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
