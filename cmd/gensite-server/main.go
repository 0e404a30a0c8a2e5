// cmd/gensite-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/blocks"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/catalog"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/database"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/contextstore"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/gateway"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/hero"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/intent"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/orchestrator"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/reasoning"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/server"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/signals"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting gensite server...",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry; the static catalog covers an outage ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Warn("elasticsearch unavailable, using static catalog", zap.Error(err))
		esClient = nil
	} else {
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Wire the generation pipeline ---
	gw := gateway.New(gateway.FromAppConfig(cfg.GenAI), log)

	cat := catalog.NewBuilder(&cfg.Catalog, catalogClient(esClient), log)
	classifier := intent.NewClassifier(gw, log)
	interpreter := signals.NewInterpreter(gw, classifier, log)
	planner := reasoning.NewEngine(gw, log)
	blockGen := blocks.NewGenerator(gw, log)
	heroGen := hero.NewGenerator(cat, blockGen, log)

	orch := orchestrator.New(classifier, interpreter, cat, planner, heroGen, blockGen, log)
	store := contextstore.New(redis.GetClient(), cfg.ContextStore, log)

	srv := server.New(
		&cfg.Server,
		orch,
		store,
		cfg.ContextStore.TTLSeconds,
		redis,
		esPinger(esClient),
		log,
	)

	httpServer := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     srv.Handler(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}

// catalogClient unwraps the ES client; a nil wrapper stays nil so the
// catalog takes its static path.
func catalogClient(c *database.ElasticsearchClient) *elasticsearch.Client {
	if c == nil {
		return nil
	}
	return c.Client
}

// esPinger avoids handing the health endpoint a typed-nil interface value.
func esPinger(c *database.ElasticsearchClient) server.Pinger {
	if c == nil {
		return nil
	}
	return c
}
