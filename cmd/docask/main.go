package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"go.uber.org/zap"

	"github.com/docask/docask/internal/config"
	"github.com/docask/docask/internal/db"
	dbRedis "github.com/docask/docask/internal/db/redis"
	"github.com/docask/docask/internal/domain"
	logpkg "github.com/docask/docask/internal/logger"
	"github.com/docask/docask/internal/metrics"
	"github.com/docask/docask/internal/repository/docs"
	"github.com/docask/docask/internal/repository/embcache"
	openaiTransport "github.com/docask/docask/internal/transport/openai"
	"github.com/docask/docask/internal/usecase/answer"
	embeddinguc "github.com/docask/docask/internal/usecase/embedding"
	"github.com/docask/docask/internal/usecase/retrieval"
	"github.com/docask/docask/internal/version"
)

const embeddingProvider = "openai"

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docask",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("documents_dir", cfg.Documents.Dir),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("chat_model", cfg.Chat.Model),
	)

	// Register embedding metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()

	// Ctrl-C cancels in-flight provider calls.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openCacheStore(ctx, cfg.Cache, logger)
	if store != nil {
		defer store.Close()
	}

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, logger)
		defer shutdownMetrics(srv, logger)
	}

	a := newApp(cfg, store, logger)
	rootCmd := NewRootCmd(version.Version, a)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// app wires the services behind the root command.
type app struct {
	loader    *docs.Loader
	retriever *retrieval.Service
	answerer  *answer.Service
	logger    *zap.Logger
}

func newApp(cfg config.Config, store db.Store, logger *zap.Logger) *app {
	queryEmbedder, docEmbedder := buildEmbedders(cfg, store, logger)

	retriever := retrieval.New(queryEmbedder, docEmbedder, logger).
		WithMinScore(cfg.Retrieval.MinScore).
		WithMaxConcurrent(cfg.Embedding.MaxConcurrent)

	generator := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
		APIKey:      cfg.Chat.APIKey,
		BaseURL:     cfg.Chat.BaseURL,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		Logger:      logger,
	})

	return &app{
		loader:    docs.NewLoader(cfg.Documents.Dir, logger),
		retriever: retriever,
		answerer:  answer.New(generator, logger),
		logger:    logger,
	}
}

// buildEmbedders assembles the decorator chain: OpenAI -> Cached -> Fallback.
// Query and documents share one base embedder (same embedding space);
// only the document side degrades to a zero vector on failure — a query
// embedding failure must abort retrieval instead.
func buildEmbedders(cfg config.Config, store db.Store, logger *zap.Logger) (query, doc domain.Embedder) {
	base := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:             cfg.Embedding.APIKey,
		BaseURL:            cfg.Embedding.BaseURL,
		Model:              cfg.Embedding.Model,
		Dimensions:         cfg.Embedding.Dimensions,
		Provider:           embeddingProvider,
		InsecureSkipVerify: cfg.Embedding.InsecureSkipVerify,
		Logger:             logger,
	})

	var embedder domain.Embedder = base
	if store != nil {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		embedder = embcache.New(base, store, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	return embedder, embeddinguc.NewFallbackEmbedder(embedder, embeddingProvider, cfg.Embedding.Model, logger)
}

// openCacheStore connects the optional embedding cache. Cache problems
// never block a run: on any failure the run continues uncached.
func openCacheStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) db.Store {
	if len(cfg.Addrs) == 0 {
		return nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache unavailable, continuing without", zap.Error(err))
		return nil
	}

	if err := store.WaitForReady(ctx, 5*time.Second); err != nil {
		logger.Warn("Embedding cache not ready, continuing without", zap.Error(err))
		store.Close()
		return nil
	}

	logger.Info("Embedding cache connected", zap.Strings("addrs", cfg.Addrs))
	return store
}

func shutdownMetrics(srv *http.Server, logger *zap.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Metrics listener shutdown error", zap.Error(err))
	}
}
