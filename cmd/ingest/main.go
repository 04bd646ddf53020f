// Command ingest chunks text documents, embeds the chunks and loads them
// into the vector database.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/config"
	dbRedis "github.com/kailas-cloud/askflow/internal/db/redis"
	"github.com/kailas-cloud/askflow/internal/domain"
	"github.com/kailas-cloud/askflow/internal/ingest"
	logpkg "github.com/kailas-cloud/askflow/internal/logger"
	"github.com/kailas-cloud/askflow/internal/metrics"
	"github.com/kailas-cloud/askflow/internal/repository/embcache"
	"github.com/kailas-cloud/askflow/internal/repository/vectordb"
	openaiEmb "github.com/kailas-cloud/askflow/internal/transport/openai"
)

const upsertBatchSize = 100

func main() {
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

	metrics.RegisterLLMMetrics()

	logger.Info("Starting document ingestion",
		zap.String("documents_path", cfg.Data.DocumentsPath),
		zap.Int("chunk_size", cfg.Data.ChunkSize),
		zap.Int("chunk_overlap", cfg.Data.ChunkOverlap),
	)

	files, err := ingest.DiscoverFiles(cfg.Data.DocumentsPath)
	if err != nil {
		logger.Error("Failed to discover documents", zap.Error(err))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("No documents found, nothing to ingest",
			zap.String("path", cfg.Data.DocumentsPath))
		return
	}

	var chunks []ingest.Chunk
	for _, path := range files {
		fileChunks, err := ingest.ChunkFile(path, cfg.Data.ChunkSize, cfg.Data.ChunkOverlap)
		if err != nil {
			logger.Error("Failed to chunk file", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		chunks = append(chunks, fileChunks...)
	}
	logger.Info("Documents chunked",
		zap.Int("files", len(files)),
		zap.Int("chunks", len(chunks)),
	)

	embedder := buildEmbedder(cfg, logger)

	store, err := vectordb.New(cfg.VectorDB.Addr, cfg.VectorDB.Collection)
	if err != nil {
		logger.Error("Failed to connect to vector database", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()

	if _, err := store.EnsureCollection(ctx, cfg.VectorDB.Dimension); err != nil {
		logger.Error("Failed to ensure collection", zap.Error(err))
		os.Exit(1)
	}

	var batch []vectordb.Point
	nextID := uint64(1)
	for _, chunk := range chunks {
		result, err := embedder.Embed(ctx, chunk.Text)
		if err != nil {
			logger.Error("Failed to embed chunk",
				zap.String("source", chunk.Source),
				zap.Int("chunk_index", chunk.Index),
				zap.Error(err),
			)
			os.Exit(1)
		}

		batch = append(batch, vectordb.Point{
			ID:        nextID,
			Embedding: result.Embedding,
			Payload: map[string]any{
				"text":        chunk.Text,
				"source":      chunk.Source,
				"filename":    chunk.Filename,
				"chunk_index": chunk.Index,
			},
		})
		nextID++

		if len(batch) >= upsertBatchSize {
			if err := store.Upsert(ctx, batch); err != nil {
				logger.Error("Failed to upsert batch", zap.Error(err))
				os.Exit(1)
			}
			batch = batch[:0]
		}
	}

	if err := store.Upsert(ctx, batch); err != nil {
		logger.Error("Failed to upsert batch", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Ingestion complete",
		zap.Int("chunks", len(chunks)),
		zap.String("collection", cfg.VectorDB.Collection),
	)
}

// buildEmbedder assembles the embedder chain: OpenAI-compatible provider,
// optionally wrapped in a Redis-backed cache.
func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Logger:  logger,
	})

	if len(cfg.Embedding.Cache.Addrs) == 0 {
		return base
	}

	cache, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Embedding.Cache.Addrs,
		Password: cfg.Embedding.Cache.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache unavailable, continuing without it", zap.Error(err))
		return base
	}

	ttl := time.Duration(cfg.Embedding.Cache.TTLHours) * time.Hour
	return embcache.New(base, cache, ttl, metrics.EmbeddingCacheTotal, logger)
}
