// Command setup-vectordb creates the document collection in the vector
// database if it does not exist yet.
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/config"
	logpkg "github.com/kailas-cloud/askflow/internal/logger"
	"github.com/kailas-cloud/askflow/internal/repository/vectordb"
)

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

	logger.Info("Setting up vector database",
		zap.String("addr", cfg.VectorDB.Addr),
		zap.String("collection", cfg.VectorDB.Collection),
		zap.Int("dimension", cfg.VectorDB.Dimension),
	)

	store, err := vectordb.New(cfg.VectorDB.Addr, cfg.VectorDB.Collection)
	if err != nil {
		logger.Error("Failed to connect to vector database", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := store.EnsureCollection(ctx, cfg.VectorDB.Dimension)
	if err != nil {
		logger.Error("Failed to ensure collection", zap.Error(err))
		os.Exit(1)
	}

	if created {
		logger.Info("Collection created", zap.String("collection", cfg.VectorDB.Collection))
	} else {
		logger.Info("Collection already exists", zap.String("collection", cfg.VectorDB.Collection))
	}
}
