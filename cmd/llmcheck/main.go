// Command llmcheck sends a one-shot prompt to the inference service and
// prints the response, verifying the LLM is reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/config"
	logpkg "github.com/kailas-cloud/askflow/internal/logger"
	"github.com/kailas-cloud/askflow/internal/metrics"
	"github.com/kailas-cloud/askflow/internal/transport/ollama"
)

const responsePreviewLen = 200

func main() {
	prompt := flag.String("prompt", "Reply with a single short sentence.", "prompt to send")
	flag.Parse()

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

	client := ollama.NewClient(&ollama.Config{
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	ctx := context.Background()

	start := time.Now()
	response, err := client.GenerateWithOptions(ctx, *prompt, "", &ollama.Options{
		Temperature: cfg.LLM.Temperature,
		NumPredict:  cfg.LLM.MaxTokens,
	})
	if err != nil {
		logger.Error("LLM check failed",
			zap.String("base_url", cfg.LLM.BaseURL),
			zap.String("model", cfg.LLM.Model),
			zap.Error(err),
		)
		os.Exit(1)
	}

	preview := response
	if len(preview) > responsePreviewLen {
		preview = preview[:responsePreviewLen] + "..."
	}

	fmt.Printf("model: %s\nlatency: %s\nresponse: %s\n",
		cfg.LLM.Model, time.Since(start).Round(time.Millisecond), preview)
}
