// Command setup-workflows registers workflow definitions with the automation
// tool, skipping workflows that are already present.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/automation"
	"github.com/kailas-cloud/askflow/internal/config"
	logpkg "github.com/kailas-cloud/askflow/internal/logger"
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

	if cfg.Automation.Host == "" {
		logger.Error("automation.host is not configured")
		os.Exit(1)
	}
	if len(cfg.Automation.Workflows) == 0 {
		logger.Warn("No workflows configured, nothing to register")
		return
	}

	client := automation.NewClient(&automation.Config{
		Host:   cfg.Automation.Host,
		APIKey: cfg.Automation.APIKey,
		Logger: logger,
	})

	ctx := context.Background()

	delay := time.Duration(cfg.Automation.ReadinessDelaySec) * time.Second
	if err := client.WaitUntilReady(ctx, cfg.Automation.ReadinessAttempts, delay); err != nil {
		logger.Error("Automation tool not ready", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Automation tool is ready", zap.String("host", cfg.Automation.Host))

	existingNames := make(map[string]bool)
	existing, err := client.ListWorkflows(ctx)
	if err != nil {
		// Existence checks degrade to "assume absent", as creation is
		// rejected server-side for duplicates anyway.
		logger.Warn("Failed to list workflows", zap.Error(err))
	}
	for _, wf := range existing {
		existingNames[wf.Name] = true
	}

	failures := 0
	for key, path := range cfg.Automation.Workflows {
		definition, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read workflow definition",
				zap.String("workflow", key), zap.String("path", path), zap.Error(err))
			failures++
			continue
		}

		// Workflows are identified by the name embedded in the definition,
		// not by the config key.
		var meta struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(definition, &meta); err != nil {
			logger.Error("Workflow definition is not valid JSON",
				zap.String("workflow", key), zap.String("path", path), zap.Error(err))
			failures++
			continue
		}

		if existingNames[meta.Name] {
			logger.Info("Workflow already registered, skipping", zap.String("name", meta.Name))
			continue
		}

		if err := client.CreateWorkflow(ctx, definition); err != nil {
			logger.Error("Failed to create workflow",
				zap.String("name", meta.Name), zap.Error(err))
			failures++
			continue
		}
		logger.Info("Workflow registered", zap.String("name", meta.Name))
	}

	if failures > 0 {
		logger.Error("Workflow registration finished with failures", zap.Int("failures", failures))
		os.Exit(1)
	}
}
