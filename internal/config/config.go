package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the askflow configuration, shared by the server and the
// setup/ingestion binaries.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	LLM        LLMConfig        `yaml:"llm"`
	VectorDB   VectorDBConfig   `yaml:"vectordb"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Automation AutomationConfig `yaml:"automation"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// LLMConfig holds inference service settings.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	TimeoutSec  int     `yaml:"timeout_sec"` // 0 = no timeout
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// VectorDBConfig holds vector database settings for the setup and ingest
// binaries. Addr is the gRPC endpoint.
type VectorDBConfig struct {
	Addr       string `yaml:"addr"`
	Collection string `yaml:"collection"`
	Dimension  int    `yaml:"dimension"`
}

// EmbeddingConfig holds embedding provider and cache settings.
type EmbeddingConfig struct {
	BaseURL string      `yaml:"base_url"`
	APIKey  string      `yaml:"api_key"`
	Model   string      `yaml:"model"`
	Cache   CacheConfig `yaml:"cache"`
}

// CacheConfig holds the Redis embedding cache settings. Empty addrs disable
// the cache.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// AutomationConfig holds workflow-automation tool settings.
type AutomationConfig struct {
	Host              string            `yaml:"host"`
	APIKey            string            `yaml:"api_key"`
	ReadinessAttempts int               `yaml:"readiness_attempts"`
	ReadinessDelaySec int               `yaml:"readiness_delay_sec"`
	Workflows         map[string]string `yaml:"workflows"` // name -> definition file
}

// DataConfig holds ingestion input settings.
type DataConfig struct {
	DocumentsPath string `yaml:"documents_path"`
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Generate calls block the handler for the full upstream duration.
		c.HTTP.WriteTimeoutSec = 300
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "mistral"
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = 120
	}
	if c.VectorDB.Addr == "" {
		c.VectorDB.Addr = "localhost:6334"
	}
	if c.VectorDB.Collection == "" {
		c.VectorDB.Collection = "documents"
	}
	if c.VectorDB.Dimension <= 0 {
		c.VectorDB.Dimension = 384
	}
	if c.Embedding.Cache.TTLHours <= 0 {
		c.Embedding.Cache.TTLHours = 24 * 30
	}
	if c.Automation.ReadinessAttempts <= 0 {
		c.Automation.ReadinessAttempts = 30
	}
	if c.Automation.ReadinessDelaySec <= 0 {
		c.Automation.ReadinessDelaySec = 5
	}
	if c.Data.DocumentsPath == "" {
		c.Data.DocumentsPath = "data/documents"
	}
	if c.Data.ChunkSize <= 0 {
		c.Data.ChunkSize = 1000
	}
	if c.Data.ChunkOverlap <= 0 {
		c.Data.ChunkOverlap = 200
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.Data.ChunkOverlap >= c.Data.ChunkSize {
		return fmt.Errorf("data.chunk_overlap (%d) must be smaller than data.chunk_size (%d)",
			c.Data.ChunkOverlap, c.Data.ChunkSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
