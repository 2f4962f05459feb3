// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultModelTimeout bounds each baseline model invocation.
	defaultModelTimeout = 30 * time.Second
	// defaultEngineTimeout bounds each coherence engine request.
	defaultEngineTimeout = 60 * time.Second
	// defaultHealthTimeout bounds the pre-run engine health probe.
	defaultHealthTimeout = 5 * time.Second
	// defaultRagPrefix is prepended to prompts for the retrieval-augmented baseline.
	defaultRagPrefix = "Based on web search results, answer this query: "
)

// Model backend types accepted in the configuration.
const (
	ModelTypeCLI    = "cli"
	ModelTypeOpenAI = "openai"
)

// Config represents the top-level application configuration.
type Config struct {
	Model       ModelConfig  `json:"model"`
	Engine      EngineConfig `json:"engine"`
	RagPrefix   string       `json:"ragPrefix,omitempty"`
	DatasetsDir string       `json:"datasetsDir,omitempty"`
	ResultsDir  string       `json:"resultsDir,omitempty"`
	ReportPath  string       `json:"reportPath,omitempty"`
	Families    []string     `json:"families"`
	Debug       bool         `json:"debug"`
	TUI         bool         `json:"tui"`
	LogFile     string       `json:"logFile,omitempty"`
	ConfigPath  string       `json:"-"`
}

// ModelConfig describes the baseline language model backend.
type ModelConfig struct {
	Name           string `json:"name"`
	Binary         string `json:"binary,omitempty"`
	Type           string `json:"type,omitempty"`
	URL            string `json:"url,omitempty"`
	APIKey         string `json:"apiKey,omitempty"`
	TimeoutSeconds int    `json:"timeout,omitempty"`
}

// EngineConfig describes the coherence validation engine endpoint.
type EngineConfig struct {
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout,omitempty"`
}

// ModelTimeout returns the per-call timeout for baseline model invocations.
func (c Config) ModelTimeout() time.Duration {
	if c.Model.TimeoutSeconds <= 0 {
		return defaultModelTimeout
	}
	return time.Duration(c.Model.TimeoutSeconds) * time.Second
}

// EngineTimeout returns the per-call timeout for engine requests.
func (c Config) EngineTimeout() time.Duration {
	if c.Engine.TimeoutSeconds <= 0 {
		return defaultEngineTimeout
	}
	return time.Duration(c.Engine.TimeoutSeconds) * time.Second
}

// HealthTimeout returns the timeout for the engine health probe.
func (c Config) HealthTimeout() time.Duration {
	return defaultHealthTimeout
}

// RetrievalPrefix returns the prompt prefix used by the retrieval baseline.
func (c Config) RetrievalPrefix() string {
	if strings.TrimSpace(c.RagPrefix) == "" {
		return defaultRagPrefix
	}
	return c.RagPrefix
}

// ModelBinary returns the command used to invoke the local model runner.
func (c Config) ModelBinary() string {
	if b := strings.TrimSpace(c.Model.Binary); b != "" {
		return b
	}
	return "ollama"
}

// ModelType returns the configured model backend type, defaulting to "cli".
func (c Config) ModelType() string {
	if t := strings.TrimSpace(c.Model.Type); t != "" {
		return strings.ToLower(t)
	}
	return ModelTypeCLI
}

// DatasetsPath returns the directory holding task family query fixtures.
func (c Config) DatasetsPath() string {
	if d := strings.TrimSpace(c.DatasetsDir); d != "" {
		return d
	}
	return "datasets"
}

// ResultsPath returns the directory where run snapshots are written.
func (c Config) ResultsPath() string {
	if d := strings.TrimSpace(c.ResultsDir); d != "" {
		return d
	}
	return "results"
}

// ReportFilePath returns the output path for the rendered HTML page.
func (c Config) ReportFilePath() string {
	if p := strings.TrimSpace(c.ReportPath); p != "" {
		return p
	}
	return "docs/index.html"
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "veritas.log"
}

// QueryEndpoint returns the engine URL used for benchmark queries.
func (c Config) QueryEndpoint() string {
	return strings.TrimRight(c.Engine.URL, "/") + "/api/v1/query"
}

// HealthEndpoint returns the engine URL used for the pre-run health probe.
func (c Config) HealthEndpoint() string {
	return strings.TrimRight(c.Engine.URL, "/") + "/health"
}

// Validate checks that the configuration can drive a benchmark run.
func (c Config) Validate() error {
	if len(c.Families) == 0 {
		return errors.New("config must list at least one task family")
	}
	switch c.ModelType() {
	case ModelTypeCLI:
		if strings.TrimSpace(c.Model.Name) == "" {
			return errors.New("model.name is required for the cli backend")
		}
	case ModelTypeOpenAI:
		if strings.TrimSpace(c.Model.URL) == "" {
			return errors.New("model.url is required for the openai backend")
		}
		if strings.TrimSpace(c.Model.Name) == "" {
			return errors.New("model.name is required for the openai backend")
		}
	default:
		return fmt.Errorf("unknown model type %q (expected %q or %q)", c.Model.Type, ModelTypeCLI, ModelTypeOpenAI)
	}
	if strings.TrimSpace(c.Engine.URL) == "" {
		return errors.New("engine.url is required")
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
