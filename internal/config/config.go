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

// Config holds the handbookqa service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Search  SearchConfig  `yaml:"search"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	Answer  AnswerConfig  `yaml:"answer"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// OpenAIConfig holds Azure OpenAI connection settings shared by the
// embedding and chat deployments.
type OpenAIConfig struct {
	Endpoint  string           `yaml:"endpoint"`
	APIKey    string           `yaml:"api_key"`
	Embedding DeploymentConfig `yaml:"embedding"`
	Chat      DeploymentConfig `yaml:"chat"`
}

// DeploymentConfig names one hosted model deployment. Endpoint, when set,
// overrides the shared OpenAI endpoint (only honored for embeddings).
type DeploymentConfig struct {
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	Endpoint   string `yaml:"endpoint"`
}

// EmbeddingEndpoint returns the endpoint serving the embedding deployment:
// the per-deployment override when present, else the shared endpoint.
func (c OpenAIConfig) EmbeddingEndpoint() string {
	if c.Embedding.Endpoint != "" {
		return c.Embedding.Endpoint
	}
	return c.Endpoint
}

// SearchConfig holds the document search service settings.
type SearchConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Index      string `yaml:"index"`
	APIVersion string `yaml:"api_version"`
}

// CacheConfig holds the optional embedding cache store settings.
// The cache is disabled when no addresses are configured.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
}

// Enabled reports whether an embedding cache store is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// AnswerConfig holds answering defaults.
type AnswerConfig struct {
	Top int `yaml:"top"` // default number of passages retrieved per query
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
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Answering chains three remote calls; leave room for slow models.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.OpenAI.Embedding.APIVersion == "" {
		c.OpenAI.Embedding.APIVersion = "2023-05-15"
	}
	if c.OpenAI.Chat.APIVersion == "" {
		c.OpenAI.Chat.APIVersion = "2023-12-01-preview"
	}
	if c.Search.Index == "" {
		c.Search.Index = "employeehandbook"
	}
	if c.Search.APIVersion == "" {
		c.Search.APIVersion = "2023-11-01"
	}
	if c.Answer.Top <= 0 {
		c.Answer.Top = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.OpenAI.Endpoint == "" {
		return fmt.Errorf("openai.endpoint is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.OpenAI.Embedding.Deployment == "" {
		return fmt.Errorf("openai.embedding.deployment is required")
	}
	if c.OpenAI.Chat.Deployment == "" {
		return fmt.Errorf("openai.chat.deployment is required")
	}
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required")
	}
	if c.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required")
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
