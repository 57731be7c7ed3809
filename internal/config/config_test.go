package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		OpenAI: OpenAIConfig{
			Endpoint:  "https://contoso.openai.azure.com",
			APIKey:    "test-key",
			Embedding: DeploymentConfig{Deployment: "text-embedding-ada-002"},
			Chat:      DeploymentConfig{Deployment: "gpt-4o"},
		},
		Search: SearchConfig{
			Endpoint: "https://contoso.search.windows.net",
			APIKey:   "search-key",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"openai endpoint", func(c *Config) { c.OpenAI.Endpoint = "" }},
		{"openai api key", func(c *Config) { c.OpenAI.APIKey = "" }},
		{"embedding deployment", func(c *Config) { c.OpenAI.Embedding.Deployment = "" }},
		{"chat deployment", func(c *Config) { c.OpenAI.Chat.Deployment = "" }},
		{"search endpoint", func(c *Config) { c.Search.Endpoint = "" }},
		{"search api key", func(c *Config) { c.Search.APIKey = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected error for missing %s", tc.name)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.OpenAI.Embedding.APIVersion != "2023-05-15" {
		t.Errorf("expected embedding api_version default, got %q", cfg.OpenAI.Embedding.APIVersion)
	}
	if cfg.OpenAI.Chat.APIVersion != "2023-12-01-preview" {
		t.Errorf("expected chat api_version default, got %q", cfg.OpenAI.Chat.APIVersion)
	}
	if cfg.Search.Index != "employeehandbook" {
		t.Errorf("expected default index, got %q", cfg.Search.Index)
	}
	if cfg.Search.APIVersion != "2023-11-01" {
		t.Errorf("expected search api_version default, got %q", cfg.Search.APIVersion)
	}
	if cfg.Answer.Top != 3 {
		t.Errorf("expected Top=3, got %d", cfg.Answer.Top)
	}
}

func TestEmbeddingEndpoint_Override(t *testing.T) {
	cfg := validConfig()
	if got := cfg.OpenAI.EmbeddingEndpoint(); got != cfg.OpenAI.Endpoint {
		t.Errorf("expected shared endpoint, got %q", got)
	}

	cfg.OpenAI.Embedding.Endpoint = "https://embed.openai.azure.com"
	if got := cfg.OpenAI.EmbeddingEndpoint(); got != "https://embed.openai.azure.com" {
		t.Errorf("expected override endpoint, got %q", got)
	}
}

func TestCacheEnabled(t *testing.T) {
	var cc CacheConfig
	if cc.Enabled() {
		t.Error("empty cache config must be disabled")
	}
	cc.Addrs = []string{"localhost:6379"}
	if !cc.Enabled() {
		t.Error("cache with addrs must be enabled")
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("HANDBOOKQA_TEST_VAR", "secret")
	defer os.Unsetenv("HANDBOOKQA_TEST_VAR")

	out := expandEnvVars([]byte("key: ${HANDBOOKQA_TEST_VAR}\nidx: ${HANDBOOKQA_TEST_MISSING:-employeehandbook}\n"))
	want := "key: secret\nidx: employeehandbook\n"
	if string(out) != want {
		t.Errorf("expandEnvVars = %q, want %q", out, want)
	}
}
