package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig(writeConfig(t, "server:\n  address: \":9090\"\n"))

	if cfg.Server.Address != ":9090" {
		t.Errorf("server address: got %q, want :9090", cfg.Server.Address)
	}
	if cfg.Crawl.PageLimit != 20 {
		t.Errorf("crawl page limit default: got %d, want 20", cfg.Crawl.PageLimit)
	}
	if cfg.Crawl.PollInterval != 2*time.Second {
		t.Errorf("poll interval default: got %v, want 2s", cfg.Crawl.PollInterval)
	}
	if cfg.Crawl.MaxPolls != 30 {
		t.Errorf("max polls default: got %d, want 30", cfg.Crawl.MaxPolls)
	}
	if cfg.LLM.APIVersion != "2024-12-01-preview" {
		t.Errorf("api version default: got %q", cfg.LLM.APIVersion)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by default")
	}
}

func TestLLMConfigValidate(t *testing.T) {
	if err := (LLMConfig{}).Validate(); err == nil {
		t.Error("expected error for missing api key")
	}
	if err := (LLMConfig{APIKey: "k"}).Validate(); err == nil {
		t.Error("expected error for missing endpoint")
	}
	cfg := LLMConfig{APIKey: "k", Endpoint: "https://example.openai.azure.com"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCacheConfigValidate(t *testing.T) {
	if err := (CacheConfig{Enabled: true, Backend: "redis"}).Validate(); err == nil {
		t.Error("expected error for redis backend without addr")
	}
	if err := (CacheConfig{Enabled: true, Backend: "bogus"}).Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
	if err := (CacheConfig{Enabled: false, Backend: "bogus"}).Validate(); err != nil {
		t.Errorf("disabled cache should not validate backend: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}
