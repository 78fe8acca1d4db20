package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the policy generation service.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Crawl   CrawlConfig   `mapstructure:"crawl"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig contains the Azure OpenAI completion capability settings.
// All credentials come from the environment (POLICYPILOT_LLM_*), never code.
type LLMConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Endpoint   string        `mapstructure:"endpoint"`
	APIVersion string        `mapstructure:"api_version"`
	Deployment string        `mapstructure:"deployment"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CrawlConfig contains the remote crawl service settings. When BaseURL is
// empty the fetch_url tool falls back to a direct single-page fetch.
type CrawlConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	PageLimit    int           `mapstructure:"page_limit"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// CacheConfig controls the optional crawl digest cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"` // inmemory or redis
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings for the digest cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c LLMConfig) Validate() error {
	if c.APIKey == "" {
		return errors.New("llm.api_key is required")
	}
	if c.Endpoint == "" {
		return errors.New("llm.endpoint is required")
	}
	return nil
}

func (c CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch c.Backend {
	case "inmemory":
		return nil
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("cache.redis.addr is required when cache.backend is redis")
		}
		return nil
	default:
		return fmt.Errorf("unsupported cache backend: %s", c.Backend)
	}
}

// LoadConfig reads configuration from a config file plus POLICYPILOT_*
// environment overrides. An empty path searches the usual locations; a
// missing file is fine as long as the environment provides the values.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("llm.api_version", "2024-12-01-preview")
	viper.SetDefault("llm.deployment", "gpt-5.1")
	viper.SetDefault("llm.timeout", 120*time.Second)
	viper.SetDefault("crawl.page_limit", 20)
	viper.SetDefault("crawl.poll_interval", 2*time.Second)
	viper.SetDefault("crawl.max_polls", 30)
	viper.SetDefault("crawl.timeout", 30*time.Second)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.backend", "inmemory")
	viper.SetDefault("cache.ttl", 1*time.Hour)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("POLICYPILOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return &config
}
