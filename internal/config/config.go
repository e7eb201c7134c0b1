package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Credentials from the environment take precedence over the file.
const (
	EnvAPIKey    = "HITBTC_API_KEY"
	EnvAPISecret = "HITBTC_API_SECRET"
)

// SupportedExchange is the only exchange id this gateway can drive.
const SupportedExchange = "hitbtc2"

type Config struct {
	Exchange struct {
		Name         string `yaml:"name"`
		APIKey       string `yaml:"api_key"`
		APISecret    string `yaml:"api_secret"`
		RESTEndpoint string `yaml:"rest_endpoint"`
		WSEndpoint   string `yaml:"ws_endpoint"`
	} `yaml:"exchange"`
	Transport struct {
		TimeoutMs   int `yaml:"timeout_ms"`
		RetryCount  int `yaml:"retry_count"`
		RateLimitMs int `yaml:"rate_limit_ms"`
	} `yaml:"transport"`
	Orders struct {
		CacheSize int `yaml:"cache_size"`
	} `yaml:"orders"`
	Stream struct {
		Symbols []string `yaml:"symbols"`
	} `yaml:"stream"`
	Logging struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// Load reads the YAML file at path, then applies a .env file (if present)
// and environment overrides, then defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	// a missing .env is fine
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Exchange.Name != SupportedExchange {
		return fmt.Errorf("unsupported exchange %q (want %q)", c.Exchange.Name, SupportedExchange)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Exchange.APIKey = v
	}
	if v := os.Getenv(EnvAPISecret); v != "" {
		c.Exchange.APISecret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Exchange.Name == "" {
		c.Exchange.Name = SupportedExchange
	}
	if c.Transport.TimeoutMs <= 0 {
		c.Transport.TimeoutMs = 10000
	}
	if c.Transport.RateLimitMs < 0 {
		c.Transport.RateLimitMs = 0
	} else if c.Transport.RateLimitMs == 0 {
		c.Transport.RateLimitMs = 1500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Transport.TimeoutMs) * time.Millisecond
}

func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.Transport.RateLimitMs) * time.Millisecond
}
