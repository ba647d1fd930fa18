package config

import (
	"log"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Values come from an optional YAML
// file first, then environment variables on top; env always wins.
type Config struct {
	BackendURL  string `yaml:"backend_url"`
	Port        string `yaml:"port"`
	GitHubToken string `yaml:"github_token"`

	// MessageTTLMS is how long a success message stays visible before the
	// scheduled clear fires.
	MessageTTLMS int `yaml:"message_ttl_ms"`

	// BackendTimeoutMS bounds the upload call. Zero means no timeout;
	// platform lookups always run without one.
	BackendTimeoutMS int `yaml:"backend_timeout_ms"`
}

func (c *Config) MessageTTL() time.Duration {
	return time.Duration(c.MessageTTLMS) * time.Millisecond
}

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutMS) * time.Millisecond
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// expandEnvVars replaces ${VAR_NAME} references in the config file body.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if v := os.Getenv(name); v != "" {
			return v
		}
		return match
	})
}

// Load reads configuration. A missing .env or config file is not an error;
// the service runs fine on environment variables alone.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		BackendURL:   "http://127.0.0.1:8000",
		Port:         "8080",
		MessageTTLMS: 2000,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(b))), cfg); err != nil {
			log.Printf("Warning: could not parse %s: %v", path, err)
		}
	}

	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHubToken = v
	}
	if v := os.Getenv("MESSAGE_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MessageTTLMS = n
		}
	}
	if v := os.Getenv("BACKEND_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BackendTimeoutMS = n
		}
	}
	return cfg
}
