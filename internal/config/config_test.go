package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("BACKEND_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("MESSAGE_TTL_MS", "")

	cfg := Load()
	if cfg.BackendURL != "http://127.0.0.1:8000" {
		t.Errorf("backend url = %q", cfg.BackendURL)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.MessageTTLMS != 2000 {
		t.Errorf("message ttl = %d", cfg.MessageTTLMS)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "backend_url: http://file-backend:8000\nport: \"9000\"\ngithub_token: ${TEST_GH_TOKEN}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_GH_TOKEN", "tok-123")
	t.Setenv("BACKEND_URL", "http://env-backend:8000")
	t.Setenv("PORT", "")
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("MESSAGE_TTL_MS", "")

	cfg := Load()
	if cfg.BackendURL != "http://env-backend:8000" {
		t.Errorf("env must win over file, got %q", cfg.BackendURL)
	}
	if cfg.Port != "9000" {
		t.Errorf("file value must apply when env unset, got %q", cfg.Port)
	}
	if cfg.GitHubToken != "tok-123" {
		t.Errorf("${VAR} expansion failed, got %q", cfg.GitHubToken)
	}
}
