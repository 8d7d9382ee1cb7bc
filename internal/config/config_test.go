package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/test"
auth:
  jwt_secret: "s3cret"
matching:
  thresholds:
    image_to_image: 0.7
    text_to_image: 0.5
    text_only: 0.45
server:
  port: ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/test" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.Server.Port != ":9090" {
		t.Errorf("port = %q, want :9090", cfg.Server.Port)
	}
	if cfg.Matching.Thresholds.ImageToImage != 0.7 {
		t.Errorf("image threshold = %v, want 0.7", cfg.Matching.Thresholds.ImageToImage)
	}

	// Weights were not set, so defaults apply.
	if cfg.Matching.Weights.Image != 0.55 {
		t.Errorf("default image weight = %v, want 0.55", cfg.Matching.Weights.Image)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "s3cret"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != ":8080" {
		t.Errorf("default port = %q, want :8080", cfg.Server.Port)
	}
	if cfg.Matching.Thresholds.TextOnly != 0.40 {
		t.Errorf("default text-only threshold = %v, want 0.40", cfg.Matching.Thresholds.TextOnly)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":8080"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing jwt secret")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	path := writeConfig(t, `
database:
  url: "postgres://file/db"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("jwt secret = %q, want env override", cfg.Auth.JWTSecret)
	}
	if cfg.Database.URL != "postgres://env/db" {
		t.Errorf("database url = %q, want env override", cfg.Database.URL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yml"); err == nil {
		t.Error("expected error for missing file")
	}
}
