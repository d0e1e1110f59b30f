package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "OBJECT_STORE", "EMBEDDING_PROVIDER", "EMBEDDING_MODEL", "FEEDBACK_PROVIDER", "FEEDBACK_MODEL", "RANK_CONCURRENCY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %s", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %s", cfg.ObjectStoreType)
	}
	if cfg.EmbeddingProvider != "gemini" {
		t.Fatalf("expected gemini embeddings, got %s", cfg.EmbeddingProvider)
	}
	if cfg.FeedbackModel != "gemini-2.0-flash" {
		t.Fatalf("unexpected feedback model: %s", cfg.FeedbackModel)
	}
	if cfg.RankConcurrency != 4 {
		t.Fatalf("expected rank concurrency 4, got %d", cfg.RankConcurrency)
	}
	if cfg.FeedbackTimeout != 60*time.Second {
		t.Fatalf("unexpected feedback timeout: %s", cfg.FeedbackTimeout)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected max upload bytes: %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("EMBEDDING_PROVIDER", "OpenAI")
	t.Setenv("EMBEDDING_MODEL", "")
	t.Setenv("RANK_CONCURRENCY", "not-a-number")
	t.Setenv("EMBEDDING_CACHE_TTL", "90m")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production env, got %s", cfg.Env)
	}
	if cfg.ObjectStoreType != "s3" {
		t.Fatalf("expected s3 store, got %s", cfg.ObjectStoreType)
	}
	if cfg.EmbeddingProvider != "openai" {
		t.Fatalf("expected openai embeddings, got %s", cfg.EmbeddingProvider)
	}
	if cfg.EmbeddingModel != "all-MiniLM-L6-v2" {
		t.Fatalf("expected openai default model, got %s", cfg.EmbeddingModel)
	}
	if cfg.RankConcurrency != 4 {
		t.Fatalf("expected fallback concurrency 4, got %d", cfg.RankConcurrency)
	}
	if cfg.EmbeddingCacheTTL != 90*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.EmbeddingCacheTTL)
	}
	if cfg.GeminiAPIKey != "google-key" {
		t.Fatalf("expected GOOGLE_API_KEY fallback, got %q", cfg.GeminiAPIKey)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadEnvFilesDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FEEDBACK_MODEL=from-file\nEMBEDDING_MODEL=file-embed\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("FEEDBACK_MODEL", "from-env")
	t.Setenv("EMBEDDING_MODEL", "")
	os.Unsetenv("EMBEDDING_MODEL")

	loadEnvFiles(path)
	t.Cleanup(func() { os.Unsetenv("EMBEDDING_MODEL") })

	if got := os.Getenv("FEEDBACK_MODEL"); got != "from-env" {
		t.Fatalf("expected env to win, got %s", got)
	}
	if got := os.Getenv("EMBEDDING_MODEL"); got != "file-embed" {
		t.Fatalf("expected file value, got %s", got)
	}
}
