package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-matcher/internal/evaluations"
	"resume-matcher/internal/llm"
	"resume-matcher/internal/rankings"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/telemetry"
)

type unitEmbedder struct{}

func (unitEmbedder) Model() string { return "unit" }

func (unitEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		LocalStoreDir:   t.TempDir(),
		RankConcurrency: 2,
		MaxUploadBytes:  1 << 20,
	}
}

func TestBuildWithInMemoryDefaults(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))

	app, err := BuildWith(context.Background(), testConfig(t), Overrides{Embedder: unitEmbedder{}, LLM: llm.Disabled{}})
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if _, ok := app.EvaluationsRepo.(*evaluations.MemoryRepo); !ok {
		t.Fatalf("expected memory evaluations repo, got %T", app.EvaluationsRepo)
	}
	if _, ok := app.RankingsRepo.(*rankings.MemoryRepo); !ok {
		t.Fatalf("expected memory rankings repo, got %T", app.RankingsRepo)
	}
	if app.Config.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %s", app.Config.ObjectStoreType)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("jobDescription", "Go engineer")
	for _, name := range []string{"one.txt", "two.txt"} {
		fw, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write([]byte("plain text"))
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rankings", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var res rankings.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Display != "1. one.txt - 100.0\n2. two.txt - 100.0" {
		t.Fatalf("unexpected display %q", res.Display)
	}
	if !strings.HasPrefix(res.CSVKey, "reports/"+res.ID+"/") {
		t.Fatalf("unexpected csv key %q", res.CSVKey)
	}
}

func TestBuildFeedbackDisabledWithoutKey(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))
	cfg := testConfig(t)
	cfg.FeedbackProvider = "gemini"

	app, err := BuildWith(context.Background(), cfg, Overrides{Embedder: unitEmbedder{}})
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if _, ok := app.LLM.(llm.Disabled); !ok {
		t.Fatalf("expected disabled feedback client, got %T", app.LLM)
	}
}

func TestBuildErrors(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))

	tests := []struct {
		name string
		mut  func(*config.Config)
		ov   Overrides
		want string
	}{
		{
			name: "production requires database",
			mut:  func(c *config.Config) { c.Env = "production" },
			ov:   Overrides{Embedder: unitEmbedder{}},
			want: "DATABASE_URL is required",
		},
		{
			name: "gemini embeddings require key",
			mut:  func(c *config.Config) { c.EmbeddingProvider = "gemini" },
			want: "GEMINI_API_KEY",
		},
		{
			name: "s3 requires bucket",
			mut:  func(c *config.Config) { c.ObjectStoreType = "s3" },
			ov:   Overrides{Embedder: unitEmbedder{}},
			want: "S3_BUCKET",
		},
		{
			name: "bad redis url",
			mut:  func(c *config.Config) { c.RedisURL = "not-a-url" },
			ov:   Overrides{Embedder: unitEmbedder{}},
			want: "REDIS_URL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mut(&cfg)
			_, err := BuildWith(context.Background(), cfg, tt.ov)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
