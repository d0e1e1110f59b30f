package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-matcher/internal/evaluations"
	"resume-matcher/internal/services/health"
	"resume-matcher/internal/shared/config"
	"resume-matcher/internal/shared/server/middleware"
	"resume-matcher/internal/shared/telemetry"
)

type constScorer float64

func (s constScorer) Score(context.Context, string, string) (float64, error) { return float64(s), nil }

func rawExtract(_ context.Context, _ string, data []byte) (string, error) { return string(data), nil }

func newTestEngine(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	t.Cleanup(telemetry.SetOutput(io.Discard))

	svc := &evaluations.Service{
		Repo:    evaluations.NewMemoryRepo(),
		Extract: rawExtract,
		Scorer:  constScorer(64),
	}
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config:            cfg,
		EvaluationHandler: evaluations.NewHandler(svc),
		RateLimiter:       middleware.NewRateLimiter(func() time.Time { return fixed }),
	})
}

func evaluationRequest(t *testing.T, useFeedback bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	_ = w.WriteField("jobDescription", "Go engineer")
	if useFeedback {
		_ = w.WriteField("useFeedback", "true")
	}
	fw, err := w.CreateFormFile("file", "cv.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("go engineer"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluations", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestRouterServesHealthMetricsAndUI(t *testing.T) {
	router := newTestEngine(t, config.Config{})

	for path, want := range map[string]string{
		"/api/v1/health": `"ok":true`,
		"/metrics":       "evaluation_started_total",
		"/":              "<!doctype html>",
	} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), want) {
			t.Fatalf("%s: body missing %q", path, want)
		}
	}
}

func TestRouterHealthReportsFailingCheck(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(io.Discard))
	checks := health.NewService()
	checks.Add("database", func(context.Context) error { return errors.New("dial tcp: refused") })
	router := NewRouter(RouterDeps{Health: checks})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "dial tcp: refused") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestRouterRateLimitsFeedbackOnly(t *testing.T) {
	router := newTestEngine(t, config.Config{FeedbackRatePerM: 1, FeedbackBurst: 1})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, evaluationRequest(t, true))
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, evaluationRequest(t, true))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") != "60" {
		t.Fatalf("unexpected Retry-After %q", second.Header().Get("Retry-After"))
	}

	plain := httptest.NewRecorder()
	router.ServeHTTP(plain, evaluationRequest(t, false))
	if plain.Code != http.StatusCreated {
		t.Fatalf("expected 201 without feedback, got %d", plain.Code)
	}
}

func TestRouterEnforcesUploadLimit(t *testing.T) {
	router := newTestEngine(t, config.Config{MaxUploadBytes: 64})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, evaluationRequest(t, false))
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7070": ":7070"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
