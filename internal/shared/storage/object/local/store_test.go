package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestPutAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "reports/run-1/resume_ranking_report.csv", "text/csv", strings.NewReader("Resume,Score\n"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("Resume,Score\n")) {
		t.Fatalf("unexpected size: %d", n)
	}

	rc, err := store.Open(ctx, "reports/run-1/resume_ranking_report.csv")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "Resume,Score\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	if _, err := store.Put(ctx, "k.txt", "", strings.NewReader("first version")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := store.Put(ctx, "k.txt", "", strings.NewReader("second")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := store.Open(ctx, "k.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "second" {
		t.Fatalf("expected overwrite, got %q", body)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"../escape.txt", "/abs/path", ""} {
		if _, err := store.Put(ctx, key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
		if _, err := store.Open(ctx, key); err == nil {
			t.Fatalf("expected open error for key %q", key)
		}
	}
}
