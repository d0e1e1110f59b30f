package rankings

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(context.Background(), Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	runs, err := repo.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected page: %+v", runs)
	}

	runs, _ = repo.List(context.Background(), 2, 2)
	if len(runs) != 1 || runs[0].ID != "a" {
		t.Fatalf("unexpected second page: %+v", runs)
	}

	runs, _ = repo.List(context.Background(), 2, 5)
	if len(runs) != 0 {
		t.Fatalf("expected empty page, got %+v", runs)
	}
}

func TestMemoryRepoNotFound(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
