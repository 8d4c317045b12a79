package store

import (
	"testing"

	"union-site-backend/internal/models"
)

func TestAppendNewsDeduplicates(t *testing.T) {
	s := New()
	s.SetNews([]models.News{{ID: 1, Title: "First"}})

	s.AppendNews([]models.News{{ID: 1, Title: "First"}, {ID: 2, Title: "Second"}})

	if got := len(s.News()); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}
}

func TestFindNewsByLink(t *testing.T) {
	s := New()
	s.SetNews([]models.News{{ID: 42, Title: "Launch Party"}})

	item, ok := s.FindNewsByLink("42-launch-party")
	if !ok || item.ID != 42 {
		t.Fatalf("lookup failed: ok=%v item=%+v", ok, item)
	}

	if _, ok := s.FindNewsByLink("42-renamed"); ok {
		t.Error("stale link should not resolve")
	}
}

func TestUpsertAndRemoveNews(t *testing.T) {
	s := New()
	s.SetNews([]models.News{{ID: 1, Title: "Old"}})

	s.UpsertNews(models.News{ID: 1, Title: "New"})
	if item, _ := s.FindNewsByLink("1-new"); item.Title != "New" {
		t.Fatalf("upsert did not replace: %+v", item)
	}

	s.UpsertNews(models.News{ID: 2, Title: "Added"})
	if got := len(s.News()); got != 2 {
		t.Fatalf("len = %d, want 2", got)
	}

	s.RemoveNews(1)
	if _, ok := s.FindNewsByLink("1-new"); ok {
		t.Error("removed item still resolvable")
	}
}

func TestNewsPagingCursor(t *testing.T) {
	s := New()

	if got := s.AdvanceNewsPage(); got != 1 {
		t.Fatalf("first advance = %d, want 1", got)
	}
	if got := s.AdvanceNewsPage(); got != 2 {
		t.Fatalf("second advance = %d, want 2", got)
	}

	s.MarkNewsExhausted()
	s.ResetNewsPaging()

	if s.NewsPage() != 0 || s.NewsExhausted() {
		t.Errorf("reset left cursor=%d exhausted=%v", s.NewsPage(), s.NewsExhausted())
	}
}

func TestResetOnSignOut(t *testing.T) {
	s := New()
	s.SetSession(&models.Session{AccessToken: "at"})
	s.SetNews([]models.News{{ID: 1, Title: "Draft"}})

	s.ResetOnSignOut()

	if s.Session() != nil {
		t.Error("session survived sign-out")
	}
	if len(s.News()) != 1 {
		t.Error("public content should survive sign-out")
	}
}
