package page

import (
	"errors"
	"testing"
)

func TestUpsert(t *testing.T) {
	r := NewInMemoryRepository(nil)

	created, err := r.Upsert(Page{Slug: "about", Title: "About Us", Content: "We bake."})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an assigned id")
	}

	// same slug replaces content and keeps the id
	updated, err := r.Upsert(Page{Slug: "about", Title: "About Us", Content: "We bake daily."})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on upsert: %d -> %d", created.ID, updated.ID)
	}

	got, err := r.GetBySlug("about")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Content != "We bake daily." {
		t.Errorf("content = %q", got.Content)
	}

	pages, _ := r.List()
	if len(pages) != 1 {
		t.Errorf("pages = %d, want 1", len(pages))
	}
}

func TestDeleteBySlug(t *testing.T) {
	r := NewInMemoryRepository([]Page{{ID: 1, Slug: "faq", Title: "FAQ"}})

	if err := r.Delete("faq"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetBySlug("faq"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := r.Delete("faq"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
