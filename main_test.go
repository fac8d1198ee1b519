package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/storage"
	"github.com/inkwell-blog/inkwell/internal/store"
	"github.com/inkwell-blog/inkwell/internal/theme"
)

// setupGlobals wires the package globals the handlers read, backed by
// in-memory storage seeded with the example collection.
func setupGlobals(t *testing.T) {
	t.Helper()

	if err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	postStore = store.NewPostStore(storage.NewMemoryStore())
	postStore.Load()
	themePrefs = theme.LoadPrefs(storage.NewMemoryStore())
}

func TestServeIndex(t *testing.T) {
	setupGlobals(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	serveIndex(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 OK, got %d", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	// The newest published seed post is the hero entry.
	if !strings.Contains(string(body), "The Art of Minimalist Design") {
		t.Errorf("Expected body to contain the featured title, got %s", body)
	}
}

func TestServePosts(t *testing.T) {
	setupGlobals(t)

	t.Run("Lists published posts", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts", nil)
		rec := httptest.NewRecorder()

		servePosts(rec, req)

		body := rec.Body.String()
		if !strings.Contains(body, "Exploring the Serene Landscapes") {
			t.Errorf("Expected published post in listing, got %s", body)
		}
		if strings.Contains(body, "A New Post in the Works") {
			t.Error("Expected draft to be hidden from the listing")
		}
	})

	t.Run("Search narrows the listing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts?q=minimalist", nil)
		rec := httptest.NewRecorder()

		servePosts(rec, req)

		body := rec.Body.String()
		if !strings.Contains(body, "The Art of Minimalist Design") {
			t.Errorf("Expected matching post, got %s", body)
		}
		if strings.Contains(body, "Exploring the Serene Landscapes") {
			t.Error("Expected non-matching post to be filtered out")
		}
	})
}

func TestServePost(t *testing.T) {
	setupGlobals(t)

	t.Run("Renders the post body", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts/exploring-the-serene-landscapes-of-the-north", nil)
		req.SetPathValue("slug", "exploring-the-serene-landscapes-of-the-north")
		rec := httptest.NewRecorder()

		servePost(rec, req)

		res := rec.Result()
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200 OK, got %d", res.StatusCode)
		}

		body, _ := io.ReadAll(res.Body)
		if !strings.Contains(string(body), `<h1 id="a-journey-begins">A Journey Begins</h1>`) {
			t.Errorf("Expected rendered heading, got %s", body)
		}
	})

	t.Run("Unknown slug", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/posts/nonexistent", nil)
		req.SetPathValue("slug", "nonexistent")
		rec := httptest.NewRecorder()

		servePost(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404 Not Found, got %d", rec.Code)
		}
	})
}

func TestServeDashboardToggle(t *testing.T) {
	setupGlobals(t)

	draftID := model.PostID("a1b2c3d4-e5f6-4a8b-9c0d-1e2f3a4b5c6d")

	req := httptest.NewRequest("POST", "/dashboard/toggle/"+string(draftID), nil)
	req.SetPathValue("id", string(draftID))
	rec := httptest.NewRecorder()

	serveDashboardToggle(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Expected 302 Found, got %d", rec.Code)
	}
	if got := rec.Header().Get(config.HHxRedirect); got != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %q", got)
	}

	post, err := postStore.Get(draftID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if post.Status != model.StatusPublished {
		t.Errorf("Expected status %q, got %q", model.StatusPublished, post.Status)
	}
}

func TestServeDashboardDelete(t *testing.T) {
	setupGlobals(t)

	req := httptest.NewRequest("POST", "/dashboard/delete/b7b2a6d7-1baf-4bd9-9f79-6d803a3d2159", nil)
	req.SetPathValue("id", "b7b2a6d7-1baf-4bd9-9f79-6d803a3d2159")
	rec := httptest.NewRecorder()

	serveDashboardDelete(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("Expected 302 Found, got %d", rec.Code)
	}
	if got := len(postStore.GetAll()); got != 2 {
		t.Errorf("Expected 2 posts after delete, got %d", got)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := secureHeaders(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := rec.Header().Get("X-Frame-Options"); got != "deny" {
		t.Errorf("Expected %q, got %q", "deny", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("Expected %q, got %q", "nosniff", got)
	}
}
