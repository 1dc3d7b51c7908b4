package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkpost/internal/models"
	"inkpost/internal/service"
)

func samplePosts(n int) []models.Post {
	out := make([]models.Post, n)
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = models.Post{ID: "p" + string(rune('a'+i)), Title: "Post " + string(rune('A'+i)), Body: "body", CreatedAt: base}
	}
	return out
}

func TestHome_PaginationLinks(t *testing.T) {
	cases := []struct {
		name     string
		query    string
		page     service.PostPage
		wantPage int
		wantNext bool
	}{
		{name: "first page", query: "", page: service.PostPage{Posts: samplePosts(6), Current: 1, NextPage: 2, TotalPages: 3}, wantPage: 1, wantNext: true},
		{name: "last page", query: "?page=3", page: service.PostPage{Posts: samplePosts(1), Current: 3, TotalPages: 3}, wantPage: 3},
		{name: "non numeric", query: "?page=abc", page: service.PostPage{Current: 1}, wantPage: 1},
		{name: "negative", query: "?page=-2", page: service.PostPage{Current: 1}, wantPage: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			posts := &mockPosts{page: tc.page}
			r := newTestRouter(newTestServices(nil, posts))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+tc.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if posts.lastPage != tc.wantPage {
				t.Fatalf("service got page %d, want %d", posts.lastPage, tc.wantPage)
			}
			hasNext := strings.Contains(w.Body.String(), `href="/?page=`)
			if hasNext != tc.wantNext {
				t.Fatalf("next link present=%v, want %v", hasNext, tc.wantNext)
			}
			if got := strings.Count(w.Body.String(), `href="/post/`); got != len(tc.page.Posts) {
				t.Fatalf("rendered %d posts, want %d", got, len(tc.page.Posts))
			}
		})
	}
}

func TestHome_StoreErrorRendersErrorPage(t *testing.T) {
	posts := &mockPosts{pageErr: errors.New("db down")}
	r := newTestRouter(newTestServices(nil, posts))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestStaticPages(t *testing.T) {
	r := newTestRouter(newTestServices(nil, nil))

	for _, path := range []string{"/about", "/contact"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `href="`+path+`" class="active"`) {
			t.Fatalf("%s: current route not highlighted", path)
		}
	}
}

func TestShowPost(t *testing.T) {
	t.Run("found renders markdown body", func(t *testing.T) {
		posts := &mockPosts{post: models.Post{ID: "p1", Title: "Hello", Body: "world"}}
		r := newTestRouter(newTestServices(nil, posts))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/p1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		if posts.lastID != "p1" || !strings.Contains(w.Body.String(), "<p>world</p>") {
			t.Fatalf("unexpected page: %s", w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "<title>Hello</title>") {
			t.Fatalf("page title should be the post title")
		}
	})

	t.Run("missing is 404", func(t *testing.T) {
		posts := &mockPosts{getErr: service.ErrNotFound}
		r := newTestRouter(newTestServices(nil, posts))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("store error is 500", func(t *testing.T) {
		posts := &mockPosts{getErr: errors.New("db down")}
		r := newTestRouter(newTestServices(nil, posts))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/p1", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestSearch_PassesTermAndListsResults(t *testing.T) {
	posts := &mockPosts{list: []models.Post{{ID: "z1", Title: "Zebra crossing"}}}
	r := newTestRouter(newTestServices(nil, posts))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, formRequest("/search", url.Values{"searchTerm": {"50% <zebra>"}}))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if posts.lastSearch != "50% <zebra>" {
		t.Fatalf("term should reach the service untouched, got %q", posts.lastSearch)
	}
	body := w.Body.String()
	if !strings.Contains(body, `href="/post/z1"`) || strings.Contains(body, "<zebra>") {
		t.Fatalf("unexpected results page: %s", body)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newTestRouter(newTestServices(nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(newTestServices(nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var m map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if w.Code != http.StatusOK || m["status"] != statusOK {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}
