package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterProtectsEditorForms(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/cocktails/new", "/cocktails/form", "/ingredients/new"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303 redirect, got %d", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}
