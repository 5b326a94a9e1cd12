package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestLoginRendersFullPage(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := newSessionRequest(t, sm, http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<!DOCTYPE html>") || !strings.Contains(body, `id="login"`) {
		t.Fatalf("expected login form inside the layout, got %q", body)
	}
}

func TestLoginRendersPartialForHTMX(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := newSessionRequest(t, sm, http.MethodGet, "/login", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	Login(w, req)

	body := w.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatal("expected HTMX login to skip the layout")
	}
	if !strings.Contains(body, `id="login"`) {
		t.Fatalf("expected login form, got %q", body)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	conn, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	createTestEditor(t, conn)

	form := url.Values{"email": {testEditorEmail}, "password": {"wrong-password"}}
	req := newFormRequest(t, sm, http.MethodPost, "/login", form)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("expected failure message, got %q", w.Body.String())
	}
	if ActiveSession(req) {
		t.Fatal("expected no session after failed login")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	req := newFormRequest(t, sm, http.MethodPost, "/login", url.Values{"email": {testEditorEmail}})
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginSucceeds(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	conn, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	createTestEditor(t, conn)

	form := url.Values{"email": {"  Editor@Example.com "}, "password": {testEditorPassword}}
	req := newFormRequest(t, sm, http.MethodPost, "/login", form)
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if !ActiveSession(req) {
		t.Fatal("expected active session after login")
	}
}

func TestLoginWithoutDependencies(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=a&password=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	Login(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
