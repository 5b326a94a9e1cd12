package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "cocktaildb/internal/db"
	"cocktaildb/models"
)

const (
	testEditorEmail    = "editor@example.com"
	testEditorPassword = "password123"
)

func withTestSessionManager(t *testing.T) (*scs.SessionManager, func()) {
	t.Helper()
	original := sessionManager
	sm := scs.New()
	sessionManager = sm
	return sm, func() {
		sessionManager = original
	}
}

func withTestDatabase(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	original := database
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := appdb.AutoMigrate(conn); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database = conn
	return conn, func() {
		database = original
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// newSessionRequest builds a request carrying a loaded session context.
func newSessionRequest(t *testing.T, sm *scs.SessionManager, method, target string, body io.Reader) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return req.WithContext(ctx)
}

func newFormRequest(t *testing.T, sm *scs.SessionManager, method, target string, form url.Values) *http.Request {
	t.Helper()
	req := newSessionRequest(t, sm, method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func createTestEditor(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user, err := appdb.CreateEditor(context.Background(), conn, testEditorEmail, "Test Editor", testEditorPassword)
	if err != nil {
		t.Fatalf("failed to create editor: %v", err)
	}
	return user
}

func signIn(t *testing.T, req *http.Request, user *models.User) {
	t.Helper()
	if err := establishSession(req, user); err != nil {
		t.Fatalf("establishSession returned error: %v", err)
	}
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestActiveSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if ActiveSession(req) {
		t.Fatal("expected inactive session when manager is nil")
	}

	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req = newSessionRequest(t, sm, http.MethodGet, "/", nil)
	if ActiveSession(req) {
		t.Fatal("expected inactive session before sign in")
	}
	sm.Put(req.Context(), sessionAuthenticatedKey, true)
	sm.Put(req.Context(), sessionUserIDKey, 42)

	if !ActiveSession(req) {
		t.Fatal("expected active session when flags are set")
	}
}

func TestCurrentUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := currentUserID(req); ok {
		t.Fatal("expected currentUserID to fail without session manager")
	}

	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req = newSessionRequest(t, sm, http.MethodGet, "/", nil)
	if _, ok := currentUserID(req); ok {
		t.Fatal("expected false when user id not set")
	}

	sm.Put(req.Context(), sessionUserIDKey, 7)
	id, ok := currentUserID(req)
	if !ok || id != 7 {
		t.Fatalf("expected user id 7, got %d (ok=%t)", id, ok)
	}
}

func TestEstablishSession(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := newSessionRequest(t, sm, http.MethodGet, "/", nil)
	user := &models.User{Model: models.Model{ID: 3}, Email: "user@example.com", Name: "User", Theme: "DARK"}
	signIn(t, req, user)

	if !sm.GetBool(req.Context(), sessionAuthenticatedKey) {
		t.Fatal("expected session authenticated flag to be true")
	}
	if got := sm.GetInt(req.Context(), sessionUserIDKey); got != 3 {
		t.Fatalf("expected session user id 3, got %d", got)
	}
	if got := sm.GetString(req.Context(), sessionUserEmailKey); got != "user@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := sm.GetString(req.Context(), sessionUserNameKey); got != "User" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := sm.GetString(req.Context(), sessionUserThemeKey); got != models.ThemeDark {
		t.Fatalf("expected normalized theme in session, got %q", got)
	}
}

func TestEstablishSessionWithoutManager(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := establishSession(req, &models.User{}); err == nil {
		t.Fatal("expected error when session manager is nil")
	}
}

func TestFindUserByEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := findUserByEmail(req, "user@example.com"); !errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("expected ErrInvalidDB without database, got %v", err)
	}

	conn, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)

	if _, err := findUserByEmail(req, "missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing user, got %v", err)
	}

	createTestEditor(t, conn)
	user, err := findUserByEmail(req, "EDITOR@example.com")
	if err != nil {
		t.Fatalf("findUserByEmail returned error: %v", err)
	}
	if user.Email != testEditorEmail {
		t.Fatalf("expected lowercase email, got %q", user.Email)
	}
}

func TestAuthenticate(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	conn, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	createTestEditor(t, conn)

	req := newSessionRequest(t, sm, http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()

	if ok := authenticate(w, req, testEditorEmail, testEditorPassword); !ok {
		t.Fatal("expected authentication to succeed")
	}
	if !sm.GetBool(req.Context(), sessionAuthenticatedKey) {
		t.Fatal("expected session authenticated flag to be true")
	}

	w = httptest.NewRecorder()
	if ok := authenticate(w, req, testEditorEmail, "wrong"); ok {
		t.Fatal("expected authentication failure with bad password")
	}
	if message := sm.PopString(req.Context(), sessionLoginMessageKey); message == "" {
		t.Fatal("expected login failure message to be set")
	}

	w = httptest.NewRecorder()
	if ok := authenticate(w, req, "nobody@example.com", testEditorPassword); ok {
		t.Fatal("expected authentication failure for unknown editor")
	}
}

func TestRequireAuthentication(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	called := false
	handler := RequireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := newSessionRequest(t, sm, http.MethodGet, "/cocktails/new", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if called {
		t.Fatal("expected handler to be skipped without a session")
	}
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", w.Code)
	}

	signIn(t, req, &models.User{Model: models.Model{ID: 1}, Email: testEditorEmail})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if !called || w.Code != http.StatusNoContent {
		t.Fatalf("expected wrapped handler to run, called=%t code=%d", called, w.Code)
	}
}

func TestLogout(t *testing.T) {
	sm, cleanup := withTestSessionManager(t)
	t.Cleanup(cleanup)

	req := newSessionRequest(t, sm, http.MethodPost, "/logout", nil)
	signIn(t, req, &models.User{Model: models.Model{ID: 1}, Email: testEditorEmail})

	w := httptest.NewRecorder()
	Logout(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", w.Code)
	}
	if ActiveSession(req) {
		t.Fatal("expected session to be destroyed")
	}

	w = httptest.NewRecorder()
	Logout(w, httptest.NewRequest(http.MethodDelete, "/logout", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestRedirectToLogin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cocktails/new", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	redirectToLogin(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for HTMX redirect, got %d", w.Code)
	}
	if w.Header().Get("HX-Redirect") != "/login" {
		t.Fatalf("expected HX-Redirect header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/cocktails/new", nil)
	w = httptest.NewRecorder()
	redirectToLogin(w, req)
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRedirectToApp(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("HX-Boosted", "true")
	w := httptest.NewRecorder()
	redirectToApp(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 status, got %d", w.Code)
	}
	if w.Header().Get("HX-Redirect") != "/" {
		t.Fatalf("expected HX-Redirect header to be set")
	}

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	w = httptest.NewRecorder()
	redirectToApp(w, req)
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestLoadCurrentUserTheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if theme := loadCurrentUserTheme(req); theme != models.DefaultTheme {
		t.Fatalf("expected default theme when no dependencies, got %q", theme)
	}

	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	req = newSessionRequest(t, sm, http.MethodGet, "/", nil)
	sm.Put(req.Context(), sessionUserThemeKey, " Dark ")
	if theme := loadCurrentUserTheme(req); theme != models.ThemeDark {
		t.Fatalf("expected normalized theme from session, got %q", theme)
	}

	conn, dbCleanup := withTestDatabase(t)
	t.Cleanup(dbCleanup)
	sm.Put(req.Context(), sessionUserThemeKey, "")

	user := &models.User{Email: "user@example.com", PasswordHash: "x", Theme: models.ThemeDark}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	sm.Put(req.Context(), sessionUserIDKey, int(user.ID))
	if theme := loadCurrentUserTheme(req); theme != models.ThemeDark {
		t.Fatalf("expected theme from database, got %q", theme)
	}
	if cached := sm.GetString(req.Context(), sessionUserThemeKey); cached != models.ThemeDark {
		t.Fatalf("expected theme to be cached in session, got %q", cached)
	}
}
