package handlers

import (
	"net/http"
	"strings"

	applog "cocktaildb/internal/log"
	"cocktaildb/internal/views/pages"
)

// Login renders the editor sign-in view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if ActiveSession(r) {
			applog.Debug(r.Context(), "active session detected, redirecting to catalog")
			redirectToApp(w, r)
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, http.StatusOK, message, "")
	case http.MethodPost:
		if sessionManager == nil || database == nil {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil, "hasDatabase", database != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		email := strings.TrimSpace(r.PostFormValue("email"))
		password := r.PostFormValue("password")

		if email == "" || password == "" {
			renderLogin(w, r, http.StatusBadRequest, "Email and password are required.", email)
			return
		}

		if !authenticate(w, r, email, password) {
			applog.Info(r.Context(), "editor sign in rejected", "email", strings.ToLower(email))
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "We were unable to sign you in. Please try again."
			}
			renderLogin(w, r, http.StatusUnauthorized, message, email)
			return
		}

		applog.Info(r.Context(), "editor signed in", "email", strings.ToLower(email))
		redirectToApp(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, message, email string) {
	form := pages.LoginForm(message, email)
	if isHTMX(r) {
		renderComponentStatus(w, r, status, form)
		return
	}
	if status != http.StatusOK {
		renderComponentStatus(w, r, status, pageShell(r, "Sign in", form))
		return
	}
	renderPage(w, r, "Sign in", form)
}
