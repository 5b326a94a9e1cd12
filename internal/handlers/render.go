package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"cocktaildb/internal/catalog"
	applog "cocktaildb/internal/log"
	"cocktaildb/internal/views/layout"
	"cocktaildb/internal/views/pages"
	"cocktaildb/internal/views/theme"
)

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render fragment", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func renderComponentStatus(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render fragment", "error", err, "status", status)
	}
}

// renderPage sends the bare fragment to HTMX and wraps it in the document shell otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	if isHTMX(r) {
		renderComponent(w, r, content)
		return
	}
	renderComponent(w, r, pageShell(r, title, content))
}

func pageShell(r *http.Request, title string, content templ.Component) templ.Component {
	return layout.Layout(title, layoutSession(r), theme.Resolve(loadCurrentUserTheme(r)), content)
}

func layoutSession(r *http.Request) layout.Session {
	if !ActiveSession(r) {
		return layout.Session{}
	}
	return layout.Session{
		Authenticated: true,
		EditorName:    sessionManager.GetString(r.Context(), sessionUserNameKey),
	}
}

const (
	inUseMessage    = "This ingredient is used by at least one cocktail. Remove it from those cocktails before deleting it."
	internalMessage = "Something went wrong. Please try again."
)

// errorStatus maps catalog failures onto the response code and the message shown to the editor.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, catalog.ErrIngredientInUse):
		return http.StatusConflict, inUseMessage
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		applog.Error(r.Context(), "catalog operation failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		applog.Debug(r.Context(), "catalog request rejected", "status", status, "error", err)
	}
	renderComponentStatus(w, r, status, pages.Alert(message))
}

func requireDatabase(w http.ResponseWriter, r *http.Request) bool {
	if database != nil {
		return true
	}
	applog.Error(r.Context(), "database not configured", "path", r.URL.Path)
	http.Error(w, "catalog not available", http.StatusServiceUnavailable)
	return false
}
