package handlers

import (
	"net/http"

	"cocktaildb/internal/views/pages"
)

// Home renders the page shell that lazily loads the cocktail table.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderPage(w, r, "Cocktails", pages.Home())
}
