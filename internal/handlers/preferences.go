package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "cocktaildb/internal/log"
	"cocktaildb/internal/views/theme"
	"cocktaildb/models"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences stores the selected theme in the session and, for editors, on the account.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse preferences form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	themeValue := strings.TrimSpace(r.FormValue("theme"))
	themeConfig, ok := theme.Lookup(themeValue)
	if !ok {
		applog.Debug(r.Context(), "received invalid theme selection", "value", themeValue)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	if userID, signedIn := currentUserID(r); signedIn && database != nil {
		applog.Debug(r.Context(), "updating editor preferences", "userID", userID, "theme", themeConfig.Key)
		err := database.WithContext(r.Context()).Model(&models.User{}).Where("id = ?", userID).Update("theme", themeConfig.Key).Error
		if err != nil {
			applog.Error(r.Context(), "failed to persist editor preferences", "error", err)
			http.Error(w, "failed to save preferences", http.StatusInternalServerError)
			return
		}
	}

	setSessionTheme(r, themeConfig.Key)

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(preferencesResponse{Theme: themeConfig.Key}); err != nil {
		applog.Error(r.Context(), "failed to encode preferences response", "error", err)
	}
}
