package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cocktaildb/internal/catalog"
	applog "cocktaildb/internal/log"
	"cocktaildb/internal/views/pages"
	"cocktaildb/models"
)

// Ingredients serves the ingredient ledger and accepts new ingredients.
func Ingredients(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		ingredients, err := catalog.NewIngredients(database).List(r.Context())
		if err != nil {
			renderError(w, r, err)
			return
		}
		renderPage(w, r, "Ingredients", pages.IngredientList(ingredients, ActiveSession(r)))
	case http.MethodPost:
		createIngredient(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// NewIngredient renders an empty ingredient form.
func NewIngredient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderComponent(w, r, pages.IngredientForm(pages.IngredientFormData{
		Unit: models.UnitMilliliter,
		Type: models.DefaultIngredientType,
	}))
}

// IngredientResource dispatches /ingredients/{id} and /ingredients/{id}/edit.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	id, action, ok := resourcePath(r.URL.Path, "/ingredients/")
	if !ok {
		applog.Debug(r.Context(), "unrecognised ingredient path", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			showIngredient(w, r, id)
		case http.MethodPatch, http.MethodPut, http.MethodPost:
			updateIngredient(w, r, id)
		case http.MethodDelete:
			deleteIngredient(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "edit":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		editIngredient(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func showIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	store := catalog.NewIngredients(database)
	ingredient, err := store.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	usage, err := store.UsageCount(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderPage(w, r, ingredient.Name, pages.IngredientDetail(ingredient, usage, ActiveSession(r)))
}

func editIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	ingredient, err := catalog.NewIngredients(database).Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderComponent(w, r, pages.IngredientForm(pages.IngredientFormFrom(ingredient)))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	if !requireEditor(w, r) {
		return
	}
	if err := parseSubmission(r); err != nil {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid form submission."))
		return
	}

	icon, err := readIcon(r, "icon")
	if err != nil {
		renderIngredientFormError(w, r, 0, err)
		return
	}
	in := catalog.IngredientInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Unit:        models.UnitMeasurement(normalizeCode(r.FormValue("unit_measurement"))),
		ABV:         abvFromForm(r.FormValue("abv")),
		Type:        models.IngredientType(normalizeCode(r.FormValue("type"))),
		Icon:        icon,
	}

	ingredient, err := catalog.NewIngredients(database).Create(r.Context(), in)
	if err != nil {
		renderIngredientFormError(w, r, 0, err)
		return
	}
	applog.Info(r.Context(), "ingredient created", "ingredientID", ingredient.ID, "name", ingredient.Name)
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponentStatus(w, r, http.StatusCreated, pages.IngredientSaved(*ingredient, true, true))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	if err := parseSubmission(r); err != nil {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid form submission."))
		return
	}

	patch, err := ingredientPatchFromForm(r)
	if err != nil {
		renderIngredientFormError(w, r, id, err)
		return
	}
	ingredient, err := catalog.NewIngredients(database).Update(r.Context(), id, patch)
	if err != nil {
		var missing *catalog.NotFoundError
		if errors.As(err, &missing) {
			renderError(w, r, err)
			return
		}
		renderIngredientFormError(w, r, id, err)
		return
	}
	applog.Info(r.Context(), "ingredient updated", "ingredientID", id)
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponent(w, r, pages.IngredientSaved(*ingredient, true, false))
}

func deleteIngredient(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	store := catalog.NewIngredients(database)
	ingredient, err := store.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if err := store.Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	applog.Info(r.Context(), "ingredient deleted", "ingredientID", id, "name", ingredient.Name)
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponent(w, r, pages.IngredientDeleted(*ingredient))
}

// ingredientPatchFromForm only touches the fields present in the submission.
// A blank abv clears the category.
func ingredientPatchFromForm(r *http.Request) (catalog.IngredientPatch, error) {
	var patch catalog.IngredientPatch
	if _, ok := r.Form["name"]; ok {
		name := r.FormValue("name")
		patch.Name = &name
	}
	if _, ok := r.Form["description"]; ok {
		description := r.FormValue("description")
		patch.Description = &description
	}
	if _, ok := r.Form["unit_measurement"]; ok {
		unit := models.UnitMeasurement(normalizeCode(r.FormValue("unit_measurement")))
		patch.Unit = &unit
	}
	if _, ok := r.Form["abv"]; ok {
		if category := abvFromForm(r.FormValue("abv")); category != nil {
			patch.ABV = category
		} else {
			patch.ClearABV = true
		}
	}
	if _, ok := r.Form["type"]; ok {
		kind := models.IngredientType(normalizeCode(r.FormValue("type")))
		patch.Type = &kind
	}
	icon, err := readIcon(r, "icon")
	if err != nil {
		return patch, err
	}
	patch.Icon = icon
	return patch, nil
}

func renderIngredientFormError(w http.ResponseWriter, r *http.Request, id uint, cause error) {
	status, message := errorStatus(cause)
	if status == http.StatusInternalServerError {
		renderError(w, r, cause)
		return
	}
	applog.Debug(r.Context(), "ingredient submission rejected", "ingredientID", id, "status", status, "error", cause)

	data := pages.IngredientFormData{
		IngredientID: id,
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Unit:         models.UnitMeasurement(normalizeCode(r.FormValue("unit_measurement"))),
		ABV:          normalizeCode(r.FormValue("abv")),
		Type:         models.IngredientType(normalizeCode(r.FormValue("type"))),
		Message:      message,
	}
	renderComponentStatus(w, r, status, pages.IngredientForm(data))
}

func normalizeCode(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// abvFromForm keeps unknown codes so validation can name them.
func abvFromForm(value string) *models.ABVCategory {
	code := normalizeCode(value)
	if code == "" {
		return nil
	}
	category := models.ABVCategory(code)
	return &category
}
