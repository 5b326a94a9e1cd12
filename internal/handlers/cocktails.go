package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cocktaildb/internal/catalog"
	applog "cocktaildb/internal/log"
	"cocktaildb/internal/views/pages"
	"cocktaildb/models"
)

const catalogChangedEvent = "catalog-changed"

// Cocktails serves the cocktail table and accepts new cocktails.
func Cocktails(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		listCocktails(w, r)
	case http.MethodPost:
		createCocktail(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// CocktailResource dispatches /cocktails/{id} and its edit, batch and icon sub-resources.
func CocktailResource(w http.ResponseWriter, r *http.Request) {
	if !requireDatabase(w, r) {
		return
	}
	id, action, ok := resourcePath(r.URL.Path, "/cocktails/")
	if !ok {
		applog.Debug(r.Context(), "unrecognised cocktail path", "path", r.URL.Path)
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			showCocktail(w, r, id)
		case http.MethodPatch, http.MethodPut, http.MethodPost:
			updateCocktail(w, r, id)
		case http.MethodDelete:
			deleteCocktail(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "edit":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		editCocktail(w, r, id)
	case "batch":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		batchCocktail(w, r, id)
	case "icon":
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		cocktailIcon(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// CocktailSearch replaces the table body with the cocktails whose name contains q.
func CocktailSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid search submission."))
		return
	}

	query := strings.TrimSpace(r.FormValue("q"))
	cocktails, err := catalog.NewCocktails(database).Search(r.Context(), query)
	if err != nil {
		renderError(w, r, err)
		return
	}
	applog.Debug(r.Context(), "cocktail search", "query", query, "results", len(cocktails))
	renderComponent(w, r, pages.CocktailRows(cocktails, ActiveSession(r), true))
}

// CocktailFilter replaces the table body with the cocktails containing every selected ingredient.
func CocktailFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid filter submission."))
		return
	}

	required, err := parseIDList("filters", r.Form["filters"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	cocktails, err := catalog.NewCocktails(database).FilterByIngredients(r.Context(), required)
	if err != nil {
		renderError(w, r, err)
		return
	}
	applog.Debug(r.Context(), "cocktail filter", "ingredients", len(required), "results", len(cocktails))
	renderComponent(w, r, pages.CocktailRows(cocktails, ActiveSession(r), true))
}

// NewCocktail renders an empty composer.
func NewCocktail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	data, err := composerState(r.Context(), 0, nil, nil)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderComponent(w, r, pages.CocktailForm(data))
}

// CocktailComposer re-renders the composer after a component is added or removed.
// The pending components travel in the ingredients and quantities fields.
func CocktailComposer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireDatabase(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid form state."))
		return
	}

	ids, quantities, err := parseComponents(r)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if len(ids) != len(quantities) {
		renderError(w, r, &catalog.ValidationError{Field: "quantities", Reason: "must have one entry per ingredient"})
		return
	}

	message := ""
	if deleted := strings.TrimSpace(r.Form.Get("deleted")); deleted != "" {
		ids, quantities = removeComponent(ids, quantities, pages.ParseUint(deleted))
	}
	if name := strings.TrimSpace(r.Form.Get("ingredient_name")); name != "" {
		ingredient, err := catalog.NewIngredients(database).Lookup(r.Context(), name)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			message = fmt.Sprintf("Unknown ingredient %q.", name)
		case err != nil:
			renderError(w, r, err)
			return
		default:
			quantity, convErr := strconv.Atoi(strings.TrimSpace(r.Form.Get("quantity")))
			if convErr != nil || quantity < 0 {
				message = "Quantity must be a whole number of at least 0."
				break
			}
			ids, quantities = upsertComponent(ids, quantities, ingredient.ID, quantity)
		}
	}

	data, err := composerState(r.Context(), pages.ParseUint(r.Form.Get("id")), ids, quantities)
	if err != nil {
		renderError(w, r, err)
		return
	}
	data.Name = r.Form.Get("name")
	data.Description = r.Form.Get("description")
	data.Message = message
	renderComponent(w, r, pages.CocktailForm(data))
}

func listCocktails(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := pages.CocktailFilters{Query: strings.TrimSpace(query.Get("q"))}
	required, err := parseIDList("filters", query["filters"])
	if err != nil {
		renderError(w, r, err)
		return
	}
	filters.Ingredients = required

	store := catalog.NewCocktails(database)
	var cocktails []models.Cocktail
	switch {
	case len(filters.Ingredients) > 0:
		cocktails, err = store.FilterByIngredients(r.Context(), filters.Ingredients)
		cocktails = nameContains(cocktails, filters.Query)
	case filters.Query != "":
		cocktails, err = store.Search(r.Context(), filters.Query)
	default:
		cocktails, err = store.List(r.Context())
	}
	if err != nil {
		renderError(w, r, err)
		return
	}

	ingredients, err := catalog.NewIngredients(database).List(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderPage(w, r, "Cocktails", pages.CocktailList(pages.CocktailListData{
		Cocktails:   cocktails,
		Ingredients: ingredients,
		Filters:     filters,
		Editor:      ActiveSession(r),
	}))
}

func showCocktail(w http.ResponseWriter, r *http.Request, id uint) {
	cocktail, err := catalog.NewCocktails(database).Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderPage(w, r, cocktail.Name, pages.CocktailDetail(cocktail, ActiveSession(r)))
}

func editCocktail(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	cocktail, err := catalog.NewCocktails(database).Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	ids := make([]uint, 0, len(cocktail.Components))
	quantities := make([]int, 0, len(cocktail.Components))
	for _, component := range cocktail.Components {
		ids = append(ids, component.IngredientID)
		quantities = append(quantities, component.Quantity)
	}
	data, err := composerState(r.Context(), cocktail.ID, ids, quantities)
	if err != nil {
		renderError(w, r, err)
		return
	}
	data.Name = cocktail.Name
	data.Description = cocktail.DescriptionText()
	renderComponent(w, r, pages.CocktailForm(data))
}

func createCocktail(w http.ResponseWriter, r *http.Request) {
	if !requireEditor(w, r) {
		return
	}
	if err := parseSubmission(r); err != nil {
		applog.Debug(r.Context(), "failed to parse cocktail form", "error", err)
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid form submission."))
		return
	}

	in, ids, quantities, err := cocktailInputFromForm(r)
	if err != nil {
		renderCocktailFormError(w, r, 0, ids, quantities, err)
		return
	}
	cocktail, err := catalog.NewCocktails(database).Create(r.Context(), in)
	if err != nil {
		renderCocktailFormError(w, r, 0, ids, quantities, err)
		return
	}

	applog.Info(r.Context(), "cocktail created", "cocktailID", cocktail.ID, "components", len(cocktail.Components))
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponentStatus(w, r, http.StatusCreated, pages.CocktailSaved(*cocktail, true, true))
}

func updateCocktail(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	if err := parseSubmission(r); err != nil {
		applog.Debug(r.Context(), "failed to parse cocktail form", "error", err)
		renderComponentStatus(w, r, http.StatusBadRequest, pages.Alert("Invalid form submission."))
		return
	}

	in, ids, quantities, err := cocktailInputFromForm(r)
	if err != nil {
		renderCocktailFormError(w, r, id, ids, quantities, err)
		return
	}
	cocktail, plan, err := catalog.NewCocktails(database).Update(r.Context(), id, in)
	if err != nil {
		var missing *catalog.NotFoundError
		if errors.As(err, &missing) && missing.Entity == "cocktail" {
			renderError(w, r, err)
			return
		}
		renderCocktailFormError(w, r, id, ids, quantities, err)
		return
	}

	applog.Info(r.Context(), "cocktail updated",
		"cocktailID", id,
		"deleted", len(plan.Delete),
		"updated", len(plan.Update),
		"inserted", len(plan.Insert),
	)
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponent(w, r, pages.CocktailSaved(*cocktail, true, false))
}

func deleteCocktail(w http.ResponseWriter, r *http.Request, id uint) {
	if !requireEditor(w, r) {
		return
	}
	if err := catalog.NewCocktails(database).Delete(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	applog.Info(r.Context(), "cocktail deleted", "cocktailID", id)
	setHTMXTrigger(w, catalogChangedEvent)
	renderComponent(w, r, pages.CocktailDeleted(id))
}

func batchCocktail(w http.ResponseWriter, r *http.Request, id uint) {
	servings := catalog.MinServings
	if raw := strings.TrimSpace(r.URL.Query().Get("servings")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			renderError(w, r, &catalog.ValidationError{Field: "servings", Reason: fmt.Sprintf("%q is not a whole number", raw)})
			return
		}
		servings = parsed
	}

	cocktail, err := catalog.NewCocktails(database).Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	sheet, err := catalog.Batch(*cocktail, servings)
	if err != nil {
		renderError(w, r, err)
		return
	}
	renderComponent(w, r, pages.BatchCard(sheet))
}

func cocktailIcon(w http.ResponseWriter, r *http.Request, id uint) {
	icon, err := catalog.NewCocktails(database).Icon(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to load cocktail icon", "cocktailID", id, "error", err)
		http.Error(w, internalMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(icon))
	w.Header().Set("Cache-Control", "private, max-age=300")
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(icon); err != nil {
		applog.Debug(r.Context(), "failed to write cocktail icon", "error", err)
	}
}

// cocktailInputFromForm also returns the raw component lists so a rejected form can be re-rendered.
func cocktailInputFromForm(r *http.Request) (catalog.CocktailInput, []uint, []int, error) {
	ids, quantities, err := parseComponents(r)
	if err != nil {
		return catalog.CocktailInput{}, ids, quantities, err
	}
	desired, err := catalog.NewDesired(ids, quantities)
	if err != nil {
		return catalog.CocktailInput{}, ids, quantities, err
	}
	icon, err := readIcon(r, "icon")
	if err != nil {
		return catalog.CocktailInput{}, ids, quantities, err
	}
	return catalog.CocktailInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Icon:        icon,
		Components:  desired,
	}, ids, quantities, nil
}

func renderCocktailFormError(w http.ResponseWriter, r *http.Request, cocktailID uint, ids []uint, quantities []int, cause error) {
	status, message := errorStatus(cause)
	if status == http.StatusInternalServerError {
		renderError(w, r, cause)
		return
	}
	applog.Debug(r.Context(), "cocktail submission rejected", "cocktailID", cocktailID, "status", status, "error", cause)

	data, err := composerState(r.Context(), cocktailID, ids, quantities)
	if err != nil {
		renderError(w, r, err)
		return
	}
	data.Name = r.FormValue("name")
	data.Description = r.FormValue("description")
	data.Message = message
	renderComponentStatus(w, r, status, pages.CocktailForm(data))
}

// nameContains narrows cocktails to names containing query, ignoring case.
func nameContains(cocktails []models.Cocktail, query string) []models.Cocktail {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return cocktails
	}
	matched := cocktails[:0:0]
	for _, cocktail := range cocktails {
		if strings.Contains(strings.ToLower(cocktail.Name), needle) {
			matched = append(matched, cocktail)
		}
	}
	return matched
}

// composerState pairs ids with quantities and resolves the ingredient names shown in the composer.
// Ids unknown to the catalog stay in the form so the submission reports them.
func composerState(ctx context.Context, cocktailID uint, ids []uint, quantities []int) (pages.CocktailFormData, error) {
	data := pages.CocktailFormData{CocktailID: cocktailID}

	all, err := catalog.NewIngredients(database).List(ctx)
	if err != nil {
		return data, err
	}
	byID := make(map[uint]models.Ingredient, len(all))
	for _, ingredient := range all {
		byID[ingredient.ID] = ingredient
	}

	pending := make(map[uint]struct{}, len(ids))
	for i, id := range ids {
		quantity := 0
		if i < len(quantities) {
			quantity = quantities[i]
		}
		ingredient, ok := byID[id]
		if !ok {
			ingredient = models.Ingredient{
				Model:           models.Model{ID: id},
				Name:            fmt.Sprintf("Ingredient #%d", id),
				UnitMeasurement: models.UnitMilliliter,
			}
		}
		data.Rows = append(data.Rows, pages.NewComposerRow(ingredient, quantity))
		pending[id] = struct{}{}
	}

	for _, ingredient := range all {
		if _, ok := pending[ingredient.ID]; !ok {
			data.Available = append(data.Available, ingredient)
		}
	}
	return data, nil
}

func removeComponent(ids []uint, quantities []int, target uint) ([]uint, []int) {
	keptIDs := ids[:0:0]
	keptQuantities := quantities[:0:0]
	for i, id := range ids {
		if id == target {
			continue
		}
		keptIDs = append(keptIDs, id)
		keptQuantities = append(keptQuantities, quantities[i])
	}
	return keptIDs, keptQuantities
}

// upsertComponent replaces the quantity of a pending ingredient or appends it.
func upsertComponent(ids []uint, quantities []int, id uint, quantity int) ([]uint, []int) {
	for i, existing := range ids {
		if existing == id {
			quantities[i] = quantity
			return ids, quantities
		}
	}
	return append(ids, id), append(quantities, quantity)
}
