package pages

import (
	"context"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"cocktaildb/models"
)

// ComposerRow is one pending component of the cocktail form.
type ComposerRow struct {
	Key          string
	IngredientID uint
	Name         string
	Unit         models.UnitMeasurement
	Quantity     int
}

// NewComposerRow builds a row with a fresh DOM key.
func NewComposerRow(ingredient models.Ingredient, quantity int) ComposerRow {
	return ComposerRow{
		Key:          uuid.NewString(),
		IngredientID: ingredient.ID,
		Name:         ingredient.Name,
		Unit:         ingredient.UnitMeasurement,
		Quantity:     quantity,
	}
}

// CocktailFormData is the state of the create and edit form, including the
// components pending submission.
type CocktailFormData struct {
	CocktailID  uint
	Name        string
	Description string
	Rows        []ComposerRow
	// Available lists ingredients not yet in Rows.
	Available []models.Ingredient
	Message   string
}

// IngredientIDs returns the pending ingredient ids in row order.
func (d CocktailFormData) IngredientIDs() []uint {
	ids := make([]uint, len(d.Rows))
	for i, row := range d.Rows {
		ids[i] = row.IngredientID
	}
	return ids
}

// Quantities returns the pending quantities in row order.
func (d CocktailFormData) Quantities() []int {
	quantities := make([]int, len(d.Rows))
	for i, row := range d.Rows {
		quantities[i] = row.Quantity
	}
	return quantities
}

// CocktailForm renders the cocktail composer. Adding or removing a component
// re-renders the whole form through GET /cocktails/form.
func CocktailForm(data CocktailFormData) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		if data.CocktailID == 0 {
			h.raw(`<form id="cocktail-form" hx-post="/cocktails" hx-target="#dialog" hx-encoding="multipart/form-data">`)
			h.raw(`<h3>New cocktail</h3>`)
		} else {
			h.f(`<form id="cocktail-form" hx-patch="/cocktails/%d" hx-target="#dialog" hx-encoding="multipart/form-data">`, data.CocktailID)
			h.f(`<h3>Edit %s</h3>`, data.Name)
			h.f(`<input type="hidden" name="id" value="%d">`, data.CocktailID)
		}
		if data.Message != "" {
			h.f(`<p class="alert" role="alert">%s</p>`, data.Message)
		}

		h.f(`<label>Name <input name="name" value="%s" required minlength="3" maxlength="512"></label>`, data.Name)
		h.f(`<label>Description <textarea name="description" required minlength="3" maxlength="1024">%s</textarea></label>`, data.Description)
		h.raw(`<label>Icon <input type="file" name="icon" accept="image/*"></label>`)
		h.f(`<input type="hidden" name="ingredients" value="%s">`, JoinIDs(data.IngredientIDs()))
		h.f(`<input type="hidden" name="quantities" value="%s">`, JoinInts(data.Quantities()))

		h.raw(`<table id="composer"><thead><tr><th>Ingredient</th><th>Quantity</th><th></th></tr></thead><tbody>`)
		if len(data.Rows) == 0 {
			h.raw(`<tr class="empty"><td colspan="3">Add at least one ingredient.</td></tr>`)
		}
		for _, row := range data.Rows {
			h.f(`<tr id="component-%s"><td>%s</td><td>%d %s</td>`, row.Key, row.Name, row.Quantity, row.Unit)
			h.f(`<td><button type="button" class="secondary" hx-get="/cocktails/form" hx-include="#cocktail-form" hx-vals='{"deleted": "%d"}' hx-target="#cocktail-form" hx-swap="outerHTML">Remove</button></td></tr>`, row.IngredientID)
		}
		h.raw(`</tbody></table>`)

		h.raw(`<fieldset role="group"><input name="ingredient_name" list="ingredient-options" placeholder="Ingredient" aria-label="Ingredient">`)
		h.raw(`<input type="number" name="quantity" min="0" placeholder="Quantity" aria-label="Quantity">`)
		h.raw(`<button type="button" hx-get="/cocktails/form" hx-include="#cocktail-form" hx-target="#cocktail-form" hx-swap="outerHTML">Add</button></fieldset>`)
		h.raw(`<datalist id="ingredient-options">`)
		for _, ingredient := range data.Available {
			h.f(`<option value="%s"></option>`, ingredient.Name)
		}
		h.raw(`</datalist><button type="submit">Save</button></form>`)
		return nil
	})
}
