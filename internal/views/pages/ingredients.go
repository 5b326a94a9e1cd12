package pages

import (
	"context"

	"github.com/a-h/templ"

	"cocktaildb/models"
)

// IngredientList renders the ingredient ledger.
func IngredientList(ingredients []models.Ingredient, editor bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.raw(`<section id="ingredients"><header class="section-header"><h2>Ingredients</h2>`)
		if editor {
			h.raw(`<button hx-get="/ingredients/new" hx-target="#dialog">New ingredient</button>`)
		}
		h.raw(`</header><table class="striped"><thead><tr><th>Name</th><th>Type</th><th>Unit</th><th>ABV</th><th></th></tr></thead><tbody id="ingredient-list">`)
		if len(ingredients) == 0 {
			h.raw(`<tr class="empty"><td colspan="5">No ingredients yet.</td></tr>`)
		}
		for _, ingredient := range ingredients {
			h.component(ctx, IngredientRow(ingredient, editor, false))
		}
		h.raw(`</tbody></table><div id="dialog"></div></section>`)
		return nil
	})
}

// ABVLabel renders the strength category or a dash when none is set.
func ABVLabel(category *models.ABVCategory) string {
	if category == nil {
		return DefaultDash("")
	}
	return category.Label()
}

// IngredientRow renders one ledger row.
func IngredientRow(ingredient models.Ingredient, editor, oob bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<tr id="ingredient-%d"`, ingredient.ID)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.f(`><td><a href="/ingredients/%d" hx-get="/ingredients/%d" hx-target="#dialog">%s</a></td>`, ingredient.ID, ingredient.ID, ingredient.Name)
		h.f(`<td>%s</td><td>%s</td><td>%s</td><td class="actions">`, ingredient.Type.Label(), ingredient.UnitMeasurement.Label(), ABVLabel(ingredient.ABV))
		if editor {
			h.f(`<button class="secondary" hx-get="/ingredients/%d/edit" hx-target="#dialog">Edit</button>`, ingredient.ID)
			h.f(`<button class="contrast" hx-delete="/ingredients/%d" hx-confirm="Delete %s?" hx-target="#dialog">Delete</button>`, ingredient.ID, ingredient.Name)
		}
		h.raw(`</td></tr>`)
		return nil
	})
}

// IngredientDetail renders an ingredient card with the number of cocktails using it.
func IngredientDetail(ingredient *models.Ingredient, usage int64, editor bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		if ingredient == nil {
			h.raw(`<article class="empty">Ingredient not found.</article>`)
			return nil
		}
		h.f(`<article id="ingredient-detail-%d"><header><h3>%s</h3></header>`, ingredient.ID, ingredient.Name)
		h.f(`<p>%s</p><dl>`, DefaultDash(ingredient.Description))
		h.f(`<dt>Type</dt><dd>%s</dd><dt>Unit</dt><dd>%s</dd><dt>ABV</dt><dd>%s</dd>`, ingredient.Type.Label(), ingredient.UnitMeasurement.Label(), ABVLabel(ingredient.ABV))
		h.f(`<dt>Used in</dt><dd>%d cocktails</dd></dl>`, usage)
		if editor {
			h.f(`<footer><button class="secondary" hx-get="/ingredients/%d/edit" hx-target="#dialog">Edit</button></footer>`, ingredient.ID)
		}
		h.raw(`</article>`)
		return nil
	})
}

// IngredientFormData is the state of the ingredient create and edit form.
type IngredientFormData struct {
	IngredientID uint
	Name         string
	Description  string
	Unit         models.UnitMeasurement
	ABV          string
	Type         models.IngredientType
	Message      string
}

// IngredientFormFrom fills the form with a stored ingredient.
func IngredientFormFrom(ingredient *models.Ingredient) IngredientFormData {
	data := IngredientFormData{
		IngredientID: ingredient.ID,
		Name:         ingredient.Name,
		Description:  ingredient.Description,
		Unit:         ingredient.UnitMeasurement,
		Type:         ingredient.Type,
	}
	if ingredient.ABV != nil {
		data.ABV = string(*ingredient.ABV)
	}
	return data
}

// IngredientForm renders the ingredient editor.
func IngredientForm(data IngredientFormData) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		if data.IngredientID == 0 {
			h.raw(`<form id="ingredient-form" hx-post="/ingredients" hx-target="#dialog"><h3>New ingredient</h3>`)
		} else {
			h.f(`<form id="ingredient-form" hx-patch="/ingredients/%d" hx-target="#dialog"><h3>Edit %s</h3>`, data.IngredientID, data.Name)
		}
		if data.Message != "" {
			h.f(`<p class="alert" role="alert">%s</p>`, data.Message)
		}
		h.f(`<label>Name <input name="name" value="%s" required minlength="3" maxlength="512"></label>`, data.Name)
		h.f(`<label>Description <textarea name="description" maxlength="512">%s</textarea></label>`, data.Description)

		h.raw(`<label>Unit <select name="unit_measurement">`)
		for _, unit := range models.Units() {
			h.f(`<option value="%s"%s>%s</option>`, unit, selected(unit == data.Unit), unit.Label())
		}
		h.raw(`</select></label><label>ABV <select name="abv">`)
		h.f(`<option value=""%s>%s</option>`, selected(data.ABV == ""), DefaultDash(""))
		for _, category := range models.ABVCategories() {
			h.f(`<option value="%s"%s>%s</option>`, category, selected(string(category) == data.ABV), category.Label())
		}
		h.raw(`</select></label><label>Type <select name="type">`)
		for _, kind := range models.IngredientTypes() {
			h.f(`<option value="%s"%s>%s</option>`, kind, selected(kind == data.Type), kind.Label())
		}
		h.raw(`</select></label><button type="submit">Save</button></form>`)
		return nil
	})
}

// IngredientSaved confirms a create or update and refreshes the ledger.
func IngredientSaved(ingredient models.Ingredient, editor, created bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<p class="status" role="status">"%s" saved.</p>`, ingredient.Name)
		if created {
			h.raw(`<template><tbody hx-swap-oob="beforeend:#ingredient-list">`)
			h.component(ctx, IngredientRow(ingredient, editor, false))
			h.raw(`</tbody></template>`)
			return nil
		}
		h.component(ctx, IngredientRow(ingredient, editor, true))
		return nil
	})
}

// IngredientDeleted confirms a deletion and removes the ledger row.
func IngredientDeleted(ingredient models.Ingredient) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<p class="status" role="status">"%s" deleted.</p>`, ingredient.Name)
		h.f(`<tr id="ingredient-%d" hx-swap-oob="delete"></tr>`, ingredient.ID)
		return nil
	})
}
