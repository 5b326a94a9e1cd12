package pages

import (
	"context"

	"github.com/a-h/templ"

	"cocktaildb/models"
)

// CocktailFilters is the search and ingredient filter state of the cocktail table.
type CocktailFilters struct {
	Query       string
	Ingredients []uint
}

// Has reports whether the ingredient is part of the active filter.
func (f CocktailFilters) Has(id uint) bool {
	for _, selectedID := range f.Ingredients {
		if selectedID == id {
			return true
		}
	}
	return false
}

// CocktailListData feeds the cocktail table view.
type CocktailListData struct {
	Cocktails   []models.Cocktail
	Ingredients []models.Ingredient
	Filters     CocktailFilters
	Editor      bool
}

// CocktailList renders the searchable cocktail table with its ingredient filter.
func CocktailList(data CocktailListData) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.raw(`<section id="cocktails"><header class="section-header"><h2>Cocktails</h2>`)
		if data.Editor {
			h.raw(`<button hx-get="/cocktails/new" hx-target="#dialog">New cocktail</button>`)
		}
		h.raw(`</header><div class="grid filters">`)
		h.f(`<input type="search" name="q" value="%s" placeholder="Search cocktails" aria-label="Search cocktails" hx-post="/cocktails/search" hx-trigger="input changed delay:300ms, search" hx-swap="none">`, data.Filters.Query)
		h.raw(`<form hx-post="/cocktails/filter" hx-trigger="change" hx-swap="none"><select name="filters" multiple aria-label="Filter by ingredients">`)
		for _, ingredient := range data.Ingredients {
			h.f(`<option value="%d"%s>%s</option>`, ingredient.ID, selected(data.Filters.Has(ingredient.ID)), ingredient.Name)
		}
		h.raw(`</select></form></div><table class="striped"><thead><tr><th>Name</th><th>Description</th><th></th></tr></thead>`)
		h.component(ctx, CocktailRows(data.Cocktails, data.Editor, false))
		h.raw(`</table><div id="dialog"></div></section>`)
		return nil
	})
}

// CocktailRows renders the table body. With oob set it replaces the body in place.
func CocktailRows(cocktails []models.Cocktail, editor, oob bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.raw(`<tbody id="cocktail-list"`)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.raw(`>`)
		if len(cocktails) == 0 {
			h.raw(`<tr class="empty"><td colspan="3">No cocktails match.</td></tr>`)
		}
		for _, cocktail := range cocktails {
			h.component(ctx, CocktailRow(cocktail, editor, false))
		}
		h.raw(`</tbody>`)
		return nil
	})
}

// CocktailRow renders one table row.
func CocktailRow(cocktail models.Cocktail, editor, oob bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<tr id="cocktail-%d"`, cocktail.ID)
		if oob {
			h.raw(` hx-swap-oob="true"`)
		}
		h.f(`><td><a href="/cocktails/%d" hx-get="/cocktails/%d" hx-target="#dialog">%s</a></td>`, cocktail.ID, cocktail.ID, cocktail.Name)
		h.f(`<td>%s</td><td class="actions">`, DefaultDash(cocktail.DescriptionText()))
		if editor {
			h.f(`<button class="secondary" hx-get="/cocktails/%d/edit" hx-target="#dialog">Edit</button>`, cocktail.ID)
			h.f(`<button class="contrast" hx-delete="/cocktails/%d" hx-confirm="Delete %s?" hx-swap="none">Delete</button>`, cocktail.ID, cocktail.Name)
		}
		h.raw(`</td></tr>`)
		return nil
	})
}

// CocktailSaved confirms a create or update inside the dialog and refreshes the table row.
func CocktailSaved(cocktail models.Cocktail, editor, created bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<p class="status" role="status">"%s" saved.</p>`, cocktail.Name)
		if created {
			h.raw(`<template><tbody hx-swap-oob="beforeend:#cocktail-list">`)
			h.component(ctx, CocktailRow(cocktail, editor, false))
			h.raw(`</tbody></template>`)
			return nil
		}
		h.component(ctx, CocktailRow(cocktail, editor, true))
		return nil
	})
}

// CocktailDeleted removes the row of a deleted cocktail.
func CocktailDeleted(id uint) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<tr id="cocktail-%d" hx-swap-oob="delete"></tr>`, id)
		return nil
	})
}

// CocktailDetail renders a cocktail card with its components and the batch calculator.
func CocktailDetail(cocktail *models.Cocktail, editor bool) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		if cocktail == nil {
			h.raw(`<article class="empty">Cocktail not found.</article>`)
			return nil
		}
		h.f(`<article id="cocktail-detail-%d"><header>`, cocktail.ID)
		if len(cocktail.Icon) > 0 {
			h.f(`<img class="icon" src="/cocktails/%d/icon" alt="">`, cocktail.ID)
		}
		h.f(`<h3>%s</h3></header><p>%s</p>`, cocktail.Name, DefaultDash(cocktail.DescriptionText()))
		h.raw(`<table><thead><tr><th>Ingredient</th><th>Quantity</th></tr></thead><tbody>`)
		for _, component := range cocktail.Components {
			name, unit := componentLabel(component)
			h.f(`<tr><td>%s</td><td>%d %s</td></tr>`, name, component.Quantity, unit)
		}
		h.raw(`</tbody></table>`)
		h.f(`<form hx-get="/cocktails/%d/batch" hx-target="#batch-%d"><fieldset role="group">`, cocktail.ID, cocktail.ID)
		h.raw(`<input type="number" name="servings" min="1" max="500" value="1" aria-label="Servings"><button type="submit">Batch</button></fieldset></form>`)
		h.f(`<div id="batch-%d"></div><footer>`, cocktail.ID)
		if editor {
			h.f(`<button class="secondary" hx-get="/cocktails/%d/edit" hx-target="#dialog">Edit</button>`, cocktail.ID)
		}
		h.raw(`</footer></article>`)
		return nil
	})
}

func componentLabel(component models.Component) (string, models.UnitMeasurement) {
	if component.Ingredient == nil {
		return DefaultDash(""), models.UnitMilliliter
	}
	return component.Ingredient.Name, component.Ingredient.UnitMeasurement
}
