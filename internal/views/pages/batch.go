package pages

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"cocktaildb/internal/catalog"
	"cocktaildb/models"
)

// FormatQuantity renders a whole quantity with its unit code.
func FormatQuantity(value int, unit models.UnitMeasurement) string {
	return fmt.Sprintf("%d %s", value, unit)
}

// BatchCard renders the scaled ingredient list for a batch of servings.
func BatchCard(sheet catalog.BatchSheet) templ.Component {
	return fragment(func(ctx context.Context, h *html) error {
		h.f(`<section class="batch"><h4>%s × %d</h4>`, sheet.Cocktail, sheet.Servings)
		h.raw(`<table><thead><tr><th>#</th><th>Ingredient</th><th>Per serving</th><th>Total</th></tr></thead><tbody>`)
		for _, line := range sheet.Lines {
			h.f(`<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				line.Order, line.Name, FormatQuantity(line.PerServing, line.Unit), FormatQuantity(line.Total, line.Unit))
		}
		h.raw(`</tbody><tfoot>`)
		for _, total := range sheet.Totals {
			h.f(`<tr><th colspan="3">Total %s</th><td>%s</td></tr>`, total.Unit.Label(), FormatQuantity(total.Total, total.Unit))
		}
		h.raw(`</tfoot></table></section>`)
		return nil
	})
}
