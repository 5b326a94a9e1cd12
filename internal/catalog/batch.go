package catalog

import (
	"fmt"
	"sort"

	"cocktaildb/models"
)

const (
	MinServings = 1
	MaxServings = 500
)

// BatchLine is one scaled component of a batch sheet.
type BatchLine struct {
	Order        int
	IngredientID uint
	Name         string
	Type         models.IngredientType
	Unit         models.UnitMeasurement
	PerServing   int
	Total        int
}

// UnitTotal sums every line measured in the same unit.
type UnitTotal struct {
	Unit  models.UnitMeasurement
	Total int
}

// BatchSheet lists what a bar needs to prepare a number of servings of one cocktail.
type BatchSheet struct {
	CocktailID uint
	Cocktail   string
	Servings   int
	Lines      []BatchLine
	Totals     []UnitTotal
}

// Batch scales the components of cocktail by servings. Components must have
// their ingredient loaded; lines are ordered by ingredient type and then name.
func Batch(cocktail models.Cocktail, servings int) (BatchSheet, error) {
	if servings < MinServings || servings > MaxServings {
		return BatchSheet{}, invalid("servings", "must be between %d and %d", MinServings, MaxServings)
	}
	if len(cocktail.Components) == 0 {
		return BatchSheet{}, invalid("ingredients", "cocktail %d has no components", cocktail.ID)
	}

	lines := make([]BatchLine, 0, len(cocktail.Components))
	sums := make(map[models.UnitMeasurement]int)
	for _, component := range cocktail.Components {
		line := BatchLine{
			IngredientID: component.IngredientID,
			Name:         fmt.Sprintf("Ingredient #%d", component.IngredientID),
			Type:         models.DefaultIngredientType,
			Unit:         models.UnitMilliliter,
			PerServing:   component.Quantity,
			Total:        component.Quantity * servings,
		}
		if component.Ingredient != nil {
			line.Name = component.Ingredient.Name
			line.Type = component.Ingredient.Type
			line.Unit = component.Ingredient.UnitMeasurement
		}
		lines = append(lines, line)
		sums[line.Unit] += line.Total
	}

	sortBatchLines(lines)
	for idx := range lines {
		lines[idx].Order = idx + 1
	}

	var totals []UnitTotal
	for _, unit := range models.Units() {
		if total, ok := sums[unit]; ok {
			totals = append(totals, UnitTotal{Unit: unit, Total: total})
		}
	}

	return BatchSheet{
		CocktailID: cocktail.ID,
		Cocktail:   cocktail.Name,
		Servings:   servings,
		Lines:      lines,
		Totals:     totals,
	}, nil
}

func sortBatchLines(lines []BatchLine) {
	rank := make(map[models.IngredientType]int)
	for idx, kind := range models.IngredientTypes() {
		rank[kind] = idx
	}
	sort.SliceStable(lines, func(i, j int) bool {
		ri, rj := rank[lines[i].Type], rank[lines[j].Type]
		if ri != rj {
			return ri < rj
		}
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].IngredientID < lines[j].IngredientID
	})
}
