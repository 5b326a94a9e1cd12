package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktaildb/models"
)

func TestBatchScalesAndGroupsByUnit(t *testing.T) {
	cocktail := models.Cocktail{
		Model: models.Model{ID: 3},
		Name:  "Daiquiri",
		Components: []models.Component{
			{IngredientID: 2, Quantity: 30, Ingredient: &models.Ingredient{Name: "Lime juice", UnitMeasurement: models.UnitMilliliter, Type: models.TypeNonAlcoholicPart}},
			{IngredientID: 1, Quantity: 60, Ingredient: &models.Ingredient{Name: "White rum", UnitMeasurement: models.UnitMilliliter, Type: models.TypeStrongPart}},
			{IngredientID: 4, Quantity: 1, Ingredient: &models.Ingredient{Name: "Lime wheel", UnitMeasurement: models.UnitPiece, Type: models.TypeFruit}},
			{IngredientID: 3, Quantity: 15, Ingredient: &models.Ingredient{Name: "Sugar syrup", UnitMeasurement: models.UnitMilliliter, Type: models.TypeSyrup}},
		},
	}

	sheet, err := Batch(cocktail, 8)
	require.NoError(t, err)
	assert.Equal(t, "Daiquiri", sheet.Cocktail)
	assert.Equal(t, 8, sheet.Servings)

	var names []string
	for i, line := range sheet.Lines {
		assert.Equal(t, i+1, line.Order)
		names = append(names, line.Name)
	}
	assert.Equal(t, []string{"White rum", "Lime juice", "Sugar syrup", "Lime wheel"}, names)
	assert.Equal(t, 480, sheet.Lines[0].Total)
	assert.Equal(t, 60, sheet.Lines[0].PerServing)

	assert.Equal(t, []UnitTotal{
		{Unit: models.UnitMilliliter, Total: 840},
		{Unit: models.UnitPiece, Total: 8},
	}, sheet.Totals)
}

func TestBatchRejectsInvalidServings(t *testing.T) {
	cocktail := models.Cocktail{Components: []models.Component{{IngredientID: 1, Quantity: 10}}}

	for _, servings := range []int{0, -1, MaxServings + 1} {
		_, err := Batch(cocktail, servings)
		assert.ErrorIs(t, err, ErrValidation, "servings %d", servings)
	}

	_, err := Batch(models.Cocktail{}, 2)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBatchFallsBackWithoutLoadedIngredient(t *testing.T) {
	sheet, err := Batch(models.Cocktail{Components: []models.Component{{IngredientID: 9, Quantity: 5}}}, 2)
	require.NoError(t, err)
	require.Len(t, sheet.Lines, 1)
	assert.Equal(t, "Ingredient #9", sheet.Lines[0].Name)
	assert.Equal(t, 10, sheet.Totals[0].Total)
}
