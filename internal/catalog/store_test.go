package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cocktaildb/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Ingredient{}, &models.Cocktail{}, &models.Component{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createIngredients(t *testing.T, db *gorm.DB, names ...string) []models.Ingredient {
	t.Helper()

	ingredients := make([]models.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient := models.Ingredient{Name: name, UnitMeasurement: models.UnitMilliliter, Type: models.TypeOther}
		require.NoError(t, db.Create(&ingredient).Error)
		ingredients = append(ingredients, ingredient)
	}
	return ingredients
}

func createCocktail(t *testing.T, store *Cocktails, name string, components Desired) *models.Cocktail {
	t.Helper()

	cocktail, err := store.Create(context.Background(), CocktailInput{
		Name:        name,
		Description: "A test cocktail",
		Components:  components,
	})
	require.NoError(t, err)
	return cocktail
}

func componentMapping(t *testing.T, db *gorm.DB, cocktailID uint) map[uint]int {
	t.Helper()

	var components []models.Component
	require.NoError(t, db.Where("cocktail_id = ?", cocktailID).Find(&components).Error)
	mapping := make(map[uint]int, len(components))
	for _, c := range components {
		_, dup := mapping[c.IngredientID]
		require.False(t, dup, "duplicate component for ingredient %d", c.IngredientID)
		mapping[c.IngredientID] = c.Quantity
	}
	return mapping
}

func cocktailNames(cocktails []models.Cocktail) []string {
	names := make([]string, 0, len(cocktails))
	for _, c := range cocktails {
		names = append(names, c.Name)
	}
	return names
}
