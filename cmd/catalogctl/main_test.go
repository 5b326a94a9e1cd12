package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cocktaildb/internal/catalog"
	"cocktaildb/internal/db"
	"cocktaildb/models"
)

func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(conn))

	original := openDatabaseFunc
	openDatabaseFunc = func(context.Context) (*gorm.DB, error) { return conn, nil }
	t.Cleanup(func() {
		openDatabaseFunc = original
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingredients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func createIngredient(t *testing.T, conn *gorm.DB, name string, unit models.UnitMeasurement) uint {
	t.Helper()
	ingredient, err := catalog.NewIngredients(conn).Create(context.Background(), catalog.IngredientInput{Name: name, Unit: unit})
	require.NoError(t, err)
	return ingredient.ID
}

func createCocktail(t *testing.T, conn *gorm.DB, name string, components catalog.Desired) uint {
	t.Helper()
	cocktail, err := catalog.NewCocktails(conn).Create(context.Background(), catalog.CocktailInput{
		Name:        name,
		Description: "House recipe",
		Components:  components,
	})
	require.NoError(t, err)
	return cocktail.ID
}

func TestMigrateCommand(t *testing.T) {
	withTestDatabase(t)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")
}

func TestSeedCommandIsIdempotent(t *testing.T) {
	withTestDatabase(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("created %d ingredients", len(db.DefaultIngredients())))

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 0 ingredients")
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	withTestDatabase(t)

	_, err := execute(t, "--log-level", "verbose", "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestEditorAdd(t *testing.T) {
	conn := withTestDatabase(t)

	out, err := execute(t, "editor", "add", "--email", "Bar@Example.com", "--name", "Bar", "--password", "password123")
	require.NoError(t, err)
	assert.Contains(t, out, "editor bar@example.com registered")

	var user models.User
	require.NoError(t, conn.Where("email = ?", "bar@example.com").First(&user).Error)
	assert.Equal(t, "Bar", user.Name)

	_, err = execute(t, "editor", "add", "--email", "bar@example.com", "--password", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestEditorAddReadsPasswordFromEnvironment(t *testing.T) {
	withTestDatabase(t)
	t.Setenv("CATALOG_EDITOR_PASSWORD", "short")

	_, err := execute(t, "editor", "add", "--email", "env@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestImportIngredientsCreatesAndUpdates(t *testing.T) {
	conn := withTestDatabase(t)
	createIngredient(t, conn, "White rum", models.UnitMilliliter)

	path := writeCSV(t, "Name,Description,Unit,ABV,Type\n"+
		"White rum,  Light   Cuban style ,ml,strong,strong part\n"+
		"Mint,Fresh leaves,pcs,free,vegetable\n"+
		"\n"+
		"Sugar syrup,,ml,,syrup\n")

	out, err := execute(t, "import-ingredients", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 ingredients from ingredients.csv (2 created, 1 updated)")

	rum, err := catalog.NewIngredients(conn).Lookup(context.Background(), "White rum")
	require.NoError(t, err)
	assert.Equal(t, "Light Cuban style", rum.Description)
	assert.Equal(t, models.TypeStrongPart, rum.Type)
	require.NotNil(t, rum.ABV)
	assert.Equal(t, models.ABVStrong, *rum.ABV)

	mint, err := catalog.NewIngredients(conn).Lookup(context.Background(), "Mint")
	require.NoError(t, err)
	assert.Equal(t, models.UnitPiece, mint.UnitMeasurement)

	syrup, err := catalog.NewIngredients(conn).Lookup(context.Background(), "Sugar syrup")
	require.NoError(t, err)
	assert.Nil(t, syrup.ABV)
}

func TestImportIngredientsDryRunWritesNothing(t *testing.T) {
	conn := withTestDatabase(t)
	path := writeCSV(t, "name,unit\nLime juice,ml\n")

	out, err := execute(t, "import-ingredients", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 ingredients in ingredients.csv are valid")

	var count int64
	require.NoError(t, conn.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestImportIngredientsReportsLine(t *testing.T) {
	conn := withTestDatabase(t)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown unit", "name,unit\nLime juice,ml\nGin,litre\n", `line 3: unknown unit "litre"`},
		{"short name", "name\nab\n", "line 2: name: must be between"},
		{"repeated name", "name\nGin\nTonic\nGin\n", `line 4: "Gin" repeats line 2`},
		{"missing name column", "title\nGin\n", "must include a name column"},
		{"empty file", "", "csv is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "import-ingredients", writeCSV(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	var count int64
	require.NoError(t, conn.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Zero(t, count, "a rejected sheet must not write any row")
}

func TestFilterCommand(t *testing.T) {
	conn := withTestDatabase(t)
	rum := createIngredient(t, conn, "White rum", models.UnitMilliliter)
	lime := createIngredient(t, conn, "Lime juice", models.UnitMilliliter)
	mint := createIngredient(t, conn, "Mint", models.UnitPiece)
	createCocktail(t, conn, "Daiquiri", catalog.Desired{rum: 50, lime: 20})
	createCocktail(t, conn, "Mojito", catalog.Desired{rum: 50, lime: 20, mint: 8})

	out, err := execute(t, "filter", "--ingredient", "White rum", "--ingredient", fmt.Sprint(lime))
	require.NoError(t, err)
	assert.Contains(t, out, "Daiquiri")
	assert.Contains(t, out, "Mojito")

	out, err = execute(t, "filter", "--ingredient", "Mint")
	require.NoError(t, err)
	assert.NotContains(t, out, "Daiquiri")
	assert.Contains(t, out, "Mojito")

	_, err = execute(t, "filter", "--ingredient", "Absinthe")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestBatchCommand(t *testing.T) {
	conn := withTestDatabase(t)
	rum := createIngredient(t, conn, "White rum", models.UnitMilliliter)
	lime := createIngredient(t, conn, "Lime juice", models.UnitMilliliter)
	id := createCocktail(t, conn, "Daiquiri", catalog.Desired{rum: 50, lime: 20})

	out, err := execute(t, "batch", fmt.Sprint(id), "--servings", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Daiquiri x 3")
	assert.Contains(t, out, "150 ml")
	assert.Contains(t, out, "60 ml")
	assert.Contains(t, out, "210 ml")

	_, err = execute(t, "batch", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cocktail id")

	_, err = execute(t, "batch", fmt.Sprint(id), "--servings", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrValidation)
}
