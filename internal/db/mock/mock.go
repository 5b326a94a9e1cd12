package mock

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cocktaildb/internal/db"
	applog "cocktaildb/internal/log"
	"cocktaildb/models"
)

const (
	// EditorEmail and EditorPassword sign in to the seeded mock catalog.
	EditorEmail    = "editor@cocktaildb.local"
	EditorPassword = "muddler1"
)

type recipe struct {
	name        string
	description string
	parts       map[string]int
}

var recipes = []recipe{
	{
		name:        "Daiquiri",
		description: "White rum shaken hard with lime and sugar, served up.",
		parts:       map[string]int{"White rum": 60, "Lime juice": 30, "Sugar syrup": 15},
	},
	{
		name:        "Cuba Libre",
		description: "Rum and cola built over ice with a squeeze of lime.",
		parts:       map[string]int{"White rum": 50, "Cola": 120, "Lime juice": 10},
	},
	{
		name:        "Dry Martini",
		description: "London dry gin stirred with a whisper of dry vermouth.",
		parts:       map[string]int{"London dry gin": 60, "Dry vermouth": 10},
	},
	{
		name:        "Manhattan",
		description: "Whisky and red vermouth stirred and served up.",
		parts:       map[string]int{"Whisky": 50, "Red vermouth": 25},
	},
	{
		name:        "Screwdriver",
		description: "Vodka lengthened with fresh orange juice.",
		parts:       map[string]int{"Vodka": 50, "Orange juice": 150},
	},
	{
		name:        "Gin and Tonic",
		description: "Gin topped with tonic water over plenty of ice.",
		parts:       map[string]int{"London dry gin": 50, "Tonic water": 150},
	},
}

// New returns an in-memory sqlite database seeded with the default bar stock,
// a handful of classic cocktails and one editor account.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := gorm.Open(sqlite.Open("file:cocktaildb-mock?mode=memory&cache=shared"), db.Options(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	if _, err := db.SeedIngredients(ctx, database); err != nil {
		return err
	}

	var ingredients []models.Ingredient
	if err := database.WithContext(ctx).Find(&ingredients).Error; err != nil {
		return err
	}
	byName := make(map[string]uint, len(ingredients))
	for _, ingredient := range ingredients {
		byName[ingredient.Name] = ingredient.ID
	}

	var cocktails int64
	if err := database.WithContext(ctx).Model(&models.Cocktail{}).Count(&cocktails).Error; err != nil {
		return err
	}
	if cocktails == 0 {
		if err := seedCocktails(ctx, database, byName); err != nil {
			return err
		}
	}

	var editors int64
	if err := database.WithContext(ctx).Model(&models.User{}).Where("email = ?", EditorEmail).Count(&editors).Error; err != nil {
		return err
	}
	if editors > 0 {
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte(EditorPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Mock Editor",
		Email:        EditorEmail,
		PasswordHash: string(password),
		Theme:        models.DefaultTheme,
	}
	return database.WithContext(ctx).Create(user).Error
}

func seedCocktails(ctx context.Context, database *gorm.DB, byName map[string]uint) error {
	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range recipes {
			description := r.description
			cocktail := models.Cocktail{Name: r.name, Description: &description}
			for name, quantity := range r.parts {
				id, ok := byName[name]
				if !ok {
					return fmt.Errorf("mock recipe %s references unknown ingredient %s", r.name, name)
				}
				cocktail.Components = append(cocktail.Components, models.Component{IngredientID: id, Quantity: quantity})
			}
			if err := tx.Create(&cocktail).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
