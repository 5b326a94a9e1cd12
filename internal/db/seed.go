package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	applog "cocktaildb/internal/log"
	"cocktaildb/models"
)

// ErrEditorExists is returned when an editor with the same email is already registered.
var ErrEditorExists = errors.New("editor already exists")

func abv(category models.ABVCategory) *models.ABVCategory {
	return &category
}

func spirit(name string) models.Ingredient {
	return models.Ingredient{Name: name, UnitMeasurement: models.UnitMilliliter, ABV: abv(models.ABVStrong), Type: models.TypeStrongPart}
}

func liqueur(name string, strength models.ABVCategory) models.Ingredient {
	return models.Ingredient{Name: name, UnitMeasurement: models.UnitMilliliter, ABV: abv(strength), Type: models.TypeLiquor}
}

func vermouth(name string) models.Ingredient {
	return models.Ingredient{Name: name, UnitMeasurement: models.UnitMilliliter, ABV: abv(models.ABVLow), Type: models.TypeVermouth}
}

func mixer(name string, kind models.IngredientType) models.Ingredient {
	return models.Ingredient{Name: name, UnitMeasurement: models.UnitMilliliter, ABV: abv(models.ABVFree), Type: kind}
}

// DefaultIngredients is the bar stock every fresh catalog starts with.
func DefaultIngredients() []models.Ingredient {
	return []models.Ingredient{
		spirit("Vodka"),
		spirit("Rum"),
		spirit("Spiced rum"),
		spirit("Whisky"),
		spirit("London dry gin"),
		spirit("White rum"),
		spirit("Cognac"),
		spirit("Aged rum"),
		spirit("Dark rum"),
		spirit("Gold rum"),
		liqueur("Absinthe", models.ABVStrong),
		liqueur("Sambuca", models.ABVStrong),
		liqueur("Triple sec", models.ABVStrong),
		liqueur("Coffee liqueur", models.ABVLow),
		liqueur("Maraschino liqueur", models.ABVStrong),
		liqueur("Irish cream", models.ABVLow),
		vermouth("Red vermouth"),
		vermouth("Dry vermouth"),
		vermouth("White vermouth"),
		vermouth("Rosé vermouth"),
		{Name: "Honey", UnitMeasurement: models.UnitMilliliter, Type: models.TypeOther},
		mixer("Soda water", models.TypeNonAlcoholicPart),
		mixer("Lemon-lime soda", models.TypeNonAlcoholicPart),
		mixer("Cola", models.TypeNonAlcoholicPart),
		mixer("Tonic water", models.TypeNonAlcoholicPart),
		mixer("Lemon juice", models.TypeNonAlcoholicPart),
		mixer("Lime juice", models.TypeNonAlcoholicPart),
		mixer("Orange juice", models.TypeNonAlcoholicPart),
		mixer("Apple juice", models.TypeNonAlcoholicPart),
		mixer("Sugar syrup", models.TypeSyrup),
		mixer("Honey syrup", models.TypeSyrup),
		mixer("Grenadine", models.TypeSyrup),
		mixer("Passion fruit syrup", models.TypeSyrup),
	}
}

// SeedIngredients inserts every default ingredient whose name is not yet in the
// catalog and returns how many rows were created. Existing rows are never touched.
func SeedIngredients(ctx context.Context, db *gorm.DB) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database handle is nil")
	}

	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var names []string
		if err := tx.Model(&models.Ingredient{}).Pluck("name", &names).Error; err != nil {
			return fmt.Errorf("list ingredient names: %w", err)
		}

		existing := make(map[string]struct{}, len(names))
		for _, name := range names {
			existing[name] = struct{}{}
		}

		var missing []models.Ingredient
		for _, ingredient := range DefaultIngredients() {
			if _, ok := existing[ingredient.Name]; ok {
				continue
			}
			missing = append(missing, ingredient)
		}
		if len(missing) == 0 {
			return nil
		}

		if err := tx.Create(&missing).Error; err != nil {
			return fmt.Errorf("insert default ingredients: %w", err)
		}
		created = len(missing)
		return nil
	})
	if err != nil {
		return 0, err
	}

	applog.Debug(ctx, "ingredient seed complete", "created", created)
	return created, nil
}

// CreateEditor registers an editor account with a bcrypt password hash.
func CreateEditor(ctx context.Context, db *gorm.DB, email, name, password string) (*models.User, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid editor email %q", email)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("editor password must be at least 8 characters")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check editor email: %w", err)
	}
	if count > 0 {
		return nil, ErrEditorExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Theme:        models.DefaultTheme,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create editor: %w", err)
	}
	return user, nil
}
