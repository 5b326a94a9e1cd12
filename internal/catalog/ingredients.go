package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"cocktaildb/models"
)

const maxIngredientDescLen = 512

// IngredientInput describes a new ingredient. Blank Unit and Type fall back
// to milliliters and DefaultIngredientType.
type IngredientInput struct {
	Name        string
	Description string
	Unit        models.UnitMeasurement
	ABV         *models.ABVCategory
	Type        models.IngredientType
	Icon        []byte
}

func (in IngredientInput) withDefaults() IngredientInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Unit == "" {
		in.Unit = models.UnitMilliliter
	}
	if in.Type == "" {
		in.Type = models.DefaultIngredientType
	}
	return in
}

// Validate checks lengths and enum membership after defaults are applied.
func (in IngredientInput) Validate() error {
	in = in.withDefaults()
	if n := utf8.RuneCountInString(in.Name); n < minNameLength || n > maxNameLength {
		return invalid("name", "must be between %d and %d characters", minNameLength, maxNameLength)
	}
	if utf8.RuneCountInString(in.Description) > maxIngredientDescLen {
		return invalid("description", "must be at most %d characters", maxIngredientDescLen)
	}
	if !in.Unit.Valid() {
		return invalid("unit_measurement", "unknown unit %q", in.Unit)
	}
	if in.ABV != nil && !in.ABV.Valid() {
		return invalid("abv", "unknown category %q", *in.ABV)
	}
	if !in.Type.Valid() {
		return invalid("type", "unknown type %q", in.Type)
	}
	return nil
}

// IngredientPatch carries a partial ingredient update; nil fields are kept.
// ClearABV removes the strength category and wins over ABV.
type IngredientPatch struct {
	Name        *string
	Description *string
	Unit        *models.UnitMeasurement
	ABV         *models.ABVCategory
	ClearABV    bool
	Type        *models.IngredientType
	Icon        []byte
}

func (p IngredientPatch) applyTo(ingredient *models.Ingredient) {
	if p.Name != nil {
		ingredient.Name = *p.Name
	}
	if p.Description != nil {
		ingredient.Description = *p.Description
	}
	if p.Unit != nil {
		ingredient.UnitMeasurement = *p.Unit
	}
	if p.ABV != nil {
		category := *p.ABV
		ingredient.ABV = &category
	}
	if p.ClearABV {
		ingredient.ABV = nil
	}
	if p.Type != nil {
		ingredient.Type = *p.Type
	}
	if p.Icon != nil {
		ingredient.Icon = p.Icon
	}
}

// Ingredients manages the ingredient catalog.
type Ingredients struct {
	db *gorm.DB
}

func NewIngredients(db *gorm.DB) *Ingredients {
	return &Ingredients{db: db}
}

// List returns every ingredient ordered by name.
func (s *Ingredients) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("name").Order("id").Find(&ingredients).Error; err != nil {
		return nil, persistence("list ingredients", err)
	}
	return ingredients, nil
}

// ByIDs returns the ingredients with the given ids, ordered by name. Unknown ids are skipped.
func (s *Ingredients) ByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("name").Order("id").Find(&ingredients).Error; err != nil {
		return nil, persistence("list ingredients", err)
	}
	return ingredients, nil
}

func (s *Ingredients) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *Ingredients) get(tx *gorm.DB, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := tx.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "ingredient", ID: id}
		}
		return nil, persistence("get ingredient", err)
	}
	return &ingredient, nil
}

// Lookup finds an ingredient by its exact name.
func (s *Ingredients) Lookup(ctx context.Context, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "ingredient", Name: name}
		}
		return nil, persistence("lookup ingredient", err)
	}
	return &ingredient, nil
}

func (s *Ingredients) Create(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.withDefaults()

	ingredient := models.Ingredient{
		Name:            in.Name,
		Description:     in.Description,
		UnitMeasurement: in.Unit,
		ABV:             in.ABV,
		Type:            in.Type,
		Icon:            in.Icon,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, persistence("create ingredient", err)
	}
	return &ingredient, nil
}

// Update applies a partial change and validates the merged result before saving.
func (s *Ingredients) Update(ctx context.Context, id uint, patch IngredientPatch) (*models.Ingredient, error) {
	var updated *models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredient, err := s.get(tx, id)
		if err != nil {
			return err
		}

		patch.applyTo(ingredient)
		merged := IngredientInput{
			Name:        ingredient.Name,
			Description: ingredient.Description,
			Unit:        ingredient.UnitMeasurement,
			ABV:         ingredient.ABV,
			Type:        ingredient.Type,
		}
		if err := merged.Validate(); err != nil {
			return err
		}
		merged = merged.withDefaults()
		ingredient.Name = merged.Name
		ingredient.Description = merged.Description
		ingredient.UnitMeasurement = merged.Unit
		ingredient.Type = merged.Type

		if err := tx.Save(ingredient).Error; err != nil {
			return persistence("update ingredient", err)
		}
		updated = ingredient
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an ingredient. Ingredients still used by a cocktail are
// rejected with ErrIngredientInUse.
func (s *Ingredients) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.get(tx, id); err != nil {
			return err
		}

		inUse, err := usageCount(tx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("ingredient %d referenced by %d cocktails: %w", id, inUse, ErrIngredientInUse)
		}

		if err := tx.Delete(&models.Ingredient{}, id).Error; err != nil {
			return persistence("delete ingredient", err)
		}
		return nil
	})
}

// UsageCount returns how many cocktails reference the ingredient.
func (s *Ingredients) UsageCount(ctx context.Context, id uint) (int64, error) {
	return usageCount(s.db.WithContext(ctx), id)
}

func usageCount(tx *gorm.DB, id uint) (int64, error) {
	var count int64
	if err := tx.Model(&models.Component{}).Where("ingredient_id = ?", id).Distinct("cocktail_id").Count(&count).Error; err != nil {
		return 0, persistence("count ingredient usage", err)
	}
	return count, nil
}
