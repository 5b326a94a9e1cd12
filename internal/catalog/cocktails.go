package catalog

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"cocktaildb/models"
)

const (
	minNameLength        = 3
	maxNameLength        = 512
	minDescriptionLength = 3
	maxCocktailDescLen   = 1024
)

// CocktailInput is a validated create or update request for a cocktail.
// A nil Icon leaves the stored icon untouched on update.
type CocktailInput struct {
	Name        string
	Description string
	Icon        []byte
	Components  Desired
}

// Validate checks field lengths and that at least one component is present.
func (in CocktailInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return invalid("name", "must be between %d and %d characters", minNameLength, maxNameLength)
	}
	description := strings.TrimSpace(in.Description)
	if n := utf8.RuneCountInString(description); n < minDescriptionLength || n > maxCocktailDescLen {
		return invalid("description", "must be between %d and %d characters", minDescriptionLength, maxCocktailDescLen)
	}
	if len(in.Components) == 0 {
		return invalid("ingredients", "at least one ingredient is required")
	}
	for id, quantity := range in.Components {
		if id == 0 {
			return invalid("ingredients", "ingredient id must be positive")
		}
		if quantity < 0 {
			return invalid("quantities", "quantity for ingredient %d must not be negative", id)
		}
	}
	return nil
}

// Cocktails reads and writes cocktails together with their components.
type Cocktails struct {
	db *gorm.DB
}

func NewCocktails(db *gorm.DB) *Cocktails {
	return &Cocktails{db: db}
}

// List returns every cocktail ordered by id, without components.
func (s *Cocktails) List(ctx context.Context) ([]models.Cocktail, error) {
	var cocktails []models.Cocktail
	if err := s.db.WithContext(ctx).Order("cocktails.id").Find(&cocktails).Error; err != nil {
		return nil, persistence("list cocktails", err)
	}
	return cocktails, nil
}

// Get loads a cocktail with its components and their ingredients.
func (s *Cocktails) Get(ctx context.Context, id uint) (*models.Cocktail, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *Cocktails) get(tx *gorm.DB, id uint) (*models.Cocktail, error) {
	var cocktail models.Cocktail
	err := tx.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("components.id") }).
		Preload("Components.Ingredient").
		First(&cocktail, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "cocktail", ID: id}
		}
		return nil, persistence("get cocktail", err)
	}
	return &cocktail, nil
}

// Search returns cocktails whose name contains query, ignoring case.
// A blank query returns every cocktail.
func (s *Cocktails) Search(ctx context.Context, query string) ([]models.Cocktail, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var cocktails []models.Cocktail
	err := s.db.WithContext(ctx).
		Where(`LOWER(cocktails.name) LIKE ? ESCAPE '\'`, pattern).
		Order("cocktails.id").
		Find(&cocktails).Error
	if err != nil {
		return nil, persistence("search cocktails", err)
	}
	return cocktails, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// FilterByIngredients returns the cocktails that contain every required
// ingredient, ordered by id. Repeated ids count once and an empty set
// returns every cocktail.
func (s *Cocktails) FilterByIngredients(ctx context.Context, required []uint) ([]models.Cocktail, error) {
	ids := uniqueIDs(required)
	if len(ids) == 0 {
		return s.List(ctx)
	}

	db := s.db.WithContext(ctx)
	matching := db.Model(&models.Component{}).
		Select("components.cocktail_id").
		Joins("JOIN ingredients ON ingredients.id = components.ingredient_id").
		Where("components.ingredient_id IN ?", ids).
		Group("components.cocktail_id").
		Having("COUNT(DISTINCT ingredients.id) = ?", len(ids))

	var cocktails []models.Cocktail
	if err := db.Where("cocktails.id IN (?)", matching).Order("cocktails.id").Find(&cocktails).Error; err != nil {
		return nil, persistence("filter cocktails", err)
	}
	return cocktails, nil
}

func uniqueIDs(values []uint) []uint {
	seen := make(map[uint]struct{}, len(values))
	ids := make([]uint, 0, len(values))
	for _, id := range values {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Create stores a cocktail and one component per desired ingredient in a
// single transaction.
func (s *Cocktails) Create(ctx context.Context, in CocktailInput) (*models.Cocktail, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	cocktail := models.Cocktail{
		Name:        strings.TrimSpace(in.Name),
		Description: &description,
		Icon:        in.Icon,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireIngredients(tx, in.Components.Keys()); err != nil {
			return err
		}
		if err := tx.Omit("Components").Create(&cocktail).Error; err != nil {
			return persistence("create cocktail", err)
		}
		plan := Reconcile(nil, in.Components)
		return plan.apply(tx, cocktail.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, cocktail.ID)
}

// Update replaces the cocktail's scalar fields and reconciles its components
// against in.Components. Every write commits or rolls back together. The
// returned plan lists what was written.
func (s *Cocktails) Update(ctx context.Context, id uint, in CocktailInput) (*models.Cocktail, Plan, error) {
	if err := in.Validate(); err != nil {
		return nil, Plan{}, err
	}

	var plan Plan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cocktail models.Cocktail
		if err := tx.Select("id").First(&cocktail, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "cocktail", ID: id}
			}
			return persistence("load cocktail", err)
		}

		if err := requireIngredients(tx, in.Components.Keys()); err != nil {
			return err
		}

		var existing []models.Component
		if err := tx.Where("cocktail_id = ?", id).Order("id").Find(&existing).Error; err != nil {
			return persistence("load components", err)
		}

		fields := map[string]any{
			"name":        strings.TrimSpace(in.Name),
			"description": strings.TrimSpace(in.Description),
		}
		if in.Icon != nil {
			fields["icon"] = in.Icon
		}
		if err := tx.Model(&models.Cocktail{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return persistence("update cocktail", err)
		}

		plan = Reconcile(existing, in.Components)
		return plan.apply(tx, id)
	})
	if err != nil {
		return nil, Plan{}, err
	}

	cocktail, err := s.Get(ctx, id)
	if err != nil {
		return nil, Plan{}, err
	}
	return cocktail, plan, nil
}

// Delete removes a cocktail and its components.
func (s *Cocktails) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cocktail models.Cocktail
		if err := tx.Select("id").First(&cocktail, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "cocktail", ID: id}
			}
			return persistence("load cocktail", err)
		}
		if err := tx.Where("cocktail_id = ?", id).Delete(&models.Component{}).Error; err != nil {
			return persistence("delete components", err)
		}
		if err := tx.Delete(&models.Cocktail{}, id).Error; err != nil {
			return persistence("delete cocktail", err)
		}
		return nil
	})
}

// Icon returns the stored icon of a cocktail.
func (s *Cocktails) Icon(ctx context.Context, id uint) ([]byte, error) {
	var cocktail models.Cocktail
	if err := s.db.WithContext(ctx).Select("id", "icon").First(&cocktail, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "cocktail", ID: id}
		}
		return nil, persistence("load cocktail icon", err)
	}
	if len(cocktail.Icon) == 0 {
		return nil, &NotFoundError{Entity: "cocktail icon", ID: id}
	}
	return cocktail.Icon, nil
}

// requireIngredients fails with a NotFoundError naming the first missing id.
func requireIngredients(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var found []uint
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return persistence("check ingredients", err)
	}
	present := make(map[uint]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			return &NotFoundError{Entity: "ingredient", ID: id}
		}
	}
	return nil
}
