package models

// Component links an ingredient and its quantity to a single cocktail.
// A cocktail holds at most one component per ingredient.
type Component struct {
	Model
	Quantity     int  `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_component_cocktail_ingredient,priority:2" json:"ingredient_id"`
	CocktailID   uint `gorm:"not null;uniqueIndex:idx_component_cocktail_ingredient,priority:1" json:"cocktail_id"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
