package models

// Ingredient is a catalog entry that cocktails reference through components.
type Ingredient struct {
	Model
	Name            string          `gorm:"size:512;not null;index" json:"name"`
	Description     string          `gorm:"size:512" json:"description"`
	UnitMeasurement UnitMeasurement `gorm:"type:varchar(16);not null;default:ml" json:"unit_measurement"`
	ABV             *ABVCategory    `gorm:"column:abv;type:varchar(16)" json:"abv,omitempty"`
	Type            IngredientType  `gorm:"type:varchar(32);not null;default:other" json:"type"`
	Icon            []byte          `json:"-"`
}
