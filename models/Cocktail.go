package models

type Cocktail struct {
	Model
	Name        string      `gorm:"size:512;not null" json:"name"`
	Description *string     `gorm:"size:1024" json:"description"`
	Icon        []byte      `json:"-"`
	Components  []Component `gorm:"foreignKey:CocktailID;constraint:OnDelete:CASCADE" json:"components"`
}

// DescriptionText returns the description or an empty string when the column is null.
func (c Cocktail) DescriptionText() string {
	if c.Description == nil {
		return ""
	}
	return *c.Description
}
