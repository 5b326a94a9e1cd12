package models

import "strings"

// UnitMeasurement is the unit an ingredient quantity is expressed in.
type UnitMeasurement string

const (
	UnitMilliliter UnitMeasurement = "ml"
	UnitGram       UnitMeasurement = "g"
	UnitPiece      UnitMeasurement = "pcs"
)

// ABVCategory groups ingredients by alcohol strength.
type ABVCategory string

const (
	ABVFree   ABVCategory = "free"
	ABVLow    ABVCategory = "low"
	ABVStrong ABVCategory = "strong"
)

// IngredientType is the bar category of an ingredient.
type IngredientType string

const (
	TypeStrongPart       IngredientType = "strong_part"
	TypeNonAlcoholicPart IngredientType = "non_alcoholic_part"
	TypeVermouth         IngredientType = "vermouth"
	TypeLiquor           IngredientType = "liquor"
	TypeBitter           IngredientType = "bitter"
	TypeSyrup            IngredientType = "syrup"
	TypeOther            IngredientType = "other"
	TypeFruit            IngredientType = "fruit"
	TypeVegetable        IngredientType = "vegetable"
	TypeBerry            IngredientType = "berry"
)

// DefaultIngredientType is assigned when no type is supplied.
const DefaultIngredientType = TypeOther

var unitLabels = map[UnitMeasurement]string{
	UnitMilliliter: "Milliliter",
	UnitGram:       "Gram",
	UnitPiece:      "Piece",
}

var abvLabels = map[ABVCategory]string{
	ABVFree:   "Non-alcoholic",
	ABVLow:    "Low ABV",
	ABVStrong: "Strong",
}

var ingredientTypeLabels = map[IngredientType]string{
	TypeStrongPart:       "Strong part",
	TypeNonAlcoholicPart: "Non-alcoholic part",
	TypeVermouth:         "Vermouth",
	TypeLiquor:           "Liquor",
	TypeBitter:           "Bitter",
	TypeSyrup:            "Syrup",
	TypeOther:            "Other",
	TypeFruit:            "Fruit",
	TypeVegetable:        "Vegetable",
	TypeBerry:            "Berry",
}

// Units lists every unit in display order.
func Units() []UnitMeasurement {
	return []UnitMeasurement{UnitMilliliter, UnitGram, UnitPiece}
}

// ABVCategories lists every strength category in display order.
func ABVCategories() []ABVCategory {
	return []ABVCategory{ABVFree, ABVLow, ABVStrong}
}

// IngredientTypes lists every ingredient type in display order.
func IngredientTypes() []IngredientType {
	return []IngredientType{
		TypeStrongPart,
		TypeNonAlcoholicPart,
		TypeVermouth,
		TypeLiquor,
		TypeBitter,
		TypeSyrup,
		TypeFruit,
		TypeBerry,
		TypeVegetable,
		TypeOther,
	}
}

func (u UnitMeasurement) Valid() bool {
	_, ok := unitLabels[u]
	return ok
}

func (u UnitMeasurement) Label() string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return string(u)
}

func (a ABVCategory) Valid() bool {
	_, ok := abvLabels[a]
	return ok
}

func (a ABVCategory) Label() string {
	if label, ok := abvLabels[a]; ok {
		return label
	}
	return string(a)
}

func (t IngredientType) Valid() bool {
	_, ok := ingredientTypeLabels[t]
	return ok
}

func (t IngredientType) Label() string {
	if label, ok := ingredientTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseUnitMeasurement accepts a unit code case-insensitively.
func ParseUnitMeasurement(value string) (UnitMeasurement, bool) {
	unit := UnitMeasurement(strings.ToLower(strings.TrimSpace(value)))
	return unit, unit.Valid()
}

// ParseABVCategory accepts a strength code; blank input means the ingredient has no category.
func ParseABVCategory(value string) (*ABVCategory, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return nil, true
	}
	category := ABVCategory(trimmed)
	if !category.Valid() {
		return nil, false
	}
	return &category, true
}

// ParseIngredientType accepts a type code; blank input falls back to DefaultIngredientType.
func ParseIngredientType(value string) (IngredientType, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return DefaultIngredientType, true
	}
	kind := IngredientType(strings.ReplaceAll(trimmed, " ", "_"))
	return kind, kind.Valid()
}
