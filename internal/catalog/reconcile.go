package catalog

import (
	"gorm.io/gorm"

	"cocktaildb/models"
)

// Plan is the minimal set of component writes that turns a cocktail's
// existing components into a desired mapping.
type Plan struct {
	Delete []models.Component
	Update []models.Component
	Insert []models.Component
}

// Empty reports whether applying the plan would write nothing.
func (p Plan) Empty() bool {
	return len(p.Delete) == 0 && len(p.Update) == 0 && len(p.Insert) == 0
}

// Reconcile classifies every existing component as unchanged, updated or
// deleted and turns every desired ingredient without a component into an
// insertion. Updated entries carry the new quantity. Insertions are ordered
// by ingredient id and have no cocktail id set. desired is not modified.
//
// A second component for an ingredient that was already matched is deleted,
// so the result never holds duplicates even when the stored rows did.
func Reconcile(existing []models.Component, desired Desired) Plan {
	remaining := desired.Clone()
	var plan Plan

	for _, component := range existing {
		quantity, ok := remaining[component.IngredientID]
		if !ok {
			plan.Delete = append(plan.Delete, component)
			continue
		}
		delete(remaining, component.IngredientID)
		if component.Quantity != quantity {
			component.Quantity = quantity
			plan.Update = append(plan.Update, component)
		}
	}

	for _, id := range remaining.Keys() {
		plan.Insert = append(plan.Insert, models.Component{IngredientID: id, Quantity: remaining[id]})
	}

	return plan
}

// apply writes the plan for cocktailID inside tx in delete, update, insert order.
func (p Plan) apply(tx *gorm.DB, cocktailID uint) error {
	if len(p.Delete) > 0 {
		ids := make([]uint, 0, len(p.Delete))
		for _, component := range p.Delete {
			ids = append(ids, component.ID)
		}
		if err := tx.Where("cocktail_id = ?", cocktailID).Delete(&models.Component{}, ids).Error; err != nil {
			return persistence("delete components", err)
		}
	}

	for _, component := range p.Update {
		err := tx.Model(&models.Component{}).
			Where("id = ? AND cocktail_id = ?", component.ID, cocktailID).
			Update("quantity", component.Quantity).Error
		if err != nil {
			return persistence("update component", err)
		}
	}

	if len(p.Insert) > 0 {
		inserts := make([]models.Component, len(p.Insert))
		for i, component := range p.Insert {
			inserts[i] = models.Component{CocktailID: cocktailID, IngredientID: component.IngredientID, Quantity: component.Quantity}
		}
		if err := tx.Create(&inserts).Error; err != nil {
			return persistence("insert components", err)
		}
	}

	return nil
}
