package catalog

import "sort"

// Desired maps an ingredient id to the quantity a cocktail should hold of it.
type Desired map[uint]int

// NewDesired pairs two parallel lists into a desired mapping. When an
// ingredient id repeats, the last quantity wins.
func NewDesired(ingredientIDs []uint, quantities []int) (Desired, error) {
	if len(ingredientIDs) == 0 || len(quantities) == 0 {
		return nil, invalid("ingredients", "at least one ingredient is required")
	}
	if len(ingredientIDs) != len(quantities) {
		return nil, invalid("quantities", "got %d quantities for %d ingredients", len(quantities), len(ingredientIDs))
	}

	desired := make(Desired, len(ingredientIDs))
	for i, id := range ingredientIDs {
		if id == 0 {
			return nil, invalid("ingredients", "ingredient id must be positive")
		}
		if quantities[i] < 0 {
			return nil, invalid("quantities", "quantity for ingredient %d must not be negative", id)
		}
		desired[id] = quantities[i]
	}
	return desired, nil
}

// Keys returns the ingredient ids in ascending order.
func (d Desired) Keys() []uint {
	keys := make([]uint, 0, len(d))
	for id := range d {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns an independent copy.
func (d Desired) Clone() Desired {
	clone := make(Desired, len(d))
	for id, quantity := range d {
		clone[id] = quantity
	}
	return clone
}
