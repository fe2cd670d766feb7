package itinerary

import "tripandtreat/models"

// Move directions
const (
	DirUp   = "up"
	DirDown = "down"
)

// AddItem appends item unless an item with the same ID is already in the
// list. This is the sole duplicate-prevention rule in the planner.
func AddItem(items []models.ItineraryItem, item models.ItineraryItem) []models.ItineraryItem {
	for _, it := range items {
		if it.ID == item.ID {
			return items
		}
	}
	return append(items, item)
}

// RemoveItem filters out the item with the given ID, preserving the
// relative order of everything else.
func RemoveItem(items []models.ItineraryItem, id int) []models.ItineraryItem {
	out := make([]models.ItineraryItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// MoveItem swaps the item at index with its neighbor in the given
// direction. Moving the first item up or the last item down is a no-op,
// as is an out-of-range index or unknown direction.
func MoveItem(items []models.ItineraryItem, index int, direction string) []models.ItineraryItem {
	if index < 0 || index >= len(items) {
		return items
	}
	switch direction {
	case DirUp:
		if index == 0 {
			return items
		}
		items[index-1], items[index] = items[index], items[index-1]
	case DirDown:
		if index == len(items)-1 {
			return items
		}
		items[index], items[index+1] = items[index+1], items[index]
	}
	return items
}
