package itinerary

import (
	"math"
	"testing"

	"tripandtreat/models"
	"tripandtreat/routeplan"
)

func stops(ids ...int) []models.ItineraryItem {
	out := make([]models.ItineraryItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.ItineraryItem{ID: id, Name: "stop"})
	}
	return out
}

func assertOrder(t *testing.T, items []models.ItineraryItem, want ...int) {
	t.Helper()
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("index %d: expected id %d, got %d", i, id, items[i].ID)
		}
	}
}

func TestAddItemRejectsDuplicate(t *testing.T) {
	items := stops(1, 2, 3)
	items = AddItem(items, models.ItineraryItem{ID: 2, Name: "again"})
	assertOrder(t, items, 1, 2, 3)
}

func TestAddItemAppends(t *testing.T) {
	items := stops(1)
	items = AddItem(items, models.ItineraryItem{ID: 7})
	assertOrder(t, items, 1, 7)
}

func TestMoveBoundaryNoOps(t *testing.T) {
	items := stops(1, 2, 3)
	items = MoveItem(items, 0, DirUp)
	assertOrder(t, items, 1, 2, 3)
	items = MoveItem(items, 2, DirDown)
	assertOrder(t, items, 1, 2, 3)
	items = MoveItem(items, 5, DirUp)
	assertOrder(t, items, 1, 2, 3)
	items = MoveItem(items, -1, DirDown)
	assertOrder(t, items, 1, 2, 3)
}

func TestMoveSwapsAdjacent(t *testing.T) {
	items := MoveItem(stops(1, 2, 3), 1, DirUp)
	assertOrder(t, items, 2, 1, 3)

	items = MoveItem(stops(1, 2, 3), 1, DirDown)
	assertOrder(t, items, 1, 3, 2)
}

func TestRemoveIsTotal(t *testing.T) {
	items := RemoveItem(stops(4, 5, 6, 7), 5)
	assertOrder(t, items, 4, 6, 7)

	items = RemoveItem(items, 99) // absent id leaves list unchanged
	assertOrder(t, items, 4, 6, 7)
}

func TestPlannerEndToEnd(t *testing.T) {
	var items []models.ItineraryItem
	for _, id := range []int{1, 2, 3} {
		items = AddItem(items, models.ItineraryItem{ID: id})
	}
	items = MoveItem(items, 2, DirUp)
	assertOrder(t, items, 1, 3, 2)

	items = RemoveItem(items, 1)
	assertOrder(t, items, 3, 2)

	est, err := routeplan.NewSimulatedEstimator().Estimate(len(items), routeplan.ModeCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.DistanceKm < 15 || est.DistanceKm > 21 {
		t.Fatalf("one-leg distance %d outside [15, 21]", est.DistanceKm)
	}
	want := math.Ceil(float64(est.DistanceKm)*25 + 500)
	if est.TotalCost != want {
		t.Fatalf("expected total %v, got %v", want, est.TotalCost)
	}
}
