package itinerary

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/routeplan"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
)

var store = NewStore()

var estimator routeplan.Estimator = routeplan.NewSimulatedEstimator()

// GET /api/itinerary
func GetItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":                  items,
		"modes":                  routeplan.Modes(),
		"default_transport_cost": routeplan.DefaultTransportCost,
	})
}

// POST /api/itinerary/stops
func AddStop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.ItineraryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if item.Name == "" {
		http.Error(w, "Missing stop name", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	items = AddItem(items, item)
	if err := store.Save(ctx, userID, items); err != nil {
		http.Error(w, "Error saving itinerary", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// DELETE /api/itinerary/stops/:id
func RemoveStop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid stop id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	items = RemoveItem(items, id)
	if err := store.Save(ctx, userID, items); err != nil {
		http.Error(w, "Error saving itinerary", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// PATCH /api/itinerary/stops/:index/move
func MoveStop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		http.Error(w, "Invalid index", http.StatusBadRequest)
		return
	}

	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if body.Direction != DirUp && body.Direction != DirDown {
		http.Error(w, "Direction must be up or down", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	items = MoveItem(items, index, body.Direction)
	if err := store.Save(ctx, userID, items); err != nil {
		http.Error(w, "Error saving itinerary", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// DELETE /api/itinerary
func ClearItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := store.Save(ctx, userID, nil); err != nil {
		http.Error(w, "Error clearing itinerary", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": []models.ItineraryItem{}})
}

// POST /api/itinerary/optimize
func OptimizeRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Mode      string `json:"mode"`
		WithGuide bool   `json:"with_guide"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	est, err := estimator.Estimate(len(items), body.Mode)
	if err != nil {
		if err == routeplan.ErrTooFewStops {
			http.Error(w, "At least two stops are required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, routeplan.NewQuote(est, body.WithGuide))
}

// POST /api/itinerary/book
func BookTour(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Mode      string `json:"mode"`
		WithGuide bool   `json:"with_guide"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := store.Load(ctx, userID)
	if err != nil {
		http.Error(w, "Error loading itinerary", http.StatusInternalServerError)
		return
	}

	est, err := estimator.Estimate(len(items), body.Mode)
	if err != nil {
		if err == routeplan.ErrTooFewStops {
			http.Error(w, "At least two stops are required", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	quote := routeplan.NewQuote(est, body.WithGuide)

	booking := models.Booking{
		BookingID: "b" + utils.GenerateRandomDigitString(12),
		Kind:      models.BookingKindTour,
		UserID:    userID,
		Amount:    quote.Total,
		Status:    models.BookingConfirmed,
		Mode:      body.Mode,
		WithGuide: body.WithGuide,
		Stops:     len(items),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, booking); err != nil {
		http.Error(w, "Error saving booking", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, utils.M{
		"booking": booking,
		"quote":   quote,
	}, "Tour booked", nil)
}
