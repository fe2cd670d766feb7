package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func genID() string {
	return "b" + utils.GenerateRandomDigitString(12)
}

func nights(checkIn, checkOut string) (int, bool) {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil || !out.After(in) {
		return 0, false
	}
	return int(out.Sub(in).Hours() / 24), true
}

// POST /api/bookings
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		HotspotID int    `json:"hotspot_id"`
		CheckIn   string `json:"check_in"`
		CheckOut  string `json:"check_out"`
		Guests    int    `json:"guests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	n, ok := nights(input.CheckIn, input.CheckOut)
	if !ok {
		http.Error(w, "Invalid date range", http.StatusBadRequest)
		return
	}
	if input.Guests < 1 {
		input.Guests = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var spot models.Hotspot
	err := db.HotspotsCollection.FindOne(ctx, bson.M{
		"hotspotid": input.HotspotID,
		"deleted":   bson.M{"$ne": true},
	}).Decode(&spot)
	if err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}
	if spot.Category != models.CategoryHomestay {
		http.Error(w, "Only homestays can be booked for stays", http.StatusBadRequest)
		return
	}

	now := time.Now()
	bk := models.Booking{
		BookingID: genID(),
		Kind:      models.BookingKindStay,
		UserID:    userID,
		HotspotID: input.HotspotID,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Guests:    input.Guests,
		Amount:    spot.PricePerDay * float64(n),
		Status:    models.BookingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.BookingsCollection.InsertOne(ctx, bk); err != nil {
		http.Error(w, "Error creating booking", http.StatusInternalServerError)
		return
	}

	notifyBookingUpdate(bk)
	utils.JSON(w, http.StatusCreated, bk)
}

// GET /api/bookings
func GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

// DELETE /api/bookings/:id
func CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	bookingID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var bk models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&bk); err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}
	if bk.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if bk.Status == models.BookingCancelled {
		utils.JSON(w, http.StatusOK, bk)
		return
	}

	_, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"status": models.BookingCancelled, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Error cancelling booking", http.StatusInternalServerError)
		return
	}

	bk.Status = models.BookingCancelled
	notifyBookingUpdate(bk)
	utils.JSON(w, http.StatusOK, bk)
}
