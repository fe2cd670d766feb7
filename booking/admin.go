package booking

import (
	"context"
	"net/http"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/bookings
func ListAllBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	bookings, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching bookings")
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}

func setBookingStatus(w http.ResponseWriter, r *http.Request, bookingID, status string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var bk models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"bookingid": bookingID}).Decode(&bk); err != nil {
		http.Error(w, "Booking not found", http.StatusNotFound)
		return
	}

	_, err := db.BookingsCollection.UpdateOne(ctx,
		bson.M{"bookingid": bookingID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Error updating booking", http.StatusInternalServerError)
		return
	}

	bk.Status = status
	notifyBookingUpdate(bk)
	utils.JSON(w, http.StatusOK, bk)
}

// PUT /api/admin/bookings/:id/confirm
func ConfirmBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBookingStatus(w, r, ps.ByName("id"), models.BookingConfirmed)
}

// PUT /api/admin/bookings/:id/cancel
func CancelAnyBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	setBookingStatus(w, r, ps.ByName("id"), models.BookingCancelled)
}
