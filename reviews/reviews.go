package reviews

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/hotspots/:id/reviews
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	hotspotID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	opts := utils.ParseQueryOptions(r)
	findOpts := options.Find().
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	list, err := utils.FindAndDecode[models.Review](ctx, db.ReviewsCollection, bson.M{"hotspotid": hotspotID}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "reviews": list})
}

// POST /api/hotspots/:id/reviews
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	hotspotID, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	err = db.HotspotsCollection.FindOne(ctx, bson.M{"hotspotid": hotspotID, "deleted": bson.M{"$ne": true}}).Err()
	if err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}

	count, err := db.ReviewsCollection.CountDocuments(ctx, bson.M{"userid": userID, "hotspotid": hotspotID})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, "You have already reviewed this hotspot", http.StatusConflict)
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil || review.Rating < 1 || review.Rating > 5 || review.Comment == "" {
		http.Error(w, "Invalid review data", http.StatusBadRequest)
		return
	}

	review.ReviewID = "rv" + utils.GenerateRandomString(14)
	review.UserID = userID
	review.HotspotID = hotspotID
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		http.Error(w, "Failed to insert review", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, review)
}

// PUT /api/reviews/:reviewId
func EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	reviewID := ps.ByName("reviewId")

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}

	if review.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var body struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid update data", http.StatusBadRequest)
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if body.Rating != nil {
		if *body.Rating < 1 || *body.Rating > 5 {
			http.Error(w, "Invalid rating", http.StatusBadRequest)
			return
		}
		update["rating"] = *body.Rating
	}
	if body.Comment != nil {
		update["comment"] = *body.Comment
	}

	if _, err := db.ReviewsCollection.UpdateOne(ctx, bson.M{"reviewid": reviewID}, bson.M{"$set": update}); err != nil {
		http.Error(w, "Failed to update review", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DELETE /api/reviews/:reviewId
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	reviewID := ps.ByName("reviewId")

	var review models.Review
	if err := db.ReviewsCollection.FindOne(ctx, bson.M{"reviewid": reviewID}).Decode(&review); err != nil {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}

	if review.UserID != userID && utils.GetRoleFromRequest(r) != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := db.ReviewsCollection.DeleteOne(ctx, bson.M{"reviewid": reviewID}); err != nil {
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
