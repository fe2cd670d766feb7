package hotspots

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/mq"
	"tripandtreat/rdx"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const listCacheKey = "hotspots:all"

// nextHotspotID hands out sequential numeric ids; itineraries reference
// hotspots by this number.
func nextHotspotID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := db.CountersCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": "hotspotid"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func validCategory(c string) bool {
	switch c {
	case models.CategoryHomestay, models.CategoryTour, models.CategoryExperience,
		models.CategoryEatery, models.CategoryHotspot:
		return true
	}
	return false
}

// GET /api/hotspots
func GetHotspots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}

	// unfiltered first page is cached
	cacheable := opts.Category == "" && opts.Search == "" && opts.Page == 1
	if cacheable {
		if cached, _ := rdx.RdxGet(listCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	findOpts := options.Find().
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit)).
		SetSort(bson.M{"created_at": -1})

	spots, err := utils.FindAndDecode[models.Hotspot](ctx, db.HotspotsCollection, filter, findOpts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch hotspots")
		return
	}

	if cacheable {
		if err := rdx.SetWithExpiry(listCacheKey, string(utils.ToJSON(spots)), 5*time.Minute); err != nil {
			log.Printf("hotspots: cache write failed: %v", err)
		}
	}
	utils.JSON(w, http.StatusOK, spots)
}

// GET /api/hotspots/:id
func GetHotspot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var spot models.Hotspot
	err = db.HotspotsCollection.FindOne(ctx, bson.M{"hotspotid": id, "deleted": bson.M{"$ne": true}}).Decode(&spot)
	if err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, spot)
}

// POST /api/hotspots
func CreateHotspot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var spot models.Hotspot
	if err := json.NewDecoder(r.Body).Decode(&spot); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if spot.Name == "" || spot.Location == "" || !validCategory(spot.Category) {
		http.Error(w, "Missing name, location or valid category", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := nextHotspotID(ctx)
	if err != nil {
		http.Error(w, "Error allocating id", http.StatusInternalServerError)
		return
	}

	spot.HotspotID = id
	spot.HostID = userID
	spot.CreatedAt = time.Now()
	spot.UpdatedAt = spot.CreatedAt
	spot.Deleted = false

	if _, err := db.HotspotsCollection.InsertOne(ctx, spot); err != nil {
		http.Error(w, "Error inserting hotspot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel(listCacheKey)
	mq.Emit(ctx, "hotspot-created", models.Index{
		EntityType: "hotspot",
		Method:     "POST",
		EntityId:   strconv.Itoa(spot.HotspotID),
		EntityName: spot.Name,
	})

	utils.JSON(w, http.StatusCreated, spot)
}

// PUT /api/hotspots/:id
func EditHotspot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Hotspot
	if err := db.HotspotsCollection.FindOne(ctx, bson.M{"hotspotid": id}).Decode(&existing); err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}
	if existing.HostID != userID && role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var updated models.Hotspot
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if updated.Category != "" && !validCategory(updated.Category) {
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if updated.Name != "" {
		set["name"] = updated.Name
	}
	if updated.Location != "" {
		set["location"] = updated.Location
	}
	if updated.Category != "" {
		set["category"] = updated.Category
	}
	if updated.Description != "" {
		set["description"] = updated.Description
	}
	if updated.PricePerDay > 0 {
		set["price_per_day"] = updated.PricePerDay
	}

	if _, err := db.HotspotsCollection.UpdateOne(ctx, bson.M{"hotspotid": id}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Error updating hotspot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel(listCacheKey)
	mq.Emit(ctx, "hotspot-updated", models.Index{
		EntityType: "hotspot",
		Method:     "PUT",
		EntityId:   strconv.Itoa(id),
		EntityName: updated.Name,
	})

	utils.JSON(w, http.StatusOK, bson.M{"message": "Hotspot updated successfully"})
}

// DELETE /api/hotspots/:id
func DeleteHotspot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Hotspot
	if err := db.HotspotsCollection.FindOne(ctx, bson.M{"hotspotid": id}).Decode(&existing); err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}
	if existing.HostID != userID && role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	update := bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}}
	if _, err := db.HotspotsCollection.UpdateOne(ctx, bson.M{"hotspotid": id}, update); err != nil {
		http.Error(w, "Error deleting hotspot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel(listCacheKey)
	mq.Emit(ctx, "hotspot-deleted", models.Index{
		EntityType: "hotspot",
		Method:     "DELETE",
		EntityId:   strconv.Itoa(id),
	})

	utils.JSON(w, http.StatusOK, bson.M{"message": "Hotspot deleted successfully"})
}

// POST /api/hotspots/:id/image
func UploadHotspotImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		http.Error(w, "Invalid hotspot id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var existing models.Hotspot
	if err := db.HotspotsCollection.FindOne(ctx, bson.M{"hotspotid": id}).Decode(&existing); err != nil {
		http.Error(w, "Hotspot not found", http.StatusNotFound)
		return
	}
	if existing.HostID != userID && role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.IsSupportedImage(header) {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	fileName, thumbName, err := utils.SaveImageWithThumb(file, "./static/hotspotpic", utils.GetUUID())
	if err != nil {
		log.Printf("Hotspot image save failed: %v", err)
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	set := bson.M{
		"image":      "/static/hotspotpic/" + fileName,
		"thumb":      "/static/hotspotpic/" + thumbName,
		"updated_at": time.Now(),
	}
	if _, err := db.HotspotsCollection.UpdateOne(ctx, bson.M{"hotspotid": id}, bson.M{"$set": set}); err != nil {
		http.Error(w, "Error updating hotspot", http.StatusInternalServerError)
		return
	}

	rdx.RdxDel(listCacheKey)
	utils.JSON(w, http.StatusOK, utils.M{"image": set["image"], "thumb": set["thumb"]})
}
