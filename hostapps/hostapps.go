package hostapps

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// POST /api/host-applications
func SubmitApplication(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		PropertyName string `json:"property_name"`
		Location     string `json:"location"`
		Description  string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.PropertyName == "" || input.Location == "" {
		http.Error(w, "Property name and location are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// one pending application per user
	err := db.HostAppsCollection.FindOne(ctx, bson.M{"userid": userID, "status": StatusPending}).Err()
	if err == nil {
		http.Error(w, "An application is already pending", http.StatusConflict)
		return
	} else if err != mongo.ErrNoDocuments {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	app := models.HostApplication{
		AppID:        "ha" + utils.GenerateRandomString(10),
		UserID:       userID,
		PropertyName: input.PropertyName,
		Location:     input.Location,
		Description:  input.Description,
		Status:       StatusPending,
		CreatedAt:    time.Now(),
	}

	if _, err := db.HostAppsCollection.InsertOne(ctx, app); err != nil {
		http.Error(w, "Error submitting application", http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusCreated, app)
}

// GET /api/host-applications
func GetMyApplications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	apps, err := utils.FindAndDecode[models.HostApplication](ctx, db.HostAppsCollection, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching applications")
		return
	}
	utils.JSON(w, http.StatusOK, apps)
}

// GET /api/admin/host-applications
func ListApplications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	apps, err := utils.FindAndDecode[models.HostApplication](ctx, db.HostAppsCollection, filter, opts)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Error fetching applications")
		return
	}
	utils.JSON(w, http.StatusOK, apps)
}

func review(w http.ResponseWriter, r *http.Request, appID, status string) {
	adminID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var app models.HostApplication
	if err := db.HostAppsCollection.FindOne(ctx, bson.M{"appid": appID}).Decode(&app); err != nil {
		http.Error(w, "Application not found", http.StatusNotFound)
		return
	}
	if app.Status != StatusPending {
		http.Error(w, "Application already reviewed", http.StatusConflict)
		return
	}

	_, err := db.HostAppsCollection.UpdateOne(ctx,
		bson.M{"appid": appID},
		bson.M{"$set": bson.M{
			"status":      status,
			"reviewed_by": adminID,
			"reviewed_at": time.Now(),
		}},
	)
	if err != nil {
		http.Error(w, "Error updating application", http.StatusInternalServerError)
		return
	}

	// approval promotes the applicant to host
	if status == StatusApproved {
		promote := bson.M{"$set": bson.M{"role": models.RoleHost, "updated_at": time.Now()}}
		if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": app.UserID}, promote); err != nil {
			log.Printf("hostapps: role promotion failed for %s: %v", app.UserID, err)
		}
		if _, err := db.ProfileCollection.UpdateOne(ctx, bson.M{"userid": app.UserID}, promote); err != nil {
			log.Printf("hostapps: profile role update failed for %s: %v", app.UserID, err)
		}
	}

	app.Status = status
	app.ReviewedBy = adminID
	utils.JSON(w, http.StatusOK, app)
}

// PUT /api/admin/host-applications/:id/approve
func ApproveApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	review(w, r, ps.ByName("id"), StatusApproved)
}

// PUT /api/admin/host-applications/:id/reject
func RejectApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	review(w, r, ps.ByName("id"), StatusRejected)
}
