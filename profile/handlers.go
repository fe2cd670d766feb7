package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tripandtreat/db"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/profile/profile
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := FetchByUserID(ctx, userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, p.DeriveFlags())
}

// PUT /api/profile/edit
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.FirstName != nil {
		set["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		set["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		set["phone"] = *input.Phone
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := db.ProfileCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": set})
	if err != nil {
		http.Error(w, "Error updating profile", http.StatusInternalServerError)
		return
	}

	p, err := FetchByUserID(ctx, userID)
	if err != nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p.DeriveFlags())
}

// PUT /api/profile/avatar
func EditProfilePic(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "Avatar file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.IsSupportedImage(header) {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	fileName, _, err := utils.SaveImageWithThumb(file, "./static/userpic", utils.GetUUID())
	if err != nil {
		log.Printf("Avatar save failed: %v", err)
		http.Error(w, "Unable to save file", http.StatusInternalServerError)
		return
	}

	avatarURL := "/static/userpic/" + fileName

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = db.ProfileCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"avatar_url": avatarURL, "updated_at": time.Now()}},
	)
	if err != nil {
		http.Error(w, "Error updating profile", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"avatar_url": avatarURL})
}
