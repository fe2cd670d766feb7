package profile

import (
	"context"
	"fmt"

	"tripandtreat/db"
	"tripandtreat/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/singleflight"
)

// Concurrent fetches for the same user are coalesced so that a login
// and a session-restore racing each other hit Mongo once, not twice.
var fetchGroup singleflight.Group

// FetchByUserID loads a profile, sharing the result with any in-flight
// fetch for the same user id.
func FetchByUserID(ctx context.Context, userID string) (models.Profile, error) {
	v, err, _ := fetchGroup.Do(userID, func() (any, error) {
		var p models.Profile
		err := db.ProfileCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&p)
		if err != nil {
			return models.Profile{}, fmt.Errorf("profile %s: %w", userID, err)
		}
		return p, nil
	})
	if err != nil {
		return models.Profile{}, err
	}

	p := v.(models.Profile)
	// A shared result that came back for a different user id than the
	// caller asked for would be a programming error; the key guards it.
	if p.UserID != userID {
		return models.Profile{}, fmt.Errorf("profile fetch returned %s for %s", p.UserID, userID)
	}
	return p, nil
}
