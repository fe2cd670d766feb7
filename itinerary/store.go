package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/rdx"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists the per-user ordered stop list. Saves are wholesale
// replacements; there is no partial write.
type Store interface {
	Load(ctx context.Context, userID string) ([]models.ItineraryItem, error)
	Save(ctx context.Context, userID string, items []models.ItineraryItem) error
}

func cacheKey(userID string) string {
	return fmt.Sprintf("itinerary:%s", userID)
}

// mongoStore keeps the durable copy in Mongo and a JSON mirror in Redis.
// A missing or malformed entry degrades to an empty list, never to an
// error surfaced to the caller.
type mongoStore struct{}

func NewStore() Store {
	return mongoStore{}
}

func (mongoStore) Load(ctx context.Context, userID string) ([]models.ItineraryItem, error) {
	if raw, err := rdx.RdxGet(cacheKey(userID)); err == nil {
		var items []models.ItineraryItem
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
			return items, nil
		}
		// corrupt cache entry; fall through to Mongo
		log.Printf("itinerary: discarding malformed cache for %s", userID)
	}

	var it models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&it)
	if err != nil {
		return []models.ItineraryItem{}, nil
	}
	if it.Items == nil {
		it.Items = []models.ItineraryItem{}
	}
	return it.Items, nil
}

// CurrentStops returns the caller's saved stop list, empty when none.
// Used by packages that want the itinerary without caring how it loads.
func CurrentStops(ctx context.Context, userID string) []models.ItineraryItem {
	items, _ := store.Load(ctx, userID)
	return items
}

func (mongoStore) Save(ctx context.Context, userID string, items []models.ItineraryItem) error {
	if items == nil {
		items = []models.ItineraryItem{}
	}

	_, err := db.ItineraryCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"items": items, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if raw, jsonErr := json.Marshal(items); jsonErr == nil {
		if cacheErr := rdx.SetWithExpiry(cacheKey(userID), string(raw), 24*time.Hour); cacheErr != nil {
			log.Printf("itinerary: cache write failed: %v", cacheErr)
		}
	}
	return nil
}
