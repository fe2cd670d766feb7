package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripandtreat/db"
	"tripandtreat/models"
	"tripandtreat/rdx"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const autocompleteKey = "autocomplete:hotspots"

// ApplyIndexEvent updates the Redis autocomplete index from an mq event.
func ApplyIndexEvent(ctx context.Context, event models.Index) error {
	if event.EntityType != "hotspot" {
		return nil
	}

	switch event.Method {
	case "POST", "PUT":
		if event.EntityName == "" {
			return nil
		}
		return addToAutocomplete(ctx, event.EntityId, event.EntityName)
	case "DELETE":
		return removeFromAutocomplete(ctx, event.EntityId)
	}
	return nil
}

// Members are stored as "<lowercased name>|<id>" so ZRangeByLex gives
// prefix search over names.
func addToAutocomplete(ctx context.Context, id, name string) error {
	member := fmt.Sprintf("%s|%s", strings.ToLower(name), id)
	err := rdx.Conn.ZAdd(ctx, autocompleteKey, redis.Z{Score: 0, Member: member}).Err()
	if err != nil {
		return fmt.Errorf("failed to add hotspot to autocomplete: %w", err)
	}
	return nil
}

func removeFromAutocomplete(ctx context.Context, id string) error {
	members, err := rdx.Conn.ZRange(ctx, autocompleteKey, 0, -1).Result()
	if err != nil {
		return err
	}
	for _, m := range members {
		if strings.HasSuffix(m, "|"+id) {
			if err := rdx.Conn.ZRem(ctx, autocompleteKey, m).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// GET /api/ac?q=...
func Autocompleter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if query == "" {
		utils.JSON(w, http.StatusOK, []utils.M{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	results, err := rdx.Conn.ZRangeByLex(ctx, autocompleteKey, &redis.ZRangeBy{
		Min:    "[" + query,
		Max:    "[" + query + "\xff",
		Offset: 0,
		Count:  10,
	}).Result()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Autocomplete failed")
		return
	}

	suggestions := []utils.M{}
	for _, result := range results {
		parts := strings.SplitN(result, "|", 2)
		if len(parts) == 2 {
			suggestions = append(suggestions, utils.M{"name": parts[0], "id": parts[1]})
		}
	}
	utils.JSON(w, http.StatusOK, suggestions)
}

// GET /api/search/hotspots?q=...
func SearchHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts := utils.ParseQueryOptions(r)
	if opts.Search == "" {
		utils.JSON(w, http.StatusOK, []models.Hotspot{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"deleted": bson.M{"$ne": true},
		"$or": []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"location": bson.M{"$regex": opts.Search, "$options": "i"}},
		},
	}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}

	spots, err := utils.FindAndDecode[models.Hotspot](ctx, db.HotspotsCollection, filter)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Search failed")
		return
	}
	utils.JSON(w, http.StatusOK, spots)
}
