package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"tripandtreat/db"
	"tripandtreat/itinerary"
	"tripandtreat/models"
	"tripandtreat/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	generator     TextGenerator
	generatorOnce sync.Once
)

// the LLM client is created lazily so the server runs without a key
func getGenerator() TextGenerator {
	generatorOnce.Do(func() {
		gen, err := NewGeminiClient(context.Background())
		if err != nil {
			log.Printf("suggest: LLM unavailable, using canned itineraries: %v", err)
			return
		}
		generator = gen
	})
	return generator
}

func buildPrompt(days int, interests string, planned []models.ItineraryItem, spots []models.Hotspot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a travel planner for Manipur, India. Plan a %d-day itinerary", days)
	if interests != "" {
		fmt.Fprintf(&b, " focused on %s", interests)
	}
	if len(planned) > 0 {
		b.WriteString(". The traveller has already shortlisted:\n")
		for _, p := range planned {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Name, p.Location)
		}
		b.WriteString("Build around those")
	}
	b.WriteString(". Pick from these places:\n")
	for _, s := range spots {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", s.Name, s.Category, s.Location)
	}
	b.WriteString("Respond with a short day-by-day plan in plain text.")
	return b.String()
}

// cannedItinerary is the fallback served when the language model is
// unconfigured or fails.
func cannedItinerary(days int) string {
	plan := []string{
		"Day 1: Sunrise at Loktak Lake and the floating phumdis of Keibul Lamjao, evening at Ima Keithel market.",
		"Day 2: Kangla Fort and Shree Govindajee Temple in Imphal, lunch at a local eatery, war cemetery at dusk.",
		"Day 3: Day trip to Andro heritage village, pottery workshop and a homestay dinner.",
		"Day 4: Dzukou Valley trek from Mao, overnight homestay.",
		"Day 5: Moreh border market and the Tamu friendship bridge viewpoint.",
	}
	if days < 1 {
		days = 1
	}
	if days > len(plan) {
		days = len(plan)
	}
	return strings.Join(plan[:days], "\n")
}

// POST /api/suggest/itinerary
func SuggestItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Days      int    `json:"days"`
		Interests string `json:"interests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.Days < 1 || input.Days > 14 {
		input.Days = 3
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filter := bson.M{"deleted": bson.M{"$ne": true}}
	opts := options.Find().SetLimit(25)
	spots, err := utils.FindAndDecode[models.Hotspot](ctx, db.HotspotsCollection, filter, opts)
	if err != nil {
		log.Printf("suggest: hotspot fetch failed: %v", err)
		spots = nil
	}

	var planned []models.ItineraryItem
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		planned = itinerary.CurrentStops(ctx, userID)
	}

	if gen := getGenerator(); gen != nil {
		plan, err := gen.GenerateContent(ctx, buildPrompt(input.Days, input.Interests, planned, spots))
		if err == nil {
			utils.JSON(w, http.StatusOK, utils.M{"itinerary": plan, "source": "llm"})
			return
		}
		log.Printf("suggest: generation failed, serving canned plan: %v", err)
	}

	utils.JSON(w, http.StatusOK, utils.M{"itinerary": cannedItinerary(input.Days), "source": "fallback"})
}
