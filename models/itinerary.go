package models

import "time"

// ItineraryItem is one point of interest the user has chosen to visit.
// Everything besides ID is display data the planner treats as opaque.
type ItineraryItem struct {
	ID       int    `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Location string `json:"location" bson:"location"`
	Category string `json:"category" bson:"category"`
	Image    string `json:"image,omitempty" bson:"image,omitempty"`
}

// Itinerary is the per-user ordered stop list.
type Itinerary struct {
	UserID    string          `json:"user_id" bson:"userid"`
	Items     []ItineraryItem `json:"items" bson:"items"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}
