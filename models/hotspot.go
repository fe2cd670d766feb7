package models

import "time"

// Hotspot categories
const (
	CategoryHomestay   = "homestay"
	CategoryTour       = "tour"
	CategoryExperience = "experience"
	CategoryEatery     = "eatery"
	CategoryHotspot    = "hotspot"
)

// Hotspot is a catalog entry: a place a traveller can visit, stay at,
// or book. Itineraries reference hotspots by numeric ID.
type Hotspot struct {
	HotspotID   int       `json:"id" bson:"hotspotid"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Category    string    `json:"category" bson:"category"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Thumb       string    `json:"thumb,omitempty" bson:"thumb,omitempty"`
	PricePerDay float64   `json:"price_per_day,omitempty" bson:"price_per_day,omitempty"`
	HostID      string    `json:"host_id,omitempty" bson:"hostid,omitempty"`
	Deleted     bool      `json:"-" bson:"deleted,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
