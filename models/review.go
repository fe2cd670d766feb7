package models

import "time"

// Review is a guest review left on a hotspot listing.
type Review struct {
	ReviewID  string    `json:"reviewid" bson:"reviewid"`
	HotspotID int       `json:"hotspot_id" bson:"hotspotid"`
	UserID    string    `json:"userid" bson:"userid"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}
