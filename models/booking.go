package models

import "time"

// Booking kinds and statuses
const (
	BookingKindStay = "stay"
	BookingKindTour = "tour"

	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	BookingID string  `json:"id" bson:"bookingid"`
	Kind      string  `json:"kind" bson:"kind"`
	UserID    string  `json:"user_id" bson:"userid"`
	HotspotID int     `json:"hotspot_id,omitempty" bson:"hotspotid,omitempty"`
	CheckIn   string  `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut  string  `json:"check_out,omitempty" bson:"check_out,omitempty"`
	Guests    int     `json:"guests,omitempty" bson:"guests,omitempty"`
	Amount    float64 `json:"amount" bson:"amount"`
	Status    string  `json:"status" bson:"status"`
	// tour bookings only
	Mode      string    `json:"mode,omitempty" bson:"mode,omitempty"`
	WithGuide bool      `json:"with_guide,omitempty" bson:"with_guide,omitempty"`
	Stops     int       `json:"stops,omitempty" bson:"stops,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type HostApplication struct {
	AppID        string    `json:"id" bson:"appid"`
	UserID       string    `json:"user_id" bson:"userid"`
	PropertyName string    `json:"property_name" bson:"property_name"`
	Location     string    `json:"location" bson:"location"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Status       string    `json:"status" bson:"status"` // pending/approved/rejected
	ReviewedBy   string    `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	ReviewedAt   time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
}
