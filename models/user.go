package models

import "time"

// Role values. A user carries exactly one role; admins implicitly
// satisfy any host requirement at the route-guard level.
const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"-"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          string    `json:"role" bson:"role"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
}

type Profile struct {
	UserID    string    `json:"id" bson:"userid"`
	Email     string    `json:"email" bson:"email"`
	FirstName string    `json:"first_name" bson:"first_name"`
	LastName  string    `json:"last_name" bson:"last_name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ProfileResponse is the profile plus the role flags derived from it.
type ProfileResponse struct {
	Profile `bson:",inline"`
	IsAdmin bool `json:"is_admin" bson:"-"`
	IsHost  bool `json:"is_host" bson:"-"`
}

// DeriveFlags fills IsAdmin/IsHost from the single role field. The two
// flags are mutually exclusive; the host-or-admin rule lives in the
// route guard, not here.
func (p Profile) DeriveFlags() ProfileResponse {
	return ProfileResponse{
		Profile: p,
		IsAdmin: p.Role == RoleAdmin,
		IsHost:  p.Role == RoleHost,
	}
}
