package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RoleAdmin is the only role the system issues.
const RoleAdmin = "admin"

// User represents an administrative account.
// The password hash never leaves the server: json:"-".
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Email        string        `bson:"email" json:"email" example:"admin@example.com"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Role         string        `bson:"role" json:"role" example:"admin"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005703677Z"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updated_at" example:"2025-06-01T23:00:26.005703677Z"`
}
