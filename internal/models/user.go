package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a platform member. Users are created by the account service; this
// service only reads them.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	JobRole        string    `json:"job_role"`
	Specialization string    `json:"specialization"`
	City           string    `json:"city"`
	CompanyName    string    `json:"company_name"`
	FirebaseUID    *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	CreatedAt      time.Time `json:"created_at"`
}

// UserWithFollowState is a user as seen by a logged-in viewer
type UserWithFollowState struct {
	User
	IsFollowing bool `json:"is_following"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
