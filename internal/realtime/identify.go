package realtime

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/content-hub/backend/internal/models"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
)

// ErrUnidentified is returned when a register message does not resolve to a user.
var ErrUnidentified = errors.New("connection could not be identified")

// RegisterMessage is sent by the client right after connecting.
type RegisterMessage struct {
	Event  string `json:"event"`
	UserID uint   `json:"user_id"`
	Token  string `json:"token,omitempty"`
}

// Identifier resolves the user behind a register message.
type Identifier interface {
	Identify(ctx context.Context, msg RegisterMessage) (uint, error)
}

// TrustedIdentifier accepts the user ID the client claims.
type TrustedIdentifier struct{}

func (TrustedIdentifier) Identify(_ context.Context, msg RegisterMessage) (uint, error) {
	if msg.UserID == 0 {
		return 0, fmt.Errorf("%w: missing user_id", ErrUnidentified)
	}
	return msg.UserID, nil
}

// JWTIdentifier reads the user ID from an HMAC-signed token.
type JWTIdentifier struct {
	Secret []byte
}

func (j JWTIdentifier) Identify(_ context.Context, msg RegisterMessage) (uint, error) {
	if msg.Token == "" {
		return 0, fmt.Errorf("%w: missing token", ErrUnidentified)
	}
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(msg.Token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnidentified)
	}
	if claims.UserID == 0 {
		return 0, fmt.Errorf("%w: token has no user_id", ErrUnidentified)
	}
	return claims.UserID, nil
}

// TokenVerifier is the part of the Firebase auth client used here.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseIdentifier verifies a Firebase ID token and maps its UID to a user.
type FirebaseIdentifier struct {
	Verifier TokenVerifier
	Users    repositories.UserRepository
}

func (f FirebaseIdentifier) Identify(ctx context.Context, msg RegisterMessage) (uint, error) {
	if msg.Token == "" {
		return 0, fmt.Errorf("%w: missing token", ErrUnidentified)
	}
	token, err := f.Verifier.VerifyIDToken(ctx, msg.Token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnidentified, err)
	}
	user, err := f.Users.GetUserByFirebaseUID(ctx, token.UID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnidentified, err)
	}
	return user.ID, nil
}
