package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims supplied by the external identity provider.
// The service only reads them; issuing and refreshing tokens is not its
// concern.
type AuthClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"` // "mentor" or "student"
	jwt.RegisteredClaims
}
