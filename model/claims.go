package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims identify the caller for a single request.
type AccessClaims struct {
	UserID   string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// RefreshClaims only name the identity; the jti keeps two tokens minted in the same
// second distinct.
type RefreshClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}
