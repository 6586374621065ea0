package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/lefi/digital-brain/pkg/entity"
)

type JWTServiceI interface {
	GenerateToken(user *entity.User) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims carries the username alongside the uid so the profile can be
// bootstrapped with a display name on first access.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
