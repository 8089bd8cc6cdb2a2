// Package auth validates the access tokens issued by the account service.
// The storefront never issues tokens to shoppers itself.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. Subject holds the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator interface {
	ValidateAccessToken(token string) (*Claims, error)
	GenerateToken(userID int64, email string, ttl time.Duration) (string, error)
}
