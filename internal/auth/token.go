package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issueToken signs an HS256 token carrying user_id and role, valid 72h.
func issueToken(secret, userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
