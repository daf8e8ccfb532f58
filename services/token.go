package services

import (
	"os"
	"time"

	"social-network/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateAccessToken 按用户角色选签名，签发 access token
func GenerateAccessToken(user *models.User) (string, error) {
	signature := os.Getenv("ACCESS_SIGNATURE_USER")
	if user.Role == models.RoleAdmin {
		signature = os.Getenv("ACCESS_SIGNATURE_ADMIN")
	}
	return signToken(user.ID, signature, accessTokenTTL)
}

// GenerateRefreshToken 签发 refresh token
func GenerateRefreshToken(user *models.User) (string, error) {
	signature := os.Getenv("REFRESH_SIGNATURE_USER")
	if user.Role == models.RoleAdmin {
		signature = os.Getenv("REFRESH_SIGNATURE_ADMIN")
	}
	return signToken(user.ID, signature, refreshTokenTTL)
}

func signToken(userID uint, signature string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signature))
}
