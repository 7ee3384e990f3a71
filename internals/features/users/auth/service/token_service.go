package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tutorku_backend/internals/configs"
	authModel "tutorku_backend/internals/features/users/auth/model"
	userModel "tutorku_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

/* ==========================
   Issue
========================== */

func IssueAccessToken(user *userModel.UserModel) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"sub":       user.ID.String(),
		"role":      user.Role,
		"user_name": user.Name,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssueRefreshToken creates the refresh JWT and persists its HMAC hash.
func IssueRefreshToken(db *gorm.DB, user *userModel.UserModel) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	rec := authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     ComputeRefreshHash(raw, secret),
		ExpiresAt: now.Add(RefreshTTL),
	}
	if err := db.Create(&rec).Error; err != nil {
		return "", err
	}
	return raw, nil
}

func ComputeRefreshHash(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

/* ==========================
   Rotate / revoke
========================== */

// RotateRefreshToken validates the presented refresh token, deletes its hash
// and returns the owning user for re-issue.
func RotateRefreshToken(db *gorm.DB, raw string) (*userModel.UserModel, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := ComputeRefreshHash(raw, secret)
	res := db.Where("token = ?", hash).Delete(&authModel.RefreshTokenModel{})
	if res.Error != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token unknown")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Account deactivated")
	}
	return &user, nil
}

// BlacklistAccessToken records the access token until its natural expiry.
func BlacklistAccessToken(db *gorm.DB, token string) error {
	return db.Create(&authModel.TokenBlacklistModel{
		Token:     token,
		ExpiredAt: time.Now().UTC().Add(AccessTTL),
	}).Error
}

// DeleteRefreshTokensForUser drops every refresh token of the user (logout).
func DeleteRefreshTokensForUser(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshTokenModel{}).Error
}
