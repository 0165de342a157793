package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lumarise-backend/apperrors"
	"lumarise-backend/logger"
	"lumarise-backend/models"
)

// tokenBytes gives a 40 character hex key.
const tokenBytes = 20

var errInvalidCredentials = apperrors.New(apperrors.CodeUnauthorized, "Invalid credentials")

// dummyHash keeps unknown usernames as slow as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lumarise-unknown-user"), bcrypt.DefaultCost)

type LoginResult struct {
	Token    string
	Username string
}

type AuthService struct {
	DB  *gorm.DB
	log *logger.Logger
}

func NewAuthService(db *gorm.DB, logg *logger.Logger) *AuthService {
	if logg == nil {
		logg = logger.Nop()
	}
	return &AuthService{DB: db, log: logg}
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login verifies the credentials and returns the admin's persistent token,
// creating it on first login.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errInvalidCredentials
	}

	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("find admin: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.log.Info(s.log.WithField(ctx, "username", username), "auth.login_failed")
		return nil, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		s.log.Info(s.log.WithField(ctx, "username", username), "auth.login_failed")
		return nil, errInvalidCredentials
	}

	token, err := s.tokenFor(ctx, admin.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&admin).Update("last_login", now).Error; err != nil {
		s.log.Warn(ctx, "auth.last_login_update_failed", err)
	}

	s.log.Info(s.log.WithField(ctx, "admin_id", admin.ID), "auth.login")
	return &LoginResult{Token: token.Key, Username: admin.Username}, nil
}

// tokenFor returns the admin's token, creating one if needed. A concurrent
// first login may win the insert; its token is then returned.
func (s *AuthService) tokenFor(ctx context.Context, adminID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	err := s.DB.WithContext(ctx).Where("admin_id = ?", adminID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("find token: %w", err)
	}

	key, err := generateTokenHex(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	token = models.AuthToken{Key: key, AdminID: adminID}
	if err := s.DB.WithContext(ctx).Omit("Admin").Create(&token).Error; err != nil {
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("create token: %w", err)
		}
		if err := s.DB.WithContext(ctx).Where("admin_id = ?", adminID).First(&token).Error; err != nil {
			return nil, fmt.Errorf("reload token: %w", err)
		}
	}
	return &token, nil
}
