package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthService struct {
	DB     *gorm.DB
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TTL: ttl}
}

// Session is a signed, revocable login.
type Session struct {
	Token     string    `json:"-"`
	ID        string    `json:"-"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionFromClaims(token string, c *utils.SessionClaims) *Session {
	return &Session{
		Token:     token,
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.Username,
		ExpiresAt: c.ExpiresAt.Time,
	}
}

// Login checks the password and issues a new session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InfoLogger.WithField("username", username).Warn("login failed: unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utils.InfoLogger.WithField("username", username).Warn("login failed: wrong password")
		return nil, ErrInvalidCredentials
	}

	token, claims, err := utils.GenerateSessionToken(s.Secret, user.ID, user.Username, s.TTL, clockNow(s.Now))
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user logged in")
	return sessionFromClaims(token, claims), nil
}

// Authenticate verifies the token and rejects revoked sessions.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := utils.ParseSessionToken(s.Secret, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var revoked int64
	if err := s.DB.WithContext(ctx).Model(&models.RevokedSession{}).
		Where("id = ?", claims.ID).
		Count(&revoked).Error; err != nil {
		return nil, err
	}
	if revoked > 0 {
		return nil, ErrUnauthenticated
	}
	return sessionFromClaims(token, claims), nil
}

// Logout revokes the token. Unknown, invalid or already revoked tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ParseSessionToken(s.Secret, token)
	if err != nil {
		return nil
	}

	now := clockNow(s.Now)
	db := s.DB.WithContext(ctx)
	entry := models.RevokedSession{
		ID:        claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		RevokedAt: now,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return err
	}

	// expired tokens fail verification on their own
	if err := db.Where("expires_at < ?", now).Delete(&models.RevokedSession{}).Error; err != nil {
		utils.ErrorLogger.WithError(err).Error("error purging expired revocations")
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": claims.UserID, "username": claims.Username}).Info("user logged out")
	return nil
}
