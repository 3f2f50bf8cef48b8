package cct

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const (
	TokenTypeDevice  = "device"
	TokenTypeSession = "session"
)

// TokenClaims is shared by device api keys and user sessions; Type keeps one
// from being accepted as the other.
type TokenClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

func (c *CCT) signToken(subject string, tokenType string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := TokenClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.Config.SecretKey))
}

func (c *CCT) parseToken(raw string, tokenType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(c.Config.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: invalid token", ErrAuth)
	}
	if claims.Type != tokenType || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", ErrAuth)
	}
	return claims, nil
}

func (c *CCT) issueDeviceAPIKey(device *models.Device) (*models.APIKey, error) {
	logger := coreLogger(common.LoggerCategoryCredential)

	signed, err := c.signToken(device.DeviceID, TokenTypeDevice, c.Config.APIKeyExpire)
	if err != nil {
		return nil, err
	}

	now := c.now()
	apiKey := models.APIKey{
		Key:       signed,
		DeviceID:  device.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(c.Config.APIKeyExpire),
		IsActive:  true,
	}
	if err := c.Db.Conn.Create(&apiKey).Error; err != nil {
		return nil, err
	}

	logger.Info("API key issued", zap.String("device_id", device.DeviceID), zap.Time("expires_at", apiKey.ExpiresAt))

	return &apiKey, nil
}

func (c *CCT) verifyDeviceAPIKey(raw string, deviceID string) error {
	logger := coreLogger(common.LoggerCategoryCredential)

	reject := func(err error) error {
		credentialFailures.WithLabelValues(TokenTypeDevice).Inc()
		logger.Warn("API key rejected", zap.String("device_id", deviceID), zap.Error(err))
		return err
	}

	if raw == "" {
		return reject(fmt.Errorf("%w: missing api key", ErrAuth))
	}

	claims, err := c.parseToken(raw, TokenTypeDevice)
	if err != nil {
		return reject(err)
	}
	if claims.Subject != deviceID {
		return reject(fmt.Errorf("%w: invalid token", ErrAuth))
	}

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return reject(fmt.Errorf("%w: invalid token", ErrAuth))
		}
		return err
	}

	var count int64
	err = c.Db.Conn.Model(&models.APIKey{}).
		Where(&models.APIKey{Key: raw, DeviceID: device.ID, IsActive: true}).
		Where("expires_at > ?", c.now()).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return reject(fmt.Errorf("%w: invalid token", ErrAuth))
	}

	return nil
}

func (c *CCT) issueSessionToken(user *models.User) (string, error) {
	return c.signToken(user.Username, TokenTypeSession, c.Config.AccessTokenExpire)
}

func (c *CCT) verifyUserSession(raw string) (*models.User, error) {
	logger := coreLogger(common.LoggerCategoryCredential)

	reject := func(err error) (*models.User, error) {
		credentialFailures.WithLabelValues(TokenTypeSession).Inc()
		logger.Warn("Session rejected", zap.Error(err))
		return nil, err
	}

	claims, err := c.parseToken(raw, TokenTypeSession)
	if err != nil {
		return reject(err)
	}

	var user models.User
	if err := c.Db.Conn.First(&user, "username = ?", claims.Subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reject(fmt.Errorf("%w: invalid token", ErrAuth))
		}
		return nil, err
	}
	if !user.IsActive {
		return reject(fmt.Errorf("%w: inactive user", ErrAuth))
	}
	return &user, nil
}

type ICredentialImpl struct {
	cct *CCT
}

func (ic *ICredentialImpl) IssueDeviceAPIKey(device *models.Device) (*models.APIKey, error) {
	return ic.cct.issueDeviceAPIKey(device)
}

func (ic *ICredentialImpl) VerifyDeviceAPIKey(apiKey string, deviceID string) error {
	return ic.cct.verifyDeviceAPIKey(apiKey, deviceID)
}

func (ic *ICredentialImpl) IssueSessionToken(user *models.User) (string, error) {
	return ic.cct.issueSessionToken(user)
}

func (ic *ICredentialImpl) VerifyUserSession(token string) (*models.User, error) {
	return ic.cct.verifyUserSession(token)
}

func (ic *ICredentialImpl) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (ic *ICredentialImpl) VerifyPassword(hashed string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

func (c *CCT) GetICredential() ICredential {
	return &ICredentialImpl{cct: c}
}
