package cct

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

type UserRegistration struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber *string
	OTP         *string
}

type UserUpdate struct {
	Username    *string
	Email       *string
	PhoneNumber *string
	Password    *string
}

type UserDeviceUpdate struct {
	Name     *string
	IsActive *bool
}

// OwnedDevice is a device as its owner sees it, with the newest usable key.
type OwnedDevice struct {
	models.Device
	APIKey *string `json:"api_key"`
}

func (c *CCT) checkUserUnique(tx *gorm.DB, username string, email string, exceptID uint) error {
	var existing models.User
	if username != "" {
		err := tx.Where("username = ? AND id <> ?", username, exceptID).First(&existing).Error
		if err == nil {
			return validationErrorf("username %s already registered", username)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	if email != "" {
		err := tx.Where("email = ? AND id <> ?", email, exceptID).First(&existing).Error
		if err == nil {
			return validationErrorf("email %s already registered", email)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

func (c *CCT) createUser(input *UserRegistration) (*models.User, error) {
	logger := coreLogger(common.LoggerCategoryUser)

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, validationErrorf("username, email and password are required")
	}

	if err := c.checkUserUnique(c.Db.Conn, username, email, 0); err != nil {
		return nil, err
	}

	if c.Config.RequireEmailVerified {
		if c.OTP == nil {
			return nil, fmt.Errorf("otp service not available")
		}
		if input.OTP == nil || !c.OTP.VerifyOTP(email, *input.OTP) {
			return nil, validationErrorf("invalid or expired OTP for %s", email)
		}
	}

	if c.Credential == nil {
		return nil, fmt.Errorf("credential service not available")
	}
	hashed, err := c.Credential.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:       username,
		Email:          email,
		PhoneNumber:    input.PhoneNumber,
		HashedPassword: hashed,
		IsActive:       true,
	}
	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		settings := defaultSettings(user.ID, input.PhoneNumber != nil && *input.PhoneNumber != "")
		return tx.Create(&settings).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User created", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	return &user, nil
}

func (c *CCT) authenticateUser(username string, password string) (*models.User, error) {
	var user models.User
	err := c.Db.Conn.First(&user, "username = ?", username).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if c.Credential == nil {
		return nil, fmt.Errorf("credential service not available")
	}
	if err != nil || !c.Credential.VerifyPassword(user.HashedPassword, password) {
		credentialFailures.WithLabelValues("password").Inc()
		return nil, fmt.Errorf("%w: incorrect username or password", ErrAuth)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", ErrAuth)
	}
	return &user, nil
}

func (c *CCT) updateUser(userID uint, update *UserUpdate) (*models.User, error) {
	user, err := c.findUser(c.Db.Conn, userID)
	if err != nil {
		return nil, err
	}

	username := common.Deref(update.Username, "")
	email := common.Deref(update.Email, "")
	if err := c.checkUserUnique(c.Db.Conn, username, email, user.ID); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Password != nil && *update.Password != "" {
		if c.Credential == nil {
			return nil, fmt.Errorf("credential service not available")
		}
		hashed, err := c.Credential.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := c.Db.Conn.Save(user).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategoryUser).Info("User updated", zap.Uint("user_id", user.ID))

	return user, nil
}

func (c *CCT) getUserDevices(userID uint) ([]OwnedDevice, error) {
	var devices []models.Device
	err := c.Db.Conn.
		Joins("JOIN user_device_association ON user_device_association.device_id = devices.id").
		Where("user_device_association.user_id = ?", userID).
		Order("devices.id").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}

	owned := make([]OwnedDevice, 0, len(devices))
	for _, device := range devices {
		entry := OwnedDevice{Device: device}

		var apiKey models.APIKey
		err := c.Db.Conn.
			Where(&models.APIKey{DeviceID: device.ID, IsActive: true}).
			Where("expires_at > ?", c.now()).
			Order("created_at desc, id desc").
			First(&apiKey).Error
		if err == nil {
			entry.APIKey = &apiKey.Key
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		owned = append(owned, entry)
	}
	return owned, nil
}

func (c *CCT) updateUserDevice(userID uint, deviceID string, update *UserDeviceUpdate) (*models.Device, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}
	owned, err := c.isDeviceOwner(userID, device.ID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, notFoundErrorf("device %s not found or not owned by user", deviceID)
	}

	if update.Name != nil {
		device.Name = update.Name
	}
	if update.IsActive != nil {
		device.IsActive = *update.IsActive
	}
	if err := c.Db.Conn.Save(device).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// deregisterUser removes the user and everything hanging off the account.
// Devices stay; other owners keep them.
func (c *CCT) deregisterUser(userID uint) error {
	user, err := c.findUser(c.Db.Conn, userID)
	if err != nil {
		return err
	}

	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		settings, err := c.findSettings(tx, user.ID)
		if err != nil {
			return err
		}
		if settings != nil {
			if err := tx.Where("notification_setting_id = ?", settings.ID).Delete(&models.CustomTrigger{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(settings).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.TargetTemperature{}).
			Where("set_by_user_id = ?", user.ID).
			Update("set_by_user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserDevice{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return err
	}

	coreLogger(common.LoggerCategoryUser).Info("User deregistered", zap.Uint("user_id", userID))

	return nil
}

type IUserImpl struct {
	cct *CCT
}

func (iu *IUserImpl) CreateUser(input *UserRegistration) (*models.User, error) {
	return iu.cct.createUser(input)
}

func (iu *IUserImpl) AuthenticateUser(username string, password string) (*models.User, error) {
	return iu.cct.authenticateUser(username, password)
}

func (iu *IUserImpl) GetUser(userID uint) (*models.User, error) {
	return iu.cct.findUser(iu.cct.Db.Conn, userID)
}

func (iu *IUserImpl) UpdateUser(userID uint, update *UserUpdate) (*models.User, error) {
	return iu.cct.updateUser(userID, update)
}

func (iu *IUserImpl) GetUserDevices(userID uint) ([]OwnedDevice, error) {
	return iu.cct.getUserDevices(userID)
}

func (iu *IUserImpl) UpdateUserDevice(userID uint, deviceID string, update *UserDeviceUpdate) (*models.Device, error) {
	return iu.cct.updateUserDevice(userID, deviceID, update)
}

func (iu *IUserImpl) DeregisterUser(userID uint) error {
	return iu.cct.deregisterUser(userID)
}

func (c *CCT) GetIUser() IUser {
	return &IUserImpl{cct: c}
}
