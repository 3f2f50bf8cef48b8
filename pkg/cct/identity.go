package cct

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const (
	DeviceIDPrefix = "CCT"

	deviceIDAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	deviceIDGroupLen      = 4
	deviceIDMaxAttempts   = 100
	associationTokenBytes = 32
)

type DeviceRegistration struct {
	DeviceID        *string
	Name            *string
	Model           string
	FirmwareVersion string
}

type DeviceRegistrationResult struct {
	Device           *models.Device
	APIKey           string
	AssociationToken string
}

type ProbeRegistration struct {
	ProbeID string
	Name    *string
	Model   string
}

// ValidDeviceID reports whether id has the CCT-XXXX-XXXX shape: a CCT prefix
// and exactly two hyphens.
func ValidDeviceID(id string) bool {
	parts := strings.Split(id, "-")
	return len(parts) == 3 && parts[0] == DeviceIDPrefix && parts[1] != "" && parts[2] != ""
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newAssociationToken(deviceID string) (string, error) {
	buf := make([]byte, associationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hashToken(hex.EncodeToString(buf) + deviceID), nil
}

func randomGroup() (string, error) {
	var sb strings.Builder
	alphabetLen := big.NewInt(int64(len(deviceIDAlphabet)))
	for range deviceIDGroupLen {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(deviceIDAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (c *CCT) findDevice(tx *gorm.DB, deviceID string) (*models.Device, error) {
	var device models.Device
	if err := tx.First(&device, "device_id = ?", deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("device %s not found", deviceID)
		}
		return nil, err
	}
	return &device, nil
}

func (c *CCT) findProbe(tx *gorm.DB, probeID string) (*models.Probe, error) {
	var probe models.Probe
	if err := tx.First(&probe, "probe_id = ?", probeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("probe %s not found", probeID)
		}
		return nil, err
	}
	return &probe, nil
}

func (c *CCT) findUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("user %d not found", userID)
		}
		return nil, err
	}
	return &user, nil
}

func (c *CCT) generateUniqueDeviceID() (string, error) {
	for range deviceIDMaxAttempts {
		first, err := randomGroup()
		if err != nil {
			return "", err
		}
		second, err := randomGroup()
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s-%s-%s", DeviceIDPrefix, first, second)

		var count int64
		if err := c.Db.Conn.Model(&models.Device{}).Where("device_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free device id after %d attempts", deviceIDMaxAttempts)
}

func (c *CCT) registerDevice(input *DeviceRegistration) (*DeviceRegistrationResult, error) {
	logger := coreLogger(common.LoggerCategoryIdentity)

	deviceID := common.Deref(input.DeviceID, "")
	if deviceID == "" {
		generated, err := c.generateUniqueDeviceID()
		if err != nil {
			return nil, err
		}
		deviceID = generated
	} else if !ValidDeviceID(deviceID) {
		return nil, validationErrorf("invalid device id format %q, expected CCT-XXXX-XXXX", deviceID)
	}

	associationToken, err := newAssociationToken(deviceID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var device models.Device
	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&device, "device_id = ?", deviceID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			device = models.Device{
				DeviceID:             deviceID,
				Name:                 input.Name,
				Model:                input.Model,
				FirmwareVersion:      input.FirmwareVersion,
				IsActive:             true,
				LastConnected:        &now,
				AssociationTokenHash: hashToken(associationToken),
			}
			return tx.Create(&device).Error
		}
		if err != nil {
			return err
		}

		if input.Name != nil {
			device.Name = input.Name
		}
		device.FirmwareVersion = input.FirmwareVersion
		device.LastConnected = &now
		device.IsActive = true
		device.AssociationTokenHash = hashToken(associationToken)
		return tx.Save(&device).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Device registered", zap.String("device_id", device.DeviceID), zap.Uint("id", device.ID))

	if c.Credential == nil {
		return nil, fmt.Errorf("credential service not available")
	}

	apiKey, err := c.Credential.IssueDeviceAPIKey(&device)
	if err != nil {
		return nil, err
	}

	return &DeviceRegistrationResult{
		Device:           &device,
		APIKey:           apiKey.Key,
		AssociationToken: associationToken,
	}, nil
}

func (c *CCT) registerProbe(deviceID string, input *ProbeRegistration) (*models.Probe, error) {
	logger := coreLogger(common.LoggerCategoryIdentity)

	if input.ProbeID == "" {
		return nil, validationErrorf("probe id is required")
	}

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var probe models.Probe
	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&probe, "probe_id = ?", input.ProbeID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		isNew := errors.Is(err, gorm.ErrRecordNotFound)

		if isNew || probe.DeviceID != device.ID {
			var count int64
			if err := tx.Model(&models.Probe{}).Where("device_id = ?", device.ID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(c.Config.MaxProbesPerDevice) {
				return capacityErrorf("device %s already has the maximum of %d probes", deviceID, c.Config.MaxProbesPerDevice)
			}
		}

		if isNew {
			probe = models.Probe{
				ProbeID:       input.ProbeID,
				Name:          input.Name,
				Model:         input.Model,
				IsConnected:   true,
				LastConnected: &now,
				DeviceID:      device.ID,
			}
			return tx.Create(&probe).Error
		}

		if input.Name != nil {
			probe.Name = input.Name
		}
		if input.Model != "" {
			probe.Model = input.Model
		}
		probe.DeviceID = device.ID
		probe.IsConnected = true
		probe.LastConnected = &now
		return tx.Save(&probe).Error
	})
	if err != nil {
		logger.Warn("Probe registration rejected", zap.String("device_id", deviceID), zap.String("probe_id", input.ProbeID), zap.Error(err))
		return nil, err
	}

	logger.Info("Probe registered", zap.String("device_id", deviceID), zap.Reflect("probe", probe))

	return &probe, nil
}

func (c *CCT) associateDeviceWithUser(deviceID string, userID uint, token *string) (*models.Device, error) {
	logger := coreLogger(common.LoggerCategoryIdentity)

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}
	if _, err := c.findUser(c.Db.Conn, userID); err != nil {
		return nil, err
	}

	owned, err := c.isDeviceOwner(userID, device.ID)
	if err != nil {
		return nil, err
	}
	if owned {
		return device, nil
	}

	if token != nil {
		provided := hashToken(*token)
		if device.AssociationTokenHash == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(device.AssociationTokenHash)) != 1 {
			logger.Warn("Association token rejected", zap.String("device_id", deviceID), zap.Uint("user_id", userID))
			return nil, fmt.Errorf("%w: invalid association token", ErrAuth)
		}
	}

	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.UserDevice{UserID: userID, DeviceID: device.ID, CreatedAt: c.now()}).Error; err != nil {
			return err
		}
		if token != nil {
			device.AssociationTokenHash = ""
			return tx.Model(device).Update("association_token_hash", "").Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Device associated with user", zap.String("device_id", deviceID), zap.Uint("user_id", userID))

	return device, nil
}

func (c *CCT) getDeviceProbes(deviceID string) ([]models.Probe, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}
	var probes []models.Probe
	err = c.Db.Conn.Where("device_id = ?", device.ID).Order("id").Find(&probes).Error
	return probes, err
}

func (c *CCT) getDeviceOwners(deviceDBID uint) ([]models.User, error) {
	var users []models.User
	err := c.Db.Conn.
		Joins("JOIN user_device_association ON user_device_association.user_id = users.id").
		Where("user_device_association.device_id = ?", deviceDBID).
		Order("users.id").
		Find(&users).Error
	return users, err
}

func (c *CCT) isDeviceOwner(userID uint, deviceDBID uint) (bool, error) {
	var count int64
	err := c.Db.Conn.Model(&models.UserDevice{}).
		Where("user_id = ? AND device_id = ?", userID, deviceDBID).
		Count(&count).Error
	return count > 0, err
}

func (c *CCT) updateDeviceConnection(deviceID string, connected bool) (*models.Device, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"is_active": connected}
	if connected {
		now := c.now()
		updates["last_connected"] = now
		device.LastConnected = &now
	}
	if err := c.Db.Conn.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}
	device.IsActive = connected
	return device, nil
}

func (c *CCT) updateProbeConnection(probeID string, connected bool) (*models.Probe, error) {
	probe, err := c.findProbe(c.Db.Conn, probeID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"is_connected": connected}
	if connected {
		now := c.now()
		updates["last_connected"] = now
		probe.LastConnected = &now
	}
	if err := c.Db.Conn.Model(probe).Updates(updates).Error; err != nil {
		return nil, err
	}
	probe.IsConnected = connected
	return probe, nil
}

type IIdentityImpl struct {
	cct *CCT
}

func (ii *IIdentityImpl) RegisterDevice(input *DeviceRegistration) (*DeviceRegistrationResult, error) {
	return ii.cct.registerDevice(input)
}

func (ii *IIdentityImpl) GenerateUniqueDeviceID() (string, error) {
	return ii.cct.generateUniqueDeviceID()
}

func (ii *IIdentityImpl) RegisterProbe(deviceID string, input *ProbeRegistration) (*models.Probe, error) {
	return ii.cct.registerProbe(deviceID, input)
}

func (ii *IIdentityImpl) AssociateDeviceWithUser(deviceID string, userID uint, token *string) (*models.Device, error) {
	return ii.cct.associateDeviceWithUser(deviceID, userID, token)
}

func (ii *IIdentityImpl) GetDevice(deviceID string) (*models.Device, error) {
	return ii.cct.findDevice(ii.cct.Db.Conn, deviceID)
}

func (ii *IIdentityImpl) GetDeviceProbes(deviceID string) ([]models.Probe, error) {
	return ii.cct.getDeviceProbes(deviceID)
}

func (ii *IIdentityImpl) GetDeviceOwners(deviceDBID uint) ([]models.User, error) {
	return ii.cct.getDeviceOwners(deviceDBID)
}

func (ii *IIdentityImpl) IsDeviceOwner(userID uint, deviceDBID uint) (bool, error) {
	return ii.cct.isDeviceOwner(userID, deviceDBID)
}

func (ii *IIdentityImpl) UpdateDeviceConnection(deviceID string, connected bool) (*models.Device, error) {
	return ii.cct.updateDeviceConnection(deviceID, connected)
}

func (ii *IIdentityImpl) UpdateProbeConnection(probeID string, connected bool) (*models.Probe, error) {
	return ii.cct.updateProbeConnection(probeID, connected)
}

func (c *CCT) GetIIdentity() IIdentity {
	return &IIdentityImpl{cct: c}
}
