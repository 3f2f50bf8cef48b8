package cct

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

type SettingsUpdate struct {
	EmailEnabled     *bool
	SMSEnabled       *bool
	PushEnabled      *bool
	MaxTempThreshold *float64
	MinTempThreshold *float64
	ConnectionAlerts *bool

	// ClearMaxTempThreshold and ClearMinTempThreshold unset a threshold.
	ClearMaxTempThreshold bool
	ClearMinTempThreshold bool
}

type CustomTriggerInput struct {
	Name           string
	ConditionType  models.ConditionType
	ThresholdValue float64
	DeviceID       *string
	ProbeID        *string
	IsActive       *bool
}

type CustomTriggerUpdate struct {
	Name           *string
	ConditionType  *models.ConditionType
	ThresholdValue *float64
	IsActive       *bool
}

type SyncedThresholds struct {
	MaxTemperature *float64 `json:"max_temperature"`
	MinTemperature *float64 `json:"min_temperature"`
}

type SyncedTrigger struct {
	Name           string               `json:"name"`
	ConditionType  models.ConditionType `json:"condition_type"`
	ThresholdValue float64              `json:"threshold_value"`
}

type SyncedSettings struct {
	DeviceID          string           `json:"device_id"`
	TargetTemperature *float64         `json:"target_temperature"`
	LastSync          time.Time        `json:"last_sync"`
	Thresholds        SyncedThresholds `json:"thresholds"`
	CustomTriggers    []SyncedTrigger  `json:"custom_triggers"`
}

func defaultSettings(userID uint, smsEnabled bool) models.NotificationSetting {
	return models.NotificationSetting{
		UserID:           userID,
		EmailEnabled:     true,
		SMSEnabled:       smsEnabled,
		PushEnabled:      true,
		ConnectionAlerts: true,
	}
}

func (c *CCT) getOrCreateSettings(userID uint) (*models.NotificationSetting, error) {
	settings, err := c.findSettings(c.Db.Conn, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	created := defaultSettings(userID, false)
	if err := c.Db.Conn.Create(&created).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategorySettings).Info("Default notification settings created", zap.Uint("user_id", userID))

	return &created, nil
}

func (c *CCT) updateNotificationSettings(userID uint, update *SettingsUpdate) (*models.NotificationSetting, error) {
	if _, err := c.findUser(c.Db.Conn, userID); err != nil {
		return nil, err
	}
	settings, err := c.getOrCreateSettings(userID)
	if err != nil {
		return nil, err
	}

	if update.EmailEnabled != nil {
		settings.EmailEnabled = *update.EmailEnabled
	}
	if update.SMSEnabled != nil {
		settings.SMSEnabled = *update.SMSEnabled
	}
	if update.PushEnabled != nil {
		settings.PushEnabled = *update.PushEnabled
	}
	if update.ConnectionAlerts != nil {
		settings.ConnectionAlerts = *update.ConnectionAlerts
	}
	if update.MaxTempThreshold != nil {
		settings.MaxTempThreshold = update.MaxTempThreshold
	} else if update.ClearMaxTempThreshold {
		settings.MaxTempThreshold = nil
	}
	if update.MinTempThreshold != nil {
		settings.MinTempThreshold = update.MinTempThreshold
	} else if update.ClearMinTempThreshold {
		settings.MinTempThreshold = nil
	}

	if err := c.Db.Conn.Save(settings).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategorySettings).Info("Notification settings updated", zap.Reflect("settings", settings))

	return settings, nil
}

// resolveTriggerScope turns the public device/probe ids of a trigger into row
// ids. A device scope must be owned by the user.
func (c *CCT) resolveTriggerScope(userID uint, deviceID *string, probeID *string) (*uint, *uint, error) {
	var deviceDBID, probeDBID *uint

	if deviceID != nil && *deviceID != "" {
		device, err := c.findDevice(c.Db.Conn, *deviceID)
		if err != nil {
			return nil, nil, err
		}
		owned, err := c.isDeviceOwner(userID, device.ID)
		if err != nil {
			return nil, nil, err
		}
		if !owned {
			return nil, nil, forbiddenErrorf("device %s is not associated with user %d", *deviceID, userID)
		}
		deviceDBID = &device.ID
	}

	if probeID != nil && *probeID != "" {
		probe, err := c.findProbe(c.Db.Conn, *probeID)
		if err != nil {
			return nil, nil, err
		}
		if deviceDBID != nil && probe.DeviceID != *deviceDBID {
			return nil, nil, validationErrorf("probe %s does not belong to device %s", *probeID, *deviceID)
		}
		probeDBID = &probe.ID
	}

	return deviceDBID, probeDBID, nil
}

func (c *CCT) createCustomTrigger(userID uint, input *CustomTriggerInput) (*models.CustomTrigger, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationErrorf("trigger name is required")
	}
	if !input.ConditionType.Valid() {
		return nil, validationErrorf("invalid condition type %q, must be one of above, below, equal", input.ConditionType)
	}
	if _, err := c.findUser(c.Db.Conn, userID); err != nil {
		return nil, err
	}

	deviceDBID, probeDBID, err := c.resolveTriggerScope(userID, input.DeviceID, input.ProbeID)
	if err != nil {
		return nil, err
	}

	settings, err := c.getOrCreateSettings(userID)
	if err != nil {
		return nil, err
	}

	trigger := models.CustomTrigger{
		NotificationSettingID: settings.ID,
		Name:                  input.Name,
		ConditionType:         input.ConditionType,
		ThresholdValue:        input.ThresholdValue,
		DeviceID:              deviceDBID,
		ProbeID:               probeDBID,
		IsActive:              common.Deref(input.IsActive, true),
	}
	if err := c.Db.Conn.Create(&trigger).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategorySettings).Info("Custom trigger created", zap.Reflect("trigger", trigger))

	return &trigger, nil
}

func (c *CCT) listCustomTriggers(userID uint) ([]models.CustomTrigger, error) {
	triggers := []models.CustomTrigger{}
	settings, err := c.findSettings(c.Db.Conn, userID)
	if err != nil || settings == nil {
		return triggers, err
	}
	err = c.Db.Conn.Where("notification_setting_id = ?", settings.ID).Order("id").Find(&triggers).Error
	return triggers, err
}

func (c *CCT) findOwnTrigger(userID uint, triggerID uint) (*models.CustomTrigger, error) {
	var trigger models.CustomTrigger
	err := c.Db.Conn.
		Joins("JOIN notification_settings ON notification_settings.id = custom_triggers.notification_setting_id").
		Where("custom_triggers.id = ? AND notification_settings.user_id = ?", triggerID, userID).
		First(&trigger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundErrorf("trigger %d not found", triggerID)
	}
	if err != nil {
		return nil, err
	}
	return &trigger, nil
}

func (c *CCT) updateCustomTrigger(userID uint, triggerID uint, update *CustomTriggerUpdate) (*models.CustomTrigger, error) {
	trigger, err := c.findOwnTrigger(userID, triggerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, validationErrorf("trigger name is required")
		}
		trigger.Name = *update.Name
	}
	if update.ConditionType != nil {
		if !update.ConditionType.Valid() {
			return nil, validationErrorf("invalid condition type %q, must be one of above, below, equal", *update.ConditionType)
		}
		trigger.ConditionType = *update.ConditionType
	}
	if update.ThresholdValue != nil {
		trigger.ThresholdValue = *update.ThresholdValue
	}
	if update.IsActive != nil {
		trigger.IsActive = *update.IsActive
	}

	if err := c.Db.Conn.Save(trigger).Error; err != nil {
		return nil, err
	}
	return trigger, nil
}

func (c *CCT) deleteCustomTrigger(userID uint, triggerID uint) (*models.CustomTrigger, error) {
	trigger, err := c.findOwnTrigger(userID, triggerID)
	if err != nil {
		return nil, err
	}
	if err := c.Db.Conn.Delete(trigger).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategorySettings).Info("Custom trigger deleted", zap.Uint("trigger_id", triggerID), zap.Uint("user_id", userID))

	return trigger, nil
}

// syncDeviceSettings collects what a device mirrors locally. Thresholds are
// the tightest bounds across all owners: the lowest max and the highest min.
func (c *CCT) syncDeviceSettings(deviceID string) (*SyncedSettings, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}

	synced := &SyncedSettings{
		DeviceID:       deviceID,
		LastSync:       c.now(),
		CustomTriggers: []SyncedTrigger{},
	}

	target, err := c.getLatestTargetTemperature(deviceID)
	if err != nil {
		return nil, err
	}
	if target != nil {
		synced.TargetTemperature = &target.Temperature
	}

	owners, err := c.getDeviceOwners(device.ID)
	if err != nil {
		return nil, err
	}

	for _, owner := range owners {
		settings, err := c.findSettings(c.Db.Conn, owner.ID)
		if err != nil {
			return nil, err
		}
		if settings == nil {
			continue
		}

		if settings.MaxTempThreshold != nil &&
			(synced.Thresholds.MaxTemperature == nil || *settings.MaxTempThreshold < *synced.Thresholds.MaxTemperature) {
			synced.Thresholds.MaxTemperature = common.Ptr(*settings.MaxTempThreshold)
		}
		if settings.MinTempThreshold != nil &&
			(synced.Thresholds.MinTemperature == nil || *settings.MinTempThreshold > *synced.Thresholds.MinTemperature) {
			synced.Thresholds.MinTemperature = common.Ptr(*settings.MinTempThreshold)
		}

		var triggers []models.CustomTrigger
		if err := c.Db.Conn.
			Where("notification_setting_id = ? AND device_id = ? AND is_active = ?", settings.ID, device.ID, true).
			Order("id").
			Find(&triggers).Error; err != nil {
			return nil, err
		}
		for _, trigger := range triggers {
			synced.CustomTriggers = append(synced.CustomTriggers, SyncedTrigger{
				Name:           trigger.Name,
				ConditionType:  trigger.ConditionType,
				ThresholdValue: trigger.ThresholdValue,
			})
		}
	}

	if err := c.Db.Conn.Model(device).Update("last_connected", synced.LastSync).Error; err != nil {
		return nil, err
	}

	coreLogger(common.LoggerCategorySettings).Info("Device settings synced", zap.String("device_id", deviceID), zap.Reflect("settings", synced))

	return synced, nil
}

func (c *CCT) updateTargetFromDevice(deviceID string, temperature float64) (*models.TargetTemperature, error) {
	if c.Temperature == nil {
		return nil, fmt.Errorf("temperature service not available")
	}
	target, err := c.Temperature.SetTargetTemperature(deviceID, temperature, nil)
	if err != nil {
		return nil, err
	}
	err = c.Db.Conn.Model(&models.Device{}).
		Where("id = ?", target.DeviceID).
		Update("last_connected", c.now()).Error
	if err != nil {
		return nil, err
	}
	return target, nil
}

func (c *CCT) updateTargetFromCloud(deviceID string, temperature float64, userID uint) (*models.TargetTemperature, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}
	owned, err := c.isDeviceOwner(userID, device.ID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, forbiddenErrorf("user %d is not associated with device %s", userID, deviceID)
	}

	if c.Temperature == nil {
		return nil, fmt.Errorf("temperature service not available")
	}
	return c.Temperature.SetTargetTemperature(deviceID, temperature, &userID)
}

type ISettingsImpl struct {
	cct *CCT
}

func (is *ISettingsImpl) GetNotificationSettings(userID uint) (*models.NotificationSetting, error) {
	if _, err := is.cct.findUser(is.cct.Db.Conn, userID); err != nil {
		return nil, err
	}
	return is.cct.getOrCreateSettings(userID)
}

func (is *ISettingsImpl) UpdateNotificationSettings(userID uint, update *SettingsUpdate) (*models.NotificationSetting, error) {
	return is.cct.updateNotificationSettings(userID, update)
}

func (is *ISettingsImpl) CreateCustomTrigger(userID uint, input *CustomTriggerInput) (*models.CustomTrigger, error) {
	return is.cct.createCustomTrigger(userID, input)
}

func (is *ISettingsImpl) ListCustomTriggers(userID uint) ([]models.CustomTrigger, error) {
	return is.cct.listCustomTriggers(userID)
}

func (is *ISettingsImpl) UpdateCustomTrigger(userID uint, triggerID uint, update *CustomTriggerUpdate) (*models.CustomTrigger, error) {
	return is.cct.updateCustomTrigger(userID, triggerID, update)
}

func (is *ISettingsImpl) DeleteCustomTrigger(userID uint, triggerID uint) (*models.CustomTrigger, error) {
	return is.cct.deleteCustomTrigger(userID, triggerID)
}

func (is *ISettingsImpl) SyncDeviceSettings(deviceID string) (*SyncedSettings, error) {
	return is.cct.syncDeviceSettings(deviceID)
}

func (is *ISettingsImpl) UpdateTargetFromDevice(deviceID string, temperature float64) (*models.TargetTemperature, error) {
	return is.cct.updateTargetFromDevice(deviceID, temperature)
}

func (is *ISettingsImpl) UpdateTargetFromCloud(deviceID string, temperature float64, userID uint) (*models.TargetTemperature, error) {
	return is.cct.updateTargetFromCloud(deviceID, temperature, userID)
}

func (c *CCT) GetISettings() ISettings {
	return &ISettingsImpl{cct: c}
}
