package cct

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const (
	TitleHighTemperature    = "High Temperature Alert"
	TitleLowTemperature     = "Low Temperature Alert"
	TitleCustomTriggerAlert = "Custom Temperature Alert"
)

// MatchCondition evaluates one custom trigger condition. "equal" matches when
// the reading lies strictly within tolerance of the threshold; a zero
// tolerance means exact equality.
func MatchCondition(condition models.ConditionType, temperature float64, threshold float64, tolerance float64) bool {
	switch condition {
	case models.ConditionAbove:
		return temperature > threshold
	case models.ConditionBelow:
		return temperature < threshold
	case models.ConditionEqual:
		if tolerance <= 0 {
			return temperature == threshold
		}
		return math.Abs(temperature-threshold) < tolerance
	}
	return false
}

// triggerInScope applies the optional device and probe scope of a trigger.
func triggerInScope(trigger *models.CustomTrigger, reading *models.TemperatureReading) bool {
	if trigger.DeviceID != nil && *trigger.DeviceID != reading.DeviceID {
		return false
	}
	if trigger.ProbeID != nil {
		if reading.ProbeID == nil || *trigger.ProbeID != *reading.ProbeID {
			return false
		}
	}
	return true
}

func (c *CCT) findSettings(tx *gorm.DB, userID uint) (*models.NotificationSetting, error) {
	var settings models.NotificationSetting
	err := tx.First(&settings, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *CCT) checkTemperatureTriggers(reading *models.TemperatureReading) error {
	logger := coreLogger(common.LoggerCategoryTrigger)

	var device models.Device
	if err := c.Db.Conn.First(&device, reading.DeviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var probe *models.Probe
	if reading.ProbeID != nil {
		var p models.Probe
		if err := c.Db.Conn.First(&p, *reading.ProbeID).Error; err == nil {
			probe = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	source := device.DisplayName()
	if probe != nil {
		source = fmt.Sprintf("%s (%s)", device.DisplayName(), probe.DisplayName())
	}

	owners, err := c.getDeviceOwners(device.ID)
	if err != nil {
		return err
	}

	if c.Notifier == nil {
		return fmt.Errorf("notifier service not available")
	}

	var errs []error
	fire := func(owner *models.User, title string, message string, nType models.NotificationType) {
		triggersFired.WithLabelValues(string(nType)).Inc()
		logger.Info("Trigger fired",
			zap.Uint("user_id", owner.ID),
			zap.String("device_id", device.DeviceID),
			zap.String("title", title),
			zap.Float64("temperature", reading.Temperature))

		req := &NotificationRequest{
			UserID:   owner.ID,
			Title:    title,
			Message:  message,
			Type:     nType,
			DeviceID: &device.ID,
			ProbeID:  reading.ProbeID,
		}
		if _, err := c.Notifier.SendNotification(req); err != nil {
			logger.Error("Notification failed", zap.Uint("user_id", owner.ID), zap.Error(err))
			errs = append(errs, err)
		}
	}

	for idx := range owners {
		owner := &owners[idx]

		settings, err := c.findSettings(c.Db.Conn, owner.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if settings == nil {
			continue
		}

		if settings.MaxTempThreshold != nil && reading.Temperature > *settings.MaxTempThreshold {
			fire(owner, TitleHighTemperature,
				fmt.Sprintf("Temperature %.1f° on %s exceeded maximum threshold %.1f°",
					reading.Temperature, source, *settings.MaxTempThreshold),
				models.NotificationTypeTemperatureAlert)
		}

		if settings.MinTempThreshold != nil && reading.Temperature < *settings.MinTempThreshold {
			fire(owner, TitleLowTemperature,
				fmt.Sprintf("Temperature %.1f° on %s fell below minimum threshold %.1f°",
					reading.Temperature, source, *settings.MinTempThreshold),
				models.NotificationTypeTemperatureAlert)
		}

		var triggers []models.CustomTrigger
		if err := c.Db.Conn.
			Where("notification_setting_id = ? AND is_active = ?", settings.ID, true).
			Order("id").
			Find(&triggers).Error; err != nil {
			errs = append(errs, err)
			continue
		}

		for t := range triggers {
			trigger := &triggers[t]
			if !triggerInScope(trigger, reading) {
				continue
			}
			if !MatchCondition(trigger.ConditionType, reading.Temperature, trigger.ThresholdValue, c.Config.EqualTolerance) {
				continue
			}
			fire(owner, fmt.Sprintf("%s: %s", TitleCustomTriggerAlert, trigger.Name),
				fmt.Sprintf("Temperature %.1f° on %s is %s %.1f°",
					reading.Temperature, source, trigger.ConditionType, trigger.ThresholdValue),
				models.NotificationTypeCustomTrigger)
		}
	}

	return errors.Join(errs...)
}

type ITriggerImpl struct {
	cct *CCT
}

func (it *ITriggerImpl) CheckTemperatureTriggers(reading *models.TemperatureReading) error {
	return it.cct.checkTemperatureTriggers(reading)
}

func (c *CCT) GetITrigger() ITrigger {
	return &ITriggerImpl{cct: c}
}
