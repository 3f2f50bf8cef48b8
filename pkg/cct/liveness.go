package cct

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const (
	TitleDeviceConnectionLost = "Device Connection Lost"
	TitleProbeConnectionLost  = "Probe Connection Lost"
)

type SweepResult struct {
	StartedAt           time.Time
	DevicesDisconnected []string
	ProbesDisconnected  []string
}

func stale(lastConnected *time.Time, now time.Time, timeout time.Duration) bool {
	return lastConnected != nil && now.Sub(*lastConnected) > timeout
}

func (c *CCT) notifyConnectionLost(device *models.Device, probe *models.Probe) error {
	owners, err := c.getDeviceOwners(device.ID)
	if err != nil {
		return err
	}
	if c.Notifier == nil {
		return fmt.Errorf("notifier service not available")
	}

	title := TitleDeviceConnectionLost
	message := fmt.Sprintf("Connection to %s has been lost", device.DisplayName())
	req := NotificationRequest{
		Title:    title,
		Type:     models.NotificationTypeConnectionLost,
		DeviceID: &device.ID,
	}
	if probe != nil {
		req.Title = TitleProbeConnectionLost
		message = fmt.Sprintf("Connection to probe %s on %s has been lost", probe.DisplayName(), device.DisplayName())
		req.ProbeID = &probe.ID
	}
	req.Message = message

	var errs []error
	for _, owner := range owners {
		settings, err := c.getOrCreateSettings(owner.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !settings.ConnectionAlerts {
			continue
		}
		ownerReq := req
		ownerReq.UserID = owner.ID
		if _, err := c.Notifier.SendNotification(&ownerReq); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkConnectionStatus demotes devices and probes whose last reading is
// older than the connection timeout. Each stale entity is updated on its
// own, so ingestion may interleave with a sweep.
func (c *CCT) checkConnectionStatus() (*SweepResult, error) {
	logger := coreLogger(common.LoggerCategoryLiveness)

	now := c.now()
	timeout := c.Config.ConnectionTimeout
	result := &SweepResult{
		StartedAt:           now,
		DevicesDisconnected: []string{},
		ProbesDisconnected:  []string{},
	}

	var devices []models.Device
	if err := c.Db.Conn.Where("is_active = ?", true).Order("id").Find(&devices).Error; err != nil {
		return nil, err
	}
	var probes []models.Probe
	if err := c.Db.Conn.Where("is_connected = ?", true).Order("id").Find(&probes).Error; err != nil {
		return nil, err
	}

	var errs []error

	for idx := range devices {
		device := &devices[idx]
		if !stale(device.LastConnected, now, timeout) {
			continue
		}

		logger.Info("Device connection lost", zap.String("device_id", device.DeviceID), zap.Timep("last_connected", device.LastConnected))

		if err := c.notifyConnectionLost(device, nil); err != nil {
			logger.Error("Connection lost notification failed", zap.String("device_id", device.DeviceID), zap.Error(err))
			errs = append(errs, err)
		}
		if err := c.Db.Conn.Model(device).Update("is_active", false).Error; err != nil {
			errs = append(errs, err)
			continue
		}
		livenessDisconnects.WithLabelValues("device").Inc()
		result.DevicesDisconnected = append(result.DevicesDisconnected, device.DeviceID)
	}

	for idx := range probes {
		probe := &probes[idx]
		if !stale(probe.LastConnected, now, timeout) {
			continue
		}

		logger.Info("Probe connection lost", zap.String("probe_id", probe.ProbeID), zap.Timep("last_connected", probe.LastConnected))

		var device models.Device
		if err := c.Db.Conn.First(&device, probe.DeviceID).Error; err == nil {
			if err := c.notifyConnectionLost(&device, probe); err != nil {
				logger.Error("Connection lost notification failed", zap.String("probe_id", probe.ProbeID), zap.Error(err))
				errs = append(errs, err)
			}
		}
		if err := c.Db.Conn.Model(probe).Update("is_connected", false).Error; err != nil {
			errs = append(errs, err)
			continue
		}
		livenessDisconnects.WithLabelValues("probe").Inc()
		result.ProbesDisconnected = append(result.ProbesDisconnected, probe.ProbeID)
	}

	logger.Info("Liveness sweep finished",
		zap.Int("devices_disconnected", len(result.DevicesDisconnected)),
		zap.Int("probes_disconnected", len(result.ProbesDisconnected)))

	return result, errors.Join(errs...)
}

type ILivenessImpl struct {
	cct *CCT
}

func (il *ILivenessImpl) CheckConnectionStatus() (*SweepResult, error) {
	return il.cct.checkConnectionStatus()
}

func (c *CCT) GetILiveness() ILiveness {
	return &ILivenessImpl{cct: c}
}
