package cct

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const DefaultHistoryLimit = 100

type ProbeReading struct {
	ProbeID     *string
	Temperature *float64
}

type TemperatureUpdate struct {
	DeviceID           string
	Readings           []ProbeReading
	AverageTemperature *float64
}

type TemperatureUpdateResult struct {
	Message           string
	Stored            int
	TargetTemperature *float64
}

type HistoryQuery struct {
	DeviceID  string
	ProbeID   *string
	Limit     int
	IsAverage *bool
}

func (c *CCT) storeReading(deviceID string, temperature float64, probeID *string, isAverage bool) (*models.TemperatureReading, error) {
	logger := coreLogger(common.LoggerCategoryTemperature)

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}

	var probe *models.Probe
	if probeID != nil && *probeID != "" {
		if probe, err = c.findProbe(c.Db.Conn, *probeID); err != nil {
			return nil, err
		}
	}

	now := c.now()
	reading := models.TemperatureReading{
		Temperature: temperature,
		Timestamp:   now,
		DeviceID:    device.ID,
		IsAverage:   isAverage,
	}
	if probe != nil {
		reading.ProbeID = &probe.ID
	}

	logger.Info("Received reading for device", zap.String("device_id", deviceID), zap.Reflect("reading", reading))

	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reading).Error; err != nil {
			return err
		}
		if err := tx.Model(device).Update("last_connected", now).Error; err != nil {
			return err
		}
		if probe != nil {
			return tx.Model(probe).Updates(map[string]any{"is_connected": true, "last_connected": now}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := "probe"
	if isAverage {
		kind = "average"
	}
	readingsStored.WithLabelValues(kind).Inc()

	logger.Info("Stored reading for device", zap.String("device_id", deviceID), zap.Reflect("reading", reading))

	if c.Trigger == nil {
		return &reading, fmt.Errorf("trigger service not available")
	}

	if err := c.Trigger.CheckTemperatureTriggers(&reading); err != nil {
		return &reading, err
	}
	return &reading, nil
}

func (c *CCT) processTemperatureUpdate(update *TemperatureUpdate) (*TemperatureUpdateResult, error) {
	if _, err := c.findDevice(c.Db.Conn, update.DeviceID); err != nil {
		return nil, err
	}

	stored := 0
	for _, r := range update.Readings {
		if r.Temperature == nil {
			continue
		}
		if _, err := c.storeReading(update.DeviceID, *r.Temperature, r.ProbeID, false); err != nil {
			return nil, err
		}
		stored++
	}

	if update.AverageTemperature != nil {
		if _, err := c.storeReading(update.DeviceID, *update.AverageTemperature, nil, true); err != nil {
			return nil, err
		}
		stored++
	}

	result := &TemperatureUpdateResult{
		Message: "Temperature update received",
		Stored:  stored,
	}

	target, err := c.getLatestTargetTemperature(update.DeviceID)
	if err != nil {
		return nil, err
	}
	if target != nil {
		result.TargetTemperature = &target.Temperature
	}
	return result, nil
}

// calculateAverageTemperature averages the newest non-average sample of each
// connected probe. nil means there was nothing to average.
func (c *CCT) calculateAverageTemperature(deviceID string) (*float64, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var probes []models.Probe
	if err := c.Db.Conn.Where(&models.Probe{DeviceID: device.ID, IsConnected: true}).Find(&probes).Error; err != nil {
		return nil, err
	}

	var sum float64
	var count int
	for _, probe := range probes {
		var latest models.TemperatureReading
		err := c.Db.Conn.
			Where("probe_id = ? AND is_average = ?", probe.ID, false).
			Order("timestamp desc, id desc").
			First(&latest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		sum += latest.Temperature
		count++
	}

	if count == 0 {
		return nil, nil
	}
	avg := sum / float64(count)
	return &avg, nil
}

func (c *CCT) getTemperatureHistory(query *HistoryQuery) ([]models.TemperatureReading, error) {
	readings := []models.TemperatureReading{}

	device, err := c.findDevice(c.Db.Conn, query.DeviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return readings, nil
		}
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	tx := c.Db.Conn.Where("device_id = ?", device.ID)

	if query.ProbeID != nil {
		probe, err := c.findProbe(c.Db.Conn, *query.ProbeID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return readings, nil
			}
			return nil, err
		}
		tx = tx.Where("probe_id = ?", probe.ID)
	}

	if query.IsAverage != nil {
		tx = tx.Where("is_average = ?", *query.IsAverage)
	}

	err = tx.Order("timestamp desc, id desc").Limit(limit).Find(&readings).Error
	return readings, err
}

// lockDevice takes a row lock on the device so target writers from separate
// server processes queue up. sqlite drops the clause and relies on its single
// writer connection instead.
func lockDevice(tx *gorm.DB, deviceID uint) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&models.Device{}, deviceID)
}

func (c *CCT) setTargetTemperature(deviceID string, temperature float64, setByUserID *uint) (*models.TargetTemperature, error) {
	logger := coreLogger(common.LoggerCategoryTemperature)

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		return nil, err
	}

	unlock := c.targetLocks.Lock(deviceID)
	defer unlock()

	target := models.TargetTemperature{
		Temperature: temperature,
		Timestamp:   c.now(),
		DeviceID:    device.ID,
		SetByUserID: setByUserID,
		IsActive:    true,
	}

	err = c.Db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := lockDevice(tx, device.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TargetTemperature{}).
			Where("device_id = ? AND is_active = ?", device.ID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(&target).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Target temperature set", zap.String("device_id", deviceID), zap.Reflect("target", target))

	return &target, nil
}

func (c *CCT) getLatestTargetTemperature(deviceID string) (*models.TargetTemperature, error) {
	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var target models.TargetTemperature
	err = c.Db.Conn.
		Where("device_id = ? AND is_active = ?", device.ID, true).
		Order("timestamp desc, id desc").
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (c *CCT) getTargetTemperatureHistory(deviceID string, limit int) ([]models.TargetTemperature, error) {
	targets := []models.TargetTemperature{}

	device, err := c.findDevice(c.Db.Conn, deviceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return targets, nil
		}
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	err = c.Db.Conn.
		Where("device_id = ?", device.ID).
		Order("timestamp desc, id desc").
		Limit(limit).
		Find(&targets).Error
	return targets, err
}

type ITemperatureImpl struct {
	cct *CCT
}

func (it *ITemperatureImpl) StoreReading(deviceID string, temperature float64, probeID *string, isAverage bool) (*models.TemperatureReading, error) {
	return it.cct.storeReading(deviceID, temperature, probeID, isAverage)
}

func (it *ITemperatureImpl) ProcessTemperatureUpdate(update *TemperatureUpdate) (*TemperatureUpdateResult, error) {
	return it.cct.processTemperatureUpdate(update)
}

func (it *ITemperatureImpl) CalculateAverageTemperature(deviceID string) (*float64, error) {
	return it.cct.calculateAverageTemperature(deviceID)
}

func (it *ITemperatureImpl) GetTemperatureHistory(query *HistoryQuery) ([]models.TemperatureReading, error) {
	return it.cct.getTemperatureHistory(query)
}

func (it *ITemperatureImpl) SetTargetTemperature(deviceID string, temperature float64, setByUserID *uint) (*models.TargetTemperature, error) {
	return it.cct.setTargetTemperature(deviceID, temperature, setByUserID)
}

func (it *ITemperatureImpl) GetLatestTargetTemperature(deviceID string) (*models.TargetTemperature, error) {
	return it.cct.getLatestTargetTemperature(deviceID)
}

func (it *ITemperatureImpl) GetTargetTemperatureHistory(deviceID string, limit int) ([]models.TargetTemperature, error) {
	return it.cct.getTargetTemperatureHistory(deviceID, limit)
}

func (c *CCT) GetITemperature() ITemperature {
	return &ITemperatureImpl{cct: c}
}
