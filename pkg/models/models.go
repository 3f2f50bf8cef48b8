package models

import "time"

type ConditionType string

const (
	ConditionAbove ConditionType = "above"
	ConditionBelow ConditionType = "below"
	ConditionEqual ConditionType = "equal"
)

func (c ConditionType) Valid() bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionEqual:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationTypeTemperatureAlert NotificationType = "temperature_alert"
	NotificationTypeCustomTrigger    NotificationType = "custom_trigger"
	NotificationTypeConnectionLost   NotificationType = "connection_lost"
	NotificationTypeTest             NotificationType = "test"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// Channels is the dispatch order used by the notifier.
var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelPush}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber    *string   `json:"phone_number"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Device struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	DeviceID        string     `gorm:"uniqueIndex;not null" json:"device_id"`
	Name            *string    `json:"name"`
	Model           string     `json:"model"`
	FirmwareVersion string     `json:"firmware_version"`
	IsActive        bool       `gorm:"index" json:"is_active"`
	LastConnected   *time.Time `json:"last_connected"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// sha256 of the outstanding association token, empty once consumed
	AssociationTokenHash string `json:"-"`
}

// DisplayName is the friendly name when set, otherwise the device id.
func (d *Device) DisplayName() string {
	if d.Name != nil && *d.Name != "" {
		return *d.Name
	}
	return d.DeviceID
}

// UserDevice is the ownership relation between users and devices.
type UserDevice struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	DeviceID  uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (UserDevice) TableName() string {
	return "user_device_association"
}

type Probe struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ProbeID       string     `gorm:"uniqueIndex;not null" json:"probe_id"`
	Name          *string    `json:"name"`
	Model         string     `json:"model"`
	IsConnected   bool       `gorm:"index" json:"is_connected"`
	LastConnected *time.Time `json:"last_connected"`
	DeviceID      uint       `gorm:"index;not null" json:"device_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p *Probe) DisplayName() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return p.ProbeID
}

type APIKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"-"`
	DeviceID  uint      `gorm:"index;not null" json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

type TemperatureReading struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	DeviceID    uint      `gorm:"index;not null" json:"device_id"`
	ProbeID     *uint     `gorm:"index" json:"probe_id"`
	IsAverage   bool      `json:"is_average"`
}

type TargetTemperature struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Temperature float64   `json:"temperature"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
	DeviceID    uint      `gorm:"index;not null" json:"device_id"`
	SetByUserID *uint     `json:"set_by_user_id"`
	IsActive    bool      `gorm:"index" json:"is_active"`
}

type NotificationSetting struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	EmailEnabled     bool      `json:"email_enabled"`
	SMSEnabled       bool      `json:"sms_enabled"`
	PushEnabled      bool      `json:"push_enabled"`
	MaxTempThreshold *float64  `json:"max_temp_threshold"`
	MinTempThreshold *float64  `json:"min_temp_threshold"`
	ConnectionAlerts bool      `json:"connection_alerts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CustomTrigger struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	NotificationSettingID uint          `gorm:"index;not null" json:"notification_setting_id"`
	Name                  string        `json:"name"`
	ConditionType         ConditionType `gorm:"type:varchar(10);check:condition_type IN ('above','below','equal')" json:"condition_type"`
	ThresholdValue        float64       `json:"threshold_value"`
	DeviceID              *uint         `gorm:"index" json:"device_id"`
	ProbeID               *uint         `json:"probe_id"`
	IsActive              bool          `json:"is_active"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"index;not null" json:"user_id"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	NotificationType NotificationType `gorm:"type:varchar(32)" json:"notification_type"`
	Channel          Channel          `gorm:"type:varchar(16)" json:"channel"`
	IsRead           bool             `gorm:"index" json:"is_read"`
	DeviceID         *uint            `json:"device_id"`
	ProbeID          *uint            `json:"probe_id"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
}

// All lists every entity for migration.
func All() []any {
	return []any{
		&User{},
		&Device{},
		&UserDevice{},
		&Probe{},
		&APIKey{},
		&TemperatureReading{},
		&TargetTemperature{},
		&NotificationSetting{},
		&CustomTrigger{},
		&Notification{},
	}
}
