package cct

import (
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/db"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

type IIdentity interface {
	RegisterDevice(input *DeviceRegistration) (*DeviceRegistrationResult, error)
	GenerateUniqueDeviceID() (string, error)
	RegisterProbe(deviceID string, input *ProbeRegistration) (*models.Probe, error)
	AssociateDeviceWithUser(deviceID string, userID uint, token *string) (*models.Device, error)
	GetDevice(deviceID string) (*models.Device, error)
	GetDeviceProbes(deviceID string) ([]models.Probe, error)
	GetDeviceOwners(deviceDBID uint) ([]models.User, error)
	IsDeviceOwner(userID uint, deviceDBID uint) (bool, error)
	UpdateDeviceConnection(deviceID string, connected bool) (*models.Device, error)
	UpdateProbeConnection(probeID string, connected bool) (*models.Probe, error)
}

type ICredential interface {
	IssueDeviceAPIKey(device *models.Device) (*models.APIKey, error)
	VerifyDeviceAPIKey(apiKey string, deviceID string) error
	IssueSessionToken(user *models.User) (string, error)
	VerifyUserSession(token string) (*models.User, error)
	HashPassword(password string) (string, error)
	VerifyPassword(hashed string, password string) bool
}

type ITemperature interface {
	StoreReading(deviceID string, temperature float64, probeID *string, isAverage bool) (*models.TemperatureReading, error)
	ProcessTemperatureUpdate(update *TemperatureUpdate) (*TemperatureUpdateResult, error)
	CalculateAverageTemperature(deviceID string) (*float64, error)
	GetTemperatureHistory(query *HistoryQuery) ([]models.TemperatureReading, error)
	SetTargetTemperature(deviceID string, temperature float64, setByUserID *uint) (*models.TargetTemperature, error)
	GetLatestTargetTemperature(deviceID string) (*models.TargetTemperature, error)
	GetTargetTemperatureHistory(deviceID string, limit int) ([]models.TargetTemperature, error)
}

type ITrigger interface {
	CheckTemperatureTriggers(reading *models.TemperatureReading) error
}

type INotifier interface {
	SendNotification(req *NotificationRequest) (map[models.Channel]bool, error)
	ListNotifications(userID uint, limit int, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(notificationID uint, userID uint) (*models.Notification, error)
	MarkAllAsRead(userID uint) (int64, error)
}

type ILiveness interface {
	CheckConnectionStatus() (*SweepResult, error)
}

type ISettings interface {
	GetNotificationSettings(userID uint) (*models.NotificationSetting, error)
	UpdateNotificationSettings(userID uint, update *SettingsUpdate) (*models.NotificationSetting, error)
	CreateCustomTrigger(userID uint, input *CustomTriggerInput) (*models.CustomTrigger, error)
	ListCustomTriggers(userID uint) ([]models.CustomTrigger, error)
	UpdateCustomTrigger(userID uint, triggerID uint, update *CustomTriggerUpdate) (*models.CustomTrigger, error)
	DeleteCustomTrigger(userID uint, triggerID uint) (*models.CustomTrigger, error)
	SyncDeviceSettings(deviceID string) (*SyncedSettings, error)
	UpdateTargetFromDevice(deviceID string, temperature float64) (*models.TargetTemperature, error)
	UpdateTargetFromCloud(deviceID string, temperature float64, userID uint) (*models.TargetTemperature, error)
}

type IUser interface {
	CreateUser(input *UserRegistration) (*models.User, error)
	AuthenticateUser(username string, password string) (*models.User, error)
	GetUser(userID uint) (*models.User, error)
	UpdateUser(userID uint, update *UserUpdate) (*models.User, error)
	GetUserDevices(userID uint) ([]OwnedDevice, error)
	UpdateUserDevice(userID uint, deviceID string, update *UserDeviceUpdate) (*models.Device, error)
	DeregisterUser(userID uint) error
}

type IOTP interface {
	IssueOTP(email string, username string) (string, error)
	VerifyOTP(email string, code string) bool
}

type CCT struct {
	Db     db.DB
	Config common.Config

	// Channels maps a channel name to its sender; a missing entry means the
	// channel is disabled for the whole deployment.
	Channels  map[models.Channel]NotificationChannel
	OTPMailer OTPMailer

	Identity    IIdentity
	Credential  ICredential
	Temperature ITemperature
	Trigger     ITrigger
	Notifier    INotifier
	Liveness    ILiveness
	Settings    ISettings
	User        IUser
	OTP         IOTP

	// Now is the clock used for timestamps and liveness checks.
	Now func() time.Time

	targetLocks *KeyedMutex
	otpStore    *otpStore
}

type ServiceOpts struct {
	Identity    IIdentity
	Credential  ICredential
	Temperature ITemperature
	Trigger     ITrigger
	Notifier    INotifier
	Liveness    ILiveness
	Settings    ISettings
	User        IUser
	OTP         IOTP
}

// New builds a CCT core with every service bound to its default
// implementation. Individual services can be swapped with WithServices.
func New(dbInstance *db.DB, cfg common.Config) *CCT {
	c := &CCT{
		Db:          *dbInstance,
		Config:      cfg,
		Channels:    map[models.Channel]NotificationChannel{},
		Now:         func() time.Time { return time.Now().UTC() },
		targetLocks: NewKeyedMutex(),
		otpStore:    newOTPStore(),
	}
	c.WithServices(ServiceOpts{
		Identity:    c.GetIIdentity(),
		Credential:  c.GetICredential(),
		Temperature: c.GetITemperature(),
		Trigger:     c.GetITrigger(),
		Notifier:    c.GetINotifier(),
		Liveness:    c.GetILiveness(),
		Settings:    c.GetISettings(),
		User:        c.GetIUser(),
		OTP:         c.GetIOTP(),
	})
	return c
}

func (c *CCT) WithServices(opts ServiceOpts) *CCT {
	if opts.Identity != nil {
		c.Identity = opts.Identity
	}
	if opts.Credential != nil {
		c.Credential = opts.Credential
	}
	if opts.Temperature != nil {
		c.Temperature = opts.Temperature
	}
	if opts.Trigger != nil {
		c.Trigger = opts.Trigger
	}
	if opts.Notifier != nil {
		c.Notifier = opts.Notifier
	}
	if opts.Liveness != nil {
		c.Liveness = opts.Liveness
	}
	if opts.Settings != nil {
		c.Settings = opts.Settings
	}
	if opts.User != nil {
		c.User = opts.User
	}
	if opts.OTP != nil {
		c.OTP = opts.OTP
	}
	return c
}

// WithChannel enables a notification channel for the deployment.
func (c *CCT) WithChannel(name models.Channel, channel NotificationChannel) *CCT {
	if channel == nil {
		delete(c.Channels, name)
		return c
	}
	c.Channels[name] = channel
	return c
}

func (c *CCT) WithOTPMailer(mailer OTPMailer) *CCT {
	c.OTPMailer = mailer
	return c
}

func (c *CCT) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}

func coreLogger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameCCTCore,
		zap.String(common.LoggerFieldCCTCategory, category),
	)
}
