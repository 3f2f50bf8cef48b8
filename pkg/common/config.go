package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultSecretKey = "change-me"

// Config is built once at startup and then only read.
type Config struct {
	DBType string
	DBPath string
	DBDSN  string

	HttpHostPort string
	GrpcHostPort string

	DefaultRate  float64
	DefaultBurst int

	SecretKey            string
	AccessTokenExpire    time.Duration
	APIKeyExpire         time.Duration
	MaxProbesPerDevice   int
	ConnectionTimeout    time.Duration
	LivenessSchedule     string
	EqualTolerance       float64
	RequireEmailVerified bool
	OTPExpire            time.Duration

	EmailEnabled bool
	SMSEnabled   bool
	PushEnabled  bool

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	SMSProviderURL    string
	SMSProviderAPIKey string
	PushProviderURL   string

	MQTTBrokerURL string
	MQTTTopic     string
}

func DefaultConfig() Config {
	return Config{
		DBType:             "file",
		DBPath:             "cct.db",
		HttpHostPort:       ":1080",
		DefaultRate:        5,
		DefaultBurst:       10,
		SecretKey:          DefaultSecretKey,
		AccessTokenExpire:  30 * time.Minute,
		APIKeyExpire:       30 * 24 * time.Hour,
		MaxProbesPerDevice: 4,
		ConnectionTimeout:  60 * time.Second,
		LivenessSchedule:   "@every 30s",
		EqualTolerance:     0.5,
		OTPExpire:          10 * time.Minute,
		PushEnabled:        true,
		SMTPPort:           587,
		EmailFrom:          "noreply@cctapp.com",
		MQTTTopic:          "cct/+/temperature",
	}
}

// LoadConfig overlays environment values on DefaultConfig. An unparsable value
// is an error rather than a silent fallback.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	var err error

	cfg.DBType = envString(EnvKeyCCTDBType, cfg.DBType)
	cfg.DBPath = envString(EnvKeyCCTDbPath, cfg.DBPath)
	cfg.DBDSN = envString(EnvKeyCCTDbDSN, cfg.DBDSN)
	cfg.HttpHostPort = envString(EnvKeyCCTHttpHostPort, cfg.HttpHostPort)
	cfg.GrpcHostPort = envString(EnvKeyCCTGrpcHostPort, cfg.GrpcHostPort)
	cfg.SecretKey = envString(EnvKeyCCTSecretKey, cfg.SecretKey)
	cfg.LivenessSchedule = envString(EnvKeyCCTLivenessSchedule, cfg.LivenessSchedule)

	cfg.SMTPHost = envString(EnvKeySMTPHost, cfg.SMTPHost)
	cfg.SMTPUsername = envString(EnvKeySMTPUsername, cfg.SMTPUsername)
	cfg.SMTPPassword = envString(EnvKeySMTPPassword, cfg.SMTPPassword)
	cfg.EmailFrom = envString(EnvKeyEmailFrom, cfg.EmailFrom)
	cfg.SMSProviderURL = envString(EnvKeySMSProviderURL, cfg.SMSProviderURL)
	cfg.SMSProviderAPIKey = envString(EnvKeySMSProviderAPIKey, cfg.SMSProviderAPIKey)
	cfg.PushProviderURL = envString(EnvKeyPushProviderURL, cfg.PushProviderURL)
	cfg.MQTTBrokerURL = envString(EnvKeyCCTMQTTBrokerURL, cfg.MQTTBrokerURL)
	cfg.MQTTTopic = envString(EnvKeyCCTMQTTTopic, cfg.MQTTTopic)

	if cfg.DefaultRate, err = envFloat(EnvKeyCCTDefaultRate, cfg.DefaultRate); err != nil {
		return cfg, err
	}
	if cfg.DefaultBurst, err = envInt(EnvKeyCCTDefaultBurst, cfg.DefaultBurst); err != nil {
		return cfg, err
	}
	if cfg.EqualTolerance, err = envFloat(EnvKeyCCTEqualTolerance, cfg.EqualTolerance); err != nil {
		return cfg, err
	}
	if cfg.MaxProbesPerDevice, err = envInt(EnvKeyCCTMaxProbesPerDevice, cfg.MaxProbesPerDevice); err != nil {
		return cfg, err
	}
	if cfg.SMTPPort, err = envInt(EnvKeySMTPPort, cfg.SMTPPort); err != nil {
		return cfg, err
	}

	var minutes, days, seconds int
	if minutes, err = envInt(EnvKeyCCTAccessTokenExpireMinutes, int(cfg.AccessTokenExpire/time.Minute)); err != nil {
		return cfg, err
	}
	cfg.AccessTokenExpire = time.Duration(minutes) * time.Minute

	if days, err = envInt(EnvKeyCCTAPIKeyExpireDays, int(cfg.APIKeyExpire/(24*time.Hour))); err != nil {
		return cfg, err
	}
	cfg.APIKeyExpire = time.Duration(days) * 24 * time.Hour

	if seconds, err = envInt(EnvKeyCCTConnectionTimeoutSeconds, int(cfg.ConnectionTimeout/time.Second)); err != nil {
		return cfg, err
	}
	cfg.ConnectionTimeout = time.Duration(seconds) * time.Second

	if minutes, err = envInt(EnvKeyCCTOTPExpireMinutes, int(cfg.OTPExpire/time.Minute)); err != nil {
		return cfg, err
	}
	cfg.OTPExpire = time.Duration(minutes) * time.Minute

	if cfg.EmailEnabled, err = envBool(EnvKeyCCTEmailEnabled, cfg.EmailEnabled); err != nil {
		return cfg, err
	}
	if cfg.SMSEnabled, err = envBool(EnvKeyCCTSMSEnabled, cfg.SMSEnabled); err != nil {
		return cfg, err
	}
	if cfg.PushEnabled, err = envBool(EnvKeyCCTPushEnabled, cfg.PushEnabled); err != nil {
		return cfg, err
	}
	if cfg.RequireEmailVerified, err = envBool(EnvKeyCCTRequireEmailVerification, cfg.RequireEmailVerified); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBType {
	case "file", "memory", "postgres":
	default:
		return fmt.Errorf("unknown %s: %q", EnvKeyCCTDBType, c.DBType)
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return fmt.Errorf("%s is required when %s=postgres", EnvKeyCCTDbDSN, EnvKeyCCTDBType)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("%s can not be empty", EnvKeyCCTSecretKey)
	}
	if IsProduction() && c.SecretKey == DefaultSecretKey {
		return fmt.Errorf("%s must be changed from the default in production", EnvKeyCCTSecretKey)
	}
	if c.MaxProbesPerDevice < 1 {
		return fmt.Errorf("%s should be at least 1", EnvKeyCCTMaxProbesPerDevice)
	}
	if c.ConnectionTimeout <= 0 {
		return fmt.Errorf("%s should be positive", EnvKeyCCTConnectionTimeoutSeconds)
	}
	if c.EqualTolerance < 0 {
		return fmt.Errorf("%s can not be negative", EnvKeyCCTEqualTolerance)
	}
	return nil
}

func envString(key, fallback string) string {
	if v, found := os.LookupEnv(key); found && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := envString(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s, should be a float64 value: %w", key, err)
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v := envString(key, "")
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s, should be an int value: %w", key, err)
	}
	return i, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := envString(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s, should be true or false: %w", key, err)
	}
	return b, nil
}
