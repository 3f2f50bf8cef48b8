// Package notify holds the concrete delivery channels behind
// cct.NotificationChannel: SMTP email, an HTTP SMS provider and push.
package notify

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const providerTimeout = 10 * time.Second

func notifyLogger(channel models.Channel) *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameNotify, zap.String(common.LoggerFieldCCTCategory, string(channel)))
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: providerTimeout}
}

// BuildChannels turns the deployment config into the channel map the core
// dispatches over, plus the mailer used for OTP codes. A channel that is
// switched off, or lacks the settings it needs, is left out of the map.
func BuildChannels(cfg common.Config) (map[models.Channel]cct.NotificationChannel, cct.OTPMailer) {
	logger := common.GetLoggerWith(common.LoggerNameNotify)

	channels := map[models.Channel]cct.NotificationChannel{}
	var mailer cct.OTPMailer

	if cfg.EmailEnabled {
		if cfg.SMTPHost == "" {
			logger.Warn("Email channel enabled without SMTP server, skipped")
		} else {
			emailChannel := NewEmailChannel(cfg)
			channels[models.ChannelEmail] = emailChannel
			mailer = emailChannel
		}
	}

	if cfg.SMSEnabled {
		if cfg.SMSProviderURL == "" {
			logger.Warn("SMS channel enabled without provider url, skipped")
		} else {
			channels[models.ChannelSMS] = NewSMSChannel(cfg.SMSProviderURL, cfg.SMSProviderAPIKey, nil)
		}
	}

	if cfg.PushEnabled {
		channels[models.ChannelPush] = NewPushChannel(cfg.PushProviderURL, nil)
	}

	logger.Info("Notification channels built",
		zap.Bool("email", channels[models.ChannelEmail] != nil),
		zap.Bool("sms", channels[models.ChannelSMS] != nil),
		zap.Bool("push", channels[models.ChannelPush] != nil))

	return channels, mailer
}
