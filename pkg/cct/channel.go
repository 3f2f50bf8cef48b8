package cct

import "liyu1981.xyz/cct-cloud-service/pkg/models"

// NotificationChannel delivers a message to one user. Send reports whether
// the delivery succeeded; failures are never fatal to the caller.
type NotificationChannel interface {
	Send(user *models.User, title string, message string) bool
}

// OTPMailer delivers verification codes.
type OTPMailer interface {
	SendOTP(email string, username string, code string) error
}

// channelReachable tells whether the user has the contact detail a channel
// needs.
func channelReachable(user *models.User, channel models.Channel) bool {
	switch channel {
	case models.ChannelEmail:
		return user.Email != ""
	case models.ChannelSMS:
		return user.PhoneNumber != nil && *user.PhoneNumber != ""
	}
	return true
}
