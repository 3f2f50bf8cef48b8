package cct

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const DefaultNotificationLimit = 50

type NotificationRequest struct {
	UserID   uint
	Title    string
	Message  string
	Type     models.NotificationType
	DeviceID *uint
	ProbeID  *uint
}

func channelEnabled(settings *models.NotificationSetting, channel models.Channel) bool {
	switch channel {
	case models.ChannelEmail:
		return settings.EmailEnabled
	case models.ChannelSMS:
		return settings.SMSEnabled
	case models.ChannelPush:
		return settings.PushEnabled
	}
	return false
}

// sendNotification fans a message out over every channel the user enabled.
// A row is stored per channel that reported success; other channels still
// run when one fails.
func (c *CCT) sendNotification(req *NotificationRequest) (map[models.Channel]bool, error) {
	logger := coreLogger(common.LoggerCategoryNotification)

	user, err := c.findUser(c.Db.Conn, req.UserID)
	if err != nil {
		return nil, err
	}

	settings, err := c.getOrCreateSettings(user.ID)
	if err != nil {
		return nil, err
	}

	results := map[models.Channel]bool{}
	for _, channel := range models.Channels {
		if !channelEnabled(settings, channel) {
			continue
		}

		sender, configured := c.Channels[channel]
		if !configured || !channelReachable(user, channel) {
			logger.Info("Channel skipped",
				zap.Uint("user_id", user.ID),
				zap.String("channel", string(channel)),
				zap.Bool("configured", configured))
			results[channel] = false
			continue
		}

		ok := sender.Send(user, req.Title, req.Message)
		results[channel] = ok
		notificationsDispatched.WithLabelValues(string(channel), outcomeLabel(ok)).Inc()
		if !ok {
			logger.Warn("Channel send failed", zap.Uint("user_id", user.ID), zap.String("channel", string(channel)))
			continue
		}

		notification := models.Notification{
			UserID:           user.ID,
			Title:            req.Title,
			Message:          req.Message,
			NotificationType: req.Type,
			Channel:          channel,
			DeviceID:         req.DeviceID,
			ProbeID:          req.ProbeID,
			CreatedAt:        c.now(),
		}
		if err := c.Db.Conn.Create(&notification).Error; err != nil {
			return results, err
		}

		logger.Info("Notification saved", zap.Reflect("notification", notification))
	}

	return results, nil
}

func (c *CCT) listNotifications(userID uint, limit int, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	notifications := []models.Notification{}
	tx := c.Db.Conn.Where("user_id = ?", userID)
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	err := tx.Order("created_at desc, id desc").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (c *CCT) markAsRead(notificationID uint, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := c.Db.Conn.First(&notification, "id = ? AND user_id = ?", notificationID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundErrorf("notification %d not found", notificationID)
	}
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		if err := c.Db.Conn.Model(&notification).Update("is_read", true).Error; err != nil {
			return nil, err
		}
		notification.IsRead = true
	}
	return &notification, nil
}

func (c *CCT) markAllAsRead(userID uint) (int64, error) {
	result := c.Db.Conn.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

type INotifierImpl struct {
	cct *CCT
}

func (in *INotifierImpl) SendNotification(req *NotificationRequest) (map[models.Channel]bool, error) {
	return in.cct.sendNotification(req)
}

func (in *INotifierImpl) ListNotifications(userID uint, limit int, unreadOnly bool) ([]models.Notification, error) {
	return in.cct.listNotifications(userID, limit, unreadOnly)
}

func (in *INotifierImpl) MarkAsRead(notificationID uint, userID uint) (*models.Notification, error) {
	return in.cct.markAsRead(notificationID, userID)
}

func (in *INotifierImpl) MarkAllAsRead(userID uint) (int64, error) {
	return in.cct.markAllAsRead(userID)
}

func (c *CCT) GetINotifier() INotifier {
	return &INotifierImpl{cct: c}
}
