package cct_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/cct/mocks"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

func TestSendNotificationPerChannel(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	email := mocks.NewMockNotificationChannel(ctrl)
	sms := mocks.NewMockNotificationChannel(ctrl)
	push := mocks.NewMockNotificationChannel(ctrl)
	cctObj.WithChannel(models.ChannelEmail, email).
		WithChannel(models.ChannelSMS, sms).
		WithChannel(models.ChannelPush, push)

	alice := seedUser(t, cctObj, "alice")
	// alice has no phone, so sms is skipped even when enabled
	_, err := cctObj.Settings.UpdateNotificationSettings(alice.ID, &cct.SettingsUpdate{SMSEnabled: common.Ptr(true)})
	require.NoError(t, err)

	email.EXPECT().Send(gomock.Any(), "Hello", "World").Return(false).Times(1)
	sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	push.EXPECT().
		Send(gomock.Any(), "Hello", "World").
		DoAndReturn(func(user *models.User, title, message string) bool {
			assert.Equal(t, alice.ID, user.ID)
			return true
		}).
		Times(1)

	results, err := cctObj.Notifier.SendNotification(&cct.NotificationRequest{
		UserID:  alice.ID,
		Title:   "Hello",
		Message: "World",
		Type:    models.NotificationTypeTest,
	})
	require.NoError(t, err)
	assert.Equal(t, map[models.Channel]bool{
		models.ChannelEmail: false,
		models.ChannelSMS:   false,
		models.ChannelPush:  true,
	}, results)

	notifications, err := cctObj.Notifier.ListNotifications(alice.ID, 10, false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.ChannelPush, notifications[0].Channel)
	assert.Equal(t, models.NotificationTypeTest, notifications[0].NotificationType)
	assert.False(t, notifications[0].IsRead)
}

func TestSendNotificationDisabledAndUnconfiguredChannels(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	// only sms is configured for the deployment
	sms := mocks.NewMockNotificationChannel(ctrl)
	cctObj.WithChannel(models.ChannelSMS, sms)

	bob, err := cctObj.User.CreateUser(&cct.UserRegistration{
		Username:    "bob",
		Email:       "bob@example.com",
		Password:    "pw",
		PhoneNumber: common.Ptr("+15550100"),
	})
	require.NoError(t, err)

	// push is turned off by bob
	_, err = cctObj.Settings.UpdateNotificationSettings(bob.ID, &cct.SettingsUpdate{PushEnabled: common.Ptr(false)})
	require.NoError(t, err)

	sms.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(true).Times(1)

	results, err := cctObj.Notifier.SendNotification(&cct.NotificationRequest{UserID: bob.ID, Title: "t", Message: "m", Type: models.NotificationTypeTest})
	require.NoError(t, err)
	assert.Equal(t, map[models.Channel]bool{
		models.ChannelEmail: false,
		models.ChannelSMS:   true,
	}, results)

	_, err = cctObj.Notifier.SendNotification(&cct.NotificationRequest{UserID: 4242, Title: "t"})
	assert.ErrorIs(t, err, cct.ErrNotFound)
}

func TestSendNotificationCreatesDefaultSettings(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	push := &recordingChannel{reply: true}
	cctObj.WithChannel(models.ChannelPush, push)

	alice := seedUser(t, cctObj, "alice")
	require.NoError(t, cctObj.Db.Conn.Where("user_id = ?", alice.ID).Delete(&models.NotificationSetting{}).Error)

	results, err := cctObj.Notifier.SendNotification(&cct.NotificationRequest{UserID: alice.ID, Title: "t", Message: "m", Type: models.NotificationTypeTest})
	require.NoError(t, err)
	assert.True(t, results[models.ChannelPush])

	settings, err := cctObj.Settings.GetNotificationSettings(alice.ID)
	require.NoError(t, err)
	assert.True(t, settings.EmailEnabled)
	assert.False(t, settings.SMSEnabled)
	assert.True(t, settings.PushEnabled)
	assert.True(t, settings.ConnectionAlerts)
}

func TestNotificationReadState(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	clock := newFakeClock()
	cctObj.Now = clock.Now
	cctObj.WithChannel(models.ChannelPush, &recordingChannel{reply: true})

	alice := seedUser(t, cctObj, "alice")
	mallory := seedUser(t, cctObj, "mallory")

	for _, title := range []string{"first", "second", "third"} {
		_, err := cctObj.Notifier.SendNotification(&cct.NotificationRequest{UserID: alice.ID, Title: title, Type: models.NotificationTypeTest})
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	listed, err := cctObj.Notifier.ListNotifications(alice.ID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"},
		common.Mapper(listed, func(n models.Notification) string { return n.Title }))

	{
		// not the owner: not found, still unread
		_, err := cctObj.Notifier.MarkAsRead(listed[0].ID, mallory.ID)
		assert.ErrorIs(t, err, cct.ErrNotFound)

		unread, err := cctObj.Notifier.ListNotifications(alice.ID, 0, true)
		require.NoError(t, err)
		assert.Len(t, unread, 3)
	}

	{
		marked, err := cctObj.Notifier.MarkAsRead(listed[0].ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, marked.IsRead)

		unread, err := cctObj.Notifier.ListNotifications(alice.ID, 0, true)
		require.NoError(t, err)
		assert.Len(t, unread, 2)
	}

	{
		limited, err := cctObj.Notifier.ListNotifications(alice.ID, 1, false)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, "third", limited[0].Title)
	}

	{
		count, err := cctObj.Notifier.MarkAllAsRead(mallory.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		count, err = cctObj.Notifier.MarkAllAsRead(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		unread, err := cctObj.Notifier.ListNotifications(alice.ID, 0, true)
		require.NoError(t, err)
		assert.Empty(t, unread)
	}

	_, err = cctObj.Notifier.MarkAsRead(99999, alice.ID)
	assert.ErrorIs(t, err, cct.ErrNotFound)
}
