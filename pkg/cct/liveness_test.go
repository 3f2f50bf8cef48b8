package cct_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

func TestCheckConnectionStatus(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	clock := newFakeClock()
	cctObj.Now = clock.Now
	push := &recordingChannel{reply: true}
	cctObj.WithChannel(models.ChannelPush, push)

	seedDevice(t, cctObj, "CCT-STAL-0001")
	seedProbe(t, cctObj, "CCT-STAL-0001", "PRB-STALE")
	alice := seedOwner(t, cctObj, "alice", "CCT-STAL-0001")
	bob := seedOwner(t, cctObj, "bob", "CCT-STAL-0001")
	_, err := cctObj.Settings.UpdateNotificationSettings(bob.ID, &cct.SettingsUpdate{ConnectionAlerts: common.Ptr(false)})
	require.NoError(t, err)

	clock.Advance(cctObj.Config.ConnectionTimeout + time.Second)

	// registered after the jump, so still fresh
	seedDevice(t, cctObj, "CCT-FRSH-0002")
	seedProbe(t, cctObj, "CCT-FRSH-0002", "PRB-FRESH")
	seedOwner(t, cctObj, "carol", "CCT-FRSH-0002")

	result, err := cctObj.Liveness.CheckConnectionStatus()
	require.NoError(t, err)
	assert.Equal(t, []string{"CCT-STAL-0001"}, result.DevicesDisconnected)
	assert.Equal(t, []string{"PRB-STALE"}, result.ProbesDisconnected)

	stale, err := cctObj.Identity.GetDevice("CCT-STAL-0001")
	require.NoError(t, err)
	assert.False(t, stale.IsActive)
	fresh, err := cctObj.Identity.GetDevice("CCT-FRSH-0002")
	require.NoError(t, err)
	assert.True(t, fresh.IsActive)

	probes, err := cctObj.Identity.GetDeviceProbes("CCT-STAL-0001")
	require.NoError(t, err)
	assert.False(t, probes[0].IsConnected)

	assert.ElementsMatch(t, []string{
		"alice: " + cct.TitleDeviceConnectionLost,
		"alice: " + cct.TitleProbeConnectionLost,
	}, push.Sent())

	notifications, err := cctObj.Notifier.ListNotifications(alice.ID, 0, false)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationTypeConnectionLost, n.NotificationType)
		assert.Equal(t, stale.ID, *n.DeviceID)
	}

	{
		// a second sweep finds nothing new
		again, err := cctObj.Liveness.CheckConnectionStatus()
		require.NoError(t, err)
		assert.Empty(t, again.DevicesDisconnected)
		assert.Empty(t, again.ProbesDisconnected)
		assert.Len(t, push.Sent(), 2)
	}
}

func TestCheckConnectionStatusReadingKeepsAlive(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, mockINotifier := GetMockCCTWithMemorySqliteDialector(t, true, true)
	defer ctrl.Finish()

	mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).Return(nil).AnyTimes()
	mockINotifier.EXPECT().SendNotification(gomock.Any()).Times(0)

	clock := newFakeClock()
	cctObj.Now = clock.Now

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)
	seedProbe(t, cctObj, deviceID, "PRB-1")
	seedOwner(t, cctObj, "alice", deviceID)

	clock.Advance(cctObj.Config.ConnectionTimeout - time.Second)
	probeID := "PRB-1"
	_, err := cctObj.Temperature.StoreReading(deviceID, 100, &probeID, false)
	require.NoError(t, err)

	clock.Advance(cctObj.Config.ConnectionTimeout - time.Second)
	result, err := cctObj.Liveness.CheckConnectionStatus()
	require.NoError(t, err)
	assert.Empty(t, result.DevicesDisconnected)
	assert.Empty(t, result.ProbesDisconnected)
}
