package cct_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
	_ "liyu1981.xyz/cct-cloud-service/pkg/testing"
)

var deviceIDPattern = regexp.MustCompile(`^CCT-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

func TestRegisterDeviceTwiceUpdatesSameRow(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	first := seedDevice(t, cctObj, deviceID)
	assert.Equal(t, deviceID, first.Device.DeviceID)
	assert.NotEmpty(t, first.APIKey)
	assert.NotEmpty(t, first.AssociationToken)
	assert.NotNil(t, first.Device.LastConnected)

	// deactivate to check re-registration reactivates
	_, err := cctObj.Identity.UpdateDeviceConnection(deviceID, false)
	require.NoError(t, err)

	name := "Kitchen"
	second, err := cctObj.Identity.RegisterDevice(&cct.DeviceRegistration{
		DeviceID:        &deviceID,
		Name:            &name,
		Model:           "ignored",
		FirmwareVersion: "2.0.0",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Device.ID, second.Device.ID)
	assert.NotEqual(t, first.APIKey, second.APIKey)
	assert.NotEqual(t, first.AssociationToken, second.AssociationToken)

	var count int64
	require.NoError(t, cctObj.Db.Conn.Model(&models.Device{}).Where("device_id = ?", deviceID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	device, err := cctObj.Identity.GetDevice(deviceID)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", device.DisplayName())
	assert.Equal(t, "2.0.0", device.FirmwareVersion)
	assert.Equal(t, "CCT-100", device.Model)
	assert.True(t, device.IsActive)

	// both issued keys are still valid
	assert.NoError(t, cctObj.Credential.VerifyDeviceAPIKey(first.APIKey, deviceID))
	assert.NoError(t, cctObj.Credential.VerifyDeviceAPIKey(second.APIKey, deviceID))
}

func TestRegisterDeviceRejectsMalformedID(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	for _, bad := range []string{"ABC-1234-5678", "CCT-1234", "CCT-12-34-56", "CCT--1234", "cct-1234-5678"} {
		deviceID := bad
		_, err := cctObj.Identity.RegisterDevice(&cct.DeviceRegistration{DeviceID: &deviceID})
		assert.ErrorIs(t, err, cct.ErrValidation, bad)
	}

	var count int64
	require.NoError(t, cctObj.Db.Conn.Model(&models.Device{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegisterDeviceGeneratesID(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	result, err := cctObj.Identity.RegisterDevice(&cct.DeviceRegistration{Model: "CCT-100"})
	require.NoError(t, err)
	assert.Regexp(t, deviceIDPattern, result.Device.DeviceID)
	assert.True(t, cct.ValidDeviceID(result.Device.DeviceID))
}

func TestGenerateUniqueDeviceIDAvoidsExisting(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seeded := map[string]bool{}
	for i := range 10 {
		id := fmt.Sprintf("CCT-SEED-%04d", i)
		require.NoError(t, cctObj.Db.Conn.Create(&models.Device{DeviceID: id, IsActive: true}).Error)
		seeded[id] = true
	}

	generated := map[string]bool{}
	for range 50 {
		id, err := cctObj.Identity.GenerateUniqueDeviceID()
		require.NoError(t, err)
		assert.Regexp(t, deviceIDPattern, id)
		assert.False(t, seeded[id])
		assert.False(t, generated[id])
		generated[id] = true
		require.NoError(t, cctObj.Db.Conn.Create(&models.Device{DeviceID: id, IsActive: true}).Error)
	}
}

func TestRegisterProbeCapacity(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)

	for i := range cctObj.Config.MaxProbesPerDevice {
		probe := seedProbe(t, cctObj, deviceID, fmt.Sprintf("PRB-%d", i+1))
		assert.True(t, probe.IsConnected)
	}

	_, err := cctObj.Identity.RegisterProbe(deviceID, &cct.ProbeRegistration{ProbeID: "PRB-5"})
	assert.ErrorIs(t, err, cct.ErrCapacity)

	probes, err := cctObj.Identity.GetDeviceProbes(deviceID)
	require.NoError(t, err)
	assert.Len(t, probes, 4)

	// refreshing an existing probe is not a new slot
	name := "Brisket"
	probe, err := cctObj.Identity.RegisterProbe(deviceID, &cct.ProbeRegistration{ProbeID: "PRB-1", Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Brisket", probe.DisplayName())
}

func TestRegisterProbeMovesBetweenDevices(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, cctObj, "CCT-AAAA-0001")
	seedDevice(t, cctObj, "CCT-AAAA-0002")
	original := seedProbe(t, cctObj, "CCT-AAAA-0001", "PRB-1")

	_, err := cctObj.Identity.UpdateProbeConnection("PRB-1", false)
	require.NoError(t, err)

	moved := seedProbe(t, cctObj, "CCT-AAAA-0002", "PRB-1")
	assert.Equal(t, original.ID, moved.ID)
	assert.True(t, moved.IsConnected)

	device2, err := cctObj.Identity.GetDevice("CCT-AAAA-0002")
	require.NoError(t, err)
	assert.Equal(t, device2.ID, moved.DeviceID)
}

func TestRegisterProbeUnknownDevice(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := cctObj.Identity.RegisterProbe("CCT-NONE-0000", &cct.ProbeRegistration{ProbeID: "PRB-1"})
	assert.ErrorIs(t, err, cct.ErrNotFound)
}

func TestAssociateDeviceWithUser(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	registered := seedDevice(t, cctObj, deviceID)
	alice := seedUser(t, cctObj, "alice")
	bob := seedUser(t, cctObj, "bob")

	{
		wrong := "not-the-token"
		_, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, alice.ID, &wrong)
		assert.ErrorIs(t, err, cct.ErrAuth)
	}

	{
		device, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, alice.ID, &registered.AssociationToken)
		require.NoError(t, err)
		assert.Equal(t, deviceID, device.DeviceID)

		owned, err := cctObj.Identity.IsDeviceOwner(alice.ID, device.ID)
		require.NoError(t, err)
		assert.True(t, owned)
	}

	{
		// idempotent, even with the consumed token
		_, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, alice.ID, &registered.AssociationToken)
		assert.NoError(t, err)

		var count int64
		require.NoError(t, cctObj.Db.Conn.Model(&models.UserDevice{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	}

	{
		// the token is one-time
		_, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, bob.ID, &registered.AssociationToken)
		assert.ErrorIs(t, err, cct.ErrAuth)
	}

	{
		// session-authenticated owners link without a token
		_, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, bob.ID, nil)
		require.NoError(t, err)

		owners, err := cctObj.Identity.GetDeviceOwners(registered.Device.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, common.Mapper(owners, func(u models.User) string { return u.Username }))
	}

	{
		_, err := cctObj.Identity.AssociateDeviceWithUser(deviceID, 9999, nil)
		assert.ErrorIs(t, err, cct.ErrNotFound)

		_, err = cctObj.Identity.AssociateDeviceWithUser("CCT-NONE-0000", alice.ID, nil)
		assert.ErrorIs(t, err, cct.ErrNotFound)
	}
}

func TestUpdateConnectionSetters(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	seedDevice(t, cctObj, "CCT-AB12-CD34")
	seedProbe(t, cctObj, "CCT-AB12-CD34", "PRB-1")

	device, err := cctObj.Identity.UpdateDeviceConnection("CCT-AB12-CD34", false)
	require.NoError(t, err)
	assert.False(t, device.IsActive)

	probe, err := cctObj.Identity.UpdateProbeConnection("PRB-1", false)
	require.NoError(t, err)
	assert.False(t, probe.IsConnected)

	stored, err := cctObj.Identity.GetDeviceProbes("CCT-AB12-CD34")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsConnected)

	_, err = cctObj.Identity.UpdateProbeConnection("PRB-404", true)
	assert.ErrorIs(t, err, cct.ErrNotFound)
}
