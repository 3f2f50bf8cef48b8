package cct_test

import (
	"sync"
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

func TestStoreReadingUpdatesLiveness(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, _ := GetMockCCTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	clock := newFakeClock()
	cctObj.Now = clock.Now

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)
	seedProbe(t, cctObj, deviceID, "PRB-1")
	_, err := cctObj.Identity.UpdateProbeConnection("PRB-1", false)
	require.NoError(t, err)

	clock.Advance(time.Minute)

	mockITrigger.EXPECT().
		CheckTemperatureTriggers(gomock.Any()).
		DoAndReturn(func(reading *models.TemperatureReading) error {
			assert.Equal(t, 210.0, reading.Temperature)
			assert.NotNil(t, reading.ProbeID)
			return nil
		}).
		Times(1)

	probeID := "PRB-1"
	reading, err := cctObj.Temperature.StoreReading(deviceID, 210, &probeID, false)
	require.NoError(t, err)
	assert.NotZero(t, reading.ID)
	assert.False(t, reading.IsAverage)

	device, err := cctObj.Identity.GetDevice(deviceID)
	require.NoError(t, err)
	require.NotNil(t, device.LastConnected)
	assert.WithinDuration(t, clock.Now(), *device.LastConnected, time.Second)

	probes, err := cctObj.Identity.GetDeviceProbes(deviceID)
	require.NoError(t, err)
	require.Len(t, probes, 1)
	assert.True(t, probes[0].IsConnected)
	assert.WithinDuration(t, clock.Now(), *probes[0].LastConnected, time.Second)
}

func TestStoreReadingUnknownDeviceOrProbe(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, _ := GetMockCCTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).Times(0)

	_, err := cctObj.Temperature.StoreReading("CCT-NONE-0000", 100, nil, false)
	assert.ErrorIs(t, err, cct.ErrNotFound)

	seedDevice(t, cctObj, "CCT-AB12-CD34")
	probeID := "PRB-404"
	_, err = cctObj.Temperature.StoreReading("CCT-AB12-CD34", 100, &probeID, false)
	assert.ErrorIs(t, err, cct.ErrNotFound)

	var count int64
	require.NoError(t, cctObj.Db.Conn.Model(&models.TemperatureReading{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestProcessTemperatureUpdate(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, _ := GetMockCCTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)
	seedProbe(t, cctObj, deviceID, "PRB-1")
	seedProbe(t, cctObj, deviceID, "PRB-2")

	var seen []float64
	record := func(reading *models.TemperatureReading) error {
		seen = append(seen, reading.Temperature)
		return nil
	}
	gomock.InOrder(
		mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).DoAndReturn(record),
		mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).DoAndReturn(record),
		mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).DoAndReturn(record),
	)

	{
		// no target yet
		result, err := cctObj.Temperature.ProcessTemperatureUpdate(&cct.TemperatureUpdate{
			DeviceID: deviceID,
			Readings: []cct.ProbeReading{
				{ProbeID: common.Ptr("PRB-1"), Temperature: common.Ptr(150.0)},
				{ProbeID: common.Ptr("PRB-2"), Temperature: nil},
				{ProbeID: common.Ptr("PRB-2"), Temperature: common.Ptr(160.0)},
			},
			AverageTemperature: common.Ptr(155.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Stored)
		assert.Nil(t, result.TargetTemperature)
		assert.Equal(t, []float64{150, 160, 155}, seen)
	}

	_, err := cctObj.Temperature.SetTargetTemperature(deviceID, 225, nil)
	require.NoError(t, err)

	{
		result, err := cctObj.Temperature.ProcessTemperatureUpdate(&cct.TemperatureUpdate{DeviceID: deviceID})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Stored)
		require.NotNil(t, result.TargetTemperature)
		assert.Equal(t, 225.0, *result.TargetTemperature)
	}

	history, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, IsAverage: common.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 155.0, history[0].Temperature)
	assert.Nil(t, history[0].ProbeID)

	_, err = cctObj.Temperature.ProcessTemperatureUpdate(&cct.TemperatureUpdate{DeviceID: "CCT-NONE-0000"})
	assert.ErrorIs(t, err, cct.ErrNotFound)
}

func TestCalculateAverageCountsConnectedProbesOnly(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, _ := GetMockCCTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).Return(nil).AnyTimes()

	clock := newFakeClock()
	cctObj.Now = clock.Now

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)

	{
		avg, err := cctObj.Temperature.CalculateAverageTemperature(deviceID)
		require.NoError(t, err)
		assert.Nil(t, avg, "no probes")
	}

	seedProbe(t, cctObj, deviceID, "P1")
	seedProbe(t, cctObj, deviceID, "P2")

	{
		avg, err := cctObj.Temperature.CalculateAverageTemperature(deviceID)
		require.NoError(t, err)
		assert.Nil(t, avg, "no readings yet")
	}

	p1, p2 := "P1", "P2"
	_, err := cctObj.Temperature.StoreReading(deviceID, 60, &p1, false)
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = cctObj.Temperature.StoreReading(deviceID, 70, &p1, false)
	require.NoError(t, err)
	_, err = cctObj.Temperature.StoreReading(deviceID, 80, &p2, false)
	require.NoError(t, err)
	// averages never feed the average
	_, err = cctObj.Temperature.StoreReading(deviceID, 500, nil, true)
	require.NoError(t, err)

	{
		avg, err := cctObj.Temperature.CalculateAverageTemperature(deviceID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 75.0, *avg, 1e-9)
	}

	_, err = cctObj.Identity.UpdateProbeConnection("P2", false)
	require.NoError(t, err)

	{
		avg, err := cctObj.Temperature.CalculateAverageTemperature(deviceID)
		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 70.0, *avg, 1e-9)
	}

	{
		avg, err := cctObj.Temperature.CalculateAverageTemperature("CCT-NONE-0000")
		require.NoError(t, err)
		assert.Nil(t, avg)
	}
}

func TestGetTemperatureHistory(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, mockITrigger, _ := GetMockCCTWithMemorySqliteDialector(t, true, false)
	defer ctrl.Finish()

	mockITrigger.EXPECT().CheckTemperatureTriggers(gomock.Any()).Return(nil).AnyTimes()

	clock := newFakeClock()
	cctObj.Now = clock.Now

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)
	seedDevice(t, cctObj, "CCT-ZZZZ-9999")
	seedProbe(t, cctObj, deviceID, "P1")
	seedProbe(t, cctObj, deviceID, "P2")
	seedProbe(t, cctObj, "CCT-ZZZZ-9999", "P9")

	p1, p2, p9 := "P1", "P2", "P9"
	for i := range 5 {
		_, err := cctObj.Temperature.StoreReading(deviceID, float64(100+i), &p1, false)
		require.NoError(t, err)
		_, err = cctObj.Temperature.StoreReading(deviceID, float64(200+i), &p2, false)
		require.NoError(t, err)
		_, err = cctObj.Temperature.StoreReading(deviceID, float64(150+i), nil, true)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}
	_, err := cctObj.Temperature.StoreReading("CCT-ZZZZ-9999", 1, &p9, false)
	require.NoError(t, err)

	{
		all, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID})
		require.NoError(t, err)
		assert.Len(t, all, 15)
		// newest first; within a timestamp the later insert wins
		assert.Equal(t, 154.0, all[0].Temperature)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].Timestamp.After(all[i-1].Timestamp))
		}
	}

	{
		limited, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, Limit: 4})
		require.NoError(t, err)
		assert.Len(t, limited, 4)
	}

	{
		probe, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, ProbeID: &p2})
		require.NoError(t, err)
		assert.Equal(t, []float64{204, 203, 202, 201, 200},
			common.Mapper(probe, func(r models.TemperatureReading) float64 { return r.Temperature }))
	}

	{
		instant, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, IsAverage: common.Ptr(false)})
		require.NoError(t, err)
		assert.Len(t, instant, 10)
		for _, r := range instant {
			assert.False(t, r.IsAverage)
		}
	}

	{
		// probe of another device yields nothing for this device
		foreign, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, ProbeID: &p9})
		require.NoError(t, err)
		assert.Empty(t, foreign)
	}

	{
		unknownProbe := "P404"
		none, err := cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: deviceID, ProbeID: &unknownProbe})
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)

		none, err = cctObj.Temperature.GetTemperatureHistory(&cct.HistoryQuery{DeviceID: "CCT-NONE-0000"})
		require.NoError(t, err)
		assert.Empty(t, none)
	}
}

func TestSetTargetTemperatureKeepsOneActive(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)

	_, err := cctObj.Temperature.SetTargetTemperature(deviceID, 225, nil)
	require.NoError(t, err)
	_, err = cctObj.Temperature.SetTargetTemperature(deviceID, 200, nil)
	require.NoError(t, err)

	latest, err := cctObj.Temperature.GetLatestTargetTemperature(deviceID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 200.0, latest.Temperature)

	history, err := cctObj.Temperature.GetTargetTemperatureHistory(deviceID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	active := common.Filter(history, func(tt models.TargetTemperature) bool { return tt.IsActive })
	require.Len(t, active, 1)
	assert.Equal(t, 200.0, active[0].Temperature)

	inactive := common.Filter(history, func(tt models.TargetTemperature) bool { return !tt.IsActive })
	require.Len(t, inactive, 1)
	assert.Equal(t, 225.0, inactive[0].Temperature)

	_, err = cctObj.Temperature.SetTargetTemperature("CCT-NONE-0000", 200, nil)
	assert.ErrorIs(t, err, cct.ErrNotFound)

	none, err := cctObj.Temperature.GetLatestTargetTemperature("CCT-NONE-0000")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSetTargetTemperatureConcurrent(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, cctObj, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, cctObj, deviceID)
	userID := uint(7)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			setBy := &userID
			if i%2 == 0 {
				setBy = nil
			}
			_, err := cctObj.Temperature.SetTargetTemperature(deviceID, float64(180+i), setBy)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var active int64
	require.NoError(t, cctObj.Db.Conn.Model(&models.TargetTemperature{}).
		Where("is_active = ?", true).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)

	var total int64
	require.NoError(t, cctObj.Db.Conn.Model(&models.TargetTemperature{}).Count(&total).Error)
	assert.Equal(t, int64(20), total)
}

func TestSetTargetTemperatureAcrossInstances(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, first, _, _ := GetMockCCTWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()
	// a second container on the same database has its own in-process locks
	second := cct.New(&first.Db, testConfig())

	deviceID := "CCT-AB12-CD34"
	seedDevice(t, first, deviceID)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			owner := first
			if i%2 == 1 {
				owner = second
			}
			_, err := owner.Temperature.SetTargetTemperature(deviceID, float64(200+i), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var active int64
	require.NoError(t, first.Db.Conn.Model(&models.TargetTemperature{}).
		Where("is_active = ?", true).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}
