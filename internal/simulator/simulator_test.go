package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airrental-backend/internal/model"
)

func purifierDevice(on bool) *model.DeviceInstance {
	return &model.DeviceInstance{
		ID:        1,
		IsPowerOn: on,
		DeviceType: model.DeviceType{
			SupportsCleaning: true,
		},
	}
}

func comboDevice(on bool) *model.DeviceInstance {
	return &model.DeviceInstance{
		ID:        2,
		IsPowerOn: on,
		DeviceType: model.DeviceType{
			SupportsCleaning:    true,
			SupportsHumidifying: true,
			SupportsAroma:       true,
		},
	}
}

func TestNextReadingPurifier(t *testing.T) {
	ts := time.Now().UTC()

	t.Run("powered on", func(t *testing.T) {
		m := NextReading(purifierDevice(true), nil, ts)
		require.NotNil(t, m.PM25)
		assert.GreaterOrEqual(t, *m.PM25, 5.0)
		assert.LessOrEqual(t, *m.PM25, 20.0)

		require.NotNil(t, m.CleanedAirVolumeM3)
		assert.GreaterOrEqual(t, *m.CleanedAirVolumeM3, 50.0)
		assert.LessOrEqual(t, *m.CleanedAirVolumeM3, 200.0)

		require.NotNil(t, m.FilterWearPercent)
		assert.GreaterOrEqual(t, *m.FilterWearPercent, 10.0)
		assert.LessOrEqual(t, *m.FilterWearPercent, 30.0)

		assert.Nil(t, m.Humidity)
		assert.Nil(t, m.LiquidLevelPercent)
	})

	t.Run("powered off cleans no air", func(t *testing.T) {
		m := NextReading(purifierDevice(false), nil, ts)
		require.NotNil(t, m.CleanedAirVolumeM3)
		assert.Zero(t, *m.CleanedAirVolumeM3)

		require.NotNil(t, m.PM25)
		assert.GreaterOrEqual(t, *m.PM25, 20.0)
		assert.LessOrEqual(t, *m.PM25, 50.0)
	})
}

func TestNextReadingCombo(t *testing.T) {
	ts := time.Now().UTC()
	m := NextReading(comboDevice(true), nil, ts)

	require.NotNil(t, m.Humidity)
	assert.GreaterOrEqual(t, *m.Humidity, 45.0)
	assert.LessOrEqual(t, *m.Humidity, 65.0)

	require.NotNil(t, m.LiquidLevelPercent)
	assert.GreaterOrEqual(t, *m.LiquidLevelPercent, 80.0)
	assert.LessOrEqual(t, *m.LiquidLevelPercent, 100.0)
}

// Filter wear must never decrease and liquid level must never increase across
// a chain of readings, powered or not.
func TestReadingContinuity(t *testing.T) {
	device := comboDevice(true)
	ts := time.Now().UTC()

	last := NextReading(device, nil, ts)
	for i := 0; i < 50; i++ {
		if i == 25 {
			device.IsPowerOn = false
		}
		ts = ts.Add(time.Hour)
		next := NextReading(device, &last, ts)

		require.NotNil(t, next.FilterWearPercent)
		require.NotNil(t, next.LiquidLevelPercent)
		assert.GreaterOrEqual(t, *next.FilterWearPercent, *last.FilterWearPercent)
		assert.LessOrEqual(t, *next.FilterWearPercent, 100.0)
		assert.LessOrEqual(t, *next.LiquidLevelPercent, *last.LiquidLevelPercent)
		assert.GreaterOrEqual(t, *next.LiquidLevelPercent, 0.0)

		if !device.IsPowerOn {
			assert.Equal(t, *last.FilterWearPercent, *next.FilterWearPercent, "wear advances only while powered")
			assert.Equal(t, *last.LiquidLevelPercent, *next.LiquidLevelPercent, "tank drains only while powered")
		}
		last = next
	}
}

func TestSeriesInterval(t *testing.T) {
	assert.Equal(t, 1, seriesInterval(1))
	assert.Equal(t, 2, seriesInterval(7))
	assert.Equal(t, 6, seriesInterval(30))
}
