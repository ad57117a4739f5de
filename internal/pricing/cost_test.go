package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestRoomCost(t *testing.T) {
	t.Run("cleaning only", func(t *testing.T) {
		cost := RoomCost(RoomServices{AreaM2: 40, VolumeM3: fp(100), Cleaning: true})
		assert.True(t, cost.Equal(decimal.NewFromFloat(10.0)), "got %s", cost)
	})

	t.Run("aroma rides free with cleaning and humidifying", func(t *testing.T) {
		with := RoomCost(RoomServices{VolumeM3: fp(100), Cleaning: true, Humidifying: true, Aroma: true})
		without := RoomCost(RoomServices{VolumeM3: fp(100), Cleaning: true, Humidifying: true})
		assert.True(t, with.Equal(without), "aroma should add nothing: %s vs %s", with, without)
		assert.True(t, with.Equal(decimal.NewFromFloat(20.0)), "got %s", with)
	})

	t.Run("aroma charged when not bundled", func(t *testing.T) {
		cost := RoomCost(RoomServices{VolumeM3: fp(100), Cleaning: true, Aroma: true})
		assert.True(t, cost.Equal(decimal.NewFromFloat(15.0)), "got %s", cost)

		alone := RoomCost(RoomServices{VolumeM3: fp(100), Aroma: true})
		assert.True(t, alone.Equal(decimal.NewFromFloat(5.0)), "got %s", alone)
	})

	t.Run("nil volume falls back to area times standard ceiling", func(t *testing.T) {
		// 50m² × 2.5m = 125m³ × (0.10 + 0.10) = 25.00
		cost := RoomCost(RoomServices{AreaM2: 50, Cleaning: true, Humidifying: true})
		assert.True(t, cost.Equal(decimal.NewFromFloat(25.0)), "got %s", cost)
	})

	t.Run("no services costs nothing", func(t *testing.T) {
		assert.True(t, RoomCost(RoomServices{VolumeM3: fp(100)}).IsZero())
	})
}

func TestOrderCost(t *testing.T) {
	rooms := []RoomServices{
		{VolumeM3: fp(100), Cleaning: true, Humidifying: true, Aroma: true}, // 20.00
		{VolumeM3: fp(37.5), Cleaning: true},                               // 3.75
	}
	total := OrderCost(rooms)
	assert.Equal(t, "23.75", total.StringFixed(2))
}
