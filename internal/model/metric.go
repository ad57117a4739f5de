package model

import "time"

// DeviceMetric is one timestamped sensor reading for a device. Which fields
// are populated depends on the device type's capabilities. CleanedAirVolumeM3
// is a per-reading amount, not a running total. FilterWearPercent never
// decreases and LiquidLevelPercent never increases while the device is
// powered; both are bounded to [0,100].
type DeviceMetric struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	DeviceID  int64     `gorm:"index:idx_metric_device_ts;not null" json:"device_id"`
	Timestamp time.Time `gorm:"index:idx_metric_device_ts;not null" json:"timestamp"`

	PM25               *float64 `json:"pm25"`
	Humidity           *float64 `json:"humidity"`
	CleanedAirVolumeM3 *float64 `json:"cleaned_air_volume_m3"`
	FilterWearPercent  *float64 `json:"filter_wear_percent"`
	LiquidLevelPercent *float64 `json:"liquid_level_percent"`

	CreatedAt time.Time `json:"created_at"`
}
