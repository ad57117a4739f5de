package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// InsertMetric stores one reading for a device.
func (s *gormStore) InsertMetric(ctx context.Context, metric *model.DeviceMetric) error {
	var device model.DeviceInstance
	err := s.db.WithContext(ctx).First(&device, metric.DeviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("device %d not found", metric.DeviceID)
	}
	if err != nil {
		return err
	}
	if metric.Timestamp.IsZero() {
		metric.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(metric).Error; err != nil {
		return fmt.Errorf("failed to insert metric for device %d: %w", metric.DeviceID, err)
	}
	return nil
}

// LatestMetric returns the most recent reading for a device, or nil when the
// device has none yet.
func (s *gormStore) LatestMetric(ctx context.Context, deviceID int64) (*model.DeviceMetric, error) {
	var metric model.DeviceMetric
	err := s.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		First(&metric).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

// MetricsSince returns the readings for a device from the given instant on,
// oldest first for charting.
func (s *gormStore) MetricsSince(ctx context.Context, deviceID int64, since time.Time) ([]model.DeviceMetric, error) {
	var metrics []model.DeviceMetric
	err := s.db.WithContext(ctx).
		Where("device_id = ? AND timestamp >= ?", deviceID, since).
		Order("timestamp ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *gormStore) CountMetricsSince(ctx context.Context, deviceID int64, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.DeviceMetric{}).
		Where("device_id = ? AND timestamp >= ?", deviceID, since).
		Count(&count).Error
	return count, err
}
