// Package simulator synthesizes believable device telemetry in place of a
// real sensor feed. Readings keep physical continuity: filter wear only ever
// grows, liquid level only ever drains, and both stay within [0,100].
package simulator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"airrental-backend/internal/model"
	"airrental-backend/internal/store"
)

// Simulator generates metrics on demand, driven by read paths rather than a
// background job.
type Simulator struct {
	store store.Store

	// EnsureRecentHours is the staleness threshold for EnsureRecent.
	EnsureRecentHours int
	// MinWindowReadings is the backfill trigger for MetricsWindow.
	MinWindowReadings int
}

// New creates a simulator with the default thresholds.
func New(s store.Store) *Simulator {
	return &Simulator{store: s, EnsureRecentHours: 1, MinWindowReadings: 10}
}

// NextReading synthesizes the reading that follows last for the device at the
// given timestamp. It is pure apart from randomness; persistence is the
// caller's concern.
func NextReading(device *model.DeviceInstance, last *model.DeviceMetric, ts time.Time) model.DeviceMetric {
	dt := device.DeviceType
	on := device.IsPowerOn

	metric := model.DeviceMetric{
		DeviceID:  device.ID,
		Timestamp: ts,
	}

	if dt.SupportsCleaning {
		if on {
			metric.PM25 = f(round1(uniform(5, 20)))
		} else {
			metric.PM25 = f(round1(uniform(20, 50)))
		}

		// Interval amount, not a running total: zero when powered off.
		if on {
			metric.CleanedAirVolumeM3 = f(round1(uniform(50, 200)))
		} else {
			metric.CleanedAirVolumeM3 = f(0)
		}

		metric.FilterWearPercent = f(nextFilterWear(last, on, 0.1, 0.5))
	}

	if dt.SupportsHumidifying {
		if on {
			metric.Humidity = f(round1(uniform(45, 65)))
		} else {
			metric.Humidity = f(round1(uniform(30, 50)))
		}

		metric.LiquidLevelPercent = f(nextLiquidLevel(last, on))

		// Humidifier-only units wear their filter too, just slower.
		if !dt.SupportsCleaning {
			metric.FilterWearPercent = f(nextFilterWear(last, on, 0.05, 0.3))
		}
	}

	// Aroma has no reading of its own; combined units piggyback on the
	// humidifier's liquid level.

	return metric
}

// nextFilterWear advances the wear percentage: a small increment per reading
// while powered, seeded at 10-30% when no prior reading exists, clamped to
// 100 and never decreasing.
func nextFilterWear(last *model.DeviceMetric, powered bool, minInc, maxInc float64) float64 {
	if last == nil || last.FilterWearPercent == nil {
		return round1(uniform(10, 30))
	}
	inc := 0.0
	if powered {
		inc = uniform(minInc, maxInc)
	}
	return round1(math.Min(100, *last.FilterWearPercent+inc))
}

// nextLiquidLevel drains the tank: a small decrement per reading while
// powered, seeded at 80-100% when no prior reading exists, clamped to 0 and
// never increasing.
func nextLiquidLevel(last *model.DeviceMetric, powered bool) float64 {
	if last == nil || last.LiquidLevelPercent == nil {
		return round1(uniform(80, 100))
	}
	dec := 0.0
	if powered {
		dec = uniform(0.5, 2.0)
	}
	return round1(math.Max(0, *last.LiquidLevelPercent-dec))
}

// GenerateReading synthesizes and stores one reading. A zero timestamp means
// now.
func (s *Simulator) GenerateReading(ctx context.Context, device *model.DeviceInstance, ts time.Time) (*model.DeviceMetric, error) {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	last, err := s.store.LatestMetric(ctx, device.ID)
	if err != nil {
		return nil, err
	}
	metric := NextReading(device, last, ts)
	if err := s.store.InsertMetric(ctx, &metric); err != nil {
		return nil, err
	}
	return &metric, nil
}

// GenerateSeries walks timestamps from now-days to now at the given interval,
// generating one reading per step. Continuity holds because every step reads
// the device's latest stored reading.
func (s *Simulator) GenerateSeries(ctx context.Context, device *model.DeviceInstance, days, intervalHours int) ([]model.DeviceMetric, error) {
	now := time.Now().UTC()
	current := now.AddDate(0, 0, -days)
	step := time.Duration(intervalHours) * time.Hour

	var metrics []model.DeviceMetric
	for !current.After(now) {
		metric, err := s.GenerateReading(ctx, device, current)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
		current = current.Add(step)
	}
	return metrics, nil
}

// EnsureRecent keeps a device's data warm: when it has no reading at all, or
// its latest one is older than the staleness threshold, exactly one fresh
// reading is synthesized at the current time.
func (s *Simulator) EnsureRecent(ctx context.Context, device *model.DeviceInstance) error {
	last, err := s.store.LatestMetric(ctx, device.ID)
	if err != nil {
		return err
	}
	threshold := time.Now().UTC().Add(-time.Duration(s.EnsureRecentHours) * time.Hour)
	if last != nil && !last.Timestamp.Before(threshold) {
		return nil
	}
	_, err = s.GenerateReading(ctx, device, time.Time{})
	return err
}

// MetricsWindow serves the metrics query endpoint: the window starts at the
// device's installation date when set, else now minus the requested range.
// A thin window (fewer readings than the backfill trigger) is padded by
// generating a series over the range, with an interval that coarsens as the
// range grows, and then re-queried.
func (s *Simulator) MetricsWindow(ctx context.Context, device *model.DeviceInstance, days int) ([]model.DeviceMetric, error) {
	if err := s.EnsureRecent(ctx, device); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	if device.InstallationDate != nil {
		since = *device.InstallationDate
	}

	metrics, err := s.store.MetricsSince(ctx, device.ID, since)
	if err != nil {
		return nil, err
	}
	if len(metrics) >= s.MinWindowReadings {
		return metrics, nil
	}

	if _, err := s.GenerateSeries(ctx, device, days, seriesInterval(days)); err != nil {
		return nil, err
	}
	return s.store.MetricsSince(ctx, device.ID, since)
}

// seriesInterval coarsens the sampling interval as the range grows.
func seriesInterval(days int) int {
	switch {
	case days <= 1:
		return 1
	case days <= 7:
		return 2
	default:
		return 6
	}
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func f(v float64) *float64 { return &v }
