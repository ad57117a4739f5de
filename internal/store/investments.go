package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// InvestorDashboard aggregates the investor's paid investments: total
// invested, funded device count, cumulative cleaned air and humidified hours
// across those devices, and the projection from the latest snapshot.
func (s *gormStore) InvestorDashboard(ctx context.Context, investorID int64) (*DashboardSummary, error) {
	db := s.db.WithContext(ctx)

	var investments []model.Investment
	if err := db.Where("investor_id = ? AND status = ?", investorID, model.InvestmentPaid).
		Find(&investments).Error; err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalInvestedUSD:        decimal.Zero,
		ProjectedReturnTotalUSD: decimal.Zero,
	}

	deviceIDs := make([]int64, 0, len(investments))
	seen := make(map[int64]bool)
	for _, inv := range investments {
		summary.TotalInvestedUSD = summary.TotalInvestedUSD.Add(inv.AmountUSD)
		if !seen[inv.DeviceID] {
			seen[inv.DeviceID] = true
			deviceIDs = append(deviceIDs, inv.DeviceID)
		}
	}
	summary.ActiveDevicesCount = int64(len(deviceIDs))

	if len(deviceIDs) > 0 {
		var err error
		summary.TotalCleanedAirM3, err = sumCleanedAir(db, deviceIDs)
		if err != nil {
			return nil, err
		}
		summary.TotalHumidifiedHours, err = countHumidifiedHours(db, deviceIDs)
		if err != nil {
			return nil, err
		}
	}

	var snapshot model.InvestmentStatSnapshot
	err := db.
		Joins("JOIN investments ON investments.id = investment_stat_snapshots.investment_id").
		Where("investments.investor_id = ?", investorID).
		Order("investment_stat_snapshots.timestamp DESC").
		First(&snapshot).Error
	if err == nil {
		summary.ProjectedReturnTotalUSD = snapshot.ProjectedReturnAmount
		if snapshot.ProjectedReturnDate != nil {
			d := snapshot.ProjectedReturnDate.Format(time.RFC3339)
			summary.ProjectedReturnDate = &d
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return summary, nil
}

// Cleaned-air total: every reading's interval volume summed, never windowed.
func sumCleanedAir(db *gorm.DB, deviceIDs []int64) (float64, error) {
	var total float64
	err := db.Model(&model.DeviceMetric{}).
		Where("device_id IN ?", deviceIDs).
		Select("COALESCE(SUM(cleaned_air_volume_m3), 0)").
		Scan(&total).Error
	return total, err
}

// Humidified hours: one reading with a humidity value counts as one hour.
func countHumidifiedHours(db *gorm.DB, deviceIDs []int64) (int64, error) {
	var count int64
	err := db.Model(&model.DeviceMetric{}).
		Where("device_id IN ? AND humidity IS NOT NULL", deviceIDs).
		Count(&count).Error
	return count, err
}

// ListAvailableDevices returns investable (ACTIVE) devices with their type's
// investment terms. With a budget, devices whose minimum investment exceeds
// it are excluded. The short projection is min investment × profit% over the
// type's investment period.
func (s *gormStore) ListAvailableDevices(ctx context.Context, budget *decimal.Decimal) ([]AvailableDevice, error) {
	q := s.db.WithContext(ctx).
		Preload("DeviceType").
		Preload("Room").
		Joins("JOIN device_types ON device_types.id = device_instances.device_type_id").
		Where("device_instances.status = ?", model.DeviceActive)
	if budget != nil {
		q = q.Where("device_types.min_investment_usd <= ?", *budget)
	}

	var devices []model.DeviceInstance
	if err := q.Find(&devices).Error; err != nil {
		return nil, err
	}

	out := make([]AvailableDevice, 0, len(devices))
	for _, d := range devices {
		dt := d.DeviceType
		out = append(out, AvailableDevice{
			Device:           d,
			MinInvestmentUSD: dt.MinInvestmentUSD,
			MaxInvestmentUSD: dt.MaxInvestmentUSD,
			Projection: ShortProjection{
				ProjectedReturnUSD: dt.MinInvestmentUSD.Mul(dt.ProfitPercentage).Div(decimal.NewFromInt(100)).Round(2),
				PeriodMonths:       dt.InvestmentPeriodMonths,
			},
		})
	}
	return out, nil
}

// ListInvestments returns the investor's investments with per-device usage
// aggregates and the latest snapshot projection.
func (s *gormStore) ListInvestments(ctx context.Context, investorID int64) ([]InvestmentView, error) {
	db := s.db.WithContext(ctx)

	var investments []model.Investment
	if err := db.
		Preload("Device.DeviceType").
		Preload("Device.Room").
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, err
	}

	out := make([]InvestmentView, 0, len(investments))
	for _, inv := range investments {
		view := InvestmentView{Investment: inv}

		var err error
		view.CleanedAirM3, err = sumCleanedAir(db, []int64{inv.DeviceID})
		if err != nil {
			return nil, err
		}
		view.HumidifiedHours, err = countHumidifiedHours(db, []int64{inv.DeviceID})
		if err != nil {
			return nil, err
		}

		var snapshot model.InvestmentStatSnapshot
		err = db.Where("investment_id = ?", inv.ID).
			Order("timestamp DESC").
			First(&snapshot).Error
		if err == nil {
			view.ProjectedReturnUSD = &snapshot.ProjectedReturnAmount
			if snapshot.ProjectedReturnDate != nil {
				d := snapshot.ProjectedReturnDate.Format(time.RFC3339)
				view.ProjectedReturnAt = &d
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		out = append(out, view)
	}
	return out, nil
}

// CreateInvestment opens a PENDING investment into a device.
func (s *gormStore) CreateInvestment(ctx context.Context, investorID, deviceID int64, amount decimal.Decimal) (*model.Investment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationf("amount_usd must be positive")
	}

	var device model.DeviceInstance
	err := s.db.WithContext(ctx).Preload("DeviceType").First(&device, deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("device %d not found", deviceID)
	}
	if err != nil {
		return nil, err
	}

	investment := model.Investment{
		InvestorID: investorID,
		DeviceID:   device.ID,
		AmountUSD:  amount,
		Status:     model.InvestmentPending,
	}
	if err := s.db.WithContext(ctx).Create(&investment).Error; err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	investment.Device = device
	return &investment, nil
}

// ConfirmInvestment settles the simulated payment: PENDING → PAID with a
// paid_at stamp. Any other current state is a validation failure.
func (s *gormStore) ConfirmInvestment(ctx context.Context, investorID, investmentID int64) (*model.Investment, error) {
	var investment model.Investment
	err := s.db.WithContext(ctx).Preload("Device.DeviceType").First(&investment, investmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("investment %d not found", investmentID)
	}
	if err != nil {
		return nil, err
	}
	if investment.InvestorID != investorID {
		return nil, permissionf("investment %d belongs to another investor", investmentID)
	}
	if investment.Status != model.InvestmentPending {
		return nil, validationf("investment is not in PENDING status, current status: %s", investment.Status)
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		investment.Status = model.InvestmentPaid
		investment.PaidAt = &now
		if err := tx.Model(&investment).
			Updates(map[string]any{"status": model.InvestmentPaid, "paid_at": now}).Error; err != nil {
			return err
		}

		payment, err := model.NewInvestmentPayment(investment.ID, investment.AmountUSD)
		if err != nil {
			return err
		}
		payment.Status = model.PaymentPaid
		payment.PaidAt = &now
		payment.TransactionID = fmt.Sprintf("TXN-INVEST-%d-%s", investment.ID, uuid.NewString())
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm investment %d: %w", investmentID, err)
	}
	return &investment, nil
}
