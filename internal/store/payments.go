package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// ListCustomerPayments returns the customer's payment history (through their
// orders) together with trailing 7/30-day and lifetime aggregates.
func (s *gormStore) ListCustomerPayments(ctx context.Context, customerID int64) ([]model.Payment, *PaymentAnalytics, error) {
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&model.Payment{}).
			Joins("JOIN customer_orders ON customer_orders.id = payments.order_id").
			Where("customer_orders.customer_id = ?", customerID)
	}

	var payments []model.Payment
	if err := base().Order("payments.created_at DESC").Find(&payments).Error; err != nil {
		return nil, nil, err
	}

	analytics := &PaymentAnalytics{}
	now := time.Now().UTC()

	var err error
	analytics.TotalPaidUSD, analytics.TotalPayments, err = paidWindow(base(), time.Time{})
	if err != nil {
		return nil, nil, err
	}
	analytics.Recent30Days.TotalUSD, analytics.Recent30Days.Count, err = paidWindow(base(), now.AddDate(0, 0, -30))
	if err != nil {
		return nil, nil, err
	}
	analytics.Recent7Days.TotalUSD, analytics.Recent7Days.Count, err = paidWindow(base(), now.AddDate(0, 0, -7))
	if err != nil {
		return nil, nil, err
	}

	return payments, analytics, nil
}

// paidWindow aggregates PAID payments created since the given cutoff; a zero
// cutoff means lifetime.
func paidWindow(q *gorm.DB, since time.Time) (decimal.Decimal, int64, error) {
	q = q.Where("payments.status = ?", model.PaymentPaid)
	if !since.IsZero() {
		q = q.Where("payments.created_at >= ?", since)
	}

	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := q.Select("COALESCE(SUM(payments.amount_usd), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}
