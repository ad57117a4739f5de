package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the billing state of an order's subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

// Subscription is the recurring-billing record tied 1:1 to a paid order. It is
// created SUSPENDED at payment time and flips to ACTIVE only when the parent
// order transitions to ACTIVE.
type Subscription struct {
	ID               int64              `gorm:"primaryKey" json:"id"`
	CustomerID       int64              `gorm:"index;not null" json:"customer_id"`
	OrderID          int64              `gorm:"uniqueIndex;not null" json:"order_id"`
	Status           SubscriptionStatus `gorm:"size:16;not null;index" json:"status"`
	MonthlyAmountUSD decimal.Decimal    `gorm:"type:decimal(10,2)" json:"monthly_amount_usd"`
	StartDate        time.Time          `json:"start_date"`
	NextPaymentDate  time.Time          `json:"next_payment_date"`
	CancelledAt      *time.Time         `json:"cancelled_at"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	Order CustomerOrder `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}
