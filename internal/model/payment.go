package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentTarget discriminates what a payment settles.
type PaymentTarget string

const (
	TargetOrder      PaymentTarget = "ORDER"
	TargetInvestment PaymentTarget = "INVESTMENT"
)

// Payment attaches to exactly one of a CustomerOrder or an Investment,
// discriminated by Target. Use NewOrderPayment / NewInvestmentPayment so the
// exactly-one invariant holds from construction.
type Payment struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	Target        PaymentTarget `gorm:"size:16;not null" json:"target"`
	OrderID       *int64        `gorm:"index" json:"order_id,omitempty"`
	InvestmentID  *int64        `gorm:"index" json:"investment_id,omitempty"`
	PaymentCardID *int64        `gorm:"index" json:"payment_card_id,omitempty"`
	Status        PaymentStatus `gorm:"size:16;not null;index" json:"status"`
	AmountUSD     decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount_usd"`
	TransactionID string        `gorm:"size:128" json:"transaction_id"`
	PaidAt        *time.Time    `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ErrPaymentTarget is returned by the Payment constructors on a zero id.
var ErrPaymentTarget = errors.New("payment target id must be set")

// NewOrderPayment builds a payment settling an order.
func NewOrderPayment(orderID int64, amount decimal.Decimal) (Payment, error) {
	if orderID == 0 {
		return Payment{}, ErrPaymentTarget
	}
	return Payment{Target: TargetOrder, OrderID: &orderID, AmountUSD: amount, Status: PaymentPending}, nil
}

// NewInvestmentPayment builds a payment settling an investment.
func NewInvestmentPayment(investmentID int64, amount decimal.Decimal) (Payment, error) {
	if investmentID == 0 {
		return Payment{}, ErrPaymentTarget
	}
	return Payment{Target: TargetInvestment, InvestmentID: &investmentID, AmountUSD: amount, Status: PaymentPending}, nil
}

// PaymentCard is a stored card belonging to a customer. At most one card per
// customer carries IsDefault; the store clears the flag on all other cards
// whenever one is set default.
type PaymentCard struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	CustomerID  int64  `gorm:"index;not null" json:"customer_id"`
	Last4       string `gorm:"size:4;not null" json:"last4"`
	HolderName  string `gorm:"size:255" json:"holder_name"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Brand       string `gorm:"size:32" json:"brand"`
	IsDefault   bool   `gorm:"not null" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
