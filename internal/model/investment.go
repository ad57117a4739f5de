package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus is the funding state of an investment.
type InvestmentStatus string

const (
	InvestmentPending   InvestmentStatus = "PENDING"
	InvestmentPaid      InvestmentStatus = "PAID"
	InvestmentFailed    InvestmentStatus = "FAILED"
	InvestmentCancelled InvestmentStatus = "CANCELLED"
)

// Investment is an investor's funding of one device instance in exchange for
// a projected return.
type Investment struct {
	ID         int64            `gorm:"primaryKey" json:"id"`
	InvestorID int64            `gorm:"index;not null" json:"investor_id"`
	DeviceID   int64            `gorm:"index;not null" json:"device_id"`
	AmountUSD  decimal.Decimal  `gorm:"type:decimal(10,2)" json:"amount_usd"`
	Status     InvestmentStatus `gorm:"size:16;not null;index" json:"status"`
	PaidAt     *time.Time       `json:"paid_at"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	Device DeviceInstance `gorm:"foreignKey:DeviceID" json:"device"`
}

// InvestmentStatSnapshot is a point-in-time rollup of cumulative usage and
// projected return per investment. Snapshots are produced by an external
// scheduled job; this service only reads the most recent one.
type InvestmentStatSnapshot struct {
	ID                    int64           `gorm:"primaryKey" json:"id"`
	InvestmentID          int64           `gorm:"index;not null" json:"investment_id"`
	Timestamp             time.Time       `gorm:"index;not null" json:"timestamp"`
	CleanedAirVolumeM3    float64         `json:"cleaned_air_volume_m3"`
	HumidifiedHours       int64           `json:"humidified_hours"`
	ProjectedReturnAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"projected_return_amount"`
	ProjectedReturnDate   *time.Time      `json:"projected_return_date"`
	CreatedAt             time.Time       `json:"created_at"`
}
