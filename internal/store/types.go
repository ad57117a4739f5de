package store

import (
	"github.com/shopspring/decimal"

	"airrental-backend/internal/model"
)

// RoomInput carries the attributes for creating a room.
type RoomInput struct {
	Name           string
	RoomType       model.RoomType
	AreaM2         float64
	CeilingHeightM *float64
	Address        string
	City           string
	Notes          string
}

// RoomUpdate carries a partial room edit. Volume is deliberately absent: it
// is derived once at creation and never recomputed.
type RoomUpdate struct {
	Name     *string
	RoomType *model.RoomType
	Address  *string
	City     *string
	Notes    *string
}

// OrderRoomInput describes one room of a rooms_data order: either a reference
// to an existing room or an inline room specification, paired with explicit
// device-type ids or a service-label list resolved through the selector.
type OrderRoomInput struct {
	RoomID *int64

	Name           string
	RoomType       model.RoomType
	AreaM2         float64
	CeilingHeightM *float64
	Address        string
	City           string
	Notes          string

	Services      []string
	DeviceTypeIDs []int64
}

// OrderInput is the payload for creating an order. RoomID is the legacy
// single-room path; Rooms is the rooms_data path.
type OrderInput struct {
	RoomID  *int64
	Comment string
	Rooms   []OrderRoomInput
}

// DeviceInput carries the attributes for an admin-created device instance.
type DeviceInput struct {
	DeviceTypeID int64
	RoomID       *int64
	CustomerID   *int64
	Status       model.DeviceStatus
	SerialNumber string
	IsPowerOn    bool
}

// DeviceUpdate carries a partial admin device edit.
type DeviceUpdate struct {
	RoomID       *int64
	CustomerID   *int64
	SerialNumber *string
	IsPowerOn    *bool
}

// CardInput carries the attributes for storing a payment card.
type CardInput struct {
	Last4       string
	HolderName  string
	ExpiryMonth int
	ExpiryYear  int
	Brand       string
	IsDefault   bool
}

// CardUpdate carries a partial card edit.
type CardUpdate struct {
	HolderName  *string
	ExpiryMonth *int
	ExpiryYear  *int
	IsDefault   *bool
}

// PayOrderResult bundles everything a successful order payment produced.
type PayOrderResult struct {
	Order        model.CustomerOrder
	Payment      model.Payment
	Subscription model.Subscription
	Devices      []model.DeviceInstance
}

// PaymentWindow is an aggregate over a trailing period of paid payments.
type PaymentWindow struct {
	TotalUSD decimal.Decimal `json:"total_usd"`
	Count    int64           `json:"count"`
}

// PaymentAnalytics accompanies the customer payment listing.
type PaymentAnalytics struct {
	TotalPaidUSD  decimal.Decimal `json:"total_paid_usd"`
	TotalPayments int64           `json:"total_payments"`
	Recent30Days  PaymentWindow   `json:"recent_30_days"`
	Recent7Days   PaymentWindow   `json:"recent_7_days"`
}

// ShortProjection is the headline return estimate shown to investors.
type ShortProjection struct {
	ProjectedReturnUSD decimal.Decimal `json:"projected_return_usd"`
	PeriodMonths       int             `json:"period_months"`
}

// AvailableDevice is an investable device with its investment terms.
type AvailableDevice struct {
	Device           model.DeviceInstance `json:"device"`
	MinInvestmentUSD decimal.Decimal      `json:"min_investment_usd"`
	MaxInvestmentUSD decimal.Decimal      `json:"max_investment_usd"`
	Projection       ShortProjection      `json:"short_projection"`
}

// InvestmentView is an investment with its cumulative usage aggregates and
// the latest snapshot projection.
type InvestmentView struct {
	Investment         model.Investment `json:"investment"`
	CleanedAirM3       float64          `json:"cleaned_air_m3"`
	HumidifiedHours    int64            `json:"humidified_hours"`
	ProjectedReturnUSD *decimal.Decimal `json:"projected_return_usd"`
	ProjectedReturnAt  *string          `json:"projected_return_date"`
}

// DashboardSummary is the investor dashboard rollup.
type DashboardSummary struct {
	TotalInvestedUSD        decimal.Decimal  `json:"total_invested_usd"`
	ActiveDevicesCount      int64            `json:"active_devices_count"`
	TotalCleanedAirM3       float64          `json:"total_cleaned_air_m3"`
	TotalHumidifiedHours    int64            `json:"total_humidified_hours"`
	ProjectedReturnTotalUSD decimal.Decimal  `json:"projected_return_total_usd"`
	ProjectedReturnDate     *string          `json:"projected_return_date"`
}
