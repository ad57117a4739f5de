package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeviceCategory groups catalog entries by what they primarily do.
type DeviceCategory string

const (
	CategoryPurifier   DeviceCategory = "PURIFIER"
	CategoryHumidifier DeviceCategory = "HUMIDIFIER"
	CategoryAroma      DeviceCategory = "AROMA"
	CategoryCombo      DeviceCategory = "COMBO"
)

// DeviceType is a static catalog entry describing a class of hardware, its
// capabilities and its investment economics.
type DeviceType struct {
	ID                 int64          `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	DeviceCategory     DeviceCategory `gorm:"size:16;not null;index" json:"device_category"`
	SupportsCleaning   bool           `gorm:"not null" json:"supports_cleaning"`
	SupportsHumidifying bool          `gorm:"not null" json:"supports_humidifying"`
	SupportsAroma      bool           `gorm:"not null" json:"supports_aroma"`
	// Nil coverage means the type fits any room size.
	CoverageAreaM2 *float64 `json:"coverage_area_m2"`

	PriceUSD               decimal.Decimal `gorm:"type:decimal(10,2)" json:"price_usd"`
	MinInvestmentUSD       decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_investment_usd"`
	MaxInvestmentUSD       decimal.Decimal `gorm:"type:decimal(10,2)" json:"max_investment_usd"`
	ProfitPercentage       decimal.Decimal `gorm:"type:decimal(5,2)" json:"profit_percentage"`
	InvestmentPeriodMonths int             `json:"investment_period_months"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceStatus is the lifecycle state of one physical unit.
type DeviceStatus string

const (
	DeviceOrdered     DeviceStatus = "ORDERED"
	DeviceInTransit   DeviceStatus = "IN_TRANSIT"
	DeviceInstalling  DeviceStatus = "INSTALLING"
	DeviceActive      DeviceStatus = "ACTIVE"
	DeviceDisabled    DeviceStatus = "DISABLED"
	DeviceMaintenance DeviceStatus = "MAINTENANCE"
)

// ValidDeviceStatus reports whether s is a known lifecycle state.
func ValidDeviceStatus(s DeviceStatus) bool {
	switch s {
	case DeviceOrdered, DeviceInTransit, DeviceInstalling, DeviceActive, DeviceDisabled, DeviceMaintenance:
		return true
	}
	return false
}

// DeviceInstance is one deployed (or pending) unit of a DeviceType. Instances
// are never hard-deleted; decommissioning is a status change.
type DeviceInstance struct {
	ID           int64        `gorm:"primaryKey" json:"id"`
	DeviceTypeID int64        `gorm:"index;not null" json:"device_type_id"`
	RoomID       *int64       `gorm:"index" json:"room_id"`
	CustomerID   *int64       `gorm:"index" json:"customer_id"`
	Status       DeviceStatus `gorm:"size:16;not null;index" json:"status"`
	SerialNumber string       `gorm:"size:64;uniqueIndex" json:"serial_number"`
	IsPowerOn    bool         `gorm:"not null" json:"is_power_on"`

	InstallationDate *time.Time `json:"installation_date"`
	LastServiceDate  *time.Time `json:"last_service_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DeviceType DeviceType `gorm:"foreignKey:DeviceTypeID" json:"device_type"`
	Room       *Room      `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
