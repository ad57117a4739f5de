package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a customer order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderApproved  OrderStatus = "APPROVED"
	OrderInstalled OrderStatus = "INSTALLED"
	OrderActive    OrderStatus = "ACTIVE"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order state.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderApproved, OrderInstalled, OrderActive, OrderCancelled:
		return true
	}
	return false
}

// CustomerOrder is a customer's request to install devices across one or more
// rooms. TotalCostUSD is computed once at payment and cached; it is not
// recomputed on reads even if the underlying rooms change afterwards.
type CustomerOrder struct {
	ID           int64            `gorm:"primaryKey" json:"id"`
	CustomerID   int64            `gorm:"index;not null" json:"customer_id"`
	Status       OrderStatus      `gorm:"size:16;not null;index" json:"status"`
	Comment      string           `json:"comment"`
	TotalCostUSD *decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_cost_usd"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	OrderRooms []OrderRoom   `gorm:"foreignKey:OrderID" json:"rooms,omitempty"`
	Devices    []OrderDevice `gorm:"foreignKey:OrderID" json:"devices,omitempty"`
}

// OrderRoom links an order to one of its rooms before devices exist.
type OrderRoom struct {
	ID      int64 `gorm:"primaryKey" json:"id"`
	OrderID int64 `gorm:"index;not null" json:"order_id"`
	RoomID  int64 `gorm:"index;not null" json:"room_id"`

	Room        Room                  `gorm:"foreignKey:RoomID" json:"room"`
	DeviceTypes []OrderRoomDeviceType `gorm:"foreignKey:OrderRoomID" json:"device_types,omitempty"`
}

// OrderRoomDeviceType records one requested device-type "service" for an
// order room. Each pair turns into a DeviceInstance at payment time.
type OrderRoomDeviceType struct {
	ID           int64 `gorm:"primaryKey" json:"id"`
	OrderRoomID  int64 `gorm:"index;not null" json:"order_room_id"`
	DeviceTypeID int64 `gorm:"index;not null" json:"device_type_id"`

	DeviceType DeviceType `gorm:"foreignKey:DeviceTypeID" json:"device_type"`
}

// OrderDevice links a provisioned device back to the order that produced it.
type OrderDevice struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	OrderID  int64 `gorm:"index;not null" json:"order_id"`
	DeviceID int64 `gorm:"index;not null" json:"device_id"`

	Device DeviceInstance `gorm:"foreignKey:DeviceID" json:"device"`
}
