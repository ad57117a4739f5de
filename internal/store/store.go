package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Catalog
	ListDeviceTypes(ctx context.Context, category string) ([]model.DeviceType, error)

	// Rooms
	CreateRoom(ctx context.Context, customerID int64, in RoomInput) (*model.Room, error)
	ListRooms(ctx context.Context, customerID int64) ([]model.Room, error)
	GetRoom(ctx context.Context, customerID, roomID int64) (*model.Room, error)
	UpdateRoom(ctx context.Context, customerID, roomID int64, in RoomUpdate) (*model.Room, error)
	DeleteRoom(ctx context.Context, customerID, roomID int64) error

	// Orders
	CreateOrder(ctx context.Context, customerID int64, in OrderInput) (*model.CustomerOrder, error)
	ListOrders(ctx context.Context, customerID int64, status model.OrderStatus) ([]model.CustomerOrder, error)
	OrderCost(ctx context.Context, customerID, orderID int64) (decimal.Decimal, error)
	PayOrder(ctx context.Context, customerID, orderID, cardID int64) (*PayOrderResult, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.CustomerOrder, *model.Subscription, error)

	// Devices
	ListCustomerDevices(ctx context.Context, customerID int64, roomID *int64) ([]model.DeviceInstance, error)
	GetCustomerDevice(ctx context.Context, customerID, deviceID int64) (*model.DeviceInstance, error)
	ToggleDevice(ctx context.Context, customerID, deviceID int64, powerOn bool) (*model.DeviceInstance, error)
	CreateDevice(ctx context.Context, in DeviceInput) (*model.DeviceInstance, error)
	UpdateDevice(ctx context.Context, deviceID int64, in DeviceUpdate) (*model.DeviceInstance, error)
	SetDeviceStatus(ctx context.Context, deviceID int64, status model.DeviceStatus) (*model.DeviceInstance, error)

	// Payment cards
	CreateCard(ctx context.Context, customerID int64, in CardInput) (*model.PaymentCard, error)
	ListCards(ctx context.Context, customerID int64) ([]model.PaymentCard, error)
	GetCard(ctx context.Context, customerID, cardID int64) (*model.PaymentCard, error)
	UpdateCard(ctx context.Context, customerID, cardID int64, in CardUpdate) (*model.PaymentCard, error)
	DeleteCard(ctx context.Context, customerID, cardID int64) error

	// Payments
	ListCustomerPayments(ctx context.Context, customerID int64) ([]model.Payment, *PaymentAnalytics, error)

	// Subscriptions
	ListSubscriptions(ctx context.Context, customerID int64) ([]model.Subscription, error)
	CancelSubscription(ctx context.Context, customerID, subscriptionID int64) (*model.Subscription, error)

	// Investments
	InvestorDashboard(ctx context.Context, investorID int64) (*DashboardSummary, error)
	ListAvailableDevices(ctx context.Context, budget *decimal.Decimal) ([]AvailableDevice, error)
	ListInvestments(ctx context.Context, investorID int64) ([]InvestmentView, error)
	CreateInvestment(ctx context.Context, investorID, deviceID int64, amount decimal.Decimal) (*model.Investment, error)
	ConfirmInvestment(ctx context.Context, investorID, investmentID int64) (*model.Investment, error)

	// Metrics
	InsertMetric(ctx context.Context, metric *model.DeviceMetric) error
	LatestMetric(ctx context.Context, deviceID int64) (*model.DeviceMetric, error)
	MetricsSince(ctx context.Context, deviceID int64, since time.Time) ([]model.DeviceMetric, error)
	CountMetricsSince(ctx context.Context, deviceID int64, since time.Time) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ListDeviceTypes returns the device-type catalog, optionally filtered by
// category, ordered the way the catalog screens expect.
func (s *gormStore) ListDeviceTypes(ctx context.Context, category string) ([]model.DeviceType, error) {
	q := s.db.WithContext(ctx).Model(&model.DeviceType{})
	if category != "" {
		q = q.Where("device_category = ?", category)
	}
	var types []model.DeviceType
	if err := q.Order("device_category, name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
