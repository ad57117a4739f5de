package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"airrental-backend/internal/catalog"
	"airrental-backend/internal/model"
	"airrental-backend/internal/pricing"
)

// CreateOrder creates a PENDING order. It accepts either a single existing
// room reference (legacy path) or a list of room specifications, each paired
// with explicit device-type ids or a service-label list resolved through the
// device selector. Everything happens in one transaction; an unknown
// device-type id aborts the whole creation.
func (s *gormStore) CreateOrder(ctx context.Context, customerID int64, in OrderInput) (*model.CustomerOrder, error) {
	if in.RoomID == nil && len(in.Rooms) == 0 {
		return nil, validationf("either room_id or rooms_data is required")
	}

	var order model.CustomerOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = model.CustomerOrder{
			CustomerID: customerID,
			Status:     model.OrderPending,
			Comment:    in.Comment,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if in.RoomID != nil {
			room, err := getOwnedRoom(tx, customerID, *in.RoomID)
			if err != nil {
				return err
			}
			orderRoom := model.OrderRoom{OrderID: order.ID, RoomID: room.ID}
			if err := tx.Create(&orderRoom).Error; err != nil {
				return fmt.Errorf("failed to link room %d: %w", room.ID, err)
			}
		}

		// The selector works over the full static catalog; load it once for
		// all rooms of the order.
		var types []model.DeviceType
		if err := tx.Find(&types).Error; err != nil {
			return fmt.Errorf("failed to load device-type catalog: %w", err)
		}

		for _, roomIn := range in.Rooms {
			room, err := resolveOrderRoom(tx, customerID, roomIn)
			if err != nil {
				return err
			}

			orderRoom := model.OrderRoom{OrderID: order.ID, RoomID: room.ID}
			if err := tx.Create(&orderRoom).Error; err != nil {
				return fmt.Errorf("failed to link room %d: %w", room.ID, err)
			}

			typeIDs := roomIn.DeviceTypeIDs
			if len(roomIn.Services) > 0 {
				typeIDs = catalog.SelectDeviceTypes(types, roomIn.Services, room.AreaM2)
			}

			for _, typeID := range typeIDs {
				var dt model.DeviceType
				if err := tx.First(&dt, typeID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return validationf("device type %d does not exist", typeID)
					}
					return err
				}
				link := model.OrderRoomDeviceType{OrderRoomID: orderRoom.ID, DeviceTypeID: dt.ID}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("failed to link device type %d: %w", typeID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.getOrder(ctx, order.ID)
}

// resolveOrderRoom returns the existing room a rooms_data entry references,
// or creates a fresh one from the inline specification.
func resolveOrderRoom(tx *gorm.DB, customerID int64, in OrderRoomInput) (*model.Room, error) {
	if in.RoomID != nil {
		return getOwnedRoom(tx, customerID, *in.RoomID)
	}
	room, err := buildRoom(customerID, RoomInput{
		Name:           in.Name,
		RoomType:       in.RoomType,
		AreaM2:         in.AreaM2,
		CeilingHeightM: in.CeilingHeightM,
		Address:        in.Address,
		City:           in.City,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *gormStore) getOrder(ctx context.Context, orderID int64) (*model.CustomerOrder, error) {
	var order model.CustomerOrder
	err := s.db.WithContext(ctx).
		Preload("OrderRooms.Room").
		Preload("OrderRooms.DeviceTypes.DeviceType").
		Preload("Devices.Device.DeviceType").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("order %d not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *gormStore) ListOrders(ctx context.Context, customerID int64, status model.OrderStatus) ([]model.CustomerOrder, error) {
	q := s.db.WithContext(ctx).
		Preload("OrderRooms.Room").
		Preload("OrderRooms.DeviceTypes.DeviceType").
		Preload("Devices.Device.DeviceType").
		Where("customer_id = ?", customerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []model.CustomerOrder
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// roomServices maps an order's rooms to pricing inputs: each room's size and
// the union of capabilities across its selected device types.
func roomServices(order *model.CustomerOrder) []pricing.RoomServices {
	out := make([]pricing.RoomServices, 0, len(order.OrderRooms))
	for _, or := range order.OrderRooms {
		rs := pricing.RoomServices{
			AreaM2:   or.Room.AreaM2,
			VolumeM3: or.Room.VolumeM3,
		}
		for _, link := range or.DeviceTypes {
			rs.Cleaning = rs.Cleaning || link.DeviceType.SupportsCleaning
			rs.Humidifying = rs.Humidifying || link.DeviceType.SupportsHumidifying
			rs.Aroma = rs.Aroma || link.DeviceType.SupportsAroma
		}
		out = append(out, rs)
	}
	return out
}

// OrderCost returns the order's price: the cached total once the order has
// been paid, the freshly computed total before that.
func (s *gormStore) OrderCost(ctx context.Context, customerID, orderID int64) (decimal.Decimal, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	if order.CustomerID != customerID {
		return decimal.Zero, permissionf("order %d belongs to another customer", orderID)
	}
	if order.TotalCostUSD != nil {
		return *order.TotalCostUSD, nil
	}
	return pricing.OrderCost(roomServices(order)), nil
}

// PayOrder executes the PENDING → APPROVED transition with all its side
// effects in one transaction: cache the total cost, record a PAID payment,
// provision one ACTIVE device per (room, device type) pair and create the
// SUSPENDED subscription. The status flip is a compare-and-set so a
// concurrent second payment observes the APPROVED status and fails without
// provisioning anything twice.
func (s *gormStore) PayOrder(ctx context.Context, customerID, orderID, cardID int64) (*PayOrderResult, error) {
	var result PayOrderResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order model.CustomerOrder
		err := tx.
			Preload("OrderRooms.Room").
			Preload("OrderRooms.DeviceTypes.DeviceType").
			First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("order %d not found", orderID)
		}
		if err != nil {
			return err
		}
		if order.CustomerID != customerID {
			return permissionf("order %d belongs to another customer", orderID)
		}
		if order.Status != model.OrderPending {
			return validationf("order is not in PENDING status, current status: %s", order.Status)
		}

		var card model.PaymentCard
		err = tx.Where("id = ? AND customer_id = ?", cardID, customerID).First(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("payment card %d not found", cardID)
		}
		if err != nil {
			return err
		}

		total := pricing.OrderCost(roomServices(&order))
		if order.TotalCostUSD != nil {
			total = *order.TotalCostUSD
		}

		// Compare-and-set on status: only one concurrent payment can win.
		res := tx.Model(&model.CustomerOrder{}).
			Where("id = ? AND status = ?", order.ID, model.OrderPending).
			Updates(map[string]any{"status": model.OrderApproved, "total_cost_usd": total})
		if res.Error != nil {
			return fmt.Errorf("failed to approve order %d: %w", order.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return validationf("order is not in PENDING status")
		}

		now := time.Now().UTC()
		payment, err := model.NewOrderPayment(order.ID, total)
		if err != nil {
			return err
		}
		payment.PaymentCardID = &card.ID
		payment.Status = model.PaymentPaid
		payment.PaidAt = &now
		payment.TransactionID = fmt.Sprintf("TXN-ORDER-%d-%s", order.ID, uuid.NewString())
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		var devices []model.DeviceInstance
		for _, or := range order.OrderRooms {
			roomID := or.RoomID
			for _, link := range or.DeviceTypes {
				device := model.DeviceInstance{
					DeviceTypeID:     link.DeviceTypeID,
					RoomID:           &roomID,
					CustomerID:       &order.CustomerID,
					Status:           model.DeviceActive,
					SerialNumber:     uuid.NewString(),
					IsPowerOn:        true,
					InstallationDate: &now,
				}
				if err := tx.Create(&device).Error; err != nil {
					return fmt.Errorf("failed to provision device: %w", err)
				}
				if err := tx.Create(&model.OrderDevice{OrderID: order.ID, DeviceID: device.ID}).Error; err != nil {
					return fmt.Errorf("failed to link device %d: %w", device.ID, err)
				}
				devices = append(devices, device)
			}
		}

		subscription := model.Subscription{
			CustomerID:       order.CustomerID,
			OrderID:          order.ID,
			Status:           model.SubscriptionSuspended,
			MonthlyAmountUSD: total,
			StartDate:        now,
			NextPaymentDate:  now.AddDate(0, 0, 30),
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		order.Status = model.OrderApproved
		order.TotalCostUSD = &total
		result = PayOrderResult{
			Order:        order,
			Payment:      payment,
			Subscription: subscription,
			Devices:      devices,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetOrderStatus is the explicit transition entry point for administrative
// status changes. When the persisted status moves to ACTIVE the order's
// SUSPENDED subscription is activated in the same transaction, with a fresh
// billing window. The previous status is always read from the database, not
// from the caller, so unrelated updates can never re-trigger activation.
func (s *gormStore) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.CustomerOrder, *model.Subscription, error) {
	if !model.ValidOrderStatus(status) {
		return nil, nil, validationf("unknown order status %q", status)
	}

	var (
		order        model.CustomerOrder
		subscription *model.Subscription
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("order %d not found", orderID)
		}
		if err != nil {
			return err
		}

		previous := order.Status
		order.Status = status
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to update order %d status: %w", orderID, err)
		}

		if status != model.OrderActive || previous == model.OrderActive {
			return nil
		}

		var sub model.Subscription
		err = tx.Where("order_id = ?", order.ID).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if sub.Status != model.SubscriptionSuspended {
			return nil
		}

		now := time.Now().UTC()
		sub.Status = model.SubscriptionActive
		sub.StartDate = now
		sub.NextPaymentDate = now.AddDate(0, 0, 30)
		if err := tx.Save(&sub).Error; err != nil {
			return fmt.Errorf("failed to activate subscription %d: %w", sub.ID, err)
		}
		subscription = &sub
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, subscription, nil
}
