package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// ListCustomerDevices returns the customer's devices for the dashboard,
// newest first. DISABLED and MAINTENANCE units are hidden from customers.
func (s *gormStore) ListCustomerDevices(ctx context.Context, customerID int64, roomID *int64) ([]model.DeviceInstance, error) {
	q := s.db.WithContext(ctx).
		Preload("DeviceType").
		Preload("Room").
		Where("customer_id = ?", customerID).
		Where("status NOT IN ?", []model.DeviceStatus{model.DeviceDisabled, model.DeviceMaintenance})
	if roomID != nil {
		q = q.Where("room_id = ?", *roomID)
	}
	var devices []model.DeviceInstance
	if err := q.Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// GetCustomerDevice fetches a device and enforces ownership.
func (s *gormStore) GetCustomerDevice(ctx context.Context, customerID, deviceID int64) (*model.DeviceInstance, error) {
	var device model.DeviceInstance
	err := s.db.WithContext(ctx).
		Preload("DeviceType").
		Preload("Room").
		First(&device, deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("device %d not found", deviceID)
	}
	if err != nil {
		return nil, err
	}
	if device.CustomerID == nil || *device.CustomerID != customerID {
		return nil, permissionf("device %d belongs to another customer", deviceID)
	}
	return &device, nil
}

// ToggleDevice flips the power flag on a customer's device.
func (s *gormStore) ToggleDevice(ctx context.Context, customerID, deviceID int64, powerOn bool) (*model.DeviceInstance, error) {
	device, err := s.GetCustomerDevice(ctx, customerID, deviceID)
	if err != nil {
		return nil, err
	}
	device.IsPowerOn = powerOn
	if err := s.db.WithContext(ctx).Model(device).Update("is_power_on", powerOn).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle device %d: %w", deviceID, err)
	}
	return device, nil
}

// CreateDevice registers a device instance outside the order flow (admin).
func (s *gormStore) CreateDevice(ctx context.Context, in DeviceInput) (*model.DeviceInstance, error) {
	if !model.ValidDeviceStatus(in.Status) {
		return nil, validationf("unknown device status %q", in.Status)
	}
	var dt model.DeviceType
	err := s.db.WithContext(ctx).First(&dt, in.DeviceTypeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, validationf("device type %d does not exist", in.DeviceTypeID)
	}
	if err != nil {
		return nil, err
	}

	device := model.DeviceInstance{
		DeviceTypeID: in.DeviceTypeID,
		RoomID:       in.RoomID,
		CustomerID:   in.CustomerID,
		Status:       in.Status,
		SerialNumber: in.SerialNumber,
		IsPowerOn:    in.IsPowerOn,
	}
	if err := s.db.WithContext(ctx).Create(&device).Error; err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}
	return &device, nil
}

// UpdateDevice applies a partial admin edit to a device instance.
func (s *gormStore) UpdateDevice(ctx context.Context, deviceID int64, in DeviceUpdate) (*model.DeviceInstance, error) {
	var device model.DeviceInstance
	err := s.db.WithContext(ctx).First(&device, deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("device %d not found", deviceID)
	}
	if err != nil {
		return nil, err
	}

	if in.RoomID != nil {
		device.RoomID = in.RoomID
	}
	if in.CustomerID != nil {
		device.CustomerID = in.CustomerID
	}
	if in.SerialNumber != nil {
		device.SerialNumber = *in.SerialNumber
	}
	if in.IsPowerOn != nil {
		device.IsPowerOn = *in.IsPowerOn
	}
	if err := s.db.WithContext(ctx).Save(&device).Error; err != nil {
		return nil, fmt.Errorf("failed to update device %d: %w", deviceID, err)
	}
	return &device, nil
}

// SetDeviceStatus changes a device's lifecycle state (admin).
func (s *gormStore) SetDeviceStatus(ctx context.Context, deviceID int64, status model.DeviceStatus) (*model.DeviceInstance, error) {
	if !model.ValidDeviceStatus(status) {
		return nil, validationf("unknown device status %q", status)
	}
	var device model.DeviceInstance
	err := s.db.WithContext(ctx).First(&device, deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("device %d not found", deviceID)
	}
	if err != nil {
		return nil, err
	}
	device.Status = status
	if err := s.db.WithContext(ctx).Model(&device).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to set device %d status: %w", deviceID, err)
	}
	return &device, nil
}
