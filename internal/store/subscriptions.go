package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

func (s *gormStore) ListSubscriptions(ctx context.Context, customerID int64) ([]model.Subscription, error) {
	var subs []model.Subscription
	if err := s.db.WithContext(ctx).
		Preload("Order.OrderRooms.Room").
		Preload("Order.OrderRooms.DeviceTypes.DeviceType").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// CancelSubscription is the customer-initiated ACTIVE → CANCELLED transition.
// Any other current state is a validation failure. No refund or proration.
func (s *gormStore) CancelSubscription(ctx context.Context, customerID, subscriptionID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := s.db.WithContext(ctx).First(&sub, subscriptionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("subscription %d not found", subscriptionID)
	}
	if err != nil {
		return nil, err
	}
	if sub.CustomerID != customerID {
		return nil, permissionf("subscription %d belongs to another customer", subscriptionID)
	}
	if sub.Status != model.SubscriptionActive {
		return nil, validationf("subscription is not active, current status: %s", sub.Status)
	}

	now := time.Now().UTC()
	sub.Status = model.SubscriptionCancelled
	sub.CancelledAt = &now
	if err := s.db.WithContext(ctx).Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel subscription %d: %w", subscriptionID, err)
	}
	return &sub, nil
}
