package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

// CreateCard stores a payment card. The customer's first card becomes the
// default automatically; an explicit default clears the flag on every other
// card in the same transaction so at most one default ever exists.
func (s *gormStore) CreateCard(ctx context.Context, customerID int64, in CardInput) (*model.PaymentCard, error) {
	if len(in.Last4) != 4 {
		return nil, validationf("last4 must be exactly 4 digits")
	}

	var card model.PaymentCard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PaymentCard{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
			return err
		}

		isDefault := in.IsDefault || count == 0
		if isDefault {
			if err := clearDefaultCards(tx, customerID, 0); err != nil {
				return err
			}
		}

		card = model.PaymentCard{
			CustomerID:  customerID,
			Last4:       in.Last4,
			HolderName:  in.HolderName,
			ExpiryMonth: in.ExpiryMonth,
			ExpiryYear:  in.ExpiryYear,
			Brand:       in.Brand,
			IsDefault:   isDefault,
		}
		return tx.Create(&card).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment card: %w", err)
	}
	return &card, nil
}

func clearDefaultCards(tx *gorm.DB, customerID, exceptID int64) error {
	return tx.Model(&model.PaymentCard{}).
		Where("customer_id = ? AND is_default = ? AND id <> ?", customerID, true, exceptID).
		Update("is_default", false).Error
}

func (s *gormStore) ListCards(ctx context.Context, customerID int64) ([]model.PaymentCard, error) {
	var cards []model.PaymentCard
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *gormStore) GetCard(ctx context.Context, customerID, cardID int64) (*model.PaymentCard, error) {
	var card model.PaymentCard
	err := s.db.WithContext(ctx).First(&card, cardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("payment card %d not found", cardID)
	}
	if err != nil {
		return nil, err
	}
	if card.CustomerID != customerID {
		return nil, permissionf("payment card %d belongs to another customer", cardID)
	}
	return &card, nil
}

// UpdateCard applies a partial edit. Setting is_default clears the flag on
// the customer's other cards atomically.
func (s *gormStore) UpdateCard(ctx context.Context, customerID, cardID int64, in CardUpdate) (*model.PaymentCard, error) {
	card, err := s.GetCard(ctx, customerID, cardID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.HolderName != nil {
			card.HolderName = *in.HolderName
		}
		if in.ExpiryMonth != nil {
			card.ExpiryMonth = *in.ExpiryMonth
		}
		if in.ExpiryYear != nil {
			card.ExpiryYear = *in.ExpiryYear
		}
		if in.IsDefault != nil {
			if *in.IsDefault {
				if err := clearDefaultCards(tx, customerID, card.ID); err != nil {
					return err
				}
			}
			card.IsDefault = *in.IsDefault
		}
		return tx.Save(card).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update payment card %d: %w", cardID, err)
	}
	return card, nil
}

// DeleteCard removes a card. Deleting the default card does not promote
// another one; the customer simply has no default until they pick one.
func (s *gormStore) DeleteCard(ctx context.Context, customerID, cardID int64) error {
	card, err := s.GetCard(ctx, customerID, cardID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(card).Error
}
