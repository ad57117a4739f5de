package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

func validRoomType(t model.RoomType) bool {
	switch t {
	case model.RoomHome, model.RoomCommercial, model.RoomIndustrial:
		return true
	}
	return false
}

// CreateRoom stores a new room for the customer. The volume is derived from
// area and ceiling height exactly once, here.
func (s *gormStore) CreateRoom(ctx context.Context, customerID int64, in RoomInput) (*model.Room, error) {
	room, err := buildRoom(customerID, in)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// buildRoom validates the input and assembles an unsaved room record.
func buildRoom(customerID int64, in RoomInput) (*model.Room, error) {
	if in.Name == "" {
		return nil, validationf("room name is required")
	}
	if in.AreaM2 <= 0 {
		return nil, validationf("area_m2 must be positive")
	}
	if !validRoomType(in.RoomType) {
		return nil, validationf("unknown room type %q", in.RoomType)
	}
	if in.CeilingHeightM != nil && *in.CeilingHeightM <= 0 {
		return nil, validationf("ceiling_height_m must be positive")
	}

	room := &model.Room{
		CustomerID:     customerID,
		Name:           in.Name,
		RoomType:       in.RoomType,
		AreaM2:         in.AreaM2,
		CeilingHeightM: in.CeilingHeightM,
		Address:        in.Address,
		City:           in.City,
		Notes:          in.Notes,
	}
	room.DeriveVolume()
	return room, nil
}

func (s *gormStore) ListRooms(ctx context.Context, customerID int64) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoom fetches a room and enforces ownership. A room owned by someone else
// is a permission failure, not a not-found.
func (s *gormStore) GetRoom(ctx context.Context, customerID, roomID int64) (*model.Room, error) {
	return getOwnedRoom(s.db.WithContext(ctx), customerID, roomID)
}

func getOwnedRoom(db *gorm.DB, customerID, roomID int64) (*model.Room, error) {
	var room model.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room %d not found", roomID)
		}
		return nil, err
	}
	if room.CustomerID != customerID {
		return nil, permissionf("room %d belongs to another customer", roomID)
	}
	return &room, nil
}

// UpdateRoom applies a partial edit. Area, height and volume are immutable
// after creation so the stored volume can never drift from its invariant.
func (s *gormStore) UpdateRoom(ctx context.Context, customerID, roomID int64, in RoomUpdate) (*model.Room, error) {
	room, err := s.GetRoom(ctx, customerID, roomID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		room.Name = *in.Name
	}
	if in.RoomType != nil {
		if !validRoomType(*in.RoomType) {
			return nil, validationf("unknown room type %q", *in.RoomType)
		}
		room.RoomType = *in.RoomType
	}
	if in.Address != nil {
		room.Address = *in.Address
	}
	if in.City != nil {
		room.City = *in.City
	}
	if in.Notes != nil {
		room.Notes = *in.Notes
	}

	if err := s.db.WithContext(ctx).Save(room).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", roomID, err)
	}
	return room, nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, customerID, roomID int64) error {
	room, err := s.GetRoom(ctx, customerID, roomID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(room).Error
}
