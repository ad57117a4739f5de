package model

import "time"

// RoomType classifies the premises a room belongs to.
type RoomType string

const (
	RoomHome       RoomType = "HOME"
	RoomCommercial RoomType = "COMMERCIAL"
	RoomIndustrial RoomType = "INDUSTRIAL"
)

// Room is a physical space owned by a customer. VolumeM3 is derived once at
// creation (area × ceiling height) and never recomputed; it stays nil when no
// ceiling height was supplied.
type Room struct {
	ID             int64    `gorm:"primaryKey" json:"id"`
	CustomerID     int64    `gorm:"index;not null" json:"customer_id"`
	Name           string   `gorm:"size:255;not null" json:"name"`
	RoomType       RoomType `gorm:"size:16;not null" json:"room_type"`
	AreaM2         float64  `gorm:"not null" json:"area_m2"`
	CeilingHeightM *float64 `json:"ceiling_height_m"`
	VolumeM3       *float64 `json:"volume_m3"`
	Address        string   `gorm:"size:512" json:"address"`
	City           string   `gorm:"size:128" json:"city"`
	Notes          string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Customer User `gorm:"foreignKey:CustomerID" json:"-"`
}

// DeriveVolume fills VolumeM3 from area and ceiling height. Called once at
// creation; later edits must leave the stored volume untouched.
func (r *Room) DeriveVolume() {
	if r.VolumeM3 == nil && r.CeilingHeightM != nil {
		v := r.AreaM2 * *r.CeilingHeightM
		r.VolumeM3 = &v
	}
}
