package pricing

import "github.com/shopspring/decimal"

// Per-m³ monthly rates in USD.
var (
	RateCleaning    = decimal.NewFromFloat(0.10)
	RateHumidifying = decimal.NewFromFloat(0.10)
	RateAroma       = decimal.NewFromFloat(0.05)
)

// DefaultCeilingHeightM is assumed for rooms created without a ceiling
// height, whose stored volume is null.
const DefaultCeilingHeightM = 2.5

// RoomServices describes one order room for costing purposes: its size and
// the union of capabilities across its selected device types.
type RoomServices struct {
	AreaM2      float64
	VolumeM3    *float64
	Cleaning    bool
	Humidifying bool
	Aroma       bool
}

// volume returns the room volume, falling back to area times the standard
// ceiling height when none was recorded.
func (rs RoomServices) volume() decimal.Decimal {
	if rs.VolumeM3 != nil {
		return decimal.NewFromFloat(*rs.VolumeM3)
	}
	return decimal.NewFromFloat(rs.AreaM2 * DefaultCeilingHeightM)
}

// RoomCost prices one room: volume × 0.10 for cleaning, × 0.10 for
// humidifying, × 0.05 for aroma. Aroma is free when it rides along with both
// cleaning and humidifying; it is only charged when requested alone or with
// just one of the other two.
func RoomCost(rs RoomServices) decimal.Decimal {
	vol := rs.volume()
	total := decimal.Zero
	if rs.Cleaning {
		total = total.Add(vol.Mul(RateCleaning))
	}
	if rs.Humidifying {
		total = total.Add(vol.Mul(RateHumidifying))
	}
	if rs.Aroma && !(rs.Cleaning && rs.Humidifying) {
		total = total.Add(vol.Mul(RateAroma))
	}
	return total
}

// OrderCost sums RoomCost across all rooms of an order, rounded to cents.
func OrderCost(rooms []RoomServices) decimal.Decimal {
	total := decimal.Zero
	for _, rs := range rooms {
		total = total.Add(RoomCost(rs))
	}
	return total.Round(2)
}
