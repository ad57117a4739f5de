package catalog

import "airrental-backend/internal/model"

// Service labels a customer can request for a room.
const (
	ServiceCleaning    = "cleaning"
	ServiceHumidifying = "humidifying"
	ServiceAroma       = "aroma"
)

// Needs is the resolved service set for one room. When cleaning and
// humidifying are both requested, aroma is bundled in for free.
type Needs struct {
	Cleaning    bool
	Humidifying bool
	Aroma       bool
	// AromaBundled marks aroma that was granted rather than requested; the
	// pricing layer charges nothing for it.
	AromaBundled bool
}

// ResolveNeeds turns raw service labels into a Needs set. Unknown labels are
// ignored.
func ResolveNeeds(services []string) Needs {
	var n Needs
	for _, s := range services {
		switch s {
		case ServiceCleaning:
			n.Cleaning = true
		case ServiceHumidifying:
			n.Humidifying = true
		case ServiceAroma:
			n.Aroma = true
		}
	}
	if n.Cleaning && n.Humidifying {
		if !n.Aroma {
			n.Aroma = true
		}
		n.AromaBundled = true
	}
	return n
}

// SelectDeviceTypes picks the cheapest adequate device types for the given
// services and floor area out of the catalog. When all three services are
// needed it prefers a single combo unit over separate singles; otherwise one
// type per service, each the smallest coverage that still fits the room
// (nil coverage fits everything but sorts last). A service with no matching
// type is silently skipped.
func SelectDeviceTypes(types []model.DeviceType, services []string, areaM2 float64) []int64 {
	n := ResolveNeeds(services)

	var selected []int64
	if n.Cleaning && n.Humidifying {
		if combo := pickBest(types, areaM2, func(dt model.DeviceType) bool {
			return dt.DeviceCategory == model.CategoryCombo &&
				dt.SupportsCleaning && dt.SupportsHumidifying && dt.SupportsAroma
		}); combo != nil {
			return append(selected, combo.ID)
		}
	}

	if n.Cleaning {
		if dt := pickBest(types, areaM2, func(dt model.DeviceType) bool {
			return dt.DeviceCategory == model.CategoryPurifier && dt.SupportsCleaning
		}); dt != nil {
			selected = append(selected, dt.ID)
		}
	}
	if n.Humidifying {
		if dt := pickBest(types, areaM2, func(dt model.DeviceType) bool {
			return dt.DeviceCategory == model.CategoryHumidifier && dt.SupportsHumidifying
		}); dt != nil {
			selected = append(selected, dt.ID)
		}
	}
	if n.Aroma {
		if dt := pickBest(types, areaM2, func(dt model.DeviceType) bool {
			return dt.DeviceCategory == model.CategoryAroma && dt.SupportsAroma
		}); dt != nil {
			selected = append(selected, dt.ID)
		}
	}
	return selected
}

// pickBest returns the matching type with the smallest coverage area that is
// still >= areaM2. Types with nil coverage match any room but are only chosen
// when no sized type fits.
func pickBest(types []model.DeviceType, areaM2 float64, match func(model.DeviceType) bool) *model.DeviceType {
	var best *model.DeviceType
	for i := range types {
		dt := &types[i]
		if !match(*dt) || !covers(dt, areaM2) {
			continue
		}
		if best == nil {
			best = dt
			continue
		}
		switch {
		case best.CoverageAreaM2 == nil && dt.CoverageAreaM2 != nil:
			best = dt
		case best.CoverageAreaM2 != nil && dt.CoverageAreaM2 != nil && *dt.CoverageAreaM2 < *best.CoverageAreaM2:
			best = dt
		}
	}
	return best
}

func covers(dt *model.DeviceType, areaM2 float64) bool {
	return dt.CoverageAreaM2 == nil || *dt.CoverageAreaM2 >= areaM2
}
