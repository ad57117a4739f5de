package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"airrental-backend/internal/model"
)

func fp(v float64) *float64 { return &v }

func testCatalog() []model.DeviceType {
	return []model.DeviceType{
		{ID: 1, Name: "Purifier 30", DeviceCategory: model.CategoryPurifier, SupportsCleaning: true, CoverageAreaM2: fp(30)},
		{ID: 2, Name: "Purifier 60", DeviceCategory: model.CategoryPurifier, SupportsCleaning: true, CoverageAreaM2: fp(60)},
		{ID: 3, Name: "Humidifier 40", DeviceCategory: model.CategoryHumidifier, SupportsHumidifying: true, CoverageAreaM2: fp(40)},
		{ID: 4, Name: "Aroma 25", DeviceCategory: model.CategoryAroma, SupportsAroma: true, CoverageAreaM2: fp(25)},
		{ID: 5, Name: "Combo 60", DeviceCategory: model.CategoryCombo, SupportsCleaning: true, SupportsHumidifying: true, SupportsAroma: true, CoverageAreaM2: fp(60)},
		{ID: 6, Name: "Combo XL", DeviceCategory: model.CategoryCombo, SupportsCleaning: true, SupportsHumidifying: true, SupportsAroma: true, CoverageAreaM2: nil},
	}
}

func TestResolveNeeds(t *testing.T) {
	t.Run("cleaning plus humidifying bundles aroma for free", func(t *testing.T) {
		n := ResolveNeeds([]string{ServiceCleaning, ServiceHumidifying})
		assert.True(t, n.Cleaning)
		assert.True(t, n.Humidifying)
		assert.True(t, n.Aroma)
		assert.True(t, n.AromaBundled)
	})

	t.Run("aroma alone is not bundled", func(t *testing.T) {
		n := ResolveNeeds([]string{ServiceAroma})
		assert.True(t, n.Aroma)
		assert.False(t, n.AromaBundled)
	})

	t.Run("explicit aroma alongside both still counts as bundled", func(t *testing.T) {
		n := ResolveNeeds([]string{ServiceCleaning, ServiceHumidifying, ServiceAroma})
		assert.True(t, n.Aroma)
		assert.True(t, n.AromaBundled)
	})

	t.Run("unknown labels are ignored", func(t *testing.T) {
		n := ResolveNeeds([]string{"dehumidifying", ServiceCleaning})
		assert.True(t, n.Cleaning)
		assert.False(t, n.Humidifying)
		assert.False(t, n.Aroma)
	})
}

func TestSelectDeviceTypes(t *testing.T) {
	types := testCatalog()

	t.Run("cleaning and humidifying prefer a single combo", func(t *testing.T) {
		ids := SelectDeviceTypes(types, []string{ServiceCleaning, ServiceHumidifying}, 50)
		assert.Equal(t, []int64{5}, ids)
	})

	t.Run("combo falls back to unlimited coverage for large rooms", func(t *testing.T) {
		ids := SelectDeviceTypes(types, []string{ServiceCleaning, ServiceHumidifying}, 90)
		assert.Equal(t, []int64{6}, ids)
	})

	t.Run("single service picks smallest adequate coverage", func(t *testing.T) {
		ids := SelectDeviceTypes(types, []string{ServiceCleaning}, 20)
		assert.Equal(t, []int64{1}, ids)

		ids = SelectDeviceTypes(types, []string{ServiceCleaning}, 45)
		assert.Equal(t, []int64{2}, ids)
	})

	t.Run("separate singles when combo not needed", func(t *testing.T) {
		ids := SelectDeviceTypes(types, []string{ServiceHumidifying, ServiceAroma}, 20)
		assert.Equal(t, []int64{3, 4}, ids)
	})

	t.Run("service with no fitting type is skipped", func(t *testing.T) {
		// No aroma unit covers 30m², and no aroma-only fallback exists.
		ids := SelectDeviceTypes(types, []string{ServiceHumidifying, ServiceAroma}, 35)
		assert.Equal(t, []int64{3}, ids)
	})

	t.Run("no services selects nothing", func(t *testing.T) {
		assert.Empty(t, SelectDeviceTypes(types, nil, 50))
	})
}
