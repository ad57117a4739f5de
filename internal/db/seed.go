package db

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"airrental-backend/internal/model"
)

func f(v float64) *float64 { return &v }

// SeedCatalog inserts the reference device-type catalog when the table is
// empty. The catalog is static data normally maintained by administrators;
// the seed exists so a fresh deployment is usable immediately.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.DeviceType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	types := []model.DeviceType{
		{
			Name:             "AeroClean 30",
			DeviceCategory:   model.CategoryPurifier,
			SupportsCleaning: true,
			CoverageAreaM2:   f(30),
			PriceUSD:         decimal.NewFromFloat(199),
			MinInvestmentUSD: decimal.NewFromFloat(50), MaxInvestmentUSD: decimal.NewFromFloat(300),
			ProfitPercentage: decimal.NewFromFloat(8), InvestmentPeriodMonths: 6,
		},
		{
			Name:             "AeroClean 80",
			DeviceCategory:   model.CategoryPurifier,
			SupportsCleaning: true,
			CoverageAreaM2:   f(80),
			PriceUSD:         decimal.NewFromFloat(349),
			MinInvestmentUSD: decimal.NewFromFloat(100), MaxInvestmentUSD: decimal.NewFromFloat(500),
			ProfitPercentage: decimal.NewFromFloat(9), InvestmentPeriodMonths: 6,
		},
		{
			Name:                "HydroMist 40",
			DeviceCategory:      model.CategoryHumidifier,
			SupportsHumidifying: true,
			CoverageAreaM2:      f(40),
			PriceUSD:            decimal.NewFromFloat(149),
			MinInvestmentUSD:    decimal.NewFromFloat(50), MaxInvestmentUSD: decimal.NewFromFloat(250),
			ProfitPercentage:    decimal.NewFromFloat(7), InvestmentPeriodMonths: 6,
		},
		{
			Name:           "AromaDrop",
			DeviceCategory: model.CategoryAroma,
			SupportsAroma:  true,
			PriceUSD:       decimal.NewFromFloat(59),
			MinInvestmentUSD: decimal.NewFromFloat(25), MaxInvestmentUSD: decimal.NewFromFloat(100),
			ProfitPercentage: decimal.NewFromFloat(5), InvestmentPeriodMonths: 6,
		},
		{
			Name:                "TriAir Combo 60",
			DeviceCategory:      model.CategoryCombo,
			SupportsCleaning:    true,
			SupportsHumidifying: true,
			SupportsAroma:       true,
			CoverageAreaM2:      f(60),
			PriceUSD:            decimal.NewFromFloat(499),
			MinInvestmentUSD:    decimal.NewFromFloat(100), MaxInvestmentUSD: decimal.NewFromFloat(800),
			ProfitPercentage:    decimal.NewFromFloat(11), InvestmentPeriodMonths: 12,
		},
		{
			Name:                "TriAir Combo XL",
			DeviceCategory:      model.CategoryCombo,
			SupportsCleaning:    true,
			SupportsHumidifying: true,
			SupportsAroma:       true,
			PriceUSD:            decimal.NewFromFloat(899),
			MinInvestmentUSD:    decimal.NewFromFloat(200), MaxInvestmentUSD: decimal.NewFromFloat(1500),
			ProfitPercentage:    decimal.NewFromFloat(12), InvestmentPeriodMonths: 12,
		},
	}

	log.Printf("Seeding device-type catalog with %d entries...", len(types))
	return db.Create(&types).Error
}
