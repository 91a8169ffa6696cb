package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

// checkSeedProducts inserts a handful of demo listings when the
// catalog is empty, so a fresh install has something to show.
func (a *Application) checkSeedProducts() {
	ctx := context.Background()

	existing, err := a.store.FindMany(ctx, domain.ProductFilter{})
	if err != nil {
		zap.L().Error("failed to check existing products", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}

	seeds := []domain.Product{
		{
			Name: "iPhone 16 Pro Max", Model: "16", Type: "pro-max",
			Storage: "256GB", Color: "Titanio Natural",
			Condition: domain.ConditionSealed, BatteryHealth: 100,
			PriceARS: 2500000, PriceUSD: 1450,
			ScreenSize: "6.9\"", Chip: "A18 Pro", Camera: "48MP Triple",
			Features:  []string{"Dynamic Island", "Always-On Display", "USB-C"},
			Available: true, WarrantyMonths: 12, Category: "iphone",
		},
		{
			Name: "iPhone 15", Model: "15", Type: "normal",
			Storage: "128GB", Color: "Azul",
			Condition: domain.ConditionExcellent, BatteryHealth: 92,
			PriceARS: 1400000, PriceUSD: 820,
			ScreenSize: "6.1\"", Chip: "A16 Bionic", Camera: "48MP Dual",
			Features:  []string{"Dynamic Island", "USB-C"},
			Available: true, WarrantyMonths: 6, Category: "iphone",
		},
		{
			Name: "iPhone 14 Pro", Model: "14", Type: "pro",
			Storage: "256GB", Color: "Morado Oscuro",
			Condition: domain.ConditionLikeNew, BatteryHealth: 95,
			PriceARS: 1600000, PriceUSD: 930,
			ScreenSize: "6.1\"", Chip: "A16 Bionic", Camera: "48MP Triple",
			Features:  []string{"Dynamic Island", "ProMotion 120Hz"},
			Available: true, WarrantyMonths: 6, Category: "iphone",
		},
	}

	for _, seed := range seeds {
		if _, err := a.catalog.Create(ctx, seed); err != nil {
			zap.L().Error("failed to seed product", zap.String("name", seed.Name), zap.Error(err))
			continue
		}
		zap.L().Info("seeded product", zap.String("name", seed.Name))
	}
}
