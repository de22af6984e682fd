package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/inventory"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func price(s string) *decimal.Decimal {
	p := decimal.RequireFromString(s)
	return &p
}

// DemoItems returns the demo inventory the dashboard starts with
func DemoItems() []inventory.Item {
	categories := DemoCategories()
	suppliers := DemoSuppliers()
	supplier := func(i int) *inventory.Supplier {
		s := suppliers[i]
		return &s
	}

	return []inventory.Item{
		{
			ID: "1", SKU: "LAP001", Name: "Laptop Model X1",
			Description: "High-performance laptop for office use",
			Category:    categories[0], Type: inventory.ItemTypeEquipment,
			Quantity: 15, Unit: "units",
			UnitCost: decimal.RequireFromString("899.99"), SellingPrice: price("1299.99"),
			Supplier: supplier(0), Location: "Warehouse A", ReorderPoint: 5, Barcode: "1234567890",
			CreatedAt: day(2024, time.January, 15), UpdatedAt: day(2024, time.December, 1),
		},
		{
			ID: "2", SKU: "PAP001", Name: "Office Paper A4",
			Description: "Standard office paper",
			Category:    categories[1], Type: inventory.ItemTypeProduct,
			Quantity: 250, Unit: "reams",
			UnitCost: decimal.RequireFromString("4.99"), SellingPrice: price("7.99"),
			Supplier: supplier(1), Location: "Storage Room B", ReorderPoint: 50, Barcode: "2345678901",
			CreatedAt: day(2024, time.February, 20), UpdatedAt: day(2024, time.November, 28),
		},
		{
			ID: "3", SKU: "CAB001", Name: "Ethernet Cable",
			Description: "Cat6 Ethernet cable 10ft",
			Category:    categories[0], Type: inventory.ItemTypeProduct,
			Quantity: 100, Unit: "pieces",
			UnitCost: decimal.RequireFromString("3.99"), SellingPrice: price("9.99"),
			Supplier: supplier(0), Location: "Warehouse A", ReorderPoint: 20, Barcode: "3456789012",
			CreatedAt: day(2024, time.March, 10), UpdatedAt: day(2024, time.December, 5),
		},
		{
			ID: "4", SKU: "RAW001", Name: "Steel Sheets",
			Description: "Raw steel sheets for manufacturing",
			Category:    categories[2], Type: inventory.ItemTypeRawMaterial,
			Quantity: 45, Unit: "sheets",
			UnitCost: decimal.RequireFromString("45.00"),
			Supplier: supplier(2), Location: "Factory Floor", ReorderPoint: 10, Barcode: "4567890123",
			CreatedAt: day(2024, time.January, 5), UpdatedAt: day(2024, time.December, 8),
		},
		{
			ID: "5", SKU: "DES001", Name: "Standing Desk",
			Description: "Adjustable standing desk with memory presets",
			Category:    categories[3], Type: inventory.ItemTypeEquipment,
			Quantity: 8, Unit: "units",
			UnitCost: decimal.RequireFromString("599.99"), SellingPrice: price("899.99"),
			Supplier: supplier(3), Location: "Showroom", ReorderPoint: 3, Barcode: "5678901234",
			CreatedAt: day(2024, time.April, 15), UpdatedAt: day(2024, time.December, 6),
		},
	}
}

// Seed inserts the demo inventory into an empty repository
func Seed(ctx context.Context, repo inventory.ItemRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, item := range DemoItems() {
		if err := repo.Insert(ctx, &item); err != nil {
			return fmt.Errorf("seed item %s: %w", item.SKU, err)
		}
	}
	return nil
}
