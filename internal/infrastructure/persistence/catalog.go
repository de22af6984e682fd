package persistence

import (
	"context"

	"github.com/stockdash/backend/internal/domain/inventory"
)

// DemoCategories are the categories of the demo catalog
func DemoCategories() []inventory.Category {
	return []inventory.Category{
		{ID: "1", Name: "Electronics", Color: "#3B82F6"},
		{ID: "2", Name: "Office Supplies", Color: "#10B981"},
		{ID: "3", Name: "Raw Materials", Color: "#F59E0B"},
		{ID: "4", Name: "Furniture", Color: "#8B5CF6"},
	}
}

// DemoSuppliers are the suppliers of the demo catalog
func DemoSuppliers() []inventory.Supplier {
	return []inventory.Supplier{
		{ID: "1", Name: "Tech Supplies Inc"},
		{ID: "2", Name: "Office Depot"},
		{ID: "3", Name: "Metal Works Co"},
		{ID: "4", Name: "Office Furniture Plus"},
	}
}

// StaticCatalog is a read-only category and supplier table
type StaticCatalog struct {
	categories []inventory.Category
	suppliers  []inventory.Supplier
}

// NewStaticCatalog creates a catalog over the given categories and suppliers
func NewStaticCatalog(categories []inventory.Category, suppliers []inventory.Supplier) *StaticCatalog {
	return &StaticCatalog{
		categories: append([]inventory.Category(nil), categories...),
		suppliers:  append([]inventory.Supplier(nil), suppliers...),
	}
}

// ListCategories implements inventory.Catalog
func (c *StaticCatalog) ListCategories(ctx context.Context) ([]inventory.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]inventory.Category(nil), c.categories...), nil
}

// GetCategory implements inventory.Catalog
func (c *StaticCatalog) GetCategory(ctx context.Context, id string) (inventory.Category, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Category{}, err
	}
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return inventory.Category{}, inventory.ErrCategoryNotFound
}

// GetSupplier implements inventory.Catalog
func (c *StaticCatalog) GetSupplier(ctx context.Context, id string) (inventory.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Supplier{}, err
	}
	for _, s := range c.suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return inventory.Supplier{}, inventory.ErrSupplierNotFound
}
