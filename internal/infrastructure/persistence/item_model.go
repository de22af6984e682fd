package persistence

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/inventory"
)

// ItemModel is the persistence model for inventory items.
// Category and supplier are denormalized onto the row.
type ItemModel struct {
	ID            string              `gorm:"type:varchar(64);primaryKey"`
	SKU           string              `gorm:"type:varchar(64);not null;index"`
	Name          string              `gorm:"type:varchar(200);not null"`
	Description   string              `gorm:"type:text"`
	CategoryID    string              `gorm:"type:varchar(64);not null;index"`
	CategoryName  string              `gorm:"type:varchar(100);not null"`
	CategoryColor string              `gorm:"type:varchar(16)"`
	Type          string              `gorm:"type:varchar(20);not null"`
	Quantity      int                 `gorm:"not null;default:0"`
	Unit          string              `gorm:"type:varchar(32);not null"`
	UnitCost      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	SellingPrice  decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	SupplierID    *string             `gorm:"type:varchar(64)"`
	SupplierName  *string             `gorm:"type:varchar(100)"`
	Location      string              `gorm:"type:varchar(100)"`
	ReorderPoint  int                 `gorm:"not null;default:0"`
	Barcode       string              `gorm:"type:varchar(64)"`
	CreatedAt     time.Time           `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time           `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the row to a domain item
func (m *ItemModel) ToDomain() inventory.Item {
	item := inventory.Item{
		ID:          m.ID,
		SKU:         m.SKU,
		Name:        m.Name,
		Description: m.Description,
		Category: inventory.Category{
			ID:    m.CategoryID,
			Name:  m.CategoryName,
			Color: m.CategoryColor,
		},
		Type:         inventory.ItemType(m.Type),
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		UnitCost:     m.UnitCost,
		Location:     m.Location,
		ReorderPoint: m.ReorderPoint,
		Barcode:      m.Barcode,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.SellingPrice.Valid {
		p := m.SellingPrice.Decimal
		item.SellingPrice = &p
	}
	if m.SupplierID != nil {
		item.Supplier = &inventory.Supplier{ID: *m.SupplierID}
		if m.SupplierName != nil {
			item.Supplier.Name = *m.SupplierName
		}
	}
	return item
}

// ItemModelFromDomain converts a domain item to a row
func ItemModelFromDomain(item *inventory.Item) *ItemModel {
	m := &ItemModel{
		ID:            item.ID,
		SKU:           item.SKU,
		Name:          item.Name,
		Description:   item.Description,
		CategoryID:    item.Category.ID,
		CategoryName:  item.Category.Name,
		CategoryColor: item.Category.Color,
		Type:          string(item.Type),
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		UnitCost:      item.UnitCost,
		Location:      item.Location,
		ReorderPoint:  item.ReorderPoint,
		Barcode:       item.Barcode,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.SellingPrice != nil {
		m.SellingPrice = decimal.NewNullDecimal(*item.SellingPrice)
	}
	if item.Supplier != nil {
		id, name := item.Supplier.ID, item.Supplier.Name
		m.SupplierID = &id
		m.SupplierName = &name
	}
	return m
}
