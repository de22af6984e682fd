package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/shared"
)

// ItemType is the kind of stock an item represents
type ItemType string

const (
	ItemTypeProduct     ItemType = "product"
	ItemTypeRawMaterial ItemType = "raw_material"
	ItemTypeEquipment   ItemType = "equipment"
)

// IsValid reports whether t is one of the three item types
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeProduct, ItemTypeRawMaterial, ItemTypeEquipment:
		return true
	}
	return false
}

// ParseItemType parses an item type name, rejecting unknown values
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.IsValid() {
		return "", shared.NewValidationError("type must be one of: product, raw_material, equipment")
	}
	return t, nil
}

// Category groups items for filtering and charts
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Supplier is the vendor an item is bought from
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a single stock record
type Item struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	Category     Category
	Type         ItemType
	Quantity     int
	Unit         string
	UnitCost     decimal.Decimal
	SellingPrice *decimal.Decimal
	Supplier     *Supplier
	Location     string
	ReorderPoint int
	Barcode      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItemInput holds the caller-supplied fields of a new item
type NewItemInput struct {
	SKU          string
	Name         string
	Description  string
	Category     Category
	Type         ItemType
	Quantity     int
	Unit         string
	UnitCost     decimal.Decimal
	SellingPrice *decimal.Decimal
	Supplier     *Supplier
	Location     string
	ReorderPoint int
	Barcode      string
}

// NewItem creates a validated item with a fresh id.
// SKU and barcode may be left empty; AssignDefaults fills them on insert.
func NewItem(in NewItemInput, now time.Time) (*Item, error) {
	item := &Item{
		ID:           uuid.NewString(),
		SKU:          strings.TrimSpace(in.SKU),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Category:     in.Category,
		Type:         in.Type,
		Quantity:     in.Quantity,
		Unit:         strings.TrimSpace(in.Unit),
		UnitCost:     in.UnitCost,
		SellingPrice: in.SellingPrice,
		Supplier:     in.Supplier,
		Location:     in.Location,
		ReorderPoint: in.ReorderPoint,
		Barcode:      strings.TrimSpace(in.Barcode),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the item invariants
func (i *Item) Validate() error {
	if len(i.Name) < 2 {
		return shared.NewValidationError("Item name must be at least 2 characters long")
	}
	if i.Category.ID == "" {
		return shared.NewValidationError("Category is required")
	}
	if !i.Type.IsValid() {
		return shared.NewValidationError("type must be one of: product, raw_material, equipment")
	}
	if i.Unit == "" {
		return shared.NewValidationError("Unit is required")
	}
	if i.Quantity < 0 {
		return shared.NewValidationError("Quantity cannot be negative")
	}
	if i.UnitCost.IsNegative() {
		return shared.NewValidationError("Unit cost cannot be negative")
	}
	if i.SellingPrice != nil && i.SellingPrice.IsNegative() {
		return shared.NewValidationError("Selling price cannot be negative")
	}
	if i.ReorderPoint < 0 {
		return shared.NewValidationError("Reorder point cannot be negative")
	}
	return nil
}

// AssignDefaults fills an empty SKU from the item's ordinal position in the
// collection and an empty barcode from the creation instant.
func (i *Item) AssignDefaults(ordinal int) {
	if i.SKU == "" {
		i.SKU = fmt.Sprintf("SKU%03d", ordinal)
	}
	if i.Barcode == "" {
		i.Barcode = fmt.Sprintf("AUTO%d", i.CreatedAt.UnixMilli())
	}
}

// Status returns the derived stock status
func (i *Item) Status() StockStatus {
	return Classify(i.Quantity, i.ReorderPoint)
}

// TotalValue returns quantity multiplied by unit cost
func (i *Item) TotalValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a deep copy so callers never share pointers with a store
func (i *Item) Clone() Item {
	c := *i
	if i.SellingPrice != nil {
		price := *i.SellingPrice
		c.SellingPrice = &price
	}
	if i.Supplier != nil {
		supplier := *i.Supplier
		c.Supplier = &supplier
	}
	return c
}

// ItemUpdate carries a partial update; nil fields are left unchanged
type ItemUpdate struct {
	Name         *string
	Description  *string
	Category     *Category
	Type         *ItemType
	Quantity     *int
	Unit         *string
	UnitCost     *decimal.Decimal
	SellingPrice *decimal.Decimal
	Supplier     *Supplier
	Location     *string
	ReorderPoint *int
	Barcode      *string

	// ClearSupplier removes the supplier; it wins over Supplier
	ClearSupplier bool
}

// Apply applies the update and bumps UpdatedAt.
// The item is left untouched when the result would violate an invariant.
func (i *Item) Apply(u ItemUpdate, now time.Time) error {
	next := i.Clone()
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		next.Description = *u.Description
	}
	if u.Category != nil {
		next.Category = *u.Category
	}
	if u.Type != nil {
		next.Type = *u.Type
	}
	if u.Quantity != nil {
		next.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		next.Unit = strings.TrimSpace(*u.Unit)
	}
	if u.UnitCost != nil {
		next.UnitCost = *u.UnitCost
	}
	if u.SellingPrice != nil {
		price := *u.SellingPrice
		next.SellingPrice = &price
	}
	switch {
	case u.ClearSupplier:
		next.Supplier = nil
	case u.Supplier != nil:
		supplier := *u.Supplier
		next.Supplier = &supplier
	}
	if u.Location != nil {
		next.Location = *u.Location
	}
	if u.ReorderPoint != nil {
		next.ReorderPoint = *u.ReorderPoint
	}
	if u.Barcode != nil {
		next.Barcode = strings.TrimSpace(*u.Barcode)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*i = next
	return nil
}
