package inventory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/inventory"
)

// ListInput carries the raw listing parameters as received from the client
type ListInput struct {
	Query       string
	CategoryID  string
	Type        string
	Status      string
	MinQuantity string
	MaxQuantity string
	SortBy      string
	SortOrder   string
	Page        string
	Limit       string
}

// ItemResponse is the API view of an inventory item
type ItemResponse struct {
	ID           string                `json:"id"`
	SKU          string                `json:"sku"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     inventory.Category    `json:"category"`
	Type         inventory.ItemType    `json:"type"`
	Quantity     int                   `json:"quantity"`
	Unit         string                `json:"unit"`
	UnitCost     decimal.Decimal       `json:"unitCost"`
	SellingPrice *decimal.Decimal      `json:"sellingPrice,omitempty"`
	Supplier     *inventory.Supplier   `json:"supplier,omitempty"`
	Location     string                `json:"location,omitempty"`
	ReorderPoint int                   `json:"reorderPoint"`
	Barcode      string                `json:"barcode,omitempty"`
	Status       inventory.StockStatus `json:"status"`
	TotalValue   decimal.Decimal       `json:"totalValue"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// Pagination describes the page of a listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResult is one page of items
type ListResult struct {
	Items      []ItemResponse
	Pagination Pagination
}

// CreateItemInput is the payload for creating an item.
// Pointer fields distinguish "absent" from zero.
type CreateItemInput struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	CategoryID   string           `json:"categoryId"`
	Type         string           `json:"type"`
	Quantity     *int             `json:"quantity"`
	Unit         string           `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	SupplierID   string           `json:"supplierId"`
	Location     string           `json:"location"`
	ReorderPoint *int             `json:"reorderPoint"`
	Barcode      string           `json:"barcode"`
}

// UpdateItemInput is the payload for a partial update; nil fields are kept.
// An empty supplierId removes the supplier.
type UpdateItemInput struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	CategoryID   *string          `json:"categoryId"`
	Type         *string          `json:"type"`
	Quantity     *int             `json:"quantity"`
	Unit         *string          `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unitCost"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	SupplierID   *string          `json:"supplierId"`
	Location     *string          `json:"location"`
	ReorderPoint *int             `json:"reorderPoint"`
	Barcode      *string          `json:"barcode"`
}

// CategoryMetric is one slice of the category distribution
type CategoryMetric struct {
	CategoryID string          `json:"categoryId"`
	Category   string          `json:"category"`
	Color      string          `json:"color"`
	Count      int             `json:"count"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

// SummaryResponse holds the dashboard metrics
type SummaryResponse struct {
	TotalItems           int              `json:"totalItems"`
	TotalQuantity        int              `json:"totalQuantity"`
	TotalValue           decimal.Decimal  `json:"totalValue"`
	InStockItems         int              `json:"inStockItems"`
	LowStockItems        int              `json:"lowStockItems"`
	OutOfStockItems      int              `json:"outOfStockItems"`
	CategoryDistribution []CategoryMetric `json:"categoryDistribution"`
}

// ToItemResponse maps a domain item to its API view
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		SKU:          item.SKU,
		Name:         item.Name,
		Description:  item.Description,
		Category:     item.Category,
		Type:         item.Type,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		UnitCost:     item.UnitCost,
		SellingPrice: item.SellingPrice,
		Supplier:     item.Supplier,
		Location:     item.Location,
		ReorderPoint: item.ReorderPoint,
		Barcode:      item.Barcode,
		Status:       item.Status(),
		TotalValue:   item.TotalValue(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
