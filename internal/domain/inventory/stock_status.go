package inventory

import "github.com/stockdash/backend/internal/domain/shared"

// StockStatus is the derived stock level classification of an item.
// It is never stored; every read recomputes it from quantity and reorder point.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// IsValid reports whether s is one of the known statuses
func (s StockStatus) IsValid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock:
		return true
	}
	return false
}

// String returns the status as a string
func (s StockStatus) String() string {
	return string(s)
}

// ParseStockStatus parses a status name, rejecting unknown values
func ParseStockStatus(s string) (StockStatus, error) {
	status := StockStatus(s)
	if !status.IsValid() {
		return "", shared.NewValidationError("status must be one of: in_stock, low_stock, out_of_stock")
	}
	return status, nil
}

// Classify maps a quantity and reorder point to a stock status.
// Zero quantity is out of stock regardless of the reorder point.
func Classify(quantity, reorderPoint int) StockStatus {
	if quantity == 0 {
		return StatusOutOfStock
	}
	if quantity <= reorderPoint {
		return StatusLowStock
	}
	return StatusInStock
}
