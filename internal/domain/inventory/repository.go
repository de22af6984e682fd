package inventory

import (
	"context"

	"github.com/stockdash/backend/internal/domain/shared"
)

// ErrItemNotFound is returned when an item id does not exist
var ErrItemNotFound = shared.NewNotFoundError("Item not found")

// ErrCategoryNotFound is returned when a category id does not exist
var ErrCategoryNotFound = shared.NewNotFoundError("Category not found")

// ErrSupplierNotFound is returned when a supplier id does not exist
var ErrSupplierNotFound = shared.NewNotFoundError("Supplier not found")

// ItemRepository stores inventory items.
// List returns a snapshot: callers own the returned slice and may not observe
// later writes through it.
type ItemRepository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	// Insert assigns defaults via Item.AssignDefaults and stores the item.
	Insert(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}

// Catalog resolves the categories and suppliers items refer to
type Catalog interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (Category, error)
	GetSupplier(ctx context.Context, id string) (Supplier, error)
}
