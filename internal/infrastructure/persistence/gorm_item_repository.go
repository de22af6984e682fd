package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockdash/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// List returns all items ordered by creation time
func (r *GormItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	var rows []ItemModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	items := make([]inventory.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

// Get finds an item by id
func (r *GormItemRepository) Get(ctx context.Context, id string) (*inventory.Item, error) {
	var row ItemModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	item := row.ToDomain()
	return &item, nil
}

// Insert counts existing rows and stores the item in one transaction so the
// default SKU ordinal matches the row count.
func (r *GormItemRepository) Insert(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ItemModel{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		item.AssignDefaults(int(count) + 1)
		if err := tx.Create(ItemModelFromDomain(item)).Error; err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
		return nil
	})
}

// Update overwrites every column of the stored item
func (r *GormItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("id").
		Updates(ItemModelFromDomain(item))
	if result.Error != nil {
		return fmt.Errorf("update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}
