package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/inventory"
	"github.com/stockdash/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Get(ctx context.Context, id string) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Insert(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockCatalog is a mock implementation of inventory.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListCategories(ctx context.Context) ([]inventory.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Category), args.Error(1)
}

func (m *MockCatalog) GetCategory(ctx context.Context, id string) (inventory.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(inventory.Category), args.Error(1)
}

func (m *MockCatalog) GetSupplier(ctx context.Context, id string) (inventory.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(inventory.Supplier), args.Error(1)
}

var (
	electronics = inventory.Category{ID: "1", Name: "Electronics", Color: "#3B82F6"}
	office      = inventory.Category{ID: "2", Name: "Office Supplies", Color: "#10B981"}
	furniture   = inventory.Category{ID: "4", Name: "Furniture", Color: "#8B5CF6"}
	fixedNow    = time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
)

func testItem(id, name string, category inventory.Category, qty, reorder int, cost string) inventory.Item {
	return inventory.Item{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         name,
		Category:     category,
		Type:         inventory.ItemTypeProduct,
		Quantity:     qty,
		Unit:         "units",
		UnitCost:     decimal.RequireFromString(cost),
		ReorderPoint: reorder,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testItems() []inventory.Item {
	return []inventory.Item{
		testItem("1", "Laptop", electronics, 15, 5, "899.99"),
		testItem("2", "Paper", office, 0, 50, "4.99"),
		testItem("3", "Cable", electronics, 20, 20, "3.99"),
	}
}

func newTestService(repo *MockItemRepository, catalog *MockCatalog) *InventoryService {
	svc := NewInventoryService(repo, catalog)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status and reports derived status", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("List", mock.Anything).Return(testItems(), nil)

		result, err := newTestService(repo, new(MockCatalog)).List(ctx, ListInput{Status: "low_stock"})

		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Cable", result.Items[0].Name)
		assert.Equal(t, inventory.StatusLowStock, result.Items[0].Status)
		assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, result.Pagination)
	})

	t.Run("non-numeric page and limit fall back to defaults", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("List", mock.Anything).Return(testItems(), nil)

		result, err := newTestService(repo, new(MockCatalog)).List(ctx, ListInput{Page: "abc", Limit: "x"})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pagination.Page)
		assert.Equal(t, 10, result.Pagination.Limit)
		assert.Len(t, result.Items, 3)
	})

	t.Run("clamps zero limit to one", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("List", mock.Anything).Return(testItems(), nil)

		result, err := newTestService(repo, new(MockCatalog)).List(ctx, ListInput{Limit: "0", SortBy: "quantity", SortOrder: "desc"})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Pagination.Limit)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, "Cable", result.Items[0].Name)
	})

	t.Run("out of range page is empty, not nil", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("List", mock.Anything).Return(testItems(), nil)

		result, err := newTestService(repo, new(MockCatalog)).List(ctx, ListInput{Page: "5"})

		require.NoError(t, err)
		assert.NotNil(t, result.Items)
		assert.Empty(t, result.Items)
		assert.Equal(t, 3, result.Pagination.Total)
	})

	invalid := []struct {
		name  string
		input ListInput
		msg   string
	}{
		{"unknown sortBy", ListInput{SortBy: "price"}, "sortBy must be one of"},
		{"unknown sortOrder", ListInput{SortOrder: "sideways"}, "sortOrder must be one of"},
		{"unknown type", ListInput{Type: "service"}, "type must be one of"},
		{"unknown status", ListInput{Status: "gone"}, "status must be one of"},
		{"non-numeric minQuantity", ListInput{MinQuantity: "ten"}, "minQuantity must be an integer"},
		{"non-numeric maxQuantity", ListInput{MaxQuantity: "1.5"}, "maxQuantity must be an integer"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockItemRepository)

			_, err := newTestService(repo, new(MockCatalog)).List(ctx, tt.input)

			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
			repo.AssertNotCalled(t, "List", mock.Anything)
		})
	}

	t.Run("repository failure", func(t *testing.T) {
		repo := new(MockItemRepository)
		boom := errors.New("db down")
		repo.On("List", mock.Anything).Return(nil, boom)

		_, err := newTestService(repo, new(MockCatalog)).List(ctx, ListInput{})

		assert.ErrorIs(t, err, boom)
	})
}

func TestInventoryService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	item := testItems()[0]
	repo.On("Get", ctx, "1").Return(&item, nil)
	repo.On("Get", ctx, "9").Return(nil, inventory.ErrItemNotFound)
	svc := newTestService(repo, new(MockCatalog))

	resp, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", resp.Name)
	assert.Equal(t, inventory.StatusInStock, resp.Status)

	_, err = svc.Get(ctx, "9")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func validCreateInput() CreateItemInput {
	qty := 4
	cost := decimal.RequireFromString("35.50")
	return CreateItemInput{
		Name:       "Desk Lamp",
		CategoryID: "4",
		Type:       "product",
		Quantity:   &qty,
		Unit:       "units",
		UnitCost:   &cost,
		SupplierID: "4",
	}
}

func TestInventoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item with resolved references", func(t *testing.T) {
		repo := new(MockItemRepository)
		catalog := new(MockCatalog)
		catalog.On("GetCategory", mock.Anything, "4").Return(furniture, nil)
		catalog.On("GetSupplier", mock.Anything, "4").Return(inventory.Supplier{ID: "4", Name: "Office Furniture Plus"}, nil)
		repo.On("Insert", mock.Anything, mock.AnythingOfType("*inventory.Item")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*inventory.Item).AssignDefaults(6)
			}).
			Return(nil)

		resp, err := newTestService(repo, catalog).Create(ctx, validCreateInput())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "SKU006", resp.SKU)
		assert.Equal(t, "AUTO1733047200000", resp.Barcode)
		assert.Equal(t, furniture, resp.Category)
		assert.Equal(t, "Office Furniture Plus", resp.Supplier.Name)
		assert.Equal(t, fixedNow, resp.CreatedAt)
		assert.Equal(t, fixedNow, resp.UpdatedAt)
		assert.Equal(t, inventory.StatusInStock, resp.Status)
		assert.Equal(t, 0, resp.ReorderPoint)
		repo.AssertExpectations(t)
	})

	t.Run("zero quantity counts as present", func(t *testing.T) {
		repo := new(MockItemRepository)
		catalog := new(MockCatalog)
		catalog.On("GetCategory", mock.Anything, "4").Return(furniture, nil)
		catalog.On("GetSupplier", mock.Anything, "4").Return(inventory.Supplier{ID: "4"}, nil)
		repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

		in := validCreateInput()
		zero := 0
		in.Quantity = &zero
		resp, err := newTestService(repo, catalog).Create(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, inventory.StatusOutOfStock, resp.Status)
	})

	t.Run("lists every missing field", func(t *testing.T) {
		repo := new(MockItemRepository)

		_, err := newTestService(repo, new(MockCatalog)).Create(ctx, CreateItemInput{Name: "Lamp", Type: "product"})

		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Equal(t, "Missing required fields: categoryId, quantity, unit, unitCost", err.Error())
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("unknown category is a validation error", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("GetCategory", mock.Anything, "4").Return(inventory.Category{}, inventory.ErrCategoryNotFound)

		_, err := newTestService(new(MockItemRepository), catalog).Create(ctx, validCreateInput())

		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "Unknown category")
	})

	t.Run("unknown supplier is a validation error", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("GetCategory", mock.Anything, "4").Return(furniture, nil)
		catalog.On("GetSupplier", mock.Anything, "4").Return(inventory.Supplier{}, inventory.ErrSupplierNotFound)

		_, err := newTestService(new(MockItemRepository), catalog).Create(ctx, validCreateInput())

		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "Unknown supplier")
	})

	t.Run("unknown type", func(t *testing.T) {
		in := validCreateInput()
		in.Type = "service"

		_, err := newTestService(new(MockItemRepository), new(MockCatalog)).Create(ctx, in)

		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("negative quantity", func(t *testing.T) {
		catalog := new(MockCatalog)
		catalog.On("GetCategory", mock.Anything, "4").Return(furniture, nil)
		catalog.On("GetSupplier", mock.Anything, "4").Return(inventory.Supplier{ID: "4"}, nil)
		in := validCreateInput()
		neg := -1
		in.Quantity = &neg

		_, err := newTestService(new(MockItemRepository), catalog).Create(ctx, in)

		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "Quantity cannot be negative")
	})
}

func TestInventoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial update and bumps updatedAt", func(t *testing.T) {
		repo := new(MockItemRepository)
		catalog := new(MockCatalog)
		item := testItems()[0]
		repo.On("Get", mock.Anything, "1").Return(&item, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)
		catalog.On("GetCategory", mock.Anything, "2").Return(office, nil)

		qty := 2
		categoryID := "2"
		resp, err := newTestService(repo, catalog).Update(ctx, "1", UpdateItemInput{Quantity: &qty, CategoryID: &categoryID})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Quantity)
		assert.Equal(t, office, resp.Category)
		assert.Equal(t, "Laptop", resp.Name)
		assert.Equal(t, fixedNow, resp.UpdatedAt)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), resp.CreatedAt)
		assert.Equal(t, inventory.StatusLowStock, resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("Get", mock.Anything, "9").Return(nil, inventory.ErrItemNotFound)

		_, err := newTestService(repo, new(MockCatalog)).Update(ctx, "9", UpdateItemInput{})

		assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	})

	t.Run("invalid update is not stored", func(t *testing.T) {
		repo := new(MockItemRepository)
		item := testItems()[0]
		repo.On("Get", mock.Anything, "1").Return(&item, nil)

		neg := -3
		_, err := newTestService(repo, new(MockCatalog)).Update(ctx, "1", UpdateItemInput{ReorderPoint: &neg})

		assert.ErrorIs(t, err, shared.ErrValidation)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("empty supplier id clears the supplier", func(t *testing.T) {
		repo := new(MockItemRepository)
		catalog := new(MockCatalog)
		item := testItems()[0]
		item.Supplier = &inventory.Supplier{ID: "4", Name: "Office Furniture Plus"}
		repo.On("Get", mock.Anything, "1").Return(&item, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

		none := ""
		resp, err := newTestService(repo, catalog).Update(ctx, "1", UpdateItemInput{SupplierID: &none})

		require.NoError(t, err)
		assert.Nil(t, resp.Supplier)
		catalog.AssertNotCalled(t, "GetSupplier", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("omitted supplier id keeps the supplier", func(t *testing.T) {
		repo := new(MockItemRepository)
		item := testItems()[0]
		item.Supplier = &inventory.Supplier{ID: "4", Name: "Office Furniture Plus"}
		repo.On("Get", mock.Anything, "1").Return(&item, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

		name := "Laptop Pro"
		resp, err := newTestService(repo, new(MockCatalog)).Update(ctx, "1", UpdateItemInput{Name: &name})

		require.NoError(t, err)
		require.NotNil(t, resp.Supplier)
		assert.Equal(t, "4", resp.Supplier.ID)
	})

	t.Run("unknown type", func(t *testing.T) {
		repo := new(MockItemRepository)
		item := testItems()[0]
		repo.On("Get", mock.Anything, "1").Return(&item, nil)

		bad := "service"
		_, err := newTestService(repo, new(MockCatalog)).Update(ctx, "1", UpdateItemInput{Type: &bad})

		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestInventoryService_Summary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	catalog := new(MockCatalog)
	items := append(testItems(), testItem("4", "Chair", inventory.Category{ID: "7", Name: "Seating"}, 1, 0, "10"))
	repo.On("List", mock.Anything).Return(items, nil)
	catalog.On("ListCategories", mock.Anything).Return([]inventory.Category{electronics, office, furniture}, nil)

	summary, err := newTestService(repo, catalog).Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalItems)
	assert.Equal(t, 36, summary.TotalQuantity)
	// 15*899.99 + 0*4.99 + 20*3.99 + 1*10
	assert.True(t, decimal.RequireFromString("13589.65").Equal(summary.TotalValue), summary.TotalValue.String())
	assert.Equal(t, 2, summary.InStockItems)
	assert.Equal(t, 1, summary.LowStockItems)
	assert.Equal(t, 1, summary.OutOfStockItems)

	require.Len(t, summary.CategoryDistribution, 4)
	elec := summary.CategoryDistribution[0]
	assert.Equal(t, "Electronics", elec.Category)
	assert.Equal(t, 2, elec.Count)
	assert.Equal(t, 50.0, elec.Percentage)
	assert.Equal(t, 0, summary.CategoryDistribution[2].Count)
	assert.Equal(t, "Seating", summary.CategoryDistribution[3].Category)
	assert.Equal(t, 25.0, summary.CategoryDistribution[3].Percentage)
}

func TestInventoryService_SummaryEmpty(t *testing.T) {
	repo := new(MockItemRepository)
	catalog := new(MockCatalog)
	repo.On("List", mock.Anything).Return([]inventory.Item{}, nil)
	catalog.On("ListCategories", mock.Anything).Return([]inventory.Category{electronics}, nil)

	summary, err := newTestService(repo, catalog).Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalItems)
	assert.True(t, summary.TotalValue.IsZero())
	assert.Equal(t, 0.0, summary.CategoryDistribution[0].Percentage)
}

func TestInventoryService_Categories(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("ListCategories", mock.Anything).Return([]inventory.Category{electronics, office}, nil)

	categories, err := newTestService(new(MockItemRepository), catalog).Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []inventory.Category{electronics, office}, categories)
}
