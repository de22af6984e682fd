package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockdash/backend/internal/domain/inventory"
	"github.com/stockdash/backend/internal/domain/shared"
	"github.com/stockdash/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/stockdash/backend/internal/application/inventory"

// InventoryService handles inventory use cases
type InventoryService struct {
	items   inventory.ItemRepository
	catalog inventory.Catalog
	tracer  trace.Tracer
	now     func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(items inventory.ItemRepository, catalog inventory.Catalog) *InventoryService {
	return &InventoryService{
		items:   items,
		catalog: catalog,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

// List runs a filtered, sorted and paginated query over a repository snapshot
func (s *InventoryService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.List")
	defer span.End()

	spec, err := toQuerySpec(input)
	if err != nil {
		return nil, err
	}

	records, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	result := inventory.Query(records, spec)
	span.SetAttributes(
		attribute.Int("inventory.total", result.Total),
		attribute.String("inventory.sort_by", string(spec.SortBy)),
	)

	items := make([]ItemResponse, len(result.Items))
	for i := range result.Items {
		items[i] = ToItemResponse(&result.Items[i])
	}
	return &ListResult{
		Items: items,
		Pagination: Pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// Get returns a single item
func (s *InventoryService) Get(ctx context.Context, id string) (*ItemResponse, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Create validates the payload, resolves references and stores a new item
func (s *InventoryService) Create(ctx context.Context, input CreateItemInput) (*ItemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Create")
	defer span.End()

	if missing := missingFields(input); len(missing) > 0 {
		return nil, shared.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	itemType, err := inventory.ParseItemType(input.Type)
	if err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.resolveSupplier(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}

	reorderPoint := 0
	if input.ReorderPoint != nil {
		reorderPoint = *input.ReorderPoint
	}

	item, err := inventory.NewItem(inventory.NewItemInput{
		SKU:          input.SKU,
		Name:         input.Name,
		Description:  input.Description,
		Category:     category,
		Type:         itemType,
		Quantity:     *input.Quantity,
		Unit:         input.Unit,
		UnitCost:     *input.UnitCost,
		SellingPrice: input.SellingPrice,
		Supplier:     supplier,
		Location:     input.Location,
		ReorderPoint: reorderPoint,
		Barcode:      input.Barcode,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.items.Insert(ctx, item); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Inventory item created",
		zap.String("item_id", item.ID),
		zap.String("sku", item.SKU),
	)
	resp := ToItemResponse(item)
	return &resp, nil
}

// Update applies a partial update to an existing item
func (s *InventoryService) Update(ctx context.Context, id string, input UpdateItemInput) (*ItemResponse, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Update")
	defer span.End()

	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update, err := s.toItemUpdate(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := item.Apply(update, s.now()); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("Inventory item updated", zap.String("item_id", item.ID))
	resp := ToItemResponse(item)
	return &resp, nil
}

// Summary computes the dashboard metrics over the whole collection
func (s *InventoryService) Summary(ctx context.Context) (*SummaryResponse, error) {
	records, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SummaryResponse{
		TotalItems:           len(records),
		TotalValue:           decimal.Zero,
		CategoryDistribution: []CategoryMetric{},
	}

	slots := make(map[string]int, len(categories))
	for _, c := range categories {
		slots[c.ID] = len(summary.CategoryDistribution)
		summary.CategoryDistribution = append(summary.CategoryDistribution, CategoryMetric{
			CategoryID: c.ID, Category: c.Name, Color: c.Color, Value: decimal.Zero,
		})
	}

	for i := range records {
		item := &records[i]
		value := item.TotalValue()
		summary.TotalQuantity += item.Quantity
		summary.TotalValue = summary.TotalValue.Add(value)
		switch item.Status() {
		case inventory.StatusInStock:
			summary.InStockItems++
		case inventory.StatusLowStock:
			summary.LowStockItems++
		case inventory.StatusOutOfStock:
			summary.OutOfStockItems++
		}

		idx, ok := slots[item.Category.ID]
		if !ok {
			idx = len(summary.CategoryDistribution)
			slots[item.Category.ID] = idx
			summary.CategoryDistribution = append(summary.CategoryDistribution, CategoryMetric{
				CategoryID: item.Category.ID, Category: item.Category.Name, Color: item.Category.Color, Value: decimal.Zero,
			})
		}
		metric := &summary.CategoryDistribution[idx]
		metric.Count++
		metric.Value = metric.Value.Add(value)
	}

	if summary.TotalItems > 0 {
		total := decimal.NewFromInt(int64(summary.TotalItems))
		hundred := decimal.NewFromInt(100)
		for i := range summary.CategoryDistribution {
			m := &summary.CategoryDistribution[i]
			m.Percentage = decimal.NewFromInt(int64(m.Count)).Mul(hundred).Div(total).Round(1).InexactFloat64()
		}
	}
	return summary, nil
}

// Categories lists the category catalog
func (s *InventoryService) Categories(ctx context.Context) ([]inventory.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *InventoryService) resolveCategory(ctx context.Context, id string) (inventory.Category, error) {
	category, err := s.catalog.GetCategory(ctx, id)
	if errors.Is(err, inventory.ErrCategoryNotFound) {
		return inventory.Category{}, shared.NewValidationError("Unknown category: " + id)
	}
	return category, err
}

func (s *InventoryService) resolveSupplier(ctx context.Context, id string) (*inventory.Supplier, error) {
	if id == "" {
		return nil, nil
	}
	supplier, err := s.catalog.GetSupplier(ctx, id)
	if errors.Is(err, inventory.ErrSupplierNotFound) {
		return nil, shared.NewValidationError("Unknown supplier: " + id)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *InventoryService) toItemUpdate(ctx context.Context, input UpdateItemInput) (inventory.ItemUpdate, error) {
	update := inventory.ItemUpdate{
		Name:         input.Name,
		Description:  input.Description,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		UnitCost:     input.UnitCost,
		SellingPrice: input.SellingPrice,
		Location:     input.Location,
		ReorderPoint: input.ReorderPoint,
		Barcode:      input.Barcode,
	}
	if input.Type != nil {
		t, err := inventory.ParseItemType(*input.Type)
		if err != nil {
			return update, err
		}
		update.Type = &t
	}
	if input.CategoryID != nil {
		c, err := s.resolveCategory(ctx, *input.CategoryID)
		if err != nil {
			return update, err
		}
		update.Category = &c
	}
	if input.SupplierID != nil {
		if *input.SupplierID == "" {
			update.ClearSupplier = true
		} else {
			sup, err := s.resolveSupplier(ctx, *input.SupplierID)
			if err != nil {
				return update, err
			}
			update.Supplier = sup
		}
	}
	return update, nil
}

func missingFields(input CreateItemInput) []string {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if input.CategoryID == "" {
		missing = append(missing, "categoryId")
	}
	if input.Type == "" {
		missing = append(missing, "type")
	}
	if input.Quantity == nil {
		missing = append(missing, "quantity")
	}
	if strings.TrimSpace(input.Unit) == "" {
		missing = append(missing, "unit")
	}
	if input.UnitCost == nil {
		missing = append(missing, "unitCost")
	}
	return missing
}

// toQuerySpec validates the raw listing parameters. Enumerated parameters
// reject unknown values; non-numeric page and limit fall back to defaults.
func toQuerySpec(input ListInput) (inventory.QuerySpec, error) {
	spec := inventory.DefaultQuerySpec()
	spec.Text = input.Query
	spec.CategoryID = input.CategoryID

	var err error
	if input.Type != "" {
		if spec.Type, err = inventory.ParseItemType(input.Type); err != nil {
			return spec, err
		}
	}
	if input.Status != "" {
		if spec.Status, err = inventory.ParseStockStatus(input.Status); err != nil {
			return spec, err
		}
	}
	if input.SortBy != "" {
		if spec.SortBy, err = inventory.ParseSortField(input.SortBy); err != nil {
			return spec, err
		}
	}
	if input.SortOrder != "" {
		if spec.SortOrder, err = inventory.ParseSortOrder(input.SortOrder); err != nil {
			return spec, err
		}
	}
	if spec.MinQuantity, err = optionalInt("minQuantity", input.MinQuantity); err != nil {
		return spec, err
	}
	if spec.MaxQuantity, err = optionalInt("maxQuantity", input.MaxQuantity); err != nil {
		return spec, err
	}
	if n, err := strconv.Atoi(input.Page); err == nil {
		spec.Page = n
	}
	if n, err := strconv.Atoi(input.Limit); err == nil {
		spec.Limit = n
	}
	return spec.Normalize(), nil
}

func optionalInt(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, shared.NewValidationError(name + " must be an integer")
	}
	return &n, nil
}
