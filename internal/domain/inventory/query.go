package inventory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/stockdash/backend/internal/domain/shared"
	"golang.org/x/text/cases"
)

// SortField is a sortable item attribute
type SortField string

const (
	SortByName         SortField = "name"
	SortBySKU          SortField = "sku"
	SortByQuantity     SortField = "quantity"
	SortByUnitCost     SortField = "unitCost"
	SortBySellingPrice SortField = "sellingPrice"
	SortByReorderPoint SortField = "reorderPoint"
	SortByCategory     SortField = "category"
	SortByType         SortField = "type"
	SortByCreatedAt    SortField = "createdAt"
	SortByUpdatedAt    SortField = "updatedAt"
)

var sortFields = []SortField{
	SortByName, SortBySKU, SortByQuantity, SortByUnitCost, SortBySellingPrice,
	SortByReorderPoint, SortByCategory, SortByType, SortByCreatedAt, SortByUpdatedAt,
}

// ParseSortField parses a sort key, rejecting unknown fields
func ParseSortField(s string) (SortField, error) {
	f := SortField(s)
	if slices.Contains(sortFields, f) {
		return f, nil
	}
	names := make([]string, len(sortFields))
	for i, sf := range sortFields {
		names[i] = string(sf)
	}
	return "", shared.NewValidationError("sortBy must be one of: " + strings.Join(names, ", "))
}

// SortOrder is the sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder parses a sort direction, rejecting unknown values
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case SortAsc, SortDesc:
		return o, nil
	}
	return "", shared.NewValidationError("sortOrder must be one of: asc, desc")
}

// Defaults applied by QuerySpec.Normalize
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// QuerySpec is the normalized filter, sort and paging request for one listing.
// Zero values of the optional filters mean "no constraint".
type QuerySpec struct {
	Text        string
	CategoryID  string
	Type        ItemType
	Status      StockStatus
	MinQuantity *int
	MaxQuantity *int
	SortBy      SortField
	SortOrder   SortOrder
	Page        int
	Limit       int
}

// DefaultQuerySpec returns the spec used when no parameters are supplied
func DefaultQuerySpec() QuerySpec {
	return QuerySpec{
		SortBy:    SortByName,
		SortOrder: SortAsc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// Normalize clamps page and limit to at least 1 and fills the sort defaults
func (s QuerySpec) Normalize() QuerySpec {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Limit < 1 {
		s.Limit = 1
	}
	if s.SortBy == "" {
		s.SortBy = SortByName
	}
	if s.SortOrder == "" {
		s.SortOrder = SortAsc
	}
	return s
}

// Result is one page of a query
type Result struct {
	Items      []Item
	Total      int
	TotalPages int
	Page       int
	Limit      int
}

// Query filters, sorts and paginates records.
// records is treated as read-only; the result never aliases it.
func Query(records []Item, spec QuerySpec) Result {
	spec = spec.Normalize()
	fold := cases.Fold()

	matched := make([]Item, 0, len(records))
	needle := fold.String(spec.Text)
	for i := range records {
		if spec.matches(&records[i], needle, fold) {
			matched = append(matched, records[i].Clone())
		}
	}

	sortItems(matched, spec.SortBy, spec.SortOrder, fold)

	total := len(matched)
	pages := total / spec.Limit
	if total%spec.Limit != 0 {
		pages++
	}
	result := Result{
		Items:      []Item{},
		Total:      total,
		TotalPages: pages,
		Page:       spec.Page,
		Limit:      spec.Limit,
	}

	// compare page numbers first so (page-1)*limit cannot overflow
	if spec.Page > pages {
		return result
	}
	start := (spec.Page - 1) * spec.Limit
	end := start + min(spec.Limit, total-start)
	result.Items = matched[start:end:end]
	return result
}

// matches applies every filter; all of them must hold
func (s QuerySpec) matches(item *Item, needle string, fold cases.Caser) bool {
	if needle != "" && !matchesText(item, needle, fold) {
		return false
	}
	if s.CategoryID != "" && item.Category.ID != s.CategoryID {
		return false
	}
	if s.Type != "" && item.Type != s.Type {
		return false
	}
	if s.Status != "" && item.Status() != s.Status {
		return false
	}
	if s.MinQuantity != nil && item.Quantity < *s.MinQuantity {
		return false
	}
	if s.MaxQuantity != nil && item.Quantity > *s.MaxQuantity {
		return false
	}
	return true
}

// matchesText reports whether any searchable field contains the folded needle
func matchesText(item *Item, needle string, fold cases.Caser) bool {
	for _, field := range []string{item.Name, item.SKU, item.Description, item.Category.Name} {
		if field != "" && strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// sortItems sorts in place. Equal keys fall back to id ascending in both
// directions so consecutive pages never overlap.
func sortItems(items []Item, field SortField, order SortOrder, fold cases.Caser) {
	compare := comparator(field, fold)
	slices.SortStableFunc(items, func(a, b Item) int {
		c := compare(&a, &b)
		if order == SortDesc {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c
	})
}

func comparator(field SortField, fold cases.Caser) func(a, b *Item) int {
	text := func(get func(*Item) string) func(a, b *Item) int {
		return func(a, b *Item) int {
			return strings.Compare(fold.String(get(a)), fold.String(get(b)))
		}
	}

	switch field {
	case SortBySKU:
		return text(func(i *Item) string { return i.SKU })
	case SortByCategory:
		return text(func(i *Item) string { return i.Category.Name })
	case SortByType:
		return text(func(i *Item) string { return string(i.Type) })
	case SortByQuantity:
		return func(a, b *Item) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByReorderPoint:
		return func(a, b *Item) int { return cmp.Compare(a.ReorderPoint, b.ReorderPoint) }
	case SortByUnitCost:
		return func(a, b *Item) int { return a.UnitCost.Cmp(b.UnitCost) }
	case SortBySellingPrice:
		return func(a, b *Item) int {
			switch {
			case a.SellingPrice == nil && b.SellingPrice == nil:
				return 0
			case a.SellingPrice == nil:
				return -1
			case b.SellingPrice == nil:
				return 1
			}
			return a.SellingPrice.Cmp(*b.SellingPrice)
		}
	case SortByCreatedAt:
		return func(a, b *Item) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByUpdatedAt:
		return func(a, b *Item) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		return text(func(i *Item) string { return i.Name })
	}
}
