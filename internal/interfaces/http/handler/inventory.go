package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/stockdash/backend/internal/application/inventory"
	"github.com/stockdash/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory HTTP requests
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// List returns a filtered, sorted page of items.
// Query: query, categoryId, type, status, minQuantity, maxQuantity,
// sortBy, sortOrder, page, limit.
func (h *InventoryHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), inventoryapp.ListInput{
		Query:       c.Query("query"),
		CategoryID:  c.Query("categoryId"),
		Type:        c.Query("type"),
		Status:      c.Query("status"),
		MinQuantity: c.Query("minQuantity"),
		MaxQuantity: c.Query("maxQuantity"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithPagination(c, result.Items, dto.Pagination{
		Page:       result.Pagination.Page,
		Limit:      result.Pagination.Limit,
		Total:      result.Pagination.Total,
		TotalPages: result.Pagination.TotalPages,
	})
}

// Get returns one item
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create adds an item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item, "Item created successfully")
}

// Update applies a partial update to an item
func (h *InventoryHandler) Update(c *gin.Context) {
	var req inventoryapp.UpdateItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMessage(c, item, "Item updated successfully")
}

// Summary returns the dashboard metrics
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Categories lists the category catalogue
func (h *InventoryHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
