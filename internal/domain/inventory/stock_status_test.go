package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int
		reorderPoint int
		want         StockStatus
	}{
		{"zero quantity with zero reorder point", 0, 0, StatusOutOfStock},
		{"zero quantity with high reorder point", 0, 50, StatusOutOfStock},
		{"quantity below reorder point", 3, 5, StatusLowStock},
		{"quantity equal to reorder point", 5, 5, StatusLowStock},
		{"quantity above reorder point", 6, 5, StatusInStock},
		{"positive quantity with zero reorder point", 1, 0, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.quantity, tt.reorderPoint))
		})
	}
}

func TestClassify_Exhaustive(t *testing.T) {
	for reorder := 0; reorder <= 20; reorder++ {
		assert.Equal(t, StatusOutOfStock, Classify(0, reorder))
		for qty := 1; qty <= 40; qty++ {
			got := Classify(qty, reorder)
			if qty <= reorder {
				assert.Equal(t, StatusLowStock, got, "qty=%d reorder=%d", qty, reorder)
			} else {
				assert.Equal(t, StatusInStock, got, "qty=%d reorder=%d", qty, reorder)
			}
		}
	}
}

func TestParseStockStatus(t *testing.T) {
	status, err := ParseStockStatus("low_stock")
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, status)

	_, err = ParseStockStatus("backordered")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of")
}
