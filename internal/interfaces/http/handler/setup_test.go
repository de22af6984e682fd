package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	identityapp "github.com/stockdash/backend/internal/application/identity"
	inventoryapp "github.com/stockdash/backend/internal/application/inventory"
	"github.com/stockdash/backend/internal/domain/identity"
	"github.com/stockdash/backend/internal/infrastructure/auth"
	"github.com/stockdash/backend/internal/infrastructure/persistence"
	"github.com/stockdash/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

var (
	testAdmin = identity.Principal{ID: "1", Role: identity.RoleAdmin, Name: "Admin User"}
	testStaff = identity.Principal{ID: "2", Role: identity.RoleStaff, Name: "Staff User"}
)

// asPrincipal stands in for the gateway in handler tests
func asPrincipal(p *identity.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), *p))
		}
		c.Next()
	}
}

func newInventoryService(t *testing.T) *inventoryapp.InventoryService {
	t.Helper()
	repo := persistence.NewMemoryItemRepository()
	require.NoError(t, persistence.Seed(context.Background(), repo))
	catalog := persistence.NewStaticCatalog(persistence.DemoCategories(), persistence.DemoSuppliers())
	return inventoryapp.NewInventoryService(repo, catalog)
}

func newAuthService() *identityapp.AuthService {
	directory := persistence.NewStaticPrincipalDirectory(persistence.DemoAccounts())
	return identityapp.NewAuthService(directory, auth.NewTokenCodec())
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// dataAs re-decodes the envelope's data into a concrete type
func dataAs[T any](t *testing.T, resp dto.Response) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
