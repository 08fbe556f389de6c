package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	appshop "github.com/rationshop/backend/internal/application/shop"
	"github.com/rationshop/backend/internal/infrastructure/auth"
	"github.com/rationshop/backend/internal/interfaces/http/dto"
	"github.com/rationshop/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler(t *testing.T) {
	api := newTestAPI(t)
	user := api.token(t, uuid.New(), auth.RoleUser)

	flour := api.createProduct(t, "Flour", "2.50")
	api.createProduct(t, "Sugar", "3")

	t.Run("users browse the catalog", func(t *testing.T) {
		w := api.do(t, user, http.MethodGet, "/api/v1/products", nil)
		products := testutil.DecodeData[[]appshop.ProductResponse](t, w)
		assert.Len(t, products, 2)

		found := testutil.DecodeData[[]appshop.ProductResponse](t, api.do(t, user, http.MethodGet, "/api/v1/products?search=flo", nil))
		require.Len(t, found, 1)
		assert.Equal(t, "Flour", found[0].Name)
		assert.Equal(t, "2.5", found[0].Price.String())

		one := testutil.DecodeData[appshop.ProductResponse](t, api.do(t, user, http.MethodGet, "/api/v1/products/"+flour.String(), nil))
		assert.Equal(t, flour, one.ID)
	})

	t.Run("only admins change the catalog", func(t *testing.T) {
		w := api.do(t, user, http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Oil", "price": "4"})
		testutil.AssertError(t, w, http.StatusForbidden, dto.ErrCodeForbidden)

		w = api.do(t, user, http.MethodDelete, "/api/v1/admin/products/"+flour.String(), nil)
		testutil.AssertError(t, w, http.StatusForbidden, dto.ErrCodeForbidden)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		w := api.do(t, api.admin, http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Oil", "price": "-1"})
		testutil.AssertError(t, w, http.StatusBadRequest, "INVALID_PRICE")
	})

	t.Run("rejects missing name", func(t *testing.T) {
		w := api.do(t, api.admin, http.MethodPost, "/api/v1/admin/products", map[string]any{"price": "1"})
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("delete keeps cart snapshots", func(t *testing.T) {
		north := api.createRegion(t, map[string]any{"name": "north", "daily_limit": 5})
		cartID := api.fillCart(t, user, north, flour, 1)

		require.Equal(t, http.StatusNoContent, api.do(t, api.admin, http.MethodDelete, "/api/v1/admin/products/"+flour.String(), nil).Code)
		testutil.AssertError(t, api.do(t, user, http.MethodGet, "/api/v1/products/"+flour.String(), nil), http.StatusNotFound, dto.ErrCodeNotFound)

		cart := testutil.DecodeData[appshop.CartResponse](t, api.do(t, user, http.MethodGet, "/api/v1/carts/"+cartID.String(), nil))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Flour", cart.Items[0].ProductName)
	})
}
