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

func TestOrderHandler_Create(t *testing.T) {
	t.Run("places order and closes cart", func(t *testing.T) {
		api := newTestAPI(t)
		api.setGlobalLimit(t, 10)
		north := api.createRegion(t, map[string]any{"name": "north", "daily_limit": 5})
		flour := api.createProduct(t, "Flour", "2.50")
		user := api.token(t, uuid.New(), auth.RoleUser)
		cartID := api.fillCart(t, user, north, flour, 2)

		w := api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cartID, "region": "north"})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		result := testutil.DecodeData[appshop.OrderResult](t, w)
		assert.NotEqual(t, uuid.Nil, result.OrderID)
		assert.Equal(t, "PENDING", result.OrderStatus)
		require.Len(t, result.Items, 2)
		assert.Equal(t, "Flour", result.Items[0].Name)
		assert.Equal(t, "2026-03-15", result.SaleDay.String())
		assert.Equal(t, "5", result.TotalAmount.String())

		cart := testutil.DecodeData[appshop.CartResponse](t, api.do(t, user, http.MethodGet, "/api/v1/carts/"+cartID.String(), nil))
		assert.Equal(t, "CLOSED", cart.Status)

		again := api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cartID, "region": "north"})
		testutil.AssertError(t, again, http.StatusUnprocessableEntity, "CART_CLOSED")
	})

	t.Run("rationing rejections keep their code", func(t *testing.T) {
		api := newTestAPI(t)
		north := api.createRegion(t, map[string]any{"name": "north", "daily_limit": 1})
		closed := api.createRegion(t, map[string]any{"name": "closed", "closed_access": true})
		flour := api.createProduct(t, "Flour", "1")
		user := api.token(t, uuid.New(), auth.RoleUser)

		cart := api.fillCart(t, user, north, flour, 2)
		w := api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "north"})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "GLOBAL_LIMIT_NOT_SET")

		api.setGlobalLimit(t, 100)
		w = api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "north"})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "REGION_LIMIT_EXCEEDED")

		closedCart := api.fillCart(t, user, closed, flour, 1)
		w = api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": closedCart, "region": "closed"})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "REGION_LIMIT_EXCEEDED")

		api.setGlobalLimit(t, 1)
		w = api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "north"})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "GLOBAL_LIMIT_EXCEEDED")

		orders := testutil.DecodeEnvelope(t, api.do(t, user, http.MethodGet, "/api/v1/orders", nil))
		assert.Equal(t, int64(0), orders.Meta.Total)
	})

	t.Run("input mismatches answer 400", func(t *testing.T) {
		api := newTestAPI(t)
		api.setGlobalLimit(t, 10)
		north := api.createRegion(t, map[string]any{"name": "north", "daily_limit": 5})
		api.createRegion(t, map[string]any{"name": "south", "daily_limit": 5})
		flour := api.createProduct(t, "Flour", "1")
		owner := api.token(t, uuid.New(), auth.RoleUser)
		other := api.token(t, uuid.New(), auth.RoleUser)
		cart := api.fillCart(t, owner, north, flour, 1)

		w := api.do(t, other, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "north"})
		testutil.AssertError(t, w, http.StatusBadRequest, "CART_MISMATCH")

		w = api.do(t, owner, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "west"})
		testutil.AssertError(t, w, http.StatusBadRequest, "REGION_NOT_FOUND")

		w = api.do(t, owner, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "south"})
		testutil.AssertError(t, w, http.StatusBadRequest, "REGION_MISMATCH")
	})

	t.Run("validates body", func(t *testing.T) {
		api := newTestAPI(t)
		user := api.token(t, uuid.New(), auth.RoleUser)

		w := api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"region": "north"})
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

		w = api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": uuid.New(), "region": " north"})
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("requires authentication", func(t *testing.T) {
		api := newTestAPI(t)
		w := api.do(t, "", http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": uuid.New(), "region": "north"})
		testutil.AssertError(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	})
}

func TestOrderHandler_History(t *testing.T) {
	api := newTestAPI(t)
	api.setGlobalLimit(t, 10)
	north := api.createRegion(t, map[string]any{"name": "north", "daily_limit": 2})
	flour := api.createProduct(t, "Flour", "1")
	userID := uuid.New()
	user := api.token(t, userID, auth.RoleUser)
	stranger := api.token(t, uuid.New(), auth.RoleUser)

	cart := api.fillCart(t, user, north, flour, 2)
	placed := testutil.DecodeData[appshop.OrderResult](t,
		api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": cart, "region": "north"}))
	orderPath := "/api/v1/orders/" + placed.OrderID.String()

	t.Run("lists own orders", func(t *testing.T) {
		w := api.do(t, user, http.MethodGet, "/api/v1/orders?page=1&page_size=10", nil)
		orders := testutil.DecodeData[[]appshop.OrderResponse](t, w)
		require.Len(t, orders, 1)
		assert.Equal(t, placed.OrderID, orders[0].ID)
		assert.Equal(t, 2, orders[0].ItemCount)

		env := testutil.DecodeEnvelope(t, w)
		assert.Equal(t, int64(1), env.Meta.Total)

		none := testutil.DecodeData[[]appshop.OrderResponse](t, api.do(t, stranger, http.MethodGet, "/api/v1/orders", nil))
		assert.Empty(t, none)
	})

	t.Run("filters by sale day", func(t *testing.T) {
		orders := testutil.DecodeData[[]appshop.OrderResponse](t,
			api.do(t, user, http.MethodGet, "/api/v1/orders?sale_day=2026-03-14", nil))
		assert.Empty(t, orders)

		w := api.do(t, user, http.MethodGet, "/api/v1/orders?sale_day=14-03-2026", nil)
		testutil.AssertError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("gets own order only", func(t *testing.T) {
		order := testutil.DecodeData[appshop.OrderResponse](t, api.do(t, user, http.MethodGet, orderPath, nil))
		assert.Equal(t, "north", order.RegionName)
		assert.Equal(t, cart, order.CartID)

		testutil.AssertError(t, api.do(t, stranger, http.MethodGet, orderPath, nil), http.StatusNotFound, dto.ErrCodeNotFound)
		testutil.AssertError(t, api.do(t, user, http.MethodGet, "/api/v1/orders/not-a-uuid", nil), http.StatusBadRequest, dto.ErrCodeBadRequest)
	})

	t.Run("deleting an order frees its units", func(t *testing.T) {
		next := api.fillCart(t, user, north, flour, 1)
		w := api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": next, "region": "north"})
		testutil.AssertError(t, w, http.StatusUnprocessableEntity, "REGION_LIMIT_EXCEEDED")

		testutil.AssertError(t, api.do(t, stranger, http.MethodDelete, orderPath, nil), http.StatusNotFound, dto.ErrCodeNotFound)
		require.Equal(t, http.StatusNoContent, api.do(t, user, http.MethodDelete, orderPath, nil).Code)

		w = api.do(t, user, http.MethodPost, "/api/v1/orders", map[string]any{"cart_id": next, "region": "north"})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}
