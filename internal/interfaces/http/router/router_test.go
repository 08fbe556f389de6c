package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
	appshop "github.com/rationshop/backend/internal/application/shop"
	"github.com/rationshop/backend/internal/infrastructure/auth"
	"github.com/rationshop/backend/internal/infrastructure/cache"
	"github.com/rationshop/backend/internal/infrastructure/config"
	"github.com/rationshop/backend/internal/infrastructure/event"
	"github.com/rationshop/backend/internal/infrastructure/persistence"
	"github.com/rationshop/backend/internal/interfaces/http/dto"
	"github.com/rationshop/backend/internal/interfaces/http/handler"
	"github.com/rationshop/backend/internal/interfaces/http/middleware"
	"github.com/rationshop/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

func pong(c *gin.Context) { c.String(http.StatusOK, "pong") }

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test")
	group.GET("/ping", pong)
	NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		group := NewDomainGroup("orders", "/orders")
		assert.Equal(t, "orders", group.Name())
		assert.Equal(t, "/orders", group.Prefix())
	})

	t.Run("methods", func(t *testing.T) {
		engine := gin.New()
		group := NewDomainGroup("items", "/items").
			GET("", pong).
			POST("", pong).
			PUT("/:id", pong).
			DELETE("/:id", pong)
		NewRouter(engine).Register(group).Setup()

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/items").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/items").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodPut, "/api/v1/items/1").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodDelete, "/api/v1/items/1").Code)
	})

	t.Run("middleware runs in order and skips nil", func(t *testing.T) {
		var calls []string
		mark := func(name string) gin.HandlerFunc {
			return func(c *gin.Context) {
				calls = append(calls, name)
				c.Next()
			}
		}

		engine := gin.New()
		group := NewDomainGroup("guarded", "/guarded").Use(mark("first"), nil, mark("second"))
		group.GET("", nil, mark("route"), pong)
		NewRouter(engine).Register(group).Setup()

		w := serve(engine, http.MethodGet, "/api/v1/guarded")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"first", "second", "route"}, calls)
	})

	t.Run("subgroups inherit parent middleware", func(t *testing.T) {
		engine := gin.New()
		parent := NewDomainGroup("admin", "/admin").Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})
		parent.Group("regions", "/regions").GET("", pong)
		NewRouter(engine).Register(parent).Setup()

		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/admin/regions").Code)
	})
}

// shopServer wires the shop routes the way the server binary does, over SQLite
type shopServer struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newShopServer(t *testing.T) *shopServer {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	regions := persistence.NewGormRegionRepository(db)
	limits := persistence.NewGormGlobalLimitRepository(db)
	products := persistence.NewGormProductRepository(db)
	carts := persistence.NewGormCartRepository(db)
	orders := persistence.NewGormOrderRepository(db)

	saleTime := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	placement := appshop.NewOrderPlacementService(carts, orders, regions,
		persistence.NewGormTransactionScope(db, event.NewShopEventSerializer()), nil)
	placement.SetClock(testutil.FixedClock(saleTime))
	usage := apprationing.NewUsageService(regions, limits, persistence.NewGormUsageCounter(db))
	usage.SetClock(testutil.FixedClock(saleTime))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-with-enough-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "rationshop-test",
	})

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	engine, err := NewEngine(EngineConfig{HTTP: config.HTTPConfig{MaxBodySize: 1 << 20}})
	require.NoError(t, err)

	groups := ShopGroups(
		Handlers{
			Orders:      handler.NewOrderHandler(placement),
			Carts:       handler.NewCartHandler(appshop.NewCartService(carts, products, regions)),
			Products:    handler.NewProductHandler(appshop.NewProductService(products)),
			Regions:     handler.NewRegionHandler(apprationing.NewRegionService(regions)),
			GlobalLimit: handler.NewGlobalLimitHandler(apprationing.NewGlobalLimitService(limits, nil)),
			Usage:       handler.NewUsageHandler(usage),
			System:      handler.NewSystemHandler("rationshop", "test", &persistence.Database{DB: db}),
		},
		Guards{
			Auth:        middleware.JWTAuth(middleware.JWTMiddlewareConfig{Validator: jwtService}),
			Admin:       middleware.RequireAdmin(),
			Annotate:    middleware.TracingAttributes(),
			Idempotency: middleware.Idempotency(middleware.IdempotencyConfig{Store: store, TTL: time.Hour}),
		},
	)
	NewRouter(engine).Register(groups...).Setup()

	return &shopServer{engine: engine, jwt: jwtService}
}

func (s *shopServer) do(t *testing.T, role auth.Role, userID uuid.UUID, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if headers == nil {
		headers = map[string]string{}
	}
	if role != "" {
		token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{UserID: userID, Role: role})
		require.NoError(t, err)
		headers[middleware.AuthHeaderKey] = middleware.BearerPrefix + token.AccessToken
	}
	return testutil.DoJSON(t, s.engine, method, path, body, headers)
}

type created struct {
	ID uuid.UUID `json:"id"`
}

func TestShopRoutes(t *testing.T) {
	server := newShopServer(t)
	admin := uuid.New()
	shopper := uuid.New()

	t.Run("health needs no token", func(t *testing.T) {
		w := server.do(t, "", uuid.Nil, http.MethodGet, "/api/v1/health", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("orders need a token", func(t *testing.T) {
		w := server.do(t, "", uuid.Nil, http.MethodGet, "/api/v1/orders", nil, nil)
		testutil.AssertError(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	})

	t.Run("admin routes reject users", func(t *testing.T) {
		w := server.do(t, auth.RoleUser, shopper, http.MethodGet, "/api/v1/admin/regions", nil, nil)
		testutil.AssertError(t, w, http.StatusForbidden, dto.ErrCodeForbidden)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := server.do(t, "", uuid.Nil, http.MethodGet, "/api/v1/nowhere", nil, nil)
		testutil.AssertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("order creation with idempotency key", func(t *testing.T) {
		w := server.do(t, auth.RoleAdmin, admin, http.MethodPost, "/api/v1/admin/regions", map[string]any{"name": "north", "daily_limit": 5}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		region := testutil.DecodeData[created](t, w).ID

		w = server.do(t, auth.RoleAdmin, admin, http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "Rice", "price": "2.5"}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		product := testutil.DecodeData[created](t, w).ID

		w = server.do(t, auth.RoleAdmin, admin, http.MethodPut, "/api/v1/admin/global-limit", map[string]any{"daily_limit": 10}, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = server.do(t, auth.RoleUser, shopper, http.MethodPost, "/api/v1/carts", map[string]any{
			"region_id": region,
			"items":     []map[string]any{{"product_id": product}},
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		cart := testutil.DecodeData[created](t, w).ID

		body := map[string]any{"cart_id": cart, "region": "north"}
		key := map[string]string{middleware.IdempotencyKeyHeader: "order-1"}

		w = server.do(t, auth.RoleUser, shopper, http.MethodPost, "/api/v1/orders", body, key)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = server.do(t, auth.RoleUser, shopper, http.MethodPost, "/api/v1/orders", body, map[string]string{middleware.IdempotencyKeyHeader: "order-1"})
		testutil.AssertError(t, w, http.StatusConflict, dto.ErrCodeDuplicateRequest)

		w = server.do(t, auth.RoleUser, shopper, http.MethodGet, "/api/v1/orders", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), testutil.DecodeEnvelope(t, w).Meta.Total)
	})
}
