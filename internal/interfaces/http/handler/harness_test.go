package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
	appshop "github.com/rationshop/backend/internal/application/shop"
	"github.com/rationshop/backend/internal/infrastructure/auth"
	"github.com/rationshop/backend/internal/infrastructure/config"
	"github.com/rationshop/backend/internal/infrastructure/event"
	"github.com/rationshop/backend/internal/infrastructure/persistence"
	"github.com/rationshop/backend/internal/interfaces/http/middleware"
	"github.com/rationshop/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// saleTime is the instant every test API runs at
var saleTime = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

// testAPI wires the handlers over SQLite with real services and JWT auth
type testAPI struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWTService
	admin  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	regions := persistence.NewGormRegionRepository(db)
	limits := persistence.NewGormGlobalLimitRepository(db)
	products := persistence.NewGormProductRepository(db)
	carts := persistence.NewGormCartRepository(db)
	orders := persistence.NewGormOrderRepository(db)

	placement := appshop.NewOrderPlacementService(carts, orders, regions,
		persistence.NewGormTransactionScope(db, event.NewShopEventSerializer()), nil)
	placement.SetClock(testutil.FixedClock(saleTime))
	usage := apprationing.NewUsageService(regions, limits, persistence.NewGormUsageCounter(db))
	usage.SetClock(testutil.FixedClock(saleTime))

	orderHandler := NewOrderHandler(placement)
	cartHandler := NewCartHandler(appshop.NewCartService(carts, products, regions))
	productHandler := NewProductHandler(appshop.NewProductService(products))
	regionHandler := NewRegionHandler(apprationing.NewRegionService(regions))
	limitHandler := NewGlobalLimitHandler(apprationing.NewGlobalLimitService(limits, nil))
	usageHandler := NewUsageHandler(usage)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-with-enough-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "rationshop-test",
	})
	authMw := middleware.JWTAuth(middleware.JWTMiddlewareConfig{Validator: jwtService})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	user := engine.Group("/api/v1", authMw)
	user.POST("/orders", orderHandler.Create)
	user.GET("/orders", orderHandler.List)
	user.GET("/orders/:id", orderHandler.GetByID)
	user.DELETE("/orders/:id", orderHandler.Delete)
	user.POST("/carts", cartHandler.Create)
	user.GET("/carts", cartHandler.List)
	user.GET("/carts/:id", cartHandler.GetByID)
	user.DELETE("/carts/:id", cartHandler.Delete)
	user.GET("/products", productHandler.List)
	user.GET("/products/:id", productHandler.GetByID)

	admin := engine.Group("/api/v1/admin", authMw, middleware.RequireAdmin())
	admin.POST("/products", productHandler.Create)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.GET("/regions", regionHandler.List)
	admin.POST("/regions", regionHandler.Create)
	admin.GET("/regions/:id", regionHandler.GetByID)
	admin.PUT("/regions/:id", regionHandler.Update)
	admin.DELETE("/regions/:id", regionHandler.Delete)
	admin.GET("/global-limit", limitHandler.Get)
	admin.PUT("/global-limit", limitHandler.Set)
	admin.GET("/usage/today", usageHandler.Today)

	api := &testAPI{engine: engine, db: db, jwt: jwtService}
	api.admin = api.token(t, uuid.New(), auth.RoleAdmin)
	return api
}

func (a *testAPI) token(t *testing.T, userID uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := a.jwt.GenerateToken(auth.GenerateTokenInput{UserID: userID, Role: role})
	require.NoError(t, err)
	return token.AccessToken
}

func (a *testAPI) do(t *testing.T, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	headers := map[string]string{}
	if token != "" {
		headers[middleware.AuthHeaderKey] = middleware.BearerPrefix + token
	}
	return testutil.DoJSON(t, a.engine, method, path, body, headers)
}

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

func (a *testAPI) createRegion(t *testing.T, body map[string]any) uuid.UUID {
	t.Helper()
	w := a.do(t, a.admin, "POST", "/api/v1/admin/regions", body)
	require.Equal(t, 201, w.Code, w.Body.String())
	return testutil.DecodeData[idResponse](t, w).ID
}

func (a *testAPI) createProduct(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	w := a.do(t, a.admin, "POST", "/api/v1/admin/products", map[string]any{"name": name, "price": price})
	require.Equal(t, 201, w.Code, w.Body.String())
	return testutil.DecodeData[idResponse](t, w).ID
}

func (a *testAPI) setGlobalLimit(t *testing.T, limit int) {
	t.Helper()
	w := a.do(t, a.admin, "PUT", "/api/v1/admin/global-limit", map[string]any{"daily_limit": limit})
	require.Equal(t, 200, w.Code, w.Body.String())
}

// fillCart adds n units of product to the user's open cart for the region
func (a *testAPI) fillCart(t *testing.T, token string, regionID, productID uuid.UUID, n int) uuid.UUID {
	t.Helper()
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{"product_id": productID}
	}
	w := a.do(t, token, "POST", "/api/v1/carts", map[string]any{"region_id": regionID, "items": items})
	require.Equal(t, 201, w.Code, w.Body.String())
	return testutil.DecodeData[idResponse](t, w).ID
}
