package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	authsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/auth"
	bulksvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/bulkorders"
	cartsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	catalogsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/catalog"
	vendorsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/vendors"
	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	pkgauth "github.com/shivaganesh9515/nextgen-organic-backend/pkg/auth"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

// memoryCmdable backs the redis client with a map so middleware that
// touches redis still works under test.
type memoryCmdable struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCmdable() *memoryCmdable {
	return &memoryCmdable{values: map[string]string{}}
}

func (m *memoryCmdable) Ping(ctx context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (m *memoryCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = toString(value)
	return goredis.NewStatusResult("OK", nil)
}

func (m *memoryCmdable) Get(ctx context.Context, key string) *goredis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

func (m *memoryCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *goredis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	m.values[key] = toString(value)
	return goredis.NewBoolResult(true, nil)
}

func (m *memoryCmdable) Incr(ctx context.Context, key string) *goredis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, _ := strconv.ParseInt(m.values[key], 10, 64)
	current++
	m.values[key] = strconv.FormatInt(current, 10)
	return goredis.NewIntResult(current, nil)
}

func (m *memoryCmdable) Expire(ctx context.Context, key string, ttl time.Duration) *goredis.BoolCmd {
	return goredis.NewBoolResult(true, nil)
}

func (m *memoryCmdable) Del(ctx context.Context, keys ...string) *goredis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	return goredis.NewIntResult(removed, nil)
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, authsvc.RegisterInput) (*authsvc.Session, error) {
	return nil, nil
}
func (stubAuthService) Login(context.Context, string, string) (*authsvc.Session, error) {
	return nil, nil
}
func (stubAuthService) GetUser(context.Context, uuid.UUID) (*models.User, error) {
	return &models.User{ID: uuid.New(), Role: enums.RoleCustomer}, nil
}

type stubCartService struct{}

func (stubCartService) Get(context.Context, string) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}
func (stubCartService) AddItem(context.Context, string, uuid.UUID, int) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}
func (stubCartService) RemoveItem(context.Context, string, uuid.UUID) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}
func (stubCartService) UpdateQuantity(context.Context, string, uuid.UUID, int) (cartsvc.Snapshot, error) {
	return cartsvc.Snapshot{}, nil
}
func (stubCartService) Clear(context.Context, string) error { return nil }
func (stubCartService) Quote(context.Context, string, string) (cartsvc.Quote, error) {
	return cartsvc.Quote{}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(context.Context, catalogsvc.ProductFilter) ([]models.Product, string, error) {
	return nil, "", nil
}
func (stubCatalogService) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: uuid.New(), Price: decimal.NewFromInt(100)}, nil
}
func (stubCatalogService) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}
func (stubCatalogService) ListVendors(context.Context) ([]models.Vendor, error) {
	return nil, nil
}
func (stubCatalogService) GetVendorRates(context.Context, []uuid.UUID) (map[uuid.UUID]cartsvc.VendorRate, error) {
	return nil, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Start(context.Context, uuid.UUID) (wizard.State, error) {
	return wizard.NewState(), nil
}
func (stubCheckoutService) Current(context.Context, uuid.UUID) (wizard.State, error) {
	return wizard.NewState(), nil
}
func (stubCheckoutService) Advance(context.Context, uuid.UUID, map[string]string) (wizard.State, error) {
	return wizard.NewState(), nil
}
func (stubCheckoutService) Back(context.Context, uuid.UUID) (wizard.State, error) {
	return wizard.NewState(), nil
}
func (stubCheckoutService) Submit(context.Context, uuid.UUID, string) (*models.Order, error) {
	return &models.Order{ID: uuid.New()}, nil
}
func (stubCheckoutService) GetOrder(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: uuid.New()}, nil
}
func (stubCheckoutService) ListOrders(context.Context, uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

type stubCouponService struct{}

func (stubCouponService) ResolveDiscount(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (stubCouponService) ListActive(context.Context) ([]models.Coupon, error) {
	return nil, nil
}

type stubVendorService struct{}

func (stubVendorService) SubmitApplication(context.Context, vendorsvc.ApplicationInput) (*models.VendorApplication, error) {
	return &models.VendorApplication{ID: uuid.New()}, nil
}
func (stubVendorService) GetApplication(context.Context, uuid.UUID) (*models.VendorApplication, error) {
	return &models.VendorApplication{ID: uuid.New()}, nil
}
func (stubVendorService) ListPendingApplications(context.Context) ([]models.VendorApplication, error) {
	return nil, nil
}
func (stubVendorService) Approve(context.Context, vendorsvc.ApproveInput) (*models.Vendor, error) {
	return &models.Vendor{ID: uuid.New()}, nil
}
func (stubVendorService) Reject(context.Context, uuid.UUID, uuid.UUID, string) error {
	return nil
}
func (stubVendorService) GetVendor(context.Context, uuid.UUID) (*models.Vendor, error) {
	return &models.Vendor{ID: uuid.New()}, nil
}
func (stubVendorService) GetVendorStatus(context.Context, uuid.UUID) (enums.VendorStatus, error) {
	return enums.VendorStatusApproved, nil
}

type stubWishlistService struct{}

func (stubWishlistService) Add(context.Context, uuid.UUID, uuid.UUID) error    { return nil }
func (stubWishlistService) Remove(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (stubWishlistService) List(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type stubBulkOrderService struct{}

func (stubBulkOrderService) CreateRequest(context.Context, bulksvc.CreateRequestInput) (*models.BulkOrder, error) {
	return &models.BulkOrder{ID: uuid.New()}, nil
}
func (stubBulkOrderService) RespondQuote(context.Context, bulksvc.RespondInput) (*models.BulkOrder, error) {
	return &models.BulkOrder{ID: uuid.New()}, nil
}
func (stubBulkOrderService) ListForVendor(context.Context, uuid.UUID) ([]models.BulkOrder, error) {
	return nil, nil
}
func (stubBulkOrderService) ListForCustomer(context.Context, uuid.UUID) ([]models.BulkOrder, error) {
	return nil, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-not-for-production",
			Issuer:            "nextgen-organic",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
	redisClient := redis.NewFromCmdable(newMemoryCmdable())

	return NewRouter(testRouterConfig(), logg, stubPinger{}, redisClient, nil, Services{
		Auth:       stubAuthService{},
		Cart:       stubCartService{},
		Catalog:    stubCatalogService{},
		Checkout:   stubCheckoutService{},
		Coupons:    stubCouponService{},
		Vendors:    stubVendorService{},
		Wishlist:   stubWishlistService{},
		BulkOrders: stubBulkOrderService{},
	})
}

func mintToken(t *testing.T, role enums.Role, vendorID *uuid.UUID) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Role:     role,
		VendorID: vendorID,
	})
	require.NoError(t, err)
	return token
}

func TestRouterPublicRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	cases := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/api/public/ping", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/products", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/categories", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/vendors", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/coupons", http.StatusOK},
		{http.MethodGet, "/does-not-exist", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		require.Equalf(t, tc.want, rec.Code, "%s %s", tc.method, tc.target)
	}
}

func TestRouterRequiresAuthentication(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	targets := []string{
		"/api/v1/cart",
		"/api/v1/orders",
		"/api/v1/wishlist",
		"/api/v1/bulk-orders",
		"/api/admin/v1/applications",
	}

	for _, target := range targets {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equalf(t, http.StatusUnauthorized, rec.Code, "GET %s", target)
	}
}

func TestRouterAuthenticatedAccess(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	token := mintToken(t, enums.RoleCustomer, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterAdminGateByRole(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	customerToken := mintToken(t, enums.RoleCustomer, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := mintToken(t, enums.RoleAdmin, nil)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/v1/applications", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterVendorContextGate(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	customerToken := mintToken(t, enums.RoleCustomer, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bulk-orders/assigned", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	vendorID := uuid.New()
	vendorToken := mintToken(t, enums.RoleVendor, &vendorID)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/bulk-orders/assigned", nil)
	req.Header.Set("Authorization", "Bearer "+vendorToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterIdempotencyReplay(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	token := mintToken(t, enums.RoleCustomer, nil)

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/submit", http.NoBody)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Missing key is rejected outright on a guarded route.
	require.Equal(t, http.StatusBadRequest, send("").Code)

	first := send("order-attempt-1")
	second := send("order-attempt-1")
	require.Equal(t, first.Code, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
}
