package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/config"
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/internal/infrastructure/database"
	"github.com/sangkips/boutique-api/internal/infrastructure/messaging"
	"github.com/sangkips/boutique-api/internal/infrastructure/repository"
	"github.com/sangkips/boutique-api/internal/infrastructure/sequence"
	"github.com/sangkips/boutique-api/internal/presentation/http/handler"
	"github.com/sangkips/boutique-api/internal/presentation/http/middleware"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/sangkips/boutique-api/pkg/oauth"
	"github.com/sangkips/boutique-api/pkg/printer"
	"github.com/sangkips/boutique-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ownerEmail    = "owner@example.com"
	ownerPassword = "owner-pass-1"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	jwt    *utils.JWTManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tables := config.CollectionConfig{
		Customers:       "customers",
		Items:           "items",
		Orders:          "orders",
		StitchingOrders: "stitching_orders",
		Fabrics:         "fabrics",
		Accessories:     "accessories",
	}
	require.NoError(t, database.AutoMigrate(db, tables, log))
	require.NoError(t, database.SeedDefaultData(db, config.OwnerConfig{Email: ownerEmail, Password: ownerPassword}, log))

	cfg := &config.Config{App: config.AppConfig{Name: "boutique-test"}, Collections: tables}
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db, tables.Customers)
	itemRepo := repository.NewItemRepository(db, tables.Items)
	orderRepo := repository.NewOrderRepository(db, tables.Orders)
	stitchingRepo := repository.NewStitchingOrderRepository(db, tables.StitchingOrders)
	fabricRepo := repository.NewFabricRepository(db, tables.Fabrics)
	accessoryRepo := repository.NewAccessoryRepository(db, tables.Accessories)
	settingsRepo := repository.NewSettingsRepository(db)
	publisher := messaging.NopPublisher{}

	customers := service.NewCustomerService(customerRepo, log)
	orders := service.NewOrderService(orderRepo, itemRepo, customers, sequence.NewStoreSequence(orderRepo, log), publisher, log)
	stitching := service.NewStitchingOrderService(stitchingRepo, fabricRepo, accessoryRepo, customers, sequence.NewStoreSequence(stitchingRepo, log), publisher, log)
	dashboard := service.NewDashboardService(orderRepo, stitchingRepo, itemRepo, fabricRepo, accessoryRepo, time.UTC, log)
	printing := service.NewPrinterService(printer.NewNullPrinter(), orderRepo, stitchingRepo, settingsRepo, "none", time.UTC, log)
	google := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{})

	h := &Handlers{
		Auth:           handler.NewAuthHandler(service.NewAuthService(userRepo, jwt, log), google, false, log),
		User:           handler.NewUserHandler(service.NewUserService(userRepo, log)),
		Customer:       handler.NewCustomerHandler(customers),
		Item:           handler.NewItemHandler(service.NewItemService(itemRepo, log)),
		Order:          handler.NewOrderHandler(orders, time.UTC),
		StitchingOrder: handler.NewStitchingOrderHandler(stitching, time.UTC),
		Inventory:      handler.NewInventoryHandler(service.NewInventoryService(fabricRepo, accessoryRepo, log)),
		Dashboard:      handler.NewDashboardHandler(dashboard),
		Report:         handler.NewReportHandler(service.NewReportService(orderRepo, stitchingRepo, time.UTC, log), time.UTC),
		Settings:       handler.NewSettingsHandler(service.NewSettingsService(settingsRepo, log)),
		Printer:        handler.NewPrinterHandler(printing),
	}

	router := Setup(h, &Deps{
		JWTManager:      jwt,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Log:             log,
		Ping:            sqlDB.PingContext,
	})
	return &testAPI{t: t, router: router, db: db, jwt: jwt}
}

func (a *testAPI) do(method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

func (a *testAPI) staffToken() string {
	a.t.Helper()
	token, err := a.jwt.GenerateAccessToken("staff-1", "staff@example.com", string(enum.RoleStaff), enum.RoleStaff.Permissions())
	require.NoError(a.t, err)
	return token
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "boutique-test")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/v1/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = api.do(http.MethodGet, "/api/v1/customers", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": ownerEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := api.login(ownerEmail, ownerPassword)
	w, env := api.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User        entity.User `json:"user"`
		Permissions []string    `json:"permissions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, ownerEmail, data.User.Email)
	assert.Contains(t, data.Permissions, enum.PermUsersManage)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestValidationErrorsListFields(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, env := api.do(http.MethodPost, "/api/v1/orders", token, gin.H{"customer_phone": "9876543210"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "items", env.Errors[0].Field)
}

func TestRetailOrderFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, _ := api.do(http.MethodPost, "/api/v1/items", token, gin.H{
		"item_id": "K-1", "title": "Kurta", "cost_price": 500, "marked_price": 900,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := api.do(http.MethodPost, "/api/v1/orders", token, gin.H{
		"customer_phone":  "9876543210",
		"customer_name":   "Asha",
		"items":           []gin.H{{"item_id": "K-1"}},
		"initial_payment": gin.H{"amount": "400", "method": "cash"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, int64(1), order.BillNo)
	assert.Equal(t, money.FromRupees(900), order.TotalAmount)
	assert.Equal(t, enum.OrderStatusPending, order.Status)

	// the item is sold now
	w, _ = api.do(http.MethodPost, "/api/v1/orders", token, gin.H{
		"customer_phone": "9876543210",
		"items":          []gin.H{{"item_id": "K-1"}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = api.do(http.MethodPost, "/api/v1/orders/1/payments", token, gin.H{"amount": 500, "method": "upi"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, enum.OrderStatusCompleted, order.Status)
	assert.Equal(t, 2, order.PaymentHistory.Len())

	w, env = api.do(http.MethodPatch, "/api/v1/orders/1/items/K-1", token, gin.H{"given": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.True(t, order.Items.Items[0].Given)

	w, _ = api.do(http.MethodGet, "/api/v1/orders/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = api.do(http.MethodGet, "/api/v1/orders/42", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = api.do(http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var byID entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &byID))
	assert.Equal(t, int64(1), byID.BillNo)

	w, env = api.do(http.MethodGet, "/api/v1/customers/9876543210", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var customer entity.Customer
	require.NoError(t, json.Unmarshal(env.Data, &customer))

	w, env = api.do(http.MethodGet, "/api/v1/customers/"+customer.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var customerByID entity.Customer
	require.NoError(t, json.Unmarshal(env.Data, &customerByID))
	assert.Equal(t, "9876543210", customerByID.Phone)

	w, _ = api.do(http.MethodGet, "/api/v1/orders/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderListStatusFilter(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, env := api.do(http.MethodGet, "/api/v1/orders?status=bogus", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "status", env.Errors[0].Field)

	w, _ = api.do(http.MethodGet, "/api/v1/stitching-orders?status=shipped", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/orders?status=stuck", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffCannotOverrideStatus(t *testing.T) {
	api := newTestAPI(t)
	staff := api.staffToken()

	w, _ := api.do(http.MethodPatch, "/api/v1/orders/1/status", staff, gin.H{"status": "stuck"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/users", staff, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/dashboard", staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotentCreateReplays(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)
	body := gin.H{"business_id": "F-1", "name": "Cotton", "total_quantity": 10, "purchase_rate": 120}

	first, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, body, middleware.IdempotencyKeyHeader, "key-1")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, body, middleware.IdempotencyKeyHeader, "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// without the key the duplicate business id is refused
	third, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, body)
	assert.Equal(t, http.StatusConflict, third.Code)

	body["name"] = "Silk"
	reused, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, body, middleware.IdempotencyKeyHeader, "key-1")
	assert.Equal(t, http.StatusUnprocessableEntity, reused.Code)
}

func TestStitchingOrderConsumesFabric(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, gin.H{"business_id": "F-1", "name": "Cotton", "total_quantity": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, _ = api.do(http.MethodPost, "/api/v1/stitching-orders", token, gin.H{
		"customer_phone":   "9876543210",
		"customer_name":    "Asha",
		"items":            []gin.H{{"description": "Blouse", "quantity": 1, "stitching_charge": 350}},
		"shop_fabric_cost": 200,
		"fabric_usages":    []gin.H{{"business_id": "F-1", "quantity": 2.5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := api.do(http.MethodGet, "/api/v1/fabrics/F-1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fabric entity.Fabric
	require.NoError(t, json.Unmarshal(env.Data, &fabric))
	assert.Equal(t, 2.5, fabric.Stock.UsedQuantity)

	w, env = api.do(http.MethodGet, "/api/v1/stitching-orders/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var order entity.StitchingOrder
	require.NoError(t, json.Unmarshal(env.Data, &order))

	w, _ = api.do(http.MethodGet, "/api/v1/stitching-orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(http.MethodPatch, "/api/v1/stitching-orders/1/items/x", token, gin.H{"given": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFabricEditKeepsConsumedStock(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, _ := api.do(http.MethodPost, "/api/v1/fabrics", token, gin.H{"business_id": "F-1", "name": "Cotton", "total_quantity": 0.3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, qty := range []float64{0.1, 0.2} {
		w, _ = api.do(http.MethodPost, "/api/v1/fabrics/F-1/consume", token, gin.H{"quantity": qty})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w, env := api.do(http.MethodPut, "/api/v1/fabrics/F-1", token, gin.H{"name": "Organic Cotton"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fabric entity.Fabric
	require.NoError(t, json.Unmarshal(env.Data, &fabric))
	assert.Equal(t, "Organic Cotton", fabric.Name)
	assert.InDelta(t, 0.3, fabric.Stock.UsedQuantity, 1e-9)
	assert.Zero(t, fabric.Stock.Remaining())
}

func TestExportOrdersReport(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(ownerEmail, ownerPassword)

	w, _ := api.do(http.MethodGet, "/api/v1/reports/orders.xlsx?from=2026-01-01&to=2026-01-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	w, _ = api.do(http.MethodGet, "/api/v1/reports/orders.xlsx?from=2026-13-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodGet, "/api/v1/reports/orders.xlsx", api.staffToken(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGoogleSignInNotConfigured(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/api/v1/auth/google", "", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
