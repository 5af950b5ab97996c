package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/farmstore-admin/internal/application/service"
	"github.com/sangkips/farmstore-admin/internal/clock"
	"github.com/sangkips/farmstore-admin/internal/config"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	domainRepo "github.com/sangkips/farmstore-admin/internal/domain/repository"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/database"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/metrics"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/repository"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/handler"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/middleware"
	"github.com/sangkips/farmstore-admin/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	jwt    *utils.JWTManager
	orders map[string]uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		App: config.AppConfig{Name: "farmstore-admin", Env: "test"},
		Report: config.ReportConfig{
			Title:         "Orders Report",
			Timezone:      "UTC",
			DefaultPeriod: "monthly",
			SnapshotTTL:   5 * time.Minute,
			MaxSnapshots:  16,
		},
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	ts := &testServer{
		jwt:    utils.NewJWTManager("test-secret", time.Hour),
		orders: seed(t, db, orderRepo, productRepo),
	}

	clk := clock.NewFakeClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	m := metrics.NewReportMetrics(prometheus.NewRegistry(), "test")
	snapshots := service.NewSnapshotStore(clk, cfg.Report.SnapshotTTL, cfg.Report.MaxSnapshots)

	exportLimiter := middleware.NewUserRateLimiter(middleware.PerWindow(1, 60))
	t.Cleanup(exportLimiter.Stop)

	ts.router = Setup(&Handlers{
		Report:   handler.NewReportHandler(service.NewReportService(orderRepo, productRepo, settingsRepo, snapshots, clk, m, cfg.Report)),
		Order:    handler.NewOrderHandler(service.NewOrderService(orderRepo, snapshots, m)),
		Settings: handler.NewSettingsHandler(service.NewSettingsService(settingsRepo, cfg.Report)),
	}, &Deps{
		JWTManager:    ts.jwt,
		Cfg:           cfg,
		Logger:        zap.NewNop(),
		ExportLimiter: exportLimiter,
	})
	return ts
}

func seed(t *testing.T, db *gorm.DB, orders domainRepo.OrderRepository, products domainRepo.ProductRepository) map[string]uuid.UUID {
	t.Helper()
	ctx := context.Background()

	seedProduct := &entity.Product{Name: "Maize Seed", Price: decimal.NewFromInt(100)}
	npk := &entity.Product{Name: "Fertilizer, NPK", Price: decimal.NewFromInt(50)}
	hoe := &entity.Product{Name: "Hoe", Price: decimal.NewFromInt(200)}
	for _, p := range []*entity.Product{seedProduct, npk, hoe} {
		require.NoError(t, products.Create(ctx, p))
	}
	alice := &entity.User{FirstName: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(alice).Error)

	mpesa := "mpesa"
	newOrder := func(created time.Time, status enum.OrderStatus, product *entity.Product, qty int, discount int64) *entity.Order {
		return &entity.Order{
			Status:    status,
			CreatedAt: created,
			Lines: []entity.OrderLine{{
				ProductID: product.ID,
				Quantity:  qty,
				Discount:  decimal.NewNullDecimal(decimal.NewFromInt(discount)),
			}},
			Payments: []entity.Payment{{Method: &mpesa, CreatedAt: created}},
		}
	}

	a := newOrder(time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), enum.OrderStatusCompleted, seedProduct, 2, 10)
	a.CustomerID = &alice.ID
	b := newOrder(time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC), enum.OrderStatusPending, npk, 1, 0)
	c := newOrder(time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC), enum.OrderStatusCompleted, hoe, 1, 0)
	sep1 := newOrder(time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), enum.OrderStatusCompleted, hoe, 1, 80)
	sep2 := newOrder(time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC), enum.OrderStatusCompleted, seedProduct, 1, 20)

	for _, o := range []*entity.Order{a, b, c, sep1, sep2} {
		require.NoError(t, orders.Create(ctx, o))
	}
	return map[string]uuid.UUID{"a": a.ID, "b": b.ID, "c": c.ID}
}

func (ts *testServer) token(t *testing.T, permissions ...string) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(uuid.New(), "ops@farmstore.test", []string{"admin"}, permissions)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type overviewBody struct {
	Label   string `json:"label"`
	Current struct {
		TotalOrders  int     `json:"total_orders"`
		Completed    int     `json:"completed"`
		Pending      int     `json:"pending"`
		NetRevenue   float64 `json:"net_revenue"`
		GrossRevenue float64 `json:"gross_revenue"`
		AverageOrder float64 `json:"average_order_value"`
	} `json:"current"`
	Comparison struct {
		Revenue float64 `json:"revenue"`
	} `json:"comparison"`
	Orders struct {
		Items []struct {
			ID            uuid.UUID `json:"id"`
			CustomerEmail string    `json:"customer_email"`
			Net           float64   `json:"net"`
		} `json:"items"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	} `json:"orders"`
}

func decodeOverview(t *testing.T, w *httptest.ResponseRecorder) overviewBody {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, env.Message)
	var body overviewBody
	require.NoError(t, json.Unmarshal(env.Data, &body))
	return body
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = ts.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReportRequiresAuthAndPermission(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/reports/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders", ts.token(t, "manage-orders"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReportOverview(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, PermissionViewReports)

	w := ts.do(http.MethodGet, "/api/v1/reports/orders?period=monthly", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeOverview(t, w)

	assert.Equal(t, "This Month", body.Label)
	assert.Equal(t, 3, body.Current.TotalOrders)
	assert.Equal(t, 2, body.Current.Completed)
	assert.Equal(t, 1, body.Current.Pending)
	assert.Equal(t, 450.0, body.Current.GrossRevenue)
	assert.Equal(t, 430.0, body.Current.NetRevenue)
	assert.Equal(t, 143.33, body.Current.AverageOrder)
	assert.InDelta(t, 115.0, body.Comparison.Revenue, 1e-9)
	require.Len(t, body.Orders.Items, 3)
	assert.Equal(t, ts.orders["c"], body.Orders.Items[0].ID)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders?period=monthly&search=ALICE&per_page=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeOverview(t, w)
	require.Len(t, body.Orders.Items, 1)
	assert.Equal(t, "alice@example.com", body.Orders.Items[0].CustomerEmail)
	assert.Equal(t, 180.0, body.Orders.Items[0].Net)
	assert.Equal(t, 3, body.Current.TotalOrders)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders?period=fortnight", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportExport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, PermissionViewReports)

	w := ts.do(http.MethodGet, "/api/v1/reports/orders/export?period=monthly&format=csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="orders-report-monthly-2026-10-17.csv"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "Orders Report\n"))
	assert.Contains(t, body, "Generated By,ops@farmstore.test")
	assert.Contains(t, body, "Net Revenue,430.00")
	assert.Contains(t, body, `"Fertilizer, NPK"`)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders/export?period=monthly&format=csv", token, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	other := ts.token(t, PermissionViewReports)
	w = ts.do(http.MethodGet, "/api/v1/reports/orders/export?format=pdf", other, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t, PermissionViewReports, PermissionManageOrders)

	w := ts.do(http.MethodGet, "/api/v1/reports/orders?period=monthly", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	path := "/api/v1/orders/" + ts.orders["b"].String() + "/status"
	w = ts.do(http.MethodPut, path, token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var result struct {
		Previous string `json:"previous"`
		Status   string `json:"status"`
		Outcome  string `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "pending", result.Previous)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, "applied", result.Outcome)

	w = ts.do(http.MethodGet, "/api/v1/reports/orders?period=monthly", token, nil)
	body := decodeOverview(t, w)
	assert.Equal(t, 3, body.Current.Completed)
	assert.Equal(t, 0, body.Current.Pending)

	w = ts.do(http.MethodPut, "/api/v1/orders/not-a-uuid/status", token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPut, "/api/v1/orders/"+uuid.NewString()+"/status", token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPut, path, ts.token(t, PermissionViewReports), map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	w := ts.do(http.MethodPut, "/api/v1/settings", token, map[string]string{"timezone": "Africa/Nairobi", "default_report_period": "weekly"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/api/v1/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default_report_period":"weekly"`)

	w = ts.do(http.MethodPut, "/api/v1/settings", token, map[string]string{"timezone": "Nowhere/Else"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
