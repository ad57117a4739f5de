package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"airrental-backend/config"
	"airrental-backend/internal/api"
	"airrental-backend/internal/db"
	"airrental-backend/internal/model"
	"airrental-backend/internal/mw"
	"airrental-backend/internal/simulator"
	"airrental-backend/internal/store"
)

const (
	testJWTSecret     = "integration-test-secret"
	testInternalToken = "integration-internal-token"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB

	customerToken string
	investorToken string
	adminToken    string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := testDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(testDB))
	require.NoError(t, db.SeedCatalog(testDB))

	customer := model.User{Name: "Customer", Role: model.RoleCustomer}
	investor := model.User{Name: "Investor", Role: model.RoleInvestor}
	admin := model.User{Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(&customer).Error)
	require.NoError(t, testDB.Create(&investor).Error)
	require.NoError(t, testDB.Create(&admin).Error)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.InternalToken = testInternalToken

	appStore := store.NewGormStore(testDB)
	sim := simulator.New(appStore)
	router := api.NewRouter(cfg, appStore, sim)

	env := &testEnv{router: router, db: testDB}
	env.customerToken, err = mw.SignToken(testJWTSecret, customer.ID, model.RoleCustomer, time.Hour)
	require.NoError(t, err)
	env.investorToken, err = mw.SignToken(testJWTSecret, investor.ID, model.RoleInvestor, time.Hour)
	require.NoError(t, err)
	env.adminToken, err = mw.SignToken(testJWTSecret, admin.ID, model.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return env
}

// request performs one JSON request against the router and decodes the
// response body when out is non-nil.
func (e *testEnv) request(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
	}
	return w.Code
}

func TestRentalLifecycle(t *testing.T) {
	env := setupEnv(t)

	var cardID int64
	t.Run("store a payment card", func(t *testing.T) {
		var card model.PaymentCard
		code := env.request(t, http.MethodPost, "/api/payment-cards", env.customerToken, gin.H{
			"last4": "4242", "holder_name": "JANE ROE", "expiry_month": 12, "expiry_year": 2030, "brand": "VISA",
		}, &card)
		require.Equal(t, http.StatusCreated, code)
		assert.True(t, card.IsDefault, "first card becomes default")
		cardID = card.ID
	})

	var orderID int64
	t.Run("create an order from a service request", func(t *testing.T) {
		var order model.CustomerOrder
		code := env.request(t, http.MethodPost, "/api/orders", env.customerToken, gin.H{
			"rooms_data": []gin.H{{
				"name":             "Living Room",
				"room_type":        "HOME",
				"area_m2":          50,
				"ceiling_height_m": 2.5,
				"services":         []string{"cleaning", "humidifying"},
			}},
		}, &order)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, model.OrderPending, order.Status)
		require.Len(t, order.OrderRooms, 1)
		require.Len(t, order.OrderRooms[0].DeviceTypes, 1, "one combo unit should cover both services")
		assert.Equal(t, model.CategoryCombo, order.OrderRooms[0].DeviceTypes[0].DeviceType.DeviceCategory)
		orderID = order.ID
	})

	t.Run("quote the order cost", func(t *testing.T) {
		var resp struct {
			TotalCostUSD decimal.Decimal `json:"total_cost_usd"`
		}
		code := env.request(t, http.MethodGet, fmt.Sprintf("/api/orders/%d/cost", orderID), env.customerToken, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		// 50m² × 2.5m = 125m³ × (0.10 + 0.10), aroma riding free
		assert.True(t, resp.TotalCostUSD.Equal(decimal.NewFromFloat(25.0)), "got %s", resp.TotalCostUSD)
	})

	var deviceID, subscriptionID int64
	t.Run("pay the order", func(t *testing.T) {
		var resp struct {
			Order          model.CustomerOrder    `json:"order"`
			Subscription   model.Subscription     `json:"subscription"`
			Devices        []model.DeviceInstance `json:"devices"`
			DevicesCreated int                    `json:"devices_created"`
		}
		code := env.request(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/pay", orderID), env.customerToken,
			gin.H{"payment_card_id": cardID}, &resp)
		require.Equal(t, http.StatusOK, code)

		assert.Equal(t, model.OrderApproved, resp.Order.Status)
		assert.Equal(t, 1, resp.DevicesCreated)
		require.Len(t, resp.Devices, 1)
		assert.Equal(t, model.DeviceActive, resp.Devices[0].Status)
		assert.True(t, resp.Devices[0].IsPowerOn)
		deviceID = resp.Devices[0].ID

		assert.Equal(t, model.SubscriptionSuspended, resp.Subscription.Status)
		assert.True(t, resp.Subscription.MonthlyAmountUSD.Equal(decimal.NewFromFloat(25.0)))
		subscriptionID = resp.Subscription.ID
	})

	t.Run("double payment is rejected without side effects", func(t *testing.T) {
		var devicesBefore int64
		env.db.Model(&model.DeviceInstance{}).Count(&devicesBefore)

		code := env.request(t, http.MethodPost, fmt.Sprintf("/api/orders/%d/pay", orderID), env.customerToken,
			gin.H{"payment_card_id": cardID}, nil)
		assert.Equal(t, http.StatusBadRequest, code)

		var devicesAfter int64
		env.db.Model(&model.DeviceInstance{}).Count(&devicesAfter)
		assert.Equal(t, devicesBefore, devicesAfter)
	})

	t.Run("toggle the provisioned device", func(t *testing.T) {
		var device model.DeviceInstance
		code := env.request(t, http.MethodPatch, fmt.Sprintf("/api/devices/%d/toggle", deviceID), env.customerToken,
			gin.H{"is_power_on": false}, &device)
		require.Equal(t, http.StatusOK, code)
		assert.False(t, device.IsPowerOn)
	})

	t.Run("metrics endpoint synthesizes readings on demand", func(t *testing.T) {
		var resp struct {
			DeviceID int64               `json:"device_id"`
			Range    string              `json:"range"`
			Points   []model.DeviceMetric `json:"points"`
		}
		code := env.request(t, http.MethodGet, fmt.Sprintf("/api/devices/%d/metrics?range=1d", deviceID), env.customerToken, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, deviceID, resp.DeviceID)
		assert.NotEmpty(t, resp.Points, "a fresh device should get simulated data")
	})

	t.Run("admin activates the order, subscription follows", func(t *testing.T) {
		var resp struct {
			Order        model.CustomerOrder `json:"order"`
			Subscription *model.Subscription `json:"subscription"`
		}
		code := env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", orderID), env.adminToken,
			gin.H{"status": "ACTIVE"}, &resp)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, model.OrderActive, resp.Order.Status)
		require.NotNil(t, resp.Subscription)
		assert.Equal(t, model.SubscriptionActive, resp.Subscription.Status)
	})

	t.Run("customer cancels the active subscription", func(t *testing.T) {
		var sub model.Subscription
		code := env.request(t, http.MethodPost, fmt.Sprintf("/api/subscriptions/%d/cancel", subscriptionID), env.customerToken, nil, &sub)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, model.SubscriptionCancelled, sub.Status)
		assert.NotNil(t, sub.CancelledAt)
	})

	t.Run("payment history carries analytics", func(t *testing.T) {
		var resp struct {
			Payments  []model.Payment        `json:"payments"`
			Analytics store.PaymentAnalytics `json:"analytics"`
		}
		code := env.request(t, http.MethodGet, "/api/payments", env.customerToken, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, resp.Payments, 1)
		assert.True(t, resp.Analytics.TotalPaidUSD.Equal(decimal.NewFromFloat(25.0)))
		assert.Equal(t, int64(1), resp.Analytics.Recent7Days.Count)
	})
}

func TestInvestorFlow(t *testing.T) {
	env := setupEnv(t)

	// An active device worth investing in.
	var combo model.DeviceType
	require.NoError(t, env.db.Where("device_category = ?", model.CategoryCombo).First(&combo).Error)
	device := model.DeviceInstance{
		DeviceTypeID: combo.ID,
		Status:       model.DeviceActive,
		SerialNumber: uuid.NewString(),
		IsPowerOn:    true,
	}
	require.NoError(t, env.db.Create(&device).Error)

	t.Run("budget filters the device listing", func(t *testing.T) {
		var resp struct {
			Devices []store.AvailableDevice `json:"devices"`
		}
		code := env.request(t, http.MethodGet, "/api/investor/devices", env.investorToken, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		require.Len(t, resp.Devices, 1)

		minInvestment := resp.Devices[0].MinInvestmentUSD
		tooSmall := minInvestment.Sub(decimal.NewFromInt(1))
		code = env.request(t, http.MethodGet, "/api/investor/devices?budget="+tooSmall.String(), env.investorToken, nil, &resp)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, resp.Devices)
	})

	var investmentID int64
	t.Run("open and confirm an investment", func(t *testing.T) {
		var inv model.Investment
		code := env.request(t, http.MethodPost, "/api/investor/investments", env.investorToken, gin.H{
			"device_id": device.ID, "amount_usd": "500",
		}, &inv)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, model.InvestmentPending, inv.Status)
		investmentID = inv.ID

		code = env.request(t, http.MethodPost, fmt.Sprintf("/api/investor/investments/%d/confirm", investmentID), env.investorToken, nil, &inv)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, model.InvestmentPaid, inv.Status)
	})

	t.Run("dashboard reflects the paid investment", func(t *testing.T) {
		var summary store.DashboardSummary
		code := env.request(t, http.MethodGet, "/api/investor/dashboard", env.investorToken, nil, &summary)
		require.Equal(t, http.StatusOK, code)
		assert.True(t, summary.TotalInvestedUSD.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, int64(1), summary.ActiveDevicesCount)
	})
}

func TestAuthBoundaries(t *testing.T) {
	env := setupEnv(t)

	t.Run("missing token", func(t *testing.T) {
		code := env.request(t, http.MethodGet, "/api/rooms", "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("wrong role", func(t *testing.T) {
		code := env.request(t, http.MethodGet, "/api/rooms", env.investorToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, code)

		code = env.request(t, http.MethodGet, "/api/investor/dashboard", env.customerToken, nil, nil)
		assert.Equal(t, http.StatusForbidden, code)

		code = env.request(t, http.MethodPatch, "/api/admin/orders/1/status", env.customerToken, gin.H{"status": "ACTIVE"}, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("internal ingestion requires the shared token", func(t *testing.T) {
		var combo model.DeviceType
		require.NoError(t, env.db.Where("device_category = ?", model.CategoryCombo).First(&combo).Error)
		device := model.DeviceInstance{
			DeviceTypeID: combo.ID,
			Status:       model.DeviceActive,
			SerialNumber: uuid.NewString(),
		}
		require.NoError(t, env.db.Create(&device).Error)

		body := gin.H{"device_id": device.ID, "pm25": 12.5}
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/internal/metrics", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/internal/metrics", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Internal-Token", testInternalToken)
		w = httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)

		var count int64
		env.db.Model(&model.DeviceMetric{}).Where("device_id = ?", device.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}
