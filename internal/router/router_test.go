package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopfront-next/internal/config"
	"github.com/shopfront-next/internal/constants"
	"github.com/shopfront-next/internal/models"
	"github.com/shopfront-next/internal/provider"
	"github.com/shopfront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := models.OpenDB("sqlite", fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name), gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db, true))
	require.NoError(t, models.InitDefaultAdmin(db, "root", "s3cret-pass"))

	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "shopper-secret", ExpireHours: 1},
		Order: config.OrderConfig{
			TrackingPrefix:  "TRK",
			TrackingRetries: 3,
			ShippingFee:     5,
			MinPhoneLength:  7,
		},
	}
	container, err := provider.NewContainer(cfg, db)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close(context.Background()) })
	return SetupRouter(cfg, container), container
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func seedProduct(t *testing.T, c *provider.Container, name string, stock int) *models.Product {
	t.Helper()
	product, err := c.ProductService.Create(context.Background(), service.ProductInput{
		Name:     name,
		Category: "lighting",
		Price:    models.MustMoney("10"),
		Stock:    stock,
	})
	require.NoError(t, err)
	return product
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w, _ := doJSON(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestGuestCartTokenRoundTrip(t *testing.T) {
	r, c := newTestRouter(t)
	lamp := seedProduct(t, c, "Lamp", 3)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": lamp.ID, "color": "red"}, nil)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	token := w.Header().Get(constants.HeaderCartToken)
	require.NotEmpty(t, token)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": lamp.ID, "color": "red"}, map[string]string{constants.HeaderCartToken: token})
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart", nil, map[string]string{constants.HeaderCartToken: token})
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	assert.Equal(t, token, w.Header().Get(constants.HeaderCartToken))

	var view service.CartView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Count)

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart", nil, nil)
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Empty(t, view.Items)
}

func TestAddUnknownProductReturnsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "missing"}, nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestShopperCheckoutAndHistory(t *testing.T) {
	r, c := newTestRouter(t)
	lamp := seedProduct(t, c, "Lamp", 5)
	token, _, err := c.AuthService.IssueShopperToken("ada@example.com", "Ada")
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": lamp.ID}, auth)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"name":           "Ada",
		"phone":          "08012345678",
		"address":        gin.H{"street": "1 Main St", "city": "Ikeja", "province": "Lagos"},
		"payment_method": constants.PaymentMethodCOD,
	}, auth)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	var order models.Order
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.Equal(t, "ada@example.com", order.Email)
	assert.True(t, strings.HasPrefix(order.TrackingID, "TRK"))

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart", nil, auth)
	var view service.CartView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Empty(t, view.Items)

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/orders/"+order.ID, nil, auth)
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)

	other, _, err := c.AuthService.IssueShopperToken("eve@example.com", "Eve")
	require.NoError(t, err)
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/orders/"+order.ID, nil, map[string]string{"Authorization": "Bearer " + other})
	assert.Equal(t, 404, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/public/orders/track", gin.H{"tracking_id": order.TrackingID}, nil)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	assert.NotContains(t, string(resp.Data), "08012345678")
	assert.NotContains(t, string(resp.Data), "ada@example.com")
}

func TestOrderHistoryRequiresShopper(t *testing.T) {
	r, _ := newTestRouter(t)
	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/orders", nil, nil)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/orders", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAdminLoginAndOrderStatusFlow(t *testing.T) {
	r, c := newTestRouter(t)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/admin/orders", nil, nil)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/admin/login", gin.H{"username": "root", "password": "wrong"}, nil)
	assert.Equal(t, 401, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/admin/login", gin.H{"username": "root", "password": "s3cret-pass"}, nil)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	auth := map[string]string{"Authorization": "Bearer " + login.Token}

	order, err := c.OrderService.CreateOrder(context.Background(), service.CreateOrderInput{
		Name:          "Bola",
		Phone:         "08099999999",
		Email:         "bola@example.com",
		Address:       models.StructuredAddress{Street: "2 Side St", City: "Yaba", Province: "Lagos"},
		Items:         []service.OrderItemInput{{ProductID: "p1", Name: "Lamp", Price: models.MustMoney("10"), Quantity: 1}},
		PaymentMethod: constants.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, resp = doJSON(t, r, http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", gin.H{"status": constants.OrderStatusDone}, auth)
	assert.Equal(t, 422, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodPatch, "/api/v1/admin/orders/"+order.ID+"/status", gin.H{"status": constants.OrderStatusAccepted}, auth)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/admin/orders/search?q=08099999999", nil, auth)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	assert.Contains(t, string(resp.Data), order.TrackingID)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/admin/logout", nil, auth)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/admin/me", nil, auth)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAdminRBACForbidsUngrantedRole(t *testing.T) {
	r, c := newTestRouter(t)
	admin, err := c.AuthService.CreateAdmin("auditor", "long-enough", false)
	require.NoError(t, err)
	require.NoError(t, c.AuthzService.SetAdminRoles(admin.ID, []string{"readonly_auditor"}))

	_, token, _, err := c.AuthService.Login("auditor", "long-enough")
	require.NoError(t, err)
	auth := map[string]string{"Authorization": "Bearer " + token}

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/admin/products", nil, auth)
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/admin/products", gin.H{"name": "Lamp", "category": "lighting", "price": "10", "stock": 1}, auth)
	assert.Equal(t, 403, resp.StatusCode)

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/admin/me", nil, auth)
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)
}
