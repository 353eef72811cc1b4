package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/OzgurKrks/mikrosevice/services/order/internal/clients"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/models"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/repo"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/service"
	"github.com/OzgurKrks/mikrosevice/services/order/internal/transport"
)

type testEnv struct {
	E        *echo.Echo
	H        *OrderHTTP
	DB       *gorm.DB
	Users    map[uint]clients.User
	Products map[uint]clients.Product
}

// Fake user and product services stand in for the real collaborators;
// the order service talks to them over real HTTP.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	env := &testEnv{
		E:  echo.New(),
		DB: db,
		Users: map[uint]clients.User{
			1: {ID: 1, Email: "a@x.com", Name: "Alice"},
		},
		Products: map[uint]clients.Product{
			1: {ID: 1, Name: "Widget", Price: 10.00, Stock: 5},
		},
	}

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id uint
		if _, err := fmt.Sscanf(r.URL.Path, "/api/users/%d", &id); err != nil {
			http.Error(w, `{"message":"bad path"}`, http.StatusBadRequest)
			return
		}
		user, ok := env.Users[id]
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(user)
	}))
	t.Cleanup(userSrv.Close)

	productSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id uint
		if _, err := fmt.Sscanf(r.URL.Path, "/api/products/%d", &id); err != nil {
			http.Error(w, `{"message":"bad path"}`, http.StatusBadRequest)
			return
		}
		prod, ok := env.Products[id]
		if !ok {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(prod)
	}))
	t.Cleanup(productSrv.Close)

	svc := &service.OrderService{
		Repo:     &repo.GormRepo{DB: db},
		Users:    clients.NewUserClient(userSrv.URL),
		Products: clients.NewProductClient(productSrv.URL),
	}
	env.H = &OrderHTTP{Svc: svc}

	return env
}

func (env *testEnv) doJSON(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) createOrder(t *testing.T, quantity int) (*httptest.ResponseRecorder, error) {
	t.Helper()

	rec, c := env.doJSON(http.MethodPost, "/api/orders", transport.CreateOrderRequest{
		UserID: 1,
		Items:  []transport.CreateOrderItem{{ProductID: 1, Quantity: quantity}},
	})
	return rec, env.H.CreateOrder(c)
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()

	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, code, he.Code)
	return he
}

func (env *testEnv) countRows(t *testing.T) (orders, items int64) {
	t.Helper()

	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 3)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.EqualValues(t, 1, order.UserID)
	assert.EqualValues(t, 30.00, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Widget", order.Items[0].ProductName)
	assert.EqualValues(t, 10.00, order.Items[0].Price)
	assert.Equal(t, 3, order.Items[0].Quantity)

	orders, items := env.countRows(t)
	assert.EqualValues(t, 1, orders)
	assert.EqualValues(t, 1, items)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.createOrder(t, 10)
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, fmt.Sprint(he.Message), "insufficient stock")

	orders, items := env.countRows(t)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

// Stock is checked but never decremented by order creation: after a
// successful order for 3 of 5, a request for 10 still fails against the
// original stock, and another order for 3 still succeeds.
func TestCreateOrderStockNotDecremented(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 3)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, err = env.createOrder(t, 10)
	requireHTTPError(t, err, http.StatusBadRequest)

	rec, err = env.createOrder(t, 3)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodPost, "/api/orders", transport.CreateOrderRequest{
		UserID: 42,
		Items:  []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	err := env.H.CreateOrder(c)
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, fmt.Sprint(he.Message), "user not found")

	orders, items := env.countRows(t)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodPost, "/api/orders", transport.CreateOrderRequest{
		UserID: 1,
		Items:  []transport.CreateOrderItem{{ProductID: 42, Quantity: 1}},
	})
	err := env.H.CreateOrder(c)
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, fmt.Sprint(he.Message), "product not found")

	orders, _ := env.countRows(t)
	assert.EqualValues(t, 0, orders)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		req  transport.CreateOrderRequest
	}{
		{name: "missing user", req: transport.CreateOrderRequest{Items: []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}}}},
		{name: "no items", req: transport.CreateOrderRequest{UserID: 1}},
		{name: "zero quantity", req: transport.CreateOrderRequest{UserID: 1, Items: []transport.CreateOrderItem{{ProductID: 1, Quantity: 0}}}},
		{name: "missing product id", req: transport.CreateOrderRequest{UserID: 1, Items: []transport.CreateOrderItem{{Quantity: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := env.doJSON(http.MethodPost, "/api/orders", tt.req)
			requireHTTPError(t, env.H.CreateOrder(c), http.StatusBadRequest)
		})
	}
}

// The snapshotted item price keeps the order total stable against later
// product price changes.
func TestOrderTotalSurvivesPriceChange(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 3)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	prod := env.Products[1]
	prod.Price = 99.99
	env.Products[1] = prod

	rec, c := env.doJSON(http.MethodGet, "/api/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got transport.OrderWithUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 30.00, got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 10.00, got.Items[0].Price)
}

func TestGetOrderEnrichesUserName(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c := env.doJSON(http.MethodGet, "/api/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.GetOrder(c))

	var got transport.OrderWithUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.UserName)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodGet, "/api/orders/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	requireHTTPError(t, env.H.GetOrder(c), http.StatusNotFound)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c := env.doJSON(http.MethodPut, "/api/orders/1/status", transport.UpdateStatusRequest{Status: models.StatusConfirmed})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	require.NoError(t, env.DB.First(&order, 1).Error)
	assert.Equal(t, models.StatusConfirmed, order.Status)
}

func TestUpdateStatusInvalid(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, c := env.doJSON(http.MethodPut, "/api/orders/1/status", transport.UpdateStatusRequest{Status: "teleported"})
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, env.H.UpdateStatus(c), http.StatusBadRequest)
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodPut, "/api/orders/99/status", transport.UpdateStatusRequest{Status: models.StatusConfirmed})
	c.SetParamNames("id")
	c.SetParamValues("99")
	requireHTTPError(t, env.H.UpdateStatus(c), http.StatusNotFound)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.createOrder(t, 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c := env.doJSON(http.MethodDelete, "/api/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.DeleteOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	orders, items := env.countRows(t)
	assert.EqualValues(t, 0, orders)
	assert.EqualValues(t, 0, items)
}

func TestDeleteOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSON(http.MethodDelete, "/api/orders/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	requireHTTPError(t, env.H.DeleteOrder(c), http.StatusNotFound)
}

func TestListOrdersFilterByUser(t *testing.T) {
	env := newTestEnv(t)
	env.Users[2] = clients.User{ID: 2, Email: "b@x.com", Name: "Bob"}

	rec, err := env.createOrder(t, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c := env.doJSON(http.MethodPost, "/api/orders", transport.CreateOrderRequest{
		UserID: 2,
		Items:  []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = env.doJSON(http.MethodGet, "/api/orders?user_id=2", nil)
	require.NoError(t, env.H.GetOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.EqualValues(t, 2, resp.Orders[0].UserID)
}
