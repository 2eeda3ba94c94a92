package order_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/alaminute/backend-prints/internal/order"
	"github.com/alaminute/backend-prints/internal/repo"
)

type fakeOrderStore struct {
	orders        map[string]repo.Order
	collideFirstN int
	inserts       int
	insertErr     error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]repo.Order)}
}

func (f *fakeOrderStore) Insert(_ context.Context, o *repo.Order) error {
	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.inserts <= f.collideFirstN {
		return repo.ErrDuplicateKey
	}
	if _, exists := f.orders[o.OrderNumber]; exists {
		return repo.ErrDuplicateKey
	}
	o.ID = primitive.NewObjectID()
	f.orders[o.OrderNumber] = *o
	return nil
}

func (f *fakeOrderStore) FindByNumberAndEmail(_ context.Context, orderNumber, email string) (repo.Order, error) {
	o, ok := f.orders[orderNumber]
	if !ok || o.CustomerInfo.Email != email {
		return repo.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderStore) GetByNumber(_ context.Context, orderNumber string) (repo.Order, error) {
	o, ok := f.orders[orderNumber]
	if !ok {
		return repo.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, orderNumber, status string) error {
	o, ok := f.orders[orderNumber]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	f.orders[orderNumber] = o
	return nil
}

func newOrderFixture(t *testing.T) (*fakeOrderStore, *order.Service, *order.Handler) {
	t.Helper()
	store := newFakeOrderStore()
	svc, err := order.NewService(order.ServiceConfig{Store: store})
	require.NoError(t, err)
	return store, svc, order.NewHandler(order.HandlerConfig{Service: svc})
}

const createBody = `{
	"items": [
		{"sku": "MOUNTAIN-MIST-4050-BLA-STA", "name": "Mountain Mist", "variant": "40x50 cm / Siyah / Standart Cam", "price": 175, "quantity": 2}
	],
	"customerInfo": {"name": "Ayşe Yılmaz", "email": "Ayse@Example.com", "phone": "+90 555 000 00 00"},
	"shippingAddress": {"line1": "Bağdat Cad. 1", "city": "İstanbul", "district": "Kadıköy"}
}`

var orderNoPattern = regexp.MustCompile(`^ALM-\d{4}-\d{5}$`)

func TestOrderCreate(t *testing.T) {
	t.Run("recomputes totals and starts pending", func(t *testing.T) {
		store, _, handler := newOrderFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Success     bool   `json:"success"`
			OrderID     string `json:"orderId"`
			OrderNumber string `json:"orderNumber"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.NotEmpty(t, resp.OrderID)
		require.Regexp(t, orderNoPattern, resp.OrderNumber)

		stored := store.orders[resp.OrderNumber]
		require.Equal(t, repo.OrderStatusPending, stored.Status)
		require.InDelta(t, 350.0, stored.Subtotal, 1e-9)
		require.InDelta(t, 49.90, stored.ShippingCost, 1e-9)
		require.InDelta(t, 399.90, stored.Total, 1e-9)
		require.Equal(t, "ayse@example.com", stored.CustomerInfo.Email)
	})

	t.Run("retries colliding order numbers", func(t *testing.T) {
		store, svc, _ := newOrderFixture(t)
		store.collideFirstN = 3

		var in order.CreateInput
		require.NoError(t, json.Unmarshal([]byte(createBody), &in))
		out, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, 4, store.inserts)
		require.Regexp(t, orderNoPattern, out.OrderNumber)
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		store, svc, _ := newOrderFixture(t)
		store.collideFirstN = 100

		var in order.CreateInput
		require.NoError(t, json.Unmarshal([]byte(createBody), &in))
		_, err := svc.Create(context.Background(), in)
		require.Error(t, err)
		require.ErrorIs(t, err, repo.ErrDuplicateKey)
		require.Equal(t, 5, store.inserts)
	})

	t.Run("store failure stays opaque but is logged", func(t *testing.T) {
		store := newFakeOrderStore()
		store.insertErr = errors.New("connection reset by peer")
		svc, err := order.NewService(order.ServiceConfig{Store: store})
		require.NoError(t, err)
		var logs bytes.Buffer
		handler := order.NewHandler(order.HandlerConfig{Service: svc, Logger: zerolog.New(&logs)})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(createBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "internal error")
		require.NotContains(t, rec.Body.String(), "connection reset")
		require.Contains(t, logs.String(), "connection reset")
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, _, handler := newOrderFixture(t)
		body := `{"items": [], "customerInfo": {"name": "A", "email": "a@b.co", "phone": "1"}, "shippingAddress": {"line1": "x", "city": "y", "district": "z"}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		_, _, handler := newOrderFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOrderLookup(t *testing.T) {
	store, _, handler := newOrderFixture(t)
	store.orders["ALM-2026-00042"] = repo.Order{
		OrderNumber:  "ALM-2026-00042",
		CustomerInfo: repo.Customer{Email: "ayse@example.com"},
		Total:        399.90,
		Status:       repo.OrderStatusPending,
	}

	t.Run("requires both parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?orderNumber=ALM-2026-00042", nil)
		rec := httptest.NewRecorder()
		handler.Lookup(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong email is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?orderNumber=ALM-2026-00042&email=other@example.com", nil)
		rec := httptest.NewRecorder()
		handler.Lookup(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("matching email returns the order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?orderNumber=ALM-2026-00042&email=Ayse@Example.com", nil)
		rec := httptest.NewRecorder()
		handler.Lookup(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data repo.Order `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ALM-2026-00042", resp.Data.OrderNumber)
		require.InDelta(t, 399.90, resp.Data.Total, 1e-9)
	})
}

func TestAdminPatchStatus(t *testing.T) {
	patch := func(handler *order.AdminHandler, orderNumber, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/"+orderNumber+"/status", strings.NewReader(body))
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("orderNumber", orderNumber)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		handler.PatchStatus(rec, req)
		return rec
	}

	newFixture := func(t *testing.T) (*fakeOrderStore, *order.AdminHandler) {
		store, svc, _ := newOrderFixture(t)
		store.orders["ALM-2026-00042"] = repo.Order{OrderNumber: "ALM-2026-00042", Status: repo.OrderStatusPending}
		return store, &order.AdminHandler{Service: svc}
	}

	t.Run("legal transition succeeds", func(t *testing.T) {
		store, handler := newFixture(t)
		rec := patch(handler, "ALM-2026-00042", `{"status": "paid"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, repo.OrderStatusPaid, store.orders["ALM-2026-00042"].Status)
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		store, handler := newFixture(t)
		rec := patch(handler, "ALM-2026-00042", `{"status": "shipped"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, repo.OrderStatusPending, store.orders["ALM-2026-00042"].Status)
	})

	t.Run("unknown status is 400", func(t *testing.T) {
		_, handler := newFixture(t)
		rec := patch(handler, "ALM-2026-00042", `{"status": "teleported"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		_, handler := newFixture(t)
		rec := patch(handler, "ALM-9999-99999", `{"status": "paid"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("shipped orders can still be cancelled", func(t *testing.T) {
		store, handler := newFixture(t)
		store.orders["ALM-2026-00042"] = repo.Order{OrderNumber: "ALM-2026-00042", Status: repo.OrderStatusShipped}
		rec := patch(handler, "ALM-2026-00042", `{"status": "cancelled"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, repo.OrderStatusCancelled, store.orders["ALM-2026-00042"].Status)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		store, handler := newFixture(t)
		store.orders["ALM-2026-00042"] = repo.Order{OrderNumber: "ALM-2026-00042", Status: repo.OrderStatusCancelled}
		rec := patch(handler, "ALM-2026-00042", `{"status": "paid"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}
