package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersvc "github.com/livemart/livemart-backend/internal/orders"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

type stubOrderService struct {
	created    *ordersvc.CreateOrderInput
	order      *ordersvc.OrderDTO
	listInput  ordersvc.ListOrdersInput
	listResult *ordersvc.OrderListResult
	status     string
	err        error
}

func (s *stubOrderService) Create(ctx context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	s.created = &input
	return s.order, s.err
}

func (s *stubOrderService) ListUserOrders(ctx context.Context, input ordersvc.ListOrdersInput) (*ordersvc.OrderListResult, error) {
	s.listInput = input
	return s.listResult, s.err
}

func (s *stubOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*ordersvc.OrderDTO, error) {
	s.status = status
	return s.order, s.err
}

func TestOrderCreateForwardsPayload(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &stubOrderService{order: &ordersvc.OrderDTO{ID: uuid.New(), UserID: userID}}
	handler := OrderCreate(svc, nil)

	payload := map[string]any{
		"items":            []map[string]any{{"product_id": productID.String(), "quantity": 2}},
		"delivery_address": "12 Market Road",
		"payment_method":   "online",
		"total_amount":     199.99,
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/orders/"+userID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil {
		t.Fatal("create input not forwarded")
	}
	if svc.created.UserID != userID {
		t.Fatalf("unexpected user id: %s", svc.created.UserID)
	}
	if len(svc.created.Items) != 1 || svc.created.Items[0].ProductID != productID || svc.created.Items[0].Quantity != 2 {
		t.Fatalf("items not forwarded: %+v", svc.created.Items)
	}
	if !svc.created.TotalAmount.Equal(decimal.RequireFromString("199.99")) {
		t.Fatalf("unexpected total: %s", svc.created.TotalAmount)
	}
}

func TestOrderCreatePaymentFailure(t *testing.T) {
	userID := uuid.New()
	handler := OrderCreate(&stubOrderService{err: pkgerrors.New(pkgerrors.CodePaymentFailed, "payment declined")}, nil)

	payload := map[string]any{
		"items":            []map[string]any{{"product_id": uuid.NewString(), "quantity": 1}},
		"delivery_address": "12 Market Road",
		"payment_method":   "online",
		"total_amount":     10,
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/orders/"+userID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodePaymentFailed) {
		t.Fatalf("unexpected code: %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "payment declined" {
		t.Fatalf("unexpected message: %s", envelope.Error.Message)
	}
}

func TestOrderCreateRejectsEmptyItems(t *testing.T) {
	userID := uuid.New()
	handler := OrderCreate(&stubOrderService{}, nil)

	payload := map[string]any{
		"items":            []map[string]any{},
		"delivery_address": "12 Market Road",
		"payment_method":   "online",
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/orders/"+userID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOrderHistoryForwardsPagination(t *testing.T) {
	userID := uuid.New()
	svc := &stubOrderService{listResult: &ordersvc.OrderListResult{}}
	handler := OrderHistory(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+userID.String()+"?limit=10&cursor=abc", nil)
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listInput.UserID != userID {
		t.Fatalf("unexpected user id: %s", svc.listInput.UserID)
	}
	if svc.listInput.Pagination.Limit != 10 || svc.listInput.Pagination.Cursor != "abc" {
		t.Fatalf("pagination not forwarded: %+v", svc.listInput.Pagination)
	}
}

func TestOrderDetailNotFound(t *testing.T) {
	handler := OrderDetail(&stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/orders/detail/"+id, nil)
	req = withURLParam(req, "id", id)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestOrderUpdateStatusForwardsValue(t *testing.T) {
	id := uuid.New()
	svc := &stubOrderService{order: &ordersvc.OrderDTO{ID: id, OrderStatus: "shipped"}}
	handler := OrderUpdateStatus(svc, nil)

	body := bytes.NewBufferString(`{"status":"shipped"}`)
	req := httptest.NewRequest(http.MethodPut, "/orders/"+id.String()+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "id", id.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.status != "shipped" {
		t.Fatalf("status not forwarded: %q", svc.status)
	}
}
