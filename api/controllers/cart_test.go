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

	cartsvc "github.com/livemart/livemart-backend/internal/cart"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

type stubCartService struct {
	cart     *cartsvc.CartDTO
	added    *cartsvc.AddItemInput
	quantity int
	err      error
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) error {
	s.added = &input
	return s.err
}

func (s *stubCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	s.quantity = quantity
	return s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.err
}

func (s *stubCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.err
}

func TestCartFetchSuccess(t *testing.T) {
	userID := uuid.New()
	cart := &cartsvc.CartDTO{
		UserID:   userID,
		Subtotal: decimal.RequireFromString("42.00"),
	}
	handler := CartFetch(&stubCartService{cart: cart}, nil)

	req := httptest.NewRequest(http.MethodGet, "/cart/"+userID.String(), nil)
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.UserID != userID {
		t.Fatalf("unexpected user id: %s", envelope.Data.UserID)
	}
}

func TestCartAddItemForwardsPayload(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	body := bytes.NewBufferString(`{"product_id":"` + productID.String() + `","quantity":3}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/"+userID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.added == nil || svc.added.ProductID != productID || svc.added.Quantity != 3 {
		t.Fatalf("payload not forwarded: %+v", svc.added)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	userID := uuid.New()
	handler := CartAddItem(&stubCartService{}, nil)

	body := bytes.NewBufferString(`{"product_id":"` + uuid.NewString() + `","quantity":0}`)
	req := httptest.NewRequest(http.MethodPost, "/cart/"+userID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemNotFound(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	handler := CartUpdateItem(&stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}, nil)

	body := bytes.NewBufferString(`{"quantity":2}`)
	req := httptest.NewRequest(http.MethodPut, "/cart/"+userID.String()+"/"+itemID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "user_id", userID.String())
	req = withURLParam(req, "item_id", itemID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartFetchRejectsBadUserID(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/cart/abc", nil)
	req = withURLParam(req, "user_id", "abc")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClearSuccess(t *testing.T) {
	userID := uuid.New()
	handler := CartClear(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/cart/"+userID.String(), nil)
	req = withURLParam(req, "user_id", userID.String())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
