package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/livemart/livemart-backend/internal/catalog"
	pkgerrors "github.com/livemart/livemart-backend/pkg/errors"
)

type stubCatalogService struct {
	categories  []catalog.CategoryDTO
	category    *catalog.CategoryDTO
	listResult  *catalog.ProductListResult
	listFilters catalog.ProductListFilters
	product     *catalog.ProductDTO
	err         error
}

func (s *stubCatalogService) ListCategories(ctx context.Context) ([]catalog.CategoryDTO, error) {
	return s.categories, s.err
}

func (s *stubCatalogService) CreateCategory(ctx context.Context, input catalog.CreateCategoryInput) (*catalog.CategoryDTO, error) {
	return s.category, s.err
}

func (s *stubCatalogService) ListProducts(ctx context.Context, filters catalog.ProductListFilters) (*catalog.ProductListResult, error) {
	s.listFilters = filters
	return s.listResult, s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

func TestListProductsParsesFilters(t *testing.T) {
	categoryID := uuid.New()
	svc := &stubCatalogService{listResult: &catalog.ProductListResult{}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?category_id="+categoryID.String()+"&search=rice&min_price=2.50&max_price=10&available_only=false&limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.listFilters.CategoryID == nil || *svc.listFilters.CategoryID != categoryID {
		t.Fatalf("category filter not forwarded: %+v", svc.listFilters.CategoryID)
	}
	if svc.listFilters.Search != "rice" {
		t.Fatalf("unexpected search: %q", svc.listFilters.Search)
	}
	if svc.listFilters.MinPrice == nil || !svc.listFilters.MinPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("unexpected min price: %+v", svc.listFilters.MinPrice)
	}
	if svc.listFilters.AvailableOnly {
		t.Fatal("available_only=false not honored")
	}
	if svc.listFilters.Pagination.Limit != 5 {
		t.Fatalf("unexpected limit: %d", svc.listFilters.Pagination.Limit)
	}
}

func TestListProductsDefaultsAvailableOnly(t *testing.T) {
	svc := &stubCatalogService{listResult: &catalog.ProductListResult{}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.listFilters.AvailableOnly {
		t.Fatal("expected available_only to default on")
	}
	if svc.listFilters.Pagination.Limit != 0 {
		t.Fatalf("expected zero limit by default, got %d", svc.listFilters.Pagination.Limit)
	}
}

func TestListProductsRejectsBadPrice(t *testing.T) {
	handler := ListProducts(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?min_price=cheap", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	handler := GetProduct(&stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil)
	req = withURLParam(req, "id", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestGetProductRejectsBadID(t *testing.T) {
	handler := GetProduct(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	req = withURLParam(req, "id", "not-a-uuid")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateProductSuccess(t *testing.T) {
	product := &catalog.ProductDTO{ID: uuid.New(), Name: "Basmati Rice"}
	handler := CreateProduct(&stubCatalogService{product: product}, nil)

	payload := map[string]any{
		"name":        "Basmati Rice",
		"description": "5kg bag",
		"category_id": uuid.NewString(),
		"price":       120.50,
		"stock":       40,
		"unit":        "bag",
		"seller_id":   uuid.NewString(),
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data catalog.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != product.ID {
		t.Fatalf("unexpected product id: %s", envelope.Data.ID)
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	handler := CreateProduct(&stubCatalogService{}, nil)

	payload := map[string]any{
		"name":        "Basmati Rice",
		"category_id": uuid.NewString(),
		"price":       -1,
		"seller_id":   uuid.NewString(),
	}
	raw, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDeleteProductSuccess(t *testing.T) {
	handler := DeleteProduct(&stubCatalogService{}, nil)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/products/"+id, nil)
	req = withURLParam(req, "id", id)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
