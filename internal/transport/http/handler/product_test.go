package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/transport/http/handler"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

// fakeProductRepo backs the real usecase so handler tests exercise the
// whole status-mapping path.
type fakeProductRepo struct {
	products map[string]*domain.Product // keyed by id
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return p, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetBySlug(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return p, nil
}

func (r *fakeProductRepo) Delete(context.Context, string) error { return nil }

func (r *fakeProductRepo) List(context.Context, repository.ListProductsInput) ([]*domain.Product, error) {
	return nil, nil
}

func newProductEngine(repo *fakeProductRepo) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewProductHandler(usecase.NewProductUsecase(repo), logger)

	r := gin.New()
	r.GET("/products", h.List)
	r.GET("/admin/products/:id", h.Get)
	return r
}

func TestListProducts_MalformedCursor_Returns400(t *testing.T) {
	r := newProductEngine(&fakeProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?cursor=%25%25not-base64%25%25", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid cursor") {
		t.Errorf("body = %q, want the cursor error", w.Body.String())
	}
}

func TestGetProduct_ByID_Returns200(t *testing.T) {
	repo := &fakeProductRepo{products: map[string]*domain.Product{
		"prod-1": {ID: "prod-1", Slug: "oak-chair", Name: "Oak Chair", CreatedAt: time.Now()},
	}}
	r := newProductEngine(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/products/prod-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "oak-chair") {
		t.Errorf("body = %q, want the product", w.Body.String())
	}
}

func TestGetProduct_Unknown_Returns404(t *testing.T) {
	r := newProductEngine(&fakeProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/products/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
