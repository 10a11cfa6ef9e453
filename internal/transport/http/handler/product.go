package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	uc     *usecase.ProductUsecase
	logger *slog.Logger
}

func NewProductHandler(uc *usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger.With("component", "product_handler")}
}

type createProductRequest struct {
	Name        string `json:"name"        binding:"required,max=256"`
	Description string `json:"description" binding:"max=8192"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	Currency    string `json:"currency"    binding:"omitempty,len=3"`
	Category    string `json:"category"    binding:"max=128"`
	ImageURL    string `json:"image_url"   binding:"omitempty,url"`
	Published   bool   `json:"published"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h *ProductHandler) Create(ctx *gin.Context) {
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.CreateProduct(ctx.Request.Context(), usecase.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
	})
	if err != nil {
		h.logger.Error("create product", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Update(ctx *gin.Context) {
	var req createProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.UpdateProduct(ctx.Request.Context(), usecase.UpdateProductInput{
		ID:          ctx.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logger.Error("update product", "product_id", ctx.Param("id"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Delete(ctx *gin.Context) {
	err := h.uc.DeleteProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logger.Error("delete product", "product_id", ctx.Param("id"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Get fetches a product by id for the admin console, drafts included.
func (h *ProductHandler) Get(ctx *gin.Context) {
	p, err := h.uc.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logger.Error("get product", "product_id", ctx.Param("id"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) GetBySlug(ctx *gin.Context) {
	p, err := h.uc.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
			return
		}
		h.logger.Error("get product", "slug", ctx.Param("slug"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, toProductResponse(p))
}

// List serves the public catalog: published products only.
func (h *ProductHandler) List(ctx *gin.Context) {
	h.list(ctx, false)
}

// ListAll serves the admin catalog, drafts included.
func (h *ProductHandler) ListAll(ctx *gin.Context) {
	h.list(ctx, true)
}

func (h *ProductHandler) list(ctx *gin.Context, includeUnpublished bool) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListProducts(ctx.Request.Context(), usecase.ListProductsInput{
		Category:           ctx.Query("category"),
		Query:              ctx.Query("q"),
		IncludeUnpublished: includeUnpublished,
		Cursor:             ctx.Query("cursor"),
		Limit:              limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBadCursor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.Error("list products", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]productResponse, len(result.Products))
	for i, p := range result.Products {
		items[i] = toProductResponse(p)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products":    items,
		"next_cursor": result.NextCursor,
	})
}
