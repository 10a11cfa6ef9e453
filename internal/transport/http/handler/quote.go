package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	uc     *usecase.QuoteUsecase
	logger *slog.Logger
}

func NewQuoteHandler(uc *usecase.QuoteUsecase, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{uc: uc, logger: logger.With("component", "quote_handler")}
}

type submitQuoteRequest struct {
	Name      string  `json:"name"       binding:"required,max=256"`
	Email     string  `json:"email"      binding:"required,email"`
	Phone     string  `json:"phone"      binding:"max=64"`
	Message   string  `json:"message"    binding:"required,max=8192"`
	ProductID *string `json:"product_id" binding:"omitempty,uuid"`
}

type quoteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	ProductID *string   `json:"product_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toQuoteResponse(q *domain.QuoteRequest) quoteResponse {
	return quoteResponse{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		Message:   q.Message,
		ProductID: q.ProductID,
		CreatedAt: q.CreatedAt,
	}
}

// POST /quotes (public)
func (h *QuoteHandler) Submit(ctx *gin.Context) {
	var req submitQuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := h.uc.SubmitQuote(ctx.Request.Context(), usecase.SubmitQuoteInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ProductID: req.ProductID,
	})
	if err != nil {
		h.logger.Error("submit quote", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.QuotesSubmittedTotal.Inc()
	ctx.JSON(http.StatusCreated, toQuoteResponse(q))
}

// GET /quotes (admin)
func (h *QuoteHandler) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListQuotes(ctx.Request.Context(), ctx.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrBadCursor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.Error("list quotes", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]quoteResponse, len(result.Quotes))
	for i, q := range result.Quotes {
		items[i] = toQuoteResponse(q)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"quotes":      items,
		"next_cursor": result.NextCursor,
	})
}
