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

type CustomerHandler struct {
	uc     *usecase.CustomerUsecase
	logger *slog.Logger
}

func NewCustomerHandler(uc *usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: logger.With("component", "customer_handler")}
}

type customerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.User.ID,
		Email:     c.User.Email,
		Role:      string(c.User.Role),
		Name:      c.Profile.Name,
		Address:   c.Profile.Address,
		Phone:     c.Profile.Phone,
		Picture:   c.Profile.Picture,
		CreatedAt: c.User.CreatedAt,
	}
}

// GET /customers (admin)
func (h *CustomerHandler) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListCustomers(ctx.Request.Context(), usecase.ListCustomersInput{
		Email:  ctx.Query("email"),
		Cursor: ctx.Query("cursor"),
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBadCursor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.Error("list customers", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]customerResponse, len(result.Customers))
	for i, c := range result.Customers {
		items[i] = toCustomerResponse(c)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"customers":   items,
		"next_cursor": result.NextCursor,
	})
}

// GET /customers/export (admin) — streams CSV.
func (h *CustomerHandler) ExportCSV(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="customers.csv"`)

	if err := h.uc.ExportCSV(ctx.Request.Context(), ctx.Writer); err != nil {
		// Headers may already be out; log and abort the stream.
		h.logger.Error("export customers", "error", err)
		ctx.Abort()
	}
}

// GET /me
func (h *CustomerHandler) Me(ctx *gin.Context) {
	c, err := h.uc.GetProfile(ctx.Request.Context(), ctx.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logger.Error("get profile", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, toCustomerResponse(c))
}

type updateProfileRequest struct {
	Name    string `json:"name"    binding:"max=256"`
	Address string `json:"address" binding:"max=1024"`
	Phone   string `json:"phone"   binding:"max=64"`
	Picture string `json:"picture" binding:"omitempty,url"`
}

// PUT /me/profile
func (h *CustomerHandler) UpdateProfile(ctx *gin.Context) {
	var req updateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.uc.UpdateProfile(ctx.Request.Context(), usecase.UpdateProfileInput{
		UserID:  ctx.GetString("userID"),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Picture: req.Picture,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logger.Error("update profile", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
