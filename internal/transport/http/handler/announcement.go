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

type AnnouncementHandler struct {
	uc     *usecase.AnnouncementUsecase
	logger *slog.Logger
}

func NewAnnouncementHandler(uc *usecase.AnnouncementUsecase, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{uc: uc, logger: logger.With("component", "announcement_handler")}
}

type createAnnouncementRequest struct {
	Title    string     `json:"title"     binding:"required,max=256"`
	Body     string     `json:"body"      binding:"max=8192"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

type announcementResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toAnnouncementResponse(a *domain.Announcement) announcementResponse {
	return announcementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
		CreatedAt: a.CreatedAt,
	}
}

func (h *AnnouncementHandler) Create(ctx *gin.Context) {
	var req createAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.uc.CreateAnnouncement(ctx.Request.Context(), usecase.CreateAnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		h.logger.Error("create announcement", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusCreated, toAnnouncementResponse(a))
}

func (h *AnnouncementHandler) Delete(ctx *gin.Context) {
	err := h.uc.DeleteAnnouncement(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAnnouncementNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logger.Error("delete announcement", "announcement_id", ctx.Param("id"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *AnnouncementHandler) ListActive(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListActive(ctx.Request.Context(), ctx.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrBadCursor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.Error("list announcements", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]announcementResponse, len(result.Announcements))
	for i, a := range result.Announcements {
		items[i] = toAnnouncementResponse(a)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"announcements": items,
		"next_cursor":   result.NextCursor,
	})
}
