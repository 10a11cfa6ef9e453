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

type FeedHandler struct {
	uc     *usecase.FeedUsecase
	logger *slog.Logger
}

func NewFeedHandler(uc *usecase.FeedUsecase, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{uc: uc, logger: logger.With("component", "feed_handler")}
}

type createPostRequest struct {
	Title     string `json:"title"     binding:"required,max=256"`
	Body      string `json:"body"      binding:"max=8192"`
	ImageURL  string `json:"image_url" binding:"omitempty,url"`
	Published *bool  `json:"published"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func (h *FeedHandler) Create(ctx *gin.Context) {
	var req createPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	p, err := h.uc.CreatePost(ctx.Request.Context(), usecase.CreatePostInput{
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		Published: published,
	})
	if err != nil {
		h.logger.Error("create post", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusCreated, toPostResponse(p))
}

func (h *FeedHandler) Delete(ctx *gin.Context) {
	err := h.uc.DeletePost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logger.Error("delete post", "post_id", ctx.Param("id"), "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *FeedHandler) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListFeed(ctx.Request.Context(), ctx.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, domain.ErrBadCursor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": errBadCursor})
			return
		}
		h.logger.Error("list feed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]postResponse, len(result.Posts))
	for i, p := range result.Posts {
		items[i] = toPostResponse(p)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"posts":       items,
		"next_cursor": result.NextCursor,
	})
}
