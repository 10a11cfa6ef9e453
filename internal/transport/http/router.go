package httptransport

import (
	"log/slog"

	"storefront/internal/transport/http/handler"
	"storefront/internal/transport/http/middleware"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Announcement *handler.AnnouncementHandler
	Feed         *handler.FeedHandler
	Customer     *handler.CustomerHandler
	Quote        *handler.QuoteHandler
}

func NewRouter(logger *slog.Logger, h Handlers, hmacKey []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(hmacKey)
	adminMW := middleware.RequireRole("admin")

	// Authentication
	auth := r.Group("/auth")
	auth.POST("/request-otp", h.Auth.RequestOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/google", h.Auth.GoogleLogin)

	// Public storefront
	r.GET("/products", h.Product.List)
	r.GET("/products/:slug", h.Product.GetBySlug)
	r.GET("/announcements", h.Announcement.ListActive)
	r.GET("/feed", h.Feed.List)
	r.POST("/quotes", h.Quote.Submit)

	// Authenticated profile
	me := r.Group("", authMW)
	me.GET("/me", h.Customer.Me)
	me.PUT("/me/profile", h.Customer.UpdateProfile)

	// Admin
	admin := r.Group("/admin", authMW, adminMW)
	admin.GET("/products", h.Product.ListAll)
	admin.GET("/products/:id", h.Product.Get)
	admin.POST("/products", h.Product.Create)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.POST("/announcements", h.Announcement.Create)
	admin.DELETE("/announcements/:id", h.Announcement.Delete)
	admin.POST("/feed", h.Feed.Create)
	admin.DELETE("/feed/:id", h.Feed.Delete)
	admin.GET("/customers", h.Customer.List)
	admin.GET("/customers/export", h.Customer.ExportCSV)
	admin.GET("/quotes", h.Quote.List)

	return r
}
