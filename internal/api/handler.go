package api

import (
	"errors"
	"net/http"
	"time"

	"bloomshop-be/internal/cart"
	"bloomshop-be/internal/gallery"
	"bloomshop-be/internal/message"
	"bloomshop-be/internal/middleware"
	"bloomshop-be/internal/order"
	"bloomshop-be/internal/product"
	"bloomshop-be/internal/settings"
	"bloomshop-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains the HTTP handlers for the storefront and admin APIs.
type Handler struct {
	products  product.Service
	carts     cart.Service
	orders    order.Service
	users     user.Service
	gallery   gallery.Service
	settings  settings.Service
	messages  message.Service
	uploadDir string
}

func NewHandler(
	products product.Service,
	carts cart.Service,
	orders order.Service,
	users user.Service,
	galleryService gallery.Service,
	settingsService settings.Service,
	messages message.Service,
	uploadDir string,
) *Handler {
	return &Handler{
		products:  products,
		carts:     carts,
		orders:    orders,
		users:     users,
		gallery:   galleryService,
		settings:  settingsService,
		messages:  messages,
		uploadDir: uploadDir,
	}
}

// SetupRoutes wires middleware and routes onto the router.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Auth())
	router.Use(middleware.Session())

	router.GET("/health", h.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/uploads", h.uploadDir)

	api := router.Group("/api", middleware.RateLimit())
	{
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/gallery", h.listGallery)
		api.GET("/contact", h.getContactInfo)
		api.POST("/contact", h.createMessage)
		api.GET("/payment-info", h.getPaymentInfo)

		api.GET("/cart", h.getCart)
		api.GET("/cart/count", h.getCartCount)
		api.POST("/cart/items", h.addCartItem)
		api.PUT("/cart/items/:productID", h.updateCartItem)
		api.DELETE("/cart/items/:productID", h.removeCartItem)

		api.POST("/checkout", h.beginCheckout)

		api.GET("/orders", middleware.RequireAuth(), h.listMyOrders)
		api.GET("/orders/:id", middleware.RequireAuth(), h.getOrder)
	}

	strict := router.Group("/api", middleware.StrictRateLimit())
	{
		strict.POST("/checkout/:draftID/finalize", h.finalizeCheckout)
		strict.POST("/auth/register", h.register)
		strict.POST("/auth/login", h.login)
		strict.POST("/auth/reset-request", h.requestReset)
		strict.POST("/auth/reset-password", h.resetPassword)
	}

	admin := router.Group("/api/admin", middleware.RequireAdmin())
	{
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id/price", h.updateProductPrice)
		admin.PUT("/products/:id/stock", h.updateProductStock)
		admin.DELETE("/products/:id", h.deleteProduct)

		admin.GET("/orders", h.listAllOrders)
		admin.GET("/orders/:id", h.getOrderAdmin)
		admin.PUT("/orders/:id/status", h.updateOrderStatus)
		admin.GET("/statistics", h.getSalesStats)

		admin.POST("/gallery", h.addGalleryImage)
		admin.DELETE("/gallery/:id", h.deleteGalleryImage)

		admin.PUT("/contact", h.updateContactInfo)
		admin.PUT("/payment-info", h.updatePaymentInfo)

		admin.GET("/messages", h.listMessages)
		admin.PUT("/messages/:id/read", h.markMessageRead)
		admin.DELETE("/messages/:id", h.deleteMessage)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// respondError maps domain sentinels onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrDraftNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, gallery.ErrImageNotFound),
		errors.Is(err, message.ErrMessageNotFound),
		errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound

	case errors.Is(err, product.ErrMissingFields),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrMissingSession),
		errors.Is(err, order.ErrEmptySelection),
		errors.Is(err, order.ErrMissingCustomerInfo),
		errors.Is(err, order.ErrMissingPaymentMethod),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, message.ErrMissingFields),
		errors.Is(err, gallery.ErrMissingImage),
		errors.Is(err, user.ErrInvalidPhone),
		errors.Is(err, user.ErrWeakPassword),
		errors.Is(err, user.ErrSamePassword):
		status = http.StatusBadRequest

	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrDraftConsumed),
		errors.Is(err, user.ErrPhoneExists):
		status = http.StatusConflict

	case errors.Is(err, order.ErrDraftExpired):
		status = http.StatusGone

	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity

	case errors.Is(err, user.ErrInvalidCredentials):
		status = http.StatusUnauthorized

	case errors.Is(err, order.ErrUnauthorized):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
