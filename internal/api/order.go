package api

import (
	"io"
	"net/http"

	"bloomshop-be/internal/order"
	"bloomshop-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func customerIDFrom(c *gin.Context) *uint {
	if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
		return &userID
	}
	return nil
}

func (h *Handler) beginCheckout(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}

	var req struct {
		Selected []uint `json:"selected"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	draft, err := h.orders.BeginCheckout(c.Request.Context(), key, customerIDFrom(c), req.Selected)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

func (h *Handler) finalizeCheckout(c *gin.Context) {
	draftID, err := uuid.Parse(c.Param("draftID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	info := order.CustomerInfo{
		Name:    c.PostForm("name"),
		Phone:   c.PostForm("phone"),
		Address: c.PostForm("address"),
	}
	paymentMethod := c.PostForm("payment_method")

	var proofName string
	var proof io.Reader
	if fileHeader, err := c.FormFile("payment_proof"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()
		proofName = fileHeader.Filename
		proof = file
	}

	o, err := h.orders.FinalizeCheckout(c.Request.Context(), draftID, info, paymentMethod, proofName, proof)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) listMyOrders(c *gin.Context) {
	customerID := customerIDFrom(c)
	if customerID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.orders.GetOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrderDetail(c.Request.Context(), id, customerIDFrom(c), utils.IsAdmin(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) listAllOrders(c *gin.Context) {
	orders, err := h.orders.GetOrders(c.Request.Context(), nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) getOrderAdmin(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	o, err := h.orders.GetOrderDetail(c.Request.Context(), id, nil, true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), id, order.Status(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (h *Handler) getSalesStats(c *gin.Context) {
	stats, err := h.orders.GetSalesStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statistics": stats})
}
