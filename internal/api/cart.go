package api

import (
	"net/http"

	"bloomshop-be/internal/cart"
	"bloomshop-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func sessionKeyFrom(c *gin.Context) (string, bool) {
	key, ok := utils.GetSessionKeyFromContext(c.Request.Context())
	if !ok || key == "" {
		respondError(c, cart.ErrMissingSession)
		return "", false
	}
	return key, true
}

func (h *Handler) getCart(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}

	snapshot, err := h.carts.GetSnapshot(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) getCartCount(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}

	count, err := h.carts.Count(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) addCartItem(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	quantity, err := h.carts.Add(c.Request.Context(), key, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": req.ProductID, "quantity": quantity})
}

func (h *Handler) updateCartItem(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.carts.Update(c.Request.Context(), key, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	key, ok := sessionKeyFrom(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productID")
	if !ok {
		return
	}

	if err := h.carts.Remove(c.Request.Context(), key, productID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
