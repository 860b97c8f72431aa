package api

import (
	"io"
	"net/http"

	"bloomshop-be/internal/settings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getContactInfo(c *gin.Context) {
	info, err := h.settings.GetContact(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) updateContactInfo(c *gin.Context) {
	var info settings.ContactInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.settings.UpdateContact(c.Request.Context(), info); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) getPaymentInfo(c *gin.Context) {
	info, err := h.settings.GetPayment(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *Handler) updatePaymentInfo(c *gin.Context) {
	info := settings.PaymentInfo{
		BankName:      c.PostForm("bank_name"),
		AccountNumber: c.PostForm("account_number"),
		AccountHolder: c.PostForm("account_holder"),
	}

	var qrName string
	var qr io.Reader
	if fileHeader, err := c.FormFile("qr_image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()
		qrName = fileHeader.Filename
		qr = file
	}

	if err := h.settings.UpdatePayment(c.Request.Context(), info, qrName, qr); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
