package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listGallery(c *gin.Context) {
	images, err := h.gallery.GetList(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *Handler) addGalleryImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}

	img, err := h.gallery.Add(c.Request.Context(), fileHeader.Filename, file, caption)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *Handler) deleteGalleryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.gallery.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
