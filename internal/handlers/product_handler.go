package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"veriauth/internal/services"
)

type ProductHandler struct {
	Service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

// @Summary      Upload a product with an image
// @Tags         Products
// @Accept       multipart/form-data
// @Produce      json
// @Param        image        formData  file    true   "Product image"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Success      200  {object}  models.Product
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "image is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "failed to read image"})
		return
	}
	defer src.Close()

	title := c.PostForm("title")
	description := c.PostForm("description")
	contentType := file.Header.Get("Content-Type")

	product, err := h.Service.Upload(c.Request.Context(), title, description, file.Filename, contentType, src)
	if err != nil {
		log.Printf("[product][upload] failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary      Delete a product and its stored image
// @Tags         Products
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "product not found"})
			return
		}
		log.Printf("[product][delete] failed for id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
