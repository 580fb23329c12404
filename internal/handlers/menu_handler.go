package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"food_ordering/internal/models"
	"food_ordering/internal/services"
	"food_ordering/pkg/imagestore"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuHandler struct {
	menuService services.MenuService
	images      *imagestore.Client
}

func NewMenuHandler(menuService services.MenuService, images *imagestore.Client) *MenuHandler {
	return &MenuHandler{menuService: menuService, images: images}
}

// GetMenu is the customer view: enabled items only, optional category filter.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	items, err := h.menuService.GetCustomerMenu(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetFullMenu is the admin view, disabled items included.
func (h *MenuHandler) GetFullMenu(c *gin.Context) {
	items, err := h.menuService.GetFullMenu(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type menuItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category" binding:"required"`
	Enabled  *bool   `json:"enabled"`
	ImageURL string  `json:"image_url"`
}

func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item := &models.MenuItem{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
		Enabled:  req.Enabled == nil || *req.Enabled,
		ImageURL: req.ImageURL,
	}
	if err := h.menuService.CreateItem(item); err != nil {
		if errors.Is(err, services.ErrInvalidPrice) || errors.Is(err, services.ErrInvalidStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	item, err := h.menuService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	var req menuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item.Name = req.Name
	item.Price = req.Price
	item.Stock = req.Stock
	item.Category = req.Category
	if req.Enabled != nil {
		item.Enabled = *req.Enabled
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}

	if err := h.menuService.UpdateItem(item); err != nil {
		if errors.Is(err, services.ErrInvalidPrice) || errors.Is(err, services.ErrInvalidStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	item, err := h.menuService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	if err := h.menuService.DeleteItem(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	h.removeStoredImage(item.ImageURL)
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// UploadImage stores the uploaded file in the image bucket and records its
// public URL on the item.
func (h *MenuHandler) UploadImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	item, err := h.menuService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}
	previousURL := item.ImageURL

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image file"})
		return
	}
	defer file.Close()

	url, err := h.images.Upload(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.menuService.SetItemImage(uint(id), url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}
	if previousURL != url {
		h.removeStoredImage(previousURL)
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// removeStoredImage drops an image object from the bucket once nothing
// references it anymore. Failures only leave an orphaned object behind, so
// they are logged rather than surfaced to the caller.
func (h *MenuHandler) removeStoredImage(imageURL string) {
	name, ok := h.images.ObjectName(imageURL)
	if !ok {
		return
	}
	if err := h.images.Delete(name); err != nil {
		log.Printf("Warning: failed to delete image object %s: %v", name, err)
	}
}
