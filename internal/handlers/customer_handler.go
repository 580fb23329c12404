package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CustomerHandler serves the admin screens for customer approval.
type CustomerHandler struct {
	userService services.UserService
}

func NewCustomerHandler(userService services.UserService) *CustomerHandler {
	return &CustomerHandler{userService: userService}
}

func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	users, err := h.userService.GetCustomers(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *CustomerHandler) UpdateCustomerStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req updateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = h.userService.UpdateCustomerStatus(uint(id), req.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Customer status updated"})
	case errors.Is(err, services.ErrInvalidUserStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be Pending, Approved or Blocked"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer status"})
	}
}
