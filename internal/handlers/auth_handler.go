package handlers

import (
	"errors"
	"net/http"

	"food_ordering/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(req.Username, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already signed up. Please log in."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Your account has been created successfully. Approval is pending.",
		"user":    user,
	})
}

type signInRequest struct {
	Identifier string `json:"identifier" binding:"required"` // email or phone
	Password   string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, user, err := h.userService.Authenticate(req.Identifier, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email/phone or password"})
	case errors.Is(err, services.ErrApprovalPending):
		c.JSON(http.StatusForbidden, gin.H{"error": "Your authorization from admin is pending"})
	case errors.Is(err, services.ErrAccountBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account has been blocked"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign in failed"})
	}
}
