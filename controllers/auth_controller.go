package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rleomotos-api/middleware"
	"rleomotos-api/services"
)

type AuthController struct {
	auth  *services.AuthService
	email *services.EmailService
}

func NewAuthController(auth *services.AuthService, email *services.EmailService) *AuthController {
	return &AuthController{auth: auth, email: email}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	StoreID  *uint  `json:"storeId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.auth.Register(req.Name, req.Email, req.Password, req.StoreID, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if ac.email.Enabled() {
		go func(email, name string) {
			if err := ac.email.SendWelcomeEmail(email, name); err != nil {
				log.Printf("Failed to send welcome email: %v", err)
			}
		}(req.Email, req.Name)
	}

	c.JSON(http.StatusCreated, result)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.auth.Login(req.Email, req.Password, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.auth.Refresh(req.RefreshToken, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ac *AuthController) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ac.auth.Logout(middleware.CurrentUserID(c), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
