package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rleomotos-api/middleware"
	"rleomotos-api/models"
	"rleomotos-api/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type CreateUserRequest struct {
	Name     string             `json:"name" binding:"required"`
	Email    string             `json:"email" binding:"required,email"`
	Password string             `json:"password" binding:"required,min=6"`
	StoreID  *uint              `json:"storeId"`
	Status   *models.UserStatus `json:"status"`
	Roles    []string           `json:"roles"`
}

type UpdateUserRequest struct {
	Name     string             `json:"name"`
	Email    string             `json:"email" binding:"omitempty,email"`
	Password string             `json:"password" binding:"omitempty,min=6"`
	StoreID  *uint              `json:"storeId"`
	Status   *models.UserStatus `json:"status"`
	Roles    []string           `json:"roles"`
}

func (uc *UserController) List(c *gin.Context) {
	users, err := uc.users.FindAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.CurrentUserID(c)
	user, err := uc.users.Create(services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		StoreID:  req.StoreID,
		Status:   req.Status,
		Roles:    req.Roles,
	}, &actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := middleware.CurrentUserID(c)
	user, err := uc.users.Update(id, services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		StoreID:  req.StoreID,
		Status:   req.Status,
		Roles:    req.Roles,
	}, &actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	actorID := middleware.CurrentUserID(c)
	user, err := uc.users.SoftDelete(id, &actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
