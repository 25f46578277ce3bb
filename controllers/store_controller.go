package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rleomotos-api/middleware"
	"rleomotos-api/models"
	"rleomotos-api/services"
	"rleomotos-api/utils"
)

type StoreController struct {
	db *gorm.DB
}

func NewStoreController(db *gorm.DB) *StoreController {
	return &StoreController{db: db}
}

type StoreRequest struct {
	Name     string  `json:"name" binding:"required"`
	TaxID    *string `json:"taxId"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

func (sc *StoreController) List(c *gin.Context) {
	var stores []models.Store
	if err := sc.db.Order("name ASC").Find(&stores).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (sc *StoreController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	c.JSON(http.StatusOK, store)
}

func (sc *StoreController) Create(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := models.Store{
		Name:     req.Name,
		TaxID:    req.TaxID,
		City:     req.City,
		State:    req.State,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	actorID := middleware.CurrentUserID(c)
	err := sc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&store).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "stores", store.ID, "create",
			models.JSONMap{"name": store.Name})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (sc *StoreController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	// Decoded twice so an absent field can be told apart from explicit null:
	// absent fields stay untouched, null clears.
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	var req StoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var rawKeys map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawKeys); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	present := func(key string) bool {
		_, ok := rawKeys[key]
		return ok
	}

	if present("name") {
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Store name is required"})
			return
		}
		store.Name = req.Name
	}
	if present("taxId") {
		store.TaxID = req.TaxID
	}
	if present("city") {
		store.City = req.City
	}
	if present("state") {
		store.State = req.State
	}
	if present("address") {
		store.Address = req.Address
	}
	if present("phone") {
		store.Phone = req.Phone
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	actorID := middleware.CurrentUserID(c)
	err = sc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&store).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "stores", store.ID, "update", nil)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update store"})
		return
	}
	c.JSON(http.StatusOK, store)
}

func (sc *StoreController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var store models.Store
	if err := sc.db.First(&store, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	actorID := middleware.CurrentUserID(c)
	err := sc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&store).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "stores", store.ID, "delete", nil)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}
	utils.SendSuccess(c, "Store deleted successfully", nil)
}
