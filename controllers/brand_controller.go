package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"rleomotos-api/middleware"
	"rleomotos-api/models"
	"rleomotos-api/services"
	"rleomotos-api/utils"
)

type BrandController struct {
	db *gorm.DB
}

func NewBrandController(db *gorm.DB) *BrandController {
	return &BrandController{db: db}
}

type BrandRequest struct {
	Name string `json:"name" binding:"required"`
}

func (bc *BrandController) List(c *gin.Context) {
	var brands []models.Brand
	if err := bc.db.Order("name ASC").Find(&brands).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (bc *BrandController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var brand models.Brand
	if err := bc.db.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (bc *BrandController) Create(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	if err := bc.db.Model(&models.Brand{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name already exists"})
		return
	}

	brand := models.Brand{Name: req.Name}
	actorID := middleware.CurrentUserID(c)
	err := bc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&brand).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "brands", brand.ID, "create",
			models.JSONMap{"name": brand.Name})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (bc *BrandController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var brand models.Brand
	if err := bc.db.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != brand.Name {
		var count int64
		if err := bc.db.Model(&models.Brand{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name already exists"})
			return
		}
	}

	brand.Name = req.Name
	actorID := middleware.CurrentUserID(c)
	err := bc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&brand).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "brands", brand.ID, "update", nil)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (bc *BrandController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var brand models.Brand
	if err := bc.db.First(&brand, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		return
	}

	actorID := middleware.CurrentUserID(c)
	err := bc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&brand).Error; err != nil {
			return err
		}
		return services.RecordAudit(tx, &actorID, "brands", brand.ID, "delete", nil)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}
	utils.SendSuccess(c, "Brand deleted successfully", nil)
}
