package services

import (
	"gorm.io/gorm"

	"rleomotos-api/models"
)

// Motorcycles scoring below this need attention in the missing-data report.
const completenessThreshold = 80

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

type StatusCount struct {
	Status models.MotorcycleStatus `json:"status"`
	Total  int64                   `json:"total"`
}

type BrandCount struct {
	BrandID   uint   `json:"brandId"`
	BrandName string `json:"brandName"`
	Total     int64  `json:"total"`
}

type ModelCount struct {
	ModelName string `json:"modelName"`
	Total     int64  `json:"total"`
}

type InventorySummary struct {
	ByStatus []StatusCount `json:"byStatus"`
	ByBrand  []BrandCount  `json:"byBrand"`
	ByModel  []ModelCount  `json:"byModel"`
}

func (s *InventoryService) active() *gorm.DB {
	return s.db.Model(&models.Motorcycle{}).Where("motorcycles.is_deleted = ?", false)
}

// Summary groups non-deleted motorcycles by status, brand and model name.
func (s *InventoryService) Summary() (*InventorySummary, error) {
	summary := &InventorySummary{}

	err := s.active().
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&summary.ByStatus).Error
	if err != nil {
		return nil, err
	}

	err = s.active().
		Select("brands.id AS brand_id, brands.name AS brand_name, COUNT(*) AS total").
		Joins("LEFT JOIN brands ON brands.id = motorcycles.brand_id").
		Group("brands.id, brands.name").
		Scan(&summary.ByBrand).Error
	if err != nil {
		return nil, err
	}

	err = s.active().
		Select("model_name, COUNT(*) AS total").
		Group("model_name").
		Scan(&summary.ByModel).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// FindWithMissingData lists non-deleted motorcycles below the completeness
// threshold, least complete first.
func (s *InventoryService) FindWithMissingData() ([]models.Motorcycle, error) {
	var motorcycles []models.Motorcycle
	err := withAssociations(s.db).
		Where("is_deleted = ? AND completeness_score < ?", false, completenessThreshold).
		Order("completeness_score ASC").
		Find(&motorcycles).Error
	if err != nil {
		return nil, err
	}
	return motorcycles, nil
}
