package services

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rleomotos-api/models"
	"rleomotos-api/utils"
)

type MotorcycleService struct {
	db *gorm.DB
}

func NewMotorcycleService(db *gorm.DB) *MotorcycleService {
	return &MotorcycleService{db: db}
}

// MotorcycleInput carries create/update payloads. All fields are pointers so
// an explicit JSON null can be told apart from a provided value; absence is
// resolved by the caller via the present func (see Update).
type MotorcycleInput struct {
	StoreID          *uint                    `json:"storeId"`
	BrandID          *uint                    `json:"brandId"`
	ModelName        *string                  `json:"modelName"`
	Year             *int                     `json:"year"`
	Color            *string                  `json:"color"`
	VIN              *string                  `json:"vin"`
	Plate            *string                  `json:"plate"`
	Km               *int                     `json:"km"`
	Price            *float64                 `json:"price"`
	Cost             *float64                 `json:"cost"`
	Status           *models.MotorcycleStatus `json:"status"`
	Fuel             *models.FuelType         `json:"fuel"`
	EngineCc         *int                     `json:"engineCc"`
	PowerHp          *int                     `json:"powerHp"`
	TorqueNm         *int                     `json:"torqueNm"`
	Transmission     *models.TransmissionType `json:"transmission"`
	ABS              *bool                    `json:"abs"`
	Description      *string                  `json:"description"`
	HasDocumentation *bool                    `json:"hasDocumentation"`
	HasInspection    *bool                    `json:"hasInspection"`
	ClientName       *string                  `json:"clientName"`
	ClientPhone      *string                  `json:"clientPhone"`
	DocumentCost     *float64                 `json:"documentCost"`
	MaintenanceCost  *float64                 `json:"maintenanceCost"`
	DownPayment      *float64                 `json:"downPayment"`
	PhotoURLs        []string                 `json:"photoUrls"`
}

type MotorcycleFilters struct {
	StoreID   *uint    `form:"storeId"`
	BrandID   *uint    `form:"brandId"`
	ModelName string   `form:"modelName"`
	Status    string   `form:"status"`
	Year      *int     `form:"year"`
	MinPrice  *float64 `form:"minPrice"`
	MaxPrice  *float64 `form:"maxPrice"`
	MinKm     *int     `form:"minKm"`
	MaxKm     *int     `form:"maxKm"`
}

func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Store").
		Preload("Brand").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
}

// FindAll lists non-deleted motorcycles, filters combined with AND,
// newest first.
func (s *MotorcycleService) FindAll(filters MotorcycleFilters) ([]models.Motorcycle, error) {
	query := withAssociations(s.db).Where("is_deleted = ?", false)

	if filters.StoreID != nil {
		query = query.Where("store_id = ?", *filters.StoreID)
	}
	if filters.BrandID != nil {
		query = query.Where("brand_id = ?", *filters.BrandID)
	}
	if name := strings.TrimSpace(filters.ModelName); name != "" {
		query = query.Where("LOWER(model_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filters.Status != "" {
		status := models.MotorcycleStatus(filters.Status)
		if !status.Valid() {
			return nil, BadRequest("Invalid status filter")
		}
		query = query.Where("status = ?", status)
	}
	if filters.Year != nil {
		query = query.Where("year = ?", *filters.Year)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.MinKm != nil {
		query = query.Where("km >= ?", *filters.MinKm)
	}
	if filters.MaxKm != nil {
		query = query.Where("km <= ?", *filters.MaxKm)
	}

	var motorcycles []models.Motorcycle
	if err := query.Order("created_at DESC").Find(&motorcycles).Error; err != nil {
		return nil, err
	}
	return motorcycles, nil
}

func (s *MotorcycleService) FindOne(id uint) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := withAssociations(s.db).Where("id = ? AND is_deleted = ?", id, false).First(&motorcycle).Error
	if err != nil {
		return nil, NotFound("Motorcycle not found")
	}
	return &motorcycle, nil
}

func (s *MotorcycleService) Create(input MotorcycleInput, actorID uint) (*models.Motorcycle, error) {
	if input.StoreID == nil || input.BrandID == nil {
		return nil, BadRequest("Store and brand are required")
	}
	modelName := ""
	if input.ModelName != nil {
		modelName = strings.TrimSpace(*input.ModelName)
	}
	if modelName == "" {
		return nil, BadRequest("Model name is required")
	}
	if err := validateEnums(&input); err != nil {
		return nil, err
	}

	var created *models.Motorcycle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var store models.Store
		var brand models.Brand
		if err := tx.First(&store, *input.StoreID).Error; err != nil {
			return BadRequest("Invalid store or brand")
		}
		if err := tx.First(&brand, *input.BrandID).Error; err != nil {
			return BadRequest("Invalid store or brand")
		}

		motorcycle := models.Motorcycle{
			StoreID:     store.ID,
			BrandID:     brand.ID,
			ModelName:   modelName,
			Status:      models.MotorcycleAvailable,
			CreatedByID: &actorID,
		}
		applyScalarFields(&motorcycle, &input, func(string) bool { return true })

		if err := tx.Omit(clause.Associations).Create(&motorcycle).Error; err != nil {
			return err
		}

		if len(input.PhotoURLs) > 0 {
			if err := savePhotoRecords(tx, motorcycle.ID, input.PhotoURLs); err != nil {
				return err
			}
		}

		if err := refreshScore(tx, motorcycle.ID); err != nil {
			return err
		}
		if err := RecordAudit(tx, &actorID, "motorcycles", motorcycle.ID, "create",
			models.JSONMap{"modelName": modelName}); err != nil {
			return err
		}

		reloaded, err := reloadMotorcycle(tx, motorcycle.ID)
		if err != nil {
			return err
		}
		created = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies partial-update semantics: fields absent from the request
// body are left untouched, an explicit null clears the field. present
// reports whether a JSON key appeared in the body.
func (s *MotorcycleService) Update(id uint, input MotorcycleInput, present func(string) bool, actorID uint) (*models.Motorcycle, error) {
	if err := validateEnums(&input); err != nil {
		return nil, err
	}

	var updated *models.Motorcycle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var motorcycle models.Motorcycle
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&motorcycle).Error; err != nil {
			return NotFound("Motorcycle not found")
		}

		if input.StoreID != nil {
			var store models.Store
			if err := tx.First(&store, *input.StoreID).Error; err != nil {
				return BadRequest("Invalid store")
			}
			motorcycle.StoreID = store.ID
		}
		if input.BrandID != nil {
			var brand models.Brand
			if err := tx.First(&brand, *input.BrandID).Error; err != nil {
				return BadRequest("Invalid brand")
			}
			motorcycle.BrandID = brand.ID
		}
		if present("modelName") {
			if input.ModelName == nil || strings.TrimSpace(*input.ModelName) == "" {
				return BadRequest("Model name is required")
			}
			motorcycle.ModelName = strings.TrimSpace(*input.ModelName)
		}

		applyScalarFields(&motorcycle, &input, present)
		motorcycle.UpdatedByID = &actorID

		if err := tx.Omit(clause.Associations).Save(&motorcycle).Error; err != nil {
			return err
		}
		if err := refreshScore(tx, motorcycle.ID); err != nil {
			return err
		}
		if err := RecordAudit(tx, &actorID, "motorcycles", motorcycle.ID, "update", nil); err != nil {
			return err
		}

		reloaded, err := reloadMotorcycle(tx, motorcycle.ID)
		if err != nil {
			return err
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove performs a logical delete; the row is kept.
func (s *MotorcycleService) Remove(id uint, actorID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var motorcycle models.Motorcycle
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&motorcycle).Error; err != nil {
			return NotFound("Motorcycle not found")
		}
		if err := tx.Model(&motorcycle).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return RecordAudit(tx, &actorID, "motorcycles", motorcycle.ID, "delete", nil)
	})
}

// AddPhotos appends the given paths/URLs as photo records, continuing the
// sort order from the current photo count. The very first photo attached to
// a motorcycle with none becomes the cover.
func (s *MotorcycleService) AddPhotos(id uint, urls []string) (*models.Motorcycle, error) {
	var updated *models.Motorcycle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var motorcycle models.Motorcycle
		if err := tx.Where("id = ? AND is_deleted = ?", id, false).First(&motorcycle).Error; err != nil {
			return NotFound("Motorcycle not found")
		}

		if err := savePhotoRecords(tx, motorcycle.ID, urls); err != nil {
			return err
		}
		if err := refreshScore(tx, motorcycle.ID); err != nil {
			return err
		}

		reloaded, err := reloadMotorcycle(tx, motorcycle.ID)
		if err != nil {
			return err
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemovePhoto deletes a photo owned by the motorcycle and recomputes the
// score in the same transaction.
func (s *MotorcycleService) RemovePhoto(motorcycleID, photoID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var photo models.MotorcyclePhoto
		if err := tx.First(&photo, photoID).Error; err != nil || photo.MotorcycleID != motorcycleID {
			return NotFound("Photo not found")
		}
		if err := tx.Delete(&photo).Error; err != nil {
			return err
		}
		return refreshScore(tx, motorcycleID)
	})
}

func savePhotoRecords(tx *gorm.DB, motorcycleID uint, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	var existingCount int64
	if err := tx.Model(&models.MotorcyclePhoto{}).
		Where("motorcycle_id = ?", motorcycleID).
		Count(&existingCount).Error; err != nil {
		return err
	}

	records := make([]models.MotorcyclePhoto, 0, len(urls))
	for i, url := range urls {
		records = append(records, models.MotorcyclePhoto{
			MotorcycleID: motorcycleID,
			PathOrURL:    url,
			IsCover:      existingCount == 0 && i == 0,
			SortOrder:    int(existingCount) + i,
		})
	}
	return tx.Create(&records).Error
}

func refreshScore(tx *gorm.DB, motorcycleID uint) error {
	var motorcycle models.Motorcycle
	if err := tx.Preload("Photos").First(&motorcycle, motorcycleID).Error; err != nil {
		return NotFound("Motorcycle not found for score computation")
	}

	score, missing := CalculateCompleteness(&motorcycle)
	return tx.Model(&motorcycle).Updates(map[string]interface{}{
		"completeness_score": score,
		"missing_fields":     models.StringSlice(missing),
	}).Error
}

func reloadMotorcycle(tx *gorm.DB, id uint) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	if err := withAssociations(tx).First(&motorcycle, id).Error; err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

type scoreCriterion struct {
	name   string
	filled func(m *models.Motorcycle) bool
}

// The tracked attributes. A field counts as filled when it is non-null and
// not an empty string; boolean false still counts as filled.
var scoreCriteria = []scoreCriterion{
	{"modelName", func(m *models.Motorcycle) bool { return strings.TrimSpace(m.ModelName) != "" }},
	{"year", func(m *models.Motorcycle) bool { return m.Year != nil }},
	{"color", func(m *models.Motorcycle) bool { return m.Color != nil && *m.Color != "" }},
	{"vin", func(m *models.Motorcycle) bool { return m.VIN != nil && *m.VIN != "" }},
	{"plate", func(m *models.Motorcycle) bool { return m.Plate != nil && *m.Plate != "" }},
	{"km", func(m *models.Motorcycle) bool { return m.Km != nil }},
	{"price", func(m *models.Motorcycle) bool { return m.Price != nil }},
	{"cost", func(m *models.Motorcycle) bool { return m.Cost != nil }},
	{"fuel", func(m *models.Motorcycle) bool { return m.Fuel != nil && *m.Fuel != "" }},
	{"engineCc", func(m *models.Motorcycle) bool { return m.EngineCc != nil }},
	{"powerHp", func(m *models.Motorcycle) bool { return m.PowerHp != nil }},
	{"torqueNm", func(m *models.Motorcycle) bool { return m.TorqueNm != nil }},
	{"transmission", func(m *models.Motorcycle) bool { return m.Transmission != nil && *m.Transmission != "" }},
	{"abs", func(m *models.Motorcycle) bool { return m.ABS != nil }},
	{"description", func(m *models.Motorcycle) bool { return m.Description != nil && *m.Description != "" }},
	{"hasDocumentation", func(m *models.Motorcycle) bool { return m.HasDocumentation != nil }},
	{"hasInspection", func(m *models.Motorcycle) bool { return m.HasInspection != nil }},
}

// CalculateCompleteness scores the motorcycle over the 17 tracked scalar
// attributes plus the "has at least one photo" criterion.
func CalculateCompleteness(m *models.Motorcycle) (int, []string) {
	filled := 0
	missing := make([]string, 0)

	for _, criterion := range scoreCriteria {
		if criterion.filled(m) {
			filled++
		} else {
			missing = append(missing, criterion.name)
		}
	}

	if len(m.Photos) > 0 {
		filled++
	} else {
		missing = append(missing, "photos")
	}

	total := len(scoreCriteria) + 1
	score := int(math.Round(float64(filled) / float64(total) * 100))
	return score, missing
}

func validateEnums(input *MotorcycleInput) error {
	if input.Status != nil && !input.Status.Valid() {
		return BadRequest("Invalid status")
	}
	if input.Year != nil && !utils.IsValidYear(*input.Year) {
		return BadRequest("Invalid year")
	}
	if input.Fuel != nil && !input.Fuel.Valid() {
		return BadRequest("Invalid fuel type")
	}
	if input.Transmission != nil && !input.Transmission.Valid() {
		return BadRequest("Invalid transmission type")
	}
	return nil
}

func applyScalarFields(m *models.Motorcycle, input *MotorcycleInput, present func(string) bool) {
	if present("status") && input.Status != nil {
		m.Status = *input.Status
	}
	if present("year") {
		m.Year = input.Year
	}
	if present("color") {
		m.Color = input.Color
	}
	if present("vin") {
		m.VIN = input.VIN
	}
	if present("plate") {
		m.Plate = input.Plate
	}
	if present("km") {
		m.Km = input.Km
	}
	if present("price") {
		m.Price = input.Price
	}
	if present("cost") {
		m.Cost = input.Cost
	}
	if present("fuel") {
		m.Fuel = input.Fuel
	}
	if present("engineCc") {
		m.EngineCc = input.EngineCc
	}
	if present("powerHp") {
		m.PowerHp = input.PowerHp
	}
	if present("torqueNm") {
		m.TorqueNm = input.TorqueNm
	}
	if present("transmission") {
		m.Transmission = input.Transmission
	}
	if present("abs") {
		m.ABS = input.ABS
	}
	if present("description") {
		m.Description = input.Description
	}
	if present("hasDocumentation") {
		m.HasDocumentation = input.HasDocumentation
	}
	if present("hasInspection") {
		m.HasInspection = input.HasInspection
	}
	if present("clientName") {
		m.ClientName = input.ClientName
	}
	if present("clientPhone") {
		m.ClientPhone = input.ClientPhone
	}
	if present("documentCost") {
		m.DocumentCost = input.DocumentCost
	}
	if present("maintenanceCost") {
		m.MaintenanceCost = input.MaintenanceCost
	}
	if present("downPayment") {
		m.DownPayment = input.DownPayment
	}
}
