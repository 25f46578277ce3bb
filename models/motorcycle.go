package models

import (
	"time"
)

type MotorcycleStatus string

const (
	MotorcycleAvailable   MotorcycleStatus = "available"
	MotorcycleReserved    MotorcycleStatus = "reserved"
	MotorcycleSold        MotorcycleStatus = "sold"
	MotorcycleMaintenance MotorcycleStatus = "maintenance"
	MotorcyclePendingInfo MotorcycleStatus = "pending_info"
)

func (s MotorcycleStatus) Valid() bool {
	switch s {
	case MotorcycleAvailable, MotorcycleReserved, MotorcycleSold, MotorcycleMaintenance, MotorcyclePendingInfo:
		return true
	}
	return false
}

type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelFlex     FuelType = "flex"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

func (f FuelType) Valid() bool {
	switch f {
	case FuelGasoline, FuelEthanol, FuelFlex, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

type TransmissionType string

const (
	TransmissionManual        TransmissionType = "manual"
	TransmissionAutomatic     TransmissionType = "automatic"
	TransmissionSemiAutomatic TransmissionType = "semi_automatic"
)

func (t TransmissionType) Valid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic:
		return true
	}
	return false
}

type Motorcycle struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StoreID   uint             `json:"storeId" gorm:"not null"`
	Store     *Store           `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	BrandID   uint             `json:"brandId" gorm:"not null"`
	Brand     *Brand           `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	ModelName string           `json:"modelName" gorm:"not null;size:160"`
	Year      *int             `json:"year"`
	Color     *string          `json:"color" gorm:"size:60"`
	VIN       *string          `json:"vin" gorm:"column:vin;size:32;uniqueIndex"`
	Plate     *string          `json:"plate" gorm:"size:16;uniqueIndex"`
	Km        *int             `json:"km"`
	Price     *float64         `json:"price"`
	Cost      *float64         `json:"cost"`
	Status    MotorcycleStatus `json:"status" gorm:"type:varchar(20);default:'available'"`

	Fuel             *FuelType         `json:"fuel" gorm:"type:varchar(20)"`
	EngineCc         *int              `json:"engineCc"`
	PowerHp          *int              `json:"powerHp"`
	TorqueNm         *int              `json:"torqueNm"`
	Transmission     *TransmissionType `json:"transmission" gorm:"type:varchar(20)"`
	ABS              *bool             `json:"abs" gorm:"column:abs"`
	Description      *string           `json:"description" gorm:"type:text"`
	HasDocumentation *bool             `json:"hasDocumentation"`
	HasInspection    *bool             `json:"hasInspection"`

	ClientName      *string  `json:"clientName" gorm:"size:160"`
	ClientPhone     *string  `json:"clientPhone" gorm:"size:30"`
	DocumentCost    *float64 `json:"documentCost"`
	MaintenanceCost *float64 `json:"maintenanceCost"`
	DownPayment     *float64 `json:"downPayment"`

	CompletenessScore int         `json:"completenessScore" gorm:"default:0"`
	MissingFields     StringSlice `json:"missingFields"`

	IsDeleted   bool  `json:"-" gorm:"default:false;index"`
	CreatedByID *uint `json:"createdById" gorm:"column:created_by"`
	CreatedBy   *User `json:"-" gorm:"foreignKey:CreatedByID"`
	UpdatedByID *uint `json:"updatedById" gorm:"column:updated_by"`
	UpdatedBy   *User `json:"-" gorm:"foreignKey:UpdatedByID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Photos []MotorcyclePhoto `json:"photos" gorm:"foreignKey:MotorcycleID"`
}

type MotorcyclePhoto struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MotorcycleID uint      `json:"motorcycleId" gorm:"not null;index"`
	PathOrURL    string    `json:"pathOrUrl" gorm:"column:path_or_url;type:text;not null"`
	IsCover      bool      `json:"isCover" gorm:"default:false"`
	SortOrder    int       `json:"sortOrder" gorm:"default:0"`
	Metadata     JSONMap   `json:"metadata"`
	CreatedAt    time.Time `json:"createdAt"`
}
