package models

import (
	"time"
)

type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:120"`
	TaxID     *string   `json:"taxId" gorm:"column:tax_id;size:20"`
	City      *string   `json:"city" gorm:"size:120"`
	State     *string   `json:"state" gorm:"size:2"`
	Address   *string   `json:"address" gorm:"size:255"`
	Phone     *string   `json:"phone" gorm:"size:30"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Users       []User       `json:"-" gorm:"foreignKey:StoreID"`
	Motorcycles []Motorcycle `json:"-" gorm:"foreignKey:StoreID"`
}
