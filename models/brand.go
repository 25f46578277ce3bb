package models

import (
	"time"
)

type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:120"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Motorcycles []Motorcycle `json:"-" gorm:"foreignKey:BrandID"`
}
