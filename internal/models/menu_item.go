package models

import (
	"time"

	"gorm.io/gorm"
)

// UnlimitedStock marks an item whose inventory is not tracked; checkout
// never decrements it.
const UnlimitedStock = -1

type MenuItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Price     float64        `json:"price" gorm:"not null"`
	Stock     int            `json:"stock" gorm:"not null;default:0"` // -1 = unlimited
	Category  string         `json:"category" gorm:"index"`
	Enabled   bool           `json:"enabled" gorm:"default:true"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (m *MenuItem) HasUnlimitedStock() bool {
	return m.Stock == UnlimitedStock
}
