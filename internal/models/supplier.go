package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents an external supplier (master data, read-mostly).
type Supplier struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255);not null;index"`

	VatNumber string `json:"vat_number" gorm:"type:varchar(50)"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	Phone     string `json:"phone" gorm:"type:varchar(50)"`

	Removed bool `json:"removed" gorm:"not null;default:false;index"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
