package models

import (
	"time"

	"gorm.io/gorm"
)

// Article represents a product specification in the catalog. Every
// article descends from an offer; production orders point at articles.
type Article struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Code string `json:"code" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`

	OfferID string `json:"offer_id" gorm:"type:uuid;not null;index"`
	Offer   *Offer `json:"offer,omitempty" gorm:"foreignKey:OfferID"`

	Description string `json:"description" gorm:"type:text"`
	DrawingRef  string `json:"drawing_ref" gorm:"type:varchar(255)"`

	Removed bool `json:"removed" gorm:"not null;default:false;index"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
