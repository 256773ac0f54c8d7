package models

import "time"

// Operation is a catalog entry for a production operation (turning,
// milling, plating, ...). Offers quote a number of operations per line
// via OfferOperation.
type Operation struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Code string `json:"code" gorm:"type:varchar(50);uniqueIndex;not null"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Employee is a shop-floor worker assignable to production orders.
type Employee struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName string `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName  string `json:"last_name" gorm:"type:varchar(100);not null"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
