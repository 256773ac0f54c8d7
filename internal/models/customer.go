package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a commercial customer (master data, read-mostly).
type Customer struct {
	ID   string `json:"id" gorm:"type:uuid;primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255);not null;index"`

	VatNumber string `json:"vat_number" gorm:"type:varchar(50)"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	Phone     string `json:"phone" gorm:"type:varchar(50)"`

	Removed bool `json:"removed" gorm:"not null;default:false;index"`

	Divisions         []CustomerDivision        `json:"divisions,omitempty" gorm:"foreignKey:CustomerID"`
	ShippingAddresses []CustomerShippingAddress `json:"shipping_addresses,omitempty" gorm:"foreignKey:CustomerID"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// CustomerDivision is an organizational subdivision of a customer
// (plant, department) used for addressing offers and shipments.
type CustomerDivision struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID string    `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Name string `json:"name" gorm:"type:varchar(255);not null"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// CustomerShippingAddress is a delivery address belonging to a customer
// (optionally scoped to a division). Orders may reference one.
type CustomerShippingAddress struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	CustomerID string    `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	DivisionID *string           `json:"division_id" gorm:"type:uuid;index"`
	Division   *CustomerDivision `json:"division,omitempty" gorm:"foreignKey:DivisionID"`

	Label   string `json:"label" gorm:"type:varchar(255)"`
	Street  string `json:"street" gorm:"type:varchar(255);not null"`
	City    string `json:"city" gorm:"type:varchar(100);not null"`
	ZipCode string `json:"zip_code" gorm:"type:varchar(20)"`
	Country string `json:"country" gorm:"type:varchar(100);default:'Italia'"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
