package models

import (
	"gorm.io/gorm"
)

// AutoMigrate creates/updates all tables. Master data first, then
// offers/articles, then orders and their association rows (foreign keys
// point backwards through the list).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&CustomerDivision{},
		&CustomerShippingAddress{},
		&Supplier{},
		&Operation{},
		&Employee{},
		&Offer{},
		&OfferOperation{},
		&Article{},
		&Order{},
		&OrderEmployee{},
	)
}
