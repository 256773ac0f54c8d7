package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OfferApprovalStatus represents the commercial approval state of an offer.
type OfferApprovalStatus string

const (
	OfferApprovalPending  OfferApprovalStatus = "pending"
	OfferApprovalApproved OfferApprovalStatus = "approved"
	OfferApprovalRejected OfferApprovalStatus = "rejected"
)

// Offer represents a commercial quotation tied to a customer. Articles
// (and through them production orders) descend from an offer.
type Offer struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	OfferNumber string `json:"offer_number" gorm:"type:varchar(100);uniqueIndex;not null"`

	CustomerID string    `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Description    string              `json:"description" gorm:"type:text"`
	CustomerRef    string              `json:"customer_ref" gorm:"type:varchar(255)"`
	Material       string              `json:"material" gorm:"type:varchar(255)"`
	UnitPrice      decimal.Decimal     `json:"unit_price" gorm:"type:decimal(12,4);not null;default:0"`
	EstimatedQty   decimal.Decimal     `json:"estimated_quantity" gorm:"type:decimal(12,2);not null;default:0"`
	Notes          string              `json:"notes" gorm:"type:text"`
	ApprovalStatus OfferApprovalStatus `json:"approval_status" gorm:"type:varchar(20);not null;default:'pending';index"`

	Removed bool `json:"removed" gorm:"not null;default:false;index"`

	Operations []OfferOperation `json:"operations,omitempty" gorm:"foreignKey:OfferID"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// OfferOperation is the offer <-> operation catalog join row, carrying
// the number of operations (NumOp) quoted for that line. Reconciled as a
// set when the offer is updated: lines leave the desired set by being
// marked Removed, never by deletion.
type OfferOperation struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	OfferID     string     `json:"offer_id" gorm:"type:uuid;not null;index:idx_offer_operation,unique"`
	OperationID string     `json:"operation_id" gorm:"type:uuid;not null;index:idx_offer_operation,unique"`
	Operation   *Operation `json:"operation,omitempty" gorm:"foreignKey:OperationID"`

	NumOp decimal.Decimal `json:"num_op" gorm:"type:decimal(10,2);not null;default:0"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
