package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gestionale/server/internal/models"
	"gestionale/server/internal/utils"
)

const duplicateOfferNumberMsg = "Numero offerta già esistente"

// OfferService owns offer creation/update, including the reconciliation
// of the quoted operation lines.
type OfferService struct {
	db        *gorm.DB
	cache     *utils.RedisClient
	numbering NumberingService
}

func NewOfferService(db *gorm.DB, cache *utils.RedisClient, numbering NumberingService) *OfferService {
	return &OfferService{
		db:        db,
		cache:     cache,
		numbering: numbering,
	}
}

type CreateOfferInput struct {
	OfferNumber  string          `json:"offer_number"`
	CustomerID   string          `json:"customer_id"`
	Description  string          `json:"description"`
	CustomerRef  string          `json:"customer_ref"`
	Material     string          `json:"material"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	EstimatedQty decimal.Decimal `json:"estimated_quantity"`
	Notes        string          `json:"notes"`
}

// CreateOffer mirrors order creation: unique offer number (pre-checked,
// then enforced by the index), auto-generated when absent.
func (s *OfferService) CreateOffer(input CreateOfferInput) (*models.Offer, error) {
	if input.CustomerID == "" {
		return nil, fmt.Errorf("customer is required")
	}

	offerNumber := input.OfferNumber
	if offerNumber != "" {
		taken, err := s.offerNumberTaken(offerNumber, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &DuplicateKeyError{Field: "offer_number", Message: duplicateOfferNumberMsg}
		}
	} else {
		generated, err := s.numbering.GenerateNext("offer", "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to generate offer number: %w", err)
		}
		offerNumber = generated
	}

	offer := &models.Offer{
		ID:             uuid.New().String(),
		OfferNumber:    offerNumber,
		CustomerID:     input.CustomerID,
		Description:    input.Description,
		CustomerRef:    input.CustomerRef,
		Material:       input.Material,
		UnitPrice:      input.UnitPrice,
		EstimatedQty:   input.EstimatedQty,
		Notes:          input.Notes,
		ApprovalStatus: models.OfferApprovalPending,
	}

	if err := s.db.Create(offer).Error; err != nil {
		return nil, translateUniqueViolation(err, "offer_number", duplicateOfferNumberMsg)
	}

	s.invalidateDashboard()
	return offer, nil
}

// OfferOperationInput is one desired operation line: which catalog
// operation and how many operations are quoted.
type OfferOperationInput struct {
	OperationID string          `json:"operation_id"`
	NumOp       decimal.Decimal `json:"num_op"`
}

type UpdateOfferInput struct {
	OfferNumber    *string                     `json:"offer_number"`
	CustomerID     *string                     `json:"customer_id"`
	Description    *string                     `json:"description"`
	CustomerRef    *string                     `json:"customer_ref"`
	Material       *string                     `json:"material"`
	UnitPrice      *decimal.Decimal            `json:"unit_price"`
	EstimatedQty   *decimal.Decimal            `json:"estimated_quantity"`
	Notes          *string                     `json:"notes"`
	ApprovalStatus *models.OfferApprovalStatus `json:"approval_status"`

	// Operations nil means "leave the lines alone"; a present empty
	// list soft-removes every line.
	Operations *[]OfferOperationInput `json:"operations"`
}

// UpdateOffer merges scalar fields and, when an operations list is
// supplied, reconciles the offer's operation lines against it inside a
// transaction scoped to the offer.
func (s *OfferService) UpdateOffer(id string, input UpdateOfferInput) (*models.Offer, error) {
	var offer models.Offer

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&offer, "id = ?", id).Error; err != nil {
			return fmt.Errorf("offer not found: %w", err)
		}

		if input.OfferNumber != nil && *input.OfferNumber != offer.OfferNumber {
			taken, err := s.offerNumberTaken(*input.OfferNumber, offer.ID)
			if err != nil {
				return err
			}
			if taken {
				return &DuplicateKeyError{Field: "offer_number", Message: duplicateOfferNumberMsg}
			}
			offer.OfferNumber = *input.OfferNumber
		}

		if input.CustomerID != nil {
			offer.CustomerID = *input.CustomerID
		}
		if input.Description != nil {
			offer.Description = *input.Description
		}
		if input.CustomerRef != nil {
			offer.CustomerRef = *input.CustomerRef
		}
		if input.Material != nil {
			offer.Material = *input.Material
		}
		if input.UnitPrice != nil {
			offer.UnitPrice = *input.UnitPrice
		}
		if input.EstimatedQty != nil {
			offer.EstimatedQty = *input.EstimatedQty
		}
		if input.Notes != nil {
			offer.Notes = *input.Notes
		}
		if input.ApprovalStatus != nil {
			offer.ApprovalStatus = *input.ApprovalStatus
		}

		if err := tx.Save(&offer).Error; err != nil {
			return translateUniqueViolation(err, "offer_number", duplicateOfferNumberMsg)
		}

		if input.Operations != nil {
			if err := s.reconcileOperations(tx, offer.ID, *input.Operations); err != nil {
				return err
			}
		}

		return tx.Preload("Operations", "removed = ?", false).
			Preload("Operations.Operation").
			First(&offer, "id = ?", offer.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard()
	return &offer, nil
}

func (s *OfferService) reconcileOperations(tx *gorm.DB, offerID string, desired []OfferOperationInput) error {
	var existing []models.OfferOperation
	if err := tx.Where("offer_id = ?", offerID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to load operation lines: %w", err)
	}

	plan := BuildReconcilePlan(existing, desired, ReconcileOps[models.OfferOperation, OfferOperationInput]{
		RowKey:     func(r models.OfferOperation) string { return r.OperationID },
		DesiredKey: func(d OfferOperationInput) string { return d.OperationID },
		NewRow: func(d OfferOperationInput) models.OfferOperation {
			return models.OfferOperation{
				ID:          uuid.New().String(),
				OfferID:     offerID,
				OperationID: d.OperationID,
				NumOp:       d.NumOp,
			}
		},
		Activate: func(r *models.OfferOperation, d OfferOperationInput) bool {
			changed := false
			if r.Removed {
				r.Removed = false
				changed = true
			}
			if !r.NumOp.Equal(d.NumOp) {
				r.NumOp = d.NumOp
				changed = true
			}
			return changed
		},
		Deactivate: func(r *models.OfferOperation) bool {
			if r.Removed {
				return false
			}
			r.Removed = true
			return true
		},
	})

	return ApplyReconcilePlan(tx, plan)
}

// RemoveOffer flags the offer as removed (logical delete).
func (s *OfferService) RemoveOffer(id string) error {
	var offer models.Offer
	if err := s.db.First(&offer, "id = ?", id).Error; err != nil {
		return fmt.Errorf("offer not found: %w", err)
	}
	if offer.Removed {
		return nil
	}

	offer.Removed = true
	if err := s.db.Save(&offer).Error; err != nil {
		return fmt.Errorf("failed to remove offer: %w", err)
	}

	s.invalidateDashboard()
	return nil
}

// GetOffer returns one offer with its active operation lines.
func (s *OfferService) GetOffer(id string) (*models.Offer, error) {
	var offer models.Offer
	err := s.db.
		Preload("Customer").
		Preload("Operations", "removed = ?", false).
		Preload("Operations.Operation").
		First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetOffers returns offers newest first with optional customer and
// approval filters, bounded by limit.
func (s *OfferService) GetOffers(customerID string, approvalStatus models.OfferApprovalStatus, limit int) ([]models.Offer, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := s.db.Model(&models.Offer{}).
		Preload("Customer").
		Where("removed = ?", false).
		Order("created_at DESC").
		Limit(limit)

	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if approvalStatus != "" {
		query = query.Where("approval_status = ?", approvalStatus)
	}

	var offers []models.Offer
	if err := query.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	return offers, nil
}

func (s *OfferService) offerNumberTaken(offerNumber, excludeID string) (bool, error) {
	query := s.db.Unscoped().Model(&models.Offer{}).Where("offer_number = ?", offerNumber)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check offer number: %w", err)
	}
	return count > 0, nil
}

func (s *OfferService) invalidateDashboard() {
	_ = s.cache.ForgetPattern(dashboardCachePattern)
}
