package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gestionale/server/internal/models"
	"gestionale/server/internal/utils"
)

const (
	duplicateProductionNumberMsg = "Numero ordine di produzione già esistente"

	dashboardCachePattern = "dashboard:*"
)

// OrderService owns the production-order lifecycle: creation, update
// (including the LANCIATO → IN_AVANZAMENTO auto-transition), employee
// assignment sync and logical removal.
type OrderService struct {
	db        *gorm.DB
	cache     *utils.RedisClient
	numbering NumberingService
	events    *OrderEventPublisher
}

func NewOrderService(db *gorm.DB, cache *utils.RedisClient, numbering NumberingService, events *OrderEventPublisher) *OrderService {
	return &OrderService{
		db:        db,
		cache:     cache,
		numbering: numbering,
		events:    events,
	}
}

type CreateOrderInput struct {
	ProductionNumber          string          `json:"order_production_number"`
	ArticleID                 string          `json:"article_id"`
	CustomerShippingAddressID *string         `json:"customer_shipping_address_id"`
	Quantity                  decimal.Decimal `json:"quantity"`
	DeliveryRequestedAt       *time.Time      `json:"delivery_requested_date"`
	Autocontrollo             bool            `json:"autocontrollo"`
}

// CreateOrder validates the production number, fills an auto-generated
// one when absent and persists a new order in PIANIFICATO with the
// all-zero semaphore.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.ArticleID == "" {
		return nil, fmt.Errorf("article is required")
	}
	if input.Quantity.IsNegative() {
		return nil, fmt.Errorf("quantity must be >= 0")
	}

	productionNumber := input.ProductionNumber
	if productionNumber != "" {
		// User-experience pre-check. The unique index covers the whole
		// table (removed and purged rows included), so the check is
		// global as well.
		taken, err := s.productionNumberTaken(productionNumber, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &DuplicateKeyError{Field: "order_production_number", Message: duplicateProductionNumberMsg}
		}
	} else {
		generated, err := s.numbering.GenerateNext("order", "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to generate production number: %w", err)
		}
		productionNumber = generated
	}

	order := &models.Order{
		ID:                        uuid.New().String(),
		ProductionNumber:          productionNumber,
		ArticleID:                 input.ArticleID,
		CustomerShippingAddressID: input.CustomerShippingAddressID,
		Quantity:                  input.Quantity,
		WorkedQuantity:            decimal.Zero,
		DeliveryRequestedAt:       input.DeliveryRequestedAt,
		Status:                    models.OrderStatusPianificato,
		StatusSemaphore:           models.StatusSemaphore{},
		Autocontrollo:             input.Autocontrollo,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, translateUniqueViolation(err, "order_production_number", duplicateProductionNumberMsg)
	}

	s.invalidateDashboard()
	s.events.Publish(OrderEvent{
		Type:             OrderEventCreated,
		OrderID:          order.ID,
		ProductionNumber: order.ProductionNumber,
		Status:           order.Status,
	})

	return order, nil
}

type UpdateOrderInput struct {
	ProductionNumber          *string                 `json:"order_production_number"`
	ArticleID                 *string                 `json:"article_id"`
	CustomerShippingAddressID *string                 `json:"customer_shipping_address_id"`
	Quantity                  *decimal.Decimal        `json:"quantity"`
	WorkedQuantity            *decimal.Decimal        `json:"worked_quantity"`
	DeliveryRequestedAt       *time.Time              `json:"delivery_requested_date"`
	Status                    *models.OrderStatus     `json:"status"`
	StatusSemaphore           *models.StatusSemaphore `json:"status_semaphore"`
	Autocontrollo             *bool                   `json:"autocontrollo"`
}

// UpdateOrder merges the supplied fields into the order and applies the
// status policy: an increase of the worked quantity while the order is
// LANCIATO advances it to IN_AVANZAMENTO regardless of any status also
// present in the input.
func (s *OrderService) UpdateOrder(id string, input UpdateOrderInput) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	if input.ProductionNumber != nil && *input.ProductionNumber != order.ProductionNumber {
		taken, err := s.productionNumberTaken(*input.ProductionNumber, order.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, &DuplicateKeyError{Field: "order_production_number", Message: duplicateProductionNumberMsg}
		}
		order.ProductionNumber = *input.ProductionNumber
	}

	previousStatus := order.Status
	prevWorked := order.WorkedQuantity
	newWorked := prevWorked
	if input.WorkedQuantity != nil {
		newWorked = *input.WorkedQuantity
	}

	order.Status = ResolveStatus(order.Status, input.Status, prevWorked, newWorked)
	order.WorkedQuantity = newWorked

	if input.ArticleID != nil {
		order.ArticleID = *input.ArticleID
	}
	if input.CustomerShippingAddressID != nil {
		order.CustomerShippingAddressID = input.CustomerShippingAddressID
	}
	if input.Quantity != nil {
		order.Quantity = *input.Quantity
	}
	if input.DeliveryRequestedAt != nil {
		order.DeliveryRequestedAt = input.DeliveryRequestedAt
	}
	if input.StatusSemaphore != nil {
		order.StatusSemaphore = *input.StatusSemaphore
	}
	if input.Autocontrollo != nil {
		order.Autocontrollo = *input.Autocontrollo
	}

	if err := s.db.Save(&order).Error; err != nil {
		return nil, translateUniqueViolation(err, "order_production_number", duplicateProductionNumberMsg)
	}

	s.invalidateDashboard()
	if order.Status != previousStatus {
		s.events.Publish(OrderEvent{
			Type:             OrderEventStatusChanged,
			OrderID:          order.ID,
			ProductionNumber: order.ProductionNumber,
			Status:           order.Status,
			PreviousStatus:   &previousStatus,
		})
	}

	return &order, nil
}

// SyncOrderEmployees makes the active employee assignments of an order
// match employeeIDs exactly: existing rows are re-activated, missing
// ones created, everything else soft-removed. Runs in a transaction
// scoped to the order so concurrent syncs cannot interleave.
func (s *OrderService) SyncOrderEmployees(orderID string, employeeIDs []string) ([]models.OrderEmployee, error) {
	var result []models.OrderEmployee

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("order not found: %w", err)
		}

		var existing []models.OrderEmployee
		if err := tx.Where("order_id = ?", orderID).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load employee assignments: %w", err)
		}

		plan := BuildReconcilePlan(existing, employeeIDs, ReconcileOps[models.OrderEmployee, string]{
			RowKey:     func(r models.OrderEmployee) string { return r.EmployeeID },
			DesiredKey: func(id string) string { return id },
			NewRow: func(id string) models.OrderEmployee {
				return models.OrderEmployee{
					ID:         uuid.New().String(),
					OrderID:    orderID,
					EmployeeID: id,
				}
			},
			Activate: func(r *models.OrderEmployee, _ string) bool {
				if !r.Removed {
					return false
				}
				r.Removed = false
				return true
			},
			Deactivate: func(r *models.OrderEmployee) bool {
				if r.Removed {
					return false
				}
				r.Removed = true
				return true
			},
		})

		if err := ApplyReconcilePlan(tx, plan); err != nil {
			return err
		}

		return tx.Where("order_id = ? AND removed = ?", orderID, false).Find(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveOrder flags the order as removed. This is the logical delete
// used by the normal flow; the row (and its history) stays in place.
func (s *OrderService) RemoveOrder(id string) error {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	if order.Removed {
		return nil
	}

	order.Removed = true
	if err := s.db.Save(&order).Error; err != nil {
		return fmt.Errorf("failed to remove order: %w", err)
	}

	s.invalidateDashboard()
	s.events.Publish(OrderEvent{
		Type:             OrderEventRemoved,
		OrderID:          order.ID,
		ProductionNumber: order.ProductionNumber,
		Status:           order.Status,
	})
	return nil
}

// GetOrder returns one order with its display associations.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Article").
		Preload("Article.Offer.Customer").
		Preload("CustomerShippingAddress").
		Preload("Employees", "removed = ?", false).
		Preload("Employees.Employee").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders returns orders with optional status/customer filters, newest
// first, bounded by limit.
func (s *OrderService) GetOrders(statuses []models.OrderStatus, customerID string, includeRemoved bool, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	query := s.db.Model(&models.Order{}).
		Preload("Article").
		Preload("CustomerShippingAddress").
		Order("created_at DESC").
		Limit(limit)

	if !includeRemoved {
		query = query.Where("removed = ?", false)
	}
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if customerID != "" {
		query = query.
			Joins("JOIN articles ON articles.id = orders.article_id").
			Joins("JOIN offers ON offers.id = articles.offer_id").
			Where("offers.customer_id = ?", customerID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) productionNumberTaken(productionNumber, excludeID string) (bool, error) {
	// Unscoped: the unique index does not care about soft-deleted rows
	// either, so neither does the pre-check.
	query := s.db.Unscoped().Model(&models.Order{}).Where("production_number = ?", productionNumber)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check production number: %w", err)
	}
	return count > 0, nil
}

// Dashboard aggregates read order state; every order write drops them.
// Stale entries expire with the TTL anyway, so failures are ignored.
func (s *OrderService) invalidateDashboard() {
	_ = s.cache.ForgetPattern(dashboardCachePattern)
}
