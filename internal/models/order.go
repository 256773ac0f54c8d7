package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle status of a production order.
// Stored as a small integer; the numeric codes are part of the external
// contract (reports, exports) and must not change.
type OrderStatus int

const (
	OrderStatusPianificato    OrderStatus = 0 // Planned, not yet in preparation
	OrderStatusInAllestimento OrderStatus = 1 // Being set up
	OrderStatusLanciato       OrderStatus = 2 // Released to production
	OrderStatusInAvanzamento  OrderStatus = 3 // In progress (work reported)
	OrderStatusSospeso        OrderStatus = 4 // Suspended
	OrderStatusEvaso          OrderStatus = 5 // Fulfilled
	OrderStatusSaldato        OrderStatus = 6 // Settled
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusPianificato:    "pianificato",
	OrderStatusInAllestimento: "in_allestimento",
	OrderStatusLanciato:       "lanciato",
	OrderStatusInAvanzamento:  "in_avanzamento",
	OrderStatusSospeso:        "sospeso",
	OrderStatusEvaso:          "evaso",
	OrderStatusSaldato:        "saldato",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// IsCompleted reports whether the status counts as "completato" for
// dashboard purposes (EVASO and SALDATO are grouped together).
func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusEvaso || s == OrderStatusSaldato
}

// CompletedStatuses is the "completato" group used by dashboard filters.
var CompletedStatuses = []OrderStatus{OrderStatusEvaso, OrderStatusSaldato}

// StatusSemaphore is the three-part readiness indicator on an order
// (labels / packaging / product, each 0=red 1=yellow 2=green).
// Persisted as an opaque JSON blob in a single column.
type StatusSemaphore struct {
	Etichette int `json:"etichette"`
	Packaging int `json:"packaging"`
	Prodotto  int `json:"prodotto"`
}

// Value implements driver.Valuer so GORM writes the semaphore as JSON text.
func (s StatusSemaphore) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner. An empty or NULL column decodes to the
// all-zero semaphore.
func (s *StatusSemaphore) Scan(value interface{}) error {
	if value == nil {
		*s = StatusSemaphore{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StatusSemaphore", value)
	}
	if len(data) == 0 {
		*s = StatusSemaphore{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Order represents a production order: manufacture Quantity units of an
// Article. The Removed flag is a logical-delete marker used by every
// dashboard query; it is distinct from DeletedAt (hard soft-delete),
// which only the out-of-scope purge flow touches.
type Order struct {
	ID               string   `json:"id" gorm:"type:uuid;primaryKey"`
	ProductionNumber string   `json:"order_production_number" gorm:"type:varchar(100);uniqueIndex;not null"`
	ArticleID        string   `json:"article_id" gorm:"type:uuid;not null;index"`
	Article          *Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`

	CustomerShippingAddressID *string                  `json:"customer_shipping_address_id" gorm:"type:uuid;index"`
	CustomerShippingAddress   *CustomerShippingAddress `json:"customer_shipping_address,omitempty" gorm:"foreignKey:CustomerShippingAddressID"`

	Quantity       decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2);not null;default:0"`
	WorkedQuantity decimal.Decimal `json:"worked_quantity" gorm:"type:decimal(12,2);not null;default:0"`

	DeliveryRequestedAt *time.Time `json:"delivery_requested_date" gorm:"type:date;index"`

	Status          OrderStatus     `json:"status" gorm:"type:smallint;not null;default:0;index"`
	StatusSemaphore StatusSemaphore `json:"status_semaphore" gorm:"type:text"`

	Autocontrollo bool `json:"autocontrollo" gorm:"not null;default:false"`
	Removed       bool `json:"removed" gorm:"not null;default:false;index"`

	Employees []OrderEmployee `json:"employees,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProgressPercentage returns worked/quantity as a percentage rounded to
// two decimals, 0 when the quantity is zero.
func (o *Order) ProgressPercentage() float64 {
	if o.Quantity.IsZero() {
		return 0
	}
	pct, _ := o.WorkedQuantity.Div(o.Quantity).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// OrderEmployee is the order <-> employee assignment row. Assignments are
// never hard-deleted: sync marks the row Removed and keeps it for history.
type OrderEmployee struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID    string    `json:"order_id" gorm:"type:uuid;not null;index:idx_order_employee,unique"`
	EmployeeID string    `json:"employee_id" gorm:"type:uuid;not null;index:idx_order_employee,unique"`
	Employee   *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`

	Removed bool `json:"removed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
