package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gestionale/server/internal/models"
	"gestionale/server/internal/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// renderServiceError maps service errors to HTTP responses. Duplicate
// key failures keep their field so the form can show the message inline.
func renderServiceError(c *gin.Context, err error) {
	var dup *services.DuplicateKeyError
	if errors.As(err, &dup) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   true,
			"field":   dup.Field,
			"message": dup.Message,
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GET /api/orders?statuses=2,3&customer_id=...&include_removed=false&limit=100
func (oc *OrderController) ListOrders(c *gin.Context) {
	statuses := parseStatuses(c.Query("statuses"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	includeRemoved := c.Query("include_removed") == "true"

	orders, err := oc.orders.GetOrders(statuses, c.Query("customer_id"), includeRemoved, limit)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GET /api/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.orders.GetOrder(c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data", "details": err.Error()})
		return
	}

	order, err := oc.orders.CreateOrder(input)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PUT /api/orders/:id
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var input services.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data", "details": err.Error()})
		return
	}

	order, err := oc.orders.UpdateOrder(c.Param("id"), input)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id — logical removal, the row stays for history.
func (oc *OrderController) RemoveOrder(c *gin.Context) {
	if err := oc.orders.RemoveOrder(c.Param("id")); err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

type syncEmployeesRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
}

// POST /api/orders/:id/employees — makes the active assignment set match
// the supplied list exactly.
func (oc *OrderController) SyncEmployees(c *gin.Context) {
	var req syncEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data", "details": err.Error()})
		return
	}

	assignments, err := oc.orders.SyncOrderEmployees(c.Param("id"), req.EmployeeIDs)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": assignments, "count": len(assignments)})
}

func parseStatuses(raw string) []models.OrderStatus {
	if raw == "" {
		return nil
	}
	var statuses []models.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			statuses = append(statuses, models.OrderStatus(n))
		}
	}
	return statuses
}
