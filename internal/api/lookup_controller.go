package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gestionale/server/internal/services"
)

// LookupController serves the cached dropdown option lists behind the
// CRUD forms.
type LookupController struct {
	lookups *services.LookupService
}

func NewLookupController(lookups *services.LookupService) *LookupController {
	return &LookupController{lookups: lookups}
}

func (lc *LookupController) render(c *gin.Context, options []services.LookupOption, err error) {
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

// GET /api/lookups/customers
func (lc *LookupController) Customers(c *gin.Context) {
	options, err := lc.lookups.Customers()
	lc.render(c, options, err)
}

// GET /api/lookups/customers/:id/divisions
func (lc *LookupController) CustomerDivisions(c *gin.Context) {
	options, err := lc.lookups.CustomerDivisions(c.Param("id"))
	lc.render(c, options, err)
}

// GET /api/lookups/customers/:id/shipping-addresses
func (lc *LookupController) ShippingAddresses(c *gin.Context) {
	options, err := lc.lookups.ShippingAddresses(c.Param("id"))
	lc.render(c, options, err)
}

// GET /api/lookups/articles
func (lc *LookupController) Articles(c *gin.Context) {
	options, err := lc.lookups.Articles()
	lc.render(c, options, err)
}

// GET /api/lookups/suppliers
func (lc *LookupController) Suppliers(c *gin.Context) {
	options, err := lc.lookups.Suppliers()
	lc.render(c, options, err)
}

// GET /api/lookups/operations
func (lc *LookupController) Operations(c *gin.Context) {
	options, err := lc.lookups.Operations()
	lc.render(c, options, err)
}

// GET /api/lookups/employees
func (lc *LookupController) Employees(c *gin.Context) {
	options, err := lc.lookups.Employees()
	lc.render(c, options, err)
}

// POST /api/lookups/refresh — drops every cached list, for use right
// after master-data imports.
func (lc *LookupController) Refresh(c *gin.Context) {
	if err := lc.lookups.Refresh(); err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}
