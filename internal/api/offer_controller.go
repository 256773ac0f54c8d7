package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gestionale/server/internal/models"
	"gestionale/server/internal/services"
)

type OfferController struct {
	offers *services.OfferService
}

func NewOfferController(offers *services.OfferService) *OfferController {
	return &OfferController{offers: offers}
}

// GET /api/offers?customer_id=...&approval_status=pending&limit=100
func (oc *OfferController) ListOffers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	offers, err := oc.offers.GetOffers(
		c.Query("customer_id"),
		models.OfferApprovalStatus(c.Query("approval_status")),
		limit,
	)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers, "count": len(offers)})
}

// GET /api/offers/:id
func (oc *OfferController) GetOffer(c *gin.Context) {
	offer, err := oc.offers.GetOffer(c.Param("id"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// POST /api/offers
func (oc *OfferController) CreateOffer(c *gin.Context) {
	var input services.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data", "details": err.Error()})
		return
	}

	offer, err := oc.offers.CreateOffer(input)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// PUT /api/offers/:id — an "operations" list in the body reconciles the
// offer's operation lines against it.
func (oc *OfferController) UpdateOffer(c *gin.Context) {
	var input services.UpdateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data", "details": err.Error()})
		return
	}

	offer, err := oc.offers.UpdateOffer(c.Param("id"), input)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

// DELETE /api/offers/:id — logical removal.
func (oc *OfferController) RemoveOffer(c *gin.Context) {
	if err := oc.offers.RemoveOffer(c.Param("id")); err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}
