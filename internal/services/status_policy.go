package services

import (
	"github.com/shopspring/decimal"

	"gestionale/server/internal/models"
)

// ResolveStatus applies the one automatic status transition of the order
// lifecycle: when the worked quantity strictly increases while the order
// is LANCIATO, the order advances to IN_AVANZAMENTO. The auto-advance
// wins over any status supplied by the caller. Every other transition is
// whatever the caller asked for; the policy does not forbid jumps
// (including regressions out of SALDATO — kept editable for back-office
// corrections).
func ResolveStatus(current models.OrderStatus, requested *models.OrderStatus, prevWorked, newWorked decimal.Decimal) models.OrderStatus {
	if newWorked.GreaterThan(prevWorked) && current == models.OrderStatusLanciato {
		return models.OrderStatusInAvanzamento
	}
	if requested != nil {
		return *requested
	}
	return current
}
