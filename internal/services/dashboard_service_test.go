package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gestionale/server/internal/models"
)

func TestProgressPct(t *testing.T) {
	assert.Equal(t, 0.0, progressPct(10, 0), "zero total must not divide")
	assert.Equal(t, 0.0, progressPct(10, -5))
	assert.Equal(t, 50.0, progressPct(5, 10))
	assert.Equal(t, 33.33, progressPct(1, 3))
	assert.Equal(t, 120.0, progressPct(12, 10), "over-production is reported as-is")
}

func TestDeltaPct(t *testing.T) {
	assert.Equal(t, 0.0, deltaPct(0, 100), "no baseline, no percentage")
	assert.Equal(t, 100.0, deltaPct(50, 100))
	assert.Equal(t, -50.0, deltaPct(100, 50))
	assert.Equal(t, 0.0, deltaPct(100, 100))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(33.333333))
	assert.Equal(t, 66.67, round2(66.666666))
	assert.Equal(t, -2.5, round2(-2.5))
}

func TestDaysBetweenDates(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetweenDates(now, time.Date(2026, 8, 28, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, daysBetweenDates(now, time.Date(2026, 8, 29, 0, 30, 0, 0, time.UTC)),
		"tomorrow is one day away regardless of the hour")
	assert.Equal(t, 7, daysBetweenDates(now, time.Date(2026, 9, 4, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -3, daysBetweenDates(now, time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC)))
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	start, end := periodRange("today", now)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)

	start, _ = periodRange("week", now)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, _ = periodRange("quarter", now)
	assert.Equal(t, now.AddDate(0, 0, -90), start)

	start, _ = periodRange("year", now)
	assert.Equal(t, now.AddDate(-1, 0, 0), start)

	// Anything unrecognized falls back to the rolling month.
	start, _ = periodRange("month", now)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
	start, _ = periodRange("fortnight", now)
	assert.Equal(t, now.AddDate(0, 0, -30), start)
}

func TestPreviousWindow(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	prevStart, prevEnd := previousWindow(start, end)

	assert.Equal(t, start.AddDate(0, 0, -1), prevEnd, "previous window ends one day before the current one starts")
	assert.Equal(t, end.Sub(start), prevEnd.Sub(prevStart), "windows have equal length")
}

func TestDaysInPeriod(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, daysInPeriod(DashboardFilter{}), "open window defaults to 30 days")
	assert.Equal(t, 10, daysInPeriod(DashboardFilter{From: &from, To: &to}))

	sameDay := from
	assert.Equal(t, 1, daysInPeriod(DashboardFilter{From: &from, To: &sameDay}), "never below one day")
}

func TestBuildAlerts_AllClear(t *testing.T) {
	alerts := buildAlerts(0, 0, "", 0)
	assert.Empty(t, alerts)
}

func TestBuildAlerts_AllThree(t *testing.T) {
	alerts := buildAlerts(3, 5, "order-uuid-1", 2)

	assert.Len(t, alerts, 3)

	assert.Equal(t, "suspended_orders", alerts[0].Type)
	assert.Equal(t, AlertSeverityHigh, alerts[0].Severity)
	assert.Equal(t, int64(3), alerts[0].Count)
	assert.Contains(t, alerts[0].Message, "3 ordini sospesi")
	assert.Empty(t, alerts[0].FirstOrderID)

	assert.Equal(t, "overdue_orders", alerts[1].Type)
	assert.Equal(t, AlertSeverityCritical, alerts[1].Severity)
	assert.Equal(t, "order-uuid-1", alerts[1].FirstOrderID, "overdue alert carries the earliest-due order for deep-linking")

	assert.Equal(t, "autocontrollo_pending", alerts[2].Type)
	assert.Equal(t, AlertSeverityMedium, alerts[2].Severity)
	assert.Contains(t, alerts[2].Message, "in attesa di autocontrollo")
}

func TestBuildAlerts_OnlyOverdue(t *testing.T) {
	alerts := buildAlerts(0, 1, "order-uuid-9", 0)

	assert.Len(t, alerts, 1)
	assert.Equal(t, "overdue_orders", alerts[0].Type)
	assert.Equal(t, int64(1), alerts[0].Count)
}

func TestDashboardFilterCacheKey(t *testing.T) {
	from := time.Unix(1000, 0)
	to := time.Unix(2000, 0)
	f := DashboardFilter{
		From:       &from,
		To:         &to,
		CustomerID: "cust-1",
		Statuses:   []models.OrderStatus{models.OrderStatusLanciato, models.OrderStatusSospeso},
	}

	assert.Equal(t, "dashboard:statistics:1000:2000:cust-1:2,4", f.cacheKey("statistics"))
	assert.Equal(t, "dashboard:trend:1000:2000:cust-1:2,4:day", f.cacheKey("trend", "day"))
	assert.Equal(t, "dashboard:statistics:-:-::", DashboardFilter{}.cacheKey("statistics"))
}

func TestOrderSummaryAnnotate(t *testing.T) {
	s := &DashboardService{}
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	soon := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	far := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	items := s.annotate([]OrderSummary{
		{Status: models.OrderStatusInAvanzamento, Quantity: 10, WorkedQuantity: 4, DeliveryRequestedAt: &soon},
		{Status: models.OrderStatusLanciato, Quantity: 5, WorkedQuantity: 0, DeliveryRequestedAt: &past},
		{Status: models.OrderStatusPianificato, Quantity: 0, WorkedQuantity: 0, DeliveryRequestedAt: &far},
		{Status: models.OrderStatusEvaso, Quantity: 8, WorkedQuantity: 8},
	}, now)

	assert.Equal(t, "in_avanzamento", items[0].StatusLabel)
	assert.Equal(t, 40.0, items[0].ProgressPercentage)
	assert.True(t, items[0].IsUrgent)
	assert.False(t, items[0].IsOverdue)
	assert.Equal(t, 2, *items[0].DaysUntilDelivery)

	assert.True(t, items[1].IsOverdue)
	assert.False(t, items[1].IsUrgent)

	assert.False(t, items[2].IsUrgent, "deliveries beyond 7 days are not urgent")
	assert.Equal(t, 0.0, items[2].ProgressPercentage)

	assert.Nil(t, items[3].DaysUntilDelivery, "no delivery date, no urgency flags")
	assert.False(t, items[3].IsUrgent)
}
