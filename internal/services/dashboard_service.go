package services

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"gestionale/server/internal/database"
	"gestionale/server/internal/models"
	"gestionale/server/internal/utils"
)

// DashboardService is the read-only analytics layer over production
// orders (joined through articles and offers to customers). Every query
// applies the same optional filters — a date window, a customer and a
// status set — and excludes logically removed rows. Empty result sets
// come back as zeroed structures, never as errors.
type DashboardService struct {
	db      *gorm.DB
	dialect database.Dialect
	cache   *utils.RedisClient
	ttl     time.Duration
}

func NewDashboardService(db *gorm.DB, dialect database.Dialect, cache *utils.RedisClient, ttl time.Duration) *DashboardService {
	return &DashboardService{
		db:      db,
		dialect: dialect,
		cache:   cache,
		ttl:     ttl,
	}
}

// DashboardFilter is the uniform filter of all dashboard queries. The
// date window applies to created_at except where completion times are
// measured (updated_at).
type DashboardFilter struct {
	From       *time.Time           `json:"from"`
	To         *time.Time           `json:"to"`
	CustomerID string               `json:"customer_id"`
	Statuses   []models.OrderStatus `json:"statuses"`
}

func (f DashboardFilter) cacheKey(op string, extra ...string) string {
	from, to := "-", "-"
	if f.From != nil {
		from = fmt.Sprintf("%d", f.From.Unix())
	}
	if f.To != nil {
		to = fmt.Sprintf("%d", f.To.Unix())
	}
	statuses := make([]string, len(f.Statuses))
	for i, s := range f.Statuses {
		statuses[i] = fmt.Sprintf("%d", int(s))
	}
	parts := append([]string{"dashboard", op, from, to, f.CustomerID, strings.Join(statuses, ",")}, extra...)
	return strings.Join(parts, ":")
}

// orderBase builds the shared filtered join:
// orders → articles → offers → customers.
func (s *DashboardService) orderBase(f DashboardFilter, timeColumn string) *gorm.DB {
	q := s.db.Table("orders").
		Joins("JOIN articles ON articles.id = orders.article_id").
		Joins("JOIN offers ON offers.id = articles.offer_id").
		Joins("JOIN customers ON customers.id = offers.customer_id").
		Where("orders.removed = ?", false).
		Where("orders.deleted_at IS NULL")

	if f.From != nil {
		q = q.Where("orders."+timeColumn+" >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("orders."+timeColumn+" <= ?", *f.To)
	}
	if f.CustomerID != "" {
		q = q.Where("offers.customer_id = ?", f.CustomerID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("orders.status IN ?", f.Statuses)
	}
	return q
}

// DashboardStatistics is the order funnel plus entity totals for the
// filtered window.
type DashboardStatistics struct {
	TotalOrders         int64   `json:"total_orders"`
	LanciatoOrders      int64   `json:"lanciato_orders"`
	InAvanzamentoOrders int64   `json:"in_avanzamento_orders"`
	SospesoOrders       int64   `json:"sospeso_orders"`
	CompletatoOrders    int64   `json:"completato_orders"`
	TotalQuantity       float64 `json:"total_quantity"`
	WorkedQuantity      float64 `json:"worked_quantity"`
	ProgressPercentage  float64 `json:"progress_percentage"`
	TotalOffers         int64   `json:"total_offers"`
	TotalArticles       int64   `json:"total_articles"`
	TotalCustomers      int64   `json:"total_customers"`
}

// GetStatistics computes the funnel in a single aggregation pass, plus
// offer/article/customer totals for the same window.
func (s *DashboardService) GetStatistics(f DashboardFilter) (*DashboardStatistics, error) {
	var stats DashboardStatistics
	err := s.cache.Remember(f.cacheKey("statistics"), s.ttl, &stats, func() error {
		err := s.orderBase(f, "created_at").
			Select(`COUNT(orders.id) AS total_orders,
				COALESCE(SUM(CASE WHEN orders.status = ? THEN 1 ELSE 0 END), 0) AS lanciato_orders,
				COALESCE(SUM(CASE WHEN orders.status = ? THEN 1 ELSE 0 END), 0) AS in_avanzamento_orders,
				COALESCE(SUM(CASE WHEN orders.status = ? THEN 1 ELSE 0 END), 0) AS sospeso_orders,
				COALESCE(SUM(CASE WHEN orders.status IN (?, ?) THEN 1 ELSE 0 END), 0) AS completato_orders,
				COALESCE(SUM(orders.quantity), 0) AS total_quantity,
				COALESCE(SUM(orders.worked_quantity), 0) AS worked_quantity`,
				models.OrderStatusLanciato,
				models.OrderStatusInAvanzamento,
				models.OrderStatusSospeso,
				models.OrderStatusEvaso,
				models.OrderStatusSaldato).
			Scan(&stats).Error
		if err != nil {
			return fmt.Errorf("failed to aggregate orders: %w", err)
		}

		stats.ProgressPercentage = progressPct(stats.WorkedQuantity, stats.TotalQuantity)

		if err := s.countInWindow(&models.Offer{}, f, "customer_id", &stats.TotalOffers); err != nil {
			return err
		}
		if err := s.countArticlesInWindow(f, &stats.TotalArticles); err != nil {
			return err
		}
		if err := s.countInWindow(&models.Customer{}, DashboardFilter{From: f.From, To: f.To}, "", &stats.TotalCustomers); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *DashboardService) countInWindow(model interface{}, f DashboardFilter, customerColumn string, dest *int64) error {
	q := s.db.Model(model).Where("removed = ?", false)
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.CustomerID != "" && customerColumn != "" {
		q = q.Where(customerColumn+" = ?", f.CustomerID)
	}
	if err := q.Count(dest).Error; err != nil {
		return fmt.Errorf("failed to count entities: %w", err)
	}
	return nil
}

func (s *DashboardService) countArticlesInWindow(f DashboardFilter, dest *int64) error {
	q := s.db.Model(&models.Article{}).Where("articles.removed = ?", false)
	if f.From != nil {
		q = q.Where("articles.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("articles.created_at <= ?", *f.To)
	}
	if f.CustomerID != "" {
		q = q.Joins("JOIN offers ON offers.id = articles.offer_id").
			Where("offers.customer_id = ?", f.CustomerID)
	}
	if err := q.Count(dest).Error; err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	return nil
}

// OrderSummary is the bounded projection used by the urgent/recent and
// production-progress views.
type OrderSummary struct {
	OrderID             string             `json:"order_id" gorm:"column:order_id"`
	ProductionNumber    string             `json:"order_production_number" gorm:"column:production_number"`
	ArticleName         string             `json:"article_name" gorm:"column:article_name"`
	CustomerName        string             `json:"customer_name" gorm:"column:customer_name"`
	Status              models.OrderStatus `json:"status" gorm:"column:status"`
	StatusLabel         string             `json:"status_label" gorm:"-"`
	Quantity            float64            `json:"quantity" gorm:"column:quantity"`
	WorkedQuantity      float64            `json:"worked_quantity" gorm:"column:worked_quantity"`
	ProgressPercentage  float64            `json:"progress_percentage" gorm:"-"`
	DeliveryRequestedAt *time.Time         `json:"delivery_requested_date" gorm:"column:delivery_requested_at"`
	CreatedAt           time.Time          `json:"created_at" gorm:"column:created_at"`
	DaysUntilDelivery   *int               `json:"days_until_delivery" gorm:"-"`
	IsUrgent            bool               `json:"is_urgent" gorm:"-"`
	IsOverdue           bool               `json:"is_overdue" gorm:"-"`
}

const orderSummaryColumns = `orders.id AS order_id,
	orders.production_number,
	articles.name AS article_name,
	customers.name AS customer_name,
	orders.status,
	orders.quantity,
	orders.worked_quantity,
	orders.delivery_requested_at,
	orders.created_at`

func (s *DashboardService) annotate(items []OrderSummary, now time.Time) []OrderSummary {
	for i := range items {
		it := &items[i]
		it.StatusLabel = it.Status.String()
		it.ProgressPercentage = progressPct(it.WorkedQuantity, it.Quantity)
		if it.DeliveryRequestedAt != nil {
			days := daysBetweenDates(now, *it.DeliveryRequestedAt)
			it.DaysUntilDelivery = &days
			it.IsUrgent = days >= 0 && days <= 7
			it.IsOverdue = days < 0
		}
	}
	return items
}

// GetProductionProgressData returns non-completed orders due within the
// next 7 days, nearest delivery first, each annotated with its progress
// percentage and the urgency flag.
func (s *DashboardService) GetProductionProgressData(f DashboardFilter, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	now := time.Now().UTC()

	var items []OrderSummary
	err := s.orderBase(f, "created_at").
		Select(orderSummaryColumns).
		Where("orders.delivery_requested_at IS NOT NULL").
		Where("orders.delivery_requested_at >= ?", startOfDay(now)).
		Where("orders.delivery_requested_at <= ?", now.AddDate(0, 0, 7)).
		Where("orders.status NOT IN ?", models.CompletedStatuses).
		Order("orders.delivery_requested_at ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load production progress data: %w", err)
	}
	return s.annotate(items, now), nil
}

// GetUrgentOrders returns non-completed orders whose requested delivery
// is within the next 7 days or already past, nearest first.
func (s *DashboardService) GetUrgentOrders(f DashboardFilter, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	now := time.Now().UTC()

	var items []OrderSummary
	err := s.orderBase(f, "created_at").
		Select(orderSummaryColumns).
		Where("orders.delivery_requested_at IS NOT NULL").
		Where("orders.delivery_requested_at <= ?", now.AddDate(0, 0, 7)).
		Where("orders.status NOT IN ?", models.CompletedStatuses).
		Order("orders.delivery_requested_at ASC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load urgent orders: %w", err)
	}
	return s.annotate(items, now), nil
}

// GetRecentOrders returns the most recently created orders.
func (s *DashboardService) GetRecentOrders(f DashboardFilter, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var items []OrderSummary
	err := s.orderBase(f, "created_at").
		Select(orderSummaryColumns).
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}
	return s.annotate(items, time.Now().UTC()), nil
}

type TopCustomer struct {
	CustomerID   string `json:"customer_id" gorm:"column:customer_id"`
	CustomerName string `json:"customer_name" gorm:"column:customer_name"`
	OrderCount   int64  `json:"order_count" gorm:"column:order_count"`
}

// GetTopCustomers ranks customers by order count in the window. Ties are
// broken by natural row order.
func (s *DashboardService) GetTopCustomers(f DashboardFilter, limit int) ([]TopCustomer, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	var top []TopCustomer
	err := s.cache.Remember(f.cacheKey("top_customers", fmt.Sprintf("%d", limit)), s.ttl, &top, func() error {
		err := s.orderBase(f, "created_at").
			Select("customers.id AS customer_id, customers.name AS customer_name, COUNT(orders.id) AS order_count").
			Group("customers.id, customers.name").
			Order("order_count DESC").
			Limit(limit).
			Scan(&top).Error
		if err != nil {
			return fmt.Errorf("failed to rank customers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return top, nil
}

type TopArticle struct {
	ArticleID     string  `json:"article_id" gorm:"column:article_id"`
	ArticleCode   string  `json:"article_code" gorm:"column:article_code"`
	ArticleName   string  `json:"article_name" gorm:"column:article_name"`
	TotalQuantity float64 `json:"total_quantity" gorm:"column:total_quantity"`
}

// GetTopArticles ranks articles by total ordered quantity in the window.
func (s *DashboardService) GetTopArticles(f DashboardFilter, limit int) ([]TopArticle, error) {
	if limit <= 0 || limit > 100 {
		limit = 5
	}

	var top []TopArticle
	err := s.cache.Remember(f.cacheKey("top_articles", fmt.Sprintf("%d", limit)), s.ttl, &top, func() error {
		err := s.orderBase(f, "created_at").
			Select("articles.id AS article_id, articles.code AS article_code, articles.name AS article_name, COALESCE(SUM(orders.quantity), 0) AS total_quantity").
			Group("articles.id, articles.code, articles.name").
			Order("total_quantity DESC").
			Limit(limit).
			Scan(&top).Error
		if err != nil {
			return fmt.Errorf("failed to rank articles: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return top, nil
}

type PerformanceMetrics struct {
	TotalOrders       int64   `json:"total_orders"`
	CompletedOrders   int64   `json:"completed_orders"`
	CompletionRate    float64 `json:"completion_rate"`
	AvgProductionDays float64 `json:"avg_production_days"`
	OrdersPerDay      float64 `json:"orders_per_day"`
	DaysInPeriod      int     `json:"days_in_period"`
}

// GetPerformanceMetrics computes the completion rate, the mean
// production time in days and the order intake rate for the window.
func (s *DashboardService) GetPerformanceMetrics(f DashboardFilter) (*PerformanceMetrics, error) {
	metrics := PerformanceMetrics{DaysInPeriod: daysInPeriod(f)}

	err := s.orderBase(f, "created_at").Select("COUNT(orders.id)").Scan(&metrics.TotalOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	completedFilter := f
	completedFilter.Statuses = models.CompletedStatuses
	err = s.orderBase(completedFilter, "created_at").Select("COUNT(orders.id)").Scan(&metrics.CompletedOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count completed orders: %w", err)
	}

	if metrics.TotalOrders > 0 {
		metrics.CompletionRate = round2(float64(metrics.CompletedOrders) / float64(metrics.TotalOrders) * 100)
	}

	// Completion-time metrics are windowed on updated_at (the moment the
	// order reached a completed status).
	var avg sql.NullFloat64
	err = s.orderBase(completedFilter, "updated_at").
		Select("AVG(" + s.dialect.DiffDaysExpr("orders.created_at", "orders.updated_at") + ")").
		Where("orders.updated_at > orders.created_at").
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average production time: %w", err)
	}

	if avg.Valid && avg.Float64 > 0 {
		metrics.AvgProductionDays = round2(avg.Float64)
	} else {
		// The SQL date difference loses sub-day precision on some
		// backends (MySQL DATEDIFF is whole days); recompute in Go over
		// the unfiltered completed set.
		fallbackAvg, err := s.avgProductionDaysFallback(completedFilter)
		if err != nil {
			return nil, err
		}
		metrics.AvgProductionDays = fallbackAvg
	}

	metrics.OrdersPerDay = round2(float64(metrics.TotalOrders) / float64(metrics.DaysInPeriod))

	return &metrics, nil
}

func (s *DashboardService) avgProductionDaysFallback(completedFilter DashboardFilter) (float64, error) {
	var spans []struct {
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	err := s.orderBase(completedFilter, "updated_at").
		Select("orders.created_at, orders.updated_at").
		Scan(&spans).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load completed order spans: %w", err)
	}
	if len(spans) == 0 {
		return 0, nil
	}
	var totalDays float64
	for _, span := range spans {
		totalDays += span.UpdatedAt.Sub(span.CreatedAt).Hours() / 24
	}
	return round2(totalDays / float64(len(spans))), nil
}

// Alert severities.
const (
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
	AlertSeverityMedium   = "medium"
)

type DashboardAlert struct {
	Type         string `json:"type"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	Count        int64  `json:"count"`
	FirstOrderID string `json:"first_order_uuid,omitempty"`
}

// GetAlerts runs the three independent checks: suspended orders, overdue
// deliveries (carrying the earliest-due order for deep-linking) and
// orders still waiting for their autocontrollo.
func (s *DashboardService) GetAlerts(f DashboardFilter) ([]DashboardAlert, error) {
	now := time.Now().UTC()

	var suspended int64
	suspendedFilter := f
	suspendedFilter.Statuses = []models.OrderStatus{models.OrderStatusSospeso}
	if err := s.orderBase(suspendedFilter, "created_at").Select("COUNT(orders.id)").Scan(&suspended).Error; err != nil {
		return nil, fmt.Errorf("failed to count suspended orders: %w", err)
	}

	overdueBase := func() *gorm.DB {
		return s.orderBase(f, "created_at").
			Where("orders.delivery_requested_at IS NOT NULL").
			Where("orders.delivery_requested_at < ?", startOfDay(now)).
			Where("orders.status NOT IN ?", models.CompletedStatuses)
	}
	var overdue int64
	if err := overdueBase().Select("COUNT(orders.id)").Scan(&overdue).Error; err != nil {
		return nil, fmt.Errorf("failed to count overdue orders: %w", err)
	}
	var firstOverdueID string
	if overdue > 0 {
		var ids []string
		if err := overdueBase().
			Select("orders.id").
			Order("orders.delivery_requested_at ASC").
			Limit(1).
			Scan(&ids).Error; err != nil {
			return nil, fmt.Errorf("failed to find earliest overdue order: %w", err)
		}
		if len(ids) > 0 {
			firstOverdueID = ids[0]
		}
	}

	var autocontrolloPending int64
	pendingFilter := f
	pendingFilter.Statuses = []models.OrderStatus{models.OrderStatusLanciato, models.OrderStatusInAvanzamento}
	if err := s.orderBase(pendingFilter, "created_at").
		Where("orders.autocontrollo = ?", false).
		Select("COUNT(orders.id)").
		Scan(&autocontrolloPending).Error; err != nil {
		return nil, fmt.Errorf("failed to count autocontrollo-pending orders: %w", err)
	}

	return buildAlerts(suspended, overdue, firstOverdueID, autocontrolloPending), nil
}

// buildAlerts assembles the alert list from the three check results.
// Checks with a zero count produce no alert.
func buildAlerts(suspended, overdue int64, firstOverdueID string, autocontrolloPending int64) []DashboardAlert {
	alerts := make([]DashboardAlert, 0, 3)
	if suspended > 0 {
		alerts = append(alerts, DashboardAlert{
			Type:     "suspended_orders",
			Severity: AlertSeverityHigh,
			Message:  fmt.Sprintf("%d ordini sospesi richiedono attenzione", suspended),
			Count:    suspended,
		})
	}
	if overdue > 0 {
		alerts = append(alerts, DashboardAlert{
			Type:         "overdue_orders",
			Severity:     AlertSeverityCritical,
			Message:      fmt.Sprintf("%d ordini in ritardo sulla consegna", overdue),
			Count:        overdue,
			FirstOrderID: firstOverdueID,
		})
	}
	if autocontrolloPending > 0 {
		alerts = append(alerts, DashboardAlert{
			Type:     "autocontrollo_pending",
			Severity: AlertSeverityMedium,
			Message:  fmt.Sprintf("%d ordini in attesa di autocontrollo", autocontrolloPending),
			Count:    autocontrolloPending,
		})
	}
	return alerts
}

type ComparisonStats struct {
	Period           string               `json:"period"`
	Current          *DashboardStatistics `json:"current"`
	Previous         *DashboardStatistics `json:"previous"`
	OrdersDelta      int64                `json:"orders_delta"`
	OrdersDeltaPct   float64              `json:"orders_delta_pct"`
	ProgressDelta    float64              `json:"progress_delta"`
	ProgressDeltaPct float64              `json:"progress_delta_pct"`
}

// GetComparisonStats recomputes the statistics for the named period and
// for the immediately preceding window of equal length, and returns the
// absolute and percentage deltas. A "all" period has no previous window
// to compare against and returns nil.
func (s *DashboardService) GetComparisonStats(f DashboardFilter, period string) (*ComparisonStats, error) {
	if period == "" || period == "all" {
		return nil, nil
	}

	now := time.Now().UTC()
	curStart, curEnd := periodRange(period, now)
	prevStart, prevEnd := previousWindow(curStart, curEnd)

	currentFilter := f
	currentFilter.From, currentFilter.To = &curStart, &curEnd
	previousFilter := f
	previousFilter.From, previousFilter.To = &prevStart, &prevEnd

	current, err := s.GetStatistics(currentFilter)
	if err != nil {
		return nil, err
	}
	previous, err := s.GetStatistics(previousFilter)
	if err != nil {
		return nil, err
	}

	stats := &ComparisonStats{
		Period:        period,
		Current:       current,
		Previous:      previous,
		OrdersDelta:   current.TotalOrders - previous.TotalOrders,
		ProgressDelta: round2(current.ProgressPercentage - previous.ProgressPercentage),
	}
	stats.OrdersDeltaPct = deltaPct(float64(previous.TotalOrders), float64(current.TotalOrders))
	stats.ProgressDeltaPct = deltaPct(previous.ProgressPercentage, current.ProgressPercentage)
	return stats, nil
}

type TrendPoint struct {
	Period     string `json:"period" gorm:"column:period"`
	OrderCount int64  `json:"order_count" gorm:"column:order_count"`
}

// GetOrdersTrend buckets order counts by day, week or month using the
// backend-specific truncation chosen at startup.
func (s *DashboardService) GetOrdersTrend(f DashboardFilter, groupBy string) ([]TrendPoint, error) {
	switch groupBy {
	case "day", "week", "month":
	default:
		groupBy = "day"
	}
	expr := s.dialect.PeriodExpr("orders.created_at", groupBy)

	var points []TrendPoint
	err := s.cache.Remember(f.cacheKey("trend", groupBy), s.ttl, &points, func() error {
		err := s.orderBase(f, "created_at").
			Select(expr + " AS period, COUNT(orders.id) AS order_count").
			Group(expr).
			Order(expr + " ASC").
			Scan(&points).Error
		if err != nil {
			return fmt.Errorf("failed to bucket orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// progressPct guards the worked/total percentage against a zero total.
func progressPct(worked, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(worked / total * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// deltaPct is the percentage change from previous to current, 0 when
// there is no previous baseline.
func deltaPct(previous, current float64) float64 {
	if previous == 0 {
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetweenDates is the whole-day distance from now's date to date's
// date; negative when the date is in the past.
func daysBetweenDates(now, date time.Time) int {
	return int(startOfDay(date).Sub(startOfDay(now)).Hours() / 24)
}

// periodRange maps a named period to its rolling window ending now.
func periodRange(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case "today":
		return startOfDay(now), now
	case "week":
		return now.AddDate(0, 0, -7), now
	case "quarter":
		return now.AddDate(0, 0, -90), now
	case "year":
		return now.AddDate(-1, 0, 0), now
	default: // "month"
		return now.AddDate(0, 0, -30), now
	}
}

// previousWindow is the window of equal length immediately before
// [start, end]: it ends one day before start.
func previousWindow(start, end time.Time) (time.Time, time.Time) {
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.Add(-end.Sub(start))
	return prevStart, prevEnd
}

// daysInPeriod is the filter window length in days, at least one, 30
// when no window is set.
func daysInPeriod(f DashboardFilter) int {
	if f.From == nil || f.To == nil {
		return 30
	}
	days := int(f.To.Sub(*f.From).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
