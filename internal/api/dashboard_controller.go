package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gestionale/server/internal/services"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

// parseFilter reads the uniform dashboard filter from the query string:
// from/to (RFC3339 or YYYY-MM-DD), customer_id, statuses (comma list of
// integer codes).
func parseFilter(c *gin.Context) services.DashboardFilter {
	filter := services.DashboardFilter{
		CustomerID: c.Query("customer_id"),
		Statuses:   parseStatuses(c.Query("statuses")),
	}
	if from := parseTime(c.Query("from")); from != nil {
		filter.From = from
	}
	if to := parseTime(c.Query("to")); to != nil {
		filter.To = to
	}
	return filter
}

func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func parseLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return limit
}

// GET /api/dashboard/statistics
func (dc *DashboardController) GetStatistics(c *gin.Context) {
	stats, err := dc.dashboard.GetStatistics(parseFilter(c))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/dashboard/production-progress?limit=10
func (dc *DashboardController) GetProductionProgress(c *gin.Context) {
	items, err := dc.dashboard.GetProductionProgressData(parseFilter(c), parseLimit(c, 10))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "count": len(items)})
}

// GET /api/dashboard/urgent-orders?limit=10
func (dc *DashboardController) GetUrgentOrders(c *gin.Context) {
	items, err := dc.dashboard.GetUrgentOrders(parseFilter(c), parseLimit(c, 10))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "count": len(items)})
}

// GET /api/dashboard/recent-orders?limit=10
func (dc *DashboardController) GetRecentOrders(c *gin.Context) {
	items, err := dc.dashboard.GetRecentOrders(parseFilter(c), parseLimit(c, 10))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": items, "count": len(items)})
}

// GET /api/dashboard/top-customers?limit=5
func (dc *DashboardController) GetTopCustomers(c *gin.Context) {
	top, err := dc.dashboard.GetTopCustomers(parseFilter(c), parseLimit(c, 5))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": top})
}

// GET /api/dashboard/top-articles?limit=5
func (dc *DashboardController) GetTopArticles(c *gin.Context) {
	top, err := dc.dashboard.GetTopArticles(parseFilter(c), parseLimit(c, 5))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": top})
}

// GET /api/dashboard/performance
func (dc *DashboardController) GetPerformanceMetrics(c *gin.Context) {
	metrics, err := dc.dashboard.GetPerformanceMetrics(parseFilter(c))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// GET /api/dashboard/alerts
func (dc *DashboardController) GetAlerts(c *gin.Context) {
	alerts, err := dc.dashboard.GetAlerts(parseFilter(c))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// GET /api/dashboard/comparison?period=month
func (dc *DashboardController) GetComparisonStats(c *gin.Context) {
	stats, err := dc.dashboard.GetComparisonStats(parseFilter(c), c.DefaultQuery("period", "month"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	if stats == nil {
		// "all" has no previous window to compare against.
		c.JSON(http.StatusOK, gin.H{"comparison": nil})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/dashboard/orders-trend?group_by=day
func (dc *DashboardController) GetOrdersTrend(c *gin.Context) {
	points, err := dc.dashboard.GetOrdersTrend(parseFilter(c), c.DefaultQuery("group_by", "day"))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trend": points})
}
