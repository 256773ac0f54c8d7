package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_PeriodExpr_Postgres(t *testing.T) {
	d := NewDialect("postgres")

	assert.Equal(t, "TO_CHAR(orders.created_at, 'YYYY-MM-DD')", d.PeriodExpr("orders.created_at", "day"))
	assert.Equal(t, "TO_CHAR(DATE_TRUNC('week', orders.created_at), 'YYYY-MM-DD')", d.PeriodExpr("orders.created_at", "week"))
	assert.Equal(t, "TO_CHAR(orders.created_at, 'YYYY-MM')", d.PeriodExpr("orders.created_at", "month"))
}

func TestDialect_PeriodExpr_MySQL(t *testing.T) {
	d := NewDialect("mysql")

	assert.Equal(t, "DATE_FORMAT(orders.created_at, '%Y-%m-%d')", d.PeriodExpr("orders.created_at", "day"))
	assert.Equal(t,
		"DATE_FORMAT(DATE_SUB(orders.created_at, INTERVAL WEEKDAY(orders.created_at) DAY), '%Y-%m-%d')",
		d.PeriodExpr("orders.created_at", "week"))
	assert.Equal(t, "DATE_FORMAT(orders.created_at, '%Y-%m')", d.PeriodExpr("orders.created_at", "month"))
}

func TestDialect_DiffDaysExpr(t *testing.T) {
	pg := NewDialect("postgres")
	my := NewDialect("mysql")

	assert.Equal(t,
		"EXTRACT(EPOCH FROM (orders.updated_at - orders.created_at)) / 86400.0",
		pg.DiffDaysExpr("orders.created_at", "orders.updated_at"))
	// MySQL DATEDIFF is whole days; the dashboard compensates in Go.
	assert.Equal(t,
		"DATEDIFF(orders.updated_at, orders.created_at)",
		my.DiffDaysExpr("orders.created_at", "orders.updated_at"))
}

func TestDialect_Name(t *testing.T) {
	assert.Equal(t, "mysql", NewDialect("mysql").Name())
	assert.Equal(t, "postgres", NewDialect("postgres").Name())
}
