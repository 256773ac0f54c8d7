package database

import "fmt"

// Dialect carries the backend-specific date SQL used by the dashboard
// aggregations. Postgres and MySQL disagree on both date truncation and
// date difference syntax, so the right expressions are chosen once at
// startup from the configured driver and never re-detected per query.
type Dialect struct {
	name string
}

func NewDialect(driverName string) Dialect {
	return Dialect{name: driverName}
}

func (d Dialect) Name() string {
	return d.name
}

// PeriodExpr returns the SQL expression that formats column into a
// bucket label for the given grouping ("day", "week" or "month").
// Week buckets are labelled by the date of their Monday.
func (d Dialect) PeriodExpr(column, groupBy string) string {
	if d.name == "mysql" {
		switch groupBy {
		case "week":
			return fmt.Sprintf("DATE_FORMAT(DATE_SUB(%s, INTERVAL WEEKDAY(%s) DAY), '%%Y-%%m-%%d')", column, column)
		case "month":
			return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
		default:
			return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", column)
		}
	}

	switch groupBy {
	case "week":
		return fmt.Sprintf("TO_CHAR(DATE_TRUNC('week', %s), 'YYYY-MM-DD')", column)
	case "month":
		return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM')", column)
	default:
		return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", column)
	}
}

// DiffDaysExpr returns the SQL expression for the number of days between
// two timestamp columns. Note the precision difference: MySQL DATEDIFF
// yields whole days while the Postgres expression yields fractions, so
// short production runs can average to zero on MySQL (the dashboard
// falls back to computing the mean in Go when that happens).
func (d Dialect) DiffDaysExpr(from, to string) string {
	if d.name == "mysql" {
		return fmt.Sprintf("DATEDIFF(%s, %s)", to, from)
	}
	return fmt.Sprintf("EXTRACT(EPOCH FROM (%s - %s)) / 86400.0", to, from)
}
