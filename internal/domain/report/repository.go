package report

import (
	"context"
	"time"
)

// ReportRepository reads the ledger for aggregation. One set-based query per
// report: issuing one query per employee is a design violation, not a
// performance preference.
type ReportRepository interface {
	// QueryTeamDay returns one row per (employee, checkin) for the
	// manager's team on the given UTC calendar date, employees without
	// checkins included. Ordered by employee name, then checkin time.
	QueryTeamDay(ctx context.Context, managerID string, date time.Time, employeeID *string) ([]TeamDayRow, error)
}
