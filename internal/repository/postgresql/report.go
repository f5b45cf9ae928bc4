package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/report"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// QueryTeamDay implements report.ReportRepository. One joined read for the
// whole team: the LEFT JOIN keeps employees with no checkins that day, and
// the date filter lives in the join condition so those rows survive it.
func (r *reportRepositoryImpl) QueryTeamDay(ctx context.Context, managerID string, date time.Time, employeeID *string) ([]report.TeamDayRow, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT e.id, e.full_name,
			   c.id AS checkin_id, c.client_id, c.checkin_time, c.checkout_time
		FROM employees e
		LEFT JOIN checkins c
			   ON c.employee_id = e.id
			  AND c.checkin_time >= $2 AND c.checkin_time < $3
		WHERE e.manager_id = $1
		  AND ($4::uuid IS NULL OR e.id = $4::uuid)
		ORDER BY e.full_name ASC, c.checkin_time ASC
	`

	rows, err := r.db.Query(ctx, query, managerID, startOfDay, endOfDay, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team day: %w", err)
	}
	defer rows.Close()

	result := make([]report.TeamDayRow, 0)
	for rows.Next() {
		var row report.TeamDayRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName,
			&row.CheckinID, &row.ClientID, &row.CheckinTime, &row.CheckoutTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team day row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team day rows: %w", err)
	}

	return result, nil
}
