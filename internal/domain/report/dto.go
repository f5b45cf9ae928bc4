package report

import (
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
)

// ========================================
// DAILY TEAM SUMMARY
// ========================================

type DailySummaryRequest struct {
	ManagerID  string  `json:"-"` // from token claims
	Date       string  `json:"date"`
	EmployeeID *string `json:"employee_id,omitempty"` // optional filter
}

func (r *DailySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Day returns the requested date. Validate must have passed.
func (r *DailySummaryRequest) Day() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

type DailySummaryResponse struct {
	Date              string              `json:"date"`
	TeamSummary       TeamSummary         `json:"team_summary"`
	EmployeeBreakdown []EmployeeBreakdown `json:"employee_breakdown"`
}

type TeamSummary struct {
	TotalEmployees       int     `json:"total_employees"`
	EmployeesCheckedIn   int     `json:"employees_checked_in"`
	TotalCheckins        int     `json:"total_checkins"`
	TotalHoursWorked     float64 `json:"total_hours_worked"`
	UniqueClientsVisited int     `json:"unique_clients_visited"`
}

type EmployeeBreakdown struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	TotalCheckins  int     `json:"total_checkins"`
	ClientsVisited int     `json:"clients_visited"`
	HoursWorked    float64 `json:"hours_worked"`
}

// TeamDayRow is one joined checkin×employee row for a manager's team on a
// date. Employees with no checkins that day still produce one row with nil
// checkin fields, so the breakdown never omits anyone.
type TeamDayRow struct {
	EmployeeID   string
	EmployeeName string
	CheckinID    *string
	ClientID     *string
	CheckinTime  *time.Time
	CheckoutTime *time.Time
}
