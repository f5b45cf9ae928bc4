package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/report"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	report.ReportRepository
	employee.EmployeeRepository
	queryTimeout time.Duration
}

func NewReportService(
	reportRepo report.ReportRepository,
	employeeRepo employee.EmployeeRepository,
	queryTimeout time.Duration,
) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository:   reportRepo,
		EmployeeRepository: employeeRepo,
		queryTimeout:       queryTimeout,
	}
}

// employeeDayAgg accumulates one employee's checkins in full precision.
// Rounding happens only when the response is assembled.
type employeeDayAgg struct {
	name     string
	checkins int
	clients  map[string]struct{}
	hours    float64
}

// DailySummary implements report.ReportService. Dates are matched on the UTC
// calendar date of checkin_time. The aggregation reads the ledger once and
// rolls up in a single pass; a checkout committing mid-read may or may not be
// reflected, which is an accepted tradeoff for a lock-free report.
func (s *ReportServiceImpl) DailySummary(ctx context.Context, req report.DailySummaryRequest) (report.DailySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailySummaryResponse{}, err
	}

	readCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	// Role gate before any aggregation work.
	caller, err := s.EmployeeRepository.GetByID(readCtx, req.ManagerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.DailySummaryResponse{}, user.ErrManagerAccessRequired
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return report.DailySummaryResponse{}, checkin.ErrStoreTimeout
		}
		return report.DailySummaryResponse{}, fmt.Errorf("failed to get caller: %w", err)
	}
	if !caller.Role.IsManager() {
		return report.DailySummaryResponse{}, user.ErrManagerAccessRequired
	}

	// The team roster seeds the breakdown, so every managed employee gets
	// an entry even on a day with no checkins at all. The optional filter
	// must name a member of this manager's team.
	team, err := s.EmployeeRepository.ListByManager(readCtx, req.ManagerID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return report.DailySummaryResponse{}, checkin.ErrStoreTimeout
		}
		return report.DailySummaryResponse{}, fmt.Errorf("failed to list team: %w", err)
	}

	order := make([]string, 0, len(team))
	perEmployee := make(map[string]*employeeDayAgg)
	teamClients := make(map[string]struct{})

	for _, member := range team {
		if req.EmployeeID != nil && member.ID != *req.EmployeeID {
			continue
		}
		perEmployee[member.ID] = &employeeDayAgg{
			name:    member.FullName,
			clients: make(map[string]struct{}),
		}
		order = append(order, member.ID)
	}
	if req.EmployeeID != nil && len(order) == 0 {
		return report.DailySummaryResponse{}, employee.ErrEmployeeNotFound
	}

	rows, err := s.ReportRepository.QueryTeamDay(readCtx, req.ManagerID, req.Day(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return report.DailySummaryResponse{}, checkin.ErrStoreTimeout
		}
		return report.DailySummaryResponse{}, fmt.Errorf("failed to query team day: %w", err)
	}

	// Single pass over the joined rows. Team-wide unique clients are
	// tracked in their own set: summing per-employee distinct counts would
	// double-count a client visited by two employees.
	for _, row := range rows {
		agg, ok := perEmployee[row.EmployeeID]
		if !ok || row.CheckinID == nil {
			continue
		}

		agg.checkins++
		if row.ClientID != nil {
			agg.clients[*row.ClientID] = struct{}{}
			teamClients[*row.ClientID] = struct{}{}
		}
		if row.CheckinTime != nil && row.CheckoutTime != nil {
			agg.hours += row.CheckoutTime.Sub(*row.CheckinTime).Hours()
		}
	}

	breakdown := make([]report.EmployeeBreakdown, 0, len(order))
	summary := report.TeamSummary{
		TotalEmployees:       len(order),
		UniqueClientsVisited: len(teamClients),
	}

	var totalHours float64
	for _, employeeID := range order {
		agg := perEmployee[employeeID]
		breakdown = append(breakdown, report.EmployeeBreakdown{
			EmployeeID:     employeeID,
			EmployeeName:   agg.name,
			TotalCheckins:  agg.checkins,
			ClientsVisited: len(agg.clients),
			HoursWorked:    round1(agg.hours),
		})

		summary.TotalCheckins += agg.checkins
		if agg.checkins > 0 {
			summary.EmployeesCheckedIn++
		}
		totalHours += agg.hours
	}
	summary.TotalHoursWorked = round1(totalHours)

	return report.DailySummaryResponse{
		Date:              req.Date,
		TeamSummary:       summary,
		EmployeeBreakdown: breakdown,
	}, nil
}

func round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}
