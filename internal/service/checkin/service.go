package checkin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/assignment"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/client"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

// WarnDistanceKm is the threshold above which a check-in is flagged as
// suspiciously far from the client's registered location. Compared against
// the raw distance, not the rounded one.
const WarnDistanceKm = 0.5

type CheckinServiceImpl struct {
	checkin.LedgerRepository
	client.ClientRepository
	assignment.AssignmentRepository
	queryTimeout time.Duration
}

func NewCheckinService(
	ledgerRepo checkin.LedgerRepository,
	clientRepo client.ClientRepository,
	assignmentRepo assignment.AssignmentRepository,
	queryTimeout time.Duration,
) checkin.CheckinService {
	return &CheckinServiceImpl{
		LedgerRepository:     ledgerRepo,
		ClientRepository:     clientRepo,
		AssignmentRepository: assignmentRepo,
		queryTimeout:         queryTimeout,
	}
}

// readCtx bounds a read-only ledger call.
func (s *CheckinServiceImpl) readCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

// writeCtx bounds a conditional write. The write is detached from the
// caller's cancellation: once the atomic operation starts, an aborted request
// must not roll back a commit that already happened.
func (s *CheckinServiceImpl) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.queryTimeout)
}

// CheckIn implements checkin.CheckinService. The ledger's uniqueness
// constraint is the sole enforcement of the single-active-checkin invariant;
// there is deliberately no pre-flight "is already checked in" read here.
func (s *CheckinServiceImpl) CheckIn(ctx context.Context, req checkin.CheckInRequest) (checkin.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.CheckInResponse{}, err
	}

	readCtx, cancelRead := s.readCtx(ctx)
	defer cancelRead()

	assigned, err := s.AssignmentRepository.IsAssigned(readCtx, req.EmployeeID, req.ClientID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return checkin.CheckInResponse{}, checkin.ErrStoreTimeout
		}
		return checkin.CheckInResponse{}, fmt.Errorf("failed to check client assignment: %w", err)
	}
	if !assigned {
		return checkin.CheckInResponse{}, checkin.ErrNotAuthorizedForClient
	}

	clientData, err := s.ClientRepository.GetByID(readCtx, req.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrClientNotFound) {
			// Same answer as "not assigned": do not reveal whether the
			// client exists.
			return checkin.CheckInResponse{}, checkin.ErrNotAuthorizedForClient
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return checkin.CheckInResponse{}, checkin.ErrStoreTimeout
		}
		return checkin.CheckInResponse{}, fmt.Errorf("failed to get client: %w", err)
	}

	rawDistance, err := geo.Distance(req.Latitude, req.Longitude, clientData.Latitude, clientData.Longitude)
	if err != nil {
		return checkin.CheckInResponse{}, err
	}

	now := time.Now().UTC()
	row := checkin.Checkin{
		ID:                 uuid.NewString(),
		EmployeeID:         req.EmployeeID,
		ClientID:           req.ClientID,
		CheckinTime:        now,
		DistanceFromClient: geo.Round2(rawDistance),
		Status:             checkin.StatusCheckedIn,
		Notes:              req.Notes,
	}

	writeCtx, cancelWrite := s.writeCtx(ctx)
	defer cancelWrite()

	created, err := s.LedgerRepository.TryOpenCheckin(writeCtx, row)
	if err != nil {
		if errors.Is(err, checkin.ErrAlreadyCheckedIn) {
			return checkin.CheckInResponse{}, checkin.ErrAlreadyCheckedIn
		}
		if errors.Is(err, context.DeadlineExceeded) {
			// The insert may or may not have committed. Retrying blindly
			// could stack a second active checkin on a success we never
			// heard about.
			return checkin.CheckInResponse{}, checkin.ErrCommitIndeterminate
		}
		return checkin.CheckInResponse{}, fmt.Errorf("failed to open checkin: %w", err)
	}

	return checkin.CheckInResponse{
		CheckinID:   created.ID,
		EmployeeID:  created.EmployeeID,
		ClientID:    created.ClientID,
		DistanceKm:  created.DistanceFromClient,
		Warning:     rawDistance > WarnDistanceKm,
		CheckinTime: created.CheckinTime.Format(time.RFC3339),
		Notes:       created.Notes,
	}, nil
}

// CheckOut implements checkin.CheckinService.
func (s *CheckinServiceImpl) CheckOut(ctx context.Context, req checkin.CheckOutRequest) (checkin.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.CheckOutResponse{}, err
	}

	now := time.Now().UTC()

	writeCtx, cancelWrite := s.writeCtx(ctx)
	defer cancelWrite()

	closed, err := s.LedgerRepository.TryCloseCheckin(writeCtx, req.EmployeeID, now)
	if err != nil {
		if errors.Is(err, checkin.ErrNoActiveCheckin) {
			return checkin.CheckOutResponse{}, checkin.ErrNoActiveCheckin
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return checkin.CheckOutResponse{}, checkin.ErrCommitIndeterminate
		}
		return checkin.CheckOutResponse{}, fmt.Errorf("failed to close checkin: %w", err)
	}

	return checkin.CheckOutResponse{
		CheckinID:    closed.ID,
		CheckoutTime: closed.CheckoutTime.Format(time.RFC3339),
		HoursWorked:  round1(closed.HoursWorked()),
	}, nil
}

// GetActive implements checkin.CheckinService.
func (s *CheckinServiceImpl) GetActive(ctx context.Context, employeeID string) (checkin.CheckinResponse, error) {
	readCtx, cancel := s.readCtx(ctx)
	defer cancel()

	row, err := s.LedgerRepository.GetActiveByEmployee(readCtx, employeeID)
	if err != nil {
		if errors.Is(err, checkin.ErrNoActiveCheckin) {
			return checkin.CheckinResponse{}, checkin.ErrNoActiveCheckin
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return checkin.CheckinResponse{}, checkin.ErrStoreTimeout
		}
		return checkin.CheckinResponse{}, fmt.Errorf("failed to get active checkin: %w", err)
	}

	return mapCheckinToResponse(row), nil
}

// GetMyCheckins implements checkin.CheckinService.
func (s *CheckinServiceImpl) GetMyCheckins(ctx context.Context, req checkin.MyCheckinsRequest) ([]checkin.CheckinResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	day, _ := time.Parse("2006-01-02", req.Date)

	readCtx, cancel := s.readCtx(ctx)
	defer cancel()

	rows, err := s.LedgerRepository.ListByEmployeeOnDate(readCtx, req.EmployeeID, day)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, checkin.ErrStoreTimeout
		}
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}

	responses := make([]checkin.CheckinResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, mapCheckinToResponse(row))
	}

	return responses, nil
}

// mapCheckinToResponse converts a Checkin entity to CheckinResponse
func mapCheckinToResponse(row checkin.Checkin) checkin.CheckinResponse {
	var checkoutTime *string
	if row.CheckoutTime != nil {
		formatted := row.CheckoutTime.Format(time.RFC3339)
		checkoutTime = &formatted
	}

	return checkin.CheckinResponse{
		CheckinID:    row.ID,
		EmployeeID:   row.EmployeeID,
		ClientID:     row.ClientID,
		ClientName:   row.ClientName,
		CheckinTime:  row.CheckinTime.Format(time.RFC3339),
		CheckoutTime: checkoutTime,
		DistanceKm:   row.DistanceFromClient,
		Status:       row.Status,
		Notes:        row.Notes,
	}
}

func round1(hours float64) float64 {
	return math.Round(hours*10) / 10
}
