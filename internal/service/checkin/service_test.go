package checkin

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/checkin"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/client"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQueryTimeout = 5 * time.Second

// fakeLedger enforces the single-active invariant under a mutex, mirroring
// the partial unique index the real store carries.
type fakeLedger struct {
	mu   sync.Mutex
	rows map[string]checkin.Checkin // by checkin ID
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[string]checkin.Checkin)}
}

func (f *fakeLedger) TryOpenCheckin(ctx context.Context, row checkin.Checkin) (checkin.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.rows {
		if existing.EmployeeID == row.EmployeeID && existing.Status == checkin.StatusCheckedIn {
			return checkin.Checkin{}, checkin.ErrAlreadyCheckedIn
		}
	}

	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeLedger) TryCloseCheckin(ctx context.Context, employeeID string, checkoutTime time.Time) (checkin.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, existing := range f.rows {
		if existing.EmployeeID == employeeID && existing.Status == checkin.StatusCheckedIn {
			existing.CheckoutTime = &checkoutTime
			existing.Status = checkin.StatusCheckedOut
			existing.UpdatedAt = time.Now().UTC()
			f.rows[id] = existing
			return existing, nil
		}
	}
	return checkin.Checkin{}, checkin.ErrNoActiveCheckin
}

func (f *fakeLedger) GetActiveByEmployee(ctx context.Context, employeeID string) (checkin.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.rows {
		if existing.EmployeeID == employeeID && existing.Status == checkin.StatusCheckedIn {
			return existing, nil
		}
	}
	return checkin.Checkin{}, checkin.ErrNoActiveCheckin
}

func (f *fakeLedger) ListByEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.Checkin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	result := make([]checkin.Checkin, 0)
	for _, existing := range f.rows {
		if existing.EmployeeID == employeeID &&
			!existing.CheckinTime.Before(start) && existing.CheckinTime.Before(end) {
			result = append(result, existing)
		}
	}
	return result, nil
}

func (f *fakeLedger) activeCount(employeeID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, existing := range f.rows {
		if existing.EmployeeID == employeeID && existing.Status == checkin.StatusCheckedIn {
			count++
		}
	}
	return count
}

type fakeClientRepo struct {
	clients map[string]client.Client
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id string) (client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

type fakeAssignmentRepo struct {
	assigned map[string]bool // employeeID + "|" + clientID
}

func (f *fakeAssignmentRepo) IsAssigned(ctx context.Context, employeeID, clientID string) (bool, error) {
	return f.assigned[employeeID+"|"+clientID], nil
}

// timeoutLedger simulates a store that never answers before the deadline.
type timeoutLedger struct{}

func (timeoutLedger) TryOpenCheckin(ctx context.Context, row checkin.Checkin) (checkin.Checkin, error) {
	return checkin.Checkin{}, context.DeadlineExceeded
}

func (timeoutLedger) TryCloseCheckin(ctx context.Context, employeeID string, checkoutTime time.Time) (checkin.Checkin, error) {
	return checkin.Checkin{}, context.DeadlineExceeded
}

func (timeoutLedger) GetActiveByEmployee(ctx context.Context, employeeID string) (checkin.Checkin, error) {
	return checkin.Checkin{}, context.DeadlineExceeded
}

func (timeoutLedger) ListByEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.Checkin, error) {
	return nil, context.DeadlineExceeded
}

const (
	testEmployeeID = "6f1f9c3e-9d0a-4b6e-8f2e-1a2b3c4d5e6f"
	testClientID   = "0b2d4f6a-8c0e-4a2c-9e1f-2b3c4d5e6f70"
)

// Client registered in Bangalore, per the canonical fixture.
var testClient = client.Client{
	ID:        testClientID,
	Name:      "Acme Bangalore",
	Latitude:  12.9716,
	Longitude: 77.5946,
}

func newTestService(ledger checkin.LedgerRepository) checkin.CheckinService {
	return NewCheckinService(
		ledger,
		&fakeClientRepo{clients: map[string]client.Client{testClientID: testClient}},
		&fakeAssignmentRepo{assigned: map[string]bool{testEmployeeID + "|" + testClientID: true}},
		testQueryTimeout,
	)
}

func TestCheckinService_CheckIn_NearbyNoWarning(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	// ~60 meters from the registered location
	resp, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.CheckinID)
	assert.InDelta(t, 0.06, resp.DistanceKm, 0.01)
	assert.False(t, resp.Warning)
	assert.Equal(t, 1, ledger.activeCount(testEmployeeID))
}

func TestCheckinService_CheckIn_FarAwayWarns(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLedger())

	// Chennai, ~290 km from the registered Bangalore location
	resp, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   13.0827,
		Longitude:  80.2707,
	})

	require.NoError(t, err)
	assert.True(t, resp.Warning)
	assert.InDelta(t, 290, resp.DistanceKm, 10)
}

func TestCheckinService_CheckIn_NotAssigned(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckinService(
		newFakeLedger(),
		&fakeClientRepo{clients: map[string]client.Client{testClientID: testClient}},
		&fakeAssignmentRepo{assigned: map[string]bool{}},
		testQueryTimeout,
	)

	_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})

	assert.ErrorIs(t, err, checkin.ErrNotAuthorizedForClient)
}

func TestCheckinService_CheckIn_MissingClientLooksLikeNotAssigned(t *testing.T) {
	ctx := context.Background()
	// Assignment table says yes but the client row is gone; the caller must
	// not learn which of the two it was.
	svc := NewCheckinService(
		newFakeLedger(),
		&fakeClientRepo{clients: map[string]client.Client{}},
		&fakeAssignmentRepo{assigned: map[string]bool{testEmployeeID + "|" + testClientID: true}},
		testQueryTimeout,
	)

	_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})

	assert.ErrorIs(t, err, checkin.ErrNotAuthorizedForClient)
}

func TestCheckinService_CheckIn_InvalidRequestCoordinates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLedger())

	_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   91,
		Longitude:  77.5950,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}

func TestCheckinService_CheckIn_NonFiniteCoordinate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLedger())

	// NaN slips past the range checks and must be caught by the distance
	// computation.
	_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   math.NaN(),
		Longitude:  77.5950,
	})

	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}

func TestCheckinService_CheckIn_SecondAttemptConflicts(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	req := checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	}

	_, err := svc.CheckIn(ctx, req)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, checkin.ErrAlreadyCheckedIn)
	assert.Equal(t, 1, ledger.activeCount(testEmployeeID))
}

// Duplicate submissions racing for the same employee: exactly one wins, the
// rest fail with the invariant violation.
func TestCheckinService_CheckIn_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	const attempts = 32

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
				EmployeeID: testEmployeeID,
				ClientID:   testClientID,
				Latitude:   12.9720,
				Longitude:  77.5950,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, checkin.ErrAlreadyCheckedIn):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, ledger.activeCount(testEmployeeID))
}

func TestCheckinService_CheckOut_Success(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	// Seed an open checkin that started three hours ago.
	_, err := ledger.TryOpenCheckin(ctx, checkin.Checkin{
		ID:          uuid.NewString(),
		EmployeeID:  testEmployeeID,
		ClientID:    testClientID,
		CheckinTime: time.Now().UTC().Add(-3 * time.Hour),
		Status:      checkin.StatusCheckedIn,
	})
	require.NoError(t, err)

	resp, err := svc.CheckOut(ctx, checkin.CheckOutRequest{EmployeeID: testEmployeeID})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.CheckoutTime)
	assert.InDelta(t, 3.0, resp.HoursWorked, 0.1)
	assert.Equal(t, 0, ledger.activeCount(testEmployeeID))
}

func TestCheckinService_CheckOut_BeforeCheckIn(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLedger())

	_, err := svc.CheckOut(ctx, checkin.CheckOutRequest{EmployeeID: testEmployeeID})

	assert.ErrorIs(t, err, checkin.ErrNoActiveCheckin)
}

func TestCheckinService_CheckOut_Double(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	_, err := ledger.TryOpenCheckin(ctx, checkin.Checkin{
		ID:          uuid.NewString(),
		EmployeeID:  testEmployeeID,
		ClientID:    testClientID,
		CheckinTime: time.Now().UTC().Add(-time.Hour),
		Status:      checkin.StatusCheckedIn,
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, checkin.CheckOutRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, checkin.CheckOutRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, checkin.ErrNoActiveCheckin)
}

func TestCheckinService_GetActive(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	_, err := svc.GetActive(ctx, testEmployeeID)
	assert.ErrorIs(t, err, checkin.ErrNoActiveCheckin)

	_, err = svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})
	require.NoError(t, err)

	active, err := svc.GetActive(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, checkin.StatusCheckedIn, active.Status)
	assert.Equal(t, testClientID, active.ClientID)
}

func TestCheckinService_GetMyCheckins(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	svc := newTestService(ledger)

	today := time.Now().UTC().Format("2006-01-02")

	result, err := svc.GetMyCheckins(ctx, checkin.MyCheckinsRequest{
		EmployeeID: testEmployeeID,
		Date:       today,
	})
	require.NoError(t, err)
	assert.Empty(t, result)

	_, err = svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})
	require.NoError(t, err)

	result, err = svc.GetMyCheckins(ctx, checkin.MyCheckinsRequest{
		EmployeeID: testEmployeeID,
		Date:       today,
	})
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestCheckinService_GetMyCheckins_BadDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLedger())

	_, err := svc.GetMyCheckins(ctx, checkin.MyCheckinsRequest{
		EmployeeID: testEmployeeID,
		Date:       "01-02-2026",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestCheckinService_WriteTimeoutIsIndeterminate(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckinService(
		timeoutLedger{},
		&fakeClientRepo{clients: map[string]client.Client{testClientID: testClient}},
		&fakeAssignmentRepo{assigned: map[string]bool{testEmployeeID + "|" + testClientID: true}},
		testQueryTimeout,
	)

	_, err := svc.CheckIn(ctx, checkin.CheckInRequest{
		EmployeeID: testEmployeeID,
		ClientID:   testClientID,
		Latitude:   12.9720,
		Longitude:  77.5950,
	})
	assert.ErrorIs(t, err, checkin.ErrCommitIndeterminate)

	_, err = svc.CheckOut(ctx, checkin.CheckOutRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, checkin.ErrCommitIndeterminate)
}

func TestCheckinService_ReadTimeout(t *testing.T) {
	ctx := context.Background()
	svc := NewCheckinService(
		timeoutLedger{},
		&fakeClientRepo{clients: map[string]client.Client{testClientID: testClient}},
		&fakeAssignmentRepo{assigned: map[string]bool{testEmployeeID + "|" + testClientID: true}},
		testQueryTimeout,
	)

	_, err := svc.GetActive(ctx, testEmployeeID)
	assert.ErrorIs(t, err, checkin.ErrStoreTimeout)

	_, err = svc.GetMyCheckins(ctx, checkin.MyCheckinsRequest{
		EmployeeID: testEmployeeID,
		Date:       "2026-08-28",
	})
	assert.ErrorIs(t, err, checkin.ErrStoreTimeout)
}
