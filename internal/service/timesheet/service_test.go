package timesheet

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/timesheet"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/sse"
)

const (
	onsiteEmployeeID = "11111111-1111-1111-1111-111111111111"
	remoteEmployeeID = "22222222-2222-2222-2222-222222222222"
)

// fakeTimesheetRepo mirrors the SQL guards under a mutex.
type fakeTimesheetRepo struct {
	mu       sync.Mutex
	sessions map[string]*timesheet.Timesheet
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{sessions: make(map[string]*timesheet.Timesheet)}
}

func (f *fakeTimesheetRepo) CreateOnsiteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			return timesheet.Timesheet{}, timesheet.ErrAlreadyCheckedInToday
		}
	}

	return f.insert(employeeID, date, checkIn, 1), nil
}

func (f *fakeTimesheetRepo) CreateRemoteSession(ctx context.Context, employeeID string, date, checkIn time.Time) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	maxSession := 0
	for _, s := range f.sessions {
		if s.EmployeeID != employeeID || !s.Date.Equal(date) {
			continue
		}
		if s.CheckOut == nil {
			return timesheet.Timesheet{}, timesheet.ErrSessionAlreadyOpen
		}
		if s.SessionNumber > maxSession {
			maxSession = s.SessionNumber
		}
	}

	return f.insert(employeeID, date, checkIn, maxSession+1), nil
}

func (f *fakeTimesheetRepo) insert(employeeID string, date, checkIn time.Time, sessionNumber int) timesheet.Timesheet {
	now := time.Now().UTC()
	ts := timesheet.Timesheet{
		ID:            uuid.New().String(),
		EmployeeID:    employeeID,
		Date:          date,
		CheckIn:       &checkIn,
		TotalHours:    decimal.Zero,
		SessionNumber: sessionNumber,
		Status:        timesheet.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stored := ts
	f.sessions[ts.ID] = &stored
	return ts
}

func (f *fakeTimesheetRepo) GetOpenSession(ctx context.Context, employeeID string, date time.Time) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var open *timesheet.Timesheet
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) && s.CheckOut == nil {
			if open == nil || s.SessionNumber > open.SessionNumber {
				open = s
			}
		}
	}
	if open == nil {
		return timesheet.Timesheet{}, timesheet.ErrNoOpenSession
	}
	return *open, nil
}

func (f *fakeTimesheetRepo) CloseSession(ctx context.Context, id string, checkOut time.Time, totalHours decimal.Decimal) (timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok || s.CheckOut != nil {
		return timesheet.Timesheet{}, timesheet.ErrNoOpenSession
	}
	s.CheckOut = &checkOut
	s.TotalHours = totalHours
	s.UpdatedAt = time.Now().UTC()
	return *s, nil
}

func (f *fakeTimesheetRepo) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []timesheet.Timesheet
	for _, s := range f.sessions {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (f *fakeTimesheetRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]timesheet.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []timesheet.Timesheet
	for _, s := range f.sessions {
		if s.EmployeeID == employeeID && s.Date.Equal(date) {
			result = append(result, *s)
		}
	}
	return result, nil
}

// backdateCheckIn rewrites a session's check-in, simulating time passing.
func (f *fakeTimesheetRepo) backdateCheckIn(id string, ago time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.sessions[id]; ok {
		earlier := time.Now().UTC().Add(-ago)
		s.CheckIn = &earlier
	}
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		onsiteEmployeeID: {ID: onsiteEmployeeID, FullName: "Budi Santoso", Email: "budi@example.com", WorkType: employee.WorkTypeOnsite},
		remoteEmployeeID: {ID: remoteEmployeeID, FullName: "Ayu Lestari", Email: "ayu@example.com", WorkType: employee.WorkTypeRemote},
	}}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) UpdateWorkType(ctx context.Context, id string, workType employee.WorkType) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.WorkType = workType
	f.employees[id] = emp
	return emp, nil
}

func newTestService() (timesheet.TimesheetService, *fakeTimesheetRepo, *fakeEmployeeRepo, *sse.Hub) {
	tsRepo := newFakeTimesheetRepo()
	empRepo := newFakeEmployeeRepo()
	hub := sse.NewHub()
	return NewTimesheetService(tsRepo, empRepo, hub), tsRepo, empRepo, hub
}

func TestCheckIn_OnsiteFirstSession(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.CheckIn(context.Background(), onsiteEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SessionNumber)
	assert.Equal(t, string(timesheet.StatusPending), resp.Status)
	assert.NotNil(t, resp.CheckIn)
	assert.Nil(t, resp.CheckOut)
}

func TestCheckIn_OnsiteSecondSameDayConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, onsiteEmployeeID)
	require.NoError(t, err)

	// Even after checking out, onsite stays one session per day.
	_, err = svc.CheckOut(ctx, onsiteEmployeeID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, onsiteEmployeeID)
	assert.ErrorIs(t, err, timesheet.ErrAlreadyCheckedInToday)
}

func TestCheckIn_RemoteSessionNumbersIncrement(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SessionNumber)

	_, err = svc.CheckOut(ctx, remoteEmployeeID)
	require.NoError(t, err)

	second, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.SessionNumber)
}

func TestCheckIn_RemoteOpenSessionConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, remoteEmployeeID)
	assert.ErrorIs(t, err, timesheet.ErrSessionAlreadyOpen)
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), "33333333-3333-3333-3333-333333333333")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CheckOut(context.Background(), remoteEmployeeID)
	assert.ErrorIs(t, err, timesheet.ErrNoOpenSession)
}

func TestCheckOut_TotalHoursRoundedToTwoDecimals(t *testing.T) {
	svc, tsRepo, _, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)

	tsRepo.backdateCheckIn(resp.ID, 90*time.Minute)

	closed, err := svc.CheckOut(ctx, remoteEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "1.50", closed.TotalHours)
	assert.NotNil(t, closed.CheckOut)
}

func TestCheckOut_ImmediateCheckoutIsZeroHours(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)

	closed, err := svc.CheckOut(ctx, remoteEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", closed.TotalHours)
}

func TestCheckIn_PublishesCheckedIn(t *testing.T) {
	svc, _, _, hub := newTestService()

	ch, cleanup := hub.Subscribe(remoteEmployeeID)
	defer cleanup()

	_, err := svc.CheckIn(context.Background(), remoteEmployeeID)
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, "checked_in", ev.Event)
	default:
		t.Fatal("expected checked_in event on hub")
	}
}

func TestGetTodaySessions(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, remoteEmployeeID)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, remoteEmployeeID)
	require.NoError(t, err)

	sessions, err := svc.GetTodaySessions(ctx, remoteEmployeeID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestUpdateWorkType(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.UpdateWorkType(context.Background(), timesheet.UpdateWorkTypeRequest{
		EmployeeID: remoteEmployeeID,
		WorkType:   string(employee.WorkTypeOnsite),
	})
	require.NoError(t, err)
	assert.Equal(t, string(employee.WorkTypeOnsite), resp.WorkType)
}

func TestUpdateWorkType_RejectsInvalidValue(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.UpdateWorkType(context.Background(), timesheet.UpdateWorkTypeRequest{
		EmployeeID: remoteEmployeeID,
		WorkType:   "HYBRID",
	})
	assert.Error(t, err)
}
