package timesheet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/timesheet"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/sse"
)

type TimesheetServiceImpl struct {
	timesheet.TimesheetRepository
	employee.EmployeeRepository
	hub *sse.Hub
}

func NewTimesheetService(
	timesheetRepo timesheet.TimesheetRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		TimesheetRepository: timesheetRepo,
		EmployeeRepository:  employeeRepo,
		hub:                 hub,
	}
}

// startOfDay truncates to UTC midnight. All session days are UTC days.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements timesheet.TimesheetService.
//
// The employee's work type picks the session policy: onsite employees get one
// session per day, remote employees stack numbered sessions but only one may
// be open at a time. Both guards live inside the insert statement.
func (s *TimesheetServiceImpl) CheckIn(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	now := time.Now().UTC()
	date := startOfDay(now)

	var ts timesheet.Timesheet
	if emp.WorkType == employee.WorkTypeOnsite {
		ts, err = s.TimesheetRepository.CreateOnsiteSession(ctx, employeeID, date, now)
	} else {
		ts, err = s.TimesheetRepository.CreateRemoteSession(ctx, employeeID, date, now)
	}
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Event:      "checked_in",
		Data:       toTimesheetResponse(ts),
	})

	return toTimesheetResponse(ts), nil
}

// CheckOut implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CheckOut(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	now := time.Now().UTC()
	date := startOfDay(now)

	open, err := s.TimesheetRepository.GetOpenSession(ctx, employeeID, date)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	hours := now.Sub(*open.CheckIn).Hours()
	totalHours := decimal.NewFromFloat(hours).Round(2)

	ts, err := s.TimesheetRepository.CloseSession(ctx, open.ID, now, totalHours)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Event:      "checked_out",
		Data:       toTimesheetResponse(ts),
	})

	return toTimesheetResponse(ts), nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.TimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	timesheets, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		responses = append(responses, toTimesheetResponse(ts))
	}
	return responses, nil
}

// GetTodaySessions implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTodaySessions(ctx context.Context, employeeID string) ([]timesheet.TimesheetResponse, error) {
	date := startOfDay(time.Now().UTC())

	timesheets, err := s.TimesheetRepository.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		responses = append(responses, toTimesheetResponse(ts))
	}
	return responses, nil
}

// UpdateWorkType implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpdateWorkType(ctx context.Context, req timesheet.UpdateWorkTypeRequest) (timesheet.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.UpdateWorkType(ctx, req.EmployeeID, employee.WorkType(req.WorkType))
	if err != nil {
		return timesheet.EmployeeResponse{}, err
	}

	return timesheet.EmployeeResponse{
		ID:       emp.ID,
		FullName: emp.FullName,
		Email:    emp.Email,
		WorkType: string(emp.WorkType),
	}, nil
}

func toTimesheetResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	resp := timesheet.TimesheetResponse{
		ID:            ts.ID,
		EmployeeID:    ts.EmployeeID,
		Date:          ts.Date.Format("2006-01-02"),
		TotalHours:    ts.TotalHours.StringFixed(2),
		SessionNumber: ts.SessionNumber,
		Status:        string(ts.Status),
		Notes:         ts.Notes,
		CreatedAt:     ts.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     ts.UpdatedAt.Format(time.RFC3339),
	}

	if ts.CheckIn != nil {
		checkIn := ts.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &checkIn
	}
	if ts.CheckOut != nil {
		checkOut := ts.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &checkOut
	}

	return resp
}
