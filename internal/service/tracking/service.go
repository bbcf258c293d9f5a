package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/task"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/sse"
)

// Config carries the timing thresholds of the tracker.
type Config struct {
	IdleStopThreshold     time.Duration
	AbandonAfter          time.Duration
	ActivityRecencyWindow time.Duration
	LongRunningCeiling    time.Duration
}

type TrackingServiceImpl struct {
	tracking.TimeEntryRepository
	activity.EventRepository
	task.TaskRepository
	employee.EmployeeRepository
	hub *sse.Hub
	cfg Config
}

func NewTrackingService(
	timeEntryRepo tracking.TimeEntryRepository,
	eventRepo activity.EventRepository,
	taskRepo task.TaskRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	cfg Config,
) tracking.TrackingService {
	return &TrackingServiceImpl{
		TimeEntryRepository: timeEntryRepo,
		EventRepository:     eventRepo,
		TaskRepository:      taskRepo,
		EmployeeRepository:  employeeRepo,
		hub:                 hub,
		cfg:                 cfg,
	}
}

// Start implements tracking.TrackingService.
func (s *TrackingServiceImpl) Start(ctx context.Context, req tracking.StartTimeEntryRequest) (tracking.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return tracking.TimeEntryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return tracking.TimeEntryResponse{}, err
	}

	entry, err := s.TimeEntryRepository.CreateIfNoneOpen(ctx, tracking.TimeEntry{
		EmployeeID:  req.EmployeeID,
		TaskID:      req.TaskID,
		StartTime:   time.Now().UTC(),
		Description: req.Description,
	})
	if err != nil {
		return tracking.TimeEntryResponse{}, err
	}

	s.hub.Publish(req.EmployeeID, sse.Event{
		EmployeeID: req.EmployeeID,
		Event:      "timer_started",
		Data:       toTimeEntryResponse(entry),
	})

	return toTimeEntryResponse(entry), nil
}

// Stop implements tracking.TrackingService.
func (s *TrackingServiceImpl) Stop(ctx context.Context, employeeID string) (tracking.TimeEntryResponse, error) {
	entry, err := s.TimeEntryRepository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return tracking.TimeEntryResponse{}, err
	}

	closed, err := s.closeEntry(ctx, entry, time.Now().UTC(), true)
	if err != nil {
		return tracking.TimeEntryResponse{}, err
	}

	s.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Event:      "timer_stopped",
		Data:       toTimeEntryResponse(closed),
	})

	return toTimeEntryResponse(closed), nil
}

// GetActive implements tracking.TrackingService.
func (s *TrackingServiceImpl) GetActive(ctx context.Context, employeeID string) (tracking.TimeEntryResponse, error) {
	entry, err := s.TimeEntryRepository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return tracking.TimeEntryResponse{}, err
	}
	return toTimeEntryResponse(entry), nil
}

// List implements tracking.TrackingService.
func (s *TrackingServiceImpl) List(ctx context.Context, filter tracking.TimeEntryFilter) ([]tracking.TimeEntryResponse, error) {
	entries, err := s.TimeEntryRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]tracking.TimeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toTimeEntryResponse(entry))
	}
	return responses, nil
}

// ReportActivity implements tracking.TrackingService.
//
// The event is recorded unconditionally, whether or not a timer is open.
// The reaction policy runs afterwards: only sustained idleness on an open
// timer changes state.
func (s *TrackingServiceImpl) ReportActivity(ctx context.Context, req tracking.ReportActivityRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = activity.Metadata{}
	}

	if _, err := s.EventRepository.Create(ctx, activity.Event{
		EmployeeID: req.EmployeeID,
		Type:       activity.EventType(req.Type),
		Metadata:   metadata,
	}); err != nil {
		return fmt.Errorf("failed to record activity event: %w", err)
	}

	eventType := activity.EventType(req.Type)
	if eventType != activity.EventIdle && eventType != activity.EventLock {
		return nil
	}

	idleFor, ok := metadata.IdleDuration()
	if !ok || idleFor <= s.cfg.IdleStopThreshold {
		return nil
	}

	entry, err := s.TimeEntryRepository.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveTimer) {
			// Idle signal with no timer open, nothing to react to.
			return nil
		}
		return err
	}

	closed, err := s.closeEntry(ctx, entry, time.Now().UTC(), true)
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveTimer) {
			// Closed concurrently, the reaction already happened.
			return nil
		}
		return err
	}

	slog.Info("Auto-stopped timer after sustained idleness",
		"employee_id", req.EmployeeID,
		"time_entry_id", closed.ID,
		"idle_duration", idleFor)

	s.hub.Publish(req.EmployeeID, sse.Event{
		EmployeeID: req.EmployeeID,
		Event:      "timer_auto_stopped",
		Data:       toTimeEntryResponse(closed),
	})

	return nil
}

// SweepAbandoned implements tracking.TrackingService.
//
// Closes open entries older than the abandonment age whose employee has sent
// no ACTIVE signal inside the recency window. Raw elapsed time is used: a
// silent agent leaves no idle stream worth reconciling against.
func (s *TrackingServiceImpl) SweepAbandoned(ctx context.Context) (int, error) {
	entries, err := s.TimeEntryRepository.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open entries: %w", err)
	}

	now := time.Now().UTC()
	closed := 0

	for _, entry := range entries {
		if now.Sub(entry.StartTime) <= s.cfg.AbandonAfter {
			continue
		}

		recentlyActive, err := s.EventRepository.HasEventSince(ctx, entry.EmployeeID, activity.EventActive, now.Add(-s.cfg.ActivityRecencyWindow))
		if err != nil {
			slog.Error("Sweep: failed to check recent activity", "time_entry_id", entry.ID, "error", err)
			continue
		}
		if recentlyActive {
			slog.Debug("Sweep: timer old but employee still active, leaving open",
				"time_entry_id", entry.ID, "employee_id", entry.EmployeeID)
			continue
		}

		if _, err := s.closeEntry(ctx, entry, now, false); err != nil {
			if errors.Is(err, tracking.ErrNoActiveTimer) {
				continue
			}
			slog.Error("Sweep: failed to close abandoned timer", "time_entry_id", entry.ID, "error", err)
			continue
		}

		closed++
	}

	return closed, nil
}

// SweepLongRunning implements tracking.TrackingService.
//
// Hard ceiling: entries older than the ceiling close no matter how recently
// the employee was active, reconciled over the whole run.
func (s *TrackingServiceImpl) SweepLongRunning(ctx context.Context) (int, error) {
	entries, err := s.TimeEntryRepository.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open entries: %w", err)
	}

	now := time.Now().UTC()
	closed := 0

	for _, entry := range entries {
		if now.Sub(entry.StartTime) <= s.cfg.LongRunningCeiling {
			continue
		}

		if _, err := s.closeEntry(ctx, entry, now, true); err != nil {
			if errors.Is(err, tracking.ErrNoActiveTimer) {
				continue
			}
			slog.Error("Sweep: failed to close long-running timer", "time_entry_id", entry.ID, "error", err)
			continue
		}

		closed++
	}

	return closed, nil
}

// closeEntry computes the final duration, performs the conditional close and
// credits the task. With reconcile false the raw elapsed minutes are used.
func (s *TrackingServiceImpl) closeEntry(ctx context.Context, entry tracking.TimeEntry, endTime time.Time, reconcile bool) (tracking.TimeEntry, error) {
	var duration int
	if reconcile {
		events, err := s.EventRepository.ListByEmployeeAndRange(
			ctx, entry.EmployeeID, entry.StartTime, endTime,
			activity.EventActive, activity.EventIdle,
		)
		if err != nil {
			return tracking.TimeEntry{}, fmt.Errorf("failed to load activity events: %w", err)
		}
		duration = reconciledDuration(entry.StartTime, endTime, events)
	} else {
		duration = int(endTime.Sub(entry.StartTime) / time.Minute)
		if duration < 0 {
			duration = 0
		}
	}

	closed, err := s.TimeEntryRepository.Close(ctx, entry.ID, endTime, duration)
	if err != nil {
		return tracking.TimeEntry{}, err
	}

	if closed.TaskID != nil && duration > 0 {
		if err := s.TaskRepository.IncrementTimeSpent(ctx, *closed.TaskID, duration); err != nil {
			slog.Error("Failed to credit task time", "task_id", *closed.TaskID, "time_entry_id", closed.ID, "error", err)
		}
	}

	return closed, nil
}

func toTimeEntryResponse(entry tracking.TimeEntry) tracking.TimeEntryResponse {
	resp := tracking.TimeEntryResponse{
		ID:              entry.ID,
		EmployeeID:      entry.EmployeeID,
		TaskID:          entry.TaskID,
		StartTime:       entry.StartTime.Format(time.RFC3339),
		DurationMinutes: entry.DurationMinutes,
		Description:     entry.Description,
		IsManual:        entry.IsManual,
		CreatedAt:       entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       entry.UpdatedAt.Format(time.RFC3339),
	}

	if entry.EndTime != nil {
		endTime := entry.EndTime.Format(time.RFC3339)
		resp.EndTime = &endTime
	}

	return resp
}
