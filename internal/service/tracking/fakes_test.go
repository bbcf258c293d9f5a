package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/activity"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/employee"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/task"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/tracking"
)

// In-memory repositories mirroring the SQL guarantees: the mutex stands in
// for the single-statement guarded insert and conditional close.

type fakeTimeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]*tracking.TimeEntry
}

func newFakeTimeEntryRepo() *fakeTimeEntryRepo {
	return &fakeTimeEntryRepo{entries: make(map[string]*tracking.TimeEntry)}
}

func (f *fakeTimeEntryRepo) CreateIfNoneOpen(ctx context.Context, entry tracking.TimeEntry) (tracking.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.EmployeeID == entry.EmployeeID && e.EndTime == nil {
			return tracking.TimeEntry{}, tracking.ErrTimerAlreadyRunning
		}
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()
	entry.UpdatedAt = entry.CreatedAt
	stored := entry
	f.entries[entry.ID] = &stored
	return entry, nil
}

func (f *fakeTimeEntryRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (tracking.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.EndTime == nil {
			return *e, nil
		}
	}
	return tracking.TimeEntry{}, tracking.ErrNoActiveTimer
}

func (f *fakeTimeEntryRepo) ListOpen(ctx context.Context) ([]tracking.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var open []tracking.TimeEntry
	for _, e := range f.entries {
		if e.EndTime == nil {
			open = append(open, *e)
		}
	}
	return open, nil
}

func (f *fakeTimeEntryRepo) Close(ctx context.Context, id string, endTime time.Time, durationMinutes int) (tracking.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[id]
	if !ok || e.EndTime != nil {
		return tracking.TimeEntry{}, tracking.ErrNoActiveTimer
	}

	e.EndTime = &endTime
	e.DurationMinutes = &durationMinutes
	e.UpdatedAt = time.Now().UTC()
	return *e, nil
}

func (f *fakeTimeEntryRepo) List(ctx context.Context, filter tracking.TimeEntryFilter) ([]tracking.TimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []tracking.TimeEntry
	for _, e := range f.entries {
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.TaskID != nil && (e.TaskID == nil || *e.TaskID != *filter.TaskID) {
			continue
		}
		entries = append(entries, *e)
	}
	return entries, nil
}

// seed inserts an entry directly, bypassing the open-entry guard.
func (f *fakeTimeEntryRepo) seed(entry tracking.TimeEntry) tracking.TimeEntry {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	stored := entry
	f.entries[entry.ID] = &stored
	return entry
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []activity.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{}
}

func (f *fakeEventRepo) Create(ctx context.Context, event activity.Event) (activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event.ID = uuid.New().String()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, types ...activity.EventType) ([]activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []activity.Event
	for _, e := range f.events {
		if e.EmployeeID != employeeID {
			continue
		}
		if e.CreatedAt.Before(from) || e.CreatedAt.After(to) {
			continue
		}
		if len(types) > 0 {
			found := false
			for _, t := range types {
				if e.Type == t {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, e)
	}

	// Insertion order is chronological in these tests.
	return matched, nil
}

func (f *fakeEventRepo) HasEventSince(ctx context.Context, employeeID string, eventType activity.EventType, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, e := range f.events {
		if e.EmployeeID == employeeID && e.Type == eventType && !e.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) countByType(eventType activity.EventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, e := range f.events {
		if e.Type == eventType {
			count++
		}
	}
	return count
}

type fakeTaskRepo struct {
	mu         sync.Mutex
	timeSpent  map[string]int
	increments int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{timeSpent: make(map[string]int)}
}

func (f *fakeTaskRepo) IncrementTimeSpent(ctx context.Context, taskID string, minutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.timeSpent[taskID]; !ok {
		return task.ErrTaskNotFound
	}
	f.timeSpent[taskID] += minutes
	f.increments++
	return nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
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
