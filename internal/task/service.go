// Package task is the task store: it owns the mutable task collection,
// persists it in full on every change, and publishes task activity as
// events for the notification feed to consume.
package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskboard/internal/event"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/notice"
	"github.com/nhle/taskboard/internal/store"
)

// ErrTaskNotFound reports a mutation aimed at an id that is not in the
// collection.
var ErrTaskNotFound = errors.New("task not found")

// SessionSource provides the acting user for attribution. A nil result
// means no one is signed in.
type SessionSource interface {
	CurrentUser() *model.User
}

// Options configures a Service.
type Options struct {
	// Latency is the simulated delay applied to every mutation.
	Latency time.Duration
}

// Draft is the caller-supplied part of a new task. The id and both
// timestamps are generated on creation; everything else, including the
// initial status, comes from the caller.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    model.Priority
	Status      model.Status
	CreatedBy   string
	AssignedTo  string
}

// Updates is a partial task mutation; nil fields are left unchanged.
// CreatedBy and the timestamps are not updatable.
type Updates struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *model.Priority
	Status      *model.Status
	AssignedTo  *string
}

// Service holds the task collection. User ids on tasks are taken as
// given: neither CreatedBy nor AssignedTo is checked against the
// roster at write time.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	bus     *event.Bus
	notices notice.Recorder
	session SessionSource
	tasks   []model.Task

	latency time.Duration
	loading bool
}

// NewService creates the task store, loading the persisted collection.
// A missing or unreadable snapshot falls back to the seed set, which is
// persisted immediately.
func NewService(ctx context.Context, s store.Store, bus *event.Bus, notices notice.Recorder, session SessionSource, opts Options) (*Service, error) {
	if notices == nil {
		notices = notice.Discard
	}

	svc := &Service{
		store:   s,
		bus:     bus,
		notices: notices,
		session: session,
		latency: opts.Latency,
	}

	raw, ok, err := s.Get(ctx, store.KeyTasks)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	var tasks []model.Task
	if ok && json.Unmarshal([]byte(raw), &tasks) == nil {
		svc.tasks = tasks
		return svc, nil
	}

	// First run, or the snapshot is unreadable: fall back to seeds.
	svc.tasks = seedTasks(time.Now().UTC())
	if err := svc.persist(ctx, svc.tasks); err != nil {
		return nil, err
	}
	return svc, nil
}

// Create adds a new task with a generated id and matching created/
// updated timestamps, persists the collection, and announces the
// assignment when the task is assigned to someone other than its
// creator. The stored task is returned.
func (s *Service) Create(ctx context.Context, draft Draft) (model.Task, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := wait(ctx, s.latency); err != nil {
		return model.Task{}, err
	}

	now := time.Now().UTC()
	t := model.Task{
		ID:          uuid.New().String(),
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		Status:      draft.Status,
		CreatedBy:   draft.CreatedBy,
		AssignedTo:  draft.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, t)

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Failed to create task")
		return model.Task{}, err
	}
	s.tasks = next
	s.mu.Unlock()

	s.notices.Notify(notice.LevelSuccess, "Task created successfully")

	if t.AssignedTo != t.CreatedBy {
		s.bus.Publish(event.Event{
			Type:    model.NotificationTaskAssigned,
			TaskID:  t.ID,
			Message: fmt.Sprintf("You've been assigned a new task: %s", t.Title),
		})
	}
	return t, nil
}

// Update merges the given partial updates into the task with the given
// id, refreshes its updated timestamp, and persists. Reassignment to a
// new user announces a task-updated event. An unknown id fails with
// ErrTaskNotFound and leaves the collection untouched.
func (s *Service) Update(ctx context.Context, id string, up Updates) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := wait(ctx, s.latency); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Failed to update task")
		return fmt.Errorf("updating task %s: %w", id, ErrTaskNotFound)
	}

	prior := s.tasks[idx]
	updated := prior
	if up.Title != nil {
		updated.Title = *up.Title
	}
	if up.Description != nil {
		updated.Description = *up.Description
	}
	if up.DueDate != nil {
		updated.DueDate = *up.DueDate
	}
	if up.Priority != nil {
		updated.Priority = *up.Priority
	}
	if up.Status != nil {
		updated.Status = *up.Status
	}
	if up.AssignedTo != nil {
		updated.AssignedTo = *up.AssignedTo
	}
	updated.UpdatedAt = time.Now().UTC()

	next := make([]model.Task, len(s.tasks))
	copy(next, s.tasks)
	next[idx] = updated

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Failed to update task")
		return err
	}
	s.tasks = next
	s.mu.Unlock()

	s.notices.Notify(notice.LevelSuccess, "Task updated successfully")

	if up.AssignedTo != nil && *up.AssignedTo != prior.AssignedTo {
		s.bus.Publish(event.Event{
			Type:    model.NotificationTaskUpdated,
			TaskID:  id,
			Message: fmt.Sprintf("You've been assigned a task: %s", updated.Title),
		})
	}
	return nil
}

// Delete removes the task with the given id and persists. When the
// deleted task was assigned to someone other than the acting user, a
// task-deleted event is announced. An unknown id fails with
// ErrTaskNotFound; nothing is mutated and no event is published.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := wait(ctx, s.latency); err != nil {
		return err
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Failed to delete task")
		return fmt.Errorf("deleting task %s: %w", id, ErrTaskNotFound)
	}

	deleted := s.tasks[idx]
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		s.notices.Notify(notice.LevelError, "Failed to delete task")
		return err
	}
	s.tasks = next
	s.mu.Unlock()

	s.notices.Notify(notice.LevelSuccess, "Task deleted successfully")

	actingID := ""
	if u := s.session.CurrentUser(); u != nil {
		actingID = u.ID
	}
	if deleted.AssignedTo != actingID {
		s.bus.Publish(event.Event{
			Type:    model.NotificationTaskDeleted,
			TaskID:  id,
			Message: fmt.Sprintf("A task assigned to you was deleted: %s", deleted.Title),
		})
	}
	return nil
}

// Assign reassigns the task to the given user.
func (s *Service) Assign(ctx context.Context, id, userID string) error {
	return s.Update(ctx, id, Updates{AssignedTo: &userID})
}

// UpdateStatus sets the task's status. An actual transition into
// completed on a task assigned to someone other than its creator
// announces a task-completed event; re-setting completed on an already
// completed task does not.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	prior, found := s.TaskByID(id)

	if err := s.Update(ctx, id, Updates{Status: &status}); err != nil {
		return err
	}

	if found && status == model.StatusCompleted && prior.Status != model.StatusCompleted &&
		prior.AssignedTo != prior.CreatedBy {
		s.bus.Publish(event.Event{
			Type:    model.NotificationTaskCompleted,
			TaskID:  id,
			Message: fmt.Sprintf("Task completed: %s", prior.Title),
		})
	}
	return nil
}

// Tasks returns a copy of the full collection.
func (s *Service) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TaskByID returns the task with the given id.
func (s *Service) TaskByID(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.tasks[idx], true
	}
	return model.Task{}, false
}

// TasksByAssignee returns the tasks assigned to the given user.
func (s *Service) TasksByAssignee(userID string) []model.Task {
	return s.filter(func(t model.Task) bool { return t.AssignedTo == userID })
}

// TasksByCreator returns the tasks created by the given user.
func (s *Service) TasksByCreator(userID string) []model.Task {
	return s.filter(func(t model.Task) bool { return t.CreatedBy == userID })
}

// OverdueTasks returns the tasks that are not completed and whose due
// date is strictly in the past.
func (s *Service) OverdueTasks() []model.Task {
	now := time.Now()
	return s.filter(func(t model.Task) bool {
		return t.Status != model.StatusCompleted && t.DueDate.Before(now)
	})
}

// Loading reports whether a task mutation is in flight.
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Service) filter(keep func(model.Task) bool) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// indexLocked returns the position of id in the collection, or -1.
// Caller holds s.mu.
func (s *Service) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the full collection snapshot.
func (s *Service) persist(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := s.store.Put(ctx, store.KeyTasks, string(raw)); err != nil {
		return fmt.Errorf("persisting tasks: %w", err)
	}
	return nil
}

func (s *Service) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// wait sleeps for the simulated latency, honoring context cancellation.
// A zero duration returns immediately.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
