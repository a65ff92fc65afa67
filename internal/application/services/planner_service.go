package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/ports"
)

// TodayView is the read model of today's task list.
type TodayView struct {
	Date           string                   `json:"date"`
	Items          []entities.ScheduledItem `json:"items"`
	CompletedToday int                      `json:"completedToday"`
}

// ToggleResult describes the effect of a toggle.
type ToggleResult struct {
	Found      bool                   `json:"found"`
	InToday    bool                   `json:"inToday"`
	Completed  bool                   `json:"completed"`
	Celebrated bool                   `json:"celebrated"`
	Item       entities.ScheduledItem `json:"item,omitempty"`
}

// PlannerService owns the lifecycle of today's task list. The scheduler
// decides membership once per calendar day; the resulting snapshot is
// frozen, persisted, and reconciled against live course data on every
// read. Only the completed flag of a scheduled item is live — membership
// and order never change intra-day, even as courses mutate underneath.
//
// Day rollover is detected lazily at read time, not by a timer: the first
// read whose calendar day no longer matches the stored snapshot discards
// it and computes a fresh one with an empty completed-today set.
type PlannerService struct {
	mu         sync.Mutex
	snapshot   *entities.DailySnapshot
	courses    *CourseService
	repo       ports.SnapshotRepository
	celebrator ports.Celebrator
	scheduler  *Scheduler
	logger     *logger.Logger
	now        func() time.Time
}

// NewPlannerService creates a planner and rehydrates the persisted
// snapshot. A persisted snapshot for today is adopted verbatim — the
// frozen selection survives restarts even if courses changed since. A
// stale, missing, or malformed snapshot is discarded; the next read
// computes fresh. now may be nil, defaulting to time.Now.
func NewPlannerService(courses *CourseService, repo ports.SnapshotRepository, celebrator ports.Celebrator, appLogger *logger.Logger, now func() time.Time) *PlannerService {
	if now == nil {
		now = time.Now
	}
	s := &PlannerService{
		courses:    courses,
		repo:       repo,
		celebrator: celebrator,
		scheduler:  NewScheduler(),
		logger:     appLogger,
		now:        now,
	}

	snapshot, err := repo.Load(context.Background())
	switch {
	case err == nil && snapshot.IsFor(now()):
		s.snapshot = snapshot
	case err != nil && !errors.Is(err, ports.ErrKeyNotFound) && !errors.Is(err, entities.ErrSnapshotNotFound):
		// Corrupt or unavailable storage degrades to recomputation, never
		// to a failed startup.
		appLogger.Warn("Failed to load daily snapshot, will recompute", "error", err)
	}

	return s
}

// TodaySchedule returns today's task list with each item's completed flag
// re-derived from the authoritative course data. Calling it twice without
// an intervening mutation yields identical output.
func (s *PlannerService) TodaySchedule(ctx context.Context) TodayView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureFresh(ctx)
	return TodayView{
		Date:           s.snapshot.Date,
		Items:          reconcileCompletion(s.snapshot.ScheduledItems, s.courses.List(ctx)),
		CompletedToday: len(s.snapshot.CompletedIDs),
	}
}

// ToggleItem flips the completion state of the item with the given id in
// the authoritative course data. If the item is part of today's list, the
// completed-today set is updated and, on an incomplete-to-complete
// transition, the celebration fires. Items outside today's list still
// toggle but celebrate nothing. An unknown id is a no-op.
func (s *PlannerService) ToggleItem(ctx context.Context, id string) ToggleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureFresh(ctx)

	outcome := s.courses.Toggle(ctx, id)
	if !outcome.Found {
		return ToggleResult{Found: false}
	}

	result := ToggleResult{Found: true, Completed: outcome.Completed}

	frozen, inToday := s.scheduledByID(id)
	if !inToday {
		return result
	}

	result.InToday = true
	result.Item = frozen
	result.Item.Completed = outcome.Completed

	if outcome.Completed {
		if !s.snapshot.HasCompleted(id) {
			s.snapshot.CompletedIDs = append(s.snapshot.CompletedIDs, id)
		}
		s.celebrator.Celebrate(frozen)
		result.Celebrated = true
	} else {
		s.snapshot.CompletedIDs = removeID(s.snapshot.CompletedIDs, id)
	}
	s.persist(ctx)

	return result
}

// CompletedToday returns the frozen records of today's items that have
// been checked off, in the order they were completed.
func (s *PlannerService) CompletedToday(ctx context.Context) []entities.ScheduledItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureFresh(ctx)

	var done []entities.ScheduledItem
	for _, id := range s.snapshot.CompletedIDs {
		if item, ok := s.scheduledByID(id); ok {
			done = append(done, item)
		}
	}
	return done
}

// ensureFresh makes the in-memory snapshot valid for today, computing a
// fresh selection when there is none or the calendar day rolled over.
// Callers hold the lock.
func (s *PlannerService) ensureFresh(ctx context.Context) {
	now := s.now()
	if s.snapshot != nil && s.snapshot.IsFor(now) {
		return
	}

	items := s.scheduler.Compute(s.courses.List(ctx), now)
	s.snapshot = &entities.DailySnapshot{
		Date:           entities.DayKey(now),
		ScheduledItems: items,
		CompletedIDs:   nil,
	}
	s.persist(ctx)

	s.logger.Info("Daily schedule computed", "date", s.snapshot.Date, "items", len(items))
}

// scheduledByID finds an item in today's frozen list. Callers hold the lock.
func (s *PlannerService) scheduledByID(id string) (entities.ScheduledItem, bool) {
	for _, item := range s.snapshot.ScheduledItems {
		if item.ID == id {
			return item, true
		}
	}
	return entities.ScheduledItem{}, false
}

// persist writes the snapshot back, best-effort. Callers hold the lock.
func (s *PlannerService) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.snapshot); err != nil {
		s.logger.Warn("Failed to persist daily snapshot", "error", err)
	}
}

// reconcileCompletion re-derives each scheduled item's completed flag from
// the course item with the same id, by kind. Membership and order are
// untouched; an item whose source has disappeared keeps its frozen state.
// The transform is pure and idempotent.
func reconcileCompletion(items []entities.ScheduledItem, courses []entities.Course) []entities.ScheduledItem {
	byID := make(map[string]entities.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	out := make([]entities.ScheduledItem, len(items))
	for i, item := range items {
		out[i] = item
		course, ok := byID[item.CourseID]
		if !ok {
			continue
		}
		if live, ok := liveCompleted(course, item.Kind, item.ID); ok {
			out[i].Completed = live
		}
	}
	return out
}

func liveCompleted(course entities.Course, kind entities.ItemKind, id string) (bool, bool) {
	switch kind {
	case entities.ItemKindNote:
		for _, n := range course.Notes {
			if n.ID == id {
				return n.Completed, true
			}
		}
	case entities.ItemKindExam:
		for _, e := range course.PracticeExams {
			if e.ID == id {
				return e.Completed, true
			}
		}
	default:
		for _, t := range course.Tasks {
			if t.ID == id {
				return t.Completed, true
			}
		}
	}
	return false, false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
