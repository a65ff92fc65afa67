package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/ports"
)

// ToggleOutcome describes what a completion toggle did to the authoritative
// course data.
type ToggleOutcome struct {
	Found     bool
	CourseID  string
	ItemID    string
	Kind      entities.ItemKind
	Completed bool // state after the toggle
}

// CourseService owns the authoritative course collection. The collection is
// process-wide mutable state: loaded once at startup, mutated in memory,
// and written back wholesale on every change. Persistence is best-effort —
// a failed write degrades to recomputation on next start, never to a
// failed operation.
type CourseService struct {
	mu      sync.Mutex
	courses []entities.Course
	repo    ports.CourseRepository
	logger  *logger.Logger
}

// NewCourseService creates a course service and rehydrates the course
// collection from the store. A missing or malformed record falls back to
// the built-in default plan.
func NewCourseService(repo ports.CourseRepository, appLogger *logger.Logger) *CourseService {
	s := &CourseService{
		repo:   repo,
		logger: appLogger,
	}

	courses, err := repo.Load(context.Background())
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			appLogger.Warn("Failed to load course data, using defaults", "error", err)
		}
		courses = entities.DefaultCourses()
	}
	s.courses = courses

	return s
}

// List returns a deep copy of every course.
func (s *CourseService) List(ctx context.Context) []entities.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCourses(s.courses)
}

// Get returns one course by id.
func (s *CourseService) Get(ctx context.Context, id string) (entities.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, course := range s.courses {
		if course.ID == id {
			return course.Clone(), nil
		}
	}
	return entities.Course{}, entities.ErrCourseNotFound
}

// Create registers a new course with no items. The exam date must be
// parseable; configuration errors surface here rather than at scheduling
// time.
func (s *CourseService) Create(ctx context.Context, req ports.CreateCourseRequest) (entities.Course, error) {
	course := entities.Course{
		ID:       uuid.NewString(),
		Name:     req.Name,
		ExamDate: req.ExamDate,
		Color:    req.Color,
		NotesURL: req.NotesURL,
		ExamsURL: req.ExamsURL,
	}
	if err := course.Validate(); err != nil {
		return entities.Course{}, fmt.Errorf("create course: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = append(s.courses, course)
	s.persist(ctx)

	s.logger.Info("Course created", "course_id", course.ID, "name", course.Name)
	return course.Clone(), nil
}

// AddTask appends a new incomplete task to a course. The task does not
// enter today's frozen schedule; it becomes eligible on the next day's
// computation.
func (s *CourseService) AddTask(ctx context.Context, courseID, text string) (entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID != courseID {
			continue
		}
		task := entities.Task{ID: uuid.NewString(), Text: text}
		s.courses[i].Tasks = append(s.courses[i].Tasks, task)
		s.persist(ctx)

		s.logger.Info("Task added", "course_id", courseID, "task_id", task.ID)
		return task, nil
	}
	return entities.Task{}, entities.ErrCourseNotFound
}

// DeleteTask removes a task from a course. Referencing a nonexistent
// course or task is a no-op, not an error.
func (s *CourseService) DeleteTask(ctx context.Context, courseID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID != courseID {
			continue
		}
		tasks := s.courses[i].Tasks
		for j := range tasks {
			if tasks[j].ID == taskID {
				s.courses[i].Tasks = append(tasks[:j:j], tasks[j+1:]...)
				s.persist(ctx)
				s.logger.Info("Task deleted", "course_id", courseID, "task_id", taskID)
				return nil
			}
		}
		return nil
	}
	return nil
}

// Toggle flips the completion flag of the item with the given id, wherever
// it lives. Item ids are unique within a course across all three
// collections, so at most one item matches. An unknown id is a no-op.
func (s *CourseService) Toggle(ctx context.Context, itemID string) ToggleOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		course := &s.courses[i]

		for j := range course.Tasks {
			if course.Tasks[j].ID == itemID {
				course.Tasks[j].Completed = !course.Tasks[j].Completed
				s.persist(ctx)
				return ToggleOutcome{Found: true, CourseID: course.ID, ItemID: itemID, Kind: entities.ItemKindTask, Completed: course.Tasks[j].Completed}
			}
		}
		for j := range course.Notes {
			if course.Notes[j].ID == itemID {
				course.Notes[j].Completed = !course.Notes[j].Completed
				s.persist(ctx)
				return ToggleOutcome{Found: true, CourseID: course.ID, ItemID: itemID, Kind: entities.ItemKindNote, Completed: course.Notes[j].Completed}
			}
		}
		for j := range course.PracticeExams {
			if course.PracticeExams[j].ID == itemID {
				course.PracticeExams[j].Completed = !course.PracticeExams[j].Completed
				s.persist(ctx)
				return ToggleOutcome{Found: true, CourseID: course.ID, ItemID: itemID, Kind: entities.ItemKindExam, Completed: course.PracticeExams[j].Completed}
			}
		}
	}
	return ToggleOutcome{Found: false, ItemID: itemID}
}

// Progress returns the completion percentage of one course.
func (s *CourseService) Progress(ctx context.Context, courseID string) (int, error) {
	course, err := s.Get(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return course.Progress(), nil
}

// Certainty returns the single global metric: the completion percentage
// over every item of every course. Zero items means zero percent.
func (s *CourseService) Certainty(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []entities.Completable
	for _, course := range s.courses {
		all = append(all, course.Completables()...)
	}
	return entities.PercentComplete(all)
}

// persist writes the whole collection back, best-effort. Callers hold the
// lock.
func (s *CourseService) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.courses); err != nil {
		s.logger.Warn("Failed to persist course data", "error", err)
	}
}

func cloneCourses(courses []entities.Course) []entities.Course {
	out := make([]entities.Course, len(courses))
	for i, c := range courses {
		out[i] = c.Clone()
	}
	return out
}
