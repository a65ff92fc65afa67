package services

import (
	"math"
	"time"

	"github.com/examtrack/core/internal/domain/entities"
)

// Workload weights per item kind. Practice exams cost three units; notes
// and tasks one each.
const (
	weightNote = 1
	weightExam = 3
	weightTask = 1
)

// Scheduler computes which items should be worked on today. It is a pure
// function of the course collection and the current date: no I/O, no
// stored state, deterministic given its inputs, safe to call without
// synchronization.
type Scheduler struct{}

// NewScheduler creates a scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// weighted pairs a course item with its scheduling cost.
type weighted struct {
	item   entities.Completable
	kind   entities.ItemKind
	weight int
}

// Compute builds today's prioritized task list. Each course contributes
// independently; results are concatenated in course order with no
// cross-course urgency sorting — a course's days-until-exam only sizes its
// own daily quota.
func (s *Scheduler) Compute(courses []entities.Course, today time.Time) []entities.ScheduledItem {
	var scheduled []entities.ScheduledItem
	for _, course := range courses {
		scheduled = append(scheduled, s.computeCourse(course, today)...)
	}
	return scheduled
}

func (s *Scheduler) computeCourse(course entities.Course, today time.Time) []entities.ScheduledItem {
	examDate, err := entities.ResolveExamYear(course.ExamDate, today)
	if err != nil {
		// Unparseable dates are rejected at course creation; a record that
		// slipped through contributes nothing rather than miscomputing.
		return nil
	}

	daysUntil := entities.DaysUntil(examDate, today)

	// A passed exam contributes nothing, and with the exam today or
	// tomorrow scheduling is too late to be useful. This guard also keeps
	// the quota division away from zero.
	if daysUntil <= 1 {
		return nil
	}

	backlog := courseBacklog(course)
	totalWorkload := 0
	for _, w := range backlog {
		totalWorkload += w.weight
	}
	if totalWorkload == 0 {
		return nil
	}

	// The weighted units to clear today to stay on pace for an even
	// distribution across the remaining days.
	dailyTarget := int(math.Ceil(float64(totalWorkload) / float64(daysUntil)))

	// Select until the budget is exhausted: the item that crosses or
	// exactly zeroes the budget is still included, so the last pick may
	// overshoot the target.
	var scheduled []entities.ScheduledItem
	remaining := dailyTarget
	for _, w := range backlog {
		if remaining <= 0 {
			break
		}
		scheduled = append(scheduled, scheduledItem(course, w))
		remaining -= w.weight
	}
	return scheduled
}

// courseBacklog gathers the course's incomplete items in the fixed
// priority order notes, then practice exams, then tasks, preserving each
// group's declared order. Notes are front-loaded ahead of practice exams
// regardless of per-item weight.
func courseBacklog(course entities.Course) []weighted {
	var backlog []weighted
	for _, n := range course.Notes {
		if !n.Completed {
			backlog = append(backlog, weighted{
				item:   entities.Completable{ID: n.ID, Label: n.Title},
				kind:   entities.ItemKindNote,
				weight: weightNote,
			})
		}
	}
	for _, e := range course.PracticeExams {
		if !e.Completed {
			backlog = append(backlog, weighted{
				item:   entities.Completable{ID: e.ID, Label: e.Title},
				kind:   entities.ItemKindExam,
				weight: weightExam,
			})
		}
	}
	for _, t := range course.Tasks {
		if !t.Completed {
			backlog = append(backlog, weighted{
				item:   entities.Completable{ID: t.ID, Label: t.Text},
				kind:   entities.ItemKindTask,
				weight: weightTask,
			})
		}
	}
	return backlog
}

// scheduledItem wraps a selected item with its frozen course association
// and the external URL matching its kind.
func scheduledItem(course entities.Course, w weighted) entities.ScheduledItem {
	item := entities.ScheduledItem{
		ID:         w.item.ID,
		Label:      w.item.Label,
		Completed:  false,
		CourseID:   course.ID,
		CourseName: course.Name,
		Color:      course.Color,
		Kind:       w.kind,
	}
	switch w.kind {
	case entities.ItemKindNote:
		item.SourceURL = course.NotesURL
	case entities.ItemKindExam:
		item.SourceURL = course.ExamsURL
	}
	return item
}
