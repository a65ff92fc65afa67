package entities

import (
	"errors"
	"fmt"
	"math"
)

// Common errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrItemNotFound        = errors.New("item not found")
	ErrSnapshotNotFound    = errors.New("snapshot not found")
	ErrMalformedRecord     = errors.New("malformed record")
	ErrMalformedSnapshot   = errors.New("malformed snapshot")
	ErrUnparseableExamDate = errors.New("unparseable exam date")
	ErrDuplicateItemID     = errors.New("duplicate item id within course")
	ErrAlreadySeeded       = errors.New("course data already exists")
)

// ItemKind identifies which collection a completable item belongs to.
type ItemKind string

const (
	ItemKindTask ItemKind = "task"
	ItemKindNote ItemKind = "note"
	ItemKindExam ItemKind = "exam"
)

// Task is an ad-hoc to-do attached to a course.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Note is a lecture note to review.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// PracticeExam is a past exam to work through.
type PracticeExam struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Course is a tracked subject with an exam date and three item collections.
// ExamDate is a year-agnostic month/day string such as "Dec 5"; the year is
// resolved against the current date when scheduling.
type Course struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ExamDate      string         `json:"examDate"`
	Color         string         `json:"color"`
	Tasks         []Task         `json:"tasks"`
	Notes         []Note         `json:"notes"`
	PracticeExams []PracticeExam `json:"practiceExams"`
	NotesURL      string         `json:"notesUrl,omitempty"`
	ExamsURL      string         `json:"examsUrl,omitempty"`
}

// Completable is the uniform view of any course item used by progress
// aggregation. Identity is the ID; two items are the same entity iff the
// ids match.
type Completable struct {
	ID        string
	Label     string
	Completed bool
}

// Completables returns every item of the course as a flat list, tasks
// first, then notes, then practice exams.
func (c Course) Completables() []Completable {
	items := make([]Completable, 0, len(c.Tasks)+len(c.Notes)+len(c.PracticeExams))
	for _, t := range c.Tasks {
		items = append(items, Completable{ID: t.ID, Label: t.Text, Completed: t.Completed})
	}
	for _, n := range c.Notes {
		items = append(items, Completable{ID: n.ID, Label: n.Title, Completed: n.Completed})
	}
	for _, e := range c.PracticeExams {
		items = append(items, Completable{ID: e.ID, Label: e.Title, Completed: e.Completed})
	}
	return items
}

// Clone returns a deep copy so callers can hand course data out without
// exposing internal slices to mutation.
func (c Course) Clone() Course {
	out := c
	out.Tasks = append([]Task(nil), c.Tasks...)
	out.Notes = append([]Note(nil), c.Notes...)
	out.PracticeExams = append([]PracticeExam(nil), c.PracticeExams...)
	return out
}

// Validate checks the course invariants: non-empty id and name, a parseable
// exam date, and item ids unique across all three collections combined.
// Unparseable exam dates are configuration errors and are rejected here, at
// creation time, rather than left to silently miscompute the schedule.
func (c Course) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("course %s: name is required", c.ID)
	}
	if _, err := ParseExamMonthDay(c.ExamDate); err != nil {
		return fmt.Errorf("course %s: %w", c.ID, err)
	}

	seen := make(map[string]struct{})
	for _, item := range c.Completables() {
		if item.ID == "" {
			return fmt.Errorf("course %s: item with empty id", c.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("course %s: %w: %s", c.ID, ErrDuplicateItemID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// Progress returns the completion percentage over all of the course's items.
func (c Course) Progress() int {
	return PercentComplete(c.Completables())
}

// PercentComplete computes the completion percentage of a collection of
// items, rounded to the nearest integer. An empty collection is 0 percent,
// never a division by zero.
func PercentComplete(items []Completable) int {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(items)) * 100))
}
