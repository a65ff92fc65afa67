package entities

import "time"

// ScheduledItem is one entry of today's task list, derived from a course
// item by the scheduler. Everything except Completed is frozen at creation
// time: label, kind and course association do not change for the rest of
// the day even if the source item is edited. Completed is re-derived from
// the authoritative course item with the same id on every read.
type ScheduledItem struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Completed  bool     `json:"completed"`
	CourseID   string   `json:"courseId"`
	CourseName string   `json:"courseName"`
	Color      string   `json:"color"`
	Kind       ItemKind `json:"kind"`
	SourceURL  string   `json:"sourceUrl,omitempty"`
}

// DailySnapshot freezes the membership and order of today's task list for
// one calendar day. CompletedIDs tracks which of the frozen items were
// checked off today, so a reload can reconstruct the day's progress before
// course data is re-read.
type DailySnapshot struct {
	Date           string          `json:"date"`
	ScheduledItems []ScheduledItem `json:"scheduledItems"`
	CompletedIDs   []string        `json:"completedIds"`
}

// IsFor reports whether the snapshot denotes the same calendar day as t.
func (s DailySnapshot) IsFor(t time.Time) bool {
	return s.Date == DayKey(t)
}

// HasCompleted reports whether the item id was checked off today.
func (s DailySnapshot) HasCompleted(id string) bool {
	for _, done := range s.CompletedIDs {
		if done == id {
			return true
		}
	}
	return false
}
