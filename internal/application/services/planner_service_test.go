package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examtrack/core/internal/adapters/repository"
	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/infrastructure/logger"
	"github.com/examtrack/core/internal/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeCelebrator struct {
	items []entities.ScheduledItem
}

func (f *fakeCelebrator) Celebrate(item entities.ScheduledItem) {
	f.items = append(f.items, item)
}

type plannerFixture struct {
	planner    *PlannerService
	courses    *CourseService
	kv         *repository.MemoryKVStore
	clock      *fakeClock
	celebrator *fakeCelebrator
}

func newPlannerFixture(t *testing.T, courses []entities.Course) *plannerFixture {
	t.Helper()

	kv := repository.NewMemoryKVStore()
	courseRepo := repository.NewCourseRepository(kv)
	require.NoError(t, courseRepo.Save(context.Background(), courses))

	return restartPlanner(t, kv)
}

// restartPlanner builds fresh services over an existing store, simulating
// a process restart.
func restartPlanner(t *testing.T, kv *repository.MemoryKVStore) *plannerFixture {
	t.Helper()

	clock := &fakeClock{now: today}
	celebrator := &fakeCelebrator{}
	log := logger.NewNop()

	courseService := NewCourseService(repository.NewCourseRepository(kv), log)
	planner := NewPlannerService(courseService, repository.NewSnapshotRepository(kv), celebrator, log, clock.Now)

	return &plannerFixture{
		planner:    planner,
		courses:    courseService,
		kv:         kv,
		clock:      clock,
		celebrator: celebrator,
	}
}

func TestPlanner_ComputesScheduleOnFirstRead(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})

	view := f.planner.TodaySchedule(context.Background())

	assert.Equal(t, entities.DayKey(today), view.Date)
	require.Len(t, view.Items, 2) // ceil(10/5)
	assert.Equal(t, 0, view.CompletedToday)

	// The snapshot is persisted, not just held in memory.
	snap, err := repository.NewSnapshotRepository(f.kv).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, view.Date, snap.Date)
	assert.Len(t, snap.ScheduledItems, 2)
}

func TestPlanner_SnapshotFreeze(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	before := f.planner.TodaySchedule(ctx)

	// New work arriving intra-day must not enter the frozen selection.
	_, err := f.courses.AddTask(ctx, "1", "read errata")
	require.NoError(t, err)

	after := f.planner.TodaySchedule(ctx)

	require.Len(t, after.Items, len(before.Items))
	for i := range after.Items {
		assert.Equal(t, before.Items[i].ID, after.Items[i].ID)
	}
}

func TestPlanner_ReconciliationIsIdempotent(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	first := f.planner.TodaySchedule(ctx)
	second := f.planner.TodaySchedule(ctx)

	assert.Equal(t, first, second)
}

func TestPlanner_ToggleCelebratesAndTracksCompletion(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	view := f.planner.TodaySchedule(ctx)
	target := view.Items[0]

	result := f.planner.ToggleItem(ctx, target.ID)

	assert.True(t, result.Found)
	assert.True(t, result.InToday)
	assert.True(t, result.Completed)
	assert.True(t, result.Celebrated)
	require.Len(t, f.celebrator.items, 1)
	assert.Equal(t, target.ID, f.celebrator.items[0].ID)

	// Read path reflects the live completion without changing membership.
	view = f.planner.TodaySchedule(ctx)
	require.Len(t, view.Items, 2)
	assert.True(t, view.Items[0].Completed)
	assert.Equal(t, 1, view.CompletedToday)

	done := f.planner.CompletedToday(ctx)
	require.Len(t, done, 1)
	assert.Equal(t, target.ID, done[0].ID)
}

func TestPlanner_UntoggleRemovesFromCompletedWithoutCelebration(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	target := f.planner.TodaySchedule(ctx).Items[0]
	f.planner.ToggleItem(ctx, target.ID)

	result := f.planner.ToggleItem(ctx, target.ID)

	assert.True(t, result.Found)
	assert.False(t, result.Completed)
	assert.False(t, result.Celebrated)
	assert.Len(t, f.celebrator.items, 1) // only the first toggle celebrated
	assert.Equal(t, 0, f.planner.TodaySchedule(ctx).CompletedToday)
}

func TestPlanner_ToggleOutsideTodayFlipsCourseDataOnly(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	f.planner.TodaySchedule(ctx) // freezes n1, n2

	result := f.planner.ToggleItem(ctx, "1-n7")

	assert.True(t, result.Found)
	assert.False(t, result.InToday)
	assert.False(t, result.Celebrated)
	assert.Empty(t, f.celebrator.items)

	// The authoritative course data did flip.
	course, err := f.courses.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, course.Notes[6].Completed)

	// Today's list and completed-today set are untouched.
	view := f.planner.TodaySchedule(ctx)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 0, view.CompletedToday)
}

func TestPlanner_ToggleUnknownIDIsNoOp(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})

	result := f.planner.ToggleItem(context.Background(), "no-such-item")

	assert.False(t, result.Found)
	assert.Empty(t, f.celebrator.items)
}

func TestPlanner_DayRollover(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	first := f.planner.TodaySchedule(ctx)
	f.planner.ToggleItem(ctx, first.Items[0].ID)
	require.Equal(t, 1, f.planner.TodaySchedule(ctx).CompletedToday)

	// Rollover is detected lazily on the next read after midnight.
	f.clock.Advance(24 * time.Hour)
	next := f.planner.TodaySchedule(ctx)

	assert.NotEqual(t, first.Date, next.Date)
	assert.Equal(t, 0, next.CompletedToday)

	// Yesterday's completed note is out; the fresh selection starts at
	// the first incomplete note. ceil(9/4) = 3.
	require.Len(t, next.Items, 3)
	assert.Equal(t, "1-n2", next.Items[0].ID)
}

func TestPlanner_RestartSameDayRestoresSnapshotVerbatim(t *testing.T) {
	f := newPlannerFixture(t, []entities.Course{courseWithNotes("1", examInDays(t, 5), 10)})
	ctx := context.Background()

	view := f.planner.TodaySchedule(ctx)
	f.planner.ToggleItem(ctx, view.Items[0].ID)

	// Mutate course data after the snapshot was taken.
	_, err := f.courses.AddTask(ctx, "1", "late addition")
	require.NoError(t, err)

	restarted := restartPlanner(t, f.kv)
	restored := restarted.planner.TodaySchedule(ctx)

	// Same membership, and the completed-today set survived the restart.
	require.Len(t, restored.Items, len(view.Items))
	for i := range restored.Items {
		assert.Equal(t, view.Items[i].ID, restored.Items[i].ID)
	}
	assert.Equal(t, 1, restored.CompletedToday)
	assert.True(t, restored.Items[0].Completed)
}

func TestPlanner_StaleSnapshotIsNeverReused(t *testing.T) {
	kv := repository.NewMemoryKVStore()
	ctx := context.Background()

	require.NoError(t, repository.NewCourseRepository(kv).Save(ctx, []entities.Course{
		courseWithNotes("1", examInDays(t, 5), 10),
	}))
	require.NoError(t, repository.NewSnapshotRepository(kv).Save(ctx, &entities.DailySnapshot{
		Date:           entities.DayKey(today.AddDate(0, 0, -1)),
		ScheduledItems: []entities.ScheduledItem{{ID: "stale", CourseID: "1"}},
		CompletedIDs:   []string{"stale"},
	}))

	f := restartPlanner(t, kv)
	view := f.planner.TodaySchedule(ctx)

	assert.Equal(t, entities.DayKey(today), view.Date)
	assert.Equal(t, 0, view.CompletedToday)
	for _, item := range view.Items {
		assert.NotEqual(t, "stale", item.ID)
	}
}

func TestPlanner_MalformedSnapshotDegradesToRecompute(t *testing.T) {
	kv := repository.NewMemoryKVStore()
	ctx := context.Background()

	require.NoError(t, repository.NewCourseRepository(kv).Save(ctx, []entities.Course{
		courseWithNotes("1", examInDays(t, 5), 10),
	}))
	require.NoError(t, kv.Set(ctx, "exam-prep-tracker-today-snapshot", []byte("{not json")))

	f := restartPlanner(t, kv)
	view := f.planner.TodaySchedule(ctx)

	assert.Equal(t, entities.DayKey(today), view.Date)
	assert.Len(t, view.Items, 2)
}

// failingKV rejects every operation, modeling an unavailable store.
type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, assert.AnError
}

func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return assert.AnError
}

var _ ports.KeyValueStore = failingKV{}

func TestPlanner_UnavailableStoreNeverFailsReads(t *testing.T) {
	log := logger.NewNop()
	kv := failingKV{}

	courseService := NewCourseService(repository.NewCourseRepository(kv), log)
	planner := NewPlannerService(courseService, repository.NewSnapshotRepository(kv), &fakeCelebrator{}, log, (&fakeClock{now: today}).Now)

	// Courses fell back to the default plan; reads and toggles still work.
	view := planner.TodaySchedule(context.Background())
	assert.Equal(t, entities.DayKey(today), view.Date)
	assert.NotEmpty(t, view.Items)

	result := planner.ToggleItem(context.Background(), view.Items[0].ID)
	assert.True(t, result.Found)
}
