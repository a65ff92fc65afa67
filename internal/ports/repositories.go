package ports

import (
	"context"
	"errors"

	"github.com/examtrack/core/internal/domain/entities"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when no record exists
// under the requested key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persistence gateway: an opaque-blob store with
// get/set semantics only. No partial updates, no transactions across keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CourseRepository persists the course collection as one wholesale record.
type CourseRepository interface {
	Load(ctx context.Context) ([]entities.Course, error)
	Save(ctx context.Context, courses []entities.Course) error
}

// SnapshotRepository persists the daily snapshot as one wholesale record.
type SnapshotRepository interface {
	Load(ctx context.Context) (*entities.DailySnapshot, error)
	Save(ctx context.Context, snapshot *entities.DailySnapshot) error
}

// Celebrator fires the celebratory side effect when an item from today's
// list is completed. Implementations are fire-and-forget; failures must
// never affect toggle correctness.
type Celebrator interface {
	Celebrate(item entities.ScheduledItem)
}
