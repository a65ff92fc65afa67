package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/ports"
)

// SnapshotRepositoryImpl persists the daily snapshot as one JSON blob in
// the key-value gateway.
type SnapshotRepositoryImpl struct {
	kv ports.KeyValueStore
}

// NewSnapshotRepository creates a snapshot repository over a key-value store.
func NewSnapshotRepository(kv ports.KeyValueStore) ports.SnapshotRepository {
	return &SnapshotRepositoryImpl{kv: kv}
}

func (r *SnapshotRepositoryImpl) Load(ctx context.Context) (*entities.DailySnapshot, error) {
	blob, err := r.kv.Get(ctx, snapshotRecordKey)
	if err != nil {
		return nil, err
	}

	var snapshot entities.DailySnapshot
	if err := json.Unmarshal(blob, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedSnapshot, err)
	}
	// A blob missing the expected shape is treated the same as a corrupt one.
	if snapshot.Date == "" {
		return nil, fmt.Errorf("%w: missing date", entities.ErrMalformedSnapshot)
	}
	return &snapshot, nil
}

func (r *SnapshotRepositoryImpl) Save(ctx context.Context, snapshot *entities.DailySnapshot) error {
	blob, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return r.kv.Set(ctx, snapshotRecordKey, blob)
}
