package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/examtrack/core/internal/domain/entities"
	"github.com/examtrack/core/internal/ports"
)

// Record keys are kept from earlier versions so previously exported data
// stays readable.
const (
	courseRecordKey   = "exam-prep-tracker-data"
	snapshotRecordKey = "exam-prep-tracker-today-snapshot"
)

// CourseRepositoryImpl persists the course collection as one JSON blob in
// the key-value gateway. Reads happen once at startup; every change
// rewrites the record wholesale.
type CourseRepositoryImpl struct {
	kv ports.KeyValueStore
}

// NewCourseRepository creates a course repository over a key-value store.
func NewCourseRepository(kv ports.KeyValueStore) ports.CourseRepository {
	return &CourseRepositoryImpl{kv: kv}
}

func (r *CourseRepositoryImpl) Load(ctx context.Context) ([]entities.Course, error) {
	blob, err := r.kv.Get(ctx, courseRecordKey)
	if err != nil {
		return nil, err
	}

	var courses []entities.Course
	if err := json.Unmarshal(blob, &courses); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedRecord, err)
	}
	return courses, nil
}

func (r *CourseRepositoryImpl) Save(ctx context.Context, courses []entities.Course) error {
	blob, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("marshal courses: %w", err)
	}
	return r.kv.Set(ctx, courseRecordKey, blob)
}
