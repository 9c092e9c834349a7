package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generic GORM helpers shared by the per-entity store files. They are
// unexported and operate on the raw *gorm.DB. Each handles context
// propagation, preloading, not-found conversion, and unique-constraint
// detection so the entity files stay small.

// getByField retrieves a single record of type T by matching field=value.
// It applies optional GORM Preload clauses and converts
// gorm.ErrRecordNotFound to the provided notFoundErr.
func getByField[T any](db *gorm.DB, ctx context.Context, field string, value any, notFoundErr error, preloads ...string) (*T, error) {
	var result T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Where(field+" = ?", value).First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// listAll retrieves all records of type T, applying optional GORM Preload
// clauses. Returns an empty slice (not nil) on success with no records.
func listAll[T any](db *gorm.DB, ctx context.Context, preloads ...string) ([]*T, error) {
	var results []*T
	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// createWithID generates a UUID for the entity if it has no ID, then creates
// it. The idSetter callback sets the generated ID on the entity. When dupErr
// is non-nil, unique constraint violations are converted to it.
func createWithID[T any](db *gorm.DB, ctx context.Context, entity *T, idSetter func(*T, string), currentID string, dupErr error) (string, error) {
	id := currentID
	if id == "" {
		id = uuid.New().String()
		idSetter(entity, id)
	}
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if dupErr != nil && isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}
