package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bossbitch/backend/internal/application/adapter"
	"github.com/bossbitch/backend/internal/domain/entity"
	"github.com/bossbitch/backend/internal/integration/persistence/model"
)

// syncQueueRepository implements adapter.SyncQueue on the local sqlite
// database. The auto-incremented seq column preserves insertion order
// across restarts, which is what makes replay FIFO.
type syncQueueRepository struct {
	db *gorm.DB
}

// NewSyncQueueRepository creates a durable sync queue backed by the
// local database.
func NewSyncQueueRepository(db *gorm.DB) adapter.SyncQueue {
	return &syncQueueRepository{db: db}
}

// Enqueue appends an action to the queue.
func (r *syncQueueRepository) Enqueue(ctx context.Context, action *entity.SyncAction) error {
	actionModel := model.SyncActionFromEntity(action)
	result := r.db.WithContext(ctx).Create(actionModel)
	return result.Error
}

// List returns all queued actions in insertion order.
func (r *syncQueueRepository) List(ctx context.Context) ([]*entity.SyncAction, error) {
	var actionModels []model.SyncActionModel
	result := r.db.WithContext(ctx).Order("seq ASC").Find(&actionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	actions := make([]*entity.SyncAction, len(actionModels))
	for i := range actionModels {
		actions[i] = actionModels[i].ToEntity()
	}
	return actions, nil
}

// Remove deletes one action by id. Removing an absent id is a no-op.
func (r *syncQueueRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.SyncActionModel{}, "id = ?", id)
	return result.Error
}

// Size returns the number of queued actions.
func (r *syncQueueRepository) Size(ctx context.Context) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.SyncActionModel{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(count), nil
}

// Clear drops every queued action.
func (r *syncQueueRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.SyncActionModel{})
	return result.Error
}
