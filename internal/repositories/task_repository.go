package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "teamops.com/teamops/internal/errors"
	model "teamops.com/teamops/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Version = 1
	task.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, storeErr(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByStatuses(ctx context.Context, statuses ...model.TaskStatus) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at asc").
		Find(&tasks).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return tasks, nil
}

// Update writes the task's mutable fields conditional on the version the
// caller read. A stale version means another writer got there first and
// the whole read-modify-write must be retried.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Select(
			"status", "progress", "notes", "remarks", "votes",
			"in_progress_by", "started_at", "completed_by", "completed_at",
			"version",
		).
		Updates(model.Task{
			Status:       task.Status,
			Progress:     task.Progress,
			Notes:        task.Notes,
			Remarks:      task.Remarks,
			Votes:        task.Votes,
			InProgressBy: task.InProgressBy,
			StartedAt:    task.StartedAt,
			CompletedBy:  task.CompletedBy,
			CompletedAt:  task.CompletedAt,
			Version:      task.Version + 1,
		})

	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}

	task.Version++
	return nil
}

// Delete removes the task conditional on its version, so a deletion
// racing another mutation surfaces as a conflict instead of silently
// discarding that writer's change.
func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Delete(&model.Task{})

	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Task{}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
