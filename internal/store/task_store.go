package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feruzlabs/laravel-taskMaster/internal/model"
)

// TaskStore handles CRUD for tasks.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(ctx context.Context, task *model.Task) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListForPage returns the caller's tasks on one page, oldest first.
func (s *TaskStore) ListForPage(ctx context.Context, userID, pageID uint) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := s.db.WithContext(ctx).
		Where("daily_page_id = ? AND user_id = ?", pageID, userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID loads a task together with its owner.
func (s *TaskStore) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := s.db.WithContext(ctx).Preload("User").First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *TaskStore) Save(ctx context.Context, task *model.Task) error {
	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, taskID uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Task{}, taskID)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Rollover copies every incomplete task on fromPage onto toPage, keeping
// each copy's owner, title and description and resetting completion. The
// originals are left untouched. All copies land in one transaction; on
// error nothing is persisted. Returns the number of tasks copied.
//
// Calling it again re-copies the same incomplete tasks; there is no
// rolled-over marker. That matches the on-demand semantics of the endpoint.
func (s *TaskStore) Rollover(ctx context.Context, fromPageID, toPageID uint) (int, error) {
	moved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var incomplete []model.Task
		if err := tx.Where("daily_page_id = ? AND is_completed = ?", fromPageID, false).
			Order("created_at ASC, id ASC").
			Find(&incomplete).Error; err != nil {
			return fmt.Errorf("collect incomplete tasks: %w", err)
		}

		for _, src := range incomplete {
			copyTask := model.Task{
				DailyPageID: toPageID,
				UserID:      src.UserID,
				Title:       src.Title,
				Description: src.Description,
			}
			if err := tx.Create(&copyTask).Error; err != nil {
				return fmt.Errorf("copy task %d: %w", src.ID, err)
			}
		}

		moved = len(incomplete)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
