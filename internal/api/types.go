package api

import (
	"time"

	"github.com/feruzlabs/laravel-taskMaster/internal/model"
)

// Response schemas. Kept separate from the GORM models so the wire shape
// does not drift when columns change.

type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskOwner is the minimal identity attached to a task detail response.
type TaskOwner struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Task struct {
	ID          uint       `json:"id"`
	DailyPageID uint       `json:"daily_page_id"`
	UserID      uint       `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        *TaskOwner `json:"user,omitempty"`
}

func userResponse(u *model.User) User {
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func taskResponse(t *model.Task) Task {
	return Task{
		ID:          t.ID,
		DailyPageID: t.DailyPageID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func taskWithOwnerResponse(t *model.Task) Task {
	resp := taskResponse(t)
	resp.User = &TaskOwner{
		ID:       t.User.ID,
		Username: t.User.Username,
		Email:    t.User.Email,
	}
	return resp
}

func taskListResponse(tasks []model.Task) []Task {
	resp := make([]Task, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, taskResponse(&tasks[i]))
	}
	return resp
}
