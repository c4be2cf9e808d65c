package model

import "time"

// Task is a single item on a user's daily page. UserID and DailyPageID
// are fixed at creation. CompletedAt is non-nil exactly when IsCompleted
// is true.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DailyPageID uint       `gorm:"index" json:"daily_page_id"`
	UserID      uint       `gorm:"index" json:"user_id"`
	Title       string     `gorm:"size:255" json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
}

// OwnedBy reports whether the task belongs to the given user. Mutation
// handlers evaluate this before touching the store.
func (t *Task) OwnedBy(userID uint) bool {
	return t.UserID == userID
}
