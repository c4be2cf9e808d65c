package model

import "time"

// Token is an opaque bearer credential bound to one user. A user may hold
// several at once (one per session); logout deletes only the presented one.
type Token struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:64"`
	UserID    uint      `gorm:"index"`
	CreatedAt time.Time
}
