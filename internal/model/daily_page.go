package model

import "time"

// DailyPage groups the tasks of one calendar day. Date is a plain
// YYYY-MM-DD string; pages are created lazily on first reference and
// never updated or deleted.
type DailyPage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"uniqueIndex;size:10" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tasks     []Task    `gorm:"foreignKey:DailyPageID" json:"-"`
}
