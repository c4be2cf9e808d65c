package model

import "time"

// User is an account holder. The password hash never leaves the server.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Tokens       []Token   `gorm:"foreignKey:UserID" json:"-"`
	Tasks        []Task    `gorm:"foreignKey:UserID" json:"-"`
}
