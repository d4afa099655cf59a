package models

import "time"

// DefaultBalance is the cash balance every new user starts with.
const DefaultBalance = 10000.0

// User represents a registered trader.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Balance      float64   `gorm:"default:10000" json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
}

// TableName pins the table created by the schema migrations.
func (User) TableName() string { return "users" }

// UserSummary is the public view of a user returned on register and login.
type UserSummary struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Balance  float64 `json:"balance"`
}

// Summary returns the public view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, Balance: u.Balance}
}
