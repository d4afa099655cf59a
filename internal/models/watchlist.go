package models

import "time"

// WatchlistEntry marks a symbol a user follows. (UserID, Symbol) is unique.
type WatchlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol" json:"user_id"`
	Symbol    string    `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table created by the schema migrations.
func (WatchlistEntry) TableName() string { return "watchlist" }

// WatchlistItem is a watchlist row joined with its instrument's name.
type WatchlistItem struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
