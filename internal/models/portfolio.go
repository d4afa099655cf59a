package models

import "time"

// PortfolioPosition is a user's holding in one symbol.
// Quantity is expected to be non-negative and AvgPrice positive.
type PortfolioPosition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Symbol    string    `gorm:"size:20;not null" json:"symbol"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AvgPrice  float64   `gorm:"not null" json:"avg_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table created by the schema migrations.
func (PortfolioPosition) TableName() string { return "portfolio" }

// PortfolioHolding is a position joined with its instrument name and cost basis.
type PortfolioHolding struct {
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	Quantity       int64     `json:"quantity"`
	AvgPrice       float64   `json:"avg_price"`
	InvestedAmount float64   `json:"invested_amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
