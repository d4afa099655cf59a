package models

import "time"

// Instrument is a tradable security in the reference catalog. Rows are never
// removed; deleting an instrument clears IsActive.
type Instrument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"size:20;uniqueIndex;not null" json:"symbol"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Exchange  string    `gorm:"size:50;not null" json:"exchange"`
	Sector    *string   `gorm:"size:100" json:"sector"`
	MarketCap *float64  `json:"market_cap"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// TableName pins the table created by the schema migrations.
func (Instrument) TableName() string { return "instruments" }
