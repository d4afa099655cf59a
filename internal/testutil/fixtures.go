package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stocktrader/internal/models"

	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user whose password is TestPassword,
// stored as a hex SHA-256 digest.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	sum := sha256.Sum256([]byte(TestPassword))
	user := &models.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@test.com", n),
		PasswordHash: hex.EncodeToString(sum[:]),
		Balance:      models.DefaultBalance,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// DeactivateUser clears the user's active flag.
func DeactivateUser(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	if err := db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate test user: %v", err)
	}
}

// CreateTestInstrument creates an active instrument with a unique symbol.
func CreateTestInstrument(t *testing.T, db *gorm.DB, sector string, marketCap float64) *models.Instrument {
	t.Helper()

	n := nextID()
	inst := &models.Instrument{
		Symbol:    fmt.Sprintf("TST%d", n),
		Name:      fmt.Sprintf("Test Corp %d", n),
		Exchange:  "NYSE",
		Sector:    &sector,
		MarketCap: &marketCap,
		IsActive:  true,
	}
	if err := db.Create(inst).Error; err != nil {
		t.Fatalf("failed to create test instrument: %v", err)
	}
	return inst
}

// CreateTestWatchlistEntry adds symbol to the user's watchlist at the given time.
func CreateTestWatchlistEntry(t *testing.T, db *gorm.DB, userID uint, symbol string, at time.Time) *models.WatchlistEntry {
	t.Helper()

	entry := &models.WatchlistEntry{UserID: userID, Symbol: symbol, CreatedAt: at}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test watchlist entry: %v", err)
	}
	return entry
}

// CreateTestPosition creates a portfolio position last updated at the given time.
func CreateTestPosition(t *testing.T, db *gorm.DB, userID uint, symbol string, quantity int64, avgPrice float64, updatedAt time.Time) *models.PortfolioPosition {
	t.Helper()

	pos := &models.PortfolioPosition{
		UserID:    userID,
		Symbol:    symbol,
		Quantity:  quantity,
		AvgPrice:  avgPrice,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	if err := db.Create(pos).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return pos
}
