package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stocktrader/internal/database"
	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/models"
)

// userService handles user accounts, watchlists and portfolios.
type userService struct {
	db     *gorm.DB
	hasher PasswordHasher
}

// NewUserService creates a new UserServicer. A nil hasher selects SHA256Hasher.
func NewUserService(db *gorm.DB, hasher PasswordHasher) UserServicer {
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	return &userService{db: db, hasher: hasher}
}

// Register creates an active user with the default starting balance.
func (s *userService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing required fields")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Balance:      models.DefaultBalance,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// Login returns the active user matching username and password. Unknown
// users, inactive users and wrong passwords all yield ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username and password required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetWatchlist returns the user's watchlist, newest first. Entries whose
// instrument row is missing are skipped by the join.
func (s *userService) GetWatchlist(ctx context.Context, userID uint) ([]models.WatchlistItem, error) {
	items := []models.WatchlistItem{}
	err := s.db.WithContext(ctx).
		Table("watchlist AS w").
		Select("w.symbol, i.name, w.created_at").
		Joins("JOIN instruments AS i ON w.symbol = i.symbol").
		Where("w.user_id = ?", userID).
		Order("w.created_at DESC, w.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// AddToWatchlist adds symbol to the user's watchlist. The symbol must name
// an active instrument and must not already be on the list.
func (s *userService) AddToWatchlist(ctx context.Context, userID uint, symbol string) error {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol required")
	}

	err := database.WithConnection(ctx, s.db, func(conn *gorm.DB) error {
		var count int64
		if err := conn.Model(&models.Instrument{}).
			Where("symbol = ? AND is_active = ?", symbol, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrSymbolNotFound
		}

		entry := &models.WatchlistEntry{UserID: userID, Symbol: symbol}
		if err := conn.Create(entry).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicateWatchlist
			}
			return err
		}
		return nil
	})
	return asAppError(err)
}

// RemoveFromWatchlist deletes symbol from the user's watchlist.
func (s *userService) RemoveFromWatchlist(ctx context.Context, userID uint, symbol string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, normalizeSymbol(symbol)).
		Delete(&models.WatchlistEntry{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrWatchlistEntryNotFound
	}
	return nil
}

// GetPortfolio returns the user's positions with their cost basis, most
// recently updated first.
func (s *userService) GetPortfolio(ctx context.Context, userID uint) ([]models.PortfolioHolding, error) {
	holdings := []models.PortfolioHolding{}
	err := s.db.WithContext(ctx).
		Table("portfolio AS p").
		Select("p.symbol, i.name, p.quantity, p.avg_price, p.quantity * p.avg_price AS invested_amount, p.created_at, p.updated_at").
		Joins("JOIN instruments AS i ON p.symbol = i.symbol").
		Where("p.user_id = ?", userID).
		Order("p.updated_at DESC, p.id DESC").
		Scan(&holdings).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// GetBalance returns the cash balance of an active user.
func (s *userService) GetBalance(ctx context.Context, userID uint) (float64, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Select("balance").
		Where("id = ? AND is_active = ?", userID, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user.Balance, nil
}

// asAppError passes AppErrors through and wraps anything else as an internal error.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
