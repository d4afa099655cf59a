package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"stocktrader/internal/database"
	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/models"
	"stocktrader/internal/pagination"
)

// instrumentOrder puts the largest companies first. Instruments without a
// market cap sort last and symbol breaks ties so pages are stable.
const instrumentOrder = "CASE WHEN market_cap IS NULL THEN 1 ELSE 0 END, market_cap DESC, symbol ASC"

// clause is one parameterized WHERE predicate.
type clause struct {
	predicate string
	args      []interface{}
}

// clauses renders the filter as predicates. Matching is a case-insensitive substring match.
func (f InstrumentFilter) clauses() []clause {
	var out []clause
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		out = append(out, clause{"(LOWER(symbol) LIKE ? OR LOWER(name) LIKE ?)", []interface{}{like, like}})
	}
	if term := strings.TrimSpace(f.Sector); term != "" {
		out = append(out, clause{"LOWER(sector) LIKE ?", []interface{}{"%" + strings.ToLower(term) + "%"}})
	}
	return out
}

// scope applies the active flag and every filter clause.
func (f InstrumentFilter) scope(db *gorm.DB) *gorm.DB {
	db = db.Where("is_active = ?", true)
	for _, c := range f.clauses() {
		db = db.Where(c.predicate, c.args...)
	}
	return db
}

// instrumentService handles the instrument catalog.
type instrumentService struct {
	db *gorm.DB
}

// NewInstrumentService creates a new InstrumentServicer.
func NewInstrumentService(db *gorm.DB) InstrumentServicer {
	return &instrumentService{db: db}
}

// ListInstruments returns one page of active instruments matching filter.
func (s *instrumentService) ListInstruments(ctx context.Context, filter InstrumentFilter, page pagination.PageRequest) (*pagination.Page[models.Instrument], error) {
	page.Defaults()

	var total int64
	var instruments []models.Instrument
	err := database.WithConnection(ctx, s.db, func(conn *gorm.DB) error {
		if err := conn.Model(&models.Instrument{}).Scopes(filter.scope).Count(&total).Error; err != nil {
			return err
		}
		return conn.Scopes(filter.scope, pagination.Paginate(page)).
			Order(instrumentOrder).
			Find(&instruments).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPage(instruments, page, total)
	return &result, nil
}

// GetInstrument looks up an instrument by symbol, case-insensitively.
// Soft-deleted instruments are only returned when includeInactive is set.
func (s *instrumentService) GetInstrument(ctx context.Context, symbol string, includeInactive bool) (*models.Instrument, error) {
	var instrument models.Instrument
	q := s.db.WithContext(ctx).Where("symbol = ?", normalizeSymbol(symbol))
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.First(&instrument).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInstrumentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &instrument, nil
}

// CreateInstrument adds an instrument. The symbol is stored upper-cased and
// must not collide with any existing row, active or not.
func (s *instrumentService) CreateInstrument(ctx context.Context, input InstrumentInput) (*models.Instrument, error) {
	symbol := normalizeSymbol(input.Symbol)
	if symbol == "" || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Exchange) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Missing required fields")
	}

	instrument := &models.Instrument{
		Symbol:    symbol,
		Name:      input.Name,
		Exchange:  input.Exchange,
		Sector:    input.Sector,
		MarketCap: input.MarketCap,
		IsActive:  true,
	}

	if err := s.db.WithContext(ctx).Create(instrument).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateInstrument
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return instrument, nil
}

// UpdateInstrument overwrites name, exchange, sector and market cap of an
// active instrument. A nil sector or market cap clears the column.
func (s *instrumentService) UpdateInstrument(ctx context.Context, symbol string, input InstrumentInput) (*models.Instrument, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Exchange) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name and exchange are required")
	}
	symbol = normalizeSymbol(symbol)

	var updated models.Instrument
	err := database.WithConnection(ctx, s.db, func(conn *gorm.DB) error {
		result := conn.Model(&models.Instrument{}).
			Where("symbol = ? AND is_active = ?", symbol, true).
			Updates(map[string]interface{}{
				"name":       input.Name,
				"exchange":   input.Exchange,
				"sector":     input.Sector,
				"market_cap": input.MarketCap,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrInstrumentNotFound
		}
		return conn.Where("symbol = ?", symbol).First(&updated).Error
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return &updated, nil
}

// DeleteInstrument soft-deletes an instrument. Deleting an already inactive
// instrument succeeds; only an unknown symbol is an error.
func (s *instrumentService) DeleteInstrument(ctx context.Context, symbol string) error {
	result := s.db.WithContext(ctx).Model(&models.Instrument{}).
		Where("symbol = ?", normalizeSymbol(symbol)).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInstrumentNotFound
	}
	return nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// isUniqueConstraintError checks if a GORM error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
