package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/models"
	"stocktrader/internal/pagination"
	"stocktrader/internal/services"
)

// InstrumentHandler handles the instrument catalog.
type InstrumentHandler struct {
	instrumentService services.InstrumentServicer
}

// NewInstrumentHandler creates a new InstrumentHandler.
func NewInstrumentHandler(instrumentService services.InstrumentServicer) *InstrumentHandler {
	return &InstrumentHandler{instrumentService: instrumentService}
}

// ListInstrumentsQuery holds the list filters and page parameters.
type ListInstrumentsQuery struct {
	pagination.PageRequest
	Search string `form:"search"`
	Sector string `form:"sector"`
}

// InstrumentListResponse is one page of instruments.
type InstrumentListResponse struct {
	Instruments []models.Instrument `json:"instruments"`
	Total       int64               `json:"total"`
	Page        int                 `json:"page"`
	Limit       int                 `json:"limit"`
	HasNext     bool                `json:"has_next"`
}

// CreateInstrumentRequest represents the request payload for adding an instrument.
type CreateInstrumentRequest struct {
	Symbol    string   `json:"symbol" binding:"required,ticker"`
	Name      string   `json:"name" binding:"required,max=255"`
	Exchange  string   `json:"exchange" binding:"required,max=50"`
	Sector    *string  `json:"sector" binding:"omitempty,max=100"`
	MarketCap *float64 `json:"market_cap" binding:"omitempty,gte=0"`
}

// UpdateInstrumentRequest represents the request payload for updating an
// instrument. Omitted sector or market_cap clear the stored value.
type UpdateInstrumentRequest struct {
	Name      string   `json:"name" binding:"required,max=255"`
	Exchange  string   `json:"exchange" binding:"required,max=50"`
	Sector    *string  `json:"sector" binding:"omitempty,max=100"`
	MarketCap *float64 `json:"market_cap" binding:"omitempty,gte=0"`
}

// InstrumentResponse wraps a written instrument with a confirmation.
type InstrumentResponse struct {
	Message    string             `json:"message"`
	Instrument *models.Instrument `json:"instrument"`
}

// ListInstruments handles listing active instruments.
// @Summary     List instruments
// @Description Active instruments ordered by market cap, filtered by case-insensitive substring
// @Tags        instruments
// @Produce     json
// @Param       search query string false "Substring of symbol or name"
// @Param       sector query string false "Substring of sector"
// @Param       page   query int    false "Page number (default 1)"
// @Param       limit  query int    false "Items per page (default 50, max 500)"
// @Success     200 {object} InstrumentListResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /instruments [get]
func (h *InstrumentHandler) ListInstruments(c *gin.Context) {
	var q ListInstrumentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.instrumentService.ListInstruments(c.Request.Context(),
		services.InstrumentFilter{Search: q.Search, Sector: q.Sector}, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, InstrumentListResponse{
		Instruments: page.Items,
		Total:       page.Total,
		Page:        page.Page,
		Limit:       page.Limit,
		HasNext:     page.HasNext,
	})
}

// GetInstrument handles fetching one instrument.
// @Summary     Get instrument
// @Tags        instruments
// @Produce     json
// @Param       symbol           path  string true  "Ticker symbol (case-insensitive)"
// @Param       include_inactive query bool   false "Also return soft-deleted instruments"
// @Success     200 {object} models.Instrument
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /instruments/{symbol} [get]
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	includeInactive := false
	if raw := c.Query("include_inactive"); raw != "" {
		if includeInactive, err = strconv.ParseBool(raw); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "include_inactive must be a boolean"))
			return
		}
	}

	instrument, err := h.instrumentService.GetInstrument(c.Request.Context(), symbol, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, instrument)
}

// CreateInstrument handles adding an instrument.
// @Summary     Add instrument
// @Tags        instruments
// @Accept      json
// @Produce     json
// @Param       request body CreateInstrumentRequest true "Instrument details"
// @Success     201 {object} InstrumentResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Instrument already exists"
// @Router      /instruments [post]
func (h *InstrumentHandler) CreateInstrument(c *gin.Context) {
	var req CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	instrument, err := h.instrumentService.CreateInstrument(c.Request.Context(), services.InstrumentInput{
		Symbol:    req.Symbol,
		Name:      req.Name,
		Exchange:  req.Exchange,
		Sector:    req.Sector,
		MarketCap: req.MarketCap,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, InstrumentResponse{Message: "Instrument added successfully", Instrument: instrument})
}

// UpdateInstrument handles overwriting an instrument's mutable fields.
// @Summary     Update instrument
// @Tags        instruments
// @Accept      json
// @Produce     json
// @Param       symbol  path string                  true "Ticker symbol"
// @Param       request body UpdateInstrumentRequest true "New values"
// @Success     200 {object} InstrumentResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /instruments/{symbol} [put]
func (h *InstrumentHandler) UpdateInstrument(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	instrument, err := h.instrumentService.UpdateInstrument(c.Request.Context(), symbol, services.InstrumentInput{
		Name:      req.Name,
		Exchange:  req.Exchange,
		Sector:    req.Sector,
		MarketCap: req.MarketCap,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, InstrumentResponse{Message: "Instrument updated successfully", Instrument: instrument})
}

// DeleteInstrument handles soft-deleting an instrument.
// @Summary     Delete instrument
// @Description Marks the instrument inactive; the row is kept
// @Tags        instruments
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Instrument not found"
// @Router      /instruments/{symbol} [delete]
func (h *InstrumentHandler) DeleteInstrument(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.instrumentService.DeleteInstrument(c.Request.Context(), symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Instrument deleted successfully"})
}
