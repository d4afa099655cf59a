package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/models"
	"stocktrader/internal/services"
)

// UserHandler handles user accounts, watchlists and portfolios.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest represents the request payload for user registration.
// Missing fields are reported by the service so the message stays stable.
type RegisterRequest struct {
	Username string `json:"username" binding:"max=50"`
	Email    string `json:"email" binding:"max=255"`
	Password string `json:"password" binding:"max=128"`
}

// LoginRequest represents the request payload for user login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WatchlistRequest represents the request payload for adding a watchlist entry.
type WatchlistRequest struct {
	Symbol string `json:"symbol"`
}

// UserResponse wraps a user summary with a confirmation.
type UserResponse struct {
	Message string             `json:"message"`
	User    models.UserSummary `json:"user"`
}

// BalanceResponse carries a user's cash balance.
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// Register handles user registration.
// @Summary     Register a new user
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration details"
// @Success     201 {object} UserResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username or email taken"
// @Router      /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Message: "User registered successfully", User: user.Summary()})
}

// Login handles user login.
// @Summary     Log in
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} UserResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Message: "Login successful", User: user.Summary()})
}

// GetWatchlist handles listing a user's watchlist.
// @Summary     Get watchlist
// @Tags        user
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.WatchlistItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /user/{user_id}/watchlist [get]
func (h *UserHandler) GetWatchlist(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.userService.GetWatchlist(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddToWatchlist handles following a symbol.
// @Summary     Add to watchlist
// @Tags        user
// @Accept      json
// @Produce     json
// @Param       user_id path int              true "User ID"
// @Param       request body WatchlistRequest true "Symbol to follow"
// @Success     201 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Invalid symbol"
// @Failure     409 {object} ErrorResponse "Already in watchlist"
// @Router      /user/{user_id}/watchlist [post]
func (h *UserHandler) AddToWatchlist(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol required"))
		return
	}

	if err := h.userService.AddToWatchlist(c.Request.Context(), userID, req.Symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Added to watchlist"})
}

// RemoveFromWatchlist handles unfollowing a symbol.
// @Summary     Remove from watchlist
// @Tags        user
// @Produce     json
// @Param       user_id path int    true "User ID"
// @Param       symbol  path string true "Ticker symbol"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Not in watchlist"
// @Router      /user/{user_id}/watchlist/{symbol} [delete]
func (h *UserHandler) RemoveFromWatchlist(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.RemoveFromWatchlist(c.Request.Context(), userID, symbol); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Removed from watchlist"})
}

// GetPortfolio handles listing a user's positions.
// @Summary     Get portfolio
// @Tags        user
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {array} models.PortfolioHolding
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /user/{user_id}/portfolio [get]
func (h *UserHandler) GetPortfolio(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.userService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// GetBalance handles a cash balance lookup.
// @Summary     Get balance
// @Tags        user
// @Produce     json
// @Param       user_id path int true "User ID"
// @Success     200 {object} BalanceResponse
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user/{user_id}/balance [get]
func (h *UserHandler) GetBalance(c *gin.Context) {
	userID, err := parsePathID(c, "user_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.userService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Balance: balance})
}
