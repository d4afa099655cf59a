// Package server assembles the HTTP front door.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stocktrader/internal/handlers"
	"stocktrader/internal/middleware"
	"stocktrader/internal/services"
	"stocktrader/internal/validator"

	_ "stocktrader/internal/docs" // Import swagger docs
)

// Services bundles the dependencies the router dispatches to.
type Services struct {
	Instruments services.InstrumentServicer
	Users       services.UserServicer
	Market      services.MarketDataServicer
	Predictions services.PredictionServicer
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(svc Services) *gin.Engine {
	validator.Register()

	instrumentHandler := handlers.NewInstrumentHandler(svc.Instruments)
	userHandler := handlers.NewUserHandler(svc.Users)
	marketHandler := handlers.NewMarketHandler(svc.Market, svc.Predictions)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoints
	router.GET("/", handlers.Health)
	router.GET("/api/health", handlers.Health)

	api := router.Group("/api")

	instruments := api.Group("/instruments")
	instruments.GET("", instrumentHandler.ListInstruments)
	instruments.POST("", instrumentHandler.CreateInstrument)
	instruments.GET("/:symbol", instrumentHandler.GetInstrument)
	instruments.PUT("/:symbol", instrumentHandler.UpdateInstrument)
	instruments.DELETE("/:symbol", instrumentHandler.DeleteInstrument)

	market := api.Group("/market")
	market.GET("/quote/:symbol", marketHandler.GetQuote)
	market.POST("/quotes", marketHandler.GetQuotes)
	market.GET("/company/:symbol", marketHandler.GetCompanyProfile)
	market.GET("/candles/:symbol", marketHandler.GetCandles)
	market.GET("/news/:symbol", marketHandler.GetCompanyNews)
	market.GET("/stats/:symbol", marketHandler.GetStats)
	market.GET("/predict/:symbol", marketHandler.Predict)

	user := api.Group("/user")
	user.POST("/register", userHandler.Register)
	user.POST("/login", userHandler.Login)
	user.GET("/:user_id/watchlist", userHandler.GetWatchlist)
	user.POST("/:user_id/watchlist", userHandler.AddToWatchlist)
	user.DELETE("/:user_id/watchlist/:symbol", userHandler.RemoveFromWatchlist)
	user.GET("/:user_id/portfolio", userHandler.GetPortfolio)
	user.GET("/:user_id/balance", userHandler.GetBalance)

	return router
}
