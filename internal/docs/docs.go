// Package docs registers the hand-maintained OpenAPI document served under
// /swagger. Keep it in step with the @Router annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/instruments": {
            "get": {
                "description": "Active instruments ordered by market cap, filtered by case-insensitive substring",
                "produces": ["application/json"],
                "tags": ["instruments"],
                "summary": "List instruments",
                "parameters": [
                    {"type": "string", "description": "Substring of symbol or name", "name": "search", "in": "query"},
                    {"type": "string", "description": "Substring of sector", "name": "sector", "in": "query"},
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (default 50, max 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.InstrumentListResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["instruments"],
                "summary": "Add instrument",
                "parameters": [
                    {"description": "Instrument details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateInstrumentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.InstrumentResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Instrument already exists", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/instruments/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["instruments"],
                "summary": "Get instrument",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol (case-insensitive)", "name": "symbol", "in": "path", "required": true},
                    {"type": "boolean", "description": "Also return soft-deleted instruments", "name": "include_inactive", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Instrument"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Instrument not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["instruments"],
                "summary": "Update instrument",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true},
                    {"description": "New values", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateInstrumentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.InstrumentResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Instrument not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Marks the instrument inactive; the row is kept",
                "produces": ["application/json"],
                "tags": ["instruments"],
                "summary": "Delete instrument",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Instrument not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/candles/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get candles",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true},
                    {"type": "string", "description": "1, 5, 15, 30, 60, D, W or M (default D)", "name": "resolution", "in": "query"},
                    {"type": "integer", "description": "Start, UNIX seconds", "name": "from", "in": "query", "required": true},
                    {"type": "integer", "description": "End, UNIX seconds", "name": "to", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/marketdata.Candles"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "No candle data", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/company/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get company profile",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/marketdata.CompanyProfile"}},
                    "404": {"description": "Company not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/news/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get company news",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true},
                    {"type": "string", "description": "Start date, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date, YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/marketdata.CompanyNews"}},
                    "503": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/predict/{symbol}": {
            "get": {
                "description": "current + 0.5 * (current - previous close), rounded to cents",
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Predict next-day price",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.Prediction"}},
                    "500": {"description": "Prediction failed", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/quote/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get quote",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/marketdata.Quote"}},
                    "404": {"description": "No data for symbol", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "503": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/quotes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get quotes",
                "parameters": [
                    {"description": "Between 1 and 100 symbols", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.QuotesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.QuotesResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/market/stats/{symbol}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Get stats",
                "parameters": [
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/marketdata.Stats"}},
                    "503": {"description": "Provider unavailable", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Username or email taken", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/{user_id}/balance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get balance",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.BalanceResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/{user_id}/portfolio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get portfolio",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PortfolioHolding"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/{user_id}/watchlist": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get watchlist",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.WatchlistItem"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Add to watchlist",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"description": "Symbol to follow", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.WatchlistRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Invalid symbol", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Already in watchlist", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/user/{user_id}/watchlist/{symbol}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Remove from watchlist",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Ticker symbol", "name": "symbol", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "404": {"description": "Not in watchlist", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.BalanceResponse": {
            "type": "object",
            "properties": {"balance": {"type": "number"}}
        },
        "handlers.CreateInstrumentRequest": {
            "type": "object",
            "required": ["exchange", "name", "symbol"],
            "properties": {
                "exchange": {"type": "string", "maxLength": 50},
                "market_cap": {"type": "number"},
                "name": {"type": "string", "maxLength": 255},
                "sector": {"type": "string", "maxLength": 100},
                "symbol": {"type": "string"}
            }
        },
        "handlers.InstrumentListResponse": {
            "type": "object",
            "properties": {
                "has_next": {"type": "boolean"},
                "instruments": {"type": "array", "items": {"$ref": "#/definitions/models.Instrument"}},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "handlers.InstrumentResponse": {
            "type": "object",
            "properties": {
                "instrument": {"$ref": "#/definitions/models.Instrument"},
                "message": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.QuotesRequest": {
            "type": "object",
            "properties": {"symbols": {"type": "array", "items": {"type": "string"}}}
        },
        "handlers.QuotesResponse": {
            "type": "object",
            "properties": {
                "quotes": {"type": "object", "additionalProperties": {"$ref": "#/definitions/marketdata.QuoteSnapshot"}}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "maxLength": 255},
                "password": {"type": "string", "maxLength": 128},
                "username": {"type": "string", "maxLength": 50}
            }
        },
        "handlers.UpdateInstrumentRequest": {
            "type": "object",
            "required": ["exchange", "name"],
            "properties": {
                "exchange": {"type": "string", "maxLength": 50},
                "market_cap": {"type": "number"},
                "name": {"type": "string", "maxLength": 255},
                "sector": {"type": "string", "maxLength": 100}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.UserSummary"}
            }
        },
        "handlers.WatchlistRequest": {
            "type": "object",
            "properties": {"symbol": {"type": "string"}}
        },
        "marketdata.Candles": {
            "type": "object",
            "properties": {
                "close": {"type": "array", "items": {"type": "number"}},
                "high": {"type": "array", "items": {"type": "number"}},
                "low": {"type": "array", "items": {"type": "number"}},
                "open": {"type": "array", "items": {"type": "number"}},
                "resolution": {"type": "string"},
                "symbol": {"type": "string"},
                "timestamps": {"type": "array", "items": {"type": "integer"}},
                "volume": {"type": "array", "items": {"type": "number"}}
            }
        },
        "marketdata.CompanyNews": {
            "type": "object",
            "properties": {
                "news": {"type": "array", "items": {"$ref": "#/definitions/marketdata.NewsArticle"}},
                "symbol": {"type": "string"}
            }
        },
        "marketdata.CompanyProfile": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "currency": {"type": "string"},
                "exchange": {"type": "string"},
                "industry": {"type": "string"},
                "logo": {"type": "string"},
                "market_cap": {"type": "number"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "share_outstanding": {"type": "number"},
                "symbol": {"type": "string"},
                "ticker": {"type": "string"},
                "website": {"type": "string"}
            }
        },
        "marketdata.NewsArticle": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "datetime": {"type": "integer"},
                "headline": {"type": "string"},
                "id": {"type": "integer"},
                "image": {"type": "string"},
                "related": {"type": "string"},
                "source": {"type": "string"},
                "summary": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "marketdata.Quote": {
            "type": "object",
            "properties": {
                "change": {"type": "number"},
                "change_percent": {"type": "number"},
                "current_price": {"type": "number"},
                "high": {"type": "number"},
                "low": {"type": "number"},
                "open": {"type": "number"},
                "previous_close": {"type": "number"},
                "symbol": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "marketdata.QuoteSnapshot": {
            "type": "object",
            "properties": {
                "change": {"type": "number"},
                "change_percent": {"type": "number"},
                "current_price": {"type": "number"},
                "high": {"type": "number"},
                "low": {"type": "number"},
                "open": {"type": "number"},
                "previous_close": {"type": "number"}
            }
        },
        "marketdata.Stats": {
            "type": "object",
            "properties": {
                "10DayAvgVolume": {"type": "number"},
                "52WeekHigh": {"type": "number"},
                "52WeekLow": {"type": "number"},
                "symbol": {"type": "string"}
            }
        },
        "middleware.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"$ref": "#/definitions/middleware.ErrorDetail"}
            }
        },
        "models.Instrument": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "exchange": {"type": "string"},
                "id": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "market_cap": {"type": "number"},
                "name": {"type": "string"},
                "sector": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "models.PortfolioHolding": {
            "type": "object",
            "properties": {
                "avg_price": {"type": "number"},
                "created_at": {"type": "string"},
                "invested_amount": {"type": "number"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "symbol": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.UserSummary": {
            "type": "object",
            "properties": {
                "balance": {"type": "number"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "models.WatchlistItem": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "name": {"type": "string"},
                "symbol": {"type": "string"}
            }
        },
        "services.Prediction": {
            "type": "object",
            "properties": {
                "current_price": {"type": "number"},
                "predicted_next_day_price": {"type": "number"},
                "symbol": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo is the registered document. Host and BasePath may be
// overridden before the router starts serving.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Stock Trading API",
	Description:      "Instrument catalog, user watchlists and portfolios, and live market data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
