// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-arvc/coin-ledger/internal/exchangedelivery"
	"github.com/go-arvc/coin-ledger/internal/exchangerate"
	"github.com/go-arvc/coin-ledger/internal/middleware"
	"github.com/go-arvc/coin-ledger/internal/movementdelivery"
	"github.com/go-arvc/coin-ledger/internal/movementrepo"
	"github.com/go-arvc/coin-ledger/internal/movementservice"
	"github.com/go-arvc/coin-ledger/pkg/configpkg"
	"github.com/go-arvc/coin-ledger/pkg/currencypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	movementRepo := movementrepo.NewRepoPGS(conn)
	movementService := movementservice.New(movementRepo)
	movementHandler := movementdelivery.NewHandler(movementService)

	coinAPIURL := config.CoinAPIURL
	if coinAPIURL == "" {
		coinAPIURL = exchangerate.DefaultCoinAPIURL
	}

	var rateProvider exchangerate.Provider = exchangerate.NewCoinAPI(coinAPIURL, config.CoinAPIKey)

	if config.RedisAddress != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddress})
		rateProvider = exchangerate.NewCachedProvider(rateProvider, exchangerate.NewRedisCache(rdb), config.RateCacheTTL)
	}

	exchangeService := exchangerate.New(rateProvider)
	exchangeHandler := exchangedelivery.NewHandler(exchangeService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/movements", movementHandler.Create)
	engine.GET("/movements", movementHandler.List)
	engine.GET("/balances/:currency", movementHandler.Balance)

	engine.GET("/rates", exchangeHandler.Table)
	engine.GET("/rates/convert", exchangeHandler.Convert)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
