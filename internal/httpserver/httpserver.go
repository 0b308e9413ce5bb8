// Package httpserver manages server creation and api routing for the
// operational HTTP surface.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/infinity-otc/balancebot/internal/balancedelivery"
	"github.com/infinity-otc/balancebot/internal/middleware"
	"github.com/infinity-otc/balancebot/internal/userprefixdelivery"
	"github.com/infinity-otc/balancebot/pkg/configpkg"
	"github.com/infinity-otc/balancebot/pkg/currencypkg"
	"github.com/infinity-otc/balancebot/pkg/web"
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

// New creates Server type with instantiated handlers and routes.
func New(conn *sql.DB, balances balancedelivery.Service, registry userprefixdelivery.Service, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	balanceHandler := balancedelivery.NewHandler(balances)
	userHandler := userprefixdelivery.NewHandler(registry)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, web.Response{Data: "ok"})
	})

	engine.GET("/chats/:id/balance", balanceHandler.Get)
	engine.POST("/chats/:id/balance", balanceHandler.Load)
	engine.GET("/chats/:id/accounts", balanceHandler.ListAccounts)

	engine.GET("/users", userHandler.List)
	engine.POST("/users", userHandler.Create)

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
