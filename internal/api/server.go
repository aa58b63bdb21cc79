// Package api поднимает HTTP-сервер читающей стороны:
// список репутаций для внешней статистики и liveness-проба.
package api

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"reputation-bot/internal/features/reputation"
)

// ReputationLister — читающий контракт сервиса репутации.
type ReputationLister interface {
	List(ctx context.Context) ([]reputation.Reputation, error)
}

type Server struct {
	echo        *echo.Echo
	reputations ReputationLister
	port        int
}

// NewServer создаёт HTTP-сервер и регистрирует маршруты.
func NewServer(reputations ReputationLister, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:        e,
		reputations: reputations,
		port:        port,
	}
	srv.registerRoutes()

	return srv
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/reputations", s.handleListReputations)
}

func (s *Server) Start() error {
	log.Infof("HTTP-сервер слушает порт %d", s.port)
	return s.echo.Start(fmt.Sprintf(":%d", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
