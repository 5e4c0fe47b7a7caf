// HTTP API for managing per-channel moderation config.
//
// Intended to sit behind an internal load balancer, not on the public
// internet: auth is a single static bearer token.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/chanops/skimmer/chatmod/config"
)

type Server struct {
	echo    *echo.Echo
	httpd   *http.Server
	logger  *slog.Logger
	configs config.Store
	token   string
}

type Config struct {
	Logger *slog.Logger
	Bind   string
	// static bearer token for everything under /api
	AdminToken string
	Configs    config.Store
}

func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AdminToken == "" {
		return nil, fmt.Errorf("admin API requires an admin token")
	}
	if cfg.Configs == nil {
		return nil, fmt.Errorf("admin API requires a config store")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("skimmer_admin"))
	e.Use(middleware.BodyLimit("1M"))

	srv := &Server{
		echo:    e,
		logger:  logger,
		configs: cfg.Configs,
		token:   cfg.AdminToken,
	}

	var (
		httpTimeout        = 1 * time.Minute
		httpMaxHeaderBytes = 1 * (1024 * 1024)
	)
	srv.httpd = &http.Server{
		Handler:        srv,
		Addr:           cfg.Bind,
		WriteTimeout:   httpTimeout,
		ReadTimeout:    httpTimeout,
		MaxHeaderBytes: httpMaxHeaderBytes,
	}

	e.HTTPErrorHandler = srv.errorHandler
	e.GET("/healthz", srv.HandleHealthCheck)

	api := e.Group("/api", srv.checkAdminAuth)
	api.GET("/channels", srv.HandleListChannels)
	api.GET("/channels/:channelID/moderation", srv.HandleGetConfig)
	api.PUT("/channels/:channelID/moderation", srv.HandlePutConfig)
	api.DELETE("/channels/:channelID/moderation", srv.HandleDeleteConfig)

	return srv, nil
}

func (srv *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	srv.echo.ServeHTTP(rw, req)
}

// RunAPI blocks serving the admin API until Shutdown is called.
func (srv *Server) RunAPI() error {
	srv.logger.Info("starting admin API", "bind", srv.httpd.Addr)
	if err := srv.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.httpd.Shutdown(ctx)
}

func (srv *Server) checkAdminAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authheader := c.Request().Header.Get("Authorization")
		pref := "Bearer "
		if !strings.HasPrefix(authheader, pref) {
			return echo.ErrForbidden
		}
		token := authheader[len(pref):]
		if subtle.ConstantTimeCompare([]byte(token), []byte(srv.token)) != 1 {
			return echo.ErrForbidden
		}
		return next(c)
	}
}
