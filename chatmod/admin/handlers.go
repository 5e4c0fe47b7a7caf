package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chanops/skimmer/chatmod/config"
)

type GenericStatus struct {
	Status  string `json:"status"`
	Daemon  string `json:"daemon"`
	Message string `json:"message,omitempty"`
}

type channelList struct {
	Channels []string `json:"channels"`
}

func (srv *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	var errorMessage string
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		errorMessage = fmt.Sprintf("%s", he.Message)
	}
	if code >= 500 {
		srv.logger.Warn("admin-http-internal-error", "err", err)
	}
	if c.Response().Committed {
		return
	}
	c.JSON(code, GenericStatus{Status: "error", Daemon: "skimmer", Message: errorMessage})
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	return c.JSON(200, GenericStatus{Status: "ok", Daemon: "skimmer"})
}

func (srv *Server) HandleListChannels(c echo.Context) error {
	channels, err := srv.configs.ListChannels(c.Request().Context())
	if err != nil {
		return err
	}
	if channels == nil {
		channels = []string{}
	}
	return c.JSON(200, channelList{Channels: channels})
}

func (srv *Server) HandleGetConfig(c echo.Context) error {
	compiled, err := srv.configs.GetConfig(c.Request().Context(), c.Param("channelID"))
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "channel has no moderation config")
		}
		return err
	}
	return c.JSON(200, compiled.Cfg)
}

func (srv *Server) HandlePutConfig(c echo.Context) error {
	var cfg config.ChannelConfig
	if err := c.Bind(&cfg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed config body")
	}
	// validate here so the caller sees the field problems, not a bare 500
	if err := cfg.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := srv.configs.PutConfig(c.Request().Context(), c.Param("channelID"), &cfg); err != nil {
		return err
	}
	return c.JSON(200, GenericStatus{Status: "ok", Daemon: "skimmer"})
}

func (srv *Server) HandleDeleteConfig(c echo.Context) error {
	err := srv.configs.DeleteConfig(c.Request().Context(), c.Param("channelID"))
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "channel has no moderation config")
		}
		return err
	}
	return c.JSON(200, GenericStatus{Status: "ok", Daemon: "skimmer"})
}
