package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// RootHandler serves the service banner at GET /.
type RootHandler struct {
	version string
}

func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

type rootResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Index godoc
//
// @Summary      Service banner
// @Tags         system
// @Produce      json
// @Success      200  {object}  rootResponse
// @Router       / [get]
func (h *RootHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, rootResponse{
		Message:   "Business management API",
		Version:   h.version,
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
