package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tenderdesk/business-api/internal/core/domain"
)

const notFoundHint = "check the URL and HTTP method; resource routes require an 'Authorization: Bearer <token>' header"

type notFoundResponse struct {
	Error     string `json:"error"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Hint      string `json:"hint"`
}

// Fallback answers any request no route matched. It is always registered
// last and never calls further handlers.
func Fallback(c echo.Context) error {
	req := c.Request()
	return c.JSON(http.StatusNotFound, notFoundResponse{
		Error:     domain.ErrUnmatchedRoute.Error(),
		Method:    req.Method,
		Path:      req.URL.Path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hint:      notFoundHint,
	})
}
