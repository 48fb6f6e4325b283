package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenderdesk/business-api/internal/api/metrics"
	"github.com/tenderdesk/business-api/internal/core/ports"
)

// ResourceHandler exposes CRUD endpoints for one resource collection.
// Service errors are returned as-is and rendered by the global error handler.
type ResourceHandler[T any] struct {
	name    string
	service ports.ResourceService[T]
}

func NewResourceHandler[T any](name string, service ports.ResourceService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{name: name, service: service}
}

// Register mounts the CRUD routes on g. guard is applied to mutating routes only.
func (h *ResourceHandler[T]) Register(g *echo.Group, guard ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, guard...)
	g.PUT("/:id", h.Update, guard...)
	g.DELETE("/:id", h.Delete, guard...)
}

// List handles GET /<resource>?page=&limit=.
//
// @Summary      List records
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "1-based page"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  map[string]any
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /tenders [get]
func (h *ResourceHandler[T]) List(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var page, limit int
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	result, err := h.service.List(c.Request().Context(), actor, page, limit)
	if err != nil {
		return err
	}

	h.count("list")
	return c.JSON(http.StatusOK, result)
}

// Get handles GET /<resource>/:id.
//
// @Summary      Get a record by id
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tenders/{id} [get]
func (h *ResourceHandler[T]) Get(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rec, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	h.count("get")
	return c.JSON(http.StatusOK, rec)
}

// Create handles POST /<resource>.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /tenders [post]
func (h *ResourceHandler[T]) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rec, err := h.bind(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), actor, rec)
	if err != nil {
		return err
	}

	h.count("create")
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /<resource>/:id.
//
// @Summary      Replace a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record id"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /tenders/{id} [put]
func (h *ResourceHandler[T]) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rec, err := h.bind(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), rec)
	if err != nil {
		return err
	}

	h.count("update")
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /<resource>/:id.
//
// @Summary      Delete a record
// @Tags         resources
// @Security     BearerAuth
// @Param        id   path  string  true  "Record id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tenders/{id} [delete]
func (h *ResourceHandler[T]) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	h.count("delete")
	return c.NoContent(http.StatusNoContent)
}

func (h *ResourceHandler[T]) bind(c echo.Context) (*T, error) {
	rec := new(T)
	if err := c.Bind(rec); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(rec); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return rec, nil
}

func (h *ResourceHandler[T]) count(op string) {
	metrics.ResourceOperationsTotal.WithLabelValues(h.name, op).Inc()
}
