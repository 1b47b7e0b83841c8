package handler

import (
	"net/http"
	"strconv"

	"github.com/hardstock/inventory-service/internal/movement"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

const defaultLimit = 100

type MovementHandler struct {
	uc     movement.UseCase
	logger logger.ZapLogger
}

func NewMovementHandler(uc movement.UseCase, log logger.ZapLogger) *MovementHandler {
	return &MovementHandler{uc: uc, logger: log}
}

func (h *MovementHandler) History(c echo.Context) error {
	productID := c.Param("id")

	movements, err := h.uc.History(c.Request().Context(), productID, limitParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"movements":  movements,
	})
}

func (h *MovementHandler) Reserved(c echo.Context) error {
	productID := c.Param("id")

	reserved, err := h.uc.ReservedQuantity(c.Request().Context(), productID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"reserved":   reserved,
	})
}

func (h *MovementHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	movements, err := h.uc.Search(c.Request().Context(), query, limitParam(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
	})
}

func limitParam(c echo.Context) int {
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			return limit
		}
	}
	return defaultLimit
}
