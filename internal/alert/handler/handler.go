package handler

import (
	"net/http"
	"strconv"

	"github.com/hardstock/inventory-service/internal/alert"
	"github.com/hardstock/inventory-service/internal/alert/dto"
	"github.com/hardstock/inventory-service/internal/auth"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/hardstock/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
)

type AlertHandler struct {
	uc     alert.UseCase
	logger logger.ZapLogger
}

func NewAlertHandler(uc alert.UseCase, log logger.ZapLogger) *AlertHandler {
	return &AlertHandler{uc: uc, logger: log}
}

func (h *AlertHandler) List(c echo.Context) error {
	filters := &dto.AlertFilters{
		Type:     c.QueryParam("type"),
		Priority: c.QueryParam("priority"),
	}
	if v := c.QueryParam("read"); v != "" {
		if read, err := strconv.ParseBool(v); err == nil {
			filters.Read = &read
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	alerts, err := h.uc.List(c.Request().Context(), filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *AlertHandler) MarkRead(c echo.Context) error {
	if err := h.uc.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type acknowledgeRequest struct {
	Notes string `json:"notes"`
}

func (h *AlertHandler) Acknowledge(c echo.Context) error {
	userID := auth.GetUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authenticated user required")
	}

	var req acknowledgeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.uc.Acknowledge(c.Request().Context(), c.Param("id"), userID, req.Notes); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AlertHandler) Evaluate(c echo.Context) error {
	var data dto.RuleData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	created, err := h.uc.EvaluateRules(c.Request().Context(), &data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, a := range created {
		prometheus.AlertsCreatedTotal.WithLabelValues(a.AlertType).Inc()
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": created,
		"total":  len(created),
	})
}
