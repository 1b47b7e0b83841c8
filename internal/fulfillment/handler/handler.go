package handler

import (
	"errors"
	"net/http"

	"github.com/hardstock/inventory-service/internal/fulfillment"
	"github.com/hardstock/inventory-service/internal/fulfillment/dto"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/hardstock/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FulfillmentHandler struct {
	uc     fulfillment.UseCase
	logger logger.ZapLogger
}

func NewFulfillmentHandler(uc fulfillment.UseCase, log logger.ZapLogger) *FulfillmentHandler {
	return &FulfillmentHandler{uc: uc, logger: log}
}

type fulfillRequest struct {
	Items []dto.LineItemInput `json:"items"`
}

func (h *FulfillmentHandler) FulfillOrder(c echo.Context) error {
	orderID := c.Param("id")

	var req fulfillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.uc.FulfillOrder(c.Request().Context(), orderID, req.Items)
	if err != nil {
		return h.mapError(c, err)
	}

	outcome := "fulfilled"
	if result.AlreadyProcessed {
		outcome = "noop"
	}
	prometheus.FulfillmentsTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, result)
}

func (h *FulfillmentHandler) FulfillAdHoc(c echo.Context) error {
	var req fulfillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.uc.FulfillAdHoc(c.Request().Context(), req.Items)
	if err != nil {
		return h.mapError(c, err)
	}

	prometheus.FulfillmentsTotal.WithLabelValues("fulfilled").Inc()
	return c.JSON(http.StatusOK, result)
}

func (h *FulfillmentHandler) mapError(c echo.Context, err error) error {
	var insufficient *fulfillment.InsufficientStockError
	if errors.As(err, &insufficient) {
		prometheus.FulfillmentsTotal.WithLabelValues("insufficient_stock").Inc()
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":      "insufficient_stock",
			"message":    insufficient.Error(),
			"product_id": insufficient.ProductID,
			"requested":  insufficient.Requested,
			"available":  insufficient.Available,
		})
	}

	var notFound *fulfillment.NotFoundError
	if errors.As(err, &notFound) {
		prometheus.FulfillmentsTotal.WithLabelValues("not_found").Inc()
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error":      "product_not_found",
			"product_id": notFound.ProductID,
		})
	}

	if errors.Is(err, fulfillment.ErrOrderNotFound) {
		prometheus.FulfillmentsTotal.WithLabelValues("not_found").Inc()
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	if errors.Is(err, fulfillment.ErrEmptyOrder) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var commit *fulfillment.CommitError
	if errors.As(err, &commit) {
		prometheus.FulfillmentsTotal.WithLabelValues("error").Inc()
		h.logger.Error("fulfillment commit rejected", zap.Error(commit.Err))
		return echo.NewHTTPError(http.StatusInternalServerError, "fulfillment could not be committed")
	}

	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
