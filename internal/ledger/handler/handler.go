package handler

import (
	"net/http"

	"github.com/hardstock/inventory-service/internal/ledger"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	uc     ledger.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc ledger.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{uc: uc, logger: log}
}

func (h *InventoryHandler) List(c echo.Context) error {
	products := h.uc.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

func (h *InventoryHandler) LowStock(c echo.Context) error {
	items := h.uc.LowStock()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":     items,
		"threshold": h.uc.Threshold(),
	})
}
