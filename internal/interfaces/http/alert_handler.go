package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/inventario-retail/internal/application/alerts"
	"github.com/jmcastano/inventario-retail/internal/application/dto"
)

// AlertHandler maneja las alertas de stock y vencimiento (protegido).
type AlertHandler struct {
	uc *alerts.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Alertas activas
// @Description  Evalúa las reglas sobre el estado actual: sin stock, stock bajo,
// @Description  lotes/compras por vencer y variaciones inusuales.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}
