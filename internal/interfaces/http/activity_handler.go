package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/inventario-retail/internal/application/activity"
	"github.com/jmcastano/inventario-retail/internal/application/dto"
)

// ActivityHandler maneja el feed de actividad reciente (protegido).
type ActivityHandler struct {
	uc *activity.FeedUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *activity.FeedUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Recent godoc
// @Summary      Actividad reciente
// @Description  Última venta, compra, actualización de stock y cambio de precio,
// @Description  en orden cronológico descendente.
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/activity [get]
func (h *ActivityHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(out), "activity": out})
}
