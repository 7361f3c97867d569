package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/inventario-retail/internal/application/dto"
	"github.com/jmcastano/inventario-retail/internal/application/reports"
	"github.com/jmcastano/inventario-retail/internal/infrastructure/excel"
	"github.com/jmcastano/inventario-retail/internal/infrastructure/pdf"
)

// ReportHandler maneja los reportes agregados y sus exportaciones (protegido).
type ReportHandler struct {
	uc     *reports.ReportUseCase
	pdfGen *pdf.StockReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase, pdfGen *pdf.StockReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdfGen: pdfGen}
}

// MonthlySales godoc
// @Summary      Ventas por mes calendario (años sumados)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MonthlySalesDTO
// @Router       /api/reports/monthly-sales [get]
func (h *ReportHandler) MonthlySales(c *fiber.Ctx) error {
	out, err := h.uc.MonthlySales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MonthlySalesExport godoc
// @Summary      Exportar ventas mensuales a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/monthly-sales/export [get]
func (h *ReportHandler) MonthlySalesExport(c *fiber.Ctx) error {
	report, err := h.uc.MonthlySales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := excel.MonthlySalesXLSX(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ventas-mensuales.xlsx"`)
	return c.Send(data)
}

// PurchasesVsSales godoc
// @Summary      Compras vs ventas por mes calendario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchasesVsSalesDTO
// @Router       /api/reports/purchases-vs-sales [get]
func (h *ReportHandler) PurchasesVsSales(c *fiber.Ctx) error {
	out, err := h.uc.PurchasesVsSales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PurchasesVsSalesExport godoc
// @Summary      Exportar compras vs ventas a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/purchases-vs-sales/export [get]
func (h *ReportHandler) PurchasesVsSalesExport(c *fiber.Ctx) error {
	report, err := h.uc.PurchasesVsSales(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := excel.PurchasesVsSalesXLSX(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="compras-vs-ventas.xlsx"`)
	return c.Send(data)
}

// TopProducts godoc
// @Summary      Top 5 productos más vendidos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TopProductDTO
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TotalStock godoc
// @Summary      Unidades disponibles en todo el inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/reports/stock-total [get]
func (h *ReportHandler) TotalStock(c *fiber.Ctx) error {
	total, err := h.uc.TotalStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total_quantity": total})
}

// StockValue godoc
// @Summary      Valorización del inventario al precio vigente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockValueReportDTO
// @Router       /api/reports/stock-value [get]
func (h *ReportHandler) StockValue(c *fiber.Ctx) error {
	out, err := h.uc.StockValue(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StockValueExport godoc
// @Summary      Exportar valorización de inventario a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock-value/export [get]
func (h *ReportHandler) StockValueExport(c *fiber.Ctx) error {
	report, err := h.uc.StockValue(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.pdfGen.GenerateStockValuePDF(report, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="valorizacion-inventario.pdf"`)
	return c.Send(data)
}
