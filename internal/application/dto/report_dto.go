package dto

import "github.com/shopspring/decimal"

// MonthlySalesDTO total vendido en un mes calendario (años sumados).
type MonthlySalesDTO struct {
	Month         int    `json:"month"`
	Label         string `json:"label"`
	TotalQuantity int64  `json:"total_quantity"`
}

// PurchasesVsSalesDTO compras y ventas de un mes calendario (años sumados).
type PurchasesVsSalesDTO struct {
	Month     int    `json:"month"`
	Label     string `json:"label"`
	Purchases int64  `json:"purchases"`
	Sales     int64  `json:"sales"`
}

// TopProductDTO producto del top de ventas.
type TopProductDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// StockValueLineDTO valorización de stock de un producto.
type StockValueLineDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"`
}

// StockValueReportDTO reporte de valorización: precio vigente × stock disponible
// por producto. Los productos sin precio vigente valen cero.
type StockValueReportDTO struct {
	TotalQuantity int64               `json:"total_quantity"`
	TotalValue    decimal.Decimal     `json:"total_value"`
	Lines         []StockValueLineDTO `json:"lines"`
}
