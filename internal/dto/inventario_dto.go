package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Codigo      string           `json:"codigo"       validate:"required,max=50"`
	Nombre      string           `json:"nombre"       validate:"required,max=100"`
	Descripcion *string          `json:"descripcion"`
	TipoPrenda  string           `json:"tipo_prenda"  validate:"required,max=50"`
	Talla       *string          `json:"talla"        validate:"omitempty,max=20"`
	Color       *string          `json:"color"        validate:"omitempty,max=30"`
	Marca       *string          `json:"marca"        validate:"omitempty,max=50"`
	ValorCompra *decimal.Decimal `json:"valor_compra"`
	ValorVenta  *decimal.Decimal `json:"valor_venta"`
	StockActual *int             `json:"stock_actual" validate:"omitempty,min=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	Estado      string           `json:"estado"       validate:"omitempty,oneof=Activo Inactivo Descontinuado"`
}

// ActualizarProductoRequest is a partial update; codigo and stock_actual
// are not editable here.
type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=1,max=100"`
	Descripcion *string          `json:"descripcion"`
	TipoPrenda  *string          `json:"tipo_prenda"  validate:"omitempty,min=1,max=50"`
	Talla       *string          `json:"talla"        validate:"omitempty,max=20"`
	Color       *string          `json:"color"        validate:"omitempty,max=30"`
	Marca       *string          `json:"marca"        validate:"omitempty,max=50"`
	ValorCompra *decimal.Decimal `json:"valor_compra"`
	ValorVenta  *decimal.Decimal `json:"valor_venta"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	Estado      *string          `json:"estado"       validate:"omitempty,oneof=Activo Inactivo Descontinuado"`
}

// ProductoListaFilter is bound from the query string of the list endpoint.
type ProductoListaFilter struct {
	Estado    string `form:"estado"`
	SortBy    string `form:"sort_by"`
	Direction string `form:"direction"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResumen struct {
	ID          uint   `json:"id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	TipoPrenda  string `json:"tipo_prenda"`
	StockActual int    `json:"stock_actual"`
	Estado      string `json:"estado"`
}

type ProductoListaResponse struct {
	Productos []ProductoResumen `json:"productos"`
}

type ProductoInfo struct {
	ID                 uint    `json:"id"`
	Codigo             string  `json:"codigo"`
	Nombre             string  `json:"nombre"`
	Descripcion        *string `json:"descripcion"`
	TipoPrenda         string  `json:"tipo_prenda"`
	Talla              *string `json:"talla"`
	Color              *string `json:"color"`
	Marca              *string `json:"marca"`
	ValorCompra        float64 `json:"valor_compra"`
	ValorVenta         float64 `json:"valor_venta"`
	StockActual        int     `json:"stock_actual"`
	StockMinimo        int     `json:"stock_minimo"`
	Estado             string  `json:"estado"`
	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion string  `json:"fecha_actualizacion"`
}

type ProductoEstadisticas struct {
	TotalOrdenes        int     `json:"total_ordenes"`
	UltimaActualizacion string  `json:"ultima_actualizacion"`
	Margen              float64 `json:"margen"`
}

type ProductoOrden struct {
	ID             uint    `json:"id"`
	Fecha          string  `json:"fecha"`
	Tipo           string  `json:"tipo"`
	Estado         string  `json:"estado"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

type ProductoDetalleResponse struct {
	InfoProducto ProductoInfo         `json:"info_producto"`
	Estadisticas ProductoEstadisticas `json:"estadisticas"`
	Ordenes      []ProductoOrden      `json:"ordenes"`
}

// AlertaStockResponse is one product at or under its minimum stock.
type AlertaStockResponse struct {
	ID          uint   `json:"id"`
	Codigo      string `json:"codigo"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
	Faltante    int    `json:"faltante"`
}
