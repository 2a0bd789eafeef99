package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OrdenRequest is shared by create and update. InterlocutorID names a
// Proveedor for Entrada orders and a Cliente for Salida orders.
type OrdenRequest struct {
	TipoOrden      string              `json:"tipo_orden"      validate:"required"`
	InterlocutorID uint                `json:"interlocutor_id" validate:"required"`
	ValorOrden     *decimal.Decimal    `json:"valor_orden"`
	FechaOrden     string              `json:"fecha_orden"     validate:"required"`
	EstadoOrden    string              `json:"estado_orden"`
	Productos      []OrdenLineaRequest `json:"productos"       validate:"omitempty,dive"`
}

// OrdenLineaRequest is one product line. A missing PrecioUnitario takes the
// product's valor_compra (Entrada) or valor_venta (Salida).
type OrdenLineaRequest struct {
	ProductoID     uint             `json:"producto_id" validate:"required"`
	Cantidad       int              `json:"cantidad"    validate:"required,gt=0"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OrdenFilaResponse is one row of the home orders table.
type OrdenFilaResponse struct {
	ID           uint    `json:"ID"`
	Interlocutor string  `json:"Interlocutor"`
	Empresa      string  `json:"Empresa"`
	ValorDeOrden float64 `json:"Valor_de_Orden"`
	FechaDeOrden string  `json:"Fecha_de_Orden"`
	Estado       string  `json:"Estado"`
	Tipo         string  `json:"tipo"`
}

type OrdenResponse struct {
	ID             uint                 `json:"id"`
	TipoOrden      string               `json:"tipo_orden"`
	InterlocutorID uint                 `json:"interlocutor_id"`
	ValorOrden     string               `json:"valor_orden"`
	FechaOrden     string               `json:"fecha_orden"`
	EstadoOrden    string               `json:"estado_orden"`
	Productos      []OrdenLineaResponse `json:"productos"`
}

type OrdenLineaResponse struct {
	ProductoID     uint    `json:"producto_id"`
	Codigo         string  `json:"codigo"`
	Nombre         string  `json:"nombre"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Subtotal       float64 `json:"subtotal"`
}

type ClienteOpcion struct {
	ID             uint   `json:"id"`
	NombreCliente  string `json:"nombre_cliente"`
	EmpresaCliente string `json:"empresa_cliente"`
}

type ProveedorOpcion struct {
	ID               uint   `json:"id"`
	NombreProveedor  string `json:"nombre_proveedor"`
	EmpresaProveedor string `json:"empresa_proveedor"`
}
