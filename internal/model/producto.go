package model

import (
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estado values for Producto.
const (
	ProductoActivo        = "Activo"
	ProductoInactivo      = "Inactivo"
	ProductoDescontinuado = "Descontinuado"
)

var EstadosProducto = []string{ProductoActivo, ProductoInactivo, ProductoDescontinuado}

// Producto is a garment held in inventory.
type Producto struct {
	ID                 uint            `gorm:"primaryKey"`
	Codigo             string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Nombre             string          `gorm:"type:varchar(100);not null;index"`
	Descripcion        *string         `gorm:"type:text"`
	TipoPrenda         string          `gorm:"type:varchar(50);not null"`
	Talla              *string         `gorm:"type:varchar(20)"`
	Color              *string         `gorm:"type:varchar(30)"`
	Marca              *string         `gorm:"type:varchar(50)"`
	ValorCompra        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ValorVenta         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockActual        int             `gorm:"not null;default:0"`
	StockMinimo        int             `gorm:"not null"`
	Estado             string          `gorm:"type:varchar(20);not null;default:'Activo'"`
	FechaCreacion      time.Time       `gorm:"autoCreateTime"`
	FechaActualizacion time.Time       `gorm:"autoUpdateTime"`
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeSave(_ *gorm.DB) error {
	if p.ValorCompra.IsNegative() {
		return apierror.Validacion("El valor_compra no puede ser negativo")
	}
	if p.ValorVenta.IsNegative() {
		return apierror.Validacion("El valor_venta no puede ser negativo")
	}
	if p.StockActual < 0 {
		return apierror.Validacion("El stock_actual no puede ser negativo")
	}
	if p.StockMinimo < 0 {
		return apierror.Validacion("El stock_minimo no puede ser negativo")
	}
	if p.Estado != "" && !contiene(EstadosProducto, p.Estado) {
		return apierror.Validacion("Estado de producto inválido")
	}
	return nil
}

// Margen returns the markup percentage over valor_compra, zero when the
// purchase value is zero.
func (p *Producto) Margen() decimal.Decimal {
	if p.ValorCompra.IsZero() {
		return decimal.Zero
	}
	return p.ValorVenta.Sub(p.ValorCompra).Div(p.ValorCompra).Mul(decimal.NewFromInt(100)).Round(2)
}

// BajoStock reports whether the product is at or under its minimum.
func (p *Producto) BajoStock() bool { return p.StockActual <= p.StockMinimo }
