package model

import "time"

// Tipo values for MovimientoStock.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoReverso = "reverso"
)

// MovimientoStock records one stock change caused by a completed order.
type MovimientoStock struct {
	ID            uint      `gorm:"primaryKey"`
	ProductoID    uint      `gorm:"not null;index"`
	OrdenID       *uint     `gorm:"index"`
	Tipo          string    `gorm:"type:varchar(20);not null"`
	Cantidad      int       `gorm:"not null"` // signed: positive adds stock
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Fecha         time.Time `gorm:"autoCreateTime"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
