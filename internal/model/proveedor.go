package model

import (
	"time"

	"gorm.io/gorm"
)

// Proveedor is the counterparty of incoming (Entrada) orders.
type Proveedor struct {
	ID               uint      `gorm:"primaryKey"`
	NombreProveedor  string    `gorm:"type:varchar(100);not null;index"`
	EmpresaProveedor string    `gorm:"type:varchar(100);not null"`
	Rut              *string   `gorm:"type:varchar(20);uniqueIndex"`
	Direccion        *string   `gorm:"type:varchar(200)"`
	Telefono         *string   `gorm:"type:varchar(15)"`
	Email            *string   `gorm:"type:varchar(100)"`
	FechaCreacion    time.Time `gorm:"autoCreateTime"`
}

func (Proveedor) TableName() string { return "proveedor" }

func (p *Proveedor) BeforeSave(_ *gorm.DB) error {
	if p.Email == nil {
		return nil
	}
	return ValidarEmail(*p.Email)
}
