package model

import (
	"time"

	"gorm.io/gorm"
)

// Cliente is the counterparty of outgoing (Salida) orders.
type Cliente struct {
	ID             uint      `gorm:"primaryKey"`
	NombreCliente  string    `gorm:"type:varchar(100);not null;index"`
	EmpresaCliente string    `gorm:"type:varchar(100);not null"`
	Rut            *string   `gorm:"type:varchar(20);uniqueIndex"`
	Direccion      *string   `gorm:"type:varchar(200)"`
	Telefono       *string   `gorm:"type:varchar(15)"`
	Email          *string   `gorm:"type:varchar(100)"`
	FechaCreacion  time.Time `gorm:"autoCreateTime"`
}

func (Cliente) TableName() string { return "cliente" }

func (c *Cliente) BeforeSave(_ *gorm.DB) error {
	if c.Email == nil {
		return nil
	}
	return ValidarEmail(*c.Email)
}
