package model

import (
	"time"

	"gorm.io/gorm"
)

// Sexo values accepted for Usuario.Sexo.
const (
	SexoMasculino = "M"
	SexoFemenino  = "F"
	SexoOtro      = "Otro"
)

// Estado values for Cuenta.Estado.
const (
	CuentaActiva   = "Activo"
	CuentaInactiva = "Inactivo"
)

// Usuario stores an employee's personal data. Login credentials live in Cuenta.
type Usuario struct {
	ID              uint      `gorm:"primaryKey"`
	TipoUsuario     string    `gorm:"type:varchar(50);not null"`
	Sexo            string    `gorm:"type:varchar(10);not null"`
	NombreCompleto  string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	FechaNacimiento time.Time `gorm:"type:date;not null"`
	DireccionID     *uint     `gorm:"index"`
	Rut             string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	NumeroCasa      *string   `gorm:"type:varchar(10)"`
	Telefono        *string   `gorm:"type:varchar(15)"`
	FechaCreacion   time.Time `gorm:"autoCreateTime"`

	Direccion *Direccion `gorm:"foreignKey:DireccionID"`
	Cuenta    *Cuenta    `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
}

func (Usuario) TableName() string { return "usuario" }

// BeforeSave rejects malformed emails on every write path.
func (u *Usuario) BeforeSave(_ *gorm.DB) error {
	return ValidarEmail(u.Email)
}

// Cuenta is the single login account of a Usuario. Contrasena always holds a
// bcrypt hash.
type Cuenta struct {
	ID            uint      `gorm:"primaryKey"`
	UsuarioID     uint      `gorm:"uniqueIndex;not null"`
	NombreUsuario string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Contrasena    string    `gorm:"type:varchar(255);not null"`
	Estado        string    `gorm:"type:varchar(10);not null;default:'Activo'"`
	Cargo         *string   `gorm:"type:varchar(50)"`
	FechaCreacion time.Time `gorm:"autoCreateTime"`
	UltimoAcceso  *time.Time
}

func (Cuenta) TableName() string { return "cuenta" }

// Permiso is a (modulo, accion) capability.
type Permiso struct {
	ID          uint    `gorm:"primaryKey"`
	Modulo      string  `gorm:"type:varchar(50);not null;uniqueIndex:unique_modulo_accion"`
	Accion      string  `gorm:"type:varchar(50);not null;uniqueIndex:unique_modulo_accion"`
	Descripcion *string `gorm:"type:varchar(200)"`
}

func (Permiso) TableName() string { return "permisos" }

// UsuarioPermiso grants a Permiso to a Usuario.
type UsuarioPermiso struct {
	ID              uint      `gorm:"primaryKey"`
	UsuarioID       uint      `gorm:"not null;uniqueIndex:unique_usuario_permiso"`
	PermisoID       uint      `gorm:"not null;uniqueIndex:unique_usuario_permiso"`
	FechaAsignacion time.Time `gorm:"autoCreateTime"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	Permiso *Permiso `gorm:"foreignKey:PermisoID;constraint:OnDelete:CASCADE"`
}

func (UsuarioPermiso) TableName() string { return "usuario_permisos" }
