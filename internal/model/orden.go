package model

import (
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TipoOrden values. Entrada is a purchase from a Proveedor; Salida is a sale
// to a Cliente.
const (
	TipoEntrada = "Entrada"
	TipoSalida  = "Salida"
)

// EstadoOrden values.
const (
	EstadoPendiente  = "Pendiente"
	EstadoProcesada  = "Procesada"
	EstadoCancelada  = "Cancelada"
	EstadoCompletada = "Completada"
)

var (
	TiposOrden   = []string{TipoEntrada, TipoSalida}
	EstadosOrden = []string{EstadoPendiente, EstadoProcesada, EstadoCancelada, EstadoCompletada}
)

// Orden is a purchase or sale. Exactly one counterparty is set and it
// matches TipoOrden.
type Orden struct {
	ID          uint            `gorm:"primaryKey"`
	ClienteID   *uint           `gorm:"index"`
	ProveedorID *uint           `gorm:"index"`
	ValorOrden  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	FechaOrden  time.Time       `gorm:"type:date;not null;index"`
	EstadoOrden string          `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	TipoOrden   string          `gorm:"type:varchar(10);not null"`

	Cliente   *Cliente        `gorm:"foreignKey:ClienteID;constraint:OnDelete:SET NULL"`
	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID;constraint:OnDelete:SET NULL"`
	Productos []OrdenProducto `gorm:"foreignKey:OrdenID;constraint:OnDelete:CASCADE"`
}

func (Orden) TableName() string { return "orden" }

// Validar checks enum membership and type/party consistency.
func (o *Orden) Validar() error {
	if !contiene(TiposOrden, o.TipoOrden) {
		return apierror.Validacion("Tipo de orden inválido")
	}
	if o.EstadoOrden != "" && !contiene(EstadosOrden, o.EstadoOrden) {
		return apierror.Validacion("Estado de orden inválido")
	}
	switch o.TipoOrden {
	case TipoEntrada:
		if o.ClienteID != nil {
			return apierror.Validacion("Una orden de entrada no puede tener cliente")
		}
		if o.ProveedorID == nil {
			return apierror.Validacion("Una orden de entrada requiere un proveedor")
		}
	case TipoSalida:
		if o.ProveedorID != nil {
			return apierror.Validacion("Una orden de salida no puede tener proveedor")
		}
		if o.ClienteID == nil {
			return apierror.Validacion("Una orden de salida requiere un cliente")
		}
	}
	if o.ValorOrden.IsNegative() {
		return apierror.Validacion("El valor de la orden no puede ser negativo")
	}
	return nil
}

func (o *Orden) BeforeSave(_ *gorm.DB) error { return o.Validar() }

// InterlocutorID returns the id of whichever counterparty the order has.
func (o *Orden) InterlocutorID() uint {
	if o.ClienteID != nil {
		return *o.ClienteID
	}
	if o.ProveedorID != nil {
		return *o.ProveedorID
	}
	return 0
}

// OrdenProducto is one product line of an order.
type OrdenProducto struct {
	ID             uint            `gorm:"primaryKey"`
	OrdenID        uint            `gorm:"not null;index"`
	ProductoID     uint            `gorm:"not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (OrdenProducto) TableName() string { return "orden_producto" }

func (l *OrdenProducto) BeforeSave(_ *gorm.DB) error {
	if l.Cantidad <= 0 {
		return apierror.Validacion("La cantidad debe ser mayor a 0")
	}
	if l.PrecioUnitario.IsNegative() {
		return apierror.Validacion("El precio unitario no puede ser negativo")
	}
	return nil
}

func contiene(valores []string, v string) bool {
	for _, x := range valores {
		if x == v {
			return true
		}
	}
	return false
}
