package repository

import (
	"context"
	"time"

	"github.com/glYohanny/Gucci/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EstadisticaInterlocutor aggregates the orders of one counterparty.
type EstadisticaInterlocutor struct {
	TotalOrdenes int64
	ValorTotal   decimal.Decimal
	UltimaOrden  *time.Time
}

// TopInterlocutor is one row of the top-by-value ranking.
type TopInterlocutor struct {
	ID         uint
	Nombre     string
	Empresa    string
	TotalValor decimal.Decimal
}

// OrdenDeProducto is an order line joined with its order header.
type OrdenDeProducto struct {
	OrdenID        uint
	FechaOrden     time.Time
	TipoOrden      string
	EstadoOrden    string
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

type OrdenRepository interface {
	Create(ctx context.Context, o *model.Orden) error
	// FindByID preloads the counterparty and the product lines.
	FindByID(ctx context.Context, id uint) (*model.Orden, error)
	// ListAll preloads both counterparties, newest first.
	ListAll(ctx context.Context) ([]model.Orden, error)
	Update(ctx context.Context, o *model.Orden) error
	Delete(ctx context.Context, id uint) error

	ListByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) ([]model.Orden, error)
	PageByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint, page, perPage int) ([]model.Orden, int64, error)
	CountByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) (int64, error)
	EstadisticasInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*EstadisticaInterlocutor, error)
	TopInterlocutores(ctx context.Context, tipo model.TipoInterlocutor, limit int) ([]TopInterlocutor, error)

	ReplaceLineas(ctx context.Context, ordenID uint, lineas []model.OrdenProducto) error
	CountLineasByProducto(ctx context.Context, productoID uint) (int64, error)
	OrdenesDeProducto(ctx context.Context, productoID uint, limit int) ([]OrdenDeProducto, error)

	WithTx(tx *gorm.DB) OrdenRepository
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) WithTx(tx *gorm.DB) OrdenRepository { return &ordenRepo{db: tx} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func fkColumna(tipo model.TipoInterlocutor) string {
	if tipo == model.InterlocutorProveedor {
		return "proveedor_id"
	}
	return "cliente_id"
}

func (r *ordenRepo) Create(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Omit("Cliente", "Proveedor", "Productos").Create(o).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uint) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Proveedor").
		Preload("Productos.Producto").
		First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) ListAll(ctx context.Context) ([]model.Orden, error) {
	var ordenes []model.Orden
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Proveedor").
		Order("fecha_orden DESC, id DESC").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) Update(ctx context.Context, o *model.Orden) error {
	return r.db.WithContext(ctx).Omit("Cliente", "Proveedor", "Productos").Save(o).Error
}

// Delete removes the order and its lines.
func (r *ordenRepo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("orden_id = ?", id).Delete(&model.OrdenProducto{}).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Orden{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ordenRepo) ListByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) ([]model.Orden, error) {
	var ordenes []model.Orden
	err := r.db.WithContext(ctx).
		Where(fkColumna(tipo)+" = ?", id).
		Order("fecha_orden DESC, id DESC").
		Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) PageByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint, page, perPage int) ([]model.Orden, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Orden{}).Where(fkColumna(tipo)+" = ?", id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ordenes []model.Orden
	err := q.Order("fecha_orden DESC, id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&ordenes).Error
	return ordenes, total, err
}

func (r *ordenRepo) CountByInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Orden{}).Where(fkColumna(tipo)+" = ?", id).Count(&n).Error
	return n, err
}

func (r *ordenRepo) EstadisticasInterlocutor(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*EstadisticaInterlocutor, error) {
	ordenes, err := r.ListByInterlocutor(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	est := &EstadisticaInterlocutor{TotalOrdenes: int64(len(ordenes)), ValorTotal: decimal.Zero}
	for i := range ordenes {
		est.ValorTotal = est.ValorTotal.Add(ordenes[i].ValorOrden)
		if est.UltimaOrden == nil || ordenes[i].FechaOrden.After(*est.UltimaOrden) {
			f := ordenes[i].FechaOrden
			est.UltimaOrden = &f
		}
	}
	return est, nil
}

func (r *ordenRepo) TopInterlocutores(ctx context.Context, tipo model.TipoInterlocutor, limit int) ([]TopInterlocutor, error) {
	nombre, empresa := columnas(tipo)
	tabla := string(tipo)
	var filas []TopInterlocutor
	err := r.db.WithContext(ctx).Table(tabla + " AS i").
		Select("i.id AS id, i." + nombre + " AS nombre, i." + empresa + " AS empresa, COALESCE(SUM(o.valor_orden), 0) AS total_valor").
		Joins("JOIN orden o ON o." + fkColumna(tipo) + " = i.id").
		Group("i.id, i." + nombre + ", i." + empresa).
		Order("total_valor DESC").
		Limit(limit).
		Scan(&filas).Error
	return filas, err
}

// ReplaceLineas deletes the order's current lines and inserts lineas.
func (r *ordenRepo) ReplaceLineas(ctx context.Context, ordenID uint, lineas []model.OrdenProducto) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("orden_id = ?", ordenID).Delete(&model.OrdenProducto{}).Error; err != nil {
		return err
	}
	for i := range lineas {
		lineas[i].ID = 0
		lineas[i].OrdenID = ordenID
		if err := db.Omit("Producto").Create(&lineas[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ordenRepo) CountLineasByProducto(ctx context.Context, productoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrdenProducto{}).Where("producto_id = ?", productoID).Count(&n).Error
	return n, err
}

func (r *ordenRepo) OrdenesDeProducto(ctx context.Context, productoID uint, limit int) ([]OrdenDeProducto, error) {
	var filas []OrdenDeProducto
	err := r.db.WithContext(ctx).Table("orden_producto AS op").
		Select("o.id AS orden_id, o.fecha_orden, o.tipo_orden, o.estado_orden, op.cantidad, op.precio_unitario").
		Joins("JOIN orden o ON o.id = op.orden_id").
		Where("op.producto_id = ?", productoID).
		Order("o.fecha_orden DESC, o.id DESC").
		Limit(limit).
		Scan(&filas).Error
	return filas, err
}
