package repository

import (
	"context"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	ListByProducto(ctx context.Context, productoID uint, limit int) ([]model.MovimientoStock, error)
	ListByOrden(ctx context.Context, ordenID uint) ([]model.MovimientoStock, error)
	WithTx(tx *gorm.DB) MovimientoStockRepository
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) WithTx(tx *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: tx}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Omit("Producto").Create(m).Error
}

func (r *movimientoStockRepo) ListByProducto(ctx context.Context, productoID uint, limit int) ([]model.MovimientoStock, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var movimientos []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Where("producto_id = ?", productoID).
		Order("fecha DESC, id DESC").
		Limit(limit).
		Find(&movimientos).Error
	return movimientos, err
}

func (r *movimientoStockRepo) ListByOrden(ctx context.Context, ordenID uint) ([]model.MovimientoStock, error) {
	var movimientos []model.MovimientoStock
	err := r.db.WithContext(ctx).Where("orden_id = ?", ordenID).Order("id ASC").Find(&movimientos).Error
	return movimientos, err
}
