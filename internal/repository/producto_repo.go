package repository

import (
	"context"
	"strings"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoFilter narrows the inventory listing. SortBy must already be a
// whitelisted column name.
type ProductoFilter struct {
	Estado string
	SortBy string
	Desc   bool
}

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	// FindByIDForUpdate locks the row inside a transaction (no-op on SQLite).
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	ExistsCodigo(ctx context.Context, codigo string) (bool, error)
	List(ctx context.Context, filter ProductoFilter) ([]model.Producto, error)
	Buscar(ctx context.Context, termino string) ([]model.Producto, error)
	BajoStock(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	UpdateStock(ctx context.Context, id uint, stock int) error
	Delete(ctx context.Context, id uint) error

	WithTx(tx *gorm.DB) ProductoRepository
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) WithTx(tx *gorm.DB) ProductoRepository { return &productoRepo{db: tx} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&p).Error
	return &p, err
}

func (r *productoRepo) ExistsCodigo(ctx context.Context, codigo string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Where("codigo = ?", codigo).Count(&n).Error
	return n > 0, err
}

func (r *productoRepo) List(ctx context.Context, filter ProductoFilter) ([]model.Producto, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sortBy}, Desc: filter.Desc})

	var productos []model.Producto
	err := q.Find(&productos).Error
	return productos, err
}

// Buscar matches nombre, codigo or tipo_prenda case-insensitively.
func (r *productoRepo) Buscar(ctx context.Context, termino string) ([]model.Producto, error) {
	like := "%" + strings.ToLower(termino) + "%"
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) LIKE ? OR LOWER(codigo) LIKE ? OR LOWER(tipo_prenda) LIKE ?", like, like, like).
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) BajoStock(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("stock_actual <= stock_minimo AND estado = ?", model.ProductoActivo).
		Order("stock_actual ASC, nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("FechaCreacion").Save(p).Error
}

func (r *productoRepo) UpdateStock(ctx context.Context, id uint, stock int) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).
		UpdateColumn("stock_actual", stock).Error
}

// Delete removes the product and its stock history.
func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("producto_id = ?", id).Delete(&model.MovimientoStock{}).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Producto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
