package repository

import (
	"context"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
)

// RegionRepository covers the geographic catalog (regions, comunas) and the
// employee addresses that reference it.
type RegionRepository interface {
	ListRegiones(ctx context.Context) ([]model.Region, error)
	ListComunas(ctx context.Context, regionID uint) ([]model.Comuna, error)
	ComunaEnRegion(ctx context.Context, comunaID, regionID uint) (bool, error)
	CountRegiones(ctx context.Context) (int64, error)
	CreateRegion(ctx context.Context, r *model.Region) error

	CreateDireccion(ctx context.Context, d *model.Direccion) error
	SaveDireccion(ctx context.Context, d *model.Direccion) error

	WithTx(tx *gorm.DB) RegionRepository
}

type regionRepo struct{ db *gorm.DB }

func NewRegionRepository(db *gorm.DB) RegionRepository { return &regionRepo{db: db} }

func (r *regionRepo) WithTx(tx *gorm.DB) RegionRepository { return &regionRepo{db: tx} }

func (r *regionRepo) ListRegiones(ctx context.Context) ([]model.Region, error) {
	var regiones []model.Region
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&regiones).Error
	return regiones, err
}

func (r *regionRepo) ListComunas(ctx context.Context, regionID uint) ([]model.Comuna, error) {
	var comunas []model.Comuna
	err := r.db.WithContext(ctx).Where("region_id = ?", regionID).Order("nombre ASC").Find(&comunas).Error
	return comunas, err
}

func (r *regionRepo) ComunaEnRegion(ctx context.Context, comunaID, regionID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Comuna{}).
		Where("id = ? AND region_id = ?", comunaID, regionID).
		Count(&n).Error
	return n > 0, err
}

func (r *regionRepo) CountRegiones(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Region{}).Count(&n).Error
	return n, err
}

// CreateRegion inserts the region together with its Comunas.
func (r *regionRepo) CreateRegion(ctx context.Context, reg *model.Region) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *regionRepo) CreateDireccion(ctx context.Context, d *model.Direccion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *regionRepo) SaveDireccion(ctx context.Context, d *model.Direccion) error {
	return r.db.WithContext(ctx).Save(d).Error
}
