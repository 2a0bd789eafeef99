package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
)

type PermisoRepository interface {
	// FindOrCreate returns the (modulo, accion) permission, inserting it when missing.
	FindOrCreate(ctx context.Context, modulo, accion string) (*model.Permiso, error)
	Grant(ctx context.Context, usuarioID, permisoID uint) error
	ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Permiso, error)
	WithTx(tx *gorm.DB) PermisoRepository
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) WithTx(tx *gorm.DB) PermisoRepository { return &permisoRepo{db: tx} }

func (r *permisoRepo) FindOrCreate(ctx context.Context, modulo, accion string) (*model.Permiso, error) {
	var p model.Permiso
	err := r.db.WithContext(ctx).Where("modulo = ? AND accion = ?", modulo, accion).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	desc := fmt.Sprintf("Permiso para %s en %s", accion, modulo)
	p = model.Permiso{Modulo: modulo, Accion: accion, Descripcion: &desc}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *permisoRepo) Grant(ctx context.Context, usuarioID, permisoID uint) error {
	return r.db.WithContext(ctx).Create(&model.UsuarioPermiso{UsuarioID: usuarioID, PermisoID: permisoID}).Error
}

func (r *permisoRepo) ListByUsuario(ctx context.Context, usuarioID uint) ([]model.Permiso, error) {
	var permisos []model.Permiso
	err := r.db.WithContext(ctx).
		Joins("JOIN usuario_permisos up ON up.permiso_id = permisos.id").
		Where("up.usuario_id = ?", usuarioID).
		Order("permisos.modulo, permisos.accion").
		Find(&permisos).Error
	return permisos, err
}
