package repository

import (
	"context"
	"time"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
)

// EmpleadoFila is one row of the employee table: usuario LEFT JOIN cuenta.
type EmpleadoFila struct {
	ID             uint
	NombreCompleto string
	Rut            string
	Sexo           string
	Telefono       *string
	Email          string
	TipoUsuario    string
	Estado         *string
}

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	ExistsEmail(ctx context.Context, email string, exceptID uint) (bool, error)
	ExistsRut(ctx context.Context, rut string, exceptID uint) (bool, error)
	ListTabla(ctx context.Context) ([]EmpleadoFila, error)
	Update(ctx context.Context, u *model.Usuario) error
	// Delete removes the user with its account and grants.
	Delete(ctx context.Context, id uint) error

	CreateCuenta(ctx context.Context, c *model.Cuenta) error
	FindCuentaByNombreUsuario(ctx context.Context, nombreUsuario string) (*model.Cuenta, error)
	ExistsNombreUsuario(ctx context.Context, nombreUsuario string) (bool, error)
	TouchUltimoAcceso(ctx context.Context, cuentaID uint, at time.Time) error

	WithTx(tx *gorm.DB) UsuarioRepository
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) WithTx(tx *gorm.DB) UsuarioRepository { return &usuarioRepo{db: tx} }

func (r *usuarioRepo) DB() *gorm.DB { return r.db }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Direccion", "Cuenta").Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Cuenta").Preload("Direccion").First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Cuenta").Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) ExistsEmail(ctx context.Context, email string, exceptID uint) (bool, error) {
	return r.exists(ctx, &model.Usuario{}, "LOWER(email) = LOWER(?) AND id <> ?", email, exceptID)
}

func (r *usuarioRepo) ExistsRut(ctx context.Context, rut string, exceptID uint) (bool, error) {
	return r.exists(ctx, &model.Usuario{}, "rut = ? AND id <> ?", rut, exceptID)
}

func (r *usuarioRepo) ExistsNombreUsuario(ctx context.Context, nombreUsuario string) (bool, error) {
	return r.exists(ctx, &model.Cuenta{}, "nombre_usuario = ?", nombreUsuario)
}

func (r *usuarioRepo) exists(ctx context.Context, m interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(m).Where(query, args...).Count(&n).Error
	return n > 0, err
}

func (r *usuarioRepo) ListTabla(ctx context.Context) ([]EmpleadoFila, error) {
	var filas []EmpleadoFila
	err := r.db.WithContext(ctx).Table("usuario AS u").
		Select("u.id, u.nombre_completo, u.rut, u.sexo, u.telefono, u.email, u.tipo_usuario, c.estado").
		Joins("LEFT JOIN cuenta c ON c.usuario_id = u.id").
		Order("u.id ASC").
		Scan(&filas).Error
	return filas, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Direccion", "Cuenta", "FechaCreacion").Save(u).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("usuario_id = ?", id).Delete(&model.UsuarioPermiso{}).Error; err != nil {
		return err
	}
	if err := db.Where("usuario_id = ?", id).Delete(&model.Cuenta{}).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Usuario{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *usuarioRepo) CreateCuenta(ctx context.Context, c *model.Cuenta) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindCuentaByNombreUsuario matches the username exactly.
func (r *usuarioRepo) FindCuentaByNombreUsuario(ctx context.Context, nombreUsuario string) (*model.Cuenta, error) {
	var c model.Cuenta
	err := r.db.WithContext(ctx).Where("nombre_usuario = ?", nombreUsuario).First(&c).Error
	return &c, err
}

func (r *usuarioRepo) TouchUltimoAcceso(ctx context.Context, cuentaID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Cuenta{}).Where("id = ?", cuentaID).Update("ultimo_acceso", at).Error
}
