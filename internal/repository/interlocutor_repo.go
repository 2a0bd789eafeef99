package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/glYohanny/Gucci/internal/model"

	"gorm.io/gorm"
)

// InterlocutorRepository stores clientes and proveedores behind one contract;
// every call names the table through model.TipoInterlocutor.
type InterlocutorRepository interface {
	Create(ctx context.Context, i *model.Interlocutor) error
	FindByID(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*model.Interlocutor, error)
	Exists(ctx context.Context, tipo model.TipoInterlocutor, id uint) (bool, error)
	ExistsRut(ctx context.Context, tipo model.TipoInterlocutor, rut string, exceptID uint) (bool, error)
	// List returns every row ordered by nombre.
	List(ctx context.Context, tipo model.TipoInterlocutor) ([]model.Interlocutor, error)
	// Buscar matches nombre or empresa case-insensitively.
	Buscar(ctx context.Context, tipo model.TipoInterlocutor, termino string) ([]model.Interlocutor, error)
	Count(ctx context.Context, tipo model.TipoInterlocutor) (int64, error)
	Update(ctx context.Context, i *model.Interlocutor) error
	Delete(ctx context.Context, tipo model.TipoInterlocutor, id uint) error
	WithTx(tx *gorm.DB) InterlocutorRepository
}

type interlocutorRepo struct{ db *gorm.DB }

func NewInterlocutorRepository(db *gorm.DB) InterlocutorRepository {
	return &interlocutorRepo{db: db}
}

func (r *interlocutorRepo) WithTx(tx *gorm.DB) InterlocutorRepository {
	return &interlocutorRepo{db: tx}
}

// columnas returns the table-specific (nombre, empresa) column names.
func columnas(tipo model.TipoInterlocutor) (string, string) {
	if tipo == model.InterlocutorProveedor {
		return "nombre_proveedor", "empresa_proveedor"
	}
	return "nombre_cliente", "empresa_cliente"
}

// registro is the GORM model backing a tipo.
type registro interface {
	Interlocutor() model.Interlocutor
	Asignar(model.Interlocutor)
}

func nuevoRegistro(tipo model.TipoInterlocutor) (registro, error) {
	if !tipo.Valido() {
		return nil, fmt.Errorf("tipo de interlocutor desconocido: %q", tipo)
	}
	if tipo == model.InterlocutorProveedor {
		return &model.Proveedor{}, nil
	}
	return &model.Cliente{}, nil
}

func (r *interlocutorRepo) Create(ctx context.Context, i *model.Interlocutor) error {
	reg, err := nuevoRegistro(i.Tipo)
	if err != nil {
		return err
	}
	reg.Asignar(*i)
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		return err
	}
	*i = reg.Interlocutor()
	return nil
}

func (r *interlocutorRepo) FindByID(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*model.Interlocutor, error) {
	reg, err := nuevoRegistro(tipo)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).First(reg, id).Error; err != nil {
		return nil, err
	}
	v := reg.Interlocutor()
	return &v, nil
}

func (r *interlocutorRepo) Exists(ctx context.Context, tipo model.TipoInterlocutor, id uint) (bool, error) {
	reg, err := nuevoRegistro(tipo)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(reg).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *interlocutorRepo) ExistsRut(ctx context.Context, tipo model.TipoInterlocutor, rut string, exceptID uint) (bool, error) {
	reg, err := nuevoRegistro(tipo)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(reg).Where("rut = ? AND id <> ?", rut, exceptID).Count(&n).Error
	return n > 0, err
}

func (r *interlocutorRepo) Count(ctx context.Context, tipo model.TipoInterlocutor) (int64, error) {
	reg, err := nuevoRegistro(tipo)
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(reg).Count(&n).Error
	return n, err
}

func (r *interlocutorRepo) List(ctx context.Context, tipo model.TipoInterlocutor) ([]model.Interlocutor, error) {
	nombre, _ := columnas(tipo)
	return r.find(ctx, tipo, r.db.WithContext(ctx).Order(nombre+" ASC"))
}

func (r *interlocutorRepo) Buscar(ctx context.Context, tipo model.TipoInterlocutor, termino string) ([]model.Interlocutor, error) {
	nombre, empresa := columnas(tipo)
	like := "%" + strings.ToLower(termino) + "%"
	q := r.db.WithContext(ctx).
		Where(fmt.Sprintf("LOWER(%s) LIKE ? OR LOWER(%s) LIKE ?", nombre, empresa), like, like).
		Order(nombre + " ASC")
	return r.find(ctx, tipo, q)
}

func (r *interlocutorRepo) find(_ context.Context, tipo model.TipoInterlocutor, q *gorm.DB) ([]model.Interlocutor, error) {
	var out []model.Interlocutor
	switch tipo {
	case model.InterlocutorCliente:
		var rows []model.Cliente
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			out = append(out, rows[i].Interlocutor())
		}
	case model.InterlocutorProveedor:
		var rows []model.Proveedor
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		for i := range rows {
			out = append(out, rows[i].Interlocutor())
		}
	default:
		return nil, fmt.Errorf("tipo de interlocutor desconocido: %q", tipo)
	}
	return out, nil
}

func (r *interlocutorRepo) Update(ctx context.Context, i *model.Interlocutor) error {
	reg, err := nuevoRegistro(i.Tipo)
	if err != nil {
		return err
	}
	reg.Asignar(*i)
	return r.db.WithContext(ctx).Omit("FechaCreacion").Save(reg).Error
}

func (r *interlocutorRepo) Delete(ctx context.Context, tipo model.TipoInterlocutor, id uint) error {
	reg, err := nuevoRegistro(tipo)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(reg, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
