package service

import (
	"context"
	"strings"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	topInterlocutores = 5
	porPaginaDefecto  = 10
	porPaginaMaximo   = 100
)

// InterlocutorService manages clientes and proveedores. Every operation
// that targets one record takes the tipo selecting its table.
type InterlocutorService interface {
	Lista(ctx context.Context) (*dto.InterlocutorListaResponse, error)
	Clientes(ctx context.Context) ([]dto.ClienteOpcion, error)
	Proveedores(ctx context.Context) ([]dto.ProveedorOpcion, error)
	Crear(ctx context.Context, tipo model.TipoInterlocutor, datos dto.InterlocutorDatos) (uint, error)
	Detalle(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*dto.InterlocutorDetalleResponse, error)
	Actualizar(ctx context.Context, tipo model.TipoInterlocutor, id uint, req dto.ActualizarInterlocutorRequest) error
	Eliminar(ctx context.Context, tipo model.TipoInterlocutor, id uint) error
	Ordenes(ctx context.Context, tipo model.TipoInterlocutor, id uint, page, perPage int) (*dto.OrdenesPaginadasResponse, error)
	// Buscar filters by tipo: "todos" (or empty), "cliente" or "proveedor".
	Buscar(ctx context.Context, termino, tipo string) ([]dto.BusquedaInterlocutor, error)
	Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error)
}

type interlocutorService struct {
	repo    repository.InterlocutorRepository
	ordenes repository.OrdenRepository
	reglas  model.Reglas
}

func NewInterlocutorService(repo repository.InterlocutorRepository, ordenes repository.OrdenRepository, reglas model.Reglas) InterlocutorService {
	return &interlocutorService{repo: repo, ordenes: ordenes, reglas: reglas}
}

func (s *interlocutorService) Lista(ctx context.Context) (*dto.InterlocutorListaResponse, error) {
	clientes, err := s.repo.List(ctx, model.InterlocutorCliente)
	if err != nil {
		return nil, err
	}
	proveedores, err := s.repo.List(ctx, model.InterlocutorProveedor)
	if err != nil {
		return nil, err
	}
	resp := &dto.InterlocutorListaResponse{
		Clientes:    make([]dto.ClienteResumen, len(clientes)),
		Proveedores: make([]dto.ProveedorResumen, len(proveedores)),
	}
	for i, c := range clientes {
		resp.Clientes[i] = dto.ClienteResumen{
			ID: c.ID, NombreCliente: c.Nombre, EmpresaCliente: c.Empresa, Email: c.Email, Telefono: c.Telefono,
		}
	}
	for i, p := range proveedores {
		resp.Proveedores[i] = dto.ProveedorResumen{
			ID: p.ID, NombreProveedor: p.Nombre, EmpresaProveedor: p.Empresa, Email: p.Email, Telefono: p.Telefono,
		}
	}
	return resp, nil
}

func (s *interlocutorService) Clientes(ctx context.Context) ([]dto.ClienteOpcion, error) {
	clientes, err := s.repo.List(ctx, model.InterlocutorCliente)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteOpcion, len(clientes))
	for i, c := range clientes {
		resp[i] = dto.ClienteOpcion{ID: c.ID, NombreCliente: c.Nombre, EmpresaCliente: c.Empresa}
	}
	return resp, nil
}

func (s *interlocutorService) Proveedores(ctx context.Context) ([]dto.ProveedorOpcion, error) {
	proveedores, err := s.repo.List(ctx, model.InterlocutorProveedor)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorOpcion, len(proveedores))
	for i, p := range proveedores {
		resp[i] = dto.ProveedorOpcion{ID: p.ID, NombreProveedor: p.Nombre, EmpresaProveedor: p.Empresa}
	}
	return resp, nil
}

func (s *interlocutorService) validar(ctx context.Context, i *model.Interlocutor) error {
	if i.Nombre == "" || i.Empresa == "" {
		return apierror.Validacion("Nombre y empresa son obligatorios")
	}
	if i.Email != nil {
		if err := model.ValidarEmail(*i.Email); err != nil {
			return err
		}
	}
	if i.Rut == nil || *i.Rut == "" {
		i.Rut = nil
		return nil
	}
	if err := s.reglas.ValidarRUT(*i.Rut); err != nil {
		return err
	}
	existe, err := s.repo.ExistsRut(ctx, i.Tipo, *i.Rut, i.ID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("Ya existe un %s con este RUT", i.Tipo)
	}
	return nil
}

func (s *interlocutorService) Crear(ctx context.Context, tipo model.TipoInterlocutor, datos dto.InterlocutorDatos) (uint, error) {
	i := &model.Interlocutor{
		Tipo:      tipo,
		Nombre:    strings.TrimSpace(datos.Nombre),
		Empresa:   strings.TrimSpace(datos.Empresa),
		Rut:       datos.Rut,
		Email:     datos.Email,
		Telefono:  datos.Telefono,
		Direccion: datos.Direccion,
	}
	if err := s.validar(ctx, i); err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return 0, duplicado(err, "Ya existe un "+string(tipo)+" con este RUT")
	}
	zerolog.Ctx(ctx).Info().Str("tipo", string(tipo)).Uint("id", i.ID).Msg("interlocutor creado")
	return i.ID, nil
}

func (s *interlocutorService) buscar(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*model.Interlocutor, error) {
	i, err := s.repo.FindByID(ctx, tipo, id)
	if err != nil {
		return nil, noEncontrado(err, tipo.Etiqueta()+" no encontrado")
	}
	return i, nil
}

func (s *interlocutorService) Detalle(ctx context.Context, tipo model.TipoInterlocutor, id uint) (*dto.InterlocutorDetalleResponse, error) {
	i, err := s.buscar(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	ordenes, err := s.ordenes.ListByInterlocutor(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	est, err := s.ordenes.EstadisticasInterlocutor(ctx, tipo, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.InterlocutorDetalleResponse{
		InfoInterlocutor: dto.InterlocutorInfo{
			ID:        i.ID,
			Nombre:    i.Nombre,
			Empresa:   i.Empresa,
			Tipo:      tipo.Etiqueta(),
			Rut:       i.Rut,
			Email:     i.Email,
			Telefono:  i.Telefono,
			Direccion: i.Direccion,
		},
		Estadisticas: dto.InterlocutorEstadisticas{
			TotalOrdenes: est.TotalOrdenes,
			ValorTotal:   est.ValorTotal.InexactFloat64(),
		},
		Ordenes: ordenesResumen(ordenes),
	}
	if est.UltimaOrden != nil {
		f := est.UltimaOrden.Format(formatoFecha)
		resp.Estadisticas.UltimaOrden = &f
	}
	return resp, nil
}

func ordenesResumen(ordenes []model.Orden) []dto.InterlocutorOrden {
	out := make([]dto.InterlocutorOrden, len(ordenes))
	for i, o := range ordenes {
		out[i] = dto.InterlocutorOrden{
			ID:     o.ID,
			Tipo:   o.TipoOrden,
			Valor:  o.ValorOrden.InexactFloat64(),
			Fecha:  o.FechaOrden.Format(formatoFecha),
			Estado: o.EstadoOrden,
		}
	}
	return out
}

func (s *interlocutorService) Actualizar(ctx context.Context, tipo model.TipoInterlocutor, id uint, req dto.ActualizarInterlocutorRequest) error {
	i, err := s.buscar(ctx, tipo, id)
	if err != nil {
		return err
	}
	if req.Nombre != nil {
		i.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Empresa != nil {
		i.Empresa = strings.TrimSpace(*req.Empresa)
	}
	if req.Email != nil {
		i.Email = req.Email
	}
	if req.Telefono != nil {
		i.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		i.Direccion = req.Direccion
	}
	if err := s.validar(ctx, i); err != nil {
		return err
	}
	return s.repo.Update(ctx, i)
}

// Eliminar refuses while the interlocutor still has orders.
func (s *interlocutorService) Eliminar(ctx context.Context, tipo model.TipoInterlocutor, id uint) error {
	err := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		n, err := s.ordenes.WithTx(tx).CountByInterlocutor(ctx, tipo, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apierror.Conflicto(
				"No se puede eliminar el %s porque tiene órdenes asociadas. Por favor, elimine primero las órdenes.", tipo)
		}
		return s.repo.WithTx(tx).Delete(ctx, tipo, id)
	})
	if err != nil {
		return noEncontrado(err, tipo.Etiqueta()+" no encontrado")
	}
	zerolog.Ctx(ctx).Info().Str("tipo", string(tipo)).Uint("id", id).Msg("interlocutor eliminado")
	return nil
}

func (s *interlocutorService) Ordenes(ctx context.Context, tipo model.TipoInterlocutor, id uint, page, perPage int) (*dto.OrdenesPaginadasResponse, error) {
	if _, err := s.buscar(ctx, tipo, id); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = porPaginaDefecto
	}
	if perPage > porPaginaMaximo {
		perPage = porPaginaMaximo
	}
	ordenes, total, err := s.ordenes.PageByInterlocutor(ctx, tipo, id, page, perPage)
	if err != nil {
		return nil, err
	}
	return &dto.OrdenesPaginadasResponse{
		Ordenes:     ordenesResumen(ordenes),
		TotalPages:  int((total + int64(perPage) - 1) / int64(perPage)),
		CurrentPage: page,
		TotalItems:  total,
	}, nil
}

func (s *interlocutorService) Buscar(ctx context.Context, termino, tipo string) ([]dto.BusquedaInterlocutor, error) {
	var tipos []model.TipoInterlocutor
	switch tipo {
	case "", "todos":
		tipos = []model.TipoInterlocutor{model.InterlocutorCliente, model.InterlocutorProveedor}
	default:
		t := model.TipoInterlocutor(tipo)
		if !t.Valido() {
			return nil, apierror.Validacion("Tipo de búsqueda inválido")
		}
		tipos = []model.TipoInterlocutor{t}
	}

	resp := []dto.BusquedaInterlocutor{}
	for _, t := range tipos {
		encontrados, err := s.repo.Buscar(ctx, t, strings.TrimSpace(termino))
		if err != nil {
			return nil, err
		}
		for _, i := range encontrados {
			resp = append(resp, dto.BusquedaInterlocutor{ID: i.ID, Nombre: i.Nombre, Empresa: i.Empresa, Tipo: t.Etiqueta()})
		}
	}
	return resp, nil
}

func (s *interlocutorService) Estadisticas(ctx context.Context) (*dto.EstadisticasResponse, error) {
	resp := &dto.EstadisticasResponse{}
	var err error
	if resp.Totales.Clientes, err = s.repo.Count(ctx, model.InterlocutorCliente); err != nil {
		return nil, err
	}
	if resp.Totales.Proveedores, err = s.repo.Count(ctx, model.InterlocutorProveedor); err != nil {
		return nil, err
	}
	if resp.TopClientes, err = s.top(ctx, model.InterlocutorCliente); err != nil {
		return nil, err
	}
	if resp.TopProveedores, err = s.top(ctx, model.InterlocutorProveedor); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *interlocutorService) top(ctx context.Context, tipo model.TipoInterlocutor) ([]dto.TopInterlocutorResponse, error) {
	filas, err := s.ordenes.TopInterlocutores(ctx, tipo, topInterlocutores)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopInterlocutorResponse, len(filas))
	for i, f := range filas {
		out[i] = dto.TopInterlocutorResponse{ID: f.ID, Nombre: f.Nombre, Empresa: f.Empresa, TotalValor: f.TotalValor.InexactFloat64()}
	}
	return out, nil
}
