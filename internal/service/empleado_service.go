package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type EmpleadoService interface {
	// Crear writes the Direccion, Usuario, Cuenta and permission grants in
	// one transaction and returns the new usuario id.
	Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (uint, error)
	Tabla(ctx context.Context) ([]dto.EmpleadoFilaResponse, error)
	Regiones(ctx context.Context) ([]dto.Opcion, error)
	Comunas(ctx context.Context, regionID uint) ([]dto.Opcion, error)
	ValidarRegionComuna(ctx context.Context, regionID, comunaID uint) error
	Obtener(ctx context.Context, id uint) (*dto.EmpleadoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarEmpleadoRequest) error
	Eliminar(ctx context.Context, id uint) error
	// SembrarRegiones inserts regiones when the region table is empty and
	// reports whether it did.
	SembrarRegiones(ctx context.Context, regiones []model.Region) (bool, error)
}

type empleadoService struct {
	usuarios repository.UsuarioRepository
	regiones repository.RegionRepository
	permisos repository.PermisoRepository
	reglas   model.Reglas
}

func NewEmpleadoService(
	usuarios repository.UsuarioRepository,
	regiones repository.RegionRepository,
	permisos repository.PermisoRepository,
	reglas model.Reglas,
) EmpleadoService {
	return &empleadoService{usuarios: usuarios, regiones: regiones, permisos: permisos, reglas: reglas}
}

func (s *empleadoService) Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (uint, error) {
	nacimiento, err := time.Parse(formatoFecha, strings.TrimSpace(req.FechaNacimiento))
	if err != nil {
		return 0, apierror.Validacion("Formato de fecha inválido. Use YYYY-MM-DD")
	}
	usuario := &model.Usuario{
		TipoUsuario:     strings.TrimSpace(req.TipoUsuario),
		Sexo:            req.Sexo,
		NombreCompleto:  strings.TrimSpace(req.NombreCompleto),
		Email:           strings.TrimSpace(req.Email),
		FechaNacimiento: nacimiento,
		Rut:             strings.TrimSpace(req.Rut),
		Telefono:        req.Telefono,
		NumeroCasa:      req.NumeroCasa,
	}
	if err := s.reglas.ValidarUsuario(usuario); err != nil {
		return 0, err
	}

	var direccion *model.Direccion
	if req.Direccion != nil {
		direccion = &model.Direccion{}
		aplicarDireccion(direccion, req.Direccion)
		if err := s.validarDireccion(ctx, direccion); err != nil {
			return 0, err
		}
	}

	estado := req.Estado
	if estado == "" {
		estado = model.CuentaActiva
	}
	if normalizarContrasena(req.Contrasena) == "" {
		return 0, apierror.Validacion("El campo contrasena es obligatorio")
	}
	hash, err := hashContrasena(req.Contrasena)
	if err != nil {
		return 0, err
	}

	err = runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		usuarios := s.usuarios.WithTx(tx)
		if err := s.verificarUnicos(ctx, usuarios, usuario.Email, usuario.Rut, 0); err != nil {
			return err
		}
		existe, err := usuarios.ExistsNombreUsuario(ctx, req.NombreUsuario)
		if err != nil {
			return err
		}
		if existe {
			return apierror.Conflicto("El nombre de usuario ya existe")
		}

		if direccion != nil {
			if err := s.regiones.WithTx(tx).CreateDireccion(ctx, direccion); err != nil {
				return err
			}
			usuario.DireccionID = &direccion.ID
		}
		if err := usuarios.Create(ctx, usuario); err != nil {
			return duplicado(err, "El empleado ya existe")
		}

		cuenta := &model.Cuenta{
			UsuarioID:     usuario.ID,
			NombreUsuario: req.NombreUsuario,
			Contrasena:    hash,
			Estado:        estado,
			Cargo:         req.Cargo,
		}
		if err := usuarios.CreateCuenta(ctx, cuenta); err != nil {
			return duplicado(err, "El nombre de usuario ya existe")
		}

		return s.otorgarPermisos(ctx, s.permisos.WithTx(tx), usuario.ID, req.Permisos)
	})
	if err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().Uint("usuario_id", usuario.ID).Str("nombre_usuario", req.NombreUsuario).Msg("empleado creado")
	return usuario.ID, nil
}

// otorgarPermisos grants every (modulo, accion) flagged true, in a stable
// order.
func (s *empleadoService) otorgarPermisos(ctx context.Context, permisos repository.PermisoRepository, usuarioID uint, solicitados map[string]map[string]bool) error {
	modulos := make([]string, 0, len(solicitados))
	for m := range solicitados {
		modulos = append(modulos, m)
	}
	sort.Strings(modulos)

	for _, modulo := range modulos {
		acciones := make([]string, 0, len(solicitados[modulo]))
		for a, ok := range solicitados[modulo] {
			if ok {
				acciones = append(acciones, a)
			}
		}
		sort.Strings(acciones)
		for _, accion := range acciones {
			p, err := permisos.FindOrCreate(ctx, modulo, accion)
			if err != nil {
				return err
			}
			if err := permisos.Grant(ctx, usuarioID, p.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *empleadoService) verificarUnicos(ctx context.Context, usuarios repository.UsuarioRepository, email, rut string, exceptID uint) error {
	existe, err := usuarios.ExistsEmail(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("El email ya está registrado")
	}
	if rut == "" {
		return nil
	}
	existe, err = usuarios.ExistsRut(ctx, rut, exceptID)
	if err != nil {
		return err
	}
	if existe {
		return apierror.Conflicto("El RUT ya está registrado")
	}
	return nil
}

func aplicarDireccion(d *model.Direccion, req *dto.DireccionRequest) {
	if req.Ciudad != nil {
		d.Ciudad = strings.TrimSpace(*req.Ciudad)
	}
	if req.CodigoPostal != nil {
		d.CodigoPostal = req.CodigoPostal
	}
	if req.RegionID != nil {
		d.RegionID = req.RegionID
	}
	if req.ComunaID != nil {
		d.ComunaID = req.ComunaID
	}
}

func (s *empleadoService) validarDireccion(ctx context.Context, d *model.Direccion) error {
	if d.Ciudad == "" {
		return apierror.Validacion("El campo ciudad es obligatorio")
	}
	if d.ComunaID != nil && d.RegionID == nil {
		return apierror.Validacion("Se requiere region_id cuando se indica comuna_id")
	}
	if d.ComunaID != nil {
		return s.ValidarRegionComuna(ctx, *d.RegionID, *d.ComunaID)
	}
	return nil
}

func (s *empleadoService) Tabla(ctx context.Context) ([]dto.EmpleadoFilaResponse, error) {
	filas, err := s.usuarios.ListTabla(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoFilaResponse, len(filas))
	for i, f := range filas {
		resp[i] = dto.EmpleadoFilaResponse{
			ID:             f.ID,
			NombreCompleto: f.NombreCompleto,
			Rut:            model.FormatearRUT(f.Rut),
			Sexo:           f.Sexo,
			Telefono:       f.Telefono,
			Email:          f.Email,
			TipoUsuario:    f.TipoUsuario,
			Estado:         f.Estado,
		}
	}
	return resp, nil
}

func (s *empleadoService) Regiones(ctx context.Context) ([]dto.Opcion, error) {
	regiones, err := s.regiones.ListRegiones(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.Opcion, len(regiones))
	for i, r := range regiones {
		resp[i] = dto.Opcion{ID: r.ID, Nombre: r.Nombre}
	}
	return resp, nil
}

func (s *empleadoService) Comunas(ctx context.Context, regionID uint) ([]dto.Opcion, error) {
	comunas, err := s.regiones.ListComunas(ctx, regionID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.Opcion, len(comunas))
	for i, c := range comunas {
		resp[i] = dto.Opcion{ID: c.ID, Nombre: c.Nombre}
	}
	return resp, nil
}

func (s *empleadoService) ValidarRegionComuna(ctx context.Context, regionID, comunaID uint) error {
	if regionID == 0 || comunaID == 0 {
		return apierror.Validacion("Se requieren region_id y comuna_id")
	}
	ok, err := s.regiones.ComunaEnRegion(ctx, comunaID, regionID)
	if err != nil {
		return err
	}
	if !ok {
		return apierror.Validacion("La comuna no pertenece a la región seleccionada")
	}
	return nil
}

func (s *empleadoService) Obtener(ctx context.Context, id uint) (*dto.EmpleadoResponse, error) {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "Empleado no encontrado")
	}
	resp := &dto.EmpleadoResponse{
		ID:              u.ID,
		TipoUsuario:     u.TipoUsuario,
		Sexo:            u.Sexo,
		NombreCompleto:  u.NombreCompleto,
		Email:           u.Email,
		FechaNacimiento: u.FechaNacimiento.Format(formatoFecha),
		DireccionID:     u.DireccionID,
		Rut:             u.Rut,
		NumeroCasa:      u.NumeroCasa,
		Telefono:        u.Telefono,
		FechaCreacion:   u.FechaCreacion.Format(time.RFC3339),
		Permisos:        []dto.PermisoResponse{},
	}
	if c := u.Cuenta; c != nil {
		resp.NombreUsuario = &c.NombreUsuario
		resp.Estado = &c.Estado
		resp.Cargo = c.Cargo
	}
	if d := u.Direccion; d != nil {
		resp.Ciudad = &d.Ciudad
		resp.CodigoPostal = d.CodigoPostal
		resp.RegionID = d.RegionID
		resp.ComunaID = d.ComunaID
	}

	permisos, err := s.permisos.ListByUsuario(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range permisos {
		resp.Permisos = append(resp.Permisos, dto.PermisoResponse{Modulo: p.Modulo, Accion: p.Accion})
	}
	return resp, nil
}

func (s *empleadoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarEmpleadoRequest) error {
	u, err := s.usuarios.FindByID(ctx, id)
	if err != nil {
		return noEncontrado(err, "Empleado no encontrado")
	}
	if req.NombreCompleto != nil {
		u.NombreCompleto = strings.TrimSpace(*req.NombreCompleto)
	}
	if req.Email != nil {
		u.Email = strings.TrimSpace(*req.Email)
	}
	if req.Telefono != nil {
		u.Telefono = req.Telefono
	}
	if req.TipoUsuario != nil {
		u.TipoUsuario = *req.TipoUsuario
	}
	if req.NumeroCasa != nil {
		u.NumeroCasa = req.NumeroCasa
	}
	if req.Sexo != nil {
		u.Sexo = *req.Sexo
	}
	if err := s.reglas.ValidarUsuario(u); err != nil {
		return err
	}

	var direccion *model.Direccion
	if req.Direccion != nil {
		direccion = u.Direccion
		if direccion == nil {
			direccion = &model.Direccion{}
		}
		aplicarDireccion(direccion, req.Direccion)
		if err := s.validarDireccion(ctx, direccion); err != nil {
			return err
		}
	}

	return runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		usuarios := s.usuarios.WithTx(tx)
		if err := s.verificarUnicos(ctx, usuarios, u.Email, "", u.ID); err != nil {
			return err
		}
		if direccion != nil {
			if err := s.regiones.WithTx(tx).SaveDireccion(ctx, direccion); err != nil {
				return err
			}
			u.DireccionID = &direccion.ID
		}
		return duplicado(usuarios.Update(ctx, u), "El email ya está registrado")
	})
}

func (s *empleadoService) Eliminar(ctx context.Context, id uint) error {
	err := runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		return s.usuarios.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return noEncontrado(err, "Empleado no encontrado")
	}
	zerolog.Ctx(ctx).Info().Uint("usuario_id", id).Msg("empleado eliminado")
	return nil
}

func (s *empleadoService) SembrarRegiones(ctx context.Context, regiones []model.Region) (bool, error) {
	n, err := s.regiones.CountRegiones(ctx)
	if err != nil || n > 0 {
		return false, err
	}
	err = runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		repo := s.regiones.WithTx(tx)
		for i := range regiones {
			if err := repo.CreateRegion(ctx, &regiones[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return err == nil, err
}
