package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/infra"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdenService interface {
	Listar(ctx context.Context) ([]dto.OrdenFilaResponse, error)
	Obtener(ctx context.Context, id uint) (*dto.OrdenResponse, error)
	Crear(ctx context.Context, req dto.OrdenRequest) (uint, error)
	Actualizar(ctx context.Context, id uint, req dto.OrdenRequest) error
	Eliminar(ctx context.Context, id uint) error
	// PDF renders the order sheet into w.
	PDF(ctx context.Context, id uint, w io.Writer) error
}

type ordenService struct {
	ordenes        repository.OrdenRepository
	interlocutores repository.InterlocutorRepository
	productos      repository.ProductoRepository
	movimientos    repository.MovimientoStockRepository
	cache          *ProductoCache
}

func NewOrdenService(
	ordenes repository.OrdenRepository,
	interlocutores repository.InterlocutorRepository,
	productos repository.ProductoRepository,
	movimientos repository.MovimientoStockRepository,
	cache *ProductoCache,
) OrdenService {
	return &ordenService{
		ordenes:        ordenes,
		interlocutores: interlocutores,
		productos:      productos,
		movimientos:    movimientos,
		cache:          cache,
	}
}

func (s *ordenService) Listar(ctx context.Context) ([]dto.OrdenFilaResponse, error) {
	ordenes, err := s.ordenes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrdenFilaResponse, len(ordenes))
	for i := range ordenes {
		o := &ordenes[i]
		nombre, empresa := partesOrden(o)
		resp[i] = dto.OrdenFilaResponse{
			ID:           o.ID,
			Interlocutor: nombre,
			Empresa:      empresa,
			ValorDeOrden: o.ValorOrden.InexactFloat64(),
			FechaDeOrden: o.FechaOrden.Format(formatoFecha),
			Estado:       o.EstadoOrden,
			Tipo:         o.TipoOrden,
		}
	}
	return resp, nil
}

// partesOrden resolves the counterparty name and company shown for o.
func partesOrden(o *model.Orden) (string, string) {
	if o.TipoOrden == model.TipoEntrada {
		if o.Proveedor == nil {
			return "Sin proveedor", "Sin empresa"
		}
		return o.Proveedor.NombreProveedor, valorO(o.Proveedor.EmpresaProveedor, "Sin empresa")
	}
	if o.Cliente == nil {
		return "Sin cliente", "Sin empresa"
	}
	return o.Cliente.NombreCliente, valorO(o.Cliente.EmpresaCliente, "Sin empresa")
}

func valorO(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (s *ordenService) Obtener(ctx context.Context, id uint) (*dto.OrdenResponse, error) {
	o, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "Orden no encontrada")
	}
	resp := &dto.OrdenResponse{
		ID:             o.ID,
		TipoOrden:      o.TipoOrden,
		InterlocutorID: o.InterlocutorID(),
		ValorOrden:     o.ValorOrden.StringFixed(2),
		FechaOrden:     o.FechaOrden.Format(formatoFecha),
		EstadoOrden:    o.EstadoOrden,
		Productos:      make([]dto.OrdenLineaResponse, 0, len(o.Productos)),
	}
	for _, l := range o.Productos {
		linea := dto.OrdenLineaResponse{
			ProductoID:     l.ProductoID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario.InexactFloat64(),
			Subtotal:       l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad))).InexactFloat64(),
		}
		if l.Producto != nil {
			linea.Codigo = l.Producto.Codigo
			linea.Nombre = l.Producto.Nombre
		}
		resp.Productos = append(resp.Productos, linea)
	}
	return resp, nil
}

// ordenPreparada is a validated request ready to be written.
type ordenPreparada struct {
	orden  model.Orden
	lineas []model.OrdenProducto
	// conLineas is false when the request omitted productos, which on
	// update keeps the stored lines.
	conLineas bool
	// conservarValor keeps the stored valor_orden on an update that sends
	// neither productos nor valor_orden.
	conservarValor bool
}

func (s *ordenService) preparar(ctx context.Context, req dto.OrdenRequest, actualizacion bool) (*ordenPreparada, error) {
	tipo := strings.TrimSpace(req.TipoOrden)
	if !contiene(model.TiposOrden, tipo) {
		return nil, apierror.Validacion("Tipo de orden inválido")
	}
	estado := strings.TrimSpace(req.EstadoOrden)
	if estado == "" {
		estado = model.EstadoPendiente
	}
	if !contiene(model.EstadosOrden, estado) {
		return nil, apierror.Validacion("Estado de orden inválido")
	}
	fecha, err := time.Parse(formatoFecha, strings.TrimSpace(req.FechaOrden))
	if err != nil {
		return nil, apierror.Validacion("Formato de fecha inválido. Use YYYY-MM-DD")
	}

	p := &ordenPreparada{conLineas: req.Productos != nil}
	p.orden = model.Orden{TipoOrden: tipo, EstadoOrden: estado, FechaOrden: fecha}

	parte := model.InterlocutorCliente
	if model.InterlocutorProveedor.TipoOrden() == tipo {
		parte = model.InterlocutorProveedor
	}
	existe, err := s.interlocutores.Exists(ctx, parte, req.InterlocutorID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, apierror.Validacion("%s no encontrado", parte.Etiqueta())
	}
	id := req.InterlocutorID
	if parte == model.InterlocutorProveedor {
		p.orden.ProveedorID = &id
	} else {
		p.orden.ClienteID = &id
	}

	total := decimal.Zero
	for _, l := range req.Productos {
		producto, err := s.productos.FindByID(ctx, l.ProductoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validacion("Producto %d no encontrado", l.ProductoID)
		}
		if err != nil {
			return nil, err
		}
		precio := producto.ValorVenta
		if tipo == model.TipoEntrada {
			precio = producto.ValorCompra
		}
		if l.PrecioUnitario != nil {
			precio = *l.PrecioUnitario
		}
		linea := model.OrdenProducto{ProductoID: l.ProductoID, Cantidad: l.Cantidad, PrecioUnitario: precio}
		p.lineas = append(p.lineas, linea)
		total = total.Add(precio.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}

	switch {
	case req.ValorOrden != nil:
		p.orden.ValorOrden = *req.ValorOrden
	case len(p.lineas) > 0:
		p.orden.ValorOrden = total
	case actualizacion && !p.conLineas:
		p.conservarValor = true
	default:
		return nil, apierror.Validacion("El campo valor_orden es obligatorio")
	}
	if err := p.orden.Validar(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ordenService) Crear(ctx context.Context, req dto.OrdenRequest) (uint, error) {
	p, err := s.preparar(ctx, req, false)
	if err != nil {
		return 0, err
	}
	orden := p.orden
	var tocados []string
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		ordenes := s.ordenes.WithTx(tx)
		if err := ordenes.Create(ctx, &orden); err != nil {
			return err
		}
		if err := ordenes.ReplaceLineas(ctx, orden.ID, p.lineas); err != nil {
			return err
		}
		if orden.EstadoOrden != model.EstadoCompletada {
			return nil
		}
		t, err := s.moverStock(ctx, tx, orden.ID, orden.TipoOrden, p.lineas, false)
		tocados = t
		return err
	})
	if err != nil {
		return 0, err
	}
	s.cache.Invalidar(ctx, tocados...)
	zerolog.Ctx(ctx).Info().Uint("orden_id", orden.ID).Str("tipo", orden.TipoOrden).Msg("orden creada")
	return orden.ID, nil
}

func (s *ordenService) Actualizar(ctx context.Context, id uint, req dto.OrdenRequest) error {
	p, err := s.preparar(ctx, req, true)
	if err != nil {
		return err
	}
	var tocados []string
	err = runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		ordenes := s.ordenes.WithTx(tx)
		actual, err := ordenes.FindByID(ctx, id)
		if err != nil {
			return noEncontrado(err, "Orden no encontrada")
		}
		anteriores := actual.Productos
		lineas := p.lineas
		if !p.conLineas {
			lineas = copiarLineas(anteriores)
		}

		eraCompletada := actual.EstadoOrden == model.EstadoCompletada
		esCompletada := p.orden.EstadoOrden == model.EstadoCompletada
		rehacer := eraCompletada != esCompletada ||
			(esCompletada && (p.conLineas || actual.TipoOrden != p.orden.TipoOrden))

		if eraCompletada && rehacer {
			t, err := s.moverStock(ctx, tx, id, actual.TipoOrden, anteriores, true)
			if err != nil {
				return err
			}
			tocados = append(tocados, t...)
		}

		orden := p.orden
		orden.ID = id
		if p.conservarValor {
			orden.ValorOrden = actual.ValorOrden
		}
		if err := ordenes.Update(ctx, &orden); err != nil {
			return err
		}
		if p.conLineas {
			if err := ordenes.ReplaceLineas(ctx, id, lineas); err != nil {
				return err
			}
		}

		if esCompletada && rehacer {
			t, err := s.moverStock(ctx, tx, id, orden.TipoOrden, lineas, false)
			if err != nil {
				return err
			}
			tocados = append(tocados, t...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tocados...)
	zerolog.Ctx(ctx).Info().Uint("orden_id", id).Msg("orden actualizada")
	return nil
}

func (s *ordenService) Eliminar(ctx context.Context, id uint) error {
	var tocados []string
	err := runTx(ctx, s.ordenes.DB(), func(tx *gorm.DB) error {
		ordenes := s.ordenes.WithTx(tx)
		actual, err := ordenes.FindByID(ctx, id)
		if err != nil {
			return noEncontrado(err, "Orden no encontrada")
		}
		if actual.EstadoOrden == model.EstadoCompletada {
			tocados, err = s.moverStock(ctx, tx, id, actual.TipoOrden, actual.Productos, true)
			if err != nil {
				return err
			}
		}
		return ordenes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.cache.Invalidar(ctx, tocados...)
	zerolog.Ctx(ctx).Info().Uint("orden_id", id).Msg("orden eliminada")
	return nil
}

// moverStock applies (or, with revertir, undoes) the stock effect of a
// completed order: Entrada adds, Salida subtracts. Each change is recorded
// as a MovimientoStock. It returns the codigos whose stock changed.
func (s *ordenService) moverStock(ctx context.Context, tx *gorm.DB, ordenID uint, tipo string, lineas []model.OrdenProducto, revertir bool) ([]string, error) {
	productos := s.productos.WithTx(tx)
	movimientos := s.movimientos.WithTx(tx)
	codigos := make([]string, 0, len(lineas))

	for _, l := range lineas {
		p, err := productos.FindByIDForUpdate(ctx, l.ProductoID)
		if err != nil {
			return nil, noEncontrado(err, fmt.Sprintf("Producto %d no encontrado", l.ProductoID))
		}
		delta, movTipo := l.Cantidad, model.MovimientoEntrada
		if tipo == model.TipoSalida {
			delta, movTipo = -delta, model.MovimientoSalida
		}
		if revertir {
			delta = -delta
			movTipo = model.MovimientoReverso
		}
		nuevo := p.StockActual + delta
		if nuevo < 0 {
			return nil, apierror.Validacion("Stock insuficiente para el producto %s (disponible %d, requerido %d)",
				p.Codigo, p.StockActual, -delta)
		}
		if err := productos.UpdateStock(ctx, p.ID, nuevo); err != nil {
			return nil, err
		}
		ref := ordenID
		mov := &model.MovimientoStock{
			ProductoID:    p.ID,
			OrdenID:       &ref,
			Tipo:          movTipo,
			Cantidad:      delta,
			StockAnterior: p.StockActual,
			StockNuevo:    nuevo,
		}
		if err := movimientos.Create(ctx, mov); err != nil {
			return nil, err
		}
		codigos = append(codigos, p.Codigo)
	}
	return codigos, nil
}

func copiarLineas(src []model.OrdenProducto) []model.OrdenProducto {
	out := make([]model.OrdenProducto, len(src))
	for i, l := range src {
		out[i] = model.OrdenProducto{ProductoID: l.ProductoID, Cantidad: l.Cantidad, PrecioUnitario: l.PrecioUnitario}
	}
	return out
}

func (s *ordenService) PDF(ctx context.Context, id uint, w io.Writer) error {
	o, err := s.ordenes.FindByID(ctx, id)
	if err != nil {
		return noEncontrado(err, "Orden no encontrada")
	}
	nombre, empresa := partesOrden(o)
	return infra.GenerateOrdenPDF(w, infra.OrdenPDFData{Orden: o, Interlocutor: nombre, Empresa: empresa})
}

func contiene(valores []string, v string) bool {
	for _, x := range valores {
		if x == v {
			return true
		}
	}
	return false
}
