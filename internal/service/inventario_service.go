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
	stockMinimoDefecto = 5
	ordenesPorProducto = 10
)

// columnasOrdenables whitelists the sort_by values of the product list.
var columnasOrdenables = map[string]bool{
	"id": true, "codigo": true, "nombre": true, "tipo_prenda": true,
	"talla": true, "color": true, "marca": true,
	"valor_compra": true, "valor_venta": true,
	"stock_actual": true, "stock_minimo": true, "estado": true,
	"fecha_creacion": true, "fecha_actualizacion": true,
}

type InventarioService interface {
	Lista(ctx context.Context, filter dto.ProductoListaFilter) (*dto.ProductoListaResponse, error)
	Detalle(ctx context.Context, id uint) (*dto.ProductoDetalleResponse, error)
	Crear(ctx context.Context, req dto.CrearProductoRequest) (uint, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) error
	Eliminar(ctx context.Context, id uint) error
	Buscar(ctx context.Context, termino string) ([]dto.ProductoResumen, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	// PorCodigo looks a product up by codigo through the Redis cache.
	PorCodigo(ctx context.Context, codigo string) (*dto.ProductoInfo, error)
}

type inventarioService struct {
	productos repository.ProductoRepository
	ordenes   repository.OrdenRepository
	cache     *ProductoCache
}

func NewInventarioService(productos repository.ProductoRepository, ordenes repository.OrdenRepository, cache *ProductoCache) InventarioService {
	return &inventarioService{productos: productos, ordenes: ordenes, cache: cache}
}

func (s *inventarioService) Lista(ctx context.Context, filter dto.ProductoListaFilter) (*dto.ProductoListaResponse, error) {
	f := repository.ProductoFilter{
		Estado: filter.Estado,
		SortBy: "id",
		Desc:   strings.EqualFold(filter.Direction, "desc"),
	}
	if columnasOrdenables[filter.SortBy] {
		f.SortBy = filter.SortBy
	}
	productos, err := s.productos.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ProductoListaResponse{Productos: resumenes(productos)}, nil
}

func resumenes(productos []model.Producto) []dto.ProductoResumen {
	out := make([]dto.ProductoResumen, len(productos))
	for i, p := range productos {
		out[i] = dto.ProductoResumen{
			ID: p.ID, Codigo: p.Codigo, Nombre: p.Nombre, TipoPrenda: p.TipoPrenda,
			StockActual: p.StockActual, Estado: p.Estado,
		}
	}
	return out
}

func productoInfo(p *model.Producto) *dto.ProductoInfo {
	return &dto.ProductoInfo{
		ID:                 p.ID,
		Codigo:             p.Codigo,
		Nombre:             p.Nombre,
		Descripcion:        p.Descripcion,
		TipoPrenda:         p.TipoPrenda,
		Talla:              p.Talla,
		Color:              p.Color,
		Marca:              p.Marca,
		ValorCompra:        p.ValorCompra.InexactFloat64(),
		ValorVenta:         p.ValorVenta.InexactFloat64(),
		StockActual:        p.StockActual,
		StockMinimo:        p.StockMinimo,
		Estado:             p.Estado,
		FechaCreacion:      p.FechaCreacion.Format(formatoFecha),
		FechaActualizacion: p.FechaActualizacion.Format(formatoFecha),
	}
}

func (s *inventarioService) Detalle(ctx context.Context, id uint) (*dto.ProductoDetalleResponse, error) {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "Producto no encontrado")
	}
	total, err := s.ordenes.CountLineasByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	filas, err := s.ordenes.OrdenesDeProducto(ctx, id, ordenesPorProducto)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductoDetalleResponse{
		InfoProducto: *productoInfo(p),
		Estadisticas: dto.ProductoEstadisticas{
			TotalOrdenes:        int(total),
			UltimaActualizacion: p.FechaActualizacion.Format(formatoFecha),
			Margen:              p.Margen().InexactFloat64(),
		},
		Ordenes: make([]dto.ProductoOrden, len(filas)),
	}
	for i, f := range filas {
		resp.Ordenes[i] = dto.ProductoOrden{
			ID:             f.OrdenID,
			Fecha:          f.FechaOrden.Format(formatoFecha),
			Tipo:           f.TipoOrden,
			Estado:         f.EstadoOrden,
			Cantidad:       f.Cantidad,
			PrecioUnitario: f.PrecioUnitario.InexactFloat64(),
		}
	}
	return resp, nil
}

func (s *inventarioService) Crear(ctx context.Context, req dto.CrearProductoRequest) (uint, error) {
	codigo := strings.TrimSpace(req.Codigo)
	existe, err := s.productos.ExistsCodigo(ctx, codigo)
	if err != nil {
		return 0, err
	}
	if existe {
		return 0, apierror.Conflicto("Ya existe un producto con este código")
	}
	if req.ValorCompra == nil {
		return 0, apierror.Validacion("El campo valor_compra es obligatorio")
	}
	if req.ValorVenta == nil {
		return 0, apierror.Validacion("El campo valor_venta es obligatorio")
	}
	p := &model.Producto{
		Codigo:      codigo,
		Nombre:      strings.TrimSpace(req.Nombre),
		Descripcion: req.Descripcion,
		TipoPrenda:  strings.TrimSpace(req.TipoPrenda),
		Talla:       req.Talla,
		Color:       req.Color,
		Marca:       req.Marca,
		ValorCompra: *req.ValorCompra,
		ValorVenta:  *req.ValorVenta,
		StockMinimo: stockMinimoDefecto,
		Estado:      model.ProductoActivo,
	}
	if req.StockActual != nil {
		p.StockActual = *req.StockActual
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.Estado != "" {
		p.Estado = req.Estado
	}

	if err := s.productos.Create(ctx, p); err != nil {
		return 0, duplicado(err, "Ya existe un producto con este código")
	}
	zerolog.Ctx(ctx).Info().Uint("producto_id", p.ID).Str("codigo", p.Codigo).Msg("producto creado")
	return p.ID, nil
}

func (s *inventarioService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) error {
	p, err := s.productos.FindByID(ctx, id)
	if err != nil {
		return noEncontrado(err, "Producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.TipoPrenda != nil {
		p.TipoPrenda = strings.TrimSpace(*req.TipoPrenda)
	}
	if req.Talla != nil {
		p.Talla = req.Talla
	}
	if req.Color != nil {
		p.Color = req.Color
	}
	if req.Marca != nil {
		p.Marca = req.Marca
	}
	if req.ValorCompra != nil {
		p.ValorCompra = *req.ValorCompra
	}
	if req.ValorVenta != nil {
		p.ValorVenta = *req.ValorVenta
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if err := s.productos.Update(ctx, p); err != nil {
		return err
	}
	s.cache.Invalidar(ctx, p.Codigo)
	return nil
}

// Eliminar refuses while any order line references the product.
func (s *inventarioService) Eliminar(ctx context.Context, id uint) error {
	var codigo string
	err := runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		productos := s.productos.WithTx(tx)
		p, err := productos.FindByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := s.ordenes.WithTx(tx).CountLineasByProducto(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apierror.Conflicto("No se puede eliminar el producto porque tiene órdenes asociadas")
		}
		codigo = p.Codigo
		return productos.Delete(ctx, id)
	})
	if err != nil {
		return noEncontrado(err, "Producto no encontrado")
	}
	s.cache.Invalidar(ctx, codigo)
	zerolog.Ctx(ctx).Info().Uint("producto_id", id).Msg("producto eliminado")
	return nil
}

func (s *inventarioService) Buscar(ctx context.Context, termino string) ([]dto.ProductoResumen, error) {
	productos, err := s.productos.Buscar(ctx, strings.TrimSpace(termino))
	if err != nil {
		return nil, err
	}
	return resumenes(productos), nil
}

func (s *inventarioService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.productos.BajoStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertaStockResponse, len(productos))
	for i, p := range productos {
		out[i] = dto.AlertaStockResponse{
			ID:          p.ID,
			Codigo:      p.Codigo,
			Nombre:      p.Nombre,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
			Faltante:    p.StockMinimo - p.StockActual,
		}
	}
	return out, nil
}

func (s *inventarioService) PorCodigo(ctx context.Context, codigo string) (*dto.ProductoInfo, error) {
	codigo = strings.TrimSpace(codigo)
	if info, ok := s.cache.Get(ctx, codigo); ok {
		return info, nil
	}
	p, err := s.productos.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, noEncontrado(err, "Producto no encontrado")
	}
	info := productoInfo(p)
	s.cache.Set(ctx, info)
	return info, nil
}
