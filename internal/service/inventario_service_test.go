package service

import (
	"context"
	"testing"
	"time"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventario_CrearYDetalle(t *testing.T) {
	ctx := context.Background()
	s := nuevosServicios(t)

	id, err := s.inventario.Crear(ctx, dto.CrearProductoRequest{
		Codigo: " POL-010 ", Nombre: "Polera básica", TipoPrenda: "Polera",
		Talla: ptr("M"), Color: ptr("Negro"),
		ValorCompra: dec("5000"), ValorVenta: dec("7500"),
	})
	require.NoError(t, err)

	det, err := s.inventario.Detalle(ctx, id)
	require.NoError(t, err)
	info := det.InfoProducto
	assert.Equal(t, "POL-010", info.Codigo)
	assert.Equal(t, "Polera básica", info.Nombre)
	assert.Equal(t, 0, info.StockActual)
	assert.Equal(t, 5, info.StockMinimo)
	assert.Equal(t, model.ProductoActivo, info.Estado)
	assert.InDelta(t, 5000, info.ValorCompra, 0.001)
	assert.InDelta(t, 7500, info.ValorVenta, 0.001)
	assert.InDelta(t, 50, det.Estadisticas.Margen, 0.001)
	assert.Zero(t, det.Estadisticas.TotalOrdenes)
	assert.Empty(t, det.Ordenes)

	porCodigo, err := s.inventario.PorCodigo(ctx, "POL-010")
	require.NoError(t, err)
	assert.Equal(t, id, porCodigo.ID)

	_, err = s.inventario.PorCodigo(ctx, "NADA")
	requireKind(t, err, apierror.KindNoEncontrado)
}

func TestInventario_CrearValidaciones(t *testing.T) {
	ctx := context.Background()
	s := nuevosServicios(t)
	base := dto.CrearProductoRequest{Codigo: "A1", Nombre: "Abrigo", TipoPrenda: "Abrigo", ValorVenta: dec("1")}

	_, err := s.inventario.Crear(ctx, base)
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "El campo valor_compra es obligatorio", apierror.Message(err))

	base.ValorCompra = dec("-1")
	_, err = s.inventario.Crear(ctx, base)
	requireKind(t, err, apierror.KindValidacion)

	base.ValorCompra = dec("1")
	_, err = s.inventario.Crear(ctx, base)
	require.NoError(t, err)
	_, err = s.inventario.Crear(ctx, base)
	requireKind(t, err, apierror.KindConflicto)
	assert.Equal(t, "Ya existe un producto con este código", apierror.Message(err))

	// the duplicate codigo is reported before missing prices
	_, err = s.inventario.Crear(ctx, dto.CrearProductoRequest{Codigo: " A1 ", Nombre: "Otro", TipoPrenda: "Abrigo"})
	requireKind(t, err, apierror.KindConflicto)
}

func TestInventario_FechaActualizacionSoloCambiaAlActualizar(t *testing.T) {
	ctx := context.Background()
	s := nuevosServicios(t)
	id, err := s.inventario.Crear(ctx, dto.CrearProductoRequest{
		Codigo: "JEA-1", Nombre: "Jeans", TipoPrenda: "Pantalón", ValorCompra: dec("9000"), ValorVenta: dec("15000"),
	})
	require.NoError(t, err)

	antes, err := s.productos.FindByID(ctx, id)
	require.NoError(t, err)

	_, err = s.inventario.Detalle(ctx, id)
	require.NoError(t, err)
	_, err = s.inventario.Lista(ctx, dto.ProductoListaFilter{})
	require.NoError(t, err)
	leido, err := s.productos.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, antes.FechaActualizacion.Equal(leido.FechaActualizacion), "reads must not touch fecha_actualizacion")

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.inventario.Actualizar(ctx, id, dto.ActualizarProductoRequest{ValorVenta: dec("16000")}))

	despues, err := s.productos.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, despues.FechaActualizacion.After(antes.FechaActualizacion))
	assert.True(t, despues.FechaCreacion.Equal(antes.FechaCreacion))
	assert.Equal(t, "Jeans", despues.Nombre)
	assert.True(t, despues.ValorVenta.Equal(decimal.NewFromInt(16000)))

	requireKind(t, s.inventario.Actualizar(ctx, id+1, dto.ActualizarProductoRequest{}), apierror.KindNoEncontrado)
}

func TestInventario_EliminarConOrdenesSeBloquea(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)
	orden, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		Productos: []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 1}},
	})
	require.NoError(t, err)

	err = e.inventario.Eliminar(ctx, e.productoID)
	requireKind(t, err, apierror.KindConflicto)
	assert.Equal(t, "No se puede eliminar el producto porque tiene órdenes asociadas", apierror.Message(err))

	det, err := e.inventario.Detalle(ctx, e.productoID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, det.Estadisticas.TotalOrdenes)
	require.Len(t, det.Ordenes, 1)
	assert.Equal(t, orden, det.Ordenes[0].ID)

	require.NoError(t, e.ordenes.Eliminar(ctx, orden))
	require.NoError(t, e.inventario.Eliminar(ctx, e.productoID))
	requireKind(t, e.inventario.Eliminar(ctx, e.productoID), apierror.KindNoEncontrado)
}

func TestInventario_ListaOrdenYAlertas(t *testing.T) {
	ctx := context.Background()
	s := nuevosServicios(t)
	for _, p := range []dto.CrearProductoRequest{
		{Codigo: "B", Nombre: "Blusa", TipoPrenda: "Blusa", StockActual: ptr(2)},
		{Codigo: "A", Nombre: "Abrigo", TipoPrenda: "Abrigo", StockActual: ptr(40)},
		{Codigo: "C", Nombre: "Chaqueta", TipoPrenda: "Chaqueta", StockActual: ptr(5), Estado: model.ProductoInactivo},
	} {
		p.ValorCompra, p.ValorVenta = dec("100"), dec("200")
		_, err := s.inventario.Crear(ctx, p)
		require.NoError(t, err)
	}

	lista, err := s.inventario.Lista(ctx, dto.ProductoListaFilter{SortBy: "nombre", Direction: "desc"})
	require.NoError(t, err)
	require.Len(t, lista.Productos, 3)
	assert.Equal(t, "Chaqueta", lista.Productos[0].Nombre)

	// unknown columns fall back to id order
	lista, err = s.inventario.Lista(ctx, dto.ProductoListaFilter{SortBy: "nombre; DROP TABLE productos"})
	require.NoError(t, err)
	require.Len(t, lista.Productos, 3)
	assert.Equal(t, "B", lista.Productos[0].Codigo)

	lista, err = s.inventario.Lista(ctx, dto.ProductoListaFilter{Estado: model.ProductoActivo})
	require.NoError(t, err)
	assert.Len(t, lista.Productos, 2)

	alertas, err := s.inventario.Alertas(ctx)
	require.NoError(t, err)
	codigos := make([]string, len(alertas))
	for i, a := range alertas {
		codigos[i] = a.Codigo
	}
	assert.Contains(t, codigos, "B")
	assert.NotContains(t, codigos, "A")

	res, err := s.inventario.Buscar(ctx, "abr")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "A", res[0].Codigo)
}

func TestProductoCache_NilEsNoOp(t *testing.T) {
	var c *ProductoCache
	ctx := context.Background()
	c.Set(ctx, &dto.ProductoInfo{Codigo: "X"})
	c.Invalidar(ctx, "X")
	_, ok := c.Get(ctx, "X")
	assert.False(t, ok)

	_, ok = NewProductoCache(nil, time.Minute).Get(ctx, "X")
	assert.False(t, ok)
}
