package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type escenario struct {
	*servicios
	clienteID   uint
	proveedorID uint
	productoID  uint
}

// nuevoEscenario seeds one cliente, one proveedor and a product with ten
// units in stock.
func nuevoEscenario(t *testing.T) *escenario {
	t.Helper()
	ctx := context.Background()
	s := nuevosServicios(t)

	cliente, err := s.interlocutor.Crear(ctx, model.InterlocutorCliente, dto.InterlocutorDatos{Nombre: "Ana Pérez", Empresa: "Tiendas Sur"})
	require.NoError(t, err)
	proveedor, err := s.interlocutor.Crear(ctx, model.InterlocutorProveedor, dto.InterlocutorDatos{Nombre: "Telas SA", Empresa: "Textil Norte"})
	require.NoError(t, err)
	producto, err := s.inventario.Crear(ctx, dto.CrearProductoRequest{
		Codigo: "CAM-001", Nombre: "Camisa lino", TipoPrenda: "Camisa",
		ValorCompra: dec("10000"), ValorVenta: dec("19990"), StockActual: ptr(10),
	})
	require.NoError(t, err)
	return &escenario{servicios: s, clienteID: cliente, proveedorID: proveedor, productoID: producto}
}

func (e *escenario) stock(t *testing.T) int {
	t.Helper()
	p, err := e.productos.FindByID(context.Background(), e.productoID)
	require.NoError(t, err)
	return p.StockActual
}

func TestOrden_CrearEntradaUsaProveedor(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	id, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoEntrada, InterlocutorID: e.proveedorID, FechaOrden: "2024-03-01",
		Productos: []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 3}},
	})
	require.NoError(t, err)

	o, err := e.ordenesRepo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, o.ProveedorID)
	assert.Nil(t, o.ClienteID)
	assert.Equal(t, model.EstadoPendiente, o.EstadoOrden)
	assert.True(t, o.ValorOrden.Equal(decimal.NewFromInt(30000)), "valor_orden defaults to the line total at valor_compra")
	assert.Equal(t, 10, e.stock(t), "pending orders do not move stock")

	resp, err := e.ordenes.Obtener(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "30000.00", resp.ValorOrden)
	assert.Equal(t, e.proveedorID, resp.InterlocutorID)
	require.Len(t, resp.Productos, 1)
	assert.Equal(t, "CAM-001", resp.Productos[0].Codigo)
	assert.InDelta(t, 30000, resp.Productos[0].Subtotal, 0.001)
}

func TestOrden_ContraparteDebeCoincidirConTipo(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	_, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.proveedorID + 100, FechaOrden: "2024-03-01", ValorOrden: dec("1000"),
	})
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "Cliente no encontrado", apierror.Message(err))

	_, err = e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: "Devolucion", InterlocutorID: e.clienteID, FechaOrden: "2024-03-01", ValorOrden: dec("1000"),
	})
	requireKind(t, err, apierror.KindValidacion)

	_, err = e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-01",
	})
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "El campo valor_orden es obligatorio", apierror.Message(err))
}

func TestOrden_CambioDeTipoCambiaContraparte(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)
	id, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoEntrada, InterlocutorID: e.proveedorID, FechaOrden: "2024-03-01", ValorOrden: dec("5000"),
	})
	require.NoError(t, err)

	require.NoError(t, e.ordenes.Actualizar(ctx, id, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02", ValorOrden: dec("5000"),
	}))
	o, err := e.ordenesRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, o.ProveedorID)
	require.NotNil(t, o.ClienteID)
	assert.Equal(t, e.clienteID, *o.ClienteID)

	filas, err := e.ordenes.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "Ana Pérez", filas[0].Interlocutor)
	assert.Equal(t, "Tiendas Sur", filas[0].Empresa)
}

func TestOrden_CompletadaMueveStock(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	entrada, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoEntrada, InterlocutorID: e.proveedorID, FechaOrden: "2024-03-01",
		EstadoOrden: model.EstadoCompletada,
		Productos:   []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, e.stock(t))

	salida, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		EstadoOrden: model.EstadoCompletada,
		Productos:   []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 12}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, e.stock(t))

	movs, err := e.movimientos.ListByOrden(ctx, salida)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovimientoSalida, movs[0].Tipo)
	assert.Equal(t, -12, movs[0].Cantidad)
	assert.Equal(t, 15, movs[0].StockAnterior)
	assert.Equal(t, 3, movs[0].StockNuevo)

	// moving the sale back to pending returns its units
	require.NoError(t, e.ordenes.Actualizar(ctx, salida, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		EstadoOrden: model.EstadoPendiente,
	}))
	assert.Equal(t, 15, e.stock(t))
	o, err := e.ordenesRepo.FindByID(ctx, salida)
	require.NoError(t, err)
	assert.True(t, o.ValorOrden.Equal(decimal.NewFromInt(12*19990)), "a status-only update keeps valor_orden")
	assert.Len(t, o.Productos, 1)
	movs, err = e.movimientos.ListByOrden(ctx, salida)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, model.MovimientoReverso, movs[1].Tipo)

	require.NoError(t, e.ordenes.Eliminar(ctx, entrada))
	assert.Equal(t, 10, e.stock(t))
	requireKind(t, e.ordenes.Eliminar(ctx, entrada), apierror.KindNoEncontrado)
}

func TestOrden_StockInsuficienteNoCreaOrden(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	_, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		EstadoOrden: model.EstadoCompletada,
		Productos:   []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 11}},
	})
	requireKind(t, err, apierror.KindValidacion)
	assert.Contains(t, apierror.Message(err), "Stock insuficiente para el producto CAM-001")

	filas, err := e.ordenes.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, filas)
	assert.Equal(t, 10, e.stock(t))
}

func TestOrden_ProductoInexistente(t *testing.T) {
	e := nuevoEscenario(t)
	_, err := e.ordenes.Crear(context.Background(), dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		Productos: []dto.OrdenLineaRequest{{ProductoID: 999, Cantidad: 1}},
	})
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "Producto 999 no encontrado", apierror.Message(err))
}

func TestOrden_PDF(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)
	id, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		Productos: []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 2}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.ordenes.PDF(ctx, id, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	requireKind(t, e.ordenes.PDF(ctx, id+1, &buf), apierror.KindNoEncontrado)
}

func TestOrden_SinLineasNiValor(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	_, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
	})
	requireKind(t, err, apierror.KindValidacion)

	id, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		Productos: []dto.OrdenLineaRequest{{ProductoID: e.productoID, Cantidad: 1}},
	})
	require.NoError(t, err)

	// an explicit empty line list replaces the lines, so valor_orden is required again
	err = e.ordenes.Actualizar(ctx, id, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02",
		Productos: []dto.OrdenLineaRequest{},
	})
	requireKind(t, err, apierror.KindValidacion)

	require.NoError(t, e.ordenes.Actualizar(ctx, id, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-05",
		EstadoOrden: model.EstadoCancelada,
	}))
	o, err := e.ordenesRepo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoCancelada, o.EstadoOrden)
	assert.True(t, o.ValorOrden.Equal(decimal.NewFromInt(19990)))
}
