package service

import (
	"context"
	"testing"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/model"
	"github.com/glYohanny/Gucci/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterlocutor_CrearValidaciones(t *testing.T) {
	ctx := context.Background()
	s := nuevosServicios(t)

	_, err := s.interlocutor.Crear(ctx, model.InterlocutorCliente, dto.InterlocutorDatos{Nombre: "  ", Empresa: "Tiendas Sur"})
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "Nombre y empresa son obligatorios", apierror.Message(err))

	_, err = s.interlocutor.Crear(ctx, model.InterlocutorCliente, dto.InterlocutorDatos{
		Nombre: "Ana", Empresa: "Tiendas Sur", Email: ptr("sin-arroba"),
	})
	requireKind(t, err, apierror.KindValidacion)

	_, err = s.interlocutor.Crear(ctx, model.InterlocutorCliente, dto.InterlocutorDatos{
		Nombre: "Ana", Empresa: "Tiendas Sur", Rut: ptr("111111111"),
	})
	require.NoError(t, err)
	_, err = s.interlocutor.Crear(ctx, model.InterlocutorCliente, dto.InterlocutorDatos{
		Nombre: "Otra", Empresa: "Otra SA", Rut: ptr("111111111"),
	})
	requireKind(t, err, apierror.KindConflicto)

	// the same RUT is fine in the other table
	_, err = s.interlocutor.Crear(ctx, model.InterlocutorProveedor, dto.InterlocutorDatos{
		Nombre: "Otra", Empresa: "Otra SA", Rut: ptr("111111111"),
	})
	assert.NoError(t, err)
}

func TestInterlocutor_ReglaRUTInyectada(t *testing.T) {
	s := nuevosServicios(t)
	reglas := model.Reglas{RUTValido: func(rut string) bool { return len(rut) == 9 }}
	svc := NewInterlocutorService(repository.NewInterlocutorRepository(s.db), s.ordenesRepo, reglas)

	_, err := svc.Crear(context.Background(), model.InterlocutorCliente, dto.InterlocutorDatos{
		Nombre: "Ana", Empresa: "Tiendas Sur", Rut: ptr("123"),
	})
	requireKind(t, err, apierror.KindValidacion)
	assert.Equal(t, "Formato de RUT inválido", apierror.Message(err))
}

func TestInterlocutor_EliminarConOrdenesSeBloquea(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	orden, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02", ValorOrden: dec("1000"),
	})
	require.NoError(t, err)
	_, err = e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoEntrada, InterlocutorID: e.proveedorID, FechaOrden: "2024-03-02", ValorOrden: dec("1000"),
	})
	require.NoError(t, err)

	err = e.interlocutor.Eliminar(ctx, model.InterlocutorCliente, e.clienteID)
	requireKind(t, err, apierror.KindConflicto)
	assert.Contains(t, apierror.Message(err), "No se puede eliminar el cliente porque tiene órdenes asociadas")

	err = e.interlocutor.Eliminar(ctx, model.InterlocutorProveedor, e.proveedorID)
	requireKind(t, err, apierror.KindConflicto)

	_, err = e.interlocutor.Detalle(ctx, model.InterlocutorCliente, e.clienteID)
	require.NoError(t, err, "blocked delete must leave the row in place")

	require.NoError(t, e.ordenes.Eliminar(ctx, orden))
	require.NoError(t, e.interlocutor.Eliminar(ctx, model.InterlocutorCliente, e.clienteID))

	err = e.interlocutor.Eliminar(ctx, model.InterlocutorCliente, e.clienteID)
	requireKind(t, err, apierror.KindNoEncontrado)
	assert.Equal(t, "Cliente no encontrado", apierror.Message(err))
}

func TestInterlocutor_DetalleYPaginacion(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)
	for _, f := range []string{"2024-01-05", "2024-02-05", "2024-03-05"} {
		_, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
			TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: f, ValorOrden: dec("1500.50"),
		})
		require.NoError(t, err)
	}

	det, err := e.interlocutor.Detalle(ctx, model.InterlocutorCliente, e.clienteID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente", det.InfoInterlocutor.Tipo)
	assert.EqualValues(t, 3, det.Estadisticas.TotalOrdenes)
	assert.InDelta(t, 4501.5, det.Estadisticas.ValorTotal, 0.001)
	require.Len(t, det.Ordenes, 3)
	assert.Equal(t, "2024-03-05", det.Ordenes[0].Fecha)

	pag, err := e.interlocutor.Ordenes(ctx, model.InterlocutorCliente, e.clienteID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, pag.TotalPages)
	assert.Equal(t, 2, pag.CurrentPage)
	assert.EqualValues(t, 3, pag.TotalItems)
	assert.Len(t, pag.Ordenes, 1)

	_, err = e.interlocutor.Detalle(ctx, model.InterlocutorProveedor, e.clienteID+50)
	requireKind(t, err, apierror.KindNoEncontrado)
}

func TestInterlocutor_ActualizarParcial(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)

	require.NoError(t, e.interlocutor.Actualizar(ctx, model.InterlocutorProveedor, e.proveedorID, dto.ActualizarInterlocutorRequest{
		Telefono: ptr("+56911112222"),
	}))
	det, err := e.interlocutor.Detalle(ctx, model.InterlocutorProveedor, e.proveedorID)
	require.NoError(t, err)
	assert.Equal(t, "Telas SA", det.InfoInterlocutor.Nombre)
	require.NotNil(t, det.InfoInterlocutor.Telefono)
	assert.Equal(t, "+56911112222", *det.InfoInterlocutor.Telefono)

	err = e.interlocutor.Actualizar(ctx, model.InterlocutorProveedor, e.proveedorID, dto.ActualizarInterlocutorRequest{
		Empresa: ptr(""),
	})
	requireKind(t, err, apierror.KindValidacion)
}

func TestInterlocutor_BuscarYEstadisticas(t *testing.T) {
	ctx := context.Background()
	e := nuevoEscenario(t)
	_, err := e.ordenes.Crear(ctx, dto.OrdenRequest{
		TipoOrden: model.TipoSalida, InterlocutorID: e.clienteID, FechaOrden: "2024-03-02", ValorOrden: dec("2500"),
	})
	require.NoError(t, err)

	res, err := e.interlocutor.Buscar(ctx, "sur", "todos")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Cliente", res[0].Tipo)

	res, err = e.interlocutor.Buscar(ctx, "sur", "proveedor")
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = e.interlocutor.Buscar(ctx, "sur", "empleado")
	requireKind(t, err, apierror.KindValidacion)

	est, err := e.interlocutor.Estadisticas(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, est.Totales.Clientes)
	assert.EqualValues(t, 1, est.Totales.Proveedores)
	require.Len(t, est.TopClientes, 1)
	assert.InDelta(t, 2500, est.TopClientes[0].TotalValor, 0.001)
	assert.Empty(t, est.TopProveedores)

	lista, err := e.interlocutor.Lista(ctx)
	require.NoError(t, err)
	assert.Len(t, lista.Clientes, 1)
	assert.Len(t, lista.Proveedores, 1)
}
