package service

import (
	"context"
	"testing"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	*invFixture
	eventos   *stubEventoRepo
	svc       PedidoService
	usuarioID uuid.UUID
}

func newPedidoFixture() *pedidoFixture {
	inv := newInvFixture()
	eventos := newStubEventoRepo()
	eventos.eventos[inv.eventoID] = &model.Evento{
		ID:     inv.eventoID,
		Nombre: "Feria gastronomica",
		Fecha:  time.Now(),
		Estado: "activo",
		Activo: true,
	}
	return &pedidoFixture{
		invFixture: inv,
		eventos:    eventos,
		svc:        NewPedidoService(inv.pedidos, eventos, inv.inv, inv.svc, nil),
		usuarioID:  uuid.New(),
	}
}

func (f *pedidoFixture) crearPedido(t *testing.T, productoID uuid.UUID, cantidad int) *dto.PedidoResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), f.eventoID, f.usuarioID, dto.CrearPedidoRequest{
		Items:      []dto.ItemPedidoRequest{{ProductoID: productoID.String(), Cantidad: cantidad}},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	return resp
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearPedidoDescuentaYNumera(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)

	primero := f.crearPedido(t, gaseosa, 2)
	assert.Equal(t, 1, primero.NumeroPedido)
	assert.Equal(t, model.PedidoPendiente, primero.Estado)
	assert.True(t, primero.Total.Equal(dec("2000")), "total = %s", primero.Total)
	require.Len(t, primero.Items, 1)
	assert.Equal(t, "Gaseosa", primero.Items[0].Producto)
	assert.True(t, primero.Items[0].PrecioUnitario.Equal(dec("1000")))

	segundo := f.crearPedido(t, gaseosa, 1)
	assert.Equal(t, 2, segundo.NumeroPedido)

	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, gaseosa)
	assert.Equal(t, 47, row.CantidadActual)
}

func TestCrearPedidoConRecetaDescuentaInsumos(t *testing.T) {
	f := newPedidoFixture()
	harina := f.seedInsumo("Harina", "2.00", true)
	pizza := f.seedProducto("Pizza", true, model.ProductoInsumo{InsumoID: harina, CantidadPorUnidad: dec("0.200")})
	f.seedInventarioProducto(pizza, 20, 20, 2, "0.40", "10", true)
	f.seedInventarioInsumo(harina, "10", "10", "1", "2.00")

	f.crearPedido(t, pizza, 5)

	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, pizza)
	assert.Equal(t, 15, row.CantidadActual)
	h, _ := f.inv.FindInsumo(context.Background(), f.eventoID, harina)
	assert.True(t, h.CantidadActual.Equal(dec("9")), "harina = %s", h.CantidadActual)
}

func TestCrearPedidoEventoCerrado(t *testing.T) {
	f := newPedidoFixture()
	f.eventos.eventos[f.eventoID].Estado = "cerrado"
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)

	_, err := f.svc.Crear(context.Background(), f.eventoID, f.usuarioID, dto.CrearPedidoRequest{
		Items:      []dto.ItemPedidoRequest{{ProductoID: gaseosa.String(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	var ve *ValidacionError
	assert.ErrorAs(t, err, &ve)
}

func TestCrearPedidoEventoInexistente(t *testing.T) {
	f := newPedidoFixture()
	_, err := f.svc.Crear(context.Background(), uuid.New(), f.usuarioID, dto.CrearPedidoRequest{
		Items:      []dto.ItemPedidoRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	assert.Error(t, err)
}

func TestCrearPedidoStockInsuficiente(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 2, 5, "300", "1000", false)

	_, err := f.svc.Crear(context.Background(), f.eventoID, f.usuarioID, dto.CrearPedidoRequest{
		Items:      []dto.ItemPedidoRequest{{ProductoID: gaseosa.String(), Cantidad: 3}},
		MetodoPago: "efectivo",
	})
	var se *StockInsuficienteError
	require.ErrorAs(t, err, &se)

	// Rejected before anything moved.
	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, gaseosa)
	assert.Equal(t, 2, row.CantidadActual)
	pedidos, _ := f.pedidos.ListActivos(context.Background(), f.eventoID)
	assert.Empty(t, pedidos)
}

func TestCrearPedidoProductoNoCargado(t *testing.T) {
	f := newPedidoFixture()
	_, err := f.svc.Crear(context.Background(), f.eventoID, f.usuarioID, dto.CrearPedidoRequest{
		Items:      []dto.ItemPedidoRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
		MetodoPago: "efectivo",
	})
	var ve *ValidacionError
	assert.ErrorAs(t, err, &ve)
}

func TestCrearPedidoSnapshotSobrevivePrecios(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)

	pedido := f.crearPedido(t, gaseosa, 1)

	// Reprice after the sale; the pedido keeps the original snapshot.
	nuevo := dec("1500")
	_, err := f.invFixture.svc.ActualizarProducto(context.Background(), f.eventoID, gaseosa,
		dto.ActualizarInventarioProductoRequest{PrecioVenta: &nuevo})
	require.NoError(t, err)

	guardado, err := f.pedidos.FindByID(context.Background(), uuid.MustParse(pedido.ID))
	require.NoError(t, err)
	assert.True(t, guardado.Items[0].PrecioUnitario.Equal(dec("1000")))
}

// ── Transiciones de cocina ───────────────────────────────────────────────────

func TestTransicionesDeCocina(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)
	pedido := f.crearPedido(t, gaseosa, 1)
	pedidoID := uuid.MustParse(pedido.ID)

	resp, err := f.svc.IniciarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)
	assert.Equal(t, model.PedidoEnPreparacion, resp.Estado)

	resp, err = f.svc.CompletarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)
	assert.Equal(t, model.PedidoCompletado, resp.Estado)

	// Las transiciones de cocina nunca tocan el inventario.
	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, gaseosa)
	assert.Equal(t, 49, row.CantidadActual)
}

func TestIniciarDosVecesPierdeElSegundo(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)
	pedidoID := uuid.MustParse(f.crearPedido(t, gaseosa, 1).ID)

	_, err := f.svc.IniciarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)

	_, err = f.svc.IniciarPreparacion(context.Background(), pedidoID)
	var te *TransicionInvalidaError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, model.PedidoEnPreparacion, te.EstadoActual)
}

func TestCompletarDesdePendienteFalla(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)
	pedidoID := uuid.MustParse(f.crearPedido(t, gaseosa, 1).ID)

	_, err := f.svc.CompletarPreparacion(context.Background(), pedidoID)
	var te *TransicionInvalidaError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, model.PedidoPendiente, te.EstadoActual)
}

func TestTransicionPedidoInexistente(t *testing.T) {
	f := newPedidoFixture()
	_, err := f.svc.IniciarPreparacion(context.Background(), uuid.New())
	assert.Error(t, err)
}

// ── Cancelar ─────────────────────────────────────────────────────────────────

func TestCancelarRestauraStock(t *testing.T) {
	f := newPedidoFixture()
	harina := f.seedInsumo("Harina", "2.00", true)
	pizza := f.seedProducto("Pizza", true, model.ProductoInsumo{InsumoID: harina, CantidadPorUnidad: dec("0.200")})
	f.seedInventarioProducto(pizza, 20, 20, 2, "0.40", "10", true)
	f.seedInventarioInsumo(harina, "10", "10", "1", "2.00")
	pedidoID := uuid.MustParse(f.crearPedido(t, pizza, 5).ID)

	require.NoError(t, f.svc.Cancelar(context.Background(), pedidoID, "cliente se arrepintio"))

	guardado, _ := f.pedidos.FindByID(context.Background(), pedidoID)
	assert.Equal(t, model.PedidoCancelado, guardado.Estado)

	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, pizza)
	assert.Equal(t, 20, row.CantidadActual)
	h, _ := f.inv.FindInsumo(context.Background(), f.eventoID, harina)
	assert.True(t, h.CantidadActual.Equal(dec("10")), "harina = %s", h.CantidadActual)
}

func TestCancelarEnPreparacion(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)
	pedidoID := uuid.MustParse(f.crearPedido(t, gaseosa, 2).ID)

	_, err := f.svc.IniciarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancelar(context.Background(), pedidoID, "se quemo la cocina"))
	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, gaseosa)
	assert.Equal(t, 50, row.CantidadActual)
}

func TestCancelarCompletadoFalla(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)
	pedidoID := uuid.MustParse(f.crearPedido(t, gaseosa, 2).ID)

	_, err := f.svc.IniciarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)
	_, err = f.svc.CompletarPreparacion(context.Background(), pedidoID)
	require.NoError(t, err)

	err = f.svc.Cancelar(context.Background(), pedidoID, "tarde")
	var te *TransicionInvalidaError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, model.PedidoCompletado, te.EstadoActual)

	// No restock on a failed cancel.
	row, _ := f.inv.FindProducto(context.Background(), f.eventoID, gaseosa)
	assert.Equal(t, 48, row.CantidadActual)
}

func TestCancelarPedidoInexistente(t *testing.T) {
	f := newPedidoFixture()
	assert.Error(t, f.svc.Cancelar(context.Background(), uuid.New(), "no existe"))
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

func TestListarActivosFiltraTerminales(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)

	pendiente := f.crearPedido(t, gaseosa, 1)
	enPrep := f.crearPedido(t, gaseosa, 1)
	completado := f.crearPedido(t, gaseosa, 1)
	cancelado := f.crearPedido(t, gaseosa, 1)

	_, err := f.svc.IniciarPreparacion(context.Background(), uuid.MustParse(enPrep.ID))
	require.NoError(t, err)
	_, err = f.svc.IniciarPreparacion(context.Background(), uuid.MustParse(completado.ID))
	require.NoError(t, err)
	_, err = f.svc.CompletarPreparacion(context.Background(), uuid.MustParse(completado.ID))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancelar(context.Background(), uuid.MustParse(cancelado.ID), "cambio de opinion"))

	activos, err := f.svc.ListarActivos(context.Background(), f.eventoID)
	require.NoError(t, err)
	require.Len(t, activos, 2)
	ids := []string{activos[0].ID, activos[1].ID}
	assert.Contains(t, ids, pendiente.ID)
	assert.Contains(t, ids, enPrep.ID)
}

func TestListarPorEstado(t *testing.T) {
	f := newPedidoFixture()
	gaseosa := f.seedProducto("Gaseosa", true)
	f.seedInventarioProducto(gaseosa, 50, 50, 5, "300", "1000", false)

	f.crearPedido(t, gaseosa, 1)
	cancelado := f.crearPedido(t, gaseosa, 1)
	require.NoError(t, f.svc.Cancelar(context.Background(), uuid.MustParse(cancelado.ID), "sin motivo real"))

	resp, err := f.svc.Listar(context.Background(), f.eventoID, dto.PedidoFilter{Estado: model.PedidoCancelado, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, cancelado.ID, resp.Data[0].ID)
}
