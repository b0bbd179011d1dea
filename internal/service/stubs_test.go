package service

// In-memory repository stubs. They return gorm.ErrRecordNotFound for
// missing rows, ignore the tx argument of the *Tx methods, and expose a
// nil *gorm.DB so the services run their transaction-less path.

import (
	"context"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Insumos ──────────────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubInsumoRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, id := range ids {
		if i, ok := r.insumos[id]; ok {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInsumoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var out []model.Insumo
	for _, i := range r.insumos {
		if !incluirInactivos && !i.Activo {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	cp := *i
	r.insumos[i.ID] = &cp
	return nil
}

func (r *stubInsumoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if i, ok := r.insumos[id]; ok {
		i.Activo = false
	}
	return nil
}

func (r *stubInsumoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if i, ok := r.insumos[id]; ok {
		i.Activo = true
	}
	return nil
}

// ── Productos y recetas ──────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	recetas   map[uuid.UUID][]model.ProductoInsumo
	// insumoRepo resolves the Insumo preload of receta lines.
	insumoRepo *stubInsumoRepo
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func newStubProductoRepo(insumos *stubInsumoRepo) *stubProductoRepo {
	return &stubProductoRepo{
		productos:  make(map[uuid.UUID]*model.Producto),
		recetas:    make(map[uuid.UUID][]model.ProductoInsumo),
		insumoRepo: insumos,
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByIDConReceta(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Receta, _ = r.FindReceta(ctx, id)
	return p, nil
}

func (r *stubProductoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var out []model.Producto
	for id, p := range r.productos {
		if !incluirInactivos && !p.Activo {
			continue
		}
		cp := *p
		cp.Receta, _ = r.FindReceta(ctx, id)
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	cp.Receta = nil
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) FindReceta(_ context.Context, productoID uuid.UUID) ([]model.ProductoInsumo, error) {
	lineas := r.recetas[productoID]
	out := make([]model.ProductoInsumo, 0, len(lineas))
	for _, l := range lineas {
		cp := l
		if r.insumoRepo != nil {
			if i, ok := r.insumoRepo.insumos[l.InsumoID]; ok {
				icp := *i
				cp.Insumo = &icp
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubProductoRepo) ReplaceReceta(_ context.Context, productoID uuid.UUID, lineas []model.ProductoInsumo) error {
	if len(lineas) == 0 {
		delete(r.recetas, productoID)
		return nil
	}
	cp := make([]model.ProductoInsumo, len(lineas))
	copy(cp, lineas)
	r.recetas[productoID] = cp
	return nil
}

func (r *stubProductoRepo) CountRecetasPorInsumo(_ context.Context, insumoID uuid.UUID) (int64, error) {
	var n int64
	for _, lineas := range r.recetas {
		for _, l := range lineas {
			if l.InsumoID == insumoID {
				n++
			}
		}
	}
	return n, nil
}

// ── Eventos ──────────────────────────────────────────────────────────────────

type stubEventoRepo struct {
	eventos map[uuid.UUID]*model.Evento
}

var _ repository.EventoRepository = (*stubEventoRepo)(nil)

func newStubEventoRepo() *stubEventoRepo {
	return &stubEventoRepo{eventos: make(map[uuid.UUID]*model.Evento)}
}

func (r *stubEventoRepo) Create(_ context.Context, e *model.Evento) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	cp := *e
	r.eventos[e.ID] = &cp
	return nil
}

func (r *stubEventoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Evento, error) {
	e, ok := r.eventos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEventoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Evento, error) {
	var out []model.Evento
	for _, e := range r.eventos {
		if !incluirInactivos && !e.Activo {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEventoRepo) Update(_ context.Context, e *model.Evento) error {
	cp := *e
	r.eventos[e.ID] = &cp
	return nil
}

func (r *stubEventoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if e, ok := r.eventos[id]; ok {
		e.Activo = false
	}
	return nil
}

func (r *stubEventoRepo) LockTx(_ *gorm.DB, id uuid.UUID) (*model.Evento, error) {
	return r.FindByID(context.Background(), id)
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movs []model.MovimientoInventario
}

var _ repository.MovimientoRepository = (*stubMovimientoRepo)(nil)

func newStubMovimientoRepo() *stubMovimientoRepo { return &stubMovimientoRepo{} }

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, eventoID uuid.UUID, limit int) ([]model.MovimientoInventario, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []model.MovimientoInventario
	for _, m := range r.movs {
		if m.EventoID == eventoID {
			out = append(out, m)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// porTipo filters recorded movimientos by tipo ("carga", "venta", ...).
func (r *stubMovimientoRepo) porTipo(tipo string) []model.MovimientoInventario {
	var out []model.MovimientoInventario
	for _, m := range r.movs {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── Inventario ───────────────────────────────────────────────────────────────

type invKey struct {
	evento uuid.UUID
	item   uuid.UUID
}

type stubInventarioRepo struct {
	productos map[invKey]*model.InventarioProductoEvento
	insumos   map[invKey]*model.InventarioInsumoEvento
	// productoRepo resolves the Producto preload and receta joins.
	productoRepo *stubProductoRepo
}

var _ repository.InventarioRepository = (*stubInventarioRepo)(nil)

func newStubInventarioRepo(productos *stubProductoRepo) *stubInventarioRepo {
	return &stubInventarioRepo{
		productos:    make(map[invKey]*model.InventarioProductoEvento),
		insumos:      make(map[invKey]*model.InventarioInsumoEvento),
		productoRepo: productos,
	}
}

func (r *stubInventarioRepo) DB() *gorm.DB { return nil }

func (r *stubInventarioRepo) CreateProducto(_ context.Context, row *model.InventarioProductoEvento) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	cp := *row
	r.productos[invKey{row.EventoID, row.ProductoID}] = &cp
	return nil
}

func (r *stubInventarioRepo) FindProducto(_ context.Context, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error) {
	row, ok := r.productos[invKey{eventoID, productoID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	if r.productoRepo != nil {
		if p, okP := r.productoRepo.productos[productoID]; okP {
			pcp := *p
			cp.Producto = &pcp
		}
	}
	return &cp, nil
}

func (r *stubInventarioRepo) ListProductos(ctx context.Context, eventoID uuid.UUID) ([]model.InventarioProductoEvento, error) {
	var out []model.InventarioProductoEvento
	for k := range r.productos {
		if k.evento != eventoID {
			continue
		}
		row, _ := r.FindProducto(ctx, k.evento, k.item)
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubInventarioRepo) SaveProducto(_ context.Context, row *model.InventarioProductoEvento) error {
	cp := *row
	cp.Producto = nil
	r.productos[invKey{row.EventoID, row.ProductoID}] = &cp
	return nil
}

func (r *stubInventarioRepo) DeleteProducto(_ context.Context, eventoID, productoID uuid.UUID) error {
	delete(r.productos, invKey{eventoID, productoID})
	return nil
}

func (r *stubInventarioRepo) LockProductoTx(_ *gorm.DB, eventoID, productoID uuid.UUID) (*model.InventarioProductoEvento, error) {
	return r.FindProducto(context.Background(), eventoID, productoID)
}

func (r *stubInventarioRepo) SetCantidadProductoTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	for _, row := range r.productos {
		if row.ID == id {
			row.CantidadActual = cantidad
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubInventarioRepo) CreateInsumo(_ context.Context, row *model.InventarioInsumoEvento) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	cp := *row
	r.insumos[invKey{row.EventoID, row.InsumoID}] = &cp
	return nil
}

func (r *stubInventarioRepo) FindInsumo(_ context.Context, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error) {
	row, ok := r.insumos[invKey{eventoID, insumoID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *stubInventarioRepo) FindInsumos(_ context.Context, eventoID uuid.UUID, insumoIDs []uuid.UUID) ([]model.InventarioInsumoEvento, error) {
	var out []model.InventarioInsumoEvento
	for _, id := range insumoIDs {
		if row, ok := r.insumos[invKey{eventoID, id}]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) ListInsumos(_ context.Context, eventoID uuid.UUID) ([]model.InventarioInsumoEvento, error) {
	var out []model.InventarioInsumoEvento
	for k, row := range r.insumos {
		if k.evento == eventoID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) SaveInsumo(_ context.Context, row *model.InventarioInsumoEvento) error {
	cp := *row
	cp.Insumo = nil
	r.insumos[invKey{row.EventoID, row.InsumoID}] = &cp
	return nil
}

func (r *stubInventarioRepo) DeleteInsumo(_ context.Context, eventoID, insumoID uuid.UUID) error {
	delete(r.insumos, invKey{eventoID, insumoID})
	return nil
}

func (r *stubInventarioRepo) LockInsumoTx(_ *gorm.DB, eventoID, insumoID uuid.UUID) (*model.InventarioInsumoEvento, error) {
	return r.FindInsumo(context.Background(), eventoID, insumoID)
}

func (r *stubInventarioRepo) SetCantidadInsumoTx(_ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	for _, row := range r.insumos {
		if row.ID == id {
			row.CantidadActual = cantidad
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubInventarioRepo) CountProductosConInsumo(_ context.Context, eventoID, insumoID uuid.UUID) (int64, error) {
	if r.productoRepo == nil {
		return 0, nil
	}
	var n int64
	for k := range r.productos {
		if k.evento != eventoID {
			continue
		}
		for _, l := range r.productoRepo.recetas[k.item] {
			if l.InsumoID == insumoID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubInventarioRepo) ListProductosBajoMinimo(_ context.Context) ([]model.InventarioProductoEvento, error) {
	var out []model.InventarioProductoEvento
	for _, row := range r.productos {
		if row.Activo && row.CantidadActual < row.CantidadMinima {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *stubInventarioRepo) ListInsumosBajoMinimo(_ context.Context) ([]model.InventarioInsumoEvento, error) {
	var out []model.InventarioInsumoEvento
	for _, row := range r.insumos {
		if row.Activo && row.CantidadActual.LessThan(row.CantidadMinima) {
			out = append(out, *row)
		}
	}
	return out, nil
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

type stubPedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

var _ repository.PedidoRepository = (*stubPedidoRepo)(nil)

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) CreateTx(_ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range p.Items {
		if p.Items[i].ID == uuid.Nil {
			p.Items[i].ID = uuid.New()
		}
		p.Items[i].PedidoID = p.ID
	}
	cp := *p
	cp.Items = make([]model.PedidoItem, len(p.Items))
	copy(cp.Items, p.Items)
	r.pedidos[p.ID] = &cp
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = make([]model.PedidoItem, len(p.Items))
	copy(cp.Items, p.Items)
	return &cp, nil
}

func (r *stubPedidoRepo) List(_ context.Context, eventoID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.EventoID != eventoID {
			continue
		}
		if filter.Estado != "" && filter.Estado != "all" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPedidoRepo) ListActivos(_ context.Context, eventoID uuid.UUID) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if p.EventoID != eventoID {
			continue
		}
		if p.Estado == model.PedidoPendiente || p.Estado == model.PedidoEnPreparacion {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPedidoRepo) NextNumeroTx(_ *gorm.DB, eventoID uuid.UUID) (int, error) {
	maxNum := 0
	for _, p := range r.pedidos {
		if p.EventoID == eventoID && p.NumeroPedido > maxNum {
			maxNum = p.NumeroPedido
		}
	}
	return maxNum + 1, nil
}

func (r *stubPedidoRepo) CASEstadoTx(_ *gorm.DB, id uuid.UUID, desde []string, hacia string) (int64, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return 0, nil
	}
	for _, d := range desde {
		if p.Estado == d {
			p.Estado = hacia
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubPedidoRepo) CountItemsPorProducto(_ context.Context, eventoID, productoID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.pedidos {
		if p.EventoID != eventoID {
			continue
		}
		for _, item := range p.Items {
			if item.ProductoID == productoID {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubPedidoRepo) TotalPorEstado(_ context.Context, eventoID uuid.UUID, estado string) (decimal.Decimal, int64, error) {
	total := decimal.Zero
	var n int64
	for _, p := range r.pedidos {
		if p.EventoID == eventoID && p.Estado == estado {
			total = total.Add(p.Total)
			n++
		}
	}
	return total, n, nil
}

func (r *stubPedidoRepo) VentasPorMetodo(_ context.Context, eventoID uuid.UUID) ([]dto.VentasPorMetodo, error) {
	porMetodo := make(map[string]*dto.VentasPorMetodo)
	for _, p := range r.pedidos {
		if p.EventoID != eventoID || p.Estado != model.PedidoCompletado {
			continue
		}
		v, ok := porMetodo[p.MetodoPago]
		if !ok {
			v = &dto.VentasPorMetodo{MetodoPago: p.MetodoPago, Total: decimal.Zero}
			porMetodo[p.MetodoPago] = v
		}
		v.Pedidos++
		v.Total = v.Total.Add(p.Total)
	}
	var out []dto.VentasPorMetodo
	for _, v := range porMetodo {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubPedidoRepo) VentasPorCajero(_ context.Context, eventoID uuid.UUID) ([]dto.VentasPorCajero, error) {
	porCajero := make(map[uuid.UUID]*dto.VentasPorCajero)
	for _, p := range r.pedidos {
		if p.EventoID != eventoID || p.Estado != model.PedidoCompletado {
			continue
		}
		v, ok := porCajero[p.CreadoPor]
		if !ok {
			v = &dto.VentasPorCajero{UsuarioID: p.CreadoPor.String(), Total: decimal.Zero}
			porCajero[p.CreadoPor] = v
		}
		v.Pedidos++
		v.Total = v.Total.Add(p.Total)
	}
	var out []dto.VentasPorCajero
	for _, v := range porCajero {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubPedidoRepo) MasVendidos(_ context.Context, eventoID uuid.UUID, limit int) ([]dto.TopProducto, error) {
	porProducto := make(map[uuid.UUID]*dto.TopProducto)
	for _, p := range r.pedidos {
		if p.EventoID != eventoID || p.Estado != model.PedidoCompletado {
			continue
		}
		for _, item := range p.Items {
			t, ok := porProducto[item.ProductoID]
			if !ok {
				t = &dto.TopProducto{ProductoID: item.ProductoID.String(), Nombre: item.NombreProducto, Ingreso: decimal.Zero}
				porProducto[item.ProductoID] = t
			}
			t.Vendidos += int64(item.Cantidad)
			t.Ingreso = t.Ingreso.Add(item.Subtotal)
		}
	}
	var out []dto.TopProducto
	for _, t := range porProducto {
		out = append(out, *t)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = activo
	}
	return nil
}
