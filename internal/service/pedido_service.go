package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PedidoService governs the order lifecycle:
//
//	PENDIENTE → EN_PREPARACION → COMPLETADO
//	PENDIENTE | EN_PREPARACION → CANCELADO
//
// Stock is committed at creation (precio is snapshotted then, so the
// reservation happens then too); cocina transitions have no inventory
// side effects; cancellation restores the full cascade.
type PedidoService interface {
	Crear(ctx context.Context, eventoID, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, eventoID uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error)
	ListarActivos(ctx context.Context, eventoID uuid.UUID) ([]dto.PedidoResponse, error)
	IniciarPreparacion(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error)
	CompletarPreparacion(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error)
	Cancelar(ctx context.Context, pedidoID uuid.UUID, motivo string) error
}

type pedidoService struct {
	repo       repository.PedidoRepository
	eventoRepo repository.EventoRepository
	invRepo    repository.InventarioRepository
	inventario InventarioService
	dispatcher *worker.Dispatcher
}

func NewPedidoService(
	repo repository.PedidoRepository,
	eventoRepo repository.EventoRepository,
	invRepo repository.InventarioRepository,
	inventario InventarioService,
	dispatcher *worker.Dispatcher,
) PedidoService {
	return &pedidoService{
		repo:       repo,
		eventoRepo: eventoRepo,
		invRepo:    invRepo,
		inventario: inventario,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode). Conflict
// aborts coming out of Postgres surface as ErrConflictoConcurrencia.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return clasificarErrTx(fn(nil))
	}
	return clasificarErrTx(db.WithContext(ctx).Transaction(fn))
}

// ── Crear ────────────────────────────────────────────────────────────────────
// One ACID transaction:
//  1. lock the evento row (serializes numero_pedido per evento)
//  2. numero = MAX+1
//  3. resolve items against the ledger, snapshot nombre + precio_venta
//  4. create pedido PENDIENTE + items
//  5. decrement cascade per item (producto + receta insumos, all locked)
//
// Commit lands everything or nothing; alerts are enqueued only after
// the transaction commits.

func (s *pedidoService) Crear(ctx context.Context, eventoID, usuarioID uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	evento, err := s.eventoRepo.FindByID(ctx, eventoID)
	if err != nil {
		return nil, fmt.Errorf("evento %s no encontrado: %w", eventoID, err)
	}
	if !evento.Activo || evento.Estado == "cerrado" {
		return nil, &ValidacionError{Campo: "evento_id", Detalle: "el evento no acepta pedidos"}
	}

	type itemResuelto struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
	}

	// Pre-flight outside the tx: reject cheap failures before locking
	// anything. The decrement cascade re-checks stock under row locks,
	// so this read is advisory, not authoritative.
	var resueltos []itemResuelto
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, &ValidacionError{Campo: "producto_id", Detalle: "id invalido"}
		}
		row, err := s.invRepo.FindProducto(ctx, eventoID, pid)
		if err != nil {
			return nil, &ValidacionError{Campo: "producto_id", Detalle: fmt.Sprintf("producto %s no cargado en el evento", item.ProductoID)}
		}
		if !row.Activo {
			return nil, &ValidacionError{Campo: "producto_id", Detalle: fmt.Sprintf("producto %s inactivo en el evento", item.ProductoID)}
		}
		nombre := item.ProductoID
		if row.Producto != nil {
			nombre = row.Producto.Nombre
		}
		if row.CantidadActual < item.Cantidad {
			return nil, &StockInsuficienteError{
				Nombre:     nombre,
				TipoItem:   "producto",
				Disponible: decimal.NewFromInt(int64(row.CantidadActual)),
				Solicitado: decimal.NewFromInt(int64(item.Cantidad)),
			}
		}
		resueltos = append(resueltos, itemResuelto{
			productoID: pid,
			nombre:     nombre,
			precio:     row.PrecioVenta,
			cantidad:   item.Cantidad,
		})
	}

	var pedido model.Pedido
	var alertas []AlertaStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if tx != nil {
			if _, err := s.eventoRepo.LockTx(tx, eventoID); err != nil {
				return err
			}
		}
		numero, err := s.repo.NextNumeroTx(tx, eventoID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		pedido = model.Pedido{
			EventoID:      eventoID,
			NumeroPedido:  numero,
			Estado:        model.PedidoPendiente,
			MetodoPago:    req.MetodoPago,
			Cliente:       req.Cliente,
			Observaciones: req.Observaciones,
			CreadoPor:     usuarioID,
		}
		for _, r := range resueltos {
			subtotal := r.precio.Mul(decimal.NewFromInt(int64(r.cantidad)))
			total = total.Add(subtotal)
			pedido.Items = append(pedido.Items, model.PedidoItem{
				ProductoID:     r.productoID,
				NombreProducto: r.nombre,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       subtotal,
			})
		}
		pedido.Total = total

		if err := s.repo.CreateTx(tx, &pedido); err != nil {
			return err
		}

		for _, r := range resueltos {
			a, err := s.inventario.DescontarStockTx(ctx, tx, eventoID, r.productoID, r.nombre, r.cantidad, pedido.ID)
			if err != nil {
				return err
			}
			alertas = append(alertas, a...)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.despacharAlertas(ctx, alertas)

	resp := pedidoToResponse(&pedido)
	return &resp, nil
}

// ── Transiciones de cocina ───────────────────────────────────────────────────
// Compare-and-swap on estado: a double "iniciar" or a cancel/complete
// race resolves to exactly one winner; the loser gets the actual state
// back in a TransicionInvalidaError.

func (s *pedidoService) IniciarPreparacion(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error) {
	return s.transicionar(ctx, pedidoID, []string{model.PedidoPendiente}, model.PedidoEnPreparacion)
}

func (s *pedidoService) CompletarPreparacion(ctx context.Context, pedidoID uuid.UUID) (*dto.PedidoResponse, error) {
	return s.transicionar(ctx, pedidoID, []string{model.PedidoEnPreparacion}, model.PedidoCompletado)
}

func (s *pedidoService) transicionar(ctx context.Context, pedidoID uuid.UUID, desde []string, hacia string) (*dto.PedidoResponse, error) {
	db := s.repo.DB()
	var tx *gorm.DB
	if db != nil {
		tx = db.WithContext(ctx)
	}
	cambiados, err := s.repo.CASEstadoTx(tx, pedidoID, desde, hacia)
	if err != nil {
		return nil, clasificarErrTx(err)
	}
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pedido %s no encontrado: %w", pedidoID, err)
		}
		return nil, err
	}
	if cambiados == 0 {
		return nil, &TransicionInvalidaError{EstadoActual: pedido.Estado, Solicitado: hacia}
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

// ── Cancelar ─────────────────────────────────────────────────────────────────

func (s *pedidoService) Cancelar(ctx context.Context, pedidoID uuid.UUID, motivo string) error {
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		return fmt.Errorf("pedido %s no encontrado: %w", pedidoID, err)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cambiados, err := s.repo.CASEstadoTx(tx, pedidoID,
			[]string{model.PedidoPendiente, model.PedidoEnPreparacion}, model.PedidoCancelado)
		if err != nil {
			return err
		}
		if cambiados == 0 {
			// COMPLETADO or already CANCELADO — re-read for the real state.
			actual, err := s.repo.FindByID(ctx, pedidoID)
			if err != nil {
				return err
			}
			return &TransicionInvalidaError{EstadoActual: actual.Estado, Solicitado: model.PedidoCancelado}
		}
		// Restock the producto and, for recetas, every constituent insumo.
		return s.inventario.RestaurarStockTx(ctx, tx, pedido.EventoID, pedido.Items, pedidoID)
	})
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

func (s *pedidoService) Listar(ctx context.Context, eventoID uuid.UUID, filter dto.PedidoFilter) (*dto.PedidoListResponse, error) {
	pedidos, total, err := s.repo.List(ctx, eventoID, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PedidoListResponse{
		Data:  make([]dto.PedidoResponse, 0, len(pedidos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range pedidos {
		resp.Data = append(resp.Data, pedidoToResponse(&pedidos[i]))
	}
	return resp, nil
}

func (s *pedidoService) ListarActivos(ctx context.Context, eventoID uuid.UUID) ([]dto.PedidoResponse, error) {
	pedidos, err := s.repo.ListActivos(ctx, eventoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *pedidoService) despacharAlertas(ctx context.Context, alertas []AlertaStock) {
	if s.dispatcher == nil {
		return
	}
	for _, a := range alertas {
		// Best effort — a full queue never fails the pedido.
		_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
			EventoID: a.EventoID.String(),
			TipoItem: a.TipoItem,
			ItemID:   a.ItemID.String(),
			Nombre:   a.Nombre,
			Actual:   a.Actual.String(),
			Minima:   a.Minima.String(),
		})
	}
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	resp := dto.PedidoResponse{
		ID:            p.ID.String(),
		NumeroPedido:  p.NumeroPedido,
		EventoID:      p.EventoID.String(),
		Estado:        p.Estado,
		Total:         p.Total,
		MetodoPago:    p.MetodoPago,
		Cliente:       p.Cliente,
		Observaciones: p.Observaciones,
		CreadoPor:     p.CreadoPor.String(),
		CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.ItemPedidoResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       item.NombreProducto,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return resp
}
