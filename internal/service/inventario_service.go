package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertaStock describes a ledger row that crossed below its minimum
// during a decrement. The caller enqueues alerts only after commit.
type AlertaStock struct {
	EventoID uuid.UUID
	TipoItem string // "producto" | "insumo"
	ItemID   uuid.UUID
	Nombre   string
	Actual   decimal.Decimal
	Minima   decimal.Decimal
}

// InventarioService manages the per-event ledger: batch cargas, manual
// corrections, guarded deletes, and the atomic decrement cascade invoked
// by PedidoService inside its transaction.
type InventarioService interface {
	CargarProductos(ctx context.Context, eventoID uuid.UUID, req dto.CargarProductosRequest) (*dto.CargaResponse, error)
	CargarInsumos(ctx context.Context, eventoID uuid.UUID, req dto.CargarInsumosRequest) (*dto.CargaResponse, error)

	ListarProductos(ctx context.Context, eventoID uuid.UUID) ([]dto.InventarioProductoResponse, error)
	ListarInsumos(ctx context.Context, eventoID uuid.UUID) ([]dto.InventarioInsumoResponse, error)
	ListarMovimientos(ctx context.Context, eventoID uuid.UUID, limit int) ([]dto.MovimientoResponse, error)

	ActualizarProducto(ctx context.Context, eventoID, productoID uuid.UUID, req dto.ActualizarInventarioProductoRequest) (*dto.InventarioProductoResponse, error)
	ActualizarInsumo(ctx context.Context, eventoID, insumoID uuid.UUID, req dto.ActualizarInventarioInsumoRequest) (*dto.InventarioInsumoResponse, error)

	EliminarProducto(ctx context.Context, eventoID, productoID uuid.UUID) error
	EliminarInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) error

	// DescontarStockTx is called within a pedido transaction — it locks
	// the producto row, decrements it, and cascades through the receta
	// decrementing every constituent insumo. Any shortfall fails the
	// whole call; gorm rolls the transaction back, so either every
	// decrement lands or none do.
	DescontarStockTx(ctx context.Context, tx *gorm.DB, eventoID, productoID uuid.UUID, nombre string, cantidad int, pedidoID uuid.UUID) ([]AlertaStock, error)

	// RestaurarStockTx is the exact inverse, used by cancellation.
	RestaurarStockTx(ctx context.Context, tx *gorm.DB, eventoID uuid.UUID, items []model.PedidoItem, pedidoID uuid.UUID) error
}

type inventarioService struct {
	repo         repository.InventarioRepository
	productoRepo repository.ProductoRepository
	insumoRepo   repository.InsumoRepository
	pedidoRepo   repository.PedidoRepository
	movRepo      repository.MovimientoRepository
	costo        CostoService
}

func NewInventarioService(
	repo repository.InventarioRepository,
	productoRepo repository.ProductoRepository,
	insumoRepo repository.InsumoRepository,
	pedidoRepo repository.PedidoRepository,
	movRepo repository.MovimientoRepository,
	costo CostoService,
) InventarioService {
	return &inventarioService{
		repo:         repo,
		productoRepo: productoRepo,
		insumoRepo:   insumoRepo,
		pedidoRepo:   pedidoRepo,
		movRepo:      movRepo,
		costo:        costo,
	}
}

// ── Cargas ───────────────────────────────────────────────────────────────────
// Rejections are per-item: a bad entry never aborts the rest of the batch.
// Re-loading an already present (evento, producto/insumo) pair is rejected
// outright — topping-up or resetting stock is an explicit update, never an
// accidental side effect of a second carga.

func (s *inventarioService) CargarProductos(ctx context.Context, eventoID uuid.UUID, req dto.CargarProductosRequest) (*dto.CargaResponse, error) {
	resp := &dto.CargaResponse{}

	for _, item := range req.Items {
		productoID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Motivo: "producto_id invalido"})
			continue
		}
		if item.CantidadInicial <= 0 {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Motivo: "cantidad_inicial debe ser mayor a 0"})
			continue
		}
		if item.PrecioVenta.IsNegative() {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Motivo: "precio_venta no puede ser negativo"})
			continue
		}

		producto, err := s.productoRepo.FindByID(ctx, productoID)
		if err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Motivo: "producto no encontrado"})
			continue
		}
		if !producto.Activo {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Nombre: producto.Nombre, Motivo: "producto inactivo"})
			continue
		}

		if _, err := s.repo.FindProducto(ctx, eventoID, productoID); err == nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{
				ID: item.ProductoID, Nombre: producto.Nombre,
				Motivo: "ya cargado en el evento; use la actualizacion de inventario",
			})
			continue
		}

		// Recipe products take the calculated cost; the caller's value is
		// ignored on purpose.
		calc, err := s.costo.CalcularCosto(ctx, eventoID, productoID)
		if err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Nombre: producto.Nombre, Motivo: err.Error()})
			continue
		}
		var costo decimal.Decimal
		switch {
		case calc.TieneReceta && !calc.PuedeCargar:
			rerr := &RecetaIncompletaError{NombreProducto: producto.Nombre, InsumosFaltantes: calc.InsumosFaltantes}
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Nombre: producto.Nombre, Motivo: rerr.Error()})
			continue
		case calc.TieneReceta:
			costo = calc.CostoCalculado
		case item.Costo != nil:
			if item.Costo.IsNegative() {
				resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Nombre: producto.Nombre, Motivo: "costo no puede ser negativo"})
				continue
			}
			costo = *item.Costo
		}

		row := &model.InventarioProductoEvento{
			EventoID:        eventoID,
			ProductoID:      productoID,
			CantidadInicial: item.CantidadInicial,
			CantidadActual:  item.CantidadInicial,
			CantidadMinima:  item.CantidadMinima,
			Costo:           costo,
			PrecioVenta:     item.PrecioVenta,
			MargenGanancia:  model.CalcularMargen(item.PrecioVenta, costo),
			TieneReceta:     calc.TieneReceta,
			Activo:          true,
		}
		if err := s.repo.CreateProducto(ctx, row); err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.ProductoID, Nombre: producto.Nombre, Motivo: "error al crear la fila de inventario"})
			log.Error().Err(err).Str("producto_id", item.ProductoID).Msg("carga de producto fallida")
			continue
		}

		s.registrarMovimiento(ctx, &model.MovimientoInventario{
			EventoID:         eventoID,
			TipoItem:         "producto",
			ReferenciaID:     productoID,
			Tipo:             "carga",
			Cantidad:         decimal.NewFromInt(int64(item.CantidadInicial)),
			CantidadAnterior: decimal.Zero,
			CantidadNueva:    decimal.NewFromInt(int64(item.CantidadInicial)),
			Motivo:           fmt.Sprintf("Carga inicial de %s", producto.Nombre),
		})
		resp.Cargados++
	}
	return resp, nil
}

func (s *inventarioService) CargarInsumos(ctx context.Context, eventoID uuid.UUID, req dto.CargarInsumosRequest) (*dto.CargaResponse, error) {
	resp := &dto.CargaResponse{}

	for _, item := range req.Items {
		insumoID, err := uuid.Parse(item.InsumoID)
		if err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Motivo: "insumo_id invalido"})
			continue
		}
		if !item.CantidadInicial.IsPositive() {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Motivo: "cantidad_inicial debe ser mayor a 0"})
			continue
		}
		if item.CantidadMinima.IsNegative() {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Motivo: "cantidad_minima no puede ser negativa"})
			continue
		}

		insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
		if err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Motivo: "insumo no encontrado"})
			continue
		}
		if !insumo.Activo {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Nombre: insumo.Nombre, Motivo: "insumo inactivo"})
			continue
		}

		if _, err := s.repo.FindInsumo(ctx, eventoID, insumoID); err == nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{
				ID: item.InsumoID, Nombre: insumo.Nombre,
				Motivo: "ya cargado en el evento; use la actualizacion de inventario",
			})
			continue
		}

		costo := insumo.Costo
		if item.Costo != nil {
			if item.Costo.IsNegative() {
				resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Nombre: insumo.Nombre, Motivo: "costo no puede ser negativo"})
				continue
			}
			costo = *item.Costo
		}

		row := &model.InventarioInsumoEvento{
			EventoID:        eventoID,
			InsumoID:        insumoID,
			CantidadInicial: item.CantidadInicial,
			CantidadActual:  item.CantidadInicial,
			CantidadMinima:  item.CantidadMinima,
			Costo:           costo,
			Activo:          true,
		}
		if err := s.repo.CreateInsumo(ctx, row); err != nil {
			resp.Rechazados = append(resp.Rechazados, dto.ItemRechazado{ID: item.InsumoID, Nombre: insumo.Nombre, Motivo: "error al crear la fila de inventario"})
			log.Error().Err(err).Str("insumo_id", item.InsumoID).Msg("carga de insumo fallida")
			continue
		}

		s.registrarMovimiento(ctx, &model.MovimientoInventario{
			EventoID:         eventoID,
			TipoItem:         "insumo",
			ReferenciaID:     insumoID,
			Tipo:             "carga",
			Cantidad:         item.CantidadInicial,
			CantidadAnterior: decimal.Zero,
			CantidadNueva:    item.CantidadInicial,
			Motivo:           fmt.Sprintf("Carga inicial de %s", insumo.Nombre),
		})
		resp.Cargados++
	}
	return resp, nil
}

// ── Lecturas ─────────────────────────────────────────────────────────────────

func (s *inventarioService) ListarProductos(ctx context.Context, eventoID uuid.UUID) ([]dto.InventarioProductoResponse, error) {
	rows, err := s.repo.ListProductos(ctx, eventoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventarioProductoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, productoInventarioToResponse(&rows[i]))
	}
	return out, nil
}

func (s *inventarioService) ListarInsumos(ctx context.Context, eventoID uuid.UUID) ([]dto.InventarioInsumoResponse, error) {
	rows, err := s.repo.ListInsumos(ctx, eventoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventarioInsumoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, insumoInventarioToResponse(&rows[i]))
	}
	return out, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, eventoID uuid.UUID, limit int) ([]dto.MovimientoResponse, error) {
	movs, err := s.movRepo.List(ctx, eventoID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		resp := dto.MovimientoResponse{
			ID:               m.ID.String(),
			TipoItem:         m.TipoItem,
			ReferenciaID:     m.ReferenciaID.String(),
			Tipo:             m.Tipo,
			Cantidad:         m.Cantidad,
			CantidadAnterior: m.CantidadAnterior,
			CantidadNueva:    m.CantidadNueva,
			Motivo:           m.Motivo,
			CreatedAt:        m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.PedidoID != nil {
			id := m.PedidoID.String()
			resp.PedidoID = &id
		}
		out = append(out, resp)
	}
	return out, nil
}

// ── Actualización manual ─────────────────────────────────────────────────────
// Stock corrections reject anything that would break 0 <= actual <= inicial,
// and recipe-derived costs are never overridable by hand.

func (s *inventarioService) ActualizarProducto(ctx context.Context, eventoID, productoID uuid.UUID, req dto.ActualizarInventarioProductoRequest) (*dto.InventarioProductoResponse, error) {
	row, err := s.repo.FindProducto(ctx, eventoID, productoID)
	if err != nil {
		return nil, &ValidacionError{Campo: "producto_id", Detalle: "no cargado en el evento"}
	}

	if req.CantidadActual != nil {
		nueva := *req.CantidadActual
		if nueva < 0 {
			return nil, &ValidacionError{Campo: "cantidad_actual", Detalle: "no puede ser negativa"}
		}
		if nueva > row.CantidadInicial {
			return nil, &ValidacionError{Campo: "cantidad_actual", Detalle: fmt.Sprintf("no puede superar la cantidad inicial (%d)", row.CantidadInicial)}
		}
		if nueva != row.CantidadActual {
			s.registrarMovimiento(ctx, &model.MovimientoInventario{
				EventoID:         eventoID,
				TipoItem:         "producto",
				ReferenciaID:     productoID,
				Tipo:             "ajuste_manual",
				Cantidad:         decimal.NewFromInt(int64(nueva - row.CantidadActual)),
				CantidadAnterior: decimal.NewFromInt(int64(row.CantidadActual)),
				CantidadNueva:    decimal.NewFromInt(int64(nueva)),
				Motivo:           req.Motivo,
			})
		}
		row.CantidadActual = nueva
	}
	if req.CantidadMinima != nil {
		if *req.CantidadMinima < 0 {
			return nil, &ValidacionError{Campo: "cantidad_minima", Detalle: "no puede ser negativa"}
		}
		row.CantidadMinima = *req.CantidadMinima
	}
	if req.Costo != nil {
		if row.TieneReceta {
			return nil, &ValidacionError{Campo: "costo", Detalle: "derivado de la receta, no se puede editar manualmente"}
		}
		if req.Costo.IsNegative() {
			return nil, &ValidacionError{Campo: "costo", Detalle: "no puede ser negativo"}
		}
		row.Costo = *req.Costo
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, &ValidacionError{Campo: "precio_venta", Detalle: "no puede ser negativo"}
		}
		row.PrecioVenta = *req.PrecioVenta
	}
	row.MargenGanancia = model.CalcularMargen(row.PrecioVenta, row.Costo)

	if err := s.repo.SaveProducto(ctx, row); err != nil {
		return nil, err
	}
	resp := productoInventarioToResponse(row)
	return &resp, nil
}

func (s *inventarioService) ActualizarInsumo(ctx context.Context, eventoID, insumoID uuid.UUID, req dto.ActualizarInventarioInsumoRequest) (*dto.InventarioInsumoResponse, error) {
	row, err := s.repo.FindInsumo(ctx, eventoID, insumoID)
	if err != nil {
		return nil, &ValidacionError{Campo: "insumo_id", Detalle: "no cargado en el evento"}
	}

	if req.CantidadActual != nil {
		nueva := *req.CantidadActual
		if nueva.IsNegative() {
			return nil, &ValidacionError{Campo: "cantidad_actual", Detalle: "no puede ser negativa"}
		}
		if nueva.GreaterThan(row.CantidadInicial) {
			return nil, &ValidacionError{Campo: "cantidad_actual", Detalle: fmt.Sprintf("no puede superar la cantidad inicial (%s)", row.CantidadInicial.String())}
		}
		if !nueva.Equal(row.CantidadActual) {
			s.registrarMovimiento(ctx, &model.MovimientoInventario{
				EventoID:         eventoID,
				TipoItem:         "insumo",
				ReferenciaID:     insumoID,
				Tipo:             "ajuste_manual",
				Cantidad:         nueva.Sub(row.CantidadActual),
				CantidadAnterior: row.CantidadActual,
				CantidadNueva:    nueva,
				Motivo:           req.Motivo,
			})
		}
		row.CantidadActual = nueva
	}
	if req.CantidadMinima != nil {
		if req.CantidadMinima.IsNegative() {
			return nil, &ValidacionError{Campo: "cantidad_minima", Detalle: "no puede ser negativa"}
		}
		row.CantidadMinima = *req.CantidadMinima
	}
	if req.Costo != nil {
		if req.Costo.IsNegative() {
			return nil, &ValidacionError{Campo: "costo", Detalle: "no puede ser negativo"}
		}
		row.Costo = *req.Costo
	}

	if err := s.repo.SaveInsumo(ctx, row); err != nil {
		return nil, err
	}
	resp := insumoInventarioToResponse(row)
	return &resp, nil
}

// ── Eliminación ──────────────────────────────────────────────────────────────
// Ledger rows referenced by history stay: pedidos snapshot nombre/precio,
// but deleting the row of a producto with pedidos in the evento (or an
// insumo consumed by a loaded receta) is blocked to keep the evento's
// numbers reconstructible.

func (s *inventarioService) EliminarProducto(ctx context.Context, eventoID, productoID uuid.UUID) error {
	n, err := s.pedidoRepo.CountItemsPorProducto(ctx, eventoID, productoID)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ValidacionError{Detalle: fmt.Sprintf("el producto tiene %d items de pedido en este evento; no se puede eliminar", n)}
	}
	return s.repo.DeleteProducto(ctx, eventoID, productoID)
}

func (s *inventarioService) EliminarInsumo(ctx context.Context, eventoID, insumoID uuid.UUID) error {
	n, err := s.repo.CountProductosConInsumo(ctx, eventoID, insumoID)
	if err != nil {
		return err
	}
	if n > 0 {
		return &ValidacionError{Detalle: fmt.Sprintf("%d productos cargados en el evento consumen este insumo; no se puede eliminar", n)}
	}
	return s.repo.DeleteInsumo(ctx, eventoID, insumoID)
}

// ── Cascada de descuento ─────────────────────────────────────────────────────

func (s *inventarioService) DescontarStockTx(ctx context.Context, tx *gorm.DB, eventoID, productoID uuid.UUID, nombre string, cantidad int, pedidoID uuid.UUID) ([]AlertaStock, error) {
	row, err := s.repo.LockProductoTx(tx, eventoID, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidacionError{Campo: "producto_id", Detalle: fmt.Sprintf("%q no cargado en el evento", nombre)}
		}
		return nil, err
	}
	if !row.Activo {
		return nil, &ValidacionError{Campo: "producto_id", Detalle: fmt.Sprintf("%q inactivo en el inventario del evento", nombre)}
	}
	if row.CantidadActual < cantidad {
		return nil, &StockInsuficienteError{
			Nombre:     nombre,
			TipoItem:   "producto",
			Disponible: decimal.NewFromInt(int64(row.CantidadActual)),
			Solicitado: decimal.NewFromInt(int64(cantidad)),
		}
	}

	var alertas []AlertaStock

	nueva := row.CantidadActual - cantidad
	if err := s.repo.SetCantidadProductoTx(tx, row.ID, nueva); err != nil {
		return nil, err
	}
	if err := s.movRepo.CreateTx(tx, &model.MovimientoInventario{
		EventoID:         eventoID,
		TipoItem:         "producto",
		ReferenciaID:     productoID,
		Tipo:             "venta",
		Cantidad:         decimal.NewFromInt(int64(-cantidad)),
		CantidadAnterior: decimal.NewFromInt(int64(row.CantidadActual)),
		CantidadNueva:    decimal.NewFromInt(int64(nueva)),
		PedidoID:         &pedidoID,
	}); err != nil {
		return nil, err
	}
	if nueva < row.CantidadMinima {
		alertas = append(alertas, AlertaStock{
			EventoID: eventoID, TipoItem: "producto", ItemID: productoID, Nombre: nombre,
			Actual: decimal.NewFromInt(int64(nueva)), Minima: decimal.NewFromInt(int64(row.CantidadMinima)),
		})
	}

	if !row.TieneReceta {
		return alertas, nil
	}

	// Fan out into the receta: a product sale must never decrement the
	// producto without decrementing every constituent insumo, or vice
	// versa. Any shortfall returns an error and the enclosing gorm
	// transaction rolls everything back.
	receta, err := s.productoRepo.FindReceta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if len(receta) == 0 {
		// The ledger row still says tiene_receta but the catalog receta
		// was removed after the carga. Selling now would skip the insumo
		// cascade, so the sale is refused until the row is reloaded.
		return nil, &RecetaIncompletaError{NombreProducto: nombre}
	}
	factor := decimal.NewFromInt(int64(cantidad))
	for _, linea := range receta {
		nombreInsumo := linea.InsumoID.String()
		if linea.Insumo != nil {
			nombreInsumo = linea.Insumo.Nombre
		}
		requerido := linea.CantidadPorUnidad.Mul(factor)

		insumoRow, err := s.repo.LockInsumoTx(tx, eventoID, linea.InsumoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &StockInsuficienteError{
					Nombre: nombreInsumo, TipoItem: "insumo",
					Disponible: decimal.Zero, Solicitado: requerido,
				}
			}
			return nil, err
		}
		if insumoRow.CantidadActual.LessThan(requerido) {
			return nil, &StockInsuficienteError{
				Nombre: nombreInsumo, TipoItem: "insumo",
				Disponible: insumoRow.CantidadActual, Solicitado: requerido,
			}
		}

		nuevaInsumo := insumoRow.CantidadActual.Sub(requerido)
		if err := s.repo.SetCantidadInsumoTx(tx, insumoRow.ID, nuevaInsumo); err != nil {
			return nil, err
		}
		if err := s.movRepo.CreateTx(tx, &model.MovimientoInventario{
			EventoID:         eventoID,
			TipoItem:         "insumo",
			ReferenciaID:     linea.InsumoID,
			Tipo:             "venta",
			Cantidad:         requerido.Neg(),
			CantidadAnterior: insumoRow.CantidadActual,
			CantidadNueva:    nuevaInsumo,
			PedidoID:         &pedidoID,
		}); err != nil {
			return nil, err
		}
		if nuevaInsumo.LessThan(insumoRow.CantidadMinima) {
			alertas = append(alertas, AlertaStock{
				EventoID: eventoID, TipoItem: "insumo", ItemID: linea.InsumoID, Nombre: nombreInsumo,
				Actual: nuevaInsumo, Minima: insumoRow.CantidadMinima,
			})
		}
	}
	return alertas, nil
}

func (s *inventarioService) RestaurarStockTx(ctx context.Context, tx *gorm.DB, eventoID uuid.UUID, items []model.PedidoItem, pedidoID uuid.UUID) error {
	for _, item := range items {
		row, err := s.repo.LockProductoTx(tx, eventoID, item.ProductoID)
		if err != nil {
			return err
		}
		nueva := row.CantidadActual + item.Cantidad
		// Manual corrections between sale and cancellation can leave less
		// headroom than the original decrement; clamp to keep
		// actual <= inicial.
		if nueva > row.CantidadInicial {
			log.Warn().
				Str("producto_id", item.ProductoID.String()).
				Int("restaurado", nueva).
				Int("inicial", row.CantidadInicial).
				Msg("restauracion recortada a la cantidad inicial")
			nueva = row.CantidadInicial
		}
		if err := s.repo.SetCantidadProductoTx(tx, row.ID, nueva); err != nil {
			return err
		}
		if err := s.movRepo.CreateTx(tx, &model.MovimientoInventario{
			EventoID:         eventoID,
			TipoItem:         "producto",
			ReferenciaID:     item.ProductoID,
			Tipo:             "cancelacion",
			Cantidad:         decimal.NewFromInt(int64(item.Cantidad)),
			CantidadAnterior: decimal.NewFromInt(int64(row.CantidadActual)),
			CantidadNueva:    decimal.NewFromInt(int64(nueva)),
			PedidoID:         &pedidoID,
		}); err != nil {
			return err
		}

		if !row.TieneReceta {
			continue
		}
		receta, err := s.productoRepo.FindReceta(ctx, item.ProductoID)
		if err != nil {
			return err
		}
		factor := decimal.NewFromInt(int64(item.Cantidad))
		for _, linea := range receta {
			insumoRow, err := s.repo.LockInsumoTx(tx, eventoID, linea.InsumoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue // insumo row removed after the sale; nothing to restore into
				}
				return err
			}
			devuelto := linea.CantidadPorUnidad.Mul(factor)
			nuevaInsumo := insumoRow.CantidadActual.Add(devuelto)
			if nuevaInsumo.GreaterThan(insumoRow.CantidadInicial) {
				nuevaInsumo = insumoRow.CantidadInicial
			}
			if err := s.repo.SetCantidadInsumoTx(tx, insumoRow.ID, nuevaInsumo); err != nil {
				return err
			}
			if err := s.movRepo.CreateTx(tx, &model.MovimientoInventario{
				EventoID:         eventoID,
				TipoItem:         "insumo",
				ReferenciaID:     linea.InsumoID,
				Tipo:             "cancelacion",
				Cantidad:         devuelto,
				CantidadAnterior: insumoRow.CantidadActual,
				CantidadNueva:    nuevaInsumo,
				PedidoID:         &pedidoID,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// registrarMovimiento logs audit rows for non-transactional mutations.
// Best effort: a failed audit write never fails the mutation itself.
func (s *inventarioService) registrarMovimiento(ctx context.Context, m *model.MovimientoInventario) {
	tx := s.repo.DB()
	if tx != nil {
		tx = tx.WithContext(ctx)
	}
	if err := s.movRepo.CreateTx(tx, m); err != nil {
		log.Error().Err(err).Str("tipo", m.Tipo).Msg("no se pudo registrar el movimiento de inventario")
	}
}

func productoInventarioToResponse(row *model.InventarioProductoEvento) dto.InventarioProductoResponse {
	resp := dto.InventarioProductoResponse{
		ProductoID:      row.ProductoID.String(),
		CantidadInicial: row.CantidadInicial,
		CantidadActual:  row.CantidadActual,
		CantidadMinima:  row.CantidadMinima,
		Costo:           row.Costo,
		PrecioVenta:     row.PrecioVenta,
		MargenGanancia:  row.MargenGanancia,
		TieneReceta:     row.TieneReceta,
		BajoMinimo:      row.CantidadActual < row.CantidadMinima,
		Activo:          row.Activo,
	}
	if row.Producto != nil {
		resp.Nombre = row.Producto.Nombre
	}
	return resp
}

func insumoInventarioToResponse(row *model.InventarioInsumoEvento) dto.InventarioInsumoResponse {
	resp := dto.InventarioInsumoResponse{
		InsumoID:        row.InsumoID.String(),
		CantidadInicial: row.CantidadInicial,
		CantidadActual:  row.CantidadActual,
		CantidadMinima:  row.CantidadMinima,
		Costo:           row.Costo,
		BajoMinimo:      row.CantidadActual.LessThan(row.CantidadMinima),
		Activo:          row.Activo,
	}
	if row.Insumo != nil {
		resp.Nombre = row.Insumo.Nombre
		resp.Unidad = row.Insumo.Unidad
	}
	return resp
}
