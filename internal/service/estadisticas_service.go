package service

import (
	"context"
	"fmt"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topProductosLimit = 10

// EstadisticasService is the read-only rollup over an evento's ledger
// and pedidos. It never mutates either; every output is re-derived on
// each call from already-consistent state.
type EstadisticasService interface {
	Resumen(ctx context.Context, eventoID uuid.UUID) (*dto.EstadisticasResponse, error)
}

type estadisticasService struct {
	eventoRepo repository.EventoRepository
	invRepo    repository.InventarioRepository
	pedidoRepo repository.PedidoRepository
}

func NewEstadisticasService(
	eventoRepo repository.EventoRepository,
	invRepo repository.InventarioRepository,
	pedidoRepo repository.PedidoRepository,
) EstadisticasService {
	return &estadisticasService{eventoRepo: eventoRepo, invRepo: invRepo, pedidoRepo: pedidoRepo}
}

func (s *estadisticasService) Resumen(ctx context.Context, eventoID uuid.UUID) (*dto.EstadisticasResponse, error) {
	evento, err := s.eventoRepo.FindByID(ctx, eventoID)
	if err != nil {
		return nil, fmt.Errorf("evento %s no encontrado: %w", eventoID, err)
	}

	resp := &dto.EstadisticasResponse{
		EventoID:     eventoID.String(),
		NombreEvento: evento.Nombre,
	}

	// Capital committed: Σ costo × cantidad_inicial over both ledgers.
	productos, err := s.invRepo.ListProductos(ctx, eventoID)
	if err != nil {
		return nil, err
	}
	insumos, err := s.invRepo.ListInsumos(ctx, eventoID)
	if err != nil {
		return nil, err
	}

	inversion := decimal.Zero
	for i := range productos {
		row := &productos[i]
		inversion = inversion.Add(row.Costo.Mul(decimal.NewFromInt(int64(row.CantidadInicial))))
		resp.Productos = append(resp.Productos, estadisticaProducto(row))
	}
	for i := range insumos {
		row := &insumos[i]
		inversion = inversion.Add(row.Costo.Mul(row.CantidadInicial))
	}
	resp.InversionTotal = inversion.Round(2)

	// Revenue: completados earn, cancelados are tracked separately and
	// netted out as refunds.
	bruto, completados, err := s.pedidoRepo.TotalPorEstado(ctx, eventoID, model.PedidoCompletado)
	if err != nil {
		return nil, err
	}
	cancelado, cancelados, err := s.pedidoRepo.TotalPorEstado(ctx, eventoID, model.PedidoCancelado)
	if err != nil {
		return nil, err
	}
	resp.IngresoBruto = bruto
	resp.TotalCancelado = cancelado
	resp.IngresoNeto = bruto.Sub(cancelado)
	resp.GananciaNeta = resp.IngresoNeto.Sub(resp.InversionTotal)
	resp.PedidosCompletados = completados
	resp.PedidosCancelados = cancelados

	if resp.PorMetodo, err = s.pedidoRepo.VentasPorMetodo(ctx, eventoID); err != nil {
		return nil, err
	}
	if resp.PorCajero, err = s.pedidoRepo.VentasPorCajero(ctx, eventoID); err != nil {
		return nil, err
	}
	if resp.MasVendidos, err = s.pedidoRepo.MasVendidos(ctx, eventoID, topProductosLimit); err != nil {
		return nil, err
	}
	return resp, nil
}

// estadisticaProducto derives per-product numbers: vendidos is the
// inicial − actual proxy (no separate sold counter exists) and every
// leftover unit counts as desperdicio — at single-day events the
// sobrante IS the waste, so the conflation is deliberate.
func estadisticaProducto(row *model.InventarioProductoEvento) dto.EstadisticaProducto {
	e := dto.EstadisticaProducto{
		ProductoID:      row.ProductoID.String(),
		CantidadInicial: row.CantidadInicial,
		Vendidos:        row.CantidadInicial - row.CantidadActual,
		Restante:        row.CantidadActual,
		Costo:           row.Costo,
		PrecioVenta:     row.PrecioVenta,
		MargenGanancia:  row.MargenGanancia,
	}
	if row.Producto != nil {
		e.Nombre = row.Producto.Nombre
	}
	if row.CantidadInicial > 0 {
		e.PorcentajeDesperdicio = decimal.NewFromInt(int64(row.CantidadActual)).
			Div(decimal.NewFromInt(int64(row.CantidadInicial))).
			Mul(decimal.NewFromInt(100)).Round(2)
	}
	return e
}
