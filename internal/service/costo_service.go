package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostoService derives a producto's per-unit cost from its receta.
// The computation is advisory and side-effect-free: it reads the catalog
// and the evento ledger, mutates nothing, and is idempotent for
// unchanged state. InventarioService runs it before committing a carga.
type CostoService interface {
	CalcularCosto(ctx context.Context, eventoID, productoID uuid.UUID) (*dto.CostoCalculadoResponse, error)
}

type costoService struct {
	productoRepo   repository.ProductoRepository
	inventarioRepo repository.InventarioRepository
}

func NewCostoService(productoRepo repository.ProductoRepository, inventarioRepo repository.InventarioRepository) CostoService {
	return &costoService{productoRepo: productoRepo, inventarioRepo: inventarioRepo}
}

// CalcularCosto resolves each receta line against the evento-specific
// insumo cost when the evento already stocked that insumo, falling back
// to the catalog cost otherwise. Lines whose insumo is inactive or
// absent from both places land in insumos_faltantes and flip
// puede_cargar to false.
func (s *costoService) CalcularCosto(ctx context.Context, eventoID, productoID uuid.UUID) (*dto.CostoCalculadoResponse, error) {
	producto, err := s.productoRepo.FindByIDConReceta(ctx, productoID)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado: %w", productoID, err)
	}

	resp := &dto.CostoCalculadoResponse{
		ProductoID:     productoID.String(),
		CostoCalculado: decimal.Zero,
		PuedeCargar:    true,
	}

	if len(producto.Receta) == 0 {
		// Sin receta: manual cost entry expected downstream.
		resp.Mensaje = "El producto no tiene receta; el costo se ingresa manualmente"
		return resp, nil
	}
	resp.TieneReceta = true

	// Event overrides: one lookup for all insumos of the receta.
	insumoIDs := make([]uuid.UUID, 0, len(producto.Receta))
	for _, linea := range producto.Receta {
		insumoIDs = append(insumoIDs, linea.InsumoID)
	}
	enEvento, err := s.inventarioRepo.FindInsumos(ctx, eventoID, insumoIDs)
	if err != nil {
		return nil, err
	}
	costoEvento := make(map[uuid.UUID]decimal.Decimal, len(enEvento))
	for _, row := range enEvento {
		if row.Activo {
			costoEvento[row.InsumoID] = row.Costo
		}
	}

	var faltantes []string
	total := decimal.Zero
	for _, linea := range producto.Receta {
		if costo, ok := costoEvento[linea.InsumoID]; ok {
			total = total.Add(linea.CantidadPorUnidad.Mul(costo))
			continue
		}
		// Fall back to the catalog.
		if linea.Insumo != nil && linea.Insumo.Activo {
			total = total.Add(linea.CantidadPorUnidad.Mul(linea.Insumo.Costo))
			continue
		}
		nombre := linea.InsumoID.String()
		if linea.Insumo != nil {
			nombre = linea.Insumo.Nombre
		}
		faltantes = append(faltantes, nombre)
	}

	if len(faltantes) > 0 {
		resp.PuedeCargar = false
		resp.InsumosFaltantes = faltantes
		resp.Mensaje = fmt.Sprintf("No se puede cargar %q: insumos sin costo resoluble: %s",
			producto.Nombre, strings.Join(faltantes, ", "))
		return resp, nil
	}

	resp.CostoCalculado = total.Round(2)
	return resp, nil
}
