package service

import (
	"context"
	"fmt"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService manages the shared Producto/Insumo catalog and the
// recetas linking them. Catalog entries referenced by recetas or ledger
// rows are deactivated, never hard-deleted, so history stays intact.
type CatalogoService interface {
	// Insumos
	CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ListarInsumos(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error)
	ActualizarInsumo(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	DesactivarInsumo(ctx context.Context, id uuid.UUID) error
	ReactivarInsumo(ctx context.Context, id uuid.UUID) error

	// Productos
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error
	ReactivarProducto(ctx context.Context, id uuid.UUID) error

	// Receta
	ObtenerReceta(ctx context.Context, productoID uuid.UUID) ([]dto.RecetaLineaResponse, error)
	ActualizarReceta(ctx context.Context, productoID uuid.UUID, req dto.ActualizarRecetaRequest) ([]dto.RecetaLineaResponse, error)
}

type catalogoService struct {
	insumoRepo   repository.InsumoRepository
	productoRepo repository.ProductoRepository
}

func NewCatalogoService(insumoRepo repository.InsumoRepository, productoRepo repository.ProductoRepository) CatalogoService {
	return &catalogoService{insumoRepo: insumoRepo, productoRepo: productoRepo}
}

// ── Insumos ──────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	if req.Costo.IsNegative() {
		return nil, &ValidacionError{Campo: "costo", Detalle: "no puede ser negativo"}
	}
	insumo := &model.Insumo{
		Nombre: req.Nombre,
		Unidad: req.Unidad,
		Costo:  req.Costo,
		Activo: true,
	}
	if err := s.insumoRepo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *catalogoService) ListarInsumos(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error) {
	insumos, err := s.insumoRepo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		out = append(out, insumoToResponse(&insumos[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarInsumo(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.insumoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insumo %s no encontrado: %w", id, err)
	}
	if req.Nombre != nil {
		insumo.Nombre = *req.Nombre
	}
	if req.Unidad != nil {
		insumo.Unidad = *req.Unidad
	}
	if req.Costo != nil {
		if req.Costo.IsNegative() {
			return nil, &ValidacionError{Campo: "costo", Detalle: "no puede ser negativo"}
		}
		insumo.Costo = *req.Costo
	}
	if err := s.insumoRepo.Update(ctx, insumo); err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

// DesactivarInsumo soft-deletes: recetas keep their rows, and the cost
// calculator reports the insumo as faltante until it is reactivated.
func (s *catalogoService) DesactivarInsumo(ctx context.Context, id uuid.UUID) error {
	return s.insumoRepo.SoftDelete(ctx, id)
}

func (s *catalogoService) ReactivarInsumo(ctx context.Context, id uuid.UUID) error {
	return s.insumoRepo.Reactivar(ctx, id)
}

// ── Productos ────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.productoRepo.Create(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *catalogoService) ObtenerProducto(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.productoRepo.FindByIDConReceta(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado: %w", id, err)
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto %s no encontrado: %w", id, err)
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if err := s.productoRepo.Update(ctx, producto); err != nil {
		return nil, err
	}
	resp := productoToResponse(producto)
	return &resp, nil
}

func (s *catalogoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	return s.productoRepo.SoftDelete(ctx, id)
}

func (s *catalogoService) ReactivarProducto(ctx context.Context, id uuid.UUID) error {
	return s.productoRepo.Reactivar(ctx, id)
}

// ── Receta ───────────────────────────────────────────────────────────────────

func (s *catalogoService) ObtenerReceta(ctx context.Context, productoID uuid.UUID) ([]dto.RecetaLineaResponse, error) {
	lineas, err := s.productoRepo.FindReceta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return recetaToResponse(lineas), nil
}

// ActualizarReceta replaces the whole receta set. Every line must point
// to an active insumo with cantidad_por_unidad > 0; an empty set removes
// the receta (the producto reverts to manual per-event cost).
func (s *catalogoService) ActualizarReceta(ctx context.Context, productoID uuid.UUID, req dto.ActualizarRecetaRequest) ([]dto.RecetaLineaResponse, error) {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, fmt.Errorf("producto %s no encontrado: %w", productoID, err)
	}

	lineas := make([]model.ProductoInsumo, 0, len(req.Insumos))
	vistos := make(map[uuid.UUID]bool, len(req.Insumos))
	for _, l := range req.Insumos {
		insumoID, err := uuid.Parse(l.InsumoID)
		if err != nil {
			return nil, &ValidacionError{Campo: "insumo_id", Detalle: "id invalido"}
		}
		if vistos[insumoID] {
			return nil, &ValidacionError{Campo: "insumo_id", Detalle: fmt.Sprintf("insumo %s repetido en la receta", l.InsumoID)}
		}
		vistos[insumoID] = true
		if !l.CantidadPorUnidad.IsPositive() {
			return nil, &ValidacionError{Campo: "cantidad_por_unidad", Detalle: "debe ser mayor a 0"}
		}
		insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
		if err != nil {
			return nil, &ValidacionError{Campo: "insumo_id", Detalle: fmt.Sprintf("insumo %s no encontrado", l.InsumoID)}
		}
		if !insumo.Activo {
			return nil, &ValidacionError{Campo: "insumo_id", Detalle: fmt.Sprintf("insumo %q inactivo", insumo.Nombre)}
		}
		lineas = append(lineas, model.ProductoInsumo{
			ProductoID:        productoID,
			InsumoID:          insumoID,
			CantidadPorUnidad: l.CantidadPorUnidad,
		})
	}

	if err := s.productoRepo.ReplaceReceta(ctx, productoID, lineas); err != nil {
		return nil, err
	}
	actual, err := s.productoRepo.FindReceta(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return recetaToResponse(actual), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func insumoToResponse(i *model.Insumo) dto.InsumoResponse {
	return dto.InsumoResponse{
		ID:     i.ID.String(),
		Nombre: i.Nombre,
		Unidad: i.Unidad,
		Costo:  i.Costo,
		Activo: i.Activo,
	}
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		TieneReceta: p.TieneReceta(),
		Receta:      recetaToResponse(p.Receta),
		Activo:      p.Activo,
	}
}

func recetaToResponse(lineas []model.ProductoInsumo) []dto.RecetaLineaResponse {
	out := make([]dto.RecetaLineaResponse, 0, len(lineas))
	for _, l := range lineas {
		resp := dto.RecetaLineaResponse{
			InsumoID:          l.InsumoID.String(),
			CantidadPorUnidad: l.CantidadPorUnidad,
		}
		if l.Insumo != nil {
			resp.NombreInsumo = l.Insumo.Nombre
			resp.Unidad = l.Insumo.Unidad
			resp.CostoUnitario = l.Insumo.Costo
		}
		out = append(out, resp)
	}
	return out
}
