package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/dto"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/model"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/repository"

	"github.com/google/uuid"
)

const fechaLayout = "2006-01-02"

// EventoService manages evento lifecycle. Pedidos only flow while the
// evento is en estado "activo"; "cerrado" freezes it for statistics.
type EventoService interface {
	Crear(ctx context.Context, req dto.CrearEventoRequest) (*dto.EventoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.EventoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.EventoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEventoRequest) (*dto.EventoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type eventoService struct {
	repo repository.EventoRepository
}

func NewEventoService(repo repository.EventoRepository) EventoService {
	return &eventoService{repo: repo}
}

func (s *eventoService) Crear(ctx context.Context, req dto.CrearEventoRequest) (*dto.EventoResponse, error) {
	fecha, err := time.Parse(fechaLayout, req.Fecha)
	if err != nil {
		return nil, &ValidacionError{Campo: "fecha", Detalle: "formato esperado YYYY-MM-DD"}
	}
	evento := &model.Evento{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Fecha:       fecha,
		Ubicacion:   req.Ubicacion,
		Estado:      "planificado",
		Activo:      true,
	}
	if err := s.repo.Create(ctx, evento); err != nil {
		return nil, err
	}
	resp := eventoToResponse(evento)
	return &resp, nil
}

func (s *eventoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.EventoResponse, error) {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("evento %s no encontrado: %w", id, err)
	}
	resp := eventoToResponse(evento)
	return &resp, nil
}

func (s *eventoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.EventoResponse, error) {
	eventos, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventoResponse, 0, len(eventos))
	for i := range eventos {
		out = append(out, eventoToResponse(&eventos[i]))
	}
	return out, nil
}

func (s *eventoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEventoRequest) (*dto.EventoResponse, error) {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("evento %s no encontrado: %w", id, err)
	}
	if req.Nombre != nil {
		evento.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		evento.Descripcion = req.Descripcion
	}
	if req.Ubicacion != nil {
		evento.Ubicacion = req.Ubicacion
	}
	if req.Fecha != nil {
		fecha, err := time.Parse(fechaLayout, *req.Fecha)
		if err != nil {
			return nil, &ValidacionError{Campo: "fecha", Detalle: "formato esperado YYYY-MM-DD"}
		}
		evento.Fecha = fecha
	}
	if req.Estado != nil {
		if err := validarTransicionEvento(evento.Estado, *req.Estado); err != nil {
			return nil, err
		}
		evento.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, evento); err != nil {
		return nil, err
	}
	resp := eventoToResponse(evento)
	return &resp, nil
}

func (s *eventoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	evento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("evento %s no encontrado: %w", id, err)
	}
	if evento.Estado == "activo" {
		return &ValidacionError{Campo: "estado", Detalle: "no se puede eliminar un evento activo; cerralo primero"}
	}
	return s.repo.SoftDelete(ctx, id)
}

// validarTransicionEvento enforces planificado → activo → cerrado.
// Reopening a cerrado evento would let new pedidos mutate a ledger that
// statistics already treat as final.
func validarTransicionEvento(actual, nuevo string) error {
	if actual == nuevo {
		return nil
	}
	valido := map[string]string{
		"planificado": "activo",
		"activo":      "cerrado",
	}
	if valido[actual] != nuevo {
		return &TransicionInvalidaError{EstadoActual: actual, Solicitado: nuevo}
	}
	return nil
}

func eventoToResponse(e *model.Evento) dto.EventoResponse {
	return dto.EventoResponse{
		ID:          e.ID.String(),
		Nombre:      e.Nombre,
		Descripcion: e.Descripcion,
		Fecha:       e.Fecha.Format(fechaLayout),
		Ubicacion:   e.Ubicacion,
		Estado:      e.Estado,
		Activo:      e.Activo,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
