package dto

type CrearEventoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required"`
	Descripcion *string `json:"descripcion"`
	Fecha       string  `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Ubicacion   *string `json:"ubicacion"`
}

type ActualizarEventoRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Fecha       *string `json:"fecha"  validate:"omitempty,datetime=2006-01-02"`
	Ubicacion   *string `json:"ubicacion"`
	Estado      *string `json:"estado" validate:"omitempty,oneof=planificado activo cerrado"`
}

type EventoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Fecha       string  `json:"fecha"`
	Ubicacion   *string `json:"ubicacion,omitempty"`
	Estado      string  `json:"estado"`
	Activo      bool    `json:"activo"`
	CreatedAt   string  `json:"created_at"`
}
