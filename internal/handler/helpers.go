package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/apierror"
	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps service-layer errors onto HTTP statuses:
// stock shortfalls and state conflicts are 409, incomplete recetas 422,
// input problems 400, missing rows 404. Anything unclassified is a 500
// with a generic body; the real error goes to the log, never the client.
func respondServiceError(c *gin.Context, err error) {
	var stockErr *service.StockInsuficienteError
	var recetaErr *service.RecetaIncompletaError
	var transErr *service.TransicionInvalidaError
	var valErr *service.ValidacionError

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
	case errors.As(err, &recetaErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(recetaErr.Error()))
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, apierror.New(transErr.Error()))
	case errors.Is(err, service.ErrConflictoConcurrencia):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, apierror.New(valErr.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("error de servicio no clasificado")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}

// parseUUIDParam reads a UUID path parameter, writing the 400 itself on
// failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido: "+name))
		return uuid.Nil, false
	}
	return id, true
}
