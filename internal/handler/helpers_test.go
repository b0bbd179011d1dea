package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skywarddigitalsolutions/sysfront-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	respondServiceError(c, err)
	return w
}

func TestRespondServiceErrorMapeaEstados(t *testing.T) {
	cases := []struct {
		nombre string
		err    error
		status int
	}{
		{"stock insuficiente", &service.StockInsuficienteError{Nombre: "Pan", TipoItem: "producto", Disponible: decimal.Zero, Solicitado: decimal.NewFromInt(2)}, http.StatusConflict},
		{"receta incompleta", &service.RecetaIncompletaError{NombreProducto: "Pizza", InsumosFaltantes: []string{"Queso"}}, http.StatusUnprocessableEntity},
		{"transicion invalida", &service.TransicionInvalidaError{EstadoActual: "COMPLETADO", Solicitado: "CANCELADO"}, http.StatusConflict},
		{"conflicto de concurrencia", fmt.Errorf("crear pedido: %w", service.ErrConflictoConcurrencia), http.StatusConflict},
		{"validacion", &service.ValidacionError{Campo: "costo", Detalle: "no puede ser negativo"}, http.StatusBadRequest},
		{"no encontrado", fmt.Errorf("pedido x no encontrado: %w", gorm.ErrRecordNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			w := respond(tc.err)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestRespondServiceErrorNoFiltraDetalleInterno(t *testing.T) {
	w := respond(errors.New(`pq: connection reset by peer (host=10.0.0.7)`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.7")
	assert.Contains(t, w.Body.String(), "Error interno del servidor")
}
