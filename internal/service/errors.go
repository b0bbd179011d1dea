package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Typed domain errors. Handlers map these to HTTP status codes with
// errors.As / errors.Is; services never touch HTTP concerns.

// ErrConflictoConcurrencia marks a lost race on a concurrent write.
// Retryable: the caller can simply re-issue the request.
var ErrConflictoConcurrencia = errors.New("conflicto de concurrencia, reintente la operacion")

// clasificarErrTx maps Postgres serialization failures and deadlocks
// (SQLSTATE 40001 / 40P01) onto ErrConflictoConcurrencia so handlers
// answer a retryable 409 instead of leaking driver detail. Any other
// error passes through untouched.
func clasificarErrTx(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return fmt.Errorf("%w (SQLSTATE %s)", ErrConflictoConcurrencia, pgErr.Code)
	}
	return err
}

// StockInsuficienteError aborts a decrement cascade. The whole cascade
// rolls back: no partial decrements survive.
type StockInsuficienteError struct {
	Nombre     string
	TipoItem   string // "producto" | "insumo"
	Disponible decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s %q: disponible %s, solicitado %s",
		e.TipoItem, e.Nombre, e.Disponible.String(), e.Solicitado.String())
}

// RecetaIncompletaError blocks operating on a producto whose receta is
// unusable: loading it when lines reference insumos with no resolvable
// cost (inactive or absent from both the evento inventory and the
// catalog), or selling a ledger row flagged tiene_receta whose receta
// was removed from the catalog afterwards.
type RecetaIncompletaError struct {
	NombreProducto   string
	InsumosFaltantes []string
}

func (e *RecetaIncompletaError) Error() string {
	if len(e.InsumosFaltantes) == 0 {
		return fmt.Sprintf("receta incompleta para %q: la receta fue eliminada del catalogo", e.NombreProducto)
	}
	return fmt.Sprintf("receta incompleta para %q: faltan insumos %s",
		e.NombreProducto, strings.Join(e.InsumosFaltantes, ", "))
}

// TransicionInvalidaError rejects an estado change requested from a
// status that does not permit it. No state change happens.
type TransicionInvalidaError struct {
	EstadoActual string
	Solicitado   string
}

func (e *TransicionInvalidaError) Error() string {
	return fmt.Sprintf("transicion invalida: el pedido esta %s, no se puede pasar a %s",
		e.EstadoActual, e.Solicitado)
}

// ValidacionError carries a field-level rejection raised before any
// mutation (negative quantity, immutable field, missing row).
type ValidacionError struct {
	Campo   string
	Detalle string
}

func (e *ValidacionError) Error() string {
	if e.Campo == "" {
		return e.Detalle
	}
	return fmt.Sprintf("%s: %s", e.Campo, e.Detalle)
}
