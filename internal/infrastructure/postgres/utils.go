package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/dulceria-api/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// isForeignKeyViolation 23503: la fila está referenciada (ON DELETE RESTRICT) o la referencia no existe.
func isForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// mapWriteError traduce errores de integridad a errores de dominio; el resto se envuelve con op.
func mapWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err), hasCode(err, codeCheckViolation):
		return fmt.Errorf("%w: %s", domain.ErrConflict, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "restricción de integridad"
}

// validID indica si s es un UUID en forma canónica. Un id mal formado no puede existir en
// la tabla: los repos lo tratan como "no encontrado" en vez de mandarlo a una columna UUID.
func validID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// nullable convierte "" en NULL para columnas FK opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
