package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema crea tablas, índices y la secuencia de SKU si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
