package inventory

import "github.com/jhoicas/dulceria-api/internal/domain/entity"

// Reconciliation resultado de recalcular el stock de un producto desde su historial.
type Reconciliation struct {
	In         int64 `json:"ingresos"`
	Returns    int64 `json:"devoluciones"`
	Adjustment int64 `json:"ajustes"` // suma con signo
	Out        int64 `json:"salidas"`
	Transfers  int   `json:"transferencias"`
	Movements  int   `json:"movimientos"`
	// Expected = max(0, ingresos + devoluciones + ajustes - salidas).
	Expected int64 `json:"stock_esperado"`
	// Replayed es el stock obtenido aplicando los movimientos en orden con recorte en cero.
	Replayed int64 `json:"stock_secuencial"`
}

// Reconcile agrega el historial. movs debe venir en orden cronológico (fecha, creación)
// para que Replayed sea significativo.
func Reconcile(movs []*entity.Movement) Reconciliation {
	var r Reconciliation
	var running int64
	for _, m := range movs {
		units := Units(m.Quantity)
		switch m.Type {
		case entity.MovementTypeIN:
			r.In += units
		case entity.MovementTypeRETURN:
			r.Returns += units
		case entity.MovementTypeADJUSTMENT:
			r.Adjustment += units
		case entity.MovementTypeOUT:
			r.Out += units
		case entity.MovementTypeTRANSFER:
			r.Transfers++
		}
		running, _ = ApplyEffect(m.Type, running, m.Quantity)
		r.Movements++
	}
	r.Expected = clamp(r.In + r.Returns + r.Adjustment - r.Out)
	r.Replayed = running
	return r
}

// Clamped indica que el recorte en cero de algún paso hizo divergir ambos cálculos.
func (r Reconciliation) Clamped() bool {
	return r.Expected != r.Replayed
}
