// Package audit publica eventos de auditoría fuera de la transacción principal.
// Los eventos se encolan tras el commit y un pool de workers los persiste;
// un fallo de escritura se registra en el log y en los contadores, nunca aborta la operación de origen.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

// Actor quién origina la operación (para la bitácora).
type Actor struct {
	UserID    string
	IP        string
	UserAgent string
}

// Event evento de dominio a registrar.
type Event struct {
	Actor
	Action      string
	Model       string
	ObjectID    string
	Description string
	Before      any
	After       any
	At          time.Time
}

// Publisher puerto que usan los casos de uso.
type Publisher interface {
	Publish(e Event)
}

// Stats contadores del despachador.
type Stats struct {
	Written int64 `json:"escritos"`
	Dropped int64 `json:"descartados"`
	Failed  int64 `json:"fallidos"`
}

const writeTimeout = 5 * time.Second

// Dispatcher cola con buffer y N workers que escriben en audit_logs.
type Dispatcher struct {
	repo   repository.AuditLogRepository
	log    zerolog.Logger
	events chan Event
	wg     conc.WaitGroup

	mu     sync.RWMutex
	closed bool

	written atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher arranca los workers. Llamar Close al apagar para drenar la cola.
func NewDispatcher(repo repository.AuditLogRepository, log zerolog.Logger, buffer, workers int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		repo:   repo,
		log:    log,
		events: make(chan Event, buffer),
	}
	for i := 0; i < workers; i++ {
		d.wg.Go(d.work)
	}
	return d
}

// Publish encola sin bloquear. Si la cola está llena o cerrada el evento se descarta y se registra.
func (d *Dispatcher) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(e, "despachador cerrado")
		return
	}
	select {
	case d.events <- e:
	default:
		d.drop(e, "cola de auditoría llena")
	}
}

// Close deja de aceptar eventos y espera a que se escriban los encolados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()
	d.wg.Wait()
}

// Stats devuelve una instantánea de los contadores.
func (d *Dispatcher) Stats() Stats {
	return Stats{Written: d.written.Load(), Dropped: d.dropped.Load(), Failed: d.failed.Load()}
}

func (d *Dispatcher) work() {
	for e := range d.events {
		d.write(e)
	}
}

func (d *Dispatcher) write(e Event) {
	entry := &entity.AuditLog{
		ID:          uuid.New().String(),
		UserID:      e.UserID,
		Action:      e.Action,
		Model:       e.Model,
		ObjectID:    e.ObjectID,
		Description: e.Description,
		IP:          e.IP,
		UserAgent:   e.UserAgent,
		Before:      marshal(e.Before),
		After:       marshal(e.After),
		CreatedAt:   e.At,
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := d.repo.Create(ctx, entry); err != nil {
		d.failed.Add(1)
		d.log.Error().Err(err).
			Str("accion", e.Action).
			Str("modelo", e.Model).
			Str("object_id", e.ObjectID).
			Msg("no se pudo registrar auditoría")
		return
	}
	d.written.Add(1)
}

func (d *Dispatcher) drop(e Event, reason string) {
	d.dropped.Add(1)
	d.log.Error().
		Str("accion", e.Action).
		Str("modelo", e.Model).
		Str("object_id", e.ObjectID).
		Msg(reason)
}

func marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
