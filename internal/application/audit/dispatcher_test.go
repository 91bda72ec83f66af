package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dulceria-api/internal/domain/entity"
	"github.com/jhoicas/dulceria-api/internal/domain/repository"
)

const (
	timeoutTest = time.Second
	tick        = 5 * time.Millisecond
)

type memAuditRepo struct {
	mu   sync.Mutex
	logs []*entity.AuditLog
	err  error
	gate chan struct{}
}

func (r *memAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, l)
	return nil
}

func (r *memAuditRepo) List(context.Context, repository.AuditFilter) ([]*entity.AuditLog, int, error) {
	return r.logs, len(r.logs), nil
}

func TestDispatcher_WritesAfterClose(t *testing.T) {
	repo := &memAuditRepo{}
	d := NewDispatcher(repo, zerolog.Nop(), 16, 2)

	for i := 0; i < 10; i++ {
		d.Publish(Event{
			Actor:  Actor{UserID: "u1", IP: "10.0.0.1"},
			Action: entity.AuditCreate,
			Model:  "MovimientoInventario",
			After:  map[string]int64{"stock": int64(i)},
		})
	}
	d.Close()

	require.Len(t, repo.logs, 10)
	assert.Equal(t, Stats{Written: 10}, d.Stats())

	var after map[string]int64
	require.NoError(t, json.Unmarshal(repo.logs[0].After, &after))
	assert.Contains(t, after, "stock")
	assert.Nil(t, repo.logs[0].Before)
	assert.False(t, repo.logs[0].CreatedAt.IsZero())
}

func TestDispatcher_FailuresAreCountedNotPropagated(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("db caída")}
	d := NewDispatcher(repo, zerolog.Nop(), 4, 1)

	d.Publish(Event{Action: entity.AuditDelete, Model: "MovimientoInventario"})
	d.Close()

	assert.Equal(t, int64(1), d.Stats().Failed)
	assert.Zero(t, d.Stats().Written)
}

func TestDispatcher_DropsWhenFullOrClosed(t *testing.T) {
	repo := &memAuditRepo{gate: make(chan struct{})}
	d := NewDispatcher(repo, zerolog.Nop(), 1, 1)

	// el worker queda bloqueado con el primero; el segundo ocupa el buffer; el tercero se descarta
	d.Publish(Event{Action: "A"})
	require.Eventually(t, func() bool { return len(d.events) == 0 }, timeoutTest, tick)
	d.Publish(Event{Action: "B"})
	d.Publish(Event{Action: "C"})
	assert.Equal(t, int64(1), d.Stats().Dropped)

	close(repo.gate)
	d.Close()
	d.Publish(Event{Action: "D"})

	assert.Equal(t, int64(2), d.Stats().Dropped)
	assert.Equal(t, int64(2), d.Stats().Written)
	d.Close() // idempotente
}
