package auth

import (
	"sync"
	"time"
)

// Throttle cuenta intentos fallidos de login por clave (IP). Al llegar a maxAttempts
// la clave queda bloqueada lock; los fallos se olvidan tras window sin nuevos intentos.
type Throttle struct {
	mu          sync.Mutex
	maxAttempts int
	lock        time.Duration
	window      time.Duration
	now         func() time.Time
	entries     map[string]*throttleEntry
}

type throttleEntry struct {
	failures    int
	lastFailure time.Time
	lockedUntil time.Time
}

// NewThrottle construye el limitador. maxAttempts <= 0 lo desactiva.
func NewThrottle(maxAttempts int, lock, window time.Duration) *Throttle {
	return &Throttle{
		maxAttempts: maxAttempts,
		lock:        lock,
		window:      window,
		now:         time.Now,
		entries:     make(map[string]*throttleEntry),
	}
}

// Locked indica si la clave está bloqueada y por cuánto tiempo más.
func (t *Throttle) Locked(key string) (bool, time.Duration) {
	if t.maxAttempts <= 0 {
		return false, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[key]
	if !ok {
		return false, 0
	}
	now := t.now()
	if now.Before(e.lockedUntil) {
		return true, e.lockedUntil.Sub(now)
	}
	if !e.lockedUntil.IsZero() || now.Sub(e.lastFailure) > t.window {
		delete(t.entries, key)
	}
	return false, 0
}

// Fail registra un intento fallido. Devuelve true si con este intento la clave quedó bloqueada.
func (t *Throttle) Fail(key string) bool {
	if t.maxAttempts <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	e, ok := t.entries[key]
	if !ok || now.Sub(e.lastFailure) > t.window {
		e = &throttleEntry{}
		t.entries[key] = e
	}
	e.failures++
	e.lastFailure = now
	if e.failures >= t.maxAttempts {
		e.lockedUntil = now.Add(t.lock)
		return true
	}
	return false
}

// Reset limpia la clave tras un login exitoso.
func (t *Throttle) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// Sweep elimina entradas vencidas; se llama periódicamente desde cmd/api.
func (t *Throttle) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	n := 0
	for k, e := range t.entries {
		if now.After(e.lockedUntil) && now.Sub(e.lastFailure) > t.window {
			delete(t.entries, k)
			n++
		}
	}
	return n
}
