package table

import (
	"sync"
	"time"
)

// Fence descarta respuestas de tabla que quedaron viejas: cada petición trae un número
// de secuencia del cliente y solo la más nueva vista para una clave puede aplicarse.
// Secuencia 0 significa "sin cerco" (clientes sin JavaScript).
type Fence struct {
	mu      sync.Mutex
	latest  map[string]fenceEntry
	nowFunc func() time.Time
}

type fenceEntry struct {
	seq  uint64
	seen time.Time
}

// NewFence construye el cerco.
func NewFence() *Fence {
	return &Fence{latest: make(map[string]fenceEntry), nowFunc: time.Now}
}

// Ticket resultado de Begin; Current se consulta cuando la respuesta ya está lista.
type Ticket struct {
	f   *Fence
	key string
	seq uint64
}

// Begin registra la petición seq para key.
func (f *Fence) Begin(key string, seq uint64) Ticket {
	if seq == 0 {
		return Ticket{}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.latest[key]; !ok || seq > e.seq {
		f.latest[key] = fenceEntry{seq: seq, seen: f.nowFunc()}
	}
	return Ticket{f: f, key: key, seq: seq}
}

// Current false si llegó una petición más nueva para la misma clave mientras esta estaba en vuelo.
func (t Ticket) Current() bool {
	if t.f == nil {
		return true
	}
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	return t.f.latest[t.key].seq == t.seq
}

// Sweep olvida claves sin actividad desde hace más de idle. Devuelve cuántas se borraron.
func (f *Fence) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := f.nowFunc().Add(-idle)
	n := 0
	for k, e := range f.latest {
		if e.seen.Before(cutoff) {
			delete(f.latest, k)
			n++
		}
	}
	return n
}
