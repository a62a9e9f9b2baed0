package table

import "sync"

// Versions contador de versión por recurso. Cada mutación exitosa lo incrementa y
// las tablas de ese recurso vuelven a pedir la página actual con los mismos parámetros.
type Versions struct {
	mu sync.Mutex
	v  map[string]uint64
}

// NewVersions construye el store vacío.
func NewVersions() *Versions {
	return &Versions{v: make(map[string]uint64)}
}

// Bump incrementa y devuelve la nueva versión de resource.
func (s *Versions) Bump(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v[resource]++
	return s.v[resource]
}

// Current versión actual (0 si nunca hubo cambios).
func (s *Versions) Current(resource string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v[resource]
}
