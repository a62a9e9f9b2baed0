// Package memory guarda sesiones de login en el proceso (un solo nodo, tests).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementa repository.SessionRepository con un map protegido por mutex.
type SessionRepo struct {
	mu   sync.RWMutex
	data map[string]entity.Session
	now  func() time.Time
}

// NewSessionRepository construye el repositorio vacío.
func NewSessionRepository() *SessionRepo {
	return &SessionRepo{data: make(map[string]entity.Session), now: time.Now}
}

func (r *SessionRepo) Save(_ context.Context, key string, s entity.Session, ttl time.Duration) error {
	s.ExpiresAt = r.now().Add(ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = s
	return nil
}

func (r *SessionRepo) Get(_ context.Context, key string) (*entity.Session, error) {
	r.mu.RLock()
	s, ok := r.data[key]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !s.ExpiresAt.After(r.now()) {
		r.mu.Lock()
		delete(r.data, key)
		r.mu.Unlock()
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
