package repository

import (
	"context"
	"time"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// SessionRepository persistencia server-side de sesiones de login (memoria, PostgreSQL o Redis).
// key es el hash del identificador del cookie, nunca el identificador en claro.
// Get devuelve (nil, nil) si no existe o expiró.
type SessionRepository interface {
	Save(ctx context.Context, key string, s entity.Session, ttl time.Duration) error
	Get(ctx context.Context, key string) (*entity.Session, error)
	Delete(ctx context.Context, key string) error
}
