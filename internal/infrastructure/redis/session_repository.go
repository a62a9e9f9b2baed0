// Package redis guarda las sesiones de login en Redis con TTL (SESSION_STORE=redis).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
	"github.com/jhoicas/cutman-web/pkg/config"
)

const keyPrefix = "cutman:session:"

var _ repository.SessionRepository = (*SessionRepo)(nil)

// NewClient abre la conexión y la verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// SessionRepo implementa repository.SessionRepository; la expiración la maneja Redis.
type SessionRepo struct {
	client goredis.Cmdable
}

// NewSessionRepository construye el repositorio.
func NewSessionRepository(client goredis.Cmdable) *SessionRepo {
	return &SessionRepo{client: client}
}

type storedSession struct {
	AuthToken string    `json:"authToken"`
	UserRole  string    `json:"userRole"`
	UserRolID int       `json:"userRolId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (r *SessionRepo) Save(ctx context.Context, key string, s entity.Session, ttl time.Duration) error {
	raw, err := json.Marshal(storedSession{
		AuthToken: s.AuthToken,
		UserRole:  s.UserRole,
		UserRolID: s.UserRolID,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, key string) (*entity.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var st storedSession
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("sesión corrupta: %w", err)
	}
	return &entity.Session{
		AuthToken: st.AuthToken,
		UserRole:  st.UserRole,
		UserRolID: st.UserRolID,
		ExpiresAt: st.ExpiresAt,
	}, nil
}

func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
