package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Save inserta o reemplaza la sesión.
func (r *SessionRepo) Save(ctx context.Context, key string, s entity.Session, ttl time.Duration) error {
	query := `
		INSERT INTO web_sessions (session_key, auth_token, user_role, user_role_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_key) DO UPDATE
		SET auth_token = EXCLUDED.auth_token,
		    user_role = EXCLUDED.user_role,
		    user_role_id = EXCLUDED.user_role_id,
		    expires_at = EXCLUDED.expires_at`
	_, err := r.pool.Exec(ctx, query, key, s.AuthToken, s.UserRole, s.UserRolID, time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("upsert web_session: %w", err)
	}
	return nil
}

// Get devuelve la sesión vigente o nil.
func (r *SessionRepo) Get(ctx context.Context, key string) (*entity.Session, error) {
	query := `
		SELECT auth_token, user_role, user_role_id, expires_at
		FROM web_sessions
		WHERE session_key = $1 AND expires_at > now()`
	var s entity.Session
	err := r.pool.QueryRow(ctx, query, key).Scan(&s.AuthToken, &s.UserRole, &s.UserRolID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select web_session: %w", err)
	}
	return &s, nil
}

// Delete borra la sesión (logout).
func (r *SessionRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM web_sessions WHERE session_key = $1`, key); err != nil {
		return fmt.Errorf("delete web_session: %w", err)
	}
	return nil
}

// PurgeExpired borra las sesiones vencidas y devuelve cuántas eran.
func (r *SessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("purge web_sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
