package http

import (
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
	"github.com/jhoicas/cutman-web/pkg/config"
	pkgjwt "github.com/jhoicas/cutman-web/pkg/jwt"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// Cookies y locals de la sesión.
const (
	SessionCookie       = "cutman_session"
	RememberEmailCookie = "cutman_remember_email"
	LocalSession        = "session"
)

// SessionManager lee y escribe la sesión de login del request.
// Load devuelve una sesión vacía (sin token) cuando no hay login.
type SessionManager interface {
	Load(c *fiber.Ctx) (entity.Session, error)
	Save(c *fiber.Ctx, s entity.Session) error
	Clear(c *fiber.Ctx) error
}

// NewSessionManager elige la implementación según SESSION_STORE. repo solo se usa
// con los almacenes server-side (memory, postgres, redis).
func NewSessionManager(cfg config.SessionConfig, repo repository.SessionRepository, log *logger.Logger) SessionManager {
	if cfg.Store == config.SessionStoreCookie || repo == nil {
		return NewCookieSessions(cfg)
	}
	return NewStoreSessions(cfg, repo, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cookie firmado (JWT HS256)
// ──────────────────────────────────────────────────────────────────────────────

// CookieSessions guarda la sesión entera en un JWT firmado dentro de un cookie HttpOnly.
type CookieSessions struct {
	secret string
	issuer string
	ttl    time.Duration
	secure bool
}

// NewCookieSessions construye el manager de sesión en cookie.
func NewCookieSessions(cfg config.SessionConfig) *CookieSessions {
	return &CookieSessions{secret: cfg.Secret, issuer: cfg.Issuer, ttl: cfg.TTL, secure: cfg.CookieSecure}
}

// Load un cookie inválido o expirado equivale a no tener sesión.
func (m *CookieSessions) Load(c *fiber.Ctx) (entity.Session, error) {
	raw := c.Cookies(SessionCookie)
	if raw == "" {
		return entity.Session{}, nil
	}
	claims, err := pkgjwt.Parse(m.secret, raw)
	if err != nil {
		return entity.Session{}, nil
	}
	s := entity.Session{AuthToken: claims.AuthToken, UserRole: claims.UserRole, UserRolID: claims.UserRolID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

func (m *CookieSessions) Save(c *fiber.Ctx, s entity.Session) error {
	tok, err := pkgjwt.Generate(m.secret, s.AuthToken, s.UserRole, s.UserRolID, m.issuer, m.ttl)
	if err != nil {
		return err
	}
	setSessionCookie(c, tok, m.ttl, m.secure)
	return nil
}

func (m *CookieSessions) Clear(c *fiber.Ctx) error {
	expireCookie(c, SessionCookie, m.secure)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén server-side (memoria, PostgreSQL, Redis)
// ──────────────────────────────────────────────────────────────────────────────

// StoreSessions el cookie solo lleva un identificador opaco; los datos viven en repo
// bajo el hash BLAKE2b del identificador.
type StoreSessions struct {
	repo   repository.SessionRepository
	ttl    time.Duration
	secure bool
	log    *logger.Logger
}

// NewStoreSessions construye el manager respaldado por repo.
func NewStoreSessions(cfg config.SessionConfig, repo repository.SessionRepository, log *logger.Logger) *StoreSessions {
	return &StoreSessions{repo: repo, ttl: cfg.TTL, secure: cfg.CookieSecure, log: log}
}

func (m *StoreSessions) Load(c *fiber.Ctx) (entity.Session, error) {
	sid := c.Cookies(SessionCookie)
	if sid == "" {
		return entity.Session{}, nil
	}
	s, err := m.repo.Get(c.UserContext(), SessionKey(sid))
	if err != nil {
		return entity.Session{}, err
	}
	if s == nil {
		return entity.Session{}, nil
	}
	return *s, nil
}

// Save genera siempre un identificador nuevo (no se reutiliza el de una sesión anterior).
func (m *StoreSessions) Save(c *fiber.Ctx, s entity.Session) error {
	if old := c.Cookies(SessionCookie); old != "" {
		if err := m.repo.Delete(c.UserContext(), SessionKey(old)); err != nil {
			m.log.Warn().Err(err).Msg("no se pudo borrar la sesión anterior")
		}
	}
	sid := uuid.NewString()
	s.ExpiresAt = time.Now().Add(m.ttl)
	if err := m.repo.Save(c.UserContext(), SessionKey(sid), s, m.ttl); err != nil {
		return err
	}
	setSessionCookie(c, sid, m.ttl, m.secure)
	return nil
}

func (m *StoreSessions) Clear(c *fiber.Ctx) error {
	sid := c.Cookies(SessionCookie)
	expireCookie(c, SessionCookie, m.secure)
	if sid == "" {
		return nil
	}
	return m.repo.Delete(c.UserContext(), SessionKey(sid))
}

// SessionKey hash hex del identificador de sesión; es la clave que se guarda.
func SessionKey(sid string) string {
	sum := blake2b.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}

func setSessionCookie(c *fiber.Ctx, value string, ttl time.Duration, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func expireCookie(c *fiber.Ctx, name string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware
// ──────────────────────────────────────────────────────────────────────────────

// SessionMiddleware relee la sesión en cada request y la deja en c.Locals. Un error del
// almacén se registra y el request sigue sin sesión.
func SessionMiddleware(m SessionManager, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := m.Load(c)
		if err != nil {
			log.Warn().Err(err).Msg("no se pudo leer la sesión")
			s = entity.Session{}
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del request (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return entity.Session{}
	}
	s, _ := v.(entity.Session)
	return s
}
