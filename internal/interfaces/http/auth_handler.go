package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/application/auth"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// rememberFor vida del cookie "recordarme".
const rememberFor = 30 * 24 * time.Hour

type loginPage struct {
	Title      string
	Email      string
	RememberMe bool
	Error      string
}

// AuthHandler login y logout del panel.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	sessions SessionManager
	views    *Views
	secure   bool
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessions SessionManager, views *Views, secureCookies bool, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, views: views, secure: secureCookies, log: log.Named("auth")}
}

// LoginForm GET /login. Si hay un email recordado, se precarga.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	email := c.Cookies(RememberEmailCookie)
	return h.views.Page(c, "login", loginPage{Title: "Iniciar sesión", Email: email, RememberMe: email != ""})
}

// Login POST /login. Persiste la sesión y redirige a /admin (administrador) o a /.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	remember := c.FormValue("remember") != ""

	session, dest, err := h.uc.Login(c.UserContext(), email, password)
	if err != nil {
		h.log.Warn().Err(err).Msg("login rechazado")
		msg := domain.Message(err)
		if errors.Is(err, domain.ErrInvalidInput) {
			msg = "Email y contraseña son requeridos"
		}
		c.Status(statusFor(err))
		return h.views.Page(c, "login", loginPage{Title: "Iniciar sesión", Email: email, RememberMe: remember, Error: msg})
	}

	if err := h.sessions.Save(c, *session); err != nil {
		h.log.Error().Err(err).Msg("guardar sesión")
		return fiber.NewError(fiber.StatusInternalServerError, "no se pudo guardar la sesión")
	}
	if remember {
		c.Cookie(&fiber.Cookie{
			Name:     RememberEmailCookie,
			Value:    email,
			Path:     "/",
			Expires:  time.Now().Add(rememberFor),
			HTTPOnly: true,
			Secure:   h.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	} else {
		expireCookie(c, RememberEmailCookie, h.secure)
	}
	h.log.Info().Str("role", session.UserRole).Str("dest", dest).Msg("login")
	return c.Redirect(dest, fiber.StatusSeeOther)
}

// Logout POST /logout: borra la sesión y vuelve al inicio.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c); err != nil {
		h.log.Warn().Err(err).Msg("borrar sesión")
	}
	return c.Redirect(auth.PublicHome, fiber.StatusSeeOther)
}
