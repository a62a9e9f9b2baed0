package entity

import "time"

// Session sesión de login del panel. Se inyecta explícitamente en cada request;
// una sesión sin AuthToken equivale a no estar logueado.
type Session struct {
	AuthToken string
	UserRole  string
	UserRolID int
	ExpiresAt time.Time
}

// Authenticated indica si hay token.
func (s Session) Authenticated() bool {
	return s.AuthToken != ""
}

// IsAdmin indica si la sesión pertenece a un administrador.
func (s Session) IsAdmin() bool {
	return s.Authenticated() && s.UserRolID == RoleIDAdmin
}
