package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

// Destinos después del login.
const (
	AdminHome  = "/admin"
	PublicHome = "/"
)

// AuthUseCase login contra el backend.
type AuthUseCase struct {
	repo repository.AuthRepository
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(repo repository.AuthRepository) *AuthUseCase {
	return &AuthUseCase{repo: repo}
}

// Login verifica credenciales y devuelve la sesión a persistir y el destino:
// /admin para el rol administrador, / para cualquier otro.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidInput
	}
	res, err := uc.repo.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	s := &entity.Session{AuthToken: res.Token, UserRole: res.Role, UserRolID: res.RoleID}
	return s, Destination(*s), nil
}

// Destination página de inicio según el rol de la sesión.
func Destination(s entity.Session) string {
	if s.IsAdmin() {
		return AdminHome
	}
	return PublicHome
}
