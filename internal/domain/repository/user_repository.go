package repository

import (
	"context"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// UserRepository define el puerto hacia el backend para User. Todas las operaciones
// reciben el token de la sesión; token vacío devuelve domain.ErrUnauthorized sin llamar al backend.
type UserRepository interface {
	List(ctx context.Context, token string, q ListQuery) (*entity.Page[entity.User], error)
	GetByID(ctx context.Context, token string, id int) (*entity.User, error)
	Create(ctx context.Context, token string, in entity.UserInput) error
	Update(ctx context.Context, token string, id int, in entity.UserInput) error
	Delete(ctx context.Context, token string, id int) error
}

// RoleRepository lista de roles (sin paginar).
type RoleRepository interface {
	List(ctx context.Context, token string) ([]entity.Role, error)
}

// AuthRepository login contra el backend.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*entity.LoginResult, error)
}
