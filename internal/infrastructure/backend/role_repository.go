package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementa repository.RoleRepository contra GET /roles.
type RoleRepo struct {
	c *Client
}

// NewRoleRepository construye el repositorio.
func NewRoleRepository(c *Client) *RoleRepo {
	return &RoleRepo{c: c}
}

func (r *RoleRepo) List(ctx context.Context, token string) ([]entity.Role, error) {
	var roles []entity.Role
	if err := r.c.do(ctx, call{method: http.MethodGet, path: "/roles", token: token}, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}
