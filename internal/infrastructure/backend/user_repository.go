package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa repository.UserRepository contra /users.
type UserRepo struct {
	c *Client
}

// NewUserRepository construye el repositorio.
func NewUserRepository(c *Client) *UserRepo {
	return &UserRepo{c: c}
}

// List GET /users/paginated. search se envía siempre, aunque esté vacío.
func (r *UserRepo) List(ctx context.Context, token string, q repository.ListQuery) (*entity.Page[entity.User], error) {
	params := listQuery(q.Page, q.PerPage)
	params.Set("search", q.Search)
	return getPage[entity.User](ctx, r.c, "/users/paginated", token, params)
}

// GetByID GET /users/{id}.
func (r *UserRepo) GetByID(ctx context.Context, token string, id int) (*entity.User, error) {
	var u entity.User
	if err := r.c.do(ctx, call{method: http.MethodGet, path: userPath(id), token: token}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create POST /users.
func (r *UserRepo) Create(ctx context.Context, token string, in entity.UserInput) error {
	return r.c.do(ctx, call{method: http.MethodPost, path: "/users", token: token, body: in}, nil)
}

// Update PUT /users/{id}. Reemplazo completo; password solo viaja si no está vacío.
func (r *UserRepo) Update(ctx context.Context, token string, id int, in entity.UserInput) error {
	return r.c.do(ctx, call{method: http.MethodPut, path: userPath(id), token: token, body: in}, nil)
}

// Delete DELETE /users/{id}.
func (r *UserRepo) Delete(ctx context.Context, token string, id int) error {
	return r.c.do(ctx, call{method: http.MethodDelete, path: userPath(id), token: token}, nil)
}

func userPath(id int) string {
	return fmt.Sprintf("/users/%d", id)
}
