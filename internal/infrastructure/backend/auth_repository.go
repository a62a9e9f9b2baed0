package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.AuthRepository = (*AuthRepo)(nil)

// AuthRepo login contra POST /users/login (única llamada sin token).
type AuthRepo struct {
	c *Client
}

// NewAuthRepository construye el repositorio.
func NewAuthRepository(c *Client) *AuthRepo {
	return &AuthRepo{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AuthRepo) Login(ctx context.Context, email, password string) (*entity.LoginResult, error) {
	var out entity.LoginResult
	err := r.c.do(ctx, call{
		method: http.MethodPost,
		path:   "/users/login",
		public: true,
		body:   loginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: login sin token", domain.ErrUnexpectedShape)
	}
	return &out, nil
}
