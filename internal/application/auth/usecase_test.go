package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cutman-web/internal/application/auth"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

type fakeAuth struct {
	res *entity.LoginResult
	err error
}

func (f fakeAuth) Login(context.Context, string, string) (*entity.LoginResult, error) {
	return f.res, f.err
}

func TestLogin_AdminVaAlPanel(t *testing.T) {
	uc := auth.NewAuthUseCase(fakeAuth{res: &entity.LoginResult{Token: "t", Role: "admin", RoleID: 1}})

	s, dest, err := uc.Login(context.Background(), "admin@cutman.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "/admin", dest)
	assert.Equal(t, entity.Session{AuthToken: "t", UserRole: "admin", UserRolID: 1}, *s)
}

func TestLogin_OtroRolVaAlInicio(t *testing.T) {
	uc := auth.NewAuthUseCase(fakeAuth{res: &entity.LoginResult{Token: "t", Role: "cliente", RoleID: 2}})

	_, dest, err := uc.Login(context.Background(), "c@cutman.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "/", dest)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := auth.NewAuthUseCase(fakeAuth{})
	_, _, err := uc.Login(context.Background(), " ", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
