package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cutman-web/internal/application/crud"
	"github.com/jhoicas/cutman-web/internal/application/dto"
	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	page    *entity.Page[entity.User]
	updated *entity.UserInput
}

func (f *fakeUsers) List(context.Context, string, repository.ListQuery) (*entity.Page[entity.User], error) {
	return f.page, nil
}
func (f *fakeUsers) GetByID(_ context.Context, _ string, id int) (*entity.User, error) {
	return &entity.User{ID: id}, nil
}
func (f *fakeUsers) Create(_ context.Context, _ string, in entity.UserInput) error {
	f.updated = &in
	return nil
}
func (f *fakeUsers) Update(_ context.Context, _ string, _ int, in entity.UserInput) error {
	f.updated = &in
	return nil
}
func (f *fakeUsers) Delete(context.Context, string, int) error { return nil }

type fakeRoles struct {
	roles []entity.Role
	err   error
}

func (f fakeRoles) List(context.Context, string) ([]entity.Role, error) { return f.roles, f.err }

type fakeServices struct {
	pages   map[int]*entity.Page[entity.Service]
	created *entity.ServiceInput
	asked   []int
}

func (f *fakeServices) List(_ context.Context, _ string, q repository.ListQuery) (*entity.Page[entity.Service], error) {
	f.asked = append(f.asked, q.Page)
	return f.pages[q.Page], nil
}
func (f *fakeServices) GetByID(context.Context, string, int) (*entity.Service, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeServices) Create(_ context.Context, _ string, in entity.ServiceInput) error {
	f.created = &in
	return nil
}
func (f *fakeServices) Update(context.Context, string, int, entity.ServiceInput) error { return nil }
func (f *fakeServices) Delete(context.Context, string, int) error                      { return nil }

type fakePDF struct {
	got ports.PriceList
}

func (f *fakePDF) GeneratePriceList(_ context.Context, in ports.PriceList) ([]byte, error) {
	f.got = in
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUseCase_ListResuelveNombreDeRol(t *testing.T) {
	users := &fakeUsers{page: &entity.Page[entity.User]{
		Page: 1, TotalPages: 1,
		Data: []entity.User{{ID: 1, RoleID: 1}, {ID: 2, RoleID: 9}},
	}}
	uc := usecase.NewUserUseCase(users, fakeRoles{roles: []entity.Role{{ID: 1, Name: "admin"}}}, logger.Nop())

	page, err := uc.List(context.Background(), "tok", table.NewQuery(1, 10, ""))
	require.NoError(t, err)

	assert.Equal(t, "admin", page.Data[0].RoleName)
	assert.Equal(t, dto.UnknownRole, page.Data[1].RoleName)
}

func TestUserUseCase_FalloDeRolesNoRompeLaTabla(t *testing.T) {
	users := &fakeUsers{page: &entity.Page[entity.User]{Page: 1, TotalPages: 1, Data: []entity.User{{ID: 1, RoleID: 1}}}}
	uc := usecase.NewUserUseCase(users, fakeRoles{err: errors.New("caído")}, logger.Nop())

	page, err := uc.List(context.Background(), "tok", table.NewQuery(1, 10, ""))
	require.NoError(t, err)
	assert.Equal(t, "Desconocido", page.Data[0].RoleName)
}

func TestUserUseCase_UpdateSinPassword(t *testing.T) {
	users := &fakeUsers{}
	uc := usecase.NewUserUseCase(users, fakeRoles{}, logger.Nop())

	err := uc.Update(context.Background(), "tok", 5, crud.Values{"name": " Ana ", "email": "ana@cutman.com", "roleId": "2", "password": ""})
	require.NoError(t, err)
	assert.Equal(t, entity.UserInput{Name: "Ana", Email: "ana@cutman.com", RoleID: 2}, *users.updated)
}

func TestUserUseCase_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUsers{}, fakeRoles{}, logger.Nop())
	err := uc.Create(context.Background(), "tok", crud.Values{"roleId": ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_RoleOptions(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeUsers{}, fakeRoles{roles: []entity.Role{{ID: 1, Name: "admin"}, {ID: 2, Name: "cliente"}}}, logger.Nop())
	opts, err := uc.RoleOptions(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []crud.Option{{Value: "1", Label: "admin"}, {Value: "2", Label: "cliente"}}, opts["roleId"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Servicios
// ──────────────────────────────────────────────────────────────────────────────

func TestServiceUseCase_CreateParseaPrecio(t *testing.T) {
	repo := &fakeServices{}
	uc := usecase.NewServiceUseCase(repo, &fakePDF{}, usecase.BusinessInfo{})

	err := uc.Create(context.Background(), "tok", crud.Values{"name": "Barba", "price": "5100.50", "duration": "30 min"})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5100.5").Equal(repo.created.Price))

	err = uc.Create(context.Background(), "tok", crud.Values{"name": "Barba", "price": "caro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServiceUseCase_PriceListRecorreTodasLasPaginas(t *testing.T) {
	repo := &fakeServices{pages: map[int]*entity.Page[entity.Service]{
		1: {Page: 1, TotalPages: 2, Data: []entity.Service{{ID: 1}, {ID: 2}}},
		2: {Page: 2, TotalPages: 2, Data: []entity.Service{{ID: 3}}},
	}}
	pdf := &fakePDF{}
	uc := usecase.NewServiceUseCase(repo, pdf, usecase.BusinessInfo{Name: "The Cutman Co."})

	out, err := uc.PriceListPDF(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, []int{1, 2}, repo.asked)
	assert.Len(t, pdf.got.Services, 3)
	assert.Equal(t, "The Cutman Co.", pdf.got.Business)
}
