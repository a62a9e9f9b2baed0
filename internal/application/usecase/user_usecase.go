package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/cutman-web/internal/application/crud"
	"github.com/jhoicas/cutman-web/internal/application/dto"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

var _ crud.Store[dto.UserRow] = (*UserUseCase)(nil)

// UserUseCase casos de uso de la tabla de usuarios.
type UserUseCase struct {
	users repository.UserRepository
	roles repository.RoleRepository
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, roles repository.RoleRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, roles: roles, log: log.Named("users")}
}

// List trae la página y resuelve el nombre del rol de cada usuario. Si los roles no
// se pueden cargar solo se registra el error y los usuarios muestran "Desconocido".
func (uc *UserUseCase) List(ctx context.Context, token string, q table.Query) (*entity.Page[dto.UserRow], error) {
	page, err := uc.users.List(ctx, token, q.ListQuery())
	if err != nil {
		return nil, err
	}

	names := map[int]string{}
	roles, err := uc.roles.List(ctx, token)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron cargar los roles")
	}
	for _, r := range roles {
		names[r.ID] = r.Name
	}

	rows := make([]dto.UserRow, 0, len(page.Data))
	for _, u := range page.Data {
		name, ok := names[u.RoleID]
		if !ok {
			name = dto.UnknownRole
		}
		rows = append(rows, dto.UserRow{User: u, RoleName: name})
	}
	return &entity.Page[dto.UserRow]{
		Page:         page.Page,
		PerPage:      page.PerPage,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Data:         rows,
	}, nil
}

// Get usuario por id (precarga de edición y chequeo de administrador antes de borrar).
func (uc *UserUseCase) Get(ctx context.Context, token string, id int) (dto.UserRow, error) {
	u, err := uc.users.GetByID(ctx, token, id)
	if err != nil {
		return dto.UserRow{}, err
	}
	return dto.UserRow{User: *u}, nil
}

// Create alta de usuario.
func (uc *UserUseCase) Create(ctx context.Context, token string, v crud.Values) error {
	in, err := toUserInput(v)
	if err != nil {
		return err
	}
	return uc.users.Create(ctx, token, in)
}

// Update reemplazo completo; la contraseña solo se envía si se escribió una nueva.
func (uc *UserUseCase) Update(ctx context.Context, token string, id int, v crud.Values) error {
	in, err := toUserInput(v)
	if err != nil {
		return err
	}
	return uc.users.Update(ctx, token, id, in)
}

// Delete borra el usuario.
func (uc *UserUseCase) Delete(ctx context.Context, token string, id int) error {
	return uc.users.Delete(ctx, token, id)
}

// RoleOptions opciones del select de rol.
func (uc *UserUseCase) RoleOptions(ctx context.Context, token string) (map[string][]crud.Option, error) {
	roles, err := uc.roles.List(ctx, token)
	if err != nil {
		return nil, err
	}
	opts := make([]crud.Option, 0, len(roles))
	for _, r := range roles {
		opts = append(opts, crud.Option{Value: strconv.Itoa(r.ID), Label: r.Name})
	}
	return map[string][]crud.Option{"roleId": opts}, nil
}

// UserValues precarga del formulario de edición (sin contraseña).
func UserValues(u dto.UserRow) crud.Values {
	return crud.Values{
		"name":     u.Name,
		"lastName": u.LastName,
		"email":    u.Email,
		"roleId":   strconv.Itoa(u.RoleID),
	}
}

func toUserInput(v crud.Values) (entity.UserInput, error) {
	roleID, err := strconv.Atoi(strings.TrimSpace(v.Get("roleId")))
	if err != nil {
		return entity.UserInput{}, fmt.Errorf("%w: seleccioná un rol válido", domain.ErrInvalidInput)
	}
	return entity.UserInput{
		Name:     strings.TrimSpace(v.Get("name")),
		LastName: strings.TrimSpace(v.Get("lastName")),
		Email:    strings.TrimSpace(v.Get("email")),
		Password: v.Get("password"),
		RoleID:   roleID,
	}, nil
}
