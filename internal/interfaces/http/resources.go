package http

import (
	"strings"

	"github.com/jhoicas/cutman-web/internal/application/crud"
	"github.com/jhoicas/cutman-web/internal/application/dto"
	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/pkg/money"
)

// UsersResource tabla de usuarios. Borrar un administrador muestra la advertencia.
func UsersResource(uc *usecase.UserUseCase) crud.Resource[dto.UserRow] {
	return crud.Resource[dto.UserRow]{
		Name:              "users",
		Item:              "usuario",
		Title:             "Usuarios",
		Description:       "Una lista de todos los usuarios en tu cuenta, incluyendo su nombre, título, email y rol.",
		AddLabel:          "Agregar usuario",
		SearchPlaceholder: "Buscar usuarios...",
		LoadingText:       "Cargando usuarios...",
		CreateTitle:       "Crear Nuevo Usuario",
		EditTitle:         "Editar Usuario",
		Columns: []crud.Column[dto.UserRow]{
			{Header: "Nombre", Value: func(u dto.UserRow) string { return strings.TrimSpace(u.Name + " " + u.LastName) }},
			{Header: "Título", Value: func(dto.UserRow) string { return "" }},
			{Header: "Email", Value: func(u dto.UserRow) string { return u.Email }},
			{Header: "Rol", Value: func(u dto.UserRow) string { return u.RoleName }},
		},
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre:", Type: crud.FieldText, Required: true},
			{Name: "lastName", Label: "Apellido:", Type: crud.FieldText, Required: true},
			{Name: "email", Label: "Email:", Type: crud.FieldEmail, Required: true},
			{
				Name: "password", Label: "Contraseña:", EditLabel: "Contraseña (dejar en blanco para no cambiar):",
				Type: crud.FieldPassword, Required: true, OptionalOnEdit: true,
			},
			{Name: "roleId", Label: "Rol:", Type: crud.FieldSelect, Placeholder: "Selecciona un rol", Required: true},
		},
		Store:    uc,
		ID:       func(u dto.UserRow) int { return u.ID },
		Values:   usecase.UserValues,
		Warn:     func(u dto.UserRow) bool { return u.IsAdmin() },
		WarnText: AdminDeleteWarning,
		Options:  uc.RoleOptions,
	}
}

// ServicesResource tabla de servicios.
func ServicesResource(uc *usecase.ServiceUseCase) crud.Resource[entity.Service] {
	return crud.Resource[entity.Service]{
		Name:              "services",
		Item:              "servicio",
		Title:             "Servicios",
		Description:       "Una lista de todos los servicios disponibles.",
		AddLabel:          "Agregar servicio",
		SearchPlaceholder: "Buscar servicios...",
		LoadingText:       "Cargando servicios...",
		CreateTitle:       "Crear Nuevo Servicio",
		EditTitle:         "Editar Servicio",
		Columns: []crud.Column[entity.Service]{
			{Header: "Nombre", Value: func(s entity.Service) string { return s.Name }},
			{Header: "Descripción", Value: func(s entity.Service) string { return s.Description }},
			{Header: "Precio", Value: func(s entity.Service) string { return money.Format(s.Price) }},
			{Header: "Duración", Value: func(s entity.Service) string { return s.Duration }},
		},
		Fields: []crud.Field{
			{Name: "name", Label: "Nombre:", Type: crud.FieldText, Required: true},
			{Name: "description", Label: "Descripción:", Type: crud.FieldTextarea, Rows: 3},
			{Name: "price", Label: "Precio:", Type: crud.FieldNumber, Required: true, Step: "0.01", Min: "0"},
			{Name: "duration", Label: "Duración:", Type: crud.FieldText, Placeholder: "Ej: 30 minutos", Required: true},
		},
		Store:  uc,
		ID:     func(s entity.Service) int { return s.ID },
		Values: usecase.ServiceValues,
	}
}
