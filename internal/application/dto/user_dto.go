package dto

import "github.com/jhoicas/cutman-web/internal/domain/entity"

// UnknownRole nombre que se muestra cuando el roleId no está entre los roles cargados.
const UnknownRole = "Desconocido"

// UserRow usuario con el nombre de su rol resuelto localmente contra GET /roles.
type UserRow struct {
	entity.User
	RoleName string
}
