package entity

// Role rol de usuario (solo lectura). Permissions es opaco para el frontend.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Permissions string `json:"permissions"`
	SucursalID  int    `json:"sucursalId"`
}
