package entity

// RoleIDAdmin id del rol administrador en el backend.
const RoleIDAdmin = 1

// User usuario del panel tal como lo expone el backend. La contraseña es de solo escritura
// y nunca se lee de vuelta.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	RoleID    int    `json:"roleId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// IsAdmin indica si el usuario tiene el rol administrador.
func (u User) IsAdmin() bool {
	return u.RoleID == RoleIDAdmin
}

// UserInput cuerpo de alta/edición. Password vacío no se envía (edición sin cambio de contraseña).
type UserInput struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	RoleID   int    `json:"roleId"`
}

// LoginResult respuesta de POST /users/login.
type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	RoleID int    `json:"roleId"`
}
