package domain

import (
	"errors"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrValidation      = errors.New("datos rechazados por el servidor")
	ErrNetwork         = errors.New("error de red")
	ErrUnexpectedShape = errors.New("respuesta con formato inesperado")
	ErrBusy            = errors.New("ya hay un mensaje en curso")
	ErrChatClosed      = errors.New("el chat no está abierto")
	ErrNoIdentity      = errors.New("faltan los datos del cliente")
)

// MissingTokenMessage es el texto que se muestra cuando no hay sesión.
const MissingTokenMessage = "No autorizado: No se encontró el token de autenticación."

// APIError respuesta no-2xx del backend. Message sale del campo "message" del cuerpo
// o, si no se puede leer, del texto del status HTTP.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is clasifica el error: 401/403 como ErrUnauthorized, 400/409/422 como ErrValidation
// y 404 como ErrNotFound.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrValidation:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusConflict || e.Status == http.StatusUnprocessableEntity
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Message devuelve el texto a mostrar al usuario para un error del backend.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnauthorized) {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return "No autorizado: " + apiErr.Message
		}
		return MissingTokenMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrNetwork) {
		return "No se pudo conectar con el servidor. Intentá de nuevo."
	}
	if errors.Is(err, ErrUnexpectedShape) {
		return "El servidor respondió con un formato inesperado."
	}
	return err.Error()
}
