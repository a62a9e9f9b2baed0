package ports

import "context"

// ChatMessage mensaje que se reenvía al webhook de automatización.
type ChatMessage struct {
	SessionID string
	ChatInput string
	UserName  string
}

// ChatWebhook define el puerto de salida hacia el webhook del chat.
// Cualquier adaptador (HTTP, mock) debe implementar esta interfaz.
type ChatWebhook interface {
	// SendMessage envía el mensaje y devuelve el campo output de la respuesta.
	// Un status no-2xx o una respuesta sin output es un error.
	SendMessage(ctx context.Context, msg ChatMessage) (string, error)
}
