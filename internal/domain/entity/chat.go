package entity

import "strings"

// CallerIdentity datos que deja el visitante antes de chatear.
type CallerIdentity struct {
	Name     string
	LastName string
	Contact  string // teléfono o email
}

// Valid nombre y contacto son obligatorios; el apellido no.
func (c CallerIdentity) Valid() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Contact) != ""
}

// ChatMessage una línea de la conversación.
type ChatMessage struct {
	Text       string
	FromCaller bool
}
