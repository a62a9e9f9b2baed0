package dto

// ChatIdentityRequest datos del cliente para iniciar el chat.
type ChatIdentityRequest struct {
	Name     string `json:"name" form:"name" example:"Juan"`
	LastName string `json:"lastName" form:"lastName" example:"Pérez"`
	Contact  string `json:"contact" form:"contact" example:"+54 9 11 6225-8491"`
}

// ChatMessageRequest mensaje del cliente.
type ChatMessageRequest struct {
	Text string `json:"text" form:"text" example:"Quiero un turno para mañana"`
}

// ChatMessageResponse una línea de la conversación.
type ChatMessageResponse struct {
	Text       string `json:"text"`
	FromCaller bool   `json:"fromCaller"`
}

// ChatStateResponse estado completo del widget.
type ChatStateResponse struct {
	State        string                `json:"state" example:"chatting"`
	Open         bool                  `json:"open"`
	SessionID    string                `json:"sessionId,omitempty"`
	Name         string                `json:"name,omitempty"`
	Messages     []ChatMessageResponse `json:"messages"`
	Sending      bool                  `json:"sending"`
	ReplyMissing bool                  `json:"replyMissing"`
}
