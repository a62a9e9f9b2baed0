package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/cutman-web/internal/application/chat"
	"github.com/jhoicas/cutman-web/internal/application/dto"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// ChatWidgetCookie identifica el widget de cada navegador.
const ChatWidgetCookie = "chat_widget"

// ChatHandler API JSON del widget de chat.
type ChatHandler struct {
	svc    *chat.Service
	secure bool
}

// NewChatHandler construye el handler del chat.
func NewChatHandler(svc *chat.Service, secureCookies bool) *ChatHandler {
	return &ChatHandler{svc: svc, secure: secureCookies}
}

// widgetID lee el cookie del widget o crea uno nuevo.
func (h *ChatHandler) widgetID(c *fiber.Ctx) string {
	if id := c.Cookies(ChatWidgetCookie); id != "" {
		return id
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     ChatWidgetCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}

// State godoc
// @Summary      Estado del widget de chat
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.ChatStateResponse
// @Router       /api/chat [get]
func (h *ChatHandler) State(c *fiber.Ctx) error {
	return c.JSON(toChatState(h.svc.Get(h.widgetID(c))))
}

// Open godoc
// @Summary      Abrir el widget (pide los datos del cliente)
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.ChatStateResponse
// @Router       /api/chat/open [post]
func (h *ChatHandler) Open(c *fiber.Ctx) error {
	return c.JSON(toChatState(h.svc.Open(h.widgetID(c))))
}

// Close godoc
// @Summary      Cerrar el widget (descarta datos y conversación)
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.ChatStateResponse
// @Router       /api/chat/close [post]
func (h *ChatHandler) Close(c *fiber.Ctx) error {
	return c.JSON(toChatState(h.svc.Close(h.widgetID(c))))
}

// Start godoc
// @Summary      Iniciar el chat con los datos del cliente
// @Description  Cada envío del formulario genera un id de sesión nuevo.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatIdentityRequest  true  "nombre, apellido (opcional), contacto"
// @Success      200   {object}  dto.ChatStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chat/start [post]
func (h *ChatHandler) Start(c *fiber.Ctx) error {
	var in dto.ChatIdentityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.svc.Start(h.widgetID(c), entity.CallerIdentity{Name: in.Name, LastName: in.LastName, Contact: in.Contact})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y teléfono o email son requeridos"})
		}
		return chatError(c, err)
	}
	return c.JSON(toChatState(snap))
}

// Send godoc
// @Summary      Enviar un mensaje al asistente
// @Description  El mensaje se agrega a la conversación antes de llamar al webhook. Un texto en blanco se ignora.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatMessageRequest  true  "texto del mensaje"
// @Success      200   {object}  dto.ChatStateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chat/messages [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var in dto.ChatMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.svc.Send(c.UserContext(), h.widgetID(c), in.Text)
	if err != nil {
		return chatError(c, err)
	}
	return c.JSON(toChatState(snap))
}

func chatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BUSY", Message: "esperá la respuesta anterior"})
	case errors.Is(err, domain.ErrChatClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CHAT_CLOSED", Message: "el chat está cerrado"})
	case errors.Is(err, domain.ErrNoIdentity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_IDENTITY", Message: "completá tus datos antes de chatear"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toChatState(s chat.Snapshot) dto.ChatStateResponse {
	out := dto.ChatStateResponse{
		State:        s.State.String(),
		Open:         s.Open(),
		SessionID:    s.SessionID,
		Messages:     make([]dto.ChatMessageResponse, 0, len(s.Messages)),
		Sending:      s.Sending,
		ReplyMissing: s.ReplyMissing,
	}
	if s.Identity != nil {
		out.Name = s.Identity.Name
	}
	for _, m := range s.Messages {
		out.Messages = append(out.Messages, dto.ChatMessageResponse{Text: m.Text, FromCaller: m.FromCaller})
	}
	return out
}
