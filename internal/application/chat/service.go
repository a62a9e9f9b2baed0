// Package chat implementa el widget de chat del sitio: estados Cerrado, Abierto pidiendo
// datos del cliente y Abierto chateando. Cada navegador tiene su widget en memoria; la
// conversación nunca se persiste y se descarta al cerrar.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// State estado del widget.
type State int

const (
	StateClosed State = iota
	StateCollectingIdentity
	StateChatting
)

func (s State) String() string {
	switch s {
	case StateCollectingIdentity:
		return "collecting_identity"
	case StateChatting:
		return "chatting"
	default:
		return "closed"
	}
}

// Snapshot copia del estado de un widget para renderizar.
type Snapshot struct {
	State        State
	Identity     *entity.CallerIdentity
	SessionID    string
	Messages     []entity.ChatMessage
	Sending      bool // hay un mensaje esperando respuesta del webhook
	ReplyMissing bool // el último mensaje no obtuvo respuesta utilizable
}

// Open el panel está visible.
func (s Snapshot) Open() bool { return s.State != StateClosed }

type widget struct {
	mu           sync.Mutex
	state        State
	identity     *entity.CallerIdentity
	sessionID    string
	messages     []entity.ChatMessage
	inFlight     bool
	replyMissing bool
	lastSeen     time.Time
}

func (w *widget) snapshot() Snapshot {
	snap := Snapshot{
		State:        w.state,
		SessionID:    w.sessionID,
		Messages:     append([]entity.ChatMessage(nil), w.messages...),
		Sending:      w.inFlight,
		ReplyMissing: w.replyMissing,
	}
	if w.identity != nil {
		id := *w.identity
		snap.Identity = &id
	}
	return snap
}

func (w *widget) reset() {
	w.state = StateClosed
	w.identity = nil
	w.sessionID = ""
	w.messages = nil
	w.inFlight = false
	w.replyMissing = false
}

// Service registro de widgets por navegador.
type Service struct {
	webhook ports.ChatWebhook
	log     *logger.Logger

	mu      sync.Mutex
	widgets map[string]*widget

	newSessionID func() string
	now          func() time.Time
}

// NewService construye el servicio.
func NewService(webhook ports.ChatWebhook, log *logger.Logger) *Service {
	return &Service{
		webhook:      webhook,
		log:          log.Named("chat"),
		widgets:      make(map[string]*widget),
		newSessionID: uuid.NewString,
		now:          time.Now,
	}
}

// lookup devuelve el widget de widgetID; lo crea cerrado si create es true.
func (s *Service) lookup(widgetID string, create bool) *widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.widgets[widgetID]
	if !ok {
		if !create {
			return nil
		}
		w = &widget{}
		s.widgets[widgetID] = w
	}
	w.lastSeen = s.now()
	return w
}

// Get estado actual; un widget desconocido está cerrado.
func (s *Service) Get(widgetID string) Snapshot {
	w := s.lookup(widgetID, false)
	if w == nil {
		return Snapshot{State: StateClosed}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Open Cerrado → Abierto pidiendo datos. Abrir un widget ya abierto no cambia nada.
func (s *Service) Open(widgetID string) Snapshot {
	w := s.lookup(widgetID, true)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		w.state = StateCollectingIdentity
	}
	return w.snapshot()
}

// Close descarta datos del cliente, id de sesión y conversación.
func (s *Service) Close(widgetID string) Snapshot {
	w := s.lookup(widgetID, false)
	if w == nil {
		return Snapshot{State: StateClosed}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
	return w.snapshot()
}

// Start registra los datos del cliente y genera un id de sesión nuevo por cada envío del formulario.
func (s *Service) Start(widgetID string, identity entity.CallerIdentity) (Snapshot, error) {
	w := s.lookup(widgetID, true)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return w.snapshot(), domain.ErrChatClosed
	}
	identity.Name = strings.TrimSpace(identity.Name)
	identity.LastName = strings.TrimSpace(identity.LastName)
	identity.Contact = strings.TrimSpace(identity.Contact)
	if !identity.Valid() {
		return w.snapshot(), domain.ErrInvalidInput
	}
	w.identity = &identity
	w.sessionID = s.newSessionID()
	w.messages = nil
	w.inFlight = false
	w.replyMissing = false
	w.state = StateChatting
	s.log.Info().Str("session_id", w.sessionID).Msg("chat iniciado")
	return w.snapshot(), nil
}

// Send agrega el mensaje del cliente y lo reenvía al webhook. Texto en blanco se ignora;
// con un mensaje ya en vuelo devuelve domain.ErrBusy. Si el webhook falla o responde sin
// output no se agrega respuesta y el snapshot queda con ReplyMissing.
func (s *Service) Send(ctx context.Context, widgetID, text string) (Snapshot, error) {
	w := s.lookup(widgetID, false)
	if w == nil {
		return Snapshot{State: StateClosed}, domain.ErrChatClosed
	}

	w.mu.Lock()
	switch {
	case w.state == StateClosed:
		defer w.mu.Unlock()
		return w.snapshot(), domain.ErrChatClosed
	case w.state != StateChatting || w.identity == nil:
		defer w.mu.Unlock()
		return w.snapshot(), domain.ErrNoIdentity
	case strings.TrimSpace(text) == "":
		defer w.mu.Unlock()
		return w.snapshot(), nil
	case w.inFlight:
		defer w.mu.Unlock()
		return w.snapshot(), domain.ErrBusy
	}
	w.messages = append(w.messages, entity.ChatMessage{Text: text, FromCaller: true})
	w.inFlight = true
	w.replyMissing = false
	sessionID := w.sessionID
	msg := ports.ChatMessage{SessionID: sessionID, ChatInput: text, UserName: w.identity.Name}
	w.mu.Unlock()

	reply, err := s.webhook.SendMessage(ctx, msg)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sessionID != sessionID {
		// cerrado o reiniciado mientras esperaba: la respuesta pertenece a otra sesión
		return w.snapshot(), nil
	}
	w.inFlight = false
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("webhook sin respuesta utilizable")
		w.replyMissing = true
		return w.snapshot(), nil
	}
	w.messages = append(w.messages, entity.ChatMessage{Text: reply, FromCaller: false})
	return w.snapshot(), nil
}

// Evict borra los widgets sin actividad desde hace más de idle (salvo los que esperan al webhook).
func (s *Service) Evict(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, w := range s.widgets {
		w.mu.Lock()
		stale := w.lastSeen.Before(cutoff) && !w.inFlight
		w.mu.Unlock()
		if stale {
			delete(s.widgets, id)
			n++
		}
	}
	return n
}

// Run ejecuta Evict periódicamente hasta que ctx termine.
func (s *Service) Run(ctx context.Context, idle time.Duration) {
	interval := idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(idle); n > 0 {
				s.log.Debug().Int("widgets", n).Msg("widgets inactivos descartados")
			}
		}
	}
}
