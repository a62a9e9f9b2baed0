package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// Secciones del panel.
const (
	SectionOverview     = "overview"
	SectionUsers        = "users"
	SectionAppointments = "appointments"
	SectionServices     = "services"
	SectionSettings     = "settings"
)

type navItem struct {
	Href   string
	Label  string
	Active bool
}

// adminNav menú del panel con la sección activa marcada.
func adminNav(active string) []navItem {
	items := []navItem{
		{Href: "/admin", Label: "Resumen"},
		{Href: "/admin/users", Label: "Usuarios"},
		{Href: "/admin/appointments", Label: "Citas"},
		{Href: "/admin/services", Label: "Servicios"},
		{Href: "/admin/settings", Label: "Configuración"},
	}
	keys := []string{SectionOverview, SectionUsers, SectionAppointments, SectionServices, SectionSettings}
	for i := range items {
		items[i].Active = keys[i] == active
	}
	return items
}

// adminPage datos de la página del panel.
type adminPage struct {
	Title    string
	Section  string
	Nav      []navItem
	Session  entity.Session
	Resource *shellView
	Stats    []statView
}

type statView struct {
	Label string
	Value int
	Error string
}

// Stat contador del resumen (total de usuarios, total de servicios).
type Stat struct {
	Label string
	Count func(ctx context.Context, token string) (int, error)
}

// AdminHandler secciones del panel que no son tablas, más el PDF de precios.
type AdminHandler struct {
	views    *Views
	services *usecase.ServiceUseCase
	stats    []Stat
	log      *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(views *Views, services *usecase.ServiceUseCase, stats []Stat, log *logger.Logger) *AdminHandler {
	return &AdminHandler{views: views, services: services, stats: stats, log: log.Named("admin")}
}

// Overview GET /admin.
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	s := GetSession(c)
	stats := make([]statView, 0, len(h.stats))
	for _, st := range h.stats {
		sv := statView{Label: st.Label}
		n, err := st.Count(c.UserContext(), s.AuthToken)
		if err != nil {
			h.log.Warn().Err(err).Str("stat", st.Label).Msg("no se pudo calcular el resumen")
			sv.Error = domain.Message(err)
		}
		sv.Value = n
		stats = append(stats, sv)
	}
	return h.views.Page(c, "admin", adminPage{
		Title:   "Panel de Administración",
		Section: SectionOverview,
		Nav:     adminNav(SectionOverview),
		Session: s,
		Stats:   stats,
	})
}

// Appointments GET /admin/appointments.
func (h *AdminHandler) Appointments(c *fiber.Ctx) error {
	return h.placeholder(c, SectionAppointments, "Gestión de Citas")
}

// Settings GET /admin/settings.
func (h *AdminHandler) Settings(c *fiber.Ctx) error {
	return h.placeholder(c, SectionSettings, "Configuración del Sistema")
}

func (h *AdminHandler) placeholder(c *fiber.Ctx, section, title string) error {
	return h.views.Page(c, "admin", adminPage{
		Title:   title,
		Section: section,
		Nav:     adminNav(section),
		Session: GetSession(c),
	})
}

// PriceList GET /admin/services/pdf: lista de precios en PDF con todos los servicios.
func (h *AdminHandler) PriceList(c *fiber.Ctx) error {
	pdf, err := h.services.PriceListPDF(c.UserContext(), GetSession(c).AuthToken)
	if err != nil {
		h.log.Error().Err(err).Msg("lista de precios")
		return fiber.NewError(statusFor(err), domain.Message(err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lista-de-precios.pdf"`)
	return c.Send(pdf)
}
