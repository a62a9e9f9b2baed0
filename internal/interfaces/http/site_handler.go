package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/infrastructure/sitemap"
)

// Textos del sitio público.
const (
	BusinessName    = "The Cutman Co."
	BusinessAddress = "Av. Italia 4950, B1622, Dique Luján, Provincia de Buenos Aires"
	BusinessPhone   = "+549 11 6225-8491"
	WelcomeTooltip  = "¡Bienvenido! ¿Querés agendar un turno?"
)

type featuredService struct {
	ID       string
	Title    string
	Price    string
	Duration string
}

type homePage struct {
	Title    string
	Services []featuredService
	Tooltip  string
	Phone    string
}

// featured servicios destacados de la página de inicio.
var featured = []featuredService{
	{ID: "corte-cabello", Title: "Corte de Cabello", Price: "$10.800,00", Duration: "Duración 30 minutos"},
	{ID: "corte-barba", Title: "Corte y Barba", Price: "$11.300,00", Duration: "Duración 40 minutos"},
	{ID: "barba", Title: "Barba", Price: "$5.100,00", Duration: "Duración 30 minutos"},
}

// SiteHandler página pública y sitemap.
type SiteHandler struct {
	views   *Views
	siteURL string
	started time.Time
}

// NewSiteHandler construye el handler.
func NewSiteHandler(views *Views, siteURL string) *SiteHandler {
	return &SiteHandler{views: views, siteURL: siteURL, started: time.Now()}
}

// Home GET /: página de la barbería con el widget de chat.
func (h *SiteHandler) Home(c *fiber.Ctx) error {
	return h.views.Page(c, "home", homePage{
		Title:    BusinessName + " | Barber & Outfitters",
		Services: featured,
		Tooltip:  WelcomeTooltip,
		Phone:    BusinessPhone,
	})
}

// Sitemap GET /sitemap.xml.
func (h *SiteHandler) Sitemap(c *fiber.Ctx) error {
	raw, err := sitemap.Build(h.siteURL, h.started, []sitemap.Entry{
		{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
		{Path: "/login", ChangeFreq: "monthly", Priority: 0.3},
	})
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(raw)
}
