package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/application/auth"
	"github.com/jhoicas/cutman-web/internal/application/chat"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Views         *Views
	Sessions      SessionManager
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ServiceUC     *usecase.ServiceUseCase
	Chat          *chat.Service
	Versions      *table.Versions
	Fence         *table.Fence
	SiteURL       string
	SecureCookies bool
	Log           *logger.Logger
}

// Router registra las rutas del sitio, del panel y de la API del chat.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.Sessions, deps.Log))

	// Sitio público
	site := NewSiteHandler(deps.Views, deps.SiteURL)
	app.Get("/", site.Home)
	app.Get("/sitemap.xml", site.Sitemap)

	// Login
	authHandler := NewAuthHandler(deps.AuthUC, deps.Sessions, deps.Views, deps.SecureCookies, deps.Log)
	app.Get("/login", authHandler.LoginForm)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// Panel: sin sesión las tablas muestran el error de autorización del backend.
	admin := app.Group("/admin")
	adminHandler := NewAdminHandler(deps.Views, deps.ServiceUC, []Stat{
		{Label: "Total de usuarios", Count: func(ctx context.Context, token string) (int, error) {
			p, err := deps.UserUC.List(ctx, token, table.NewQuery(1, table.PageSizes[0], ""))
			if err != nil {
				return 0, err
			}
			return p.TotalResults, nil
		}},
		{Label: "Servicios publicados", Count: func(ctx context.Context, token string) (int, error) {
			p, err := deps.ServiceUC.List(ctx, token, table.NewQuery(1, table.PageSizes[0], ""))
			if err != nil {
				return 0, err
			}
			return p.TotalResults, nil
		}},
	}, deps.Log)
	admin.Get("/", adminHandler.Overview)
	admin.Get("/appointments", adminHandler.Appointments)
	admin.Get("/settings", adminHandler.Settings)
	admin.Get("/services/pdf", adminHandler.PriceList)

	NewResourceHandler(UsersResource(deps.UserUC), deps.Views, deps.Versions, deps.Fence, deps.Log).
		Register(admin)
	NewResourceHandler(ServicesResource(deps.ServiceUC), deps.Views, deps.Versions, deps.Fence, deps.Log).
		WithLink("/admin/services/pdf", "Descargar lista de precios").
		Register(admin)

	// API del widget de chat (pública)
	chatGroup := app.Group("/api/chat")
	chatHandler := NewChatHandler(deps.Chat, deps.SecureCookies)
	chatGroup.Get("/", chatHandler.State)
	chatGroup.Post("/open", chatHandler.Open)
	chatGroup.Post("/close", chatHandler.Close)
	chatGroup.Post("/start", chatHandler.Start)
	chatGroup.Post("/messages", chatHandler.Send)
}
