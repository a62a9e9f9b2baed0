package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cutman-web/internal/application/auth"
	"github.com/jhoicas/cutman-web/internal/application/chat"
	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/application/usecase"
	"github.com/jhoicas/cutman-web/internal/infrastructure/backend"
	"github.com/jhoicas/cutman-web/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cutman-web/internal/interfaces/http"
	"github.com/jhoicas/cutman-web/pkg/config"
	pkgjwt "github.com/jhoicas/cutman-web/pkg/jwt"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "cutman-web-test"
	testToken  = "backend-token"
)

var testSessionCfg = config.SessionConfig{
	Store:  config.SessionStoreCookie,
	Secret: testSecret,
	TTL:    time.Hour,
	Issuer: testIssuer,
}

// fakeAPI backend REST en memoria: 13 servicios, dos usuarios (uno administrador) y dos roles.
type fakeAPI struct {
	mu         sync.Mutex
	services   []map[string]any
	users      []map[string]any
	deleted    []string
	failDelete bool
	requests   []string
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{}
	for i := 1; i <= 13; i++ {
		api.services = append(api.services, map[string]any{
			"id": i, "name": fmt.Sprintf("Servicio %d", i), "description": "desc",
			"price": 10800, "duration": "30 minutos",
		})
	}
	api.users = []map[string]any{
		{"id": 1, "name": "Admin", "lastName": "Cutman", "email": "admin@cutman.com", "roleId": 1},
		{"id": 2, "name": "Juan", "lastName": "Pérez", "email": "juan@cutman.com", "roleId": 2},
	}
	return api
}

func (a *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body.Email {
		case "admin@cutman.com":
			writeJSON(w, http.StatusOK, map[string]any{"token": testToken, "role": "admin", "roleId": 1})
		case "cliente@cutman.com":
			writeJSON(w, http.StatusOK, map[string]any{"token": testToken, "role": "cliente", "roleId": 2})
		default:
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Credenciales inválidas"})
		}
	})
	mux.HandleFunc("GET /roles", a.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Administrador"},
			{"id": 2, "name": "Cliente"},
		})
	}))
	mux.HandleFunc("GET /users/paginated", a.authed(func(w http.ResponseWriter, r *http.Request) {
		a.page(w, r, a.users)
	}))
	mux.HandleFunc("GET /users/{id}", a.authed(func(w http.ResponseWriter, r *http.Request) {
		a.item(w, r, a.users)
	}))
	mux.HandleFunc("DELETE /users/{id}", a.authed(a.remove))
	mux.HandleFunc("GET /services", a.authed(func(w http.ResponseWriter, r *http.Request) {
		a.page(w, r, a.services)
	}))
	mux.HandleFunc("GET /services/{id}", a.authed(func(w http.ResponseWriter, r *http.Request) {
		a.item(w, r, a.services)
	}))
	mux.HandleFunc("POST /services", a.authed(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	mux.HandleFunc("DELETE /services/{id}", a.authed(a.remove))
	return mux
}

func (a *fakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.requests = append(a.requests, r.Method+" "+r.URL.RequestURI())
		a.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token inválido"})
			return
		}
		next(w, r)
	}
}

func (a *fakeAPI) page(w http.ResponseWriter, r *http.Request, all []map[string]any) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	total := (len(all) + perPage - 1) / perPage
	from := (page - 1) * perPage
	to := from + perPage
	if from > len(all) {
		from = len(all)
	}
	if to > len(all) {
		to = len(all)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page": page, "perPage": perPage, "totalPages": total, "totalResults": len(all),
		"data": all[from:to],
	})
}

func (a *fakeAPI) item(w http.ResponseWriter, r *http.Request, all []map[string]any) {
	id, _ := strconv.Atoi(r.PathValue("id"))
	for _, it := range all {
		if it["id"] == id {
			writeJSON(w, http.StatusOK, it)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "no encontrado"})
}

func (a *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failDelete {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "el servicio está en uso"})
		return
	}
	a.deleted = append(a.deleted, r.URL.Path)
	w.WriteHeader(http.StatusOK)
}

func (a *fakeAPI) lastRequest(prefix string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.requests) - 1; i >= 0; i-- {
		if strings.HasPrefix(a.requests[i], prefix) {
			return a.requests[i]
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// webhookStub responde siempre con reply (o err).
type webhookStub struct {
	reply string
	err   error
}

func (s webhookStub) SendMessage(_ context.Context, _ ports.ChatMessage) (string, error) {
	return s.reply, s.err
}

type testEnv struct {
	app      *fiber.App
	api      *fakeAPI
	versions *table.Versions
	fence    *table.Fence
}

// newTestEnv arma la aplicación completa contra el backend falso.
func newTestEnv(t *testing.T, sessions apphttp.SessionManager) *testEnv {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	log := logger.Nop()
	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, log)
	if sessions == nil {
		sessions = apphttp.NewCookieSessions(testSessionCfg)
	}
	env := &testEnv{api: api, versions: table.NewVersions(), fence: table.NewFence()}

	serviceUC := usecase.NewServiceUseCase(backend.NewServiceRepository(client), pdf.NewMarotoPriceListGenerator(),
		usecase.BusinessInfo{Name: apphttp.BusinessName})

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		Views:     apphttp.MustViews(),
		Sessions:  sessions,
		AuthUC:    auth.NewAuthUseCase(backend.NewAuthRepository(client)),
		UserUC:    usecase.NewUserUseCase(backend.NewUserRepository(client), backend.NewRoleRepository(client), log),
		ServiceUC: serviceUC,
		Chat:      chat.NewService(webhookStub{reply: "¡Hola! Tenemos turnos mañana."}, log),
		Versions:  env.versions,
		Fence:     env.fence,
		SiteURL:   "https://cutman.example.com",
		Log:       log,
	})
	env.app = app
	return env
}

// adminCookie cookie de sesión firmado para un administrador.
func adminCookie(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testSecret, testToken, "admin", 1, testIssuer, time.Hour)
	require.NoError(t, err)
	return apphttp.SessionCookie + "=" + tok
}

// do ejecuta un request contra la app y devuelve la respuesta y el cuerpo.
func (e *testEnv) do(t *testing.T, method, target, cookie string, form map[string]string) (*http.Response, string) {
	t.Helper()
	var body io.Reader
	if form != nil {
		vals := url.Values{}
		for k, v := range form {
			vals.Set(k, v)
		}
		body = strings.NewReader(vals.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	req.Header.Set("HX-Request", "true")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}
