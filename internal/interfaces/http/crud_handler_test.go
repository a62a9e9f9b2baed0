package http_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/cutman-web/internal/interfaces/http"
)

// tag devuelve la etiqueta de apertura del elemento con el id dado.
func tag(t *testing.T, body, id string) string {
	t.Helper()
	i := strings.Index(body, `id="`+id+`"`)
	require.GreaterOrEqual(t, i, 0, "no se encontró #%s", id)
	start := strings.LastIndex(body[:i], "<")
	end := strings.Index(body[i:], ">")
	require.GreaterOrEqual(t, end, 0)
	return body[start : i+end]
}

func TestResourceTable_PrimeraPagina(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodGet, "/admin/services/table?page=1&perPage=5", adminCookie(t), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "GET /services?page=1&perPage=5", env.api.lastRequest("GET /services"))
	assert.Equal(t, 5, strings.Count(body, `/edit"`))
	assert.Contains(t, body, "Servicio 1")
	assert.Contains(t, body, "Servicio 5")
	assert.NotContains(t, body, "Servicio 6")
	assert.Contains(t, body, "$10.800,00")
	assert.Contains(t, body, "Página 1 de 3")
	assert.Contains(t, tag(t, body, "services-prev"), "disabled")
	assert.NotContains(t, tag(t, body, "services-next"), "disabled")
	assert.Contains(t, tag(t, body, "services-prev"), `hx-target="#services-table"`)
	assert.Contains(t, tag(t, body, "services-next"), `hx-target="#services-table"`)
	assert.Contains(t, body, `<input type="hidden" name="perPage" value="5">`)
}

func TestResourceTable_UltimaPagina(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/services/table?page=3&perPage=5", adminCookie(t), nil)

	assert.Equal(t, 3, strings.Count(body, `/edit"`))
	assert.Contains(t, body, "Página 3 de 3")
	assert.NotContains(t, tag(t, body, "services-prev"), "disabled")
	assert.Contains(t, tag(t, body, "services-next"), "disabled")
}

func TestResourceTable_TamañoInvalidoUsaDefault(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/services/table?page=0&perPage=7", adminCookie(t), nil)

	assert.Equal(t, "GET /services?page=1&perPage=10", env.api.lastRequest("GET /services"))
	assert.Contains(t, body, "Página 1 de 2")
}

func TestResourceTable_SinSesion(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodGet, "/admin/services/table", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Error: No autorizado: No se encontró el token de autenticación.")
	assert.Empty(t, env.api.lastRequest("GET /services"))
}

func TestResourceTable_CookieInvalidoEsSinSesion(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/users/table", apphttp.SessionCookie+"=basura", nil)

	assert.Contains(t, body, "No autorizado")
}

func TestResourceTable_RespuestaSuperadaSeDescarta(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fence.Begin("tab1:services", 10)

	resp, body := env.do(t, http.MethodGet, "/admin/services/table?page=2&seq=5&tab=tab1", adminCookie(t), nil)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "none", resp.Header.Get(apphttp.HeaderReswap))
	assert.Empty(t, body)
}

func TestResourceTable_OtraPestañaNoSeDescarta(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fence.Begin("tab1:services", 10)

	resp, body := env.do(t, http.MethodGet, "/admin/services/table?page=2&seq=5&tab=tab2", adminCookie(t), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Página 2 de 3")
}

func TestResourceTable_UsuariosConRol(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/users/table", adminCookie(t), nil)

	assert.Contains(t, body, "Juan Pérez")
	assert.Contains(t, body, "admin@cutman.com")
	assert.Contains(t, body, "<td>Administrador</td>")
	assert.Contains(t, body, "<td>Cliente</td>")
}

func TestResourcePage_Completa(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodGet, "/admin/services", adminCookie(t), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Panel de Administración")
	assert.Contains(t, body, "Elementos por página:")
	assert.Contains(t, body, `hx-trigger="services-changed from:body"`)
	assert.Contains(t, body, `href="/admin/services/pdf"`)
	assert.Contains(t, body, "Página 1 de 2")
}

func TestDelete_OkIncrementaVersion(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodPost, "/admin/services/4/delete", adminCookie(t), map[string]string{})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.JSONEq(t, `{"services-changed":{"version":1}}`, resp.Header.Get(apphttp.HeaderTrigger))
	assert.Equal(t, uint64(1), env.versions.Current("services"))
	assert.Equal(t, uint64(0), env.versions.Current("users"))
	env.api.mu.Lock()
	assert.Equal(t, []string{"/services/4"}, env.api.deleted)
	env.api.mu.Unlock()
}

func TestDelete_FallaMuestraAlerta(t *testing.T) {
	env := newTestEnv(t, nil)
	env.api.mu.Lock()
	env.api.failDelete = true
	env.api.mu.Unlock()

	resp, body := env.do(t, http.MethodPost, "/admin/services/4/delete", adminCookie(t), map[string]string{})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "none", resp.Header.Get(apphttp.HeaderReswap))
	assert.Equal(t, uint64(0), env.versions.Current("services"))

	raw := resp.Header.Get(apphttp.HeaderTrigger)
	for i := 0; i < len(raw); i++ {
		require.Less(t, raw[i], byte(0x80), "el header HX-Trigger debe ser ASCII")
	}
	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "Error al eliminar: el servicio está en uso", payload[apphttp.CrudAlertEvent]["message"])
}

func TestConfirmDelete_AdvertenciaAdministrador(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/users/1/delete", adminCookie(t), nil)
	assert.Contains(t, body, "modal-warning")
	assert.Contains(t, body, apphttp.AdminDeleteWarning)
	assert.Contains(t, body, "¿Estás seguro de que quieres eliminar este usuario?")

	_, body = env.do(t, http.MethodGet, "/admin/users/2/delete", adminCookie(t), nil)
	assert.NotContains(t, body, "modal-warning")
	assert.NotContains(t, body, apphttp.AdminDeleteWarning)
	assert.Contains(t, body, `hx-post="/admin/users/2/delete"`)
}

func TestConfirmDelete_ServicioSinAdvertencia(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/services/3/delete", adminCookie(t), nil)

	assert.NotContains(t, body, "modal-warning")
	assert.Contains(t, body, "eliminar este servicio?")
}

func TestNewForm_PreseleccionaPrimerRol(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/users/new", adminCookie(t), nil)

	assert.Contains(t, body, "Crear Nuevo Usuario")
	assert.Contains(t, body, `<option value="1" selected>Administrador</option>`)
	assert.Contains(t, body, `<option value="2">Cliente</option>`)
	assert.Contains(t, body, `hx-post="/admin/users"`)
}

func TestEditForm_Precargado(t *testing.T) {
	env := newTestEnv(t, nil)

	_, body := env.do(t, http.MethodGet, "/admin/users/2/edit", adminCookie(t), nil)

	assert.Contains(t, body, "Editar Usuario")
	assert.Contains(t, body, `value="juan@cutman.com"`)
	assert.Contains(t, body, "Contraseña (dejar en blanco para no cambiar):")
	assert.Contains(t, body, `<option value="2" selected>Cliente</option>`)
	assert.Contains(t, body, `hx-post="/admin/users/2"`)
}

func TestCreate_PrecioInvalidoReRenderiza(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodPost, "/admin/services", adminCookie(t), map[string]string{
		"name": "Corte", "description": "x", "price": "abc", "duration": "30 minutos",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "no es un número")
	assert.Contains(t, body, `value="Corte"`)
	assert.Empty(t, resp.Header.Get(apphttp.HeaderTrigger))
	assert.Empty(t, env.api.lastRequest("POST /services"))
}

func TestCreate_OkAvisaALaTabla(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodPost, "/admin/services", adminCookie(t), map[string]string{
		"name": "Corte", "description": "x", "price": "10800", "duration": "30 minutos",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.JSONEq(t, `{"services-changed":{"version":1}}`, resp.Header.Get(apphttp.HeaderTrigger))
	assert.Equal(t, "POST /services", env.api.lastRequest("POST /services"))
}

func TestPriceList_PDF(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.do(t, http.MethodGet, "/admin/services/pdf", adminCookie(t), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "lista-de-precios.pdf")
	assert.True(t, strings.HasPrefix(body, "%PDF"))
}

func TestPriceList_SinSesion(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/admin/services/pdf", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
