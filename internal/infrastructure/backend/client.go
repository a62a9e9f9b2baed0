// Package backend es el cliente HTTP de la API REST de la barbería (usuarios, roles,
// servicios y login). Cada llamada autenticada recibe el token de la sesión del request;
// el paquete no guarda estado de sesión. No hay reintentos.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/infrastructure/transport"
	"github.com/jhoicas/cutman-web/pkg/config"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

const maxBodyBytes = 1 << 20

// Client cliente de bajo nivel compartido por los repositorios.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con la URL base resuelta por config.Load.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport.NewLoggingRoundTripper(nil, log.Named("backend")),
		},
	}
}

// BaseURL URL efectiva del backend.
func (c *Client) BaseURL() string { return c.baseURL }

// call describe una petición al backend.
type call struct {
	method string
	path   string
	query  url.Values
	token  string
	public bool // true solo para login
	body   any
}

// do ejecuta la llamada y decodifica la respuesta 2xx en out (si out != nil).
//
// Errores:
//   - token vacío en llamada autenticada: domain.ErrUnauthorized, sin enviar nada
//   - fallo de transporte: envuelve domain.ErrNetwork
//   - status no-2xx: *domain.APIError
//   - cuerpo 2xx que no decodifica: envuelve domain.ErrUnexpectedShape
func (c *Client) do(ctx context.Context, in call, out any) error {
	if !in.public && in.token == "" {
		return domain.ErrUnauthorized
	}

	var reader io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.baseURL+in.path, reader)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	if len(in.query) > 0 {
		req.URL.RawQuery = in.query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s tras %s: %v", domain.ErrNetwork, in.method, in.path, time.Since(start).Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta de %s: %v", domain.ErrNetwork, in.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnexpectedShape, in.method, in.path, err)
	}
	return nil
}

// apiError arma el error a partir del campo "message" del cuerpo; si no existe
// o no se puede leer, usa el texto del status HTTP.
func apiError(status int, raw []byte) *domain.APIError {
	var body struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		msg = strings.TrimSpace(body.Message)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &domain.APIError{Status: status, Message: msg}
}

// pageEnvelope sobre paginado tal como llega; data ausente es un formato inesperado.
type pageEnvelope struct {
	Page         int             `json:"page"`
	PerPage      int             `json:"perPage"`
	TotalPages   int             `json:"totalPages"`
	TotalResults int             `json:"totalResults"`
	Data         json.RawMessage `json:"data"`
}

// getPage pide un listado paginado y decodifica sus elementos.
func getPage[T any](ctx context.Context, c *Client, path, token string, q url.Values) (*entity.Page[T], error) {
	var env pageEnvelope
	if err := c.do(ctx, call{method: http.MethodGet, path: path, query: q, token: token}, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: GET %s: falta el campo data", domain.ErrUnexpectedShape, path)
	}
	var items []T
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrUnexpectedShape, path, err)
	}
	if items == nil {
		items = []T{}
	}
	return &entity.Page[T]{
		Page:         env.Page,
		PerPage:      env.PerPage,
		TotalPages:   env.TotalPages,
		TotalResults: env.TotalResults,
		Data:         items,
	}, nil
}

func listQuery(page, perPage int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("perPage", fmt.Sprint(perPage))
	return q
}
