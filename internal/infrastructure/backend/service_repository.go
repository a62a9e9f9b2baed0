package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementa repository.ServiceRepository contra /services.
type ServiceRepo struct {
	c *Client
}

// NewServiceRepository construye el repositorio.
func NewServiceRepository(c *Client) *ServiceRepo {
	return &ServiceRepo{c: c}
}

// servicePayload el backend espera price como número JSON, no como string.
type servicePayload struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Duration    string      `json:"duration"`
}

func toServicePayload(in entity.ServiceInput) servicePayload {
	return servicePayload{
		Name:        in.Name,
		Description: in.Description,
		Price:       json.Number(in.Price.String()),
		Duration:    in.Duration,
	}
}

// List GET /services. search se omite cuando está vacío.
func (r *ServiceRepo) List(ctx context.Context, token string, q repository.ListQuery) (*entity.Page[entity.Service], error) {
	params := listQuery(q.Page, q.PerPage)
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	return getPage[entity.Service](ctx, r.c, "/services", token, params)
}

// GetByID GET /services/{id}.
func (r *ServiceRepo) GetByID(ctx context.Context, token string, id int) (*entity.Service, error) {
	var s entity.Service
	if err := r.c.do(ctx, call{method: http.MethodGet, path: servicePath(id), token: token}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create POST /services.
func (r *ServiceRepo) Create(ctx context.Context, token string, in entity.ServiceInput) error {
	return r.c.do(ctx, call{method: http.MethodPost, path: "/services", token: token, body: toServicePayload(in)}, nil)
}

// Update PUT /services/{id}.
func (r *ServiceRepo) Update(ctx context.Context, token string, id int, in entity.ServiceInput) error {
	return r.c.do(ctx, call{method: http.MethodPut, path: servicePath(id), token: token, body: toServicePayload(in)}, nil)
}

// Delete DELETE /services/{id}.
func (r *ServiceRepo) Delete(ctx context.Context, token string, id int) error {
	return r.c.do(ctx, call{method: http.MethodDelete, path: servicePath(id), token: token}, nil)
}

func servicePath(id int) string {
	return fmt.Sprintf("/services/%d", id)
}
