package repository

import (
	"context"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// ServiceRepository define el puerto hacia el backend para Service.
type ServiceRepository interface {
	List(ctx context.Context, token string, q ListQuery) (*entity.Page[entity.Service], error)
	GetByID(ctx context.Context, token string, id int) (*entity.Service, error)
	Create(ctx context.Context, token string, in entity.ServiceInput) error
	Update(ctx context.Context, token string, id int, in entity.ServiceInput) error
	Delete(ctx context.Context, token string, id int) error
}
