package ports

import (
	"context"
	"time"

	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// PriceList datos de la lista de precios imprimible.
type PriceList struct {
	Business    string
	Address     string
	Phone       string
	GeneratedAt time.Time
	Services    []entity.Service
}

// PriceListGenerator genera la lista de precios de servicios en PDF.
type PriceListGenerator interface {
	GeneratePriceList(ctx context.Context, in PriceList) ([]byte, error)
}
