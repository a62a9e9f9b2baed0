package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cutman-web/internal/application/crud"
	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

var _ crud.Store[entity.Service] = (*ServiceUseCase)(nil)

// maxPriceListPages límite de páginas que se recorren para la lista de precios.
const maxPriceListPages = 50

// BusinessInfo datos del local impresos en la lista de precios.
type BusinessInfo struct {
	Name    string
	Address string
	Phone   string
}

// ServiceUseCase casos de uso de la tabla de servicios.
type ServiceUseCase struct {
	repo     repository.ServiceRepository
	pdf      ports.PriceListGenerator
	business BusinessInfo
	now      func() time.Time
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository, pdf ports.PriceListGenerator, business BusinessInfo) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, pdf: pdf, business: business, now: time.Now}
}

func (uc *ServiceUseCase) List(ctx context.Context, token string, q table.Query) (*entity.Page[entity.Service], error) {
	return uc.repo.List(ctx, token, q.ListQuery())
}

func (uc *ServiceUseCase) Get(ctx context.Context, token string, id int) (entity.Service, error) {
	s, err := uc.repo.GetByID(ctx, token, id)
	if err != nil {
		return entity.Service{}, err
	}
	return *s, nil
}

func (uc *ServiceUseCase) Create(ctx context.Context, token string, v crud.Values) error {
	in, err := toServiceInput(v)
	if err != nil {
		return err
	}
	return uc.repo.Create(ctx, token, in)
}

func (uc *ServiceUseCase) Update(ctx context.Context, token string, id int, v crud.Values) error {
	in, err := toServiceInput(v)
	if err != nil {
		return err
	}
	return uc.repo.Update(ctx, token, id, in)
}

func (uc *ServiceUseCase) Delete(ctx context.Context, token string, id int) error {
	return uc.repo.Delete(ctx, token, id)
}

// PriceListPDF recorre todas las páginas de servicios y genera la lista de precios.
func (uc *ServiceUseCase) PriceListPDF(ctx context.Context, token string) ([]byte, error) {
	var all []entity.Service
	q := table.NewQuery(1, 20, "")
	for i := 0; i < maxPriceListPages; i++ {
		page, err := uc.repo.List(ctx, token, q.ListQuery())
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if !page.HasNext() {
			break
		}
		q = q.Next()
	}
	return uc.pdf.GeneratePriceList(ctx, ports.PriceList{
		Business:    uc.business.Name,
		Address:     uc.business.Address,
		Phone:       uc.business.Phone,
		GeneratedAt: uc.now(),
		Services:    all,
	})
}

// ServiceValues precarga del formulario de edición.
func ServiceValues(s entity.Service) crud.Values {
	return crud.Values{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price.String(),
		"duration":    s.Duration,
	}
}

func toServiceInput(v crud.Values) (entity.ServiceInput, error) {
	raw := strings.TrimSpace(v.Get("price"))
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return entity.ServiceInput{}, fmt.Errorf("%w: el precio %s no es un número", domain.ErrInvalidInput, strconv.Quote(raw))
	}
	return entity.ServiceInput{
		Name:        strings.TrimSpace(v.Get("name")),
		Description: strings.TrimSpace(v.Get("description")),
		Price:       price,
		Duration:    strings.TrimSpace(v.Get("duration")),
	}, nil
}
