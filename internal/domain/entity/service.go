package entity

import "github.com/shopspring/decimal"

// Service servicio ofrecido por la barbería. Duration es texto libre ("30 min").
type Service struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Duration    string          `json:"duration"`
}

// ServiceInput cuerpo de alta/edición de un servicio (reemplazo completo).
type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Duration    string
}
