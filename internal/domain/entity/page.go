package entity

// Page sobre de paginación del backend. Page >= TotalPages significa que no hay página siguiente.
type Page[T any] struct {
	Page         int `json:"page"`
	PerPage      int `json:"perPage"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
	Data         []T `json:"data"`
}

// HasNext hay página siguiente.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}
