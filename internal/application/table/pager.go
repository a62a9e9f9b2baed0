package table

import "fmt"

// Pager vista del pie de tabla.
type Pager struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Prev       Query
	Next       Query
}

// NewPager arma el paginador para la página devuelta por el backend.
// "Siguiente" se deshabilita cuando page >= totalPages y "Anterior" cuando page <= 1.
func NewPager(q Query, totalPages int) Pager {
	if totalPages < 0 {
		totalPages = 0
	}
	return Pager{
		Page:       q.Page,
		TotalPages: totalPages,
		HasPrev:    q.Page > 1,
		HasNext:    q.Page < totalPages,
		Prev:       q.Prev(),
		Next:       q.Next(),
	}
}

// Label texto "Página X de Y".
func (p Pager) Label() string {
	return fmt.Sprintf("Página %d de %d", p.Page, p.TotalPages)
}

// TotalPages cantidad de páginas para n resultados con perPage por página.
func TotalPages(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}
