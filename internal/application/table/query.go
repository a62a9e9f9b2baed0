// Package table contiene el estado y las reglas de la tabla paginada de recursos
// (usuarios, servicios): parámetros de consulta, paginador, versión por recurso y
// el cerco de secuencia que descarta respuestas viejas.
package table

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/cutman-web/internal/domain/repository"
)

// DefaultPerPage tamaño de página inicial.
const DefaultPerPage = 10

// PageSizes tamaños ofrecidos en el selector "Elementos por página".
var PageSizes = []int{5, 10, 20}

// Query estado de la tabla: página, tamaño de página y texto de búsqueda.
type Query struct {
	Page    int
	PerPage int
	Search  string
}

// NewQuery normaliza los valores: página mínima 1, tamaño fuera de PageSizes cae a DefaultPerPage.
func NewQuery(page, perPage int, search string) Query {
	if page < 1 {
		page = 1
	}
	if !validPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return Query{Page: page, PerPage: perPage, Search: search}
}

// ParseQuery lee page, perPage y search de los parámetros del request.
func ParseQuery(get func(key string) string) Query {
	page, _ := strconv.Atoi(strings.TrimSpace(get("page")))
	perPage, _ := strconv.Atoi(strings.TrimSpace(get("perPage")))
	return NewQuery(page, perPage, get("search"))
}

func validPerPage(n int) bool {
	for _, p := range PageSizes {
		if p == n {
			return true
		}
	}
	return false
}

// WithSearch cambiar la búsqueda vuelve a la página 1.
func (q Query) WithSearch(s string) Query {
	return NewQuery(1, q.PerPage, s)
}

// WithPerPage cambiar el tamaño de página vuelve a la página 1.
func (q Query) WithPerPage(n int) Query {
	return NewQuery(1, n, q.Search)
}

// Next página siguiente (el límite superior lo decide el Pager).
func (q Query) Next() Query {
	return NewQuery(q.Page+1, q.PerPage, q.Search)
}

// Prev página anterior, nunca menor a 1.
func (q Query) Prev() Query {
	return NewQuery(q.Page-1, q.PerPage, q.Search)
}

// ListQuery convierte al puerto del backend.
func (q Query) ListQuery() repository.ListQuery {
	return repository.ListQuery{Page: q.Page, PerPage: q.PerPage, Search: q.Search}
}

// Values codifica la consulta para armar URLs de paginación.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("perPage", strconv.Itoa(q.PerPage))
	v.Set("search", q.Search)
	return v
}
