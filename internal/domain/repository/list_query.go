package repository

// ListQuery parámetros de un listado paginado del backend.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
}
