// Package crud describe una tabla de administración genérica: columnas, campos del
// formulario y el almacén que la respalda. El mismo componente sirve a usuarios y servicios.
package crud

import (
	"context"
	"strconv"

	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
)

// Values valores de un formulario por nombre de campo.
type Values map[string]string

// Get valor del campo o "" si no está.
func (v Values) Get(name string) string {
	if v == nil {
		return ""
	}
	return v[name]
}

// Option opción de un select.
type Option struct {
	Value string
	Label string
}

// Tipos de campo (atributo type del input o elemento a usar).
const (
	FieldText     = "text"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldNumber   = "number"
	FieldTextarea = "textarea"
	FieldSelect   = "select"
)

// Field campo del formulario de alta/edición. La validación es la nativa de HTML5.
type Field struct {
	Name        string
	Label       string
	EditLabel   string // etiqueta distinta en edición (vacío = Label)
	Type        string
	Placeholder string
	Required    bool
	// OptionalOnEdit el campo es obligatorio al crear y opcional al editar (contraseña).
	OptionalOnEdit bool
	Rows           int    // textarea
	Step           string // number
	Min            string // number
}

// Column columna de la tabla.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Store operaciones contra el backend para un recurso. token es el de la sesión del request.
type Store[T any] interface {
	List(ctx context.Context, token string, q table.Query) (*entity.Page[T], error)
	Get(ctx context.Context, token string, id int) (T, error)
	Create(ctx context.Context, token string, v Values) error
	Update(ctx context.Context, token string, id int, v Values) error
	Delete(ctx context.Context, token string, id int) error
}

// Resource definición completa de una tabla de administración.
type Resource[T any] struct {
	Name              string // segmento de URL y prefijo del evento de cambio ("users")
	Item              string // nombre del elemento en el modal de borrado ("usuario")
	Title             string
	Description       string
	AddLabel          string
	SearchPlaceholder string
	LoadingText       string
	CreateTitle       string
	EditTitle         string

	Columns []Column[T]
	Fields  []Field
	Store   Store[T]

	ID     func(T) int
	Values func(T) Values // precarga del formulario de edición
	// Warn marca el borrado de este elemento como delicado (modal con advertencia).
	Warn     func(T) bool
	WarnText string
	// Options opciones de los selects, por nombre de campo. Puede ser nil.
	Options func(ctx context.Context, token string) (map[string][]Option, error)
}

// ChangedEvent nombre del evento que dispara el refresco de la tabla.
func (r Resource[T]) ChangedEvent() string {
	return r.Name + "-changed"
}

// Row fila ya formateada para la vista.
type Row struct {
	ID    int
	Cells []string
}

// Rows formatea los elementos con las columnas del recurso.
func (r Resource[T]) Rows(items []T) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		cells := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			cells[i] = c.Value(it)
		}
		rows = append(rows, Row{ID: r.ID(it), Cells: cells})
	}
	return rows
}

// Headers títulos de columna.
func (r Resource[T]) Headers() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Header
	}
	return out
}

// Warns indica si borrar item requiere advertencia.
func (r Resource[T]) Warns(item T) bool {
	return r.Warn != nil && r.Warn(item)
}

// FormValues lee del request (get) los valores de todos los campos del recurso.
func (r Resource[T]) FormValues(get func(key string) string) Values {
	v := make(Values, len(r.Fields))
	for _, f := range r.Fields {
		v[f.Name] = get(f.Name)
	}
	return v
}

// ParseID convierte el parámetro de ruta; ok false si no es un entero positivo.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
