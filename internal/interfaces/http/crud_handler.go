package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cutman-web/internal/application/crud"
	"github.com/jhoicas/cutman-web/internal/application/table"
	"github.com/jhoicas/cutman-web/internal/domain"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

// link enlace o acción extra en el encabezado de una tabla (p. ej. PDF de precios).
type link struct {
	Href  string
	Label string
}

// shellView contenedor de la tabla: encabezado, buscador, selector de tamaño y tabla inicial.
type shellView struct {
	Name              string
	Title             string
	Description       string
	AddLabel          string
	SearchPlaceholder string
	LoadingText       string
	Event             string
	PageSizes         []int
	Links             []link
	Table             tableView
}

// tableView fragmento de la tabla: filas, estado de consulta y paginador.
type tableView struct {
	Name    string
	Headers []string
	Rows    []crud.Row
	Query   table.Query
	Pager   table.Pager
	Version uint64
	Error   string
}

// formView modal de alta/edición.
type formView struct {
	Name    string
	Title   string
	Action  string
	Editing bool
	Fields  []crud.FieldView
	Error   string
}

// ResourceHandler tabla de administración genérica (listar, buscar, paginar, alta,
// edición y borrado con confirmación) para cualquier crud.Resource.
type ResourceHandler[T any] struct {
	res      crud.Resource[T]
	views    *Views
	versions *table.Versions
	fence    *table.Fence
	log      *logger.Logger
	links    []link
}

// NewResourceHandler construye el handler de un recurso.
func NewResourceHandler[T any](res crud.Resource[T], views *Views, versions *table.Versions, fence *table.Fence, log *logger.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		res:      res,
		views:    views,
		versions: versions,
		fence:    fence,
		log:      log.Named(res.Name),
	}
}

// WithLink agrega un enlace al encabezado de la tabla.
func (h *ResourceHandler[T]) WithLink(href, label string) *ResourceHandler[T] {
	h.links = append(h.links, link{Href: href, Label: label})
	return h
}

// Register monta las rutas del recurso bajo r (/admin).
func (h *ResourceHandler[T]) Register(r fiber.Router) {
	g := r.Group("/" + h.res.Name)
	g.Get("/", h.Page)
	g.Get("/table", h.Table)
	g.Get("/new", h.New)
	g.Post("/", h.Create)
	g.Get("/:id/edit", h.Edit)
	g.Post("/:id", h.Update)
	g.Get("/:id/delete", h.ConfirmDelete)
	g.Post("/:id/delete", h.Delete)
}

func (h *ResourceHandler[T]) base() string {
	return "/admin/" + h.res.Name
}

// Shell arma el contenedor con la primera página ya cargada.
func (h *ResourceHandler[T]) Shell(c *fiber.Ctx) shellView {
	q := table.ParseQuery(func(k string) string { return c.Query(k) })
	return shellView{
		Name:              h.res.Name,
		Title:             h.res.Title,
		Description:       h.res.Description,
		AddLabel:          h.res.AddLabel,
		SearchPlaceholder: h.res.SearchPlaceholder,
		LoadingText:       h.res.LoadingText,
		Event:             h.res.ChangedEvent(),
		PageSizes:         table.PageSizes,
		Links:             h.links,
		Table:             h.load(c, q),
	}
}

// Page GET /admin/{recurso}: panel completo con la tabla.
func (h *ResourceHandler[T]) Page(c *fiber.Ctx) error {
	shell := h.Shell(c)
	return h.views.Page(c, "admin", adminPage{
		Title:    h.res.Title,
		Section:  h.res.Name,
		Nav:      adminNav(h.res.Name),
		Session:  GetSession(c),
		Resource: &shell,
	})
}

// Table GET /admin/{recurso}/table: fragmento de tabla. Si mientras se buscaba la página
// llegó una petición más nueva del mismo cliente, responde 204 sin swap.
func (h *ResourceHandler[T]) Table(c *fiber.Ctx) error {
	q := table.ParseQuery(func(k string) string { return c.Query(k) })
	seq, _ := strconv.ParseUint(c.Query("seq"), 10, 64)
	ticket := h.fence.Begin(c.Query("tab")+":"+h.res.Name, seq)

	view := h.load(c, q)

	if !ticket.Current() {
		h.log.Debug().Uint64("seq", seq).Msg("respuesta de tabla descartada: hay una más nueva")
		c.Set(HeaderReswap, "none")
		return c.SendStatus(fiber.StatusNoContent)
	}
	return h.views.Partial(c, "resource_table", view)
}

func (h *ResourceHandler[T]) load(c *fiber.Ctx, q table.Query) tableView {
	view := tableView{
		Name:    h.res.Name,
		Headers: h.res.Headers(),
		Query:   q,
		Pager:   table.NewPager(q, 0),
		Version: h.versions.Current(h.res.Name),
	}
	page, err := h.res.Store.List(c.UserContext(), GetSession(c).AuthToken, q)
	if err != nil {
		h.logFailure(err, "listar")
		view.Error = domain.Message(err)
		return view
	}
	view.Rows = h.res.Rows(page.Data)
	view.Pager = table.NewPager(q, page.TotalPages)
	return view
}

// New GET /admin/{recurso}/new: formulario de alta.
func (h *ResourceHandler[T]) New(c *fiber.Ctx) error {
	return h.renderForm(c, 0, nil, false, nil)
}

// Create POST /admin/{recurso}.
func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	values := h.res.FormValues(formValue(c))
	if err := h.res.Store.Create(c.UserContext(), GetSession(c).AuthToken, values); err != nil {
		h.logFailure(err, "crear")
		return h.renderForm(c, 0, values, false, err)
	}
	return h.changed(c)
}

// Edit GET /admin/{recurso}/:id/edit: formulario precargado.
func (h *ResourceHandler[T]) Edit(c *fiber.Ctx) error {
	id, ok := crud.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	item, err := h.res.Store.Get(c.UserContext(), GetSession(c).AuthToken, id)
	if err != nil {
		h.logFailure(err, "obtener")
		return h.renderForm(c, id, nil, true, err)
	}
	return h.renderForm(c, id, h.res.Values(item), true, nil)
}

// Update POST /admin/{recurso}/:id: reemplazo completo.
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	id, ok := crud.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	values := h.res.FormValues(formValue(c))
	if err := h.res.Store.Update(c.UserContext(), GetSession(c).AuthToken, id, values); err != nil {
		h.logFailure(err, "actualizar")
		return h.renderForm(c, id, values, true, err)
	}
	return h.changed(c)
}

// ConfirmDelete GET /admin/{recurso}/:id/delete: modal de confirmación. Se trae el
// elemento para decidir si corresponde la advertencia.
func (h *ResourceHandler[T]) ConfirmDelete(c *fiber.Ctx) error {
	id, ok := crud.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	view := deleteView{Name: h.res.Name, Item: h.res.Item, ID: id}
	item, err := h.res.Store.Get(c.UserContext(), GetSession(c).AuthToken, id)
	if err != nil {
		h.logFailure(err, "obtener")
		view.Error = domain.Message(err)
	} else if h.res.Warns(item) {
		view.Warning = true
		view.WarningText = h.res.WarnText
	}
	return h.views.Partial(c, "delete_modal", view)
}

// Delete POST /admin/{recurso}/:id/delete. Si falla, el cliente muestra un alert y
// el modal queda como estaba.
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, ok := crud.ParseID(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	if err := h.res.Store.Delete(c.UserContext(), GetSession(c).AuthToken, id); err != nil {
		h.logFailure(err, "eliminar")
		if err := setTrigger(c, map[string]any{
			CrudAlertEvent: map[string]string{"message": "Error al eliminar: " + domain.Message(err)},
		}); err != nil {
			return err
		}
		c.Set(HeaderReswap, "none")
		return c.SendStatus(fiber.StatusOK)
	}
	return h.changed(c)
}

// changed incrementa la versión del recurso, avisa a la tabla y cierra el modal.
func (h *ResourceHandler[T]) changed(c *fiber.Ctx) error {
	v := h.versions.Bump(h.res.Name)
	if err := setTrigger(c, map[string]any{
		h.res.ChangedEvent(): map[string]uint64{"version": v},
	}); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString("")
}

func (h *ResourceHandler[T]) renderForm(c *fiber.Ctx, id int, values crud.Values, editing bool, failure error) error {
	view := formView{Name: h.res.Name, Title: h.res.CreateTitle, Action: h.base(), Editing: editing}
	if editing {
		view.Title = h.res.EditTitle
		view.Action = h.base() + "/" + strconv.Itoa(id)
	}
	if failure != nil {
		view.Error = domain.Message(failure)
	}

	var options map[string][]crud.Option
	if h.res.Options != nil {
		opts, err := h.res.Options(c.UserContext(), GetSession(c).AuthToken)
		if err != nil {
			h.logFailure(err, "cargar opciones")
			if view.Error == "" {
				view.Error = domain.Message(err)
			}
		}
		options = opts
	}
	view.Fields = crud.BuildFields(h.res.Fields, values, options, editing)
	return h.views.Partial(c, "resource_form", view)
}

func (h *ResourceHandler[T]) logFailure(err error, op string) {
	ev := h.log.Warn()
	if errors.Is(err, domain.ErrNetwork) || errors.Is(err, domain.ErrUnexpectedShape) {
		ev = h.log.Error()
	}
	ev.Err(err).Str("op", op).Msg("operación contra el backend fallida")
}

func formValue(c *fiber.Ctx) func(string) string {
	return func(k string) string { return c.FormValue(k) }
}
