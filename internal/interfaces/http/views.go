package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

// Páginas completas; cada una se parsea junto con el layout y los parciales.
var pageNames = []string{"home", "login", "admin"}

var templateFuncs = template.FuncMap{
	"year":       func() int { return time.Now().Year() },
	"add":        func(a, b int) int { return a + b },
	"rainbowCSS": RainbowBorderCSS,
}

// Views plantillas html/template embebidas en el binario.
type Views struct {
	pages    map[string]*template.Template
	partials *template.Template
}

// NewViews parsea todas las plantillas. Un error aquí es un bug de las plantillas.
func NewViews() (*Views, error) {
	partials, err := template.New("partials").Funcs(templateFuncs).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parciales: %w", err)
	}
	v := &Views{pages: make(map[string]*template.Template, len(pageNames)), partials: partials}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials/*.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("página %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// MustViews como NewViews pero entra en pánico ante un error.
func MustViews() *Views {
	v, err := NewViews()
	if err != nil {
		panic(err)
	}
	return v
}

// Page renderiza una página completa con el layout.
func (v *Views) Page(c *fiber.Ctx, name string, data any) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("página desconocida: %s", name)
	}
	return render(c, t, "layout", data)
}

// Partial renderiza un fragmento (tabla, formulario, modal) para htmx.
func (v *Views) Partial(c *fiber.Ctx, name string, data any) error {
	return render(c, v.partials, name, data)
}

func render(c *fiber.Ctx, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("renderizar %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
