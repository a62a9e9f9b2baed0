// Package pdf genera la lista de precios de servicios imprimible desde el panel.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del local        │  Fecha de emisión         │
//	│  Dirección + teléfono                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Servicio | Descripción | Duración | Precio           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cantidad de servicios                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cutman-web/internal/application/ports"
	"github.com/jhoicas/cutman-web/internal/domain/entity"
	"github.com/jhoicas/cutman-web/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 24, Green: 24, Blue: 27}
	colorAccent  = &props.Color{Red: 202, Green: 138, Blue: 4}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.PriceListGenerator = (*MarotoPriceListGenerator)(nil)

// MarotoPriceListGenerator implementa ports.PriceListGenerator usando Maroto v2.
type MarotoPriceListGenerator struct{}

// NewMarotoPriceListGenerator construye el generador.
func NewMarotoPriceListGenerator() *MarotoPriceListGenerator { return &MarotoPriceListGenerator{} }

// GeneratePriceList genera el PDF y devuelve sus bytes.
func (g *MarotoPriceListGenerator) GeneratePriceList(_ context.Context, in ports.PriceList) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de precios", true).
		WithAuthor(in.Business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(in))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.6}))
	m.AddRows(tableHeaderRow())
	m.AddRows(serviceRows(in.Services)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(in.Services)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(in ports.PriceList) core.Row {
	return row.New(20).Add(
		col.New(8).Add(
			text.New(in.Business, props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", in.Address, in.Phone), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("LISTA DE PRECIOS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorAccent, Top: 1,
			}),
			text.New("Emitida: "+in.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Servicio", 3, align.Left),
		h("Descripción", 5, align.Left),
		h("Duración", 2, align.Center),
		h("Precio", 2, align.Right),
	)
}

func serviceRows(services []entity.Service) []core.Row {
	rows := make([]core.Row, 0, len(services))
	for _, s := range services {
		rows = append(rows, row.New(8).Add(
			col.New(3).Add(text.New(s.Name, props.Text{Size: 8, Style: fontstyle.Bold, Top: 1, Left: 1})),
			col.New(5).Add(text.New(s.Description, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(s.Duration, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money.Format(s.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func footerRow(count int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("%d servicios. Precios sujetos a cambios sin previo aviso.", count), props.Text{
			Size: 7, Top: 2, Color: colorGray, Align: align.Center,
		})),
	)
}
