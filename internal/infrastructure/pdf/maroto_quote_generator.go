// Package pdf implementa la representación gráfica de una cotización de
// trabajo en piedra, lista para enviar al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  N° Cotización + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: material / descripción del trabajo / plazo         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL COTIZADO                                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTA: validez de la cotización                              │
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

	"github.com/jhoicas/marmolia-api/internal/application/ports"
	"github.com/jhoicas/marmolia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 54, Green: 48, Blue: 43} // tono piedra oscura
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Plazos en texto legible para el PDF.
var timelineLabels = map[string]string{
	entity.TimelineASAP:         "Lo antes posible",
	entity.TimelineWithin2Weeks: "Dentro de 2 semanas",
	entity.TimelineWithinMonth:  "Dentro de un mes",
	entity.TimelineNoHurry:      "Sin apuro",
}

// MarotoQuoteGenerator implementa ports.QuotePDFGenerator usando Maroto v2.
type MarotoQuoteGenerator struct{}

var _ ports.QuotePDFGenerator = (*MarotoQuoteGenerator)(nil)

// NewMarotoQuoteGenerator construye el generador.
func NewMarotoQuoteGenerator() *MarotoQuoteGenerator { return &MarotoQuoteGenerator{} }

// GenerateQuotePDF genera el PDF de la cotización y devuelve sus bytes.
// stone puede ser nil (pedido de descripción libre). El caller garantiza que
// order.FinalQuotePrice no es nil.
func (g *MarotoQuoteGenerator) GenerateQuotePDF(
	_ context.Context,
	tenant *entity.Tenant,
	order *entity.Order,
	customer *entity.Customer,
	stone *entity.Stone,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+order.ID, true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tenant, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range detailRows(order, stone) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))
	m.AddRows(line.NewRow(3))
	m.AddRows(noteRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y número de cotización + fecha (der).
func headerRow(tenant *entity.Tenant, order *entity.Order) core.Row {
	fecha := order.UpdatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(tenant.Domain, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Username, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				customer.Email,
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// detailRows: material, descripción del trabajo y plazo solicitado.
func detailRows(order *entity.Order, stone *entity.Stone) []core.Row {
	label := func(k, v string) core.Row {
		return row.New(7).Add(
			col.New(3).Add(text.New(k, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			})),
			col.New(9).Add(text.New(v, props.Text{
				Size: 9, Top: 1, Color: colorGray,
			})),
		)
	}

	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("DETALLE DEL TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	if stone != nil {
		material := stone.Names.Resolve("es")
		if stone.Brand != "" {
			material = fmt.Sprintf("%s — %s", stone.Brand, material)
		}
		rows = append(rows, label("Material:", material))
	}
	if order.Description != "" {
		rows = append(rows, label("Descripción:", order.Description))
	}
	rows = append(rows, label("Plazo:", timelineLabel(order.Timeline)))
	if !order.Budget.IsZero() {
		rows = append(rows, label("Presupuesto del cliente:", "$"+order.Budget.StringFixed(2)))
	}
	return rows
}

// totalRow: precio final cotizado, destacado a la derecha.
func totalRow(order *entity.Order) core.Row {
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL COTIZADO:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("$"+order.FinalQuotePrice.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 1,
		})),
	)
}

// noteRow: leyenda de validez.
func noteRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Cotización válida por 30 días. El precio puede ajustarse tras la "+
				"visita de medición en sitio.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del UUID como número visible de cotización.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}

func timelineLabel(tl string) string {
	if v, ok := timelineLabels[tl]; ok {
		return v
	}
	return tl
}
