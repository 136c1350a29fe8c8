// Package pdf genera la hoja de stock imprimible de una farmacia con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia + Registro comercial │ Fecha de emisión   │
//	│  Ciudad / Dirección / Teléfono                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Forma | Cant. | Precio | Estado | Valor│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Valor del stock                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacias-api/internal/application/inventory"
	"github.com/jhoicas/Farmacias-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOut     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ inventory.StockReportGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, report *inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de stock - "+report.Pharmacy.Name, true).
		WithAuthor(report.Pharmacy.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin medicamentos en inventario.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	m.AddRows(itemRows(report.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRows(report *inventory.StockReport) []core.Row {
	p := report.Pharmacy
	return []core.Row{
		row.New(16).Add(
			col.New(8).Add(
				text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
				text.New("Registro comercial: "+p.CRNumber, props.Text{Size: 9, Top: 9, Color: colorGray}),
			),
			col.New(4).Add(
				text.New("HOJA DE STOCK", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1}),
				text.New("Fecha: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
			),
		),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s   |   %s   |   Tel: %s", p.City, nonEmpty(p.Address, "-"), nonEmpty(p.Phone, "-")),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medicamento", 4, align.Left),
		h("Forma", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Precio", 2, align.Right),
		h("Estado", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

func itemRows(items []*entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		statusColor := colorGray
		if it.Status == entity.StockStatusOut {
			statusColor = colorOut
		}
		value := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.Medicine.Name+" "+it.Medicine.Strength, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Medicine.Form, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(formatAmount(decimal.NewFromInt(it.Quantity), 0), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatAmount(it.Price, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.Status, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor})),
			col.New(2).Add(text.New(formatAmount(value, 2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(report *inventory.StockReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Color: colorPrimary})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades:"),
			text.New("Valor del stock:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
		),
		col.New(3).Add(
			value(formatAmount(decimal.NewFromInt(report.TotalUnits), 0)),
			text.New(formatAmount(report.TotalValue, 2), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 6, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount redondea a places decimales e inserta comas de miles.
// Ej: 1234567.5 -> "1,234,567.50"
func formatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteString("." + frac)
	}
	return sign + b.String()
}
