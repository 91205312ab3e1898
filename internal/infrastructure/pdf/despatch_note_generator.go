// Package pdf implementa la generación de la Remisión de Traslado: el
// documento que acompaña la mercancía entre la bodega central y la sucursal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Remisión de Traslado  │  N° traslado + Estado      │
//	│  ───────────────────────────────────────────────────────── │
//	│  ORIGEN: bodega central   →   DESTINO: sucursal             │
//	│  Fechas solicitud / despacho / recepción + transportador    │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABLA: Insumo | Unidad | Solicitado | Despachado | Recibido│
//	│  ───────────────────────────────────────────────────────── │
//	│  DISCREPANCIAS: faltantes y sobrantes por línea             │
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

	apptransfer "github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apptransfer.DespatchNoteGenerator = (*MarotoDespatchNoteGenerator)(nil)

// MarotoDespatchNoteGenerator implementa transfer.DespatchNoteGenerator usando Maroto v2.
type MarotoDespatchNoteGenerator struct{}

// NewMarotoDespatchNoteGenerator construye el generador.
func NewMarotoDespatchNoteGenerator() *MarotoDespatchNoteGenerator {
	return &MarotoDespatchNoteGenerator{}
}

// GenerateDespatchNote genera el PDF y devuelve sus bytes.
func (g *MarotoDespatchNoteGenerator) GenerateDespatchNote(
	_ context.Context,
	t *entity.StockTransfer,
	source, target *entity.Outlet,
	discrepancies []transfer.LineDiscrepancy,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión de Traslado", true).
		WithAuthor(source.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(outletsRow(source, target))
	m.AddRows(datesRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(t.Items) {
		m.AddRows(r)
	}

	if len(discrepancies) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range discrepancyRows(discrepancies) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de traslado + estado (der).
func headerRow(t *entity.StockTransfer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Traslado de stock entre puntos de venta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+t.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Estado: "+t.Status, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// outletsRow: origen (central) y destino (sucursal).
func outletsRow(source, target *entity.Outlet) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(source.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(source.Address, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(target.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(target.Address, "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// datesRow: fechas del ciclo y datos de transporte.
func datesRow(t *entity.StockTransfer) core.Row {
	parts := "Solicitado: " + t.RequestDate.Format("02/01/2006")
	if t.ShipDate != nil {
		parts += "   |   Despachado: " + t.ShipDate.Format("02/01/2006")
	}
	if t.ReceiveDate != nil {
		parts += "   |   Recibido: " + t.ReceiveDate.Format("02/01/2006")
	}
	transport := fmt.Sprintf("Transportador: %s   |   Guía: %s",
		nonEmpty(t.Carrier, "—"), nonEmpty(t.TrackingRef, "—"))
	return row.New(12).Add(
		col.New(12).Add(
			text.New(parts, props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(transport, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Insumo", 5, align.Left),
		h("Unidad", 1, align.Center),
		h("Solicitado", 2, align.Right),
		h("Despachado", 2, align.Right),
		h("Recibido", 2, align.Right),
	)
}

// tableItemRows: una fila por línea del traslado.
func tableItemRows(items []entity.StockTransferItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, item := range items {
		shipped := "—"
		if item.QuantityShipped != nil {
			shipped = item.QuantityShipped.StringFixed(2)
		}
		received := "—"
		if item.QuantityReceived != nil {
			received = item.QuantityReceived.StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(item.IngredientName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(item.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(item.QuantityRequested.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(shipped, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(received, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// discrepancyRows: bloque de conciliación (solo traslados recibidos).
func discrepancyRows(discrepancies []transfer.LineDiscrepancy) []core.Row {
	result := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("CONCILIACIÓN DESPACHO vs RECEPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, d := range discrepancies {
		label := "exacto"
		color := colorGray
		switch {
		case d.Difference.IsPositive():
			label = "faltante " + d.Difference.StringFixed(2) + " " + d.Unit
			color = colorAlert
		case d.Difference.IsNegative():
			label = "sobrante " + d.Difference.Neg().StringFixed(2) + " " + d.Unit
			color = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(d.IngredientName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(6).Add(text.New(label, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
		))
	}
	return result
}

// nonEmpty devuelve s, o def si está vacío.
func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
