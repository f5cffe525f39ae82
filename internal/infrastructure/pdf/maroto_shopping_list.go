// Package pdf genera la lista de compras imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lista de compras + hogar + fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SECCIÓN por supermercado                                   │
//	│    TABLA: Producto | Cant. sugerida | En casa | Motivo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de productos sugeridos                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	apppantry "github.com/jcastano/despensa-api/internal/application/pantry"
	"github.com/jcastano/despensa-api/internal/domain/pantry"
)

var _ apppantry.ShoppingListPDFGenerator = (*MarotoShoppingListGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoShoppingListGenerator implementa el generador de listas de compras
// usando Maroto v2.
type MarotoShoppingListGenerator struct{}

// NewMarotoShoppingListGenerator construye el generador.
func NewMarotoShoppingListGenerator() *MarotoShoppingListGenerator {
	return &MarotoShoppingListGenerator{}
}

// GenerateShoppingListPDF genera el PDF y devuelve sus bytes.
func (g *MarotoShoppingListGenerator) GenerateShoppingListPDF(
	_ context.Context,
	householdName string,
	groups []pantry.SuggestionGroup,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Lista de compras", true).
		WithAuthor(householdName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(householdName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := 0
	for _, group := range groups {
		total += len(group.Suggestions)
		m.AddRows(supermarketRow(group.Supermarket))
		m.AddRows(tableHeaderRow())
		for _, r := range suggestionRows(group.Suggestions) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y hogar + fecha (der).
func headerRow(householdName string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("LISTA DE COMPRAS", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New(householdName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// supermarketRow: cabecera de la sección de un supermercado.
func supermarketRow(name string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(name, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 3,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Producto", 5, align.Left),
		h("Cant. sugerida", 3, align.Right),
		h("En casa", 2, align.Right),
		h("Motivo", 2, align.Center),
	)
}

// suggestionRows: una fila por producto sugerido.
func suggestionRows(suggestions []pantry.Suggestion) []core.Row {
	result := make([]core.Row, 0, len(suggestions))
	for _, s := range suggestions {
		qty := s.SuggestedQuantity.StringFixed(0)
		if s.Unit != "" {
			qty += " " + s.Unit
		}
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(
				s.ItemName,
				props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				qty,
				props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				s.CurrentQuantity.StringFixed(0),
				props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				reasonLabel(s.Reason),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray},
			)),
		))
	}
	return result
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d producto(s) sugerido(s)", total), props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

func reasonLabel(reason string) string {
	switch reason {
	case pantry.SuggestionReasonEmpty:
		return "Agotado"
	case pantry.SuggestionReasonBelowMin:
		return "Bajo mínimo"
	}
	return reason
}
