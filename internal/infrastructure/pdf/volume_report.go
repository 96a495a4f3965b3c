// Package pdf genera el informe imprimible del análisis de volúmenes de
// compra: una tabla por producto con volumen, gasto y precios unitarios.
package pdf

import (
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
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/barstock/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// VolumeReportGenerator genera el PDF del análisis de volúmenes usando Maroto v2.
type VolumeReportGenerator struct{}

// NewVolumeReportGenerator construye el generador.
func NewVolumeReportGenerator() *VolumeReportGenerator { return &VolumeReportGenerator{} }

// Generate produce el PDF y devuelve sus bytes.
func (g *VolumeReportGenerator) Generate(startDate, endDate string, volumes []dto.ProductVolumeDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Análisis de Volúmenes de Compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(startDate, endDate))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(volumes) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(volumes))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y período + fecha de generación (der).
func headerRow(startDate, endDate string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("ANÁLISIS DE VOLÚMENES DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Volumen, gasto y precios unitarios por producto", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Período: %s a %s", startDate, endDate), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Compras", 1, align.Center),
		h("Volumen", 2, align.Right),
		h("Precio Prom.", 2, align.Right),
		h("Gasto Total", 2, align.Right),
		h("Ahorro Pot.", 2, align.Right),
	)
}

// tableRows: una fila por producto.
func tableRows(volumes []dto.ProductVolumeDTO) []core.Row {
	result := make([]core.Row, 0, len(volumes))
	for _, v := range volumes {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				v.Product,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", v.NumPurchases),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				v.TotalVolume.StringFixed(2)+" "+v.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				v.AvgUnitPrice.StringFixed(4)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				v.TotalSpend.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				v.PotentialSavings.StringFixed(2)+" €",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: gasto y ahorro potencial acumulados.
func totalsRow(volumes []dto.ProductVolumeDTO) core.Row {
	var totalSpend, totalSavings decimal.Decimal
	for _, v := range volumes {
		totalSpend = totalSpend.Add(v.TotalSpend)
		totalSavings = totalSavings.Add(v.PotentialSavings)
	}

	return row.New(10).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("%d productos analizados", len(volumes)),
			props.Text{Size: 9, Color: colorGray, Top: 2, Left: 1},
		)),
		col.New(3).Add(text.New(
			"Gasto total: "+totalSpend.StringFixed(2)+" €",
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1},
		)),
		col.New(3).Add(text.New(
			"Ahorro potencial: "+totalSavings.StringFixed(2)+" €",
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1},
		)),
	)
}
