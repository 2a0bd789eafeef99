package infra

// pdf.go: order sheet rendering with go-pdf/fpdf.
// A4 portrait page with:
//   - Business header and order number
//   - Order data (tipo, estado, fecha, interlocutor)
//   - Product lines (codigo, nombre, cantidad, precio unitario, subtotal)
//   - Bold valor_orden total

import (
	"fmt"
	"io"

	"github.com/glYohanny/Gucci/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// OrdenPDFData is what the order sheet shows besides the order itself.
type OrdenPDFData struct {
	Orden        *model.Orden
	Interlocutor string
	Empresa      string
}

// GenerateOrdenPDF writes the order sheet to w.
func GenerateOrdenPDF(w io.Writer, data OrdenPDFData) error {
	o := data.Orden
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Gucci", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Orden de %s N° %d", o.TipoOrden, o.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Order data ───────────────────────────────────────────────────────────
	rol := "Cliente"
	if o.TipoOrden == model.TipoEntrada {
		rol = "Proveedor"
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range [][2]string{
		{"Fecha", o.FechaOrden.Format("2006-01-02")},
		{"Estado", o.EstadoOrden},
		{rol, data.Interlocutor},
		{"Empresa", data.Empresa},
	} {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-35, 6, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Lines ────────────────────────────────────────────────────────────────
	cols := []float64{contentW * 0.18, contentW * 0.38, contentW * 0.12, contentW * 0.16, contentW * 0.16}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range []string{"Código", "Producto", "Cant", "P. Unit", "Subtotal"} {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(cols[i], 7, tr(h), "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	if len(o.Productos) == 0 {
		pdf.CellFormat(contentW, 7, "Sin productos asociados", "", 1, "C", false, 0, "")
	}
	for _, l := range o.Productos {
		codigo, nombre := "", fmt.Sprintf("Producto %d", l.ProductoID)
		if l.Producto != nil {
			codigo, nombre = l.Producto.Codigo, l.Producto.Nombre
		}
		if r := []rune(nombre); len(r) > 40 {
			nombre = string(r[:39]) + "…"
		}
		subtotal := l.PrecioUnitario.Mul(decimal.NewFromInt(int64(l.Cantidad)))
		pdf.CellFormat(cols[0], 6, tr(codigo), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[1], 6, tr(nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(cols[2], 6, fmt.Sprintf("%d", l.Cantidad), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[3], 6, "$"+l.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(cols[4], 6, "$"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW-cols[4], 7, "VALOR ORDEN:", "", 0, "R", false, 0, "")
	pdf.CellFormat(cols[4], 7, "$"+o.ValorOrden.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}
