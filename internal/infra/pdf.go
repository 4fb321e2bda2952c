package infra

// Comprobante de venta en PDF, generado con go-pdf/fpdf. Se emite al
// confirmarse el pago de un checkout web y al entregarse una puerta a
// medida; el archivo queda en disco y se adjunta al correo de resumen.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/4ndreams/GPS-sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerarComprobantePDF writes the receipt for a sale into dir (created if
// missing) and returns the path. The sale has a single line: Informacion
// already describes product and quantity.
func GenerarComprobantePDF(venta *model.Venta, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("comprobante_%d.pdf", venta.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Fábrica de Puertas"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Comprobante de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Venta N° %d", venta.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, venta.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	colDetalle := contentW * 0.55
	colCant := contentW * 0.15
	colMonto := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDetalle, 6, "Detalle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCant, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colMonto, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	detalle := venta.Informacion
	if r := []rune(detalle); len(r) > 40 {
		detalle = string(r[:39]) + "…"
	}
	pdf.CellFormat(colDetalle, 6, tr(detalle), "", 0, "L", false, 0, "")
	pdf.CellFormat(colCant, 6, fmt.Sprintf("x%d", venta.Cantidad), "", 0, "C", false, 0, "")
	pdf.CellFormat(colMonto, 6, "$"+venta.Total.StringFixed(0), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colDetalle+colCant, 7, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(colMonto, 7, "$"+venta.Total.StringFixed(0), "", 1, "R", false, 0, "")

	if venta.MetodoPago != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, tr("Método de pago: "+*venta.MetodoPago), "", 1, "L", false, 0, "")
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("pdf: escribir archivo: %w", err)
	}
	return path, nil
}
