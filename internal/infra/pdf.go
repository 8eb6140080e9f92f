package infra

// pdf.go — document generation with go-pdf/fpdf.
//   - Traspaso summary: A4 table with producto / origen / destino / cantidad
//     per line plus the evidence reference, produced after the batch commits.
//   - Ticket receipt: A7 thermal-style layout mailed to customers on request.
// Files land under storagePath and are referenced by name from the DB.

import (
	"fmt"
	"os"
	"path/filepath"

	"tiendapos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateTraspasoPDF writes the transfer summary and returns the file path.
func GenerateTraspasoPDF(t *model.Traspaso, negocio string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("traspaso_%s.pdf", t.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Traspaso de mercancia entre ubicaciones", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Folio: "+t.ID.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Fecha: "+t.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Evidencia: "+t.EvidenciaRef, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	col1 := contentW * 0.40 // producto
	col2 := contentW * 0.22 // origen
	col3 := contentW * 0.22 // destino
	col4 := contentW * 0.16 // cantidad

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Origen", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Destino", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "Cantidad", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	total := 0
	for _, l := range t.Lineas {
		nombre := l.Nombre
		if len(nombre) > 38 {
			nombre = nombre[:37] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, l.Origen, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, l.Destino, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, fmt.Sprintf("%d", l.Cantidad), "", 1, "R", false, 0, "")
		total += l.Cantidad
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "Total de piezas movidas:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, fmt.Sprintf("%d", total), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateTicketPDF writes an A7 receipt for a completed sale and returns the
// file path. A7 ≈ 74mm × 105mm, close to thermal receipt paper.
func GenerateTicketPDF(t *model.Ticket, negocio string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", t.TicketID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comprobante de compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Ticket "+t.TicketID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, t.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range t.Items {
		nombre := item.Nombre
		if len(nombre) > 22 {
			nombre = nombre[:21] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+t.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Pago ("+t.MetodoPago+"):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "$"+t.MontoPagado.StringFixed(2), "", 1, "R", false, 0, "")
	if t.MetodoPago == "efectivo" {
		pdf.CellFormat(col1+col2, 4, "Cambio:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+t.Cambio.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
