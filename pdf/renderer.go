// Package pdf renders committed documents into PDF buffers. It is a pure
// collaborator of the core: no database access, no side effects on core state,
// and it only ever sees post-commit snapshots.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"ventas-backend/services"

	"github.com/go-pdf/fpdf"
)

type Renderer struct {
	BusinessName string
}

// New reads the letterhead name from BUSINESS_NAME.
func New() *Renderer {
	name := os.Getenv("BUSINESS_NAME")
	if name == "" {
		name = "Casa Musical"
	}
	return &Renderer{BusinessName: name}
}

var _ services.DocumentRenderer = (*Renderer)(nil)

func (r *Renderer) newDoc(title string) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, r.BusinessName, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	doc.Ln(4)
	return doc
}

func clientBlock(doc *fpdf.Fpdf, nombre, identificacion, telefono, direccion string) {
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Cliente: "+nombre, "", 1, "L", false, 0, "")
	if identificacion != "" {
		doc.CellFormat(0, 6, "Identificación: "+identificacion, "", 1, "L", false, 0, "")
	}
	if telefono != "" {
		doc.CellFormat(0, 6, "Teléfono: "+telefono, "", 1, "L", false, 0, "")
	}
	if direccion != "" {
		doc.CellFormat(0, 6, "Dirección: "+direccion, "", 1, "L", false, 0, "")
	}
	doc.Ln(2)
}

func lineTable(doc *fpdf.Fpdf, rows [][4]string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 7, "Descripción", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 7, "Cantidad", "1", 0, "C", false, 0, "")
	doc.CellFormat(35, 7, "P. Unitario", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, "Subtotal", "1", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.CellFormat(90, 7, row[0], "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, row[1], "1", 0, "C", false, 0, "")
		doc.CellFormat(35, 7, row[2], "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, row[3], "1", 1, "R", false, 0, "")
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func (r *Renderer) RenderSalesNote(d services.NoteDocument) ([]byte, error) {
	doc := r.newDoc("NOTA DE VENTA " + d.Numero)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Fecha: "+d.Fecha.Format("2006-01-02"), "", 1, "L", false, 0, "")
	ident := ""
	if d.Cliente.Identificacion != nil {
		ident = *d.Cliente.Identificacion
	}
	clientBlock(doc, d.Cliente.Nombre, ident, d.Cliente.Telefono, d.Cliente.Direccion)

	rows := make([][4]string, 0, len(d.Items))
	for _, it := range d.Items {
		rows = append(rows, [4]string{
			it.Product.Nombre,
			fmt.Sprintf("%d", it.Cantidad),
			money(it.PrecioUnitario),
			money(it.Subtotal),
		})
	}
	lineTable(doc, rows)

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, "Total: "+money(d.Total), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 6, "Forma de pago: "+d.FormaPago+"  /  Precio: "+d.TipoPrecio, "", 1, "L", false, 0, "")
	if d.Observacion != "" {
		doc.CellFormat(0, 6, "Observación: "+d.Observacion, "", 1, "L", false, 0, "")
	}
	return output(doc)
}

func (r *Renderer) RenderQuotation(d services.QuotationDocument) ([]byte, error) {
	doc := r.newDoc("COTIZACIÓN " + d.Numero)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, "Fecha: "+d.Fecha.Format("2006-01-02"), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Validez: 15 días", "", 1, "L", false, 0, "")
	ident := ""
	if d.Cliente.Identificacion != nil {
		ident = *d.Cliente.Identificacion
	}
	clientBlock(doc, d.Cliente.Nombre, ident, d.Cliente.Telefono, d.Cliente.Direccion)

	rows := make([][4]string, 0, len(d.Items))
	for _, it := range d.Items {
		rows = append(rows, [4]string{
			it.Product.Nombre,
			fmt.Sprintf("%d", it.Cantidad),
			money(it.PrecioUnitario),
			money(it.Subtotal),
		})
	}
	lineTable(doc, rows)

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, "Total: "+money(d.Total), "", 1, "R", false, 0, "")
	return output(doc)
}

func (r *Renderer) RenderCommission(d services.CommissionDocument) ([]byte, error) {
	doc := r.newDoc(fmt.Sprintf("COMISIÓN MENSUAL %d-%02d", d.Anio, d.Mes))
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 8, fmt.Sprintf("Notas generadas: %d", d.NotasGeneradas), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 8, fmt.Sprintf("Tarifa aplicada: %.2f", d.TarifaAplicada), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 9, "Total comisión: "+money(d.TotalComision), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 7, "Generado el "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	return output(doc)
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
