package services

import (
	"log"
	"time"

	"ventas-backend/models"
)

// NoteDocument is the flattened view of a sales note handed to the renderer and
// the notifier once the transaction has committed.
type NoteDocument struct {
	Numero      string                 `json:"numero"`
	Fecha       time.Time              `json:"fecha"`
	Cliente     models.Client          `json:"cliente"`
	Items       []models.SalesNoteItem `json:"productos"`
	Subtotal    float64                `json:"subtotal"`
	Total       float64                `json:"total"`
	FormaPago   string                 `json:"forma_pago"`
	TipoPrecio  string                 `json:"tipo_precio"`
	Observacion string                 `json:"observacion"`
}

// QuotationDocument is the renderer view of a quotation.
type QuotationDocument struct {
	Numero  string                 `json:"numero"`
	Fecha   time.Time              `json:"fecha"`
	Cliente models.Client          `json:"cliente"`
	Items   []models.QuotationItem `json:"productos"`
	Total   float64                `json:"total"`
}

// CommissionDocument is the renderer view of a monthly commission statement.
type CommissionDocument struct {
	Anio           int     `json:"anio"`
	Mes            int     `json:"mes"`
	NotasGeneradas int     `json:"notas_generadas"`
	TarifaAplicada float64 `json:"tarifa_aplicada"`
	TotalComision  float64 `json:"total_comision"`
}

// DocumentRenderer turns a committed document snapshot into a byte buffer
// (PDF). It has no side effects on core state and is only invoked post-commit.
type DocumentRenderer interface {
	RenderSalesNote(doc NoteDocument) ([]byte, error)
	RenderQuotation(doc QuotationDocument) ([]byte, error)
	RenderCommission(doc CommissionDocument) ([]byte, error)
}

// Notifier delivers a rendered document. A failure never propagates into the
// caller's result; the sale has already committed.
type Notifier interface {
	Deliver(address, subject, body string, attachment []byte, filename string) error
}

// Collaborators configured at startup. Either may be nil (e.g. in tests), in
// which case the corresponding post-commit step is skipped.
var (
	Renderer DocumentRenderer
	Mailer   Notifier
)

// notifyNoteCreated renders the note and emails it to the client when an email
// address exists. Runs strictly after commit; failures are logged and dropped.
func notifyNoteCreated(doc NoteDocument) {
	if Renderer == nil {
		return
	}
	pdf, err := Renderer.RenderSalesNote(doc)
	if err != nil {
		log.Printf("render nota %s failed: %v", doc.Numero, err)
		return
	}
	if Mailer == nil || doc.Cliente.Email == "" {
		return
	}
	subject := "Nota de venta " + doc.Numero
	body := "Adjuntamos su nota de venta " + doc.Numero + "."
	if err := Mailer.Deliver(doc.Cliente.Email, subject, body, pdf, doc.Numero+".pdf"); err != nil {
		log.Printf("correo nota %s a %s failed: %v", doc.Numero, doc.Cliente.Email, err)
	}
}

// notifyCommission mails the monthly statement to the configured developer
// address. Post-commit, logged-only.
func notifyCommission(doc CommissionDocument, address string) {
	if Renderer == nil || Mailer == nil || address == "" {
		return
	}
	pdf, err := Renderer.RenderCommission(doc)
	if err != nil {
		log.Printf("render comisión %d-%02d failed: %v", doc.Anio, doc.Mes, err)
		return
	}
	subject := "Comisión mensual"
	body := "Adjuntamos el estado de comisión del período."
	if err := Mailer.Deliver(address, subject, body, pdf, "comision.pdf"); err != nil {
		log.Printf("correo comisión %d-%02d failed: %v", doc.Anio, doc.Mes, err)
	}
}
