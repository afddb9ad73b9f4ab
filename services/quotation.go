package services

import (
	"encoding/json"
	"errors"
	"time"

	"ventas-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotationValidity is how long a quotation stays convertible.
const QuotationValidity = 15 * 24 * time.Hour

// ItemInput is one requested document line. PrecioUnitario is ignored for
// quotations (the list price is snapshotted) and required for sales notes.
type ItemInput struct {
	ProductoID     uint    `json:"producto_id" validate:"required"`
	Cantidad       int     `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario float64 `json:"precio_unitario" validate:"omitempty,gt=0"`
}

// QuotationInput is the create/update payload.
type QuotationInput struct {
	ClienteID uint         `json:"cliente_id"`
	Cliente   *ClientInput `json:"cliente"`
	Productos []ItemInput  `json:"productos" validate:"required,min=1,dive"`
}

// QuotationSummary is one row of the quotation listing.
type QuotationSummary struct {
	Id            uint      `json:"id"`
	Numero        string    `json:"numero"`
	ClienteNombre string    `json:"cliente_nombre"`
	Total         float64   `json:"total"`
	Estado        string    `json:"estado"`
	Fecha         time.Time `json:"fecha"`
}

// CreateQuotation prices each line at the product's current list price, sums
// the total and assigns the next COT number, all in one transaction.
func CreateQuotation(db *gorm.DB, in QuotationInput) (*models.Quotation, error) {
	if len(in.Productos) == 0 {
		return nil, ValidationErr("datos incompletos")
	}

	var created models.Quotation
	err := db.Transaction(func(tx *gorm.DB) error {
		client, err := ResolveClient(tx, in.ClienteID, in.Cliente)
		if err != nil {
			return err
		}

		numero, err := NextNumber(tx, DocQuotation)
		if err != nil {
			return err
		}

		items, total, err := buildQuotationItems(tx, in.Productos)
		if err != nil {
			return err
		}

		created = models.Quotation{
			Numero:   numero,
			ClientID: client.Id,
			Items:    items,
			Total:    total,
			Estado:   models.QuotationActive,
		}
		if err := tx.Create(&created).Error; err != nil {
			return InfraErr(err, "no se pudo crear la cotización")
		}
		created.Client = *client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// buildQuotationItems snapshots the current pvp of each product.
func buildQuotationItems(tx *gorm.DB, inputs []ItemInput) ([]models.QuotationItem, float64, error) {
	var items []models.QuotationItem
	var total float64
	for _, item := range inputs {
		if item.Cantidad <= 0 {
			return nil, 0, ValidationErr("la cantidad debe ser mayor a 0")
		}
		var p models.Product
		if err := tx.Take(&p, item.ProductoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, NotFoundErr("producto %d no encontrado", item.ProductoID)
			}
			return nil, 0, InfraErr(err, "no se pudo consultar el producto")
		}
		subtotal := LineSubtotal(p.Pvp, item.Cantidad)
		total += subtotal
		items = append(items, models.QuotationItem{
			ProductID:      p.Id,
			Cantidad:       item.Cantidad,
			PrecioUnitario: p.Pvp,
			Subtotal:       subtotal,
		})
	}
	return items, total, nil
}

// ListQuotations returns newest-first summaries, optionally filtered by a
// free-text match over number and client name.
func ListQuotations(db *gorm.DB, search string) ([]QuotationSummary, error) {
	q := db.Model(&models.Quotation{}).
		Select("quotations.id, quotations.numero, clients.nombre AS cliente_nombre, quotations.total, quotations.estado, quotations.fecha").
		Joins("JOIN clients ON clients.id = quotations.cliente_id").
		Order("quotations.fecha DESC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("quotations.numero LIKE ? OR clients.nombre LIKE ?", like, like)
	}

	var rows []QuotationSummary
	if err := q.Scan(&rows).Error; err != nil {
		return nil, InfraErr(err, "no se pudieron listar las cotizaciones")
	}
	return rows, nil
}

// GetQuotation loads a quotation with its client and items.
func GetQuotation(db *gorm.DB, id uint) (*models.Quotation, error) {
	var q models.Quotation
	err := db.Preload("Client").Preload("Items").Preload("Items.Product").Take(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("cotización no encontrada")
		}
		return nil, InfraErr(err, "no se pudo consultar la cotización")
	}
	return &q, nil
}

// UpdateQuotation replaces the whole line set (delete then reinsert) and
// recomputes the total. Quotations never touch stock, so no reconciliation is
// needed here. Only ACTIVE quotations may change.
func UpdateQuotation(db *gorm.DB, id uint, in QuotationInput) (*models.Quotation, error) {
	if in.ClienteID == 0 || len(in.Productos) == 0 {
		return nil, ValidationErr("datos incompletos")
	}

	var updated models.Quotation
	err := db.Transaction(func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("cotización no encontrada")
			}
			return InfraErr(err, "no se pudo consultar la cotización")
		}
		if q.Estado != models.QuotationActive {
			return ConflictErr("la cotización ya fue convertida")
		}

		if err := tx.Where("cotizacion_id = ?", id).Delete(&models.QuotationItem{}).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la cotización")
		}

		items, total, err := buildQuotationItems(tx, in.Productos)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].QuotationID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la cotización")
		}

		updates := map[string]any{"cliente_id": in.ClienteID, "total": total}
		if err := tx.Model(&q).Updates(updates).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la cotización")
		}
		q.ClientID = in.ClienteID
		q.Total = total
		q.Items = items
		updated = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ConvertQuotation is the terminal ACTIVE -> CONVERTIDA transition. The
// quotation row is locked, a sales note is built from the recorded lines and
// client, and the state flips, all in one transaction, so a crash can never
// leave a converted quotation without its note. The note decrements stock per
// line under the usual product locks.
func ConvertQuotation(db *gorm.DB, id uint, formaPago, tipoPrecio, observacion string) (*models.SalesNote, error) {
	if formaPago == "" {
		formaPago = "EFECTIVO"
	}
	if tipoPrecio == "" {
		tipoPrecio = models.TierPvp
	}

	var note *models.SalesNote
	err := db.Transaction(func(tx *gorm.DB) error {
		var q models.Quotation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("cotización no encontrada")
			}
			return InfraErr(err, "no se pudo consultar la cotización")
		}
		if q.Estado != models.QuotationActive {
			return ConflictErr("la cotización ya fue convertida")
		}
		if time.Since(q.Fecha) > QuotationValidity {
			return ConflictErr("la cotización venció y no puede convertirse")
		}

		var detalle []models.QuotationItem
		if err := tx.Where("cotizacion_id = ?", id).Find(&detalle).Error; err != nil {
			return InfraErr(err, "no se pudo consultar el detalle")
		}
		if len(detalle) == 0 {
			return ValidationErr("la cotización no tiene productos")
		}

		items := make([]ItemInput, 0, len(detalle))
		for _, d := range detalle {
			items = append(items, ItemInput{
				ProductoID:     d.ProductID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
			})
		}

		if observacion == "" {
			observacion = "Generada desde cotización " + q.Numero
		}
		var err error
		note, err = createSalesNoteTx(tx, SalesNoteInput{
			ClienteID:   q.ClientID,
			FormaPago:   formaPago,
			TipoPrecio:  tipoPrecio,
			Observacion: observacion,
			Productos:   items,
		}, false) // quotation prices are already floor-checked snapshots
		if err != nil {
			return err
		}

		if err := tx.Model(&q).Update("estado", models.QuotationConverted).Error; err != nil {
			return InfraErr(err, "no se pudo convertir la cotización")
		}
		q.Estado = models.QuotationConverted
		return archiveSnapshot(tx, DocQuotation, q.Id, models.SnapshotConverted, q)
	})
	if err != nil {
		return nil, err
	}

	// Post-commit side effects; never affect the committed sale.
	notifyNoteCreated(noteDocument(db, note))
	return note, nil
}

// DeleteQuotation removes the header and its items. No stock implication.
func DeleteQuotation(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cotizacion_id = ?", id).Delete(&models.QuotationItem{}).Error; err != nil {
			return InfraErr(err, "no se pudo eliminar la cotización")
		}
		res := tx.Delete(&models.Quotation{}, id)
		if res.Error != nil {
			return InfraErr(res.Error, "no se pudo eliminar la cotización")
		}
		if res.RowsAffected == 0 {
			return NotFoundErr("cotización no encontrada")
		}
		return nil
	})
}

// archiveSnapshot stores the JSON image of a document at a terminal transition.
func archiveSnapshot(tx *gorm.DB, docType string, docID uint, event string, doc any) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return InfraErr(err, "no se pudo serializar el documento")
	}
	snap := models.DocumentSnapshot{
		DocType:  docType,
		DocID:    docID,
		Event:    event,
		Snapshot: blob,
	}
	if err := tx.Create(&snap).Error; err != nil {
		return InfraErr(err, "no se pudo archivar el documento")
	}
	return nil
}
