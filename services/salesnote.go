package services

import (
	"errors"
	"time"

	"ventas-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SalesNoteInput is the create/update payload for a direct sale. Unit prices
// come from the caller (editable at sale time) and are floor-checked against
// the product cost.
type SalesNoteInput struct {
	ClienteID   uint         `json:"cliente_id"`
	Cliente     *ClientInput `json:"cliente"`
	FormaPago   string       `json:"forma_pago" validate:"required"`
	TipoPrecio  string       `json:"tipo_precio" validate:"required"`
	Observacion string       `json:"observacion"`
	Productos   []ItemInput  `json:"productos" validate:"required,min=1,dive"`
}

// NoteSummary is one row of the sales note listing.
type NoteSummary struct {
	Id            uint      `json:"id"`
	Numero        string    `json:"numero"`
	ClienteNombre string    `json:"cliente_nombre"`
	Fecha         time.Time `json:"fecha"`
	Total         float64   `json:"total"`
	Estado        string    `json:"estado"`
}

// CreateSalesNote finalizes a direct sale in one transaction and fires the
// post-commit render/notify steps, whose failure never rolls back the sale.
func CreateSalesNote(db *gorm.DB, in SalesNoteInput) (*models.SalesNote, error) {
	var note *models.SalesNote
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = createSalesNoteTx(tx, in, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	notifyNoteCreated(noteDocument(db, note))
	return note, nil
}

// createSalesNoteTx is the TX-scoped core of note creation, shared with the
// quotation conversion path. For each line it locks the product row, verifies
// and decrements stock, and accumulates the subtotal from the caller-supplied
// unit price. enforceFloor applies the price >= cost rule; the conversion path
// skips it because quotation lines are immutable list-price snapshots.
func createSalesNoteTx(tx *gorm.DB, in SalesNoteInput, enforceFloor bool) (*models.SalesNote, error) {
	if in.FormaPago == "" || in.TipoPrecio == "" || len(in.Productos) == 0 {
		return nil, ValidationErr("datos incompletos")
	}

	client, err := ResolveClient(tx, in.ClienteID, in.Cliente)
	if err != nil {
		return nil, err
	}

	numero, err := NextNumber(tx, DocSalesNote)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := buildNoteItems(tx, in.Productos, enforceFloor)
	if err != nil {
		return nil, err
	}

	note := models.SalesNote{
		Numero:        numero,
		ClientID:      client.Id,
		ClienteNombre: client.Nombre,
		Items:         items,
		Subtotal:      subtotal,
		Total:         subtotal,
		FormaPago:     in.FormaPago,
		TipoPrecio:    in.TipoPrecio,
		Observacion:   in.Observacion,
		Estado:        models.SalesNoteActive,
	}
	if err := tx.Create(&note).Error; err != nil {
		return nil, InfraErr(err, "no se pudo crear la nota de venta")
	}
	note.Client = *client
	return &note, nil
}

// buildNoteItems verifies and decrements stock per line under product row
// locks, aborting the whole operation on the first shortage.
func buildNoteItems(tx *gorm.DB, inputs []ItemInput, enforceFloor bool) ([]models.SalesNoteItem, float64, error) {
	var items []models.SalesNoteItem
	var subtotal float64
	for _, item := range inputs {
		if item.Cantidad <= 0 {
			return nil, 0, ValidationErr("la cantidad debe ser mayor a 0")
		}
		p, err := DecrementStock(tx, item.ProductoID, item.Cantidad)
		if err != nil {
			return nil, 0, err
		}
		precio := item.PrecioUnitario
		if precio == 0 {
			precio = p.Pvp
		}
		if enforceFloor && precio < p.Costo {
			return nil, 0, ValidationErr("el precio no puede ser menor al costo (%.2f)", p.Costo)
		}
		sub := LineSubtotal(precio, item.Cantidad)
		subtotal += sub
		items = append(items, models.SalesNoteItem{
			ProductID:      p.Id,
			Cantidad:       item.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       sub,
		})
	}
	return items, subtotal, nil
}

// ListSalesNotes returns newest-first note summaries.
func ListSalesNotes(db *gorm.DB) ([]NoteSummary, error) {
	var rows []NoteSummary
	err := db.Model(&models.SalesNote{}).
		Select("id, numero, cliente_nombre, fecha, total, estado").
		Order("fecha DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, InfraErr(err, "no se pudieron listar las notas de venta")
	}
	return rows, nil
}

// GetSalesNote loads a note with its client and items.
func GetSalesNote(db *gorm.DB, id uint) (*models.SalesNote, error) {
	var n models.SalesNote
	err := db.Preload("Client").Preload("Items").Preload("Items.Product").Take(&n, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("nota de venta no encontrada")
		}
		return nil, InfraErr(err, "no se pudo consultar la nota")
	}
	return &n, nil
}

// UpdateSalesNote replaces header fields and the whole line set while ACTIVE.
// Stock is reconciled inside the same transaction: the old recorded quantities
// are restored first, then the new lines are verified and decremented, so the
// net effect on each product is exactly old-out/new-in with no drift.
func UpdateSalesNote(db *gorm.DB, id uint, in SalesNoteInput) (*models.SalesNote, error) {
	if in.ClienteID == 0 || len(in.Productos) == 0 {
		return nil, ValidationErr("datos incompletos")
	}

	var updated *models.SalesNote
	err := db.Transaction(func(tx *gorm.DB) error {
		var n models.SalesNote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&n, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("nota de venta no encontrada")
			}
			return InfraErr(err, "no se pudo consultar la nota")
		}
		if n.Estado != models.SalesNoteActive {
			return ConflictErr("la nota ya está anulada")
		}

		var client models.Client
		if err := tx.Take(&client, in.ClienteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("cliente %d no existe", in.ClienteID)
			}
			return InfraErr(err, "no se pudo consultar el cliente")
		}

		var old []models.SalesNoteItem
		if err := tx.Where("nota_venta_id = ?", id).Find(&old).Error; err != nil {
			return InfraErr(err, "no se pudo consultar el detalle")
		}
		for _, d := range old {
			if err := RestoreStock(tx, d.ProductID, d.Cantidad); err != nil {
				return err
			}
		}
		if err := tx.Where("nota_venta_id = ?", id).Delete(&models.SalesNoteItem{}).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la nota")
		}

		items, subtotal, err := buildNoteItems(tx, in.Productos, true)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].SalesNoteID = id
		}
		if err := tx.Create(&items).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la nota")
		}

		updates := map[string]any{
			"cliente_id":     in.ClienteID,
			"cliente_nombre": client.Nombre,
			"subtotal":       subtotal,
			"total":          subtotal,
			"forma_pago":     in.FormaPago,
			"tipo_precio":    in.TipoPrecio,
			"observacion":    in.Observacion,
		}
		if err := tx.Model(&n).Updates(updates).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar la nota")
		}

		n.ClientID = in.ClienteID
		n.ClienteNombre = client.Nombre
		n.Client = client
		n.Items = items
		n.Subtotal = subtotal
		n.Total = subtotal
		n.FormaPago = in.FormaPago
		n.TipoPrecio = in.TipoPrecio
		n.Observacion = in.Observacion
		updated = &n
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyNoteCreated(noteDocument(db, updated))
	return updated, nil
}

// VoidSalesNote is the terminal ACTIVA -> ANULADA transition. Every persisted
// line restores stock by its recorded quantity, never a recomputed one.
func VoidSalesNote(db *gorm.DB, id uint, motivo string) error {
	if motivo == "" {
		motivo = "Anulación manual"
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var n models.SalesNote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&n, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("nota de venta no encontrada")
			}
			return InfraErr(err, "no se pudo consultar la nota")
		}
		if n.Estado != models.SalesNoteActive {
			return ConflictErr("la nota ya está anulada")
		}

		var detalle []models.SalesNoteItem
		if err := tx.Where("nota_venta_id = ?", id).Find(&detalle).Error; err != nil {
			return InfraErr(err, "no se pudo consultar el detalle")
		}
		for _, d := range detalle {
			if err := RestoreStock(tx, d.ProductID, d.Cantidad); err != nil {
				return err
			}
		}

		now := time.Now()
		updates := map[string]any{
			"estado":           models.SalesNoteVoided,
			"motivo_anulacion": motivo,
			"fecha_anulacion":  &now,
		}
		if err := tx.Model(&n).Updates(updates).Error; err != nil {
			return InfraErr(err, "no se pudo anular la nota")
		}

		n.Estado = models.SalesNoteVoided
		n.MotivoAnulacion = motivo
		n.FechaAnulacion = &now
		n.Items = detalle
		return archiveSnapshot(tx, DocSalesNote, n.Id, models.SnapshotVoided, n)
	})
}

// DeleteSalesNote removes a note and its lines. Only voided notes may be
// deleted: an ACTIVE note still holds decremented stock, and deleting it would
// lose the quantities needed to restore the ledger. Void first.
func DeleteSalesNote(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var n models.SalesNote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&n, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("nota de venta no encontrada")
			}
			return InfraErr(err, "no se pudo consultar la nota")
		}
		if n.Estado != models.SalesNoteVoided {
			return ConflictErr("solo se puede eliminar una nota anulada")
		}

		if err := tx.Where("nota_venta_id = ?", id).Delete(&models.SalesNoteItem{}).Error; err != nil {
			return InfraErr(err, "no se pudo eliminar la nota")
		}
		if err := tx.Delete(&n).Error; err != nil {
			return InfraErr(err, "no se pudo eliminar la nota")
		}
		return nil
	})
}

// noteDocument flattens a committed note for the renderer/notifier. It reloads
// the client when the in-memory copy is incomplete; a read failure here only
// degrades the side effect, never the sale.
func noteDocument(db *gorm.DB, note *models.SalesNote) NoteDocument {
	doc := NoteDocument{
		Numero:      note.Numero,
		Fecha:       note.Fecha,
		Cliente:     note.Client,
		Items:       note.Items,
		Subtotal:    note.Subtotal,
		Total:       note.Total,
		FormaPago:   note.FormaPago,
		TipoPrecio:  note.TipoPrecio,
		Observacion: note.Observacion,
	}
	if doc.Cliente.Id == 0 && note.ClientID != 0 {
		var c models.Client
		if err := db.Take(&c, note.ClientID).Error; err == nil {
			doc.Cliente = c
		}
	}
	for _, it := range doc.Items {
		if it.Product.Id == 0 {
			var items []models.SalesNoteItem
			if err := db.Preload("Product").Where("nota_venta_id = ?", note.Id).Find(&items).Error; err == nil {
				doc.Items = items
			}
			break
		}
	}
	return doc
}
