package services

import (
	"testing"
	"time"

	"ventas-backend/models"
)

func TestCreateQuotationSnapshotsListPrice(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Guitarra acústica", 100.00, 10) // pvp 130.00
	c := seedClient(t, db, "Juan Pérez", "1712345678")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 2}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	if q.Numero != "COT-000001" {
		t.Errorf("numero = %s, want COT-000001", q.Numero)
	}
	if q.Estado != models.QuotationActive {
		t.Errorf("estado = %s, want %s", q.Estado, models.QuotationActive)
	}
	if len(q.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(q.Items))
	}
	if !almostEqual(q.Items[0].PrecioUnitario, 130.00) {
		t.Errorf("precio unitario = %v, want 130.00 (pvp)", q.Items[0].PrecioUnitario)
	}
	if !almostEqual(q.Total, 260.00) {
		t.Errorf("total = %v, want 260.00", q.Total)
	}

	// Quoting never touches stock.
	if got := productStock(t, db, p.Id); got != 10 {
		t.Errorf("stock after quote = %d, want 10", got)
	}

	// The snapshot outlives a later price change.
	if _, err := UpdateProduct(db, p.Id, ProductInput{Nombre: p.Nombre, Costo: 200.00, Stock: 10}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	got, err := GetQuotation(db, q.Id)
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if !almostEqual(got.Items[0].PrecioUnitario, 130.00) {
		t.Errorf("snapshot price after product reprice = %v, want 130.00", got.Items[0].PrecioUnitario)
	}
}

func TestQuotationNumbersIncrease(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Cuerdas", 5.00, 100)
	c := seedClient(t, db, "Ana Mora", "1712345678001")

	want := []string{"COT-000001", "COT-000002", "COT-000003"}
	for _, w := range want {
		q, err := CreateQuotation(db, QuotationInput{
			ClienteID: c.Id,
			Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
		})
		if err != nil {
			t.Fatalf("CreateQuotation: %v", err)
		}
		if q.Numero != w {
			t.Errorf("numero = %s, want %s", q.Numero, w)
		}
	}
}

func TestConvertQuotation(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Teclado", 250.00, 8) // pvp 325.00
	c := seedClient(t, db, "Luis Vega", "")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 3}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	note, err := ConvertQuotation(db, q.Id, "EFECTIVO", models.TierPvp, "")
	if err != nil {
		t.Fatalf("ConvertQuotation: %v", err)
	}

	if note.Numero != "NV-000001" {
		t.Errorf("note numero = %s, want NV-000001", note.Numero)
	}
	if !almostEqual(note.Total, 975.00) {
		t.Errorf("note total = %v, want 975.00", note.Total)
	}
	if got := productStock(t, db, p.Id); got != 5 {
		t.Errorf("stock after convert = %d, want 5", got)
	}

	reloaded, err := GetQuotation(db, q.Id)
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if reloaded.Estado != models.QuotationConverted {
		t.Errorf("estado = %s, want %s", reloaded.Estado, models.QuotationConverted)
	}

	var snaps int64
	if err := db.Model(&models.DocumentSnapshot{}).
		Where("doc_type = ? AND doc_id = ? AND event = ?", DocQuotation, q.Id, models.SnapshotConverted).
		Count(&snaps).Error; err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if snaps != 1 {
		t.Errorf("snapshots = %d, want 1", snaps)
	}

	// A second conversion must fail and must not touch stock again.
	_, err = ConvertQuotation(db, q.Id, "EFECTIVO", models.TierPvp, "")
	wantKind(t, err, KindConflict)
	if got := productStock(t, db, p.Id); got != 5 {
		t.Errorf("stock after rejected reconvert = %d, want 5", got)
	}
	var notes int64
	if err := db.Model(&models.SalesNote{}).Count(&notes).Error; err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if notes != 1 {
		t.Errorf("notes = %d, want 1", notes)
	}
}

func TestConvertExpiredQuotation(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Micrófono", 60.00, 4)
	c := seedClient(t, db, "Rosa León", "")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	stale := time.Now().Add(-16 * 24 * time.Hour)
	if err := db.Model(&models.Quotation{}).Where("id = ?", q.Id).Update("fecha", stale).Error; err != nil {
		t.Fatalf("backdate quotation: %v", err)
	}

	_, err = ConvertQuotation(db, q.Id, "EFECTIVO", models.TierPvp, "")
	wantKind(t, err, KindConflict)
	if got := productStock(t, db, p.Id); got != 4 {
		t.Errorf("stock after rejected convert = %d, want 4", got)
	}
}

func TestConvertInsufficientStockLeavesQuotationActive(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Amplificador", 500.00, 2)
	c := seedClient(t, db, "Caro Díaz", "")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 3}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	_, err = ConvertQuotation(db, q.Id, "EFECTIVO", models.TierPvp, "")
	wantKind(t, err, KindInsufficientStock)

	if got := productStock(t, db, p.Id); got != 2 {
		t.Errorf("stock after failed convert = %d, want 2", got)
	}
	reloaded, err := GetQuotation(db, q.Id)
	if err != nil {
		t.Fatalf("GetQuotation: %v", err)
	}
	if reloaded.Estado != models.QuotationActive {
		t.Errorf("estado = %s, want %s (whole conversion rolled back)", reloaded.Estado, models.QuotationActive)
	}
	var notes int64
	if err := db.Model(&models.SalesNote{}).Count(&notes).Error; err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if notes != 0 {
		t.Errorf("notes = %d, want 0", notes)
	}
}

func TestUpdateQuotationReplacesLines(t *testing.T) {
	db := openTestDB(t)
	a := seedProduct(t, db, "Violín", 300.00, 5) // pvp 390.00
	b := seedProduct(t, db, "Atril", 20.00, 15)  // pvp 52.00
	c := seedClient(t, db, "Marta Ruiz", "")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: a.Id, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	updated, err := UpdateQuotation(db, q.Id, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: b.Id, Cantidad: 2}},
	})
	if err != nil {
		t.Fatalf("UpdateQuotation: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].ProductID != b.Id {
		t.Fatalf("items not replaced: %+v", updated.Items)
	}
	if !almostEqual(updated.Total, 104.00) {
		t.Errorf("total = %v, want 104.00", updated.Total)
	}

	var lines int64
	if err := db.Model(&models.QuotationItem{}).Where("cotizacion_id = ?", q.Id).Count(&lines).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lines != 1 {
		t.Errorf("stored lines = %d, want 1", lines)
	}
}

func TestUpdateConvertedQuotationRejected(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Flauta", 40.00, 6)
	c := seedClient(t, db, "Iván Soto", "")

	q, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}
	if _, err := ConvertQuotation(db, q.Id, "EFECTIVO", models.TierPvp, ""); err != nil {
		t.Fatalf("ConvertQuotation: %v", err)
	}

	_, err = UpdateQuotation(db, q.Id, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 2}},
	})
	wantKind(t, err, KindConflict)
}
