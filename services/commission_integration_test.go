package services

import (
	"testing"
	"time"

	"ventas-backend/models"

	"gorm.io/gorm"
)

func sellOne(t *testing.T, db *gorm.DB, p *models.Product, c *models.Client) *models.SalesNote {
	t.Helper()
	n, err := CreateSalesNote(db, SalesNoteInput{
		ClienteID:  c.Id,
		FormaPago:  "EFECTIVO",
		TipoPrecio: models.TierPvp,
		Productos:  []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
	})
	if err != nil {
		t.Fatalf("CreateSalesNote: %v", err)
	}
	return n
}

func TestMonthlyReportSnapshotsCommission(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Cable", 4.00, 100) // pvp 10.40
	c := seedClient(t, db, "Gina Vaca", "")
	now := time.Now()

	notes := make([]*models.SalesNote, 0, 3)
	for i := 0; i < 3; i++ {
		notes = append(notes, sellOne(t, db, p, c))
	}
	if err := VoidSalesNote(db, notes[2].Id, "prueba"); err != nil {
		t.Fatalf("VoidSalesNote: %v", err)
	}

	r, err := GetMonthlyReport(db, now)
	if err != nil {
		t.Fatalf("GetMonthlyReport: %v", err)
	}
	if r.NotasGeneradas != 3 || r.NotasActivas != 2 || r.NotasAnuladas != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", r.NotasGeneradas, r.NotasActivas, r.NotasAnuladas)
	}
	// Commission counts every issued note, voided included.
	if !almostEqual(r.TarifaAplicada, 0.20) {
		t.Errorf("tarifa = %v, want 0.20", r.TarifaAplicada)
	}
	if !almostEqual(r.TotalComision, 0.60) {
		t.Errorf("comision = %v, want 0.60", r.TotalComision)
	}
	// Voided notes do not count toward revenue.
	if !almostEqual(r.TotalVendido, 20.80) {
		t.Errorf("vendido = %v, want 20.80", r.TotalVendido)
	}
	if r.YaGenerado {
		t.Error("ya_generado = true on first request of the month")
	}

	// More sales after the snapshot: the live summary moves, the stored
	// commission does not.
	sellOne(t, db, p, c)
	r2, err := GetMonthlyReport(db, now)
	if err != nil {
		t.Fatalf("GetMonthlyReport (second): %v", err)
	}
	if r2.NotasGeneradas != 4 {
		t.Errorf("generadas = %d, want 4", r2.NotasGeneradas)
	}
	if !almostEqual(r2.TotalComision, 0.60) {
		t.Errorf("comision after snapshot = %v, want 0.60 (frozen)", r2.TotalComision)
	}
	if !r2.YaGenerado {
		t.Error("ya_generado = false on repeat request")
	}

	var rows int64
	if err := db.Model(&models.MonthlyCommission{}).Count(&rows).Error; err != nil {
		t.Fatalf("count commissions: %v", err)
	}
	if rows != 1 {
		t.Errorf("commission rows = %d, want 1", rows)
	}
}

func TestMonthlyReportIgnoresOtherMonths(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Funda", 8.00, 50)
	c := seedClient(t, db, "Leo Peña", "")
	now := time.Now()

	old := sellOne(t, db, p, c)
	lastMonth := now.AddDate(0, 0, -35)
	if err := db.Model(&models.SalesNote{}).Where("id = ?", old.Id).Update("fecha", lastMonth).Error; err != nil {
		t.Fatalf("backdate note: %v", err)
	}
	sellOne(t, db, p, c)

	r, err := GetMonthlyReport(db, now)
	if err != nil {
		t.Fatalf("GetMonthlyReport: %v", err)
	}
	if r.NotasGeneradas != 1 {
		t.Errorf("generadas = %d, want 1 (current month only)", r.NotasGeneradas)
	}
}

func TestMarkCommissionPaidIsOneWay(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Afinador", 12.00, 20)
	c := seedClient(t, db, "Beto Casa", "")
	now := time.Now()

	// No snapshot yet.
	err := MarkCommissionPaid(db, now)
	wantKind(t, err, KindConflict)

	sellOne(t, db, p, c)
	if _, err := GetMonthlyReport(db, now); err != nil {
		t.Fatalf("GetMonthlyReport: %v", err)
	}

	if err := MarkCommissionPaid(db, now); err != nil {
		t.Fatalf("MarkCommissionPaid: %v", err)
	}

	var row models.MonthlyCommission
	if err := db.Where("anio = ? AND mes = ?", now.Year(), int(now.Month())).Take(&row).Error; err != nil {
		t.Fatalf("read commission: %v", err)
	}
	if !row.Pagado {
		t.Error("pagado = false after marking")
	}
	if row.FechaPago == nil {
		t.Error("fecha_pago not set")
	}

	// Already paid; the flip is one-way.
	err = MarkCommissionPaid(db, now)
	wantKind(t, err, KindConflict)
}
