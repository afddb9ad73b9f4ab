package services

import (
	"testing"
	"time"

	"ventas-backend/models"
)

func TestDailyReportCountsTodayOnly(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Partitura", 2.00, 50) // pvp 5.20
	c := seedClient(t, db, "Eva Ponce", "")
	now := time.Now()

	first := sellOne(t, db, p, c)
	second := sellOne(t, db, p, c)
	sellOne(t, db, p, c)
	if err := VoidSalesNote(db, second.Id, ""); err != nil {
		t.Fatalf("VoidSalesNote: %v", err)
	}

	yesterday := now.AddDate(0, 0, -1)
	if err := db.Model(&models.SalesNote{}).Where("id = ?", first.Id).Update("fecha", yesterday).Error; err != nil {
		t.Fatalf("backdate note: %v", err)
	}

	r, err := GetDailyReport(db, now)
	if err != nil {
		t.Fatalf("GetDailyReport: %v", err)
	}
	if r.NotasGeneradas != 2 {
		t.Errorf("generadas = %d, want 2", r.NotasGeneradas)
	}
	if r.NotasAnuladas != 1 {
		t.Errorf("anuladas = %d, want 1", r.NotasAnuladas)
	}
	if !almostEqual(r.TotalVendido, 5.20) {
		t.Errorf("vendido = %v, want 5.20 (active notes only)", r.TotalVendido)
	}
}

func TestProfitDetailMargins(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Corneta", 50.00, 10) // pvp 95.00
	c := seedClient(t, db, "Raúl Ces", "")
	now := time.Now()

	n := sellOne(t, db, p, c)
	voided := sellOne(t, db, p, c)
	if err := VoidSalesNote(db, voided.Id, ""); err != nil {
		t.Fatalf("VoidSalesNote: %v", err)
	}

	rows, err := DailyDetail(db, now)
	if err != nil {
		t.Fatalf("DailyDetail: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (voided notes excluded)", len(rows))
	}
	r := rows[0]
	if r.Numero != n.Numero {
		t.Errorf("numero = %s, want %s", r.Numero, n.Numero)
	}
	if !almostEqual(r.Costo, 50.00) || r.Cantidad != 1 {
		t.Errorf("costo/cantidad = %v/%d, want 50.00/1", r.Costo, r.Cantidad)
	}
	if !almostEqual(r.Venta, 95.00) {
		t.Errorf("venta = %v, want 95.00", r.Venta)
	}
	if !almostEqual(r.Ganancia, 45.00) {
		t.Errorf("ganancia = %v, want 45.00", r.Ganancia)
	}
}
