package services

import (
	"testing"

	"ventas-backend/models"
)

func TestCreateProductAssignsCodeAndPrices(t *testing.T) {
	db := openTestDB(t)

	p, err := CreateProduct(db, ProductInput{Nombre: "Guitarra eléctrica", Costo: 450.00, Stock: 7})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.Codigo != "00001" {
		t.Errorf("codigo = %s, want 00001", p.Codigo)
	}
	if !almostEqual(p.Efectivo, 540.00) || !almostEqual(p.Pvp, 585.00) {
		t.Errorf("efectivo/pvp = %v/%v, want 540.00/585.00", p.Efectivo, p.Pvp)
	}
	if !almostEqual(p.Cred10, 643.50) || !almostEqual(p.Cred15, 672.75) {
		t.Errorf("cred10/cred15 = %v/%v, want 643.50/672.75", p.Cred10, p.Cred15)
	}

	q, err := CreateProduct(db, ProductInput{Nombre: "Capo", Costo: 3.00, Stock: 30})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if q.Codigo != "00002" {
		t.Errorf("codigo = %s, want 00002", q.Codigo)
	}
}

func TestUpdateProductRepricesInFull(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Órgano", 30.00, 2) // pvp 78.00

	updated, err := UpdateProduct(db, p.Id, ProductInput{Nombre: "Órgano", Costo: 120.00, Stock: 2})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	// Crossing into the next band replaces all four prices.
	if !almostEqual(updated.Efectivo, 144.00) || !almostEqual(updated.Pvp, 156.00) {
		t.Errorf("efectivo/pvp = %v/%v, want 144.00/156.00", updated.Efectivo, updated.Pvp)
	}
	if !almostEqual(updated.Cred10, 171.60) || !almostEqual(updated.Cred15, 179.40) {
		t.Errorf("cred10/cred15 = %v/%v, want 171.60/179.40", updated.Cred10, updated.Cred15)
	}
}

func TestDeleteReferencedProductRejected(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Piano", 1400.00, 2)
	free := seedProduct(t, db, "Metrónomo", 10.00, 5)
	c := seedClient(t, db, "Dora Luna", "")

	if _, err := CreateSalesNote(db, SalesNoteInput{
		ClienteID:  c.Id,
		FormaPago:  "EFECTIVO",
		TipoPrecio: models.TierPvp,
		Productos:  []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
	}); err != nil {
		t.Fatalf("CreateSalesNote: %v", err)
	}

	err := DeleteProduct(db, p.Id)
	wantKind(t, err, KindIntegrity)

	var still int64
	if err := db.Model(&models.Product{}).Where("id = ?", p.Id).Count(&still).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if still != 1 {
		t.Error("referenced product was deleted")
	}

	if err := DeleteProduct(db, free.Id); err != nil {
		t.Fatalf("DeleteProduct unreferenced: %v", err)
	}
}

func TestDeleteQuotedProductRejected(t *testing.T) {
	db := openTestDB(t)
	p := seedProduct(t, db, "Tambor", 55.00, 3)
	c := seedClient(t, db, "Pia Mora", "")

	if _, err := CreateQuotation(db, QuotationInput{
		ClienteID: c.Id,
		Productos: []ItemInput{{ProductoID: p.Id, Cantidad: 1}},
	}); err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}

	err := DeleteProduct(db, p.Id)
	wantKind(t, err, KindIntegrity)
}
