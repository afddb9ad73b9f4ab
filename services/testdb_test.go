package services

import (
	"os"
	"testing"

	"ventas-backend/database"
	"ventas-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_DATABASE_URL, migrates the
// schema and truncates every table so each test starts clean. Tests that need
// a database skip when the variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	database.DB = db
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	err = db.Exec(`TRUNCATE TABLE
		document_snapshots,
		idempotency_keys,
		monthly_commissions,
		sales_note_items,
		sales_notes,
		quotation_items,
		quotations,
		clients,
		products,
		users
	RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate test database: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, nombre string, costo float64, stock int) *models.Product {
	t.Helper()
	p, err := CreateProduct(db, ProductInput{Nombre: nombre, Costo: costo, Stock: stock})
	if err != nil {
		t.Fatalf("seed product %s: %v", nombre, err)
	}
	return p
}

func seedClient(t *testing.T, db *gorm.DB, nombre, identificacion string) *models.Client {
	t.Helper()
	c := models.Client{Nombre: nombre}
	if identificacion != "" {
		c.Identificacion = &identificacion
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed client %s: %v", nombre, err)
	}
	return &c
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.Take(&p, id).Error; err != nil {
		t.Fatalf("read product %d: %v", id, err)
	}
	return p.Stock
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want kind %s", kind)
	}
	e := AsError(err)
	if e == nil {
		t.Fatalf("got %T (%v), want *services.Error with kind %s", err, err, kind)
	}
	if e.Kind != kind {
		t.Fatalf("got kind %s (%s), want %s", e.Kind, e.Message, kind)
	}
}
