package services

import (
	"testing"

	"ventas-backend/models"

	"gorm.io/gorm"
)

func TestResolveClientReusesByIdentificacion(t *testing.T) {
	db := openTestDB(t)
	existing := seedClient(t, db, "María José", "1712345678")

	var got *models.Client
	err := db.Transaction(func(tx *gorm.DB) error {
		var rerr error
		got, rerr = ResolveClient(tx, 0, &ClientInput{
			Nombre:         "María J. duplicada",
			Identificacion: "1712345678",
		})
		return rerr
	})
	if err != nil {
		t.Fatalf("ResolveClient: %v", err)
	}
	if got.Id != existing.Id {
		t.Errorf("resolved client %d, want existing %d", got.Id, existing.Id)
	}

	var count int64
	if err := db.Model(&models.Client{}).Count(&count).Error; err != nil {
		t.Fatalf("count clients: %v", err)
	}
	if count != 1 {
		t.Errorf("clients = %d, want 1 (no duplicate created)", count)
	}
}

func TestResolveClientCreatesInline(t *testing.T) {
	db := openTestDB(t)

	var got *models.Client
	err := db.Transaction(func(tx *gorm.DB) error {
		var rerr error
		got, rerr = ResolveClient(tx, 0, &ClientInput{
			Nombre:         "  Cliente Nuevo  ",
			Identificacion: "1798765432001",
		})
		return rerr
	})
	if err != nil {
		t.Fatalf("ResolveClient: %v", err)
	}
	if got.Id == 0 {
		t.Fatal("client not persisted")
	}
	if got.Nombre != "Cliente Nuevo" {
		t.Errorf("nombre = %q, want trimmed", got.Nombre)
	}
	if got.Identificacion == nil || *got.Identificacion != "1798765432001" {
		t.Errorf("identificacion = %v", got.Identificacion)
	}
}

func TestResolveClientRejectsBadInput(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, rerr := ResolveClient(tx, 0, &ClientInput{Nombre: "X", Identificacion: "123"})
		return rerr
	})
	wantKind(t, err, KindValidation)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, rerr := ResolveClient(tx, 9999, nil)
		return rerr
	})
	wantKind(t, err, KindNotFound)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, rerr := ResolveClient(tx, 0, nil)
		return rerr
	})
	wantKind(t, err, KindValidation)
}
