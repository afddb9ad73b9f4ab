package services

import (
	"errors"
	"fmt"
	"strings"

	"ventas-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductInput is the create/update payload. Prices are never supplied; they
// are derived from the cost by the pricing rule.
type ProductInput struct {
	Nombre string  `json:"nombre" validate:"required"`
	Costo  float64 `json:"costo" validate:"required,gt=0"`
	Stock  int     `json:"stock" validate:"gte=0"`
}

// CreateProduct derives the four prices from the cost and assigns the
// zero-padded code from the generated id, in one transaction.
func CreateProduct(db *gorm.DB, in ProductInput) (*models.Product, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, ValidationErr("el nombre es obligatorio")
	}
	prices, err := ComputePrices(in.Costo)
	if err != nil {
		return nil, err
	}

	var created models.Product
	err = db.Transaction(func(tx *gorm.DB) error {
		created = models.Product{
			Codigo:   "TEMP",
			Nombre:   strings.TrimSpace(in.Nombre),
			Costo:    in.Costo,
			Efectivo: prices.Efectivo,
			Pvp:      prices.Pvp,
			Cred10:   prices.Cred10,
			Cred15:   prices.Cred15,
			Stock:    in.Stock,
		}
		if err := tx.Create(&created).Error; err != nil {
			return InfraErr(err, "no se pudo crear el producto")
		}
		codigo := fmt.Sprintf("%05d", created.Id)
		if err := tx.Model(&created).Update("codigo", codigo).Error; err != nil {
			return InfraErr(err, "no se pudo asignar el código del producto")
		}
		created.Codigo = codigo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct changes name/cost/stock and recomputes all four prices in
// full; there is no partial price edit.
func UpdateProduct(db *gorm.DB, id uint, in ProductInput) (*models.Product, error) {
	prices, err := ComputePrices(in.Costo)
	if err != nil {
		return nil, err
	}

	var updated models.Product
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&updated, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundErr("producto no encontrado")
			}
			return InfraErr(err, "no se pudo consultar el producto")
		}

		updates := map[string]any{
			"nombre":   strings.TrimSpace(in.Nombre),
			"costo":    in.Costo,
			"efectivo": prices.Efectivo,
			"pvp":      prices.Pvp,
			"cred_10":  prices.Cred10,
			"cred_15":  prices.Cred15,
			"stock":    in.Stock,
		}
		if err := tx.Model(&updated).Updates(updates).Error; err != nil {
			return InfraErr(err, "no se pudo actualizar el producto")
		}
		return tx.Take(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes an unreferenced product. A product referenced by any
// note or quotation line is protected: the pre-check surfaces a clean
// integrity error, and the RESTRICT foreign keys back it up under races.
func DeleteProduct(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.SalesNoteItem{}).Where("producto_id = ?", id).Count(&refs).Error; err != nil {
			return InfraErr(err, "no se pudo verificar las referencias del producto")
		}
		if refs > 0 {
			return IntegrityErr("no se puede eliminar el producto porque está asociado a notas de venta")
		}
		if err := tx.Model(&models.QuotationItem{}).Where("producto_id = ?", id).Count(&refs).Error; err != nil {
			return InfraErr(err, "no se pudo verificar las referencias del producto")
		}
		if refs > 0 {
			return IntegrityErr("no se puede eliminar el producto porque está asociado a cotizaciones")
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return IntegrityErr("no se puede eliminar el producto porque está asociado a documentos")
		}
		if res.RowsAffected == 0 {
			return NotFoundErr("producto no encontrado")
		}
		return nil
	})
}
