package services

import (
	"errors"

	"ventas-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockProduct reads the product row FOR UPDATE; the lock is held until the
// enclosing transaction ends, serializing concurrent stock mutations on the
// same product.
func lockProduct(tx *gorm.DB, productID uint) (*models.Product, error) {
	var p models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&p, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundErr("producto %d no encontrado", productID)
		}
		return nil, InfraErr(err, "no se pudo bloquear el producto")
	}
	return &p, nil
}

// DecrementStock takes qty units from the product under a row lock. It fails
// with an insufficient-stock error and performs no mutation when the current
// stock cannot cover qty.
func DecrementStock(tx *gorm.DB, productID uint, qty int) (*models.Product, error) {
	if qty <= 0 {
		return nil, ValidationErr("la cantidad debe ser mayor a 0")
	}

	p, err := lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < qty {
		return nil, StockErr("stock insuficiente: %s", p.Nombre)
	}

	if err := tx.Model(p).Update("stock", gorm.Expr("stock - ?", qty)).Error; err != nil {
		return nil, InfraErr(err, "no se pudo descontar el stock")
	}
	p.Stock -= qty
	return p, nil
}

// RestoreStock returns qty units to the product under a row lock. Callers must
// pass the quantity recorded in the document's persisted line items, never a
// recomputed delta, so unrelated stock changes made in between survive.
func RestoreStock(tx *gorm.DB, productID uint, qty int) error {
	if qty < 0 {
		return ValidationErr("la cantidad no puede ser negativa")
	}
	if qty == 0 {
		return nil
	}

	p, err := lockProduct(tx, productID)
	if err != nil {
		return err
	}
	if err := tx.Model(p).Update("stock", gorm.Expr("stock + ?", qty)).Error; err != nil {
		return InfraErr(err, "no se pudo restaurar el stock")
	}
	return nil
}
