package database

import (
	"fmt"

	"ventas-backend/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Foreign keys protecting documents (RESTRICT on product references)
// - CHECK constraints (stock and money never negative)
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Client{},
			&models.Product{},
			&models.Quotation{},
			&models.QuotationItem{},
			&models.SalesNote{},
			&models.SalesNoteItem{},
			&models.MonthlyCommission{},
			&models.DocumentSnapshot{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products         ALTER COLUMN costo           TYPE numeric(12,2)`,
			`ALTER TABLE products         ALTER COLUMN efectivo        TYPE numeric(12,2)`,
			`ALTER TABLE products         ALTER COLUMN pvp             TYPE numeric(12,2)`,
			`ALTER TABLE products         ALTER COLUMN cred_10         TYPE numeric(12,2)`,
			`ALTER TABLE products         ALTER COLUMN cred_15         TYPE numeric(12,2)`,
			`ALTER TABLE quotations       ALTER COLUMN total           TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items  ALTER COLUMN precio_unitario TYPE numeric(12,2)`,
			`ALTER TABLE quotation_items  ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE sales_notes      ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE sales_notes      ALTER COLUMN total           TYPE numeric(12,2)`,
			`ALTER TABLE sales_note_items ALTER COLUMN precio_unitario TYPE numeric(12,2)`,
			`ALTER TABLE sales_note_items ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE monthly_commissions ALTER COLUMN total_comision TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign keys: document lines -> products (RESTRICT/RESTRICT) ---
		fks := []struct{ table, name, column string }{
			{"quotation_items", "fk_quotation_items_product", "producto_id"},
			{"sales_note_items", "fk_sales_note_items_product", "producto_id"},
		}
		for _, fk := range fks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s
		ADD CONSTRAINT %s
		FOREIGN KEY (%s)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`, fk.table, fk.name, fk.table, fk.name, fk.column)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("foreign key migration failed: %w", err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []struct{ table, name, expr string }{
			{"products", "chk_products_stock_nonneg", "stock >= 0"},
			{"products", "chk_products_costo_nonneg", "costo >= 0"},
			{"quotation_items", "chk_quotation_items_cantidad_pos", "cantidad > 0"},
			{"sales_note_items", "chk_sales_note_items_cantidad_pos", "cantidad > 0"},
			{"monthly_commissions", "chk_monthly_commissions_mes", "mes BETWEEN 1 AND 12"},
		}
		for _, c := range checks {
			stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%s'::regclass
		  AND conname  = '%s'
	) THEN
		ALTER TABLE %s
		ADD CONSTRAINT %s
		CHECK (%s);
	END IF;
END $$;`, c.table, c.name, c.table, c.name, c.expr)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
