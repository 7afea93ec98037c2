package database

import (
	"fmt"

	"pos-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (versions, settlements, sale_items)
// - Foreign key: sale_items.product_id → products.id
// - CHECK constraints guarding the sale invariants
// - Idempotency keys table + unique index
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Store{},
			&models.Product{},
			&models.Client{},
			&models.Sale{},
			&models.SaleItem{},
			&models.SaleVersion{},
			&models.SettlementPayment{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products            ALTER COLUMN selling_price   TYPE numeric(12,2)`,
			`ALTER TABLE products            ALTER COLUMN buying_price    TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN tax_amount      TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN discount_total  TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN total           TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN amount_paid     TYPE numeric(12,2)`,
			`ALTER TABLE sales               ALTER COLUMN balance_due     TYPE numeric(12,2)`,
			`ALTER TABLE sale_items          ALTER COLUMN unit_price      TYPE numeric(12,2)`,
			`ALTER TABLE sale_items          ALTER COLUMN discount_pct    TYPE numeric(5,2)`,
			`ALTER TABLE sale_items          ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE sale_items          ALTER COLUMN discount_amount TYPE numeric(12,2)`,
			`ALTER TABLE sale_items          ALTER COLUMN total           TYPE numeric(12,2)`,
			`ALTER TABLE settlement_payments ALTER COLUMN amount          TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_sale_versions_sale_id_version_no ON sale_versions (sale_id, version_no)`,
			`CREATE INDEX IF NOT EXISTS idx_settlements_sale_paid_at ON settlement_payments (sale_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sale_items_product ON sale_items (product_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign key: sale_items.product_id -> products.id (RESTRICT/RESTRICT) ---
		fk := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'sale_items'::regclass
		  AND conname  = 'fk_sale_items_product'
	) THEN
		ALTER TABLE sale_items
		ADD CONSTRAINT fk_sale_items_product
		FOREIGN KEY (product_id)
		REFERENCES products(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`
		if err := tx.Exec(fk).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		if err := tx.Exec(`ALTER TABLE sale_items ALTER COLUMN product_id SET NOT NULL`).Error; err != nil {
			return fmt.Errorf("set NOT NULL on sale_items.product_id failed: %w", err)
		}

		// --- CHECK constraints backing the workflow invariants (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_prices_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_prices_nonneg
					CHECK (selling_price >= 0 AND buying_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sale_items'::regclass
					  AND conname  = 'chk_sale_items_quantity_pos'
				) THEN
					ALTER TABLE sale_items
					ADD CONSTRAINT chk_sale_items_quantity_pos
					CHECK (quantity > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sale_items'::regclass
					  AND conname  = 'chk_sale_items_price_pos'
				) THEN
					ALTER TABLE sale_items
					ADD CONSTRAINT chk_sale_items_price_pos
					CHECK (unit_price > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sale_items'::regclass
					  AND conname  = 'chk_sale_items_discount_range'
				) THEN
					ALTER TABLE sale_items
					ADD CONSTRAINT chk_sale_items_discount_range
					CHECK (discount_pct >= 0 AND discount_pct <= 100);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'sales'::regclass
					  AND conname  = 'chk_sales_paid_nonneg'
				) THEN
					ALTER TABLE sales
					ADD CONSTRAINT chk_sales_paid_nonneg
					CHECK (amount_paid >= 0 AND balance_due >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'settlement_payments'::regclass
					  AND conname  = 'chk_settlements_amount_pos'
				) THEN
					ALTER TABLE settlement_payments
					ADD CONSTRAINT chk_settlements_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
