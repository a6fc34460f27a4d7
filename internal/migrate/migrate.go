package migrate

import (
	"context"

	"checkout-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
	CreateGuards           bool // запрет смены владельца заказа
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
		CreateGuards:           true,
	}
}

// step is a named idempotent DDL statement.
type step struct {
	name string
	sql  string
}

var extensionSteps = []step{
	{"pgcrypto", `CREATE EXTENSION IF NOT EXISTS pgcrypto`},
}

var updatedAtSteps = []step{
	{"set_updated_at()", `
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;`},
	{"trg_users_updated", updatedAtTrigger("users")},
	{"trg_profiles_updated", updatedAtTrigger("profiles")},
	{"trg_products_updated", updatedAtTrigger("products")},
	{"trg_orders_updated", updatedAtTrigger("orders")},
}

var checkSteps = []step{
	{"chk_users_role_allowed", replaceCheck("users", "chk_users_role_allowed",
		`role IN ('customer','admin','support')`)},
	{"chk_products_price_non_negative", replaceCheck("products", "chk_products_price_non_negative",
		`price_cents >= 0`)},
	{"chk_products_stock_non_negative", replaceCheck("products", "chk_products_stock_non_negative",
		`stock_quantity >= 0`)},
	{"chk_orders_status_allowed", replaceCheck("orders", "chk_orders_status_allowed",
		`status IN ('pending','processing','shipped','delivered','cancelled')`)},
	{"chk_orders_total_non_negative", replaceCheck("orders", "chk_orders_total_non_negative",
		`total_amount_cents >= 0`)},
	{"chk_order_items_quantity_gt_zero", replaceCheck("order_items", "chk_order_items_quantity_gt_zero",
		`quantity > 0`)},
	{"chk_order_items_price_non_negative", replaceCheck("order_items", "chk_order_items_price_non_negative",
		`price_at_purchase_cents >= 0`)},
}

var indexSteps = []step{
	{"ux_users_email_lower", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower
ON users (lower(email));`},
	{"ux_products_sku_lower", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_products_sku_lower
ON products (lower(sku)) WHERE sku IS NOT NULL;`},
	{"ux_order_items_order_product", `
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_product
ON order_items (order_id, product_id);`},
	{"ix_orders_user_created", `
CREATE INDEX IF NOT EXISTS ix_orders_user_created
ON orders (user_id, created_at DESC);`},
	{"ix_orders_status_created", `
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);`},
}

var fkSteps = []step{
	{"fk_profiles_user", `
ALTER TABLE profiles
  DROP CONSTRAINT IF EXISTS fk_profiles_user,
  ADD CONSTRAINT fk_profiles_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`},
	{"fk_orders_user", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_user,
  ADD CONSTRAINT fk_orders_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT;`},
	{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;`},
	{"fk_order_items_product", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;`},
}

// Владелец заказа фиксируется при создании.
var guardSteps = []step{
	{"forbid_order_user_change()", `
CREATE OR REPLACE FUNCTION forbid_order_user_change() RETURNS trigger AS $$
BEGIN
  IF NEW.user_id IS DISTINCT FROM OLD.user_id THEN
    RAISE EXCEPTION 'orders.user_id is immutable' USING ERRCODE = 'check_violation';
  END IF;
  RETURN NEW;
END; $$ LANGUAGE plpgsql;`},
	{"trg_orders_user_immutable", `
DROP TRIGGER IF EXISTS trg_orders_user_immutable ON orders;
CREATE TRIGGER trg_orders_user_immutable
BEFORE UPDATE OF user_id ON orders
FOR EACH ROW EXECUTE FUNCTION forbid_order_user_change();`},
}

func updatedAtTrigger(table string) string {
	return `
DROP TRIGGER IF EXISTS trg_` + table + `_updated ON ` + table + `;
CREATE TRIGGER trg_` + table + `_updated
BEFORE UPDATE ON ` + table + `
FOR EACH ROW EXECUTE FUNCTION set_updated_at();`
}

func replaceCheck(table, name, expr string) string {
	return `
ALTER TABLE ` + table + `
  DROP CONSTRAINT IF EXISTS ` + name + `;
ALTER TABLE ` + table + `
  ADD CONSTRAINT ` + name + `
  CHECK (` + expr + `);`
}

func MigrateCheckoutDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных checkout")
	db = db.WithContext(ctx)

	if opt.CreateExtensions {
		if err := runSteps(db, log, "расширения PostgreSQL", extensionSteps); err != nil {
			return err
		}
	}

	log.Info("Создание таблиц users, profiles, products, orders, order_items")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateUpdatedAtTrigger {
		if err := runSteps(db, log, "триггеры updated_at", updatedAtSteps); err != nil {
			return err
		}
	}
	if opt.CreateChecks {
		if err := runSteps(db, log, "CHECK-ограничения", checkSteps); err != nil {
			return err
		}
	}
	if opt.CreateIndexes {
		if err := runSteps(db, log, "индексы", indexSteps); err != nil {
			return err
		}
	}
	if opt.CreateFKsViaSQL {
		if err := runSteps(db, log, "внешние ключи", fkSteps); err != nil {
			return err
		}
	}
	if opt.CreateGuards {
		if err := runSteps(db, log, "защитные триггеры", guardSteps); err != nil {
			return err
		}
	}

	log.Info("Миграция базы данных checkout успешно завершена")
	return nil
}

func runSteps(db *gorm.DB, log *zap.Logger, group string, steps []step) error {
	log.Info("Создание: "+group, zap.Int("count", len(steps)))
	for _, s := range steps {
		if err := db.Exec(s.sql).Error; err != nil {
			log.Error("Не удалось применить шаг миграции", zap.String("group", group), zap.String("step", s.name), zap.Error(err))
			return err
		}
	}
	log.Info("Успешно: " + group)
	return nil
}
