package model

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// all lists every persisted model in dependency order.
func all() []any {
	return []any{
		&UserModel{},
		&ProductModel{},
		&ProfileModel{},
		&ReviewModel{},
		&MessageModel{},
		&AnalyticsModel{},
		&OrderModel{},
		&OrderItemModel{},
	}
}

// Migrate creates all tables if absent. Idempotent; called once at
// service startup on whichever backend the handle points at.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(all()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// DropAll removes every table. Maintenance escape hatch only; nothing in
// the serving path calls it.
func DropAll(db *gorm.DB) error {
	if err := db.Migrator().DropTable(all()...); err != nil {
		return errors.Wrap(err, "failed to drop tables")
	}

	return nil
}
