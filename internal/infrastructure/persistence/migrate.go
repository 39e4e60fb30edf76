package persistence

import (
	"gorm.io/gorm"

	"github.com/erp/odoo-connector/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the schema for all connector tables.
// Production deployments run the SQL migrations instead; this is used by
// tests and local development.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProductModel{},
		&models.CategoryModel{},
		&models.ManufacturerModel{},
		&models.PropertyGroupModel{},
		&models.PropertyOptionModel{},
		&models.MediaModel{},
		&models.TaxModel{},
		&models.CurrencyModel{},
		&models.RuleModel{},
		&models.PriceModel{},
		&models.OrderModel{},
	)
}
