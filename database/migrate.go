package database

import (
	"fmt"

	"handbook-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultRequestTypes = []models.RequestType{
	{Code: "exam", Description: "Market survey"},
	{Code: "info", Description: "Data lookup"},
	{Code: "work", Description: "Operational request"},
}

var defaultRequestStatuses = []models.RequestStatus{
	{Code: "new", Description: "New request"},
	{Code: "in_progress", Description: "In progress"},
	{Code: "completed", Description: "Completed"},
	{Code: "cancelled", Description: "Cancelled"},
}

var defaultProductCategories = []models.ProductCategory{
	{Code: "wall", Description: "Wall"},
	{Code: "valve", Description: "Valve"},
	{Code: "frame", Description: "Frame"},
}

// Migrate ensures all tables exist, widens legacy columns and upserts the
// lookup seeds, all inside one transaction so a failure never leaves the
// schema half-migrated. Safe to run on every start, and concurrently with
// another instance: the seeds use insert-or-update-description semantics.
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.RequestType{},
			&models.RequestStatus{},
			&models.ProductCategory{},
			&models.Supplier{},
			&models.Product{},
			&models.SupplierProductPrice{},
			&models.Request{},
			&models.RequestItem{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// Early deployments created part_number/pos_scheme narrower than the
		// import tooling needs; widen them in place. Postgres only, AutoMigrate
		// already sizes fresh tables correctly elsewhere.
		if tx.Dialector.Name() == "postgres" {
			widens := []string{
				`ALTER TABLE products ALTER COLUMN part_number TYPE varchar(100) USING part_number::text`,
				`ALTER TABLE products ALTER COLUMN pos_scheme TYPE varchar(100) USING pos_scheme::text`,
				`ALTER TABLE request_items ALTER COLUMN part_number TYPE varchar(100) USING part_number::text`,
				`ALTER TABLE request_items ALTER COLUMN pos_scheme TYPE varchar(100) USING pos_scheme::text`,
			}
			for _, stmt := range widens {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("column widening failed on: %s - %w", stmt, err)
				}
			}
		}

		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"description"}),
		}
		if err := tx.Clauses(upsert).Create(&defaultRequestTypes).Error; err != nil {
			return fmt.Errorf("seeding request types failed: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&defaultRequestStatuses).Error; err != nil {
			return fmt.Errorf("seeding request statuses failed: %w", err)
		}
		if err := tx.Clauses(upsert).Create(&defaultProductCategories).Error; err != nil {
			return fmt.Errorf("seeding product categories failed: %w", err)
		}
		return nil
	})
}
