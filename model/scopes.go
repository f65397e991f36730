package model

import "gorm.io/gorm"

// Enabled is the default listing scope for categories and geography rows.
// Lookups by primary key skip it, so disabled or deleted rows stay reachable.
func Enabled(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "Enabled")
}

// Visible keeps enabled and disabled rows but never deleted ones.
func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", CategoryDeleted)
}
