package model

import "gorm.io/gorm"

// Migrate creates or updates every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Sale{}, &Purchase{}, &User{})
}
