package database

import "propertycalc/server/internal/models"

func (d *Database) RunMigrations() error {
	// Create the users table and its unique username index if they don't exist
	return d.db.AutoMigrate(&models.User{})
}
