package db

import (
	"fmt"

	"besties/models"

	"gorm.io/gorm"
)

// Migrate создает таблицу users и индекс для поиска по имени без учета регистра
func Migrate(orm *gorm.DB) error {
	if err := orm.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate users: %w", err)
	}
	createIndexSQL := `CREATE INDEX IF NOT EXISTS idx_users_lower_name ON users (lower(name));`
	if err := orm.Exec(createIndexSQL).Error; err != nil {
		return fmt.Errorf("failed to create index idx_users_lower_name: %w", err)
	}
	return nil
}
