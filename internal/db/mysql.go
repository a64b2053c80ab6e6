package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens the dealership database for the given DSN. The DSN must
// carry parseTime=True so gorm can scan the timestamp columns; pooling
// stays at the driver defaults and migrations are the caller's job.
func NewMySQL(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return gormDB, nil
}
