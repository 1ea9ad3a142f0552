// Package mock provides in-memory test doubles for integration tests.
package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps an in-memory SQLite database holding the given models. Each
// call to NewDb opens a fresh database, so the local and remote stores
// of one scenario never share state.
type Db struct {
	Conn   *gorm.DB
	models []any
}

// NewDb opens an in-memory database and migrates the given models.
func NewDb(models ...any) *Db {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		panic(err)
	}

	// One connection: a second connection would see a different
	// in-memory database.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic("failed to migrate test database: " + err.Error())
	}

	return &Db{Conn: conn, models: models}
}

// Reset deletes all rows from every model's table.
func (d *Db) Reset() error {
	for _, m := range d.models {
		if err := d.Conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return fmt.Errorf("failed to reset table for %T: %w", m, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (d *Db) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
