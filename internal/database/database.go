package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

// Connect opens a Postgres connection for postgres:// DSNs and falls back
// to a file-based (or :memory:) SQLite database for everything else.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Printf("event=db_connect driver=postgres")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Printf("event=db_connect driver=sqlite dsn=%s", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
