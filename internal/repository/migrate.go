package repository

import "gorm.io/gorm"

// OverlapConstraintName is the Postgres exclusion constraint that
// rejects two confirmed bookings covering the same room, date and
// minute range. Callers mapping constraint violations must match on
// this name.
const OverlapConstraintName = "idx_no_overlapping_booking"

// AutoMigrate cannot express an EXCLUDE constraint, so it is added with
// raw DDL after the tables exist. Guarded so re-running Migrate on an
// up-to-date schema is a no-op.
var postgresBookingConstraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = '` + OverlapConstraintName + `'
	) THEN
		ALTER TABLE bookings
			ADD CONSTRAINT ` + OverlapConstraintName + `
			EXCLUDE USING gist (
				room_id WITH =,
				date WITH =,
				int4range(start_min, end_min) WITH &&
			) WHERE (status = 'confirmed');
	END IF;
END $$`,
}

// Migrate creates or updates the schema for all repository models. On
// Postgres it also installs the overlap exclusion constraint, so the
// check-and-insert in CreateIfFree holds even when two transactions
// race under READ COMMITTED.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&openingHourModel{},
		&openingExceptionModel{},
		&bookingModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		for _, stmt := range postgresBookingConstraints {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
