package database

import (
	"eventcraft/internal/bookings"
	"eventcraft/internal/catalog"
	"eventcraft/internal/events"
	"eventcraft/internal/staff"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&staff.Account{},
		&catalog.EventPackage{},
		&catalog.PackageComponent{},
		&catalog.Venue{},
		&catalog.PackageVenue{},
		&bookings.BookingRecord{},
		&events.Event{},
		&events.WeddingDetails{},
	)
}
