package database

import (
	"ticketapp/internal/events"
	"ticketapp/internal/locations"
	"ticketapp/internal/tickets"
	"ticketapp/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&locations.Location{},
		&events.Event{},
		&tickets.Ticket{},
	)
}
