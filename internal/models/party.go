package models

import "time"

// Party is the storage shape of a directory entry.
type Party struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Phone     *string   `db:"phone"`
	Address   *string   `db:"address"`
	PartyType string    `db:"party_type"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
}
