package store

import "time"

type Store struct {
	ID        string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
