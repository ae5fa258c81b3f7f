package employee

import "time"

type Employee struct {
	ID        string
	Name      string
	Email     *string
	StoreID   *string
	StoreName *string // resolved by join, read-only
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail reports whether the employee can receive plannings by email.
func (e Employee) HasEmail() bool {
	return e.Email != nil && *e.Email != ""
}
