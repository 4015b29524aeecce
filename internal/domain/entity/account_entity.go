package entity

import (
	"time"
)

// Account is the aggregate root for the account directory.
// Password holds the bcrypt hash and is never exposed outside the application layer.
type Account struct {
	ID        string
	Email     string
	Password  string
	Roles     []Role
	Name      string
	Phone     string
	GroupID   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns a copy with the password hash stripped.
func (a *Account) Public() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Password = ""
	cp.Roles = append([]Role(nil), a.Roles...)
	return &cp
}
