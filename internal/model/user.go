package model

import "time"

// User is a back-office operator account.  Accounts are provisioned in the
// database; the API only authenticates them and issues access tokens.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash (bcrypt)
	Role         string    `json:"role"`       // users.role (ADMIN)
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}
