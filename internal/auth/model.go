package auth

import "time"

// User is the domain entity. At most one user holds the master role.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsMaster     bool      `json:"is_master"`
	CreatedAt    time.Time `json:"created_at"`
}
