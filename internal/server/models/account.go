// Package models defines server-side data models persisted in the database.
package models

import "time"

// AccountID identifies an account. It is assigned by the data layer on
// registration and never reused.
type AccountID int64

type Account struct {
	ID           AccountID
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials is the registration and login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
