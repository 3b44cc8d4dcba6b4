// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the account entity. The password digest never leaves the auth
// service; it is excluded from every JSON response.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
}
