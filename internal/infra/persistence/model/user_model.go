// Package model holds the GORM persistence models mirroring the database tables.
package model

import "time"

// UserModel mirrors the 'users' table. The UNIQUE constraint on username is
// the arbiter for signup conflicts; see the initial migration.
type UserModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Username       string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	PasswordDigest string `gorm:"type:char(64);not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
