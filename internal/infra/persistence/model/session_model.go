package model

import "time"

// SessionModel mirrors the 'sessions' table backing the cookie session
// boundary. Tokens are stored hashed only.
type SessionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index:idx_sessions_user"`
	TokenHash string    `gorm:"type:char(64);not null;uniqueIndex:idx_sessions_token_hash"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
