package model

import "time"

// TodoModel mirrors the 'todos' table. Soft delete is an explicit flag rather
// than GORM's DeletedAt convention: deleted rows must stay queryable for the
// history view, ordered by the updated_at set at deletion time.
type TodoModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Text      string `gorm:"type:text;not null"`
	Priority  string `gorm:"type:varchar(10);not null;default:medium"`
	Completed bool   `gorm:"not null;default:false"`
	IsDeleted bool   `gorm:"not null;default:false"`
	OwnerID   int64  `gorm:"not null;index:idx_todos_owner"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}
