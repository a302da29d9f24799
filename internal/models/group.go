package models

import "time"

// Group - именованный групповой чат.
type Group struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedBy int64     `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GroupMember - участник группы. Создаётся только вместе с группой.
type GroupMember struct {
	GroupID int64 `db:"group_id" json:"group_id"`
	UserID  int64 `db:"user_id" json:"user_id"`
}

// NewGroup - данные для создания группы вместе с участниками.
type NewGroup struct {
	Name      string
	CreatedBy int64
	Members   []int64
}
