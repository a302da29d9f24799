package models

import "time"

// Message - сообщение в личном чате или в группе.
// Ровно одно из полей ChatID / GroupID заполнено.
type Message struct {
	ID            int64      `db:"id" json:"id"`
	SenderID      NullInt64  `db:"sender_id" json:"sender_id"`
	Content       NullString `db:"content" json:"content"`
	ChatID        NullInt64  `db:"chat_id" json:"chat_id"`
	GroupID       NullInt64  `db:"group_id" json:"group_id"`
	ImageURL      NullString `db:"image_url" json:"image_url"`
	AudioURL      NullString `db:"audio_url" json:"audio_url"`
	AudioDuration NullInt64  `db:"audio_duration" json:"audio_duration"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"` // Назначается БД, не меняется
}

// IsGroupMessage сообщает, относится ли сообщение к группе.
func (m Message) IsGroupMessage() bool {
	return m.GroupID.Valid
}

// NewMessage - данные для вставки нового сообщения.
type NewMessage struct {
	SenderID      *int64
	Content       string
	ChatID        *int64
	GroupID       *int64
	ImageURL      *string
	AudioURL      *string
	AudioDuration *int64
}
