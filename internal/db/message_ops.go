package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"chatapi/internal/models"
)

// MessagesByChat возвращает все сообщения личного чата в порядке создания.
func (s *pgSession) MessagesByChat(ctx context.Context, chatID int64) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.conn.SelectContext(ctx, &messages, s.q.messagesByChat, chatID); err != nil {
		slog.Error("MessagesByChat: ошибка получения сообщений", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("получение сообщений чата %d: %w", chatID, err)
	}
	return messages, nil
}

// MessagesByGroup возвращает все сообщения группы в порядке создания.
func (s *pgSession) MessagesByGroup(ctx context.Context, groupID int64) ([]models.Message, error) {
	messages := []models.Message{}
	if err := s.conn.SelectContext(ctx, &messages, s.q.messagesByGroup, groupID); err != nil {
		slog.Error("MessagesByGroup: ошибка получения сообщений", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("получение сообщений группы %d: %w", groupID, err)
	}
	return messages, nil
}

// InsertMessage добавляет сообщение и возвращает вставленную строку.
// created_at назначает база данных.
func (s *pgSession) InsertMessage(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	var created models.Message
	err := s.conn.GetContext(ctx, &created, s.q.insertMessage,
		msg.SenderID,
		msg.Content,
		msg.ChatID,
		msg.GroupID,
		msg.ImageURL,
		msg.AudioURL,
		msg.AudioDuration,
	)
	if err != nil {
		slog.Error("InsertMessage: ошибка добавления сообщения", "error", describePQError(err))
		return models.Message{}, fmt.Errorf("добавление сообщения: %w", err)
	}
	slog.Info("Сообщение добавлено", "message_id", created.ID, "group", created.IsGroupMessage())
	return created, nil
}

// UpdateMessageContent меняет только текст сообщения и возвращает обновлённую строку.
func (s *pgSession) UpdateMessageContent(ctx context.Context, messageID int64, content string) (models.Message, error) {
	var updated models.Message
	err := s.conn.GetContext(ctx, &updated, s.q.updateContent, content, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Message{}, fmt.Errorf("сообщение %d: %w", messageID, ErrNotFound)
		}
		slog.Error("UpdateMessageContent: ошибка обновления сообщения", "message_id", messageID, "error", describePQError(err))
		return models.Message{}, fmt.Errorf("обновление сообщения %d: %w", messageID, err)
	}
	return updated, nil
}

// ReplaceMessageContent перезаписывает текст сообщения, строка при этом остаётся в таблице.
// Используется для мягкого удаления.
func (s *pgSession) ReplaceMessageContent(ctx context.Context, messageID int64, content string) error {
	res, err := s.conn.ExecContext(ctx, s.q.replaceContent, content, messageID)
	if err != nil {
		slog.Error("ReplaceMessageContent: ошибка обновления сообщения", "message_id", messageID, "error", describePQError(err))
		return fmt.Errorf("мягкое удаление сообщения %d: %w", messageID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.Warn("ReplaceMessageContent: сообщение не найдено", "message_id", messageID)
	}
	return nil
}
