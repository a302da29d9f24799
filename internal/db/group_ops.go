package db

import (
	"context"
	"fmt"
	"log/slog"

	"chatapi/internal/models"
)

// GroupsByUser возвращает группы, в которых состоит пользователь, начиная с новых.
func (s *pgSession) GroupsByUser(ctx context.Context, userID int64) ([]models.Group, error) {
	groups := []models.Group{}
	if err := s.conn.SelectContext(ctx, &groups, s.q.groupsByUser, userID); err != nil {
		slog.Error("GroupsByUser: ошибка получения групп", "user_id", userID, "error", err)
		return nil, fmt.Errorf("получение групп пользователя %d: %w", userID, err)
	}
	return groups, nil
}

// CreateGroup создаёт группу и по одной записи участника на каждый ID в одной транзакции.
// При любой ошибке транзакция откатывается целиком.
func (s *pgSession) CreateGroup(ctx context.Context, group models.NewGroup) (created models.Group, err error) {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return models.Group{}, fmt.Errorf("ошибка начала транзакции создания группы: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			slog.Warn("Откат транзакции создания группы", "error", err)
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Error("Ошибка отката транзакции", "error", rbErr)
			}
		}
	}()

	if err = tx.GetContext(ctx, &created, s.q.insertGroup, group.Name, group.CreatedBy); err != nil {
		return models.Group{}, fmt.Errorf("добавление группы: %w", describePQError(err))
	}

	for _, memberID := range group.Members {
		if _, err = tx.ExecContext(ctx, s.q.insertMember, created.ID, memberID); err != nil {
			return models.Group{}, fmt.Errorf("добавление участника %d в группу %d: %w", memberID, created.ID, describePQError(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return models.Group{}, fmt.Errorf("ошибка фиксации транзакции создания группы: %w", err)
	}

	slog.Info("Группа создана", "group_id", created.ID, "members", len(group.Members))
	return created, nil
}
