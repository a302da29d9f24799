package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"chatapi/internal/db"
	"chatapi/internal/models"
)

// memoryStore - хранилище в памяти, повторяющее поведение таблиц чата.
type memoryStore struct {
	mu        sync.Mutex
	now       time.Time
	messages  []models.Message
	groups    []models.Group
	members   []models.GroupMember
	acquired  int
	closed    int
	failWith  error // возвращается любой операцией сессии
	failAfter int   // CreateGroup падает на участнике с этим номером (1-based), 0 - не падает
}

func newMemoryStore() *memoryStore {
	return &memoryStore{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *memoryStore) Acquire(ctx context.Context) (db.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquired++
	return &memorySession{store: m}, nil
}

func (m *memoryStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memoryStore) message(id int64) (models.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return models.Message{}, false
}

func (m *memoryStore) membersOf(groupID int64) []models.GroupMember {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GroupMember
	for _, gm := range m.members {
		if gm.GroupID == groupID {
			out = append(out, gm)
		}
	}
	return out
}

type memorySession struct {
	store *memoryStore
}

func (s *memorySession) Close() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.closed++
	return nil
}

func (s *memorySession) filterMessages(match func(models.Message) bool) []models.Message {
	out := []models.Message{}
	for _, msg := range s.store.messages {
		if match(msg) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *memorySession) MessagesByChat(ctx context.Context, chatID int64) ([]models.Message, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.failWith != nil {
		return nil, s.store.failWith
	}
	return s.filterMessages(func(m models.Message) bool {
		return m.ChatID.Valid && m.ChatID.Int64 == chatID
	}), nil
}

func (s *memorySession) MessagesByGroup(ctx context.Context, groupID int64) ([]models.Message, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.failWith != nil {
		return nil, s.store.failWith
	}
	return s.filterMessages(func(m models.Message) bool {
		return m.GroupID.Valid && m.GroupID.Int64 == groupID
	}), nil
}

func (s *memorySession) GroupsByUser(ctx context.Context, userID int64) ([]models.Group, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.failWith != nil {
		return nil, s.store.failWith
	}
	out := []models.Group{}
	for _, g := range s.store.groups {
		for _, gm := range s.store.members {
			if gm.GroupID == g.ID && gm.UserID == userID {
				out = append(out, g)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memorySession) InsertMessage(ctx context.Context, msg models.NewMessage) (models.Message, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.failWith != nil {
		return models.Message{}, s.store.failWith
	}
	created := models.Message{
		ID:            int64(len(s.store.messages) + 1),
		SenderID:      models.NewNullInt64(msg.SenderID),
		Content:       models.NullString{NullString: sql.NullString{String: msg.Content, Valid: true}},
		ChatID:        models.NewNullInt64(msg.ChatID),
		GroupID:       models.NewNullInt64(msg.GroupID),
		ImageURL:      models.NewNullString(msg.ImageURL),
		AudioURL:      models.NewNullString(msg.AudioURL),
		AudioDuration: models.NewNullInt64(msg.AudioDuration),
		CreatedAt:     s.store.tick(),
	}
	s.store.messages = append(s.store.messages, created)
	return created, nil
}

func (s *memorySession) CreateGroup(ctx context.Context, group models.NewGroup) (models.Group, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.failWith != nil {
		return models.Group{}, s.store.failWith
	}
	created := models.Group{
		ID:        int64(len(s.store.groups) + 1),
		Name:      group.Name,
		CreatedBy: group.CreatedBy,
		CreatedAt: s.store.tick(),
	}
	pending := make([]models.GroupMember, 0, len(group.Members))
	for i, userID := range group.Members {
		if s.store.failAfter > 0 && i+1 == s.store.failAfter {
			// транзакция откатывается: ничего не сохраняем
			return models.Group{}, fmt.Errorf("insert member %d: %w", userID, errMemberInsert)
		}
		pending = append(pending, models.GroupMember{GroupID: created.ID, UserID: userID})
	}
	s.store.groups = append(s.store.groups, created)
	s.store.members = append(s.store.members, pending...)
	return created, nil
}

func (s *memorySession) UpdateMessageContent(ctx context.Context, messageID int64, content string) (models.Message, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.messages {
		if s.store.messages[i].ID == messageID {
			s.store.messages[i].Content = models.NullString{NullString: sql.NullString{String: content, Valid: true}}
			return s.store.messages[i], nil
		}
	}
	return models.Message{}, db.ErrNotFound
}

func (s *memorySession) ReplaceMessageContent(ctx context.Context, messageID int64, content string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for i := range s.store.messages {
		if s.store.messages[i].ID == messageID {
			s.store.messages[i].Content = models.NullString{NullString: sql.NullString{String: content, Valid: true}}
		}
	}
	return nil
}

var errMemberInsert = errors.New("foreign key violation")

// failingConnector не может выдать соединение.
type failingConnector struct {
	err error
}

func (f failingConnector) Acquire(ctx context.Context) (db.Session, error) {
	return nil, f.err
}
