// Файл: internal/db/db.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"chatapi/internal/config"
	"chatapi/internal/models"
	"chatapi/internal/utils"
)

// ErrNotFound возвращается, когда запрос не затронул ни одной строки.
var ErrNotFound = errors.New("запись не найдена")

// Session - операции чата на одном выделенном соединении.
// Session is the set of chat operations bound to one dedicated connection.
type Session interface {
	MessagesByChat(ctx context.Context, chatID int64) ([]models.Message, error)
	MessagesByGroup(ctx context.Context, groupID int64) ([]models.Message, error)
	GroupsByUser(ctx context.Context, userID int64) ([]models.Group, error)
	InsertMessage(ctx context.Context, msg models.NewMessage) (models.Message, error)
	CreateGroup(ctx context.Context, group models.NewGroup) (models.Group, error)
	UpdateMessageContent(ctx context.Context, messageID int64, content string) (models.Message, error)
	ReplaceMessageContent(ctx context.Context, messageID int64, content string) error
	Close() error
}

// Connector выдаёт по одному соединению на вызов функции.
type Connector interface {
	Acquire(ctx context.Context) (Session, error)
}

// Store - пул соединений с PostgreSQL и схема, в которой лежат таблицы чата.
type Store struct {
	db     *sqlx.DB
	schema string
}

// Open открывает соединение с базой данных по настройкам из конфигурации.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	dbx, err := sqlx.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	dbx.SetMaxOpenConns(cfg.DBMaxOpenConns)
	dbx.SetMaxIdleConns(cfg.DBMaxIdleConns)
	dbx.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := dbx.PingContext(pingCtx); err != nil {
		if closeErr := dbx.Close(); closeErr != nil {
			slog.Error("Ошибка закрытия соединения после неудачного ping", "error", closeErr)
		}
		return nil, fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}

	store, err := NewStore(dbx, cfg.DBSchema)
	if err != nil {
		dbx.Close()
		return nil, err
	}

	slog.Info("Успешное подключение к базе данных.", "schema", cfg.DBSchema)
	return store, nil
}

// NewStore оборачивает готовое подключение. Имя схемы проверяется,
// так как оно подставляется в текст запросов.
func NewStore(dbx *sqlx.DB, schema string) (*Store, error) {
	if dbx == nil {
		return nil, errors.New("подключение к базе данных не инициализировано")
	}
	if !utils.IsValidIdentifier(schema) {
		return nil, fmt.Errorf("недопустимое имя схемы %q", schema)
	}
	return &Store{db: dbx, schema: schema}, nil
}

// Acquire берёт из пула одно соединение. Вызывающий обязан вызвать Close.
func (s *Store) Acquire(ctx context.Context) (Session, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить соединение с базой данных: %w", err)
	}
	return &pgSession{conn: conn, q: newQueries(s.schema)}, nil
}

// Ping проверяет доступность базы данных.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		slog.Error("Ошибка закрытия соединения с базой данных", "error", err)
	} else {
		slog.Info("Соединение с базой данных закрыто.")
	}
}

// pgSession реализует Session поверх одного *sqlx.Conn.
type pgSession struct {
	conn *sqlx.Conn
	q    queries
}

func (s *pgSession) Close() error {
	return s.conn.Close()
}
