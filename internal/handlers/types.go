package handlers

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"chatapi/internal/config"
	"chatapi/internal/db"
)

// HandlerDependencies содержит все зависимости, необходимые для обработчика чата.
// HandlerDependencies contains all dependencies required by the chat handler.
type HandlerDependencies struct {
	Config *config.Config
	Store  db.Connector
}

// ChatHandler разбирает событие, выполняет запросы к БД и формирует ответ.
type ChatHandler struct {
	store       db.Connector
	deletedText string
	validate    *validator.Validate
}

// NewChatHandler создает новый экземпляр ChatHandler.
// NewChatHandler creates a new instance of ChatHandler.
func NewChatHandler(deps HandlerDependencies) *ChatHandler {
	if deps.Config == nil || deps.Store == nil {
		// Без конфигурации и хранилища обработчик работать не может.
		panic("Не все зависимости для ChatHandler были предоставлены.")
	}
	if deps.Config.DeletedMessageText == "" {
		slog.Warn("DeletedMessageText пуст, удалённые сообщения будут иметь пустой текст")
	}
	return &ChatHandler{
		store:       deps.Store,
		deletedText: deps.Config.DeletedMessageText,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}
