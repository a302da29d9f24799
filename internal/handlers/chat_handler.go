package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"chatapi/internal/constants"
	"chatapi/internal/db"
	"chatapi/internal/models"
	"chatapi/internal/utils"
)

// operation - разобранный и проверенный запрос, готовый к выполнению на соединении.
type operation struct {
	name string
	run  func(ctx context.Context, sess db.Session) (Response, error)
}

// Handle обрабатывает одно событие: проверка входных данных, одно соединение
// с БД на весь вызов, запросы, ответ. Соединение закрывается всегда.
// Ошибки БД не перехватываются и возвращаются вызывающему.
func (h *ChatHandler) Handle(ctx context.Context, event Event) (Response, error) {
	method := strings.ToUpper(strings.TrimSpace(event.HTTPMethod))
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodOptions {
		return preflightResponse(), nil
	}

	op, rejection := h.route(method, event)
	if op == nil {
		return rejection, nil
	}

	logger := loggerFrom(ctx).With("method", method, "action", op.name)

	sess, err := h.store.Acquire(ctx)
	if err != nil {
		logger.Error("Не удалось получить соединение с БД", "error", err)
		return Response{}, err
	}
	defer func() {
		if closeErr := sess.Close(); closeErr != nil {
			logger.Error("Ошибка закрытия соединения с БД", "error", closeErr)
		}
	}()

	resp, err := op.run(ctx, sess)
	if err != nil {
		logger.Error("Ошибка выполнения запроса",
			"error", err,
			"constraint_violation", db.IsConstraintViolation(err))
		return Response{}, err
	}
	logger.Debug("Запрос выполнен", "status", resp.StatusCode)
	return resp, nil
}

// route выбирает операцию по методу и action. Если запрос отклонён до
// обращения к БД, возвращается nil и готовый ответ (400 или 405).
func (h *ChatHandler) route(method string, event Event) (*operation, Response) {
	var (
		op  *operation
		err error
	)

	switch method {
	case http.MethodGet:
		action := event.query("action")
		if action == "" {
			action = constants.DEFAULT_GET_ACTION
		}
		switch action {
		case constants.ACTION_GET_MESSAGES:
			op, err = h.parseGetMessages(event)
		case constants.ACTION_GET_GROUPS:
			op, err = h.parseGetGroups(event)
		}

	case http.MethodPost:
		var env postEnvelope
		if decodeErr := decodeBody(event.Body, &env); decodeErr != nil {
			return nil, errorResponse(http.StatusBadRequest, constants.ERR_INVALID_BODY)
		}
		action := env.Action
		if action == "" {
			action = constants.DEFAULT_POST_ACTION
		}
		switch action {
		case constants.ACTION_SEND_MESSAGE:
			op, err = h.parseSendMessage(event)
		case constants.ACTION_CREATE_GROUP:
			op, err = h.parseCreateGroup(event)
		}

	case http.MethodPut:
		op, err = h.parseEditMessage(event)

	case http.MethodDelete:
		op, err = h.parseDeleteMessage(event)
	}

	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, errorResponse(http.StatusBadRequest, verr.Message)
		}
		return nil, errorResponse(http.StatusBadRequest, constants.ERR_INVALID_BODY)
	}
	if op == nil {
		return nil, errorResponse(http.StatusMethodNotAllowed, constants.ERR_METHOD_NOT_ALLOWED)
	}
	return op, Response{}
}

func (h *ChatHandler) parseGetMessages(event Event) (*operation, error) {
	var q getMessagesQuery
	var err error
	if q.ChatID, err = utils.ParseOptionalID("chat_id", event.query("chat_id")); err != nil {
		return nil, newValidationError("%v", err)
	}
	if q.GroupID, err = utils.ParseOptionalID("group_id", event.query("group_id")); err != nil {
		return nil, newValidationError("%v", err)
	}
	if err := h.check(&q, constants.ERR_CHAT_OR_GROUP_REQUIRED); err != nil {
		return nil, err
	}

	return &operation{
		name: constants.ACTION_GET_MESSAGES,
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			var (
				messages []models.Message
				err      error
			)
			// group_id имеет приоритет, если переданы оба. Значение 0 в строке
			// запроса - это переданный идентификатор, а не его отсутствие.
			if q.GroupID != nil {
				messages, err = sess.MessagesByGroup(ctx, *q.GroupID)
			} else {
				messages, err = sess.MessagesByChat(ctx, *q.ChatID)
			}
			if err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"messages": messages})
		},
	}, nil
}

func (h *ChatHandler) parseGetGroups(event Event) (*operation, error) {
	var q getGroupsQuery
	var err error
	if q.UserID, err = utils.ParseOptionalID("user_id", event.query("user_id")); err != nil {
		return nil, newValidationError("%v", err)
	}
	if err := h.check(&q, constants.ERR_USER_ID_REQUIRED); err != nil {
		return nil, err
	}

	return &operation{
		name: constants.ACTION_GET_GROUPS,
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			groups, err := sess.GroupsByUser(ctx, *q.UserID)
			if err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"groups": groups})
		},
	}, nil
}

func (h *ChatHandler) parseSendMessage(event Event) (*operation, error) {
	var req sendMessageRequest
	if err := decodeBody(event.Body, &req); err != nil {
		return nil, newValidationError(constants.ERR_INVALID_BODY)
	}
	if err := h.check(&req, constants.ERR_CHAT_OR_GROUP_REQUIRED); err != nil {
		return nil, err
	}

	msg := models.NewMessage{
		SenderID:      req.SenderID.ptr(),
		ImageURL:      req.ImageURL,
		AudioURL:      req.AudioURL,
		AudioDuration: req.AudioDuration.ptr(),
	}
	if req.Content != nil {
		msg.Content = *req.Content
	}
	// Сообщение принадлежит либо группе, либо личному чату; группа важнее.
	if groupID := req.GroupID.ptr(); groupID != nil {
		msg.GroupID = groupID
	} else {
		msg.ChatID = req.ChatID.ptr()
	}
	if msg.GroupID == nil && msg.ChatID == nil {
		return nil, newValidationError(constants.ERR_CHAT_OR_GROUP_REQUIRED)
	}

	return &operation{
		name: constants.ACTION_SEND_MESSAGE,
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			created, err := sess.InsertMessage(ctx, msg)
			if err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"message": created})
		},
	}, nil
}

func (h *ChatHandler) parseCreateGroup(event Event) (*operation, error) {
	var req createGroupRequest
	if err := decodeBody(event.Body, &req); err != nil {
		return nil, newValidationError(constants.ERR_INVALID_BODY)
	}
	if err := h.check(&req, constants.ERR_GROUP_FIELDS_REQUIRED); err != nil {
		return nil, err
	}

	group := models.NewGroup{
		Name:      *req.Name,
		CreatedBy: int64(*req.CreatedBy),
		Members:   make([]int64, 0, len(req.Members)),
	}
	for _, member := range req.Members {
		group.Members = append(group.Members, int64(member))
	}

	return &operation{
		name: constants.ACTION_CREATE_GROUP,
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			created, err := sess.CreateGroup(ctx, group)
			if err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"group": created})
		},
	}, nil
}

func (h *ChatHandler) parseEditMessage(event Event) (*operation, error) {
	var req editMessageRequest
	if err := decodeBody(event.Body, &req); err != nil {
		return nil, newValidationError(constants.ERR_INVALID_BODY)
	}
	if req.MessageID.ptr() == nil {
		return nil, newValidationError(constants.ERR_MESSAGE_ID_REQUIRED)
	}
	if err := h.check(&req, constants.ERR_CONTENT_REQUIRED); err != nil {
		return nil, err
	}
	messageID, content := int64(*req.MessageID), *req.Content

	return &operation{
		name: "edit_message",
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			updated, err := sess.UpdateMessageContent(ctx, messageID, content)
			if errors.Is(err, db.ErrNotFound) {
				return errorResponse(http.StatusNotFound, constants.ERR_MESSAGE_NOT_FOUND), nil
			}
			if err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"message": updated})
		},
	}, nil
}

func (h *ChatHandler) parseDeleteMessage(event Event) (*operation, error) {
	var req deleteMessageRequest
	id, err := utils.ParseOptionalID("message_id", event.query("message_id"))
	if err != nil {
		return nil, newValidationError("%v", err)
	}
	if id != nil {
		v := flexInt(*id)
		req.MessageID = &v
	} else if err := decodeBody(event.Body, &req); err != nil {
		return nil, newValidationError(constants.ERR_INVALID_BODY)
	}
	if err := h.check(&req, constants.ERR_MESSAGE_ID_REQUIRED); err != nil {
		return nil, err
	}
	messageID := int64(*req.MessageID)
	placeholder := h.deletedText

	return &operation{
		name: "delete_message",
		run: func(ctx context.Context, sess db.Session) (Response, error) {
			if err := sess.ReplaceMessageContent(ctx, messageID, placeholder); err != nil {
				return Response{}, err
			}
			return jsonResponse(http.StatusOK, map[string]interface{}{"success": true})
		},
	}, nil
}

func loggerFrom(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if ic, ok := InvocationFromContext(ctx); ok {
		logger = logger.With("request_id", ic.RequestID, "function", ic.FunctionName)
	}
	return logger
}
