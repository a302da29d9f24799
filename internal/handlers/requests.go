package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// flexInt - идентификатор из JSON. Принимает число или строку с числом,
// значение должно быть целым и помещаться в int64.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	v, err := parseJSONNumber(b, false)
	if err != nil {
		return err
	}
	*f = flexInt(v)
	return nil
}

// ptr возвращает nil для отсутствующего или нулевого значения.
func (f *flexInt) ptr() *int64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := int64(*f)
	return &v
}

// flexSeconds - длительность в секундах. В отличие от flexInt, дробные
// значения округляются.
type flexSeconds int64

func (f *flexSeconds) UnmarshalJSON(b []byte) error {
	v, err := parseJSONNumber(b, true)
	if err != nil {
		return err
	}
	*f = flexSeconds(v)
	return nil
}

func (f *flexSeconds) ptr() *int64 {
	if f == nil || *f == 0 {
		return nil
	}
	v := int64(*f)
	return &v
}

// minInt64Float и maxInt64Float - границы int64, точно представимые в float64.
// Верхняя граница не входит в диапазон.
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

// parseJSONNumber разбирает число или строку с числом. null и пустая строка дают 0.
func parseJSONNumber(b []byte, round bool) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%s is out of range", s)
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fv) || math.IsInf(fv, 0) {
		return 0, fmt.Errorf("%s is not an integer", s)
	}
	if round {
		fv = math.Round(fv)
	} else if fv != math.Trunc(fv) {
		return 0, fmt.Errorf("%s is not an integer", s)
	}
	if fv < minInt64Float || fv >= maxInt64Float {
		return 0, fmt.Errorf("%s is out of range", s)
	}
	return int64(fv), nil
}

// postEnvelope - общая часть тела POST запроса.
type postEnvelope struct {
	Action string `json:"action"`
}

type getMessagesQuery struct {
	ChatID  *int64 `validate:"required_without=GroupID"`
	GroupID *int64
}

type getGroupsQuery struct {
	UserID *int64 `validate:"required"`
}

type sendMessageRequest struct {
	SenderID      *flexInt     `json:"sender_id"`
	Content       *string      `json:"content"`
	ChatID        *flexInt     `json:"chat_id" validate:"required_without=GroupID"`
	GroupID       *flexInt     `json:"group_id"`
	ImageURL      *string      `json:"image_url"`
	AudioURL      *string      `json:"audio_url"`
	AudioDuration *flexSeconds `json:"audio_duration"`
}

type createGroupRequest struct {
	Name      *string   `json:"name" validate:"required"`
	CreatedBy *flexInt  `json:"created_by" validate:"required"`
	Members   []flexInt `json:"members"`
}

type editMessageRequest struct {
	MessageID *flexInt `json:"message_id" validate:"required"`
	Content   *string  `json:"content" validate:"required"`
}

type deleteMessageRequest struct {
	MessageID *flexInt `json:"message_id" validate:"required"`
}

// ValidationError - ошибка входных данных, отдаётся клиенту как 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// decodeBody разбирает тело запроса. Пустое тело равно пустому объекту,
// данные после первого JSON значения считаются ошибкой.
func decodeBody(body string, dst interface{}) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || trimmed == "null" {
		trimmed = "{}"
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// check прогоняет validator по структуре. Любое нарушение превращается
// в ValidationError с заранее заданным текстом.
func (h *ChatHandler) check(req interface{}, message string) error {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &ValidationError{Message: message}
	}
	return err
}
