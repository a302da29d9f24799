package constants

// Действия (поле action) для GET и POST запросов.
// Actions (the action field) for GET and POST requests.
const (
	ACTION_GET_MESSAGES = "get_messages"
	ACTION_GET_GROUPS   = "get_groups"
	ACTION_SEND_MESSAGE = "send_message"
	ACTION_CREATE_GROUP = "create_group"
)

// Действия по умолчанию, если action не передан.
const (
	DEFAULT_GET_ACTION  = ACTION_GET_MESSAGES
	DEFAULT_POST_ACTION = ACTION_SEND_MESSAGE
)

// Текст, которым заменяется содержимое удалённого сообщения.
// Placeholder content written over a soft-deleted message.
const DEFAULT_DELETED_MESSAGE_TEXT = "Сообщение удалено"

// Схема БД по умолчанию.
const DEFAULT_DB_SCHEMA = "chat"

// HTTP заголовки и значения CORS.
const (
	HEADER_CONTENT_TYPE  = "Content-Type"
	HEADER_ALLOW_ORIGIN  = "Access-Control-Allow-Origin"
	HEADER_ALLOW_METHODS = "Access-Control-Allow-Methods"
	HEADER_ALLOW_HEADERS = "Access-Control-Allow-Headers"
	HEADER_MAX_AGE       = "Access-Control-Max-Age"
	HEADER_REQUEST_ID    = "X-Request-Id"
	HEADER_USER_ID       = "X-User-Id"
	HEADER_AUTH_TOKEN    = "X-Auth-Token"

	CONTENT_TYPE_JSON  = "application/json"
	CORS_ALLOW_ORIGIN  = "*"
	CORS_ALLOW_METHODS = "GET, POST, PUT, DELETE, OPTIONS"
	CORS_ALLOW_HEADERS = "Content-Type, X-User-Id, X-Auth-Token"
	CORS_MAX_AGE       = "86400"
	CORS_MAX_AGE_SEC   = 86400
)

// Сообщения об ошибках, которые уходят клиенту.
const (
	ERR_CHAT_OR_GROUP_REQUIRED = "chat_id or group_id required"
	ERR_USER_ID_REQUIRED       = "user_id required"
	ERR_MESSAGE_ID_REQUIRED    = "message_id required"
	ERR_CONTENT_REQUIRED       = "content required"
	ERR_GROUP_FIELDS_REQUIRED  = "name and created_by required"
	ERR_INVALID_BODY           = "invalid JSON body"
	ERR_METHOD_NOT_ALLOWED     = "Method not allowed"
	ERR_MESSAGE_NOT_FOUND      = "message not found"
	ERR_INTERNAL               = "Internal server error"
)

// Допустимые значения APP_ENV.
const (
	ENV_DEV  = "dev"
	ENV_PROD = "prod"
	ENV_TEST = "test"
)
