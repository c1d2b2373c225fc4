package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"smartq/internal/auth"
	"smartq/internal/queue"
	"smartq/internal/response"
	"smartq/internal/storage"
	"smartq/internal/waitlist"
	"smartq/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler собирает зависимости HTTP-обработчиков.
type Handler struct {
	Queues      *queue.Service
	Waitlist    *waitlist.Manager
	Users       storage.UserRepository
	Revoked     storage.TokenRevoker
	Docs        storage.DocumentStore
	Hub         *ws.Hub
	Tokens      *auth.Manager
	AdminEmails []string
	AdminToken  string // пустой токен запрещает регистрацию администраторов
	Log         *slog.Logger
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *Handler) isAdminEmail(email string) bool {
	for _, e := range h.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

func (h *Handler) validAdminToken(token string) bool {
	if h.AdminToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.AdminToken), []byte(token)) == 1
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

// writeQueueError переводит ошибки очереди и листа ожидания в HTTP-ответ.
func (h *Handler) writeQueueError(c *gin.Context, err error) {
	var verr *queue.ValidationError
	var opErr *queue.OperationError

	switch {
	case errors.As(err, &verr):
		validationFailed(c, err)
	case errors.Is(err, queue.ErrQueueNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Code: "QUEUE_NOT_FOUND", Message: "Очередь не найдена"})
	case errors.Is(err, queue.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Code: "ENTRY_NOT_FOUND", Message: "Запись в очереди не найдена"})
	case errors.Is(err, queue.ErrQueueExists):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "QUEUE_EXISTS", Message: "Очередь уже существует"})
	case errors.Is(err, queue.ErrEntryExists):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "ENTRY_EXISTS", Message: "Запись уже существует"})
	case errors.Is(err, queue.ErrEntryTerminal):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "ENTRY_TERMINAL", Message: "Запись уже завершена"})
	case errors.Is(err, queue.ErrNotEmergency):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "NOT_EMERGENCY", Message: "Экстренный запрос не поступал"})
	case errors.Is(err, queue.ErrInvalidTransition):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "INVALID_TRANSITION", Message: "Недопустимая смена статуса", Details: err.Error()})
	case errors.Is(err, queue.ErrNotOwner):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Code: "NOT_OWNER", Message: "Запись принадлежит другому клиенту"})
	case errors.Is(err, waitlist.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Code: "WAITLIST_NOT_FOUND", Message: "Элемент листа ожидания не найден"})
	case errors.Is(err, waitlist.ErrAlreadyWaiting):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "ALREADY_WAITING", Message: "Вы уже в листе ожидания на эту услугу"})
	case errors.Is(err, waitlist.ErrNotActive):
		c.JSON(http.StatusConflict, response.ErrorResponse{Code: "WAITLIST_NOT_ACTIVE", Message: "Ожидание уже завершено"})
	case errors.As(err, &opErr):
		h.logger().Error("backend operation failed", "op", opErr.Op, "error", opErr.Err)
		c.JSON(http.StatusBadGateway, response.ErrorResponse{Code: "BACKEND_ERROR", Message: "Ошибка внешнего хранилища", Details: opErr.Op})
	default:
		h.logger().Error("queue operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Code: "INTERNAL_ERROR", Message: "Внутренняя ошибка сервера"})
	}
}
