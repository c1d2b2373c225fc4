package handlers

import (
	"net/http"

	"smartq/internal/auth"
	"smartq/internal/models"
	"smartq/internal/response"

	"github.com/gin-gonic/gin"
)

// ListQueuesHandler возвращает все очереди
// @Summary		Список очередей
// @Description	Возвращает очереди всех бизнесов
// @Tags			queue
// @Produce		json
// @Success		200	{array}	models.Queue	"Очереди"
// @Router			/api/queues [get]
func (h *Handler) ListQueuesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Queues.Queues())
}

// GetQueueStatusHandler обрабатывает запрос на получение статуса очереди
// @Summary		Получение статуса очереди
// @Description	Возвращает информацию об очереди и активных записях в порядке позиций
// @Tags			queue
// @Produce		json
// @Param			id	path		string	true	"ID очереди"
// @Success		200	{object}	response.QueueStatusResponse	"Успешное получение статуса очереди"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Router			/api/queues/{id}/status [get]
func (h *Handler) GetQueueStatusHandler(c *gin.Context) {
	queueID := c.Param("id")
	q, err := h.Queues.Queue(queueID)
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	entries, err := h.Queues.List(queueID)
	if err != nil {
		h.writeQueueError(c, err)
		return
	}

	subscribers := 0
	if h.Hub != nil {
		subscribers = h.Hub.Subscribers(queueID)
	}
	c.JSON(http.StatusOK, response.QueueStatusResponse{
		QueueID:      q.ID,
		BusinessName: q.BusinessName,
		Category:     q.Category,
		IsActive:     q.IsActive,
		Entries:      entries,
		Subscribers:  subscribers,
	})
}

// QueueWebSocketHandler подписывает клиента на события очереди
// @Summary		Подписка на очередь
// @Description	WebSocket: события entry_enqueued, status_changed, position_changed, emergency_*
// @Tags			queue
// @Param			id	path	string	true	"ID очереди"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Router			/api/queues/{id}/ws [get]
func (h *Handler) QueueWebSocketHandler(c *gin.Context) {
	queueID := c.Param("id")
	if _, err := h.Queues.Queue(queueID); err != nil {
		h.writeQueueError(c, err)
		return
	}
	h.Hub.ServeQueue(c, queueID)
}

// RefreshQueueHandler перечитывает очередь из хранилища
// @Summary		Обновление очереди
// @Description	Загружает очередь из хранилища и заменяет состояние в памяти
// @Tags			queue
// @Produce		json
// @Param			id	path		string	true	"ID очереди"
// @Security		BearerAuth
// @Success		200	{array}		models.QueueEntry		"Активные записи"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		502	{object}	response.ErrorResponse	"Ошибка хранилища (BACKEND_ERROR)"
// @Router			/api/queues/{id}/refresh [post]
func (h *Handler) RefreshQueueHandler(c *gin.Context) {
	entries, err := h.Queues.Refresh(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RequestEmergencyHandler обрабатывает кнопку экстренного продвижения у клиента
// @Summary		Экстренный запрос
// @Description	Помечает запись как экстренную; решение принимает администратор
// @Tags			queue
// @Produce		json
// @Param			id		path		string	true	"ID очереди"
// @Param			entryId	path		string	true	"ID записи"
// @Security		BearerAuth
// @Success		200	{object}	response.EntryResponse	"Запрос отправлен"
// @Failure		403	{object}	response.ErrorResponse	"Чужая запись (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь или запись не найдена (QUEUE_NOT_FOUND, ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Запись завершена (ENTRY_TERMINAL)"
// @Router			/api/queues/{id}/entries/{entryId}/emergency [post]
func (h *Handler) RequestEmergencyHandler(c *gin.Context) {
	customerID := c.GetUint(auth.ContextUserID)
	if c.GetString(auth.ContextRole) == models.RoleAdmin {
		customerID = 0
	}
	entry, err := h.Queues.RequestEmergency(c.Request.Context(), c.Param("id"), c.Param("entryId"), customerID)
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.EntryResponse{Message: "Экстренный запрос отправлен", Entry: entry})
}
