package handlers

import (
	"net/http"

	"smartq/internal/models"
	"smartq/internal/response"

	"github.com/gin-gonic/gin"
)

type CreateQueueRequest struct {
	ID           string `json:"id" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	Category     string `json:"category"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// @Summary		Создание очереди
// @Description	Создаёт очередь бизнеса. По умолчанию очередь активна
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			queue	body		CreateQueueRequest		true	"Очередь"
// @Security		BearerAuth
// @Success		201	{object}	models.Queue			"Очередь создана"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Недостаточно прав (FORBIDDEN)"
// @Failure		409	{object}	response.ErrorResponse	"Очередь уже существует (QUEUE_EXISTS)"
// @Router			/api/admin/queues [post]
func (h *Handler) CreateQueueHandler(c *gin.Context) {
	var req CreateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	q, err := h.Queues.CreateQueue(c.Request.Context(), models.Queue{
		ID:           req.ID,
		BusinessName: req.BusinessName,
		Category:     req.Category,
		IsActive:     active,
	})
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// @Summary		Смена статуса записи
// @Description	Ручной перевод записи по графу статусов. Завершающий статус убирает запись из нумерации
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			id		path		string				true	"ID очереди"
// @Param			entryId	path		string				true	"ID записи"
// @Param			status	body		UpdateStatusRequest	true	"Новый статус"
// @Security		BearerAuth
// @Success		200	{object}	response.EntryResponse	"Статус изменён"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь или запись не найдена (QUEUE_NOT_FOUND, ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Недопустимый переход (INVALID_TRANSITION, ENTRY_TERMINAL)"
// @Router			/api/admin/queues/{id}/entries/{entryId}/status [patch]
func (h *Handler) UpdateEntryStatusHandler(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	entry, err := h.Queues.UpdateStatus(c.Request.Context(), c.Param("id"), c.Param("entryId"), req.Status)
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.EntryResponse{Message: "Статус записи изменён", Entry: entry})
}

// @Summary		Одобрение экстренного запроса
// @Description	Переносит запись на первую позицию, остальные сдвигаются на одну
// @Tags			admin
// @Produce		json
// @Param			id		path		string	true	"ID очереди"
// @Param			entryId	path		string	true	"ID записи"
// @Security		BearerAuth
// @Success		200	{array}		models.QueueEntry		"Очередь после перестановки"
// @Failure		404	{object}	response.ErrorResponse	"Очередь или запись не найдена (QUEUE_NOT_FOUND, ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Запрос не поступал (NOT_EMERGENCY) или запись завершена (ENTRY_TERMINAL)"
// @Router			/api/admin/queues/{id}/entries/{entryId}/emergency/approve [post]
func (h *Handler) ApproveEmergencyHandler(c *gin.Context) {
	entries, err := h.Queues.ApproveEmergency(c.Request.Context(), c.Param("id"), c.Param("entryId"))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// @Summary		Отклонение экстренного запроса
// @Description	Очередь не меняется, флаг экстренности сохраняется
// @Tags			admin
// @Produce		json
// @Param			id		path		string	true	"ID очереди"
// @Param			entryId	path		string	true	"ID записи"
// @Security		BearerAuth
// @Success		200	{object}	response.EntryResponse	"Запрос отклонён"
// @Failure		404	{object}	response.ErrorResponse	"Очередь или запись не найдена (QUEUE_NOT_FOUND, ENTRY_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Запрос не поступал (NOT_EMERGENCY)"
// @Router			/api/admin/queues/{id}/entries/{entryId}/emergency/deny [post]
func (h *Handler) DenyEmergencyHandler(c *gin.Context) {
	entry, err := h.Queues.DenyEmergency(c.Request.Context(), c.Param("id"), c.Param("entryId"))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.EntryResponse{Message: "Экстренный запрос отклонён", Entry: entry})
}

// @Summary		Статистика очереди
// @Tags			admin
// @Produce		json
// @Param			id	path		string	true	"ID очереди"
// @Security		BearerAuth
// @Success		200	{object}	queue.QueueStats		"Статистика"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Router			/api/admin/queues/{id}/stats [get]
func (h *Handler) QueueStatsHandler(c *gin.Context) {
	st, err := h.Queues.Stats(c.Param("id"))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary		Ручной тик симуляции
// @Description	Выполняет один шаг уменьшения ожидания во всех очередях
// @Tags			admin
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.TickResponse	"Число изменённых записей"
// @Router			/api/admin/tick [post]
func (h *Handler) TriggerTickHandler(c *gin.Context) {
	changes := h.Queues.Tick(c.Request.Context())
	c.JSON(http.StatusOK, response.TickResponse{Changes: len(changes)})
}
