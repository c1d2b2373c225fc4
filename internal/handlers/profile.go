package handlers

import (
	"net/http"
	"strconv"

	"smartq/internal/auth"
	"smartq/internal/response"
	"smartq/internal/storage"

	"github.com/gin-gonic/gin"
)

// UserQueueItem представляет активную запись пользователя вместе с данными очереди
type UserQueueItem struct {
	QueueID              string `json:"queue_id"`
	BusinessName         string `json:"business_name"`
	EntryID              string `json:"entry_id"`
	Service              string `json:"service"`
	Position             int    `json:"position"`
	Status               string `json:"status"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
	IsEmergency          bool   `json:"is_emergency"`
}

// GetUserQueuesHandler godoc
// @Summary		Получение списка своих очередей
// @Description	Активные записи пользователя во всех очередях
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}	UserQueueItem	"Записи пользователя"
// @Router			/profile/queues [get]
func (h *Handler) GetUserQueuesHandler(c *gin.Context) {
	userID := c.GetUint(auth.ContextUserID)

	entries := h.Queues.EntriesForCustomer(userID)
	result := make([]UserQueueItem, 0, len(entries))
	for _, e := range entries {
		item := UserQueueItem{
			QueueID:              e.QueueID,
			EntryID:              e.ID,
			Service:              e.Service,
			Position:             e.Position,
			Status:               string(e.Status),
			EstimatedWaitMinutes: e.EstimatedWaitMinutes,
			IsEmergency:          e.IsEmergency,
		}
		if q, err := h.Queues.Queue(e.QueueID); err == nil {
			item.BusinessName = q.BusinessName
		}
		result = append(result, item)
	}
	c.JSON(http.StatusOK, result)
}

// @Summary		Настройки пользователя
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	object					"Настройки (пустой объект, если не заданы)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка хранилища (STORE_ERROR)"
// @Router			/profile/preferences [get]
func (h *Handler) GetPreferencesHandler(c *gin.Context) {
	id := preferencesID(c)
	doc, ok, err := h.Docs.Get(c.Request.Context(), storage.CollectionUserPreferences, id)
	if err != nil {
		h.logger().Error("preferences load failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Ошибка при получении настроек",
		})
		return
	}
	if !ok {
		doc = storage.Document{"id": id}
	}
	c.JSON(http.StatusOK, doc)
}

// @Summary		Сохранение настроек пользователя
// @Description	Полностью заменяет документ настроек. Поле id задаётся сервером
// @Tags			profile
// @Accept			json
// @Produce		json
// @Param			preferences	body		object					true	"Настройки"
// @Security		BearerAuth
// @Success		200	{object}	object					"Сохранённые настройки"
// @Failure		400	{object}	response.ErrorResponse	"Тело не является JSON-объектом (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка хранилища (STORE_ERROR)"
// @Router			/profile/preferences [put]
func (h *Handler) PutPreferencesHandler(c *gin.Context) {
	var doc storage.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		if err == nil {
			err = storage.ErrInvalidDocument
		}
		validationFailed(c, err)
		return
	}
	id := preferencesID(c)
	doc["id"] = id

	saved, err := h.Docs.Upsert(c.Request.Context(), storage.CollectionUserPreferences, doc)
	if err != nil {
		h.logger().Error("preferences save failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "STORE_ERROR",
			Message: "Ошибка при сохранении настроек",
		})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func preferencesID(c *gin.Context) string {
	return strconv.FormatUint(uint64(c.GetUint(auth.ContextUserID)), 10)
}
