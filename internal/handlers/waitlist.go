package handlers

import (
	"net/http"
	"strings"
	"time"

	"smartq/internal/auth"
	"smartq/internal/models"
	"smartq/internal/waitlist"

	"github.com/gin-gonic/gin"
)

type JoinWaitlistRequest struct {
	QueueID            string                  `json:"queue_id" binding:"required"`
	Service            string                  `json:"service" binding:"required"`
	PreferredDate      time.Time               `json:"preferred_date"`
	PreferredTimeRange string                  `json:"preferred_time_range"`
	AutoBook           bool                    `json:"auto_book"`
	MaxWaitDays        int                     `json:"max_wait_days" binding:"gte=0,lte=30"`
	Priority           models.WaitlistPriority `json:"priority"`
}

type AutoBookRequest struct {
	AutoBook *bool `json:"auto_book" binding:"required"`
}

// @Summary		Мой лист ожидания
// @Tags			waitlist
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		models.WaitlistItem		"Элементы листа ожидания, новые первыми"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка хранилища (INTERNAL_ERROR)"
// @Router			/api/waitlist [get]
func (h *Handler) ListWaitlistHandler(c *gin.Context) {
	items, err := h.Waitlist.List(c.Request.Context(), c.GetUint(auth.ContextUserID))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// JoinWaitlistHandler ставит клиента в лист ожидания очереди
// @Summary		Встать в лист ожидания
// @Description	При auto_book место бронируется автоматически, когда в очереди освобождается слот
// @Tags			waitlist
// @Accept			json
// @Produce		json
// @Param			item	body		JoinWaitlistRequest		true	"Параметры ожидания"
// @Security		BearerAuth
// @Success		201	{object}	models.WaitlistItem		"Ожидание создано"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Уже в листе ожидания (ALREADY_WAITING)"
// @Router			/api/waitlist [post]
func (h *Handler) JoinWaitlistHandler(c *gin.Context) {
	var req JoinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	userID := c.GetUint(auth.ContextUserID)
	name := ""
	if user, err := h.Users.ByID(c.Request.Context(), userID); err == nil {
		name = strings.TrimSpace(user.Name + " " + user.Surname)
	}

	item, err := h.Waitlist.Join(c.Request.Context(), waitlist.JoinRequest{
		CustomerID:         userID,
		CustomerName:       name,
		QueueID:            req.QueueID,
		Service:            req.Service,
		PreferredDate:      req.PreferredDate,
		PreferredTimeRange: req.PreferredTimeRange,
		AutoBook:           req.AutoBook,
		MaxWaitDays:        req.MaxWaitDays,
		Priority:           req.Priority,
	})
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary		Выйти из листа ожидания
// @Tags			waitlist
// @Produce		json
// @Param			id	path		string	true	"ID элемента"
// @Security		BearerAuth
// @Success		200	{object}	models.WaitlistItem		"Ожидание отменено"
// @Failure		403	{object}	response.ErrorResponse	"Чужой элемент (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Элемент не найден (WAITLIST_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Ожидание уже завершено (WAITLIST_NOT_ACTIVE)"
// @Router			/api/waitlist/{id} [delete]
func (h *Handler) CancelWaitlistHandler(c *gin.Context) {
	item, err := h.Waitlist.Cancel(c.Request.Context(), c.Param("id"), c.GetUint(auth.ContextUserID))
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary		Автобронирование
// @Description	Включает или выключает автоматическую запись при освобождении места
// @Tags			waitlist
// @Accept			json
// @Produce		json
// @Param			id			path		string			true	"ID элемента"
// @Param			auto_book	body		AutoBookRequest	true	"Флаг"
// @Security		BearerAuth
// @Success		200	{object}	models.WaitlistItem		"Элемент обновлён"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Чужой элемент (NOT_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Элемент не найден (WAITLIST_NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Ожидание уже завершено (WAITLIST_NOT_ACTIVE)"
// @Router			/api/waitlist/{id}/auto-book [patch]
func (h *Handler) SetAutoBookHandler(c *gin.Context) {
	var req AutoBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}
	item, err := h.Waitlist.SetAutoBook(c.Request.Context(), c.Param("id"), c.GetUint(auth.ContextUserID), *req.AutoBook)
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
