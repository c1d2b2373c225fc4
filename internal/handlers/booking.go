package handlers

import (
	"net/http"
	"strings"
	"time"

	"smartq/internal/auth"
	"smartq/internal/models"
	"smartq/internal/response"

	"github.com/gin-gonic/gin"
)

type BookingRequest struct {
	QueueID        string    `json:"queue_id" binding:"required"`
	Service        string    `json:"service" binding:"required"`
	CustomerName   string    `json:"customer_name"`
	ScheduledTime  time.Time `json:"scheduled_time"`
	ServiceMinutes int       `json:"service_minutes" binding:"gte=0"`
	IsEmergency    bool      `json:"is_emergency"`
	Notes          string    `json:"notes" binding:"max=500"`
}

// ConfirmBookingHandler подтверждает бронь и ставит клиента в очередь
// @Summary		Подтверждение брони
// @Description	Сохраняет бронь и создаёт запись в конце очереди. Имя клиента по умолчанию берётся из профиля. is_emergency сразу отправляет экстренный запрос администратору
// @Tags			booking
// @Accept			json
// @Produce		json
// @Param			booking	body		BookingRequest			true	"Бронь"
// @Security		BearerAuth
// @Success		201	{object}	response.EntryResponse	"Запись создана"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		502	{object}	response.ErrorResponse	"Ошибка хранилища (BACKEND_ERROR)"
// @Router			/api/bookings [post]
func (h *Handler) ConfirmBookingHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	userID := c.GetUint(auth.ContextUserID)
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		if user, err := h.Users.ByID(c.Request.Context(), userID); err == nil {
			name = strings.TrimSpace(user.Name + " " + user.Surname)
		}
	}

	entry, err := h.Queues.ConfirmBooking(c.Request.Context(), models.Booking{
		QueueID:        req.QueueID,
		CustomerID:     userID,
		CustomerName:   name,
		Service:        req.Service,
		ScheduledTime:  req.ScheduledTime,
		ServiceMinutes: req.ServiceMinutes,
		IsEmergency:    req.IsEmergency,
		Notes:          strings.TrimSpace(req.Notes),
	})
	if err != nil {
		h.writeQueueError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.EntryResponse{Message: "Запись в очередь создана", Entry: entry})
}
