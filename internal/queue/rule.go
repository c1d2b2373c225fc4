package queue

import "smartq/internal/models"

// Порог ожидания (в минутах), при котором ожидающий клиент становится следующим.
const nextThresholdMinutes = 2

// NextStatus возвращает статус записи после очередного пересчёта ожидания.
// Функция чистая: одинаковые аргументы всегда дают одинаковый результат.
func NextStatus(status models.Status, waitMinutes int) models.Status {
	switch {
	case status == models.StatusWaiting && waitMinutes <= nextThresholdMinutes:
		return models.StatusNext
	case status == models.StatusNext && waitMinutes == 0:
		return models.StatusInService
	}
	return status
}
