package queue

import (
	"testing"

	"smartq/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		status models.Status
		wait   int
		want   models.Status
	}{
		{models.StatusWaiting, 10, models.StatusWaiting},
		{models.StatusWaiting, 3, models.StatusWaiting},
		{models.StatusWaiting, 2, models.StatusNext},
		{models.StatusWaiting, 0, models.StatusNext},
		{models.StatusNext, 1, models.StatusNext},
		{models.StatusNext, 0, models.StatusInService},
		{models.StatusInService, 0, models.StatusInService},
		{models.StatusDelayed, 0, models.StatusDelayed},
		{models.StatusCompleted, 0, models.StatusCompleted},
		{models.StatusNoShow, 2, models.StatusNoShow},
		{models.StatusCancelled, 0, models.StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatus(tt.status, tt.wait))
		})
	}
}

func TestNextStatusDeterministic(t *testing.T) {
	for _, s := range []models.Status{models.StatusWaiting, models.StatusNext, models.StatusInService} {
		for wait := 0; wait <= 5; wait++ {
			first := NextStatus(s, wait)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, NextStatus(s, wait))
			}
		}
	}
}

func TestNextStatusAdvancesOneStep(t *testing.T) {
	// waiting никогда не попадает сразу в in_service
	assert.Equal(t, models.StatusNext, NextStatus(models.StatusWaiting, 0))
	assert.Equal(t, models.StatusInService, NextStatus(NextStatus(models.StatusWaiting, 0), 0))
}
