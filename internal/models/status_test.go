package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusNoShow))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.False(t, IsTerminal(StatusWaiting))
	assert.False(t, IsTerminal(StatusNext))
	assert.False(t, IsTerminal(StatusInService))
	assert.False(t, IsTerminal(StatusDelayed))
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusWaiting, StatusNext, true},
		{StatusWaiting, StatusInService, true},
		{StatusWaiting, StatusNoShow, true},
		{StatusWaiting, StatusCancelled, true},
		{StatusWaiting, StatusCompleted, false},
		{StatusNext, StatusInService, true},
		{StatusNext, StatusDelayed, true},
		{StatusNext, StatusWaiting, false},
		{StatusDelayed, StatusNext, true},
		{StatusInService, StatusCompleted, true},
		{StatusInService, StatusWaiting, false},
		{StatusInService, StatusNoShow, false},
		{StatusCompleted, StatusWaiting, false},
		{StatusNoShow, StatusNext, false},
		{StatusCancelled, StatusWaiting, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDelayed.Valid())
	assert.False(t, Status("lost").Valid())
	assert.False(t, Status("").Valid())
}

func TestRenumber(t *testing.T) {
	entries := []QueueEntry{{ID: "c", Position: 9}, {ID: "a", Position: 3}, {ID: "b", Position: 3}}
	Renumber(entries)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestQueueEntryClone(t *testing.T) {
	e := QueueEntry{ID: "a"}
	e.Position = 1
	c := e.Clone()
	assert.Equal(t, e, c)
	assert.True(t, c.IsActive())
}
