package models

import "fmt"

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusNext      Status = "next"
	StatusInService Status = "in_service"
	StatusDelayed   Status = "delayed"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

var terminalStatuses = map[Status]bool{
	StatusCompleted: true,
	StatusNoShow:    true,
	StatusCancelled: true,
}

// waiting → next → in_service → completed; no_show/delayed/cancelled: выходы из waiting/next
var validTransitions = map[Status]map[Status]bool{
	StatusWaiting: {
		StatusNext:      true,
		StatusInService: true,
		StatusDelayed:   true,
		StatusNoShow:    true,
		StatusCancelled: true,
	},
	StatusNext: {
		StatusInService: true,
		StatusDelayed:   true,
		StatusNoShow:    true,
		StatusCancelled: true,
	},
	StatusDelayed: {
		StatusNext:      true,
		StatusInService: true,
		StatusNoShow:    true,
		StatusCancelled: true,
	},
	StatusInService: {
		StatusCompleted: true,
	},
}

func IsTerminal(s Status) bool {
	return terminalStatuses[s]
}

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusNext, StatusInService, StatusDelayed,
		StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	}
	return false
}

func ValidateTransition(from, to Status) error {
	if IsTerminal(from) {
		return fmt.Errorf("cannot transition from terminal status %q", from)
	}
	allowed, ok := validTransitions[from]
	if !ok {
		return fmt.Errorf("unknown status %q", from)
	}
	if !allowed[to] {
		return fmt.Errorf("invalid queue entry transition: %q → %q", from, to)
	}
	return nil
}
