package queue

import (
	"errors"
	"fmt"
)

var (
	ErrQueueNotFound     = errors.New("queue not found")
	ErrQueueExists       = errors.New("queue already exists")
	ErrEntryNotFound     = errors.New("queue entry not found")
	ErrEntryExists       = errors.New("queue entry already exists")
	ErrEntryTerminal     = errors.New("queue entry is in a terminal status")
	ErrNotEmergency      = errors.New("queue entry has no emergency request")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotOwner          = errors.New("queue entry belongs to another customer")
)

// ValidationError сообщает об ошибке входных данных операции.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// OperationError сообщает о сбое внешней операции (бэкенд, таймаут).
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
