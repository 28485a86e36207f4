package catalogdb

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidRecord = errors.New("invalid record")
)

type InvalidRecordError struct {
	ID     string
	Reason string
}

type NotFoundError struct {
	ID string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid record %s: %s", e.ID, e.Reason)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record not found: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
