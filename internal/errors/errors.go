// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNoUsableInput signals that a run found no retained campaign records at
// all. This is the only input condition fatal to a run; it must reach the
// operator instead of producing an empty silent success.
var ErrNoUsableInput = errors.New("no usable campaign records in any configured source")

// ErrProfileNotFound is returned when no aggregated profile exists for a
// requested vertical.
type ErrProfileNotFound struct {
	Vertical string
}

func (e *ErrProfileNotFound) Error() string {
	return fmt.Sprintf("no profile for vertical %q", e.Vertical)
}

// Helper constructor
func NewProfileNotFound(vertical string) error {
	return &ErrProfileNotFound{Vertical: vertical}
}

// ErrEventNotFound is returned when a named event is not inside the upcoming
// window.
type ErrEventNotFound struct {
	Name string
}

func (e *ErrEventNotFound) Error() string {
	return fmt.Sprintf("event %q is not upcoming", e.Name)
}

func NewEventNotFound(name string) error {
	return &ErrEventNotFound{Name: name}
}
