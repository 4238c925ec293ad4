// Package dom describes the host document the color changer mutates and
// provides an in-memory implementation of it.
package dom

import (
	"errors"
	"fmt"
)

const (
	EventClick          = "click"
	PropBackgroundColor = "background-color"
	BodyID              = "body"
)

// ErrElementNotFound matches every *ElementNotFoundError.
var ErrElementNotFound = errors.New("element not found")

// ElementNotFoundError is returned when a lookup by id, or for the body, fails.
type ElementNotFoundError struct {
	ID string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found", e.ID)
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

// Event is passed to listeners on dispatch.
type Event struct {
	Type     string
	TargetID string
}

type Listener func(Event) error

type Element interface {
	ID() string
	SetStyle(property, value string)
	AddEventListener(event string, fn Listener)
}

// Document is the lookup surface of a host page.
type Document interface {
	GetElementByID(id string) (Element, error)
	Body() (Element, error)
}
