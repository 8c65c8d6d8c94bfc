package content

import (
	"errors"
	"fmt"

	"github.com/terra-clan/examkit/internal/models"
)

var (
	// ErrResourceNotFound is matched by every NotFoundError
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDecode is matched by every DecodeError
	ErrDecode = errors.New("invalid data format")
)

// Kind names the resource a load was looking for
type Kind string

const (
	KindTickets Kind = "tickets"
	KindTopics  Kind = "topics"
	KindSigns   Kind = "signs"
	KindMarkup  Kind = "markup"
)

// NotFoundError reports that the locator found nothing for a request
type NotFoundError struct {
	Kind     Kind
	Category models.Category // empty for catalogs
}

func (e *NotFoundError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s not found for category %s", e.Kind, e.Category)
	}
	return fmt.Sprintf("%s catalog not found", e.Kind)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// DecodeError reports a malformed resource
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
