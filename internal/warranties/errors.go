package warranties

import "fmt"

// ValidationError: a caller-supplied reference does not resolve to an existing
// entity. Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newReferenceError(entity string, id uint) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

// ConflictError: a uniqueness or foreign-key constraint was violated at the
// persistence layer. Handlers map it to 400.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

var (
	errDuplicateCode = &ConflictError{Message: "Warranty code must be unique"}
	errForeignKey    = &ConflictError{Message: "Foreign key constraint failed"}
)

// NotFoundError: lookup by id or code found no record. Handlers map it to 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFoundByID(id uint) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Warranty with ID %d not found", id)}
}

func notFoundByCode(code string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Warranty with code %s not found", code)}
}
