// Package validate runs the checks a creation payload must pass
// before anything is written: required fields are present and every
// foreign key names an existing row.
package validate

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotExist is matched by errors for foreign keys that
	// name a row that does not exist
	ErrNotExist = errors.New("referenced record does not exist")
	// ErrMissingField is matched by errors for required fields
	// that are empty or zero
	ErrMissingField = errors.New("required field is missing")
	// ErrInvalidField is matched by errors for fields whose
	// value is outside their allowed set
	ErrInvalidField = errors.New("field value is invalid")
)

// NotExistError names the foreign key field whose
// target does not exist
type NotExistError struct {
	Field string
	ID    uint64
}

// Error implements error
func (err *NotExistError) Error() string {
	return fmt.Sprintf("%s ID does not exist.", err.Field)
}

// Is lets errors.Is match ErrNotExist
func (err *NotExistError) Is(target error) bool {
	return target == ErrNotExist
}

// MissingFieldError reports an empty or zero required field
type MissingFieldError struct {
	Message string
}

// Error implements error
func (err *MissingFieldError) Error() string {
	return err.Message
}

// Is lets errors.Is match ErrMissingField
func (err *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidFieldError reports a field whose value is not allowed
type InvalidFieldError struct {
	Field string
	Value string
}

// Error implements error
func (err *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid %s: %q.", err.Field, err.Value)
}

// Is lets errors.Is match ErrInvalidField
func (err *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// Container is anything that can say whether a row exists
type Container interface {
	Contains(ctx context.Context, id uint64) (bool, error)
}

// Reference is one foreign key of a payload
type Reference struct {
	Field   string
	ID      uint64
	Present bool
	Target  Container
}

// Required builds a reference that must name an existing row in target
func Required(field string, target Container, id uint64) Reference {
	return Reference{Field: field, ID: id, Present: true, Target: target}
}

// Optional builds a reference that is only checked when id is not nil
func Optional(field string, target Container, id *uint64) Reference {
	if id == nil {
		return Reference{Field: field, Target: target}
	}

	return Reference{Field: field, ID: *id, Present: true, Target: target}
}

// References checks refs in order and stops at the first failure.
// A reference whose target is missing fails with *NotExistError.
// Errors from a target are wrapped and returned as is.
func References(ctx context.Context, refs ...Reference) error {
	for _, ref := range refs {
		if !ref.Present {
			continue
		}

		exists, err := ref.Target.Contains(ctx, ref.ID)

		if err != nil {
			return fmt.Errorf("could not check %s %d: %w", ref.Field, ref.ID, err)
		}

		if !exists {
			return &NotExistError{Field: ref.Field, ID: ref.ID}
		}
	}

	return nil
}

// NotEmpty fails with message if any value is the empty string
func NotEmpty(message string, values ...string) error {
	for _, value := range values {
		if value == "" {
			return &MissingFieldError{Message: message}
		}
	}

	return nil
}

// NonZero fails with message if any value is zero
func NonZero(message string, values ...uint64) error {
	for _, value := range values {
		if value == 0 {
			return &MissingFieldError{Message: message}
		}
	}

	return nil
}

// OneOf fails with *InvalidFieldError if ok is false
func OneOf(field string, value fmt.Stringer, ok bool) error {
	if !ok {
		return &InvalidFieldError{Field: field, Value: value.String()}
	}

	return nil
}
