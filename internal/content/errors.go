package content

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"
)

// Error kinds. Every error leaving this package matches exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrUpload     = errors.New("media upload failed")
	ErrNotFound   = errors.New("record not found")
	ErrConstraint = errors.New("constraint violation")
	ErrTransport  = errors.New("backend unavailable")
	ErrWrite      = errors.New("write rejected")
	ErrBusy       = errors.New("save already in progress")
	ErrNoDraft    = errors.New("no draft to submit")
)

var errorKinds = []error{
	ErrValidation,
	ErrBusy,
	ErrNoDraft,
	ErrUpload,
	ErrNotFound,
	ErrConstraint,
	ErrTransport,
	ErrWrite,
}

// Error carries the kind of a failure together with the operation and the backend cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// FieldError reports a missing or invalid form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s is %s", e.Field, e.Reason)
}

// Is makes every FieldError match ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

func requiredField(field string) error {
	return &FieldError{Field: field, Reason: "required"}
}

// KindOf returns the kind sentinel err matches. Unclassified errors count as ErrWrite.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrWrite
}

// Message returns the backend's own wording of err, without the operation prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var contentErr *Error
	if errors.As(err, &contentErr) && contentErr.Err != nil {
		return contentErr.Err.Error()
	}
	return err.Error()
}

func wrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var contentErr *Error
	if errors.As(err, &contentErr) {
		return err
	}
	return &Error{Kind: classifyStoreError(err), Op: op, Err: err}
}

func classifyStoreError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrNoDraft):
		return ErrNoDraft
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		isNetError(err):
		return ErrTransport
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		isConstraintMessage(err):
		return ErrConstraint
	default:
		return ErrWrite
	}
}

func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// sqlite and mysql report NOT NULL / CHECK failures only through the message text.
func isConstraintMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "cannot be null") ||
		strings.Contains(msg, "violates")
}
