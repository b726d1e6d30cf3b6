package booking

import (
	"errors"
	"fmt"
)

// Error kinds forming the failure taxonomy of the booking core.
const (
	KindValidation        = "validation"
	KindNotFound          = "not_found"
	KindAuthorization     = "authorization"
	KindResourceExhausted = "resource_exhausted"
	KindConflict          = "conflict"
	KindStorage           = "storage"
)

// Stable error codes surfaced to callers.
const (
	CodeServicesNotFound       = "ServicesNotFound"
	CodeMultipleOrNoStylist    = "MultipleOrNoStylist"
	CodeStylistInactive        = "StylistInactive"
	CodeNoWorkstations         = "NoWorkstations"
	CodeNoAvailableWorkstation = "NoAvailableWorkstation"
	CodeBookingNotFound        = "BookingNotFound"
	CodeNotOwner               = "NotOwner"
	CodeInvalidInput           = "InvalidInput"
	CodeLifecycleGuard         = "LifecycleGuard"
	CodeConcurrentUpdate       = "ConcurrentUpdate"
	CodeStorageFailure         = "StorageFailure"
)

// Error is the typed failure returned by every core operation.
type Error struct {
	Kind    string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(code, msg string) error {
	return &Error{Kind: KindValidation, Code: code, Message: msg}
}

func NewNotFoundError(code, msg string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &Error{Kind: KindAuthorization, Code: CodeNotOwner, Message: msg}
}

func NewResourceExhaustedError(msg string) error {
	return &Error{Kind: KindResourceExhausted, Code: CodeNoAvailableWorkstation, Message: msg}
}

func NewConflictError(code, msg string) error {
	return &Error{Kind: KindConflict, Code: code, Message: msg}
}

func NewStorageError(msg string, err error) error {
	return &Error{Kind: KindStorage, Code: CodeStorageFailure, Message: msg, Err: err}
}

// KindOf extracts the kind of a core error, or KindStorage for untyped errors.
func KindOf(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	return KindStorage
}

// CodeOf extracts the stable code of a core error, or empty for untyped errors.
func CodeOf(err error) string {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code
	}
	return ""
}
