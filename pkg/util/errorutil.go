package util

import (
	"errors"
	"fmt"
)

// Error codes raised by the allocation core.
const (
	CodeInvalidRoomType      = "INVALID_ROOM_TYPE"
	CodeDuplicateRoom        = "DUPLICATE_ROOM"
	CodeInvalidPersonType    = "INVALID_PERSON_TYPE"
	CodeInvalidAccommodation = "INVALID_ACCOMMODATION"
	CodePersonNotFound       = "PERSON_NOT_FOUND"
	CodeRoomNotFound         = "ROOM_NOT_FOUND"
	CodeRoomTypeMismatch     = "ROOM_TYPE_MISMATCH"
	CodeCapacityExceeded     = "CAPACITY_EXCEEDED"
	CodeAlreadyAllocated     = "ALREADY_ALLOCATED"
	CodeAlreadyOccupant      = "ALREADY_OCCUPANT"
	CodeNotOccupant          = "NOT_OCCUPANT"
	CodeIneligible           = "INELIGIBLE"
	CodeMalformedRecord      = "MALFORMED_RECORD"
	CodeSnapshotIO           = "SNAPSHOT_IO"
	CodeSnapshotDecode       = "SNAPSHOT_DECODE"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeInternal             = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, details)
}

func NewInvalidRoomType(value string) error {
	return NewDomainError(CodeInvalidRoomType,
		fmt.Sprintf("invalid room type %q, must be 'office' or 'living_space'", value),
		map[string]any{"room_type": value})
}

func NewDuplicateRoom(roomType, name string) error {
	return NewDomainError(CodeDuplicateRoom,
		fmt.Sprintf("a room called %s already exists for that type", name),
		map[string]any{"room_type": roomType, "room_name": name})
}

func NewInvalidPersonType(value string) error {
	return NewDomainError(CodeInvalidPersonType,
		fmt.Sprintf("invalid person type %q, must be 'FELLOW' or 'STAFF'", value),
		map[string]any{"person_type": value})
}

func NewInvalidAccommodation(value string) error {
	return NewDomainError(CodeInvalidAccommodation,
		fmt.Sprintf("invalid accommodation option %q, must be 'Y' or 'N'", value),
		map[string]any{"wants_accommodation": value})
}

func NewPersonNotFound(personID string) error {
	return NewDomainError(CodePersonNotFound,
		fmt.Sprintf("person with ID %s not found", personID),
		map[string]any{"person_id": personID})
}

func NewRoomNotFound(name string) error {
	return NewDomainError(CodeRoomNotFound,
		fmt.Sprintf("room %s not found", name),
		map[string]any{"room_name": name})
}

func NewRoomTypeMismatch(message string, details map[string]any) error {
	return NewDomainError(CodeRoomTypeMismatch, message, details)
}

func NewCapacityExceeded(roomName string) error {
	return NewDomainError(CodeCapacityExceeded,
		fmt.Sprintf("%s is already at full capacity", roomName),
		map[string]any{"room_name": roomName})
}

func NewAlreadyAllocated(personID, roomName string) error {
	return NewDomainError(CodeAlreadyAllocated,
		fmt.Sprintf("person %s is already allocated to %s", personID, roomName),
		map[string]any{"person_id": personID, "room_name": roomName})
}

func NewAlreadyOccupant(personID, roomName string) error {
	return NewDomainError(CodeAlreadyOccupant,
		fmt.Sprintf("person %s is already in %s", personID, roomName),
		map[string]any{"person_id": personID, "room_name": roomName})
}

func NewNotOccupant(personID, roomName string) error {
	return NewDomainError(CodeNotOccupant,
		fmt.Sprintf("person %s is not in %s", personID, roomName),
		map[string]any{"person_id": personID, "room_name": roomName})
}

func NewIneligible(message string, details map[string]any) error {
	return NewDomainError(CodeIneligible, message, details)
}

func NewMalformedRecord(line int, reason string) error {
	return NewDomainError(CodeMalformedRecord,
		fmt.Sprintf("malformed record on line %d: %s", line, reason),
		map[string]any{"line": line, "reason": reason})
}

func NewSnapshotIO(err error) error {
	return &DomainError{Code: CodeSnapshotIO, Message: "snapshot file error", Err: err}
}

func NewSnapshotDecode(err error) error {
	return &DomainError{Code: CodeSnapshotDecode, Message: "snapshot content invalid", Err: err}
}

func NewInternalError(err error) error {
	return &DomainError{Code: CodeInternal, Message: "internal error", Err: err}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{Code: CodeInternal, Message: "internal error", Err: err}
}

func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// CodeOf extracts the code carried by err, or empty string for non-domain errors.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
