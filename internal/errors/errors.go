package errors

import (
	"encoding/json"
	"errors"
)

// RemoteErr is failure of call to record store, identity or inference service
type RemoteErr struct {
	op      string
	message string
	cause   error
}

func (e *RemoteErr) Error() string {
	return e.message
}

// Op returns name of the failed operation
func (e *RemoteErr) Op() string {
	return e.op
}

func (e *RemoteErr) Unwrap() error {
	return e.cause
}

// MarshalJSON exposes only operation and message
func (e *RemoteErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Op      string `json:"op"`
		Message string `json:"message"`
	}{Op: e.op, Message: e.message})
}

// NewRemoteErr wraps cause, message is cause text or fallback if cause has none
func NewRemoteErr(op string, cause error) error {
	msg := "remote operation failed"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}

	return &RemoteErr{
		op:      op,
		message: msg,
		cause:   cause,
	}
}

// EntryNotFoundErr is raised when entry with requested key doesn't exist
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// NewEntryNotFoundErr builds EntryNotFoundErr
func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}

// IsNotFound reports whether err is caused by missing entry
func IsNotFound(err error) bool {
	var nfErr *EntryNotFoundErr
	return errors.As(err, &nfErr)
}

// Message returns short text suitable for showing next to a form
func Message(err error) string {
	if err == nil {
		return ""
	}

	var remoteErr *RemoteErr
	if errors.As(err, &remoteErr) {
		return remoteErr.message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred."
}
