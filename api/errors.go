// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types shared by every primitive in hioload-sync.
// Protocol misuse is reported by panicking with one of these values.

package api

import "fmt"

// ErrorCode represents specific misuse conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeAlreadySent
	ErrCodeNotReady
	ErrCodeHandleUsed
	ErrCodeStaleHandle
	ErrCodeReleased
	ErrCodeRefOverflow
	ErrCodeClosed
)

var codeNames = map[ErrorCode]string{
	ErrCodeOK:          "ok",
	ErrCodeAlreadySent: "already-sent",
	ErrCodeNotReady:    "not-ready",
	ErrCodeHandleUsed:  "handle-used",
	ErrCodeStaleHandle: "stale-handle",
	ErrCodeReleased:    "released",
	ErrCodeRefOverflow: "ref-overflow",
	ErrCodeClosed:      "closed",
}

// String returns the short name of the code.
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error represents a structured error with code and message.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so errors.Is works on
// recovered panic values regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Misuse errors shared by every primitive.
var (
	ErrAlreadySent = NewError(ErrCodeAlreadySent, "can't send more than one message")
	ErrNotReady    = NewError(ErrCodeNotReady, "no message available")
	ErrHandleUsed  = NewError(ErrCodeHandleUsed, "handle already used")
	ErrStaleHandle = NewError(ErrCodeStaleHandle, "handle belongs to an earlier split")
	ErrReleased    = NewError(ErrCodeReleased, "already released")
	ErrRefOverflow = NewError(ErrCodeRefOverflow, "reference count overflow")
	ErrClosed      = NewError(ErrCodeClosed, "channel is closed")
)
