package util

import (
	"errors"
	"fmt"
)

// Kind classifies an analysis failure for boundary reporting.
type Kind string

const (
	KindInput       Kind = "input"       // missing columns, empty/unreadable table
	KindData        Kind = "data"        // degenerate numerical input
	KindConvergence Kind = "convergence" // solver failed to converge or left the numeric domain
	KindIO          Kind = "io"          // file read/write failure
)

// AppError carries a taxonomy kind alongside the message. The shell catches
// these at the command boundary and renders them without killing the process.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func BadInput(msg string) *AppError  { return &AppError{Kind: KindInput, Message: msg} }
func BadData(msg string) *AppError   { return &AppError{Kind: KindData, Message: msg} }
func NoConvergence(msg string) *AppError {
	return &AppError{Kind: KindConvergence, Message: msg}
}

func BadInputf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

func BadDataf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindData, Message: fmt.Sprintf(format, args...)}
}

func NoConvergencef(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConvergence, Message: fmt.Sprintf(format, args...)}
}

// IOFailure wraps an underlying filesystem error.
func IOFailure(msg string, err error) *AppError {
	return &AppError{Kind: KindIO, Message: msg, Err: err}
}

// KindOf extracts the taxonomy kind from err, or KindIO for plain errors,
// which in practice only reach the boundary from file operations.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindIO
}
