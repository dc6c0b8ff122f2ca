package response

import (
	"errors"
	"fmt"
)

const (
	CodeOK    = 0
	CodeError = 1
	CodeUsage = 2
)

// UsageError is a problem with the command line itself.
type UsageError struct {
	Command string
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

func Usage(command, format string, a ...any) error {
	return &UsageError{Command: command, Message: fmt.Sprintf(format, a...)}
}

// ExitError ends the command with Code. An empty Message prints nothing.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Silent fails the command after its own output already explained why.
func Silent() error {
	return &ExitError{Code: CodeError}
}

// Code maps err to a process exit code.
func Code(err error) int {
	if err == nil {
		return CodeOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return CodeUsage
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return CodeError
}

// Message is what gets printed after "Error: ", or "" for nothing.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Message
	}
	return err.Error()
}
