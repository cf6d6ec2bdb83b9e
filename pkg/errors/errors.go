// Package errors provides structured diagnostics for the reconciler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvariant indicates misuse of a spec tree. These are fatal.
	KindInvariant
	// KindMessage indicates a message that could not be delivered.
	KindMessage
	// KindReplace indicates an instance was replaced after a type mismatch.
	KindReplace
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration or document loading error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindMessage:
		return "message"
	case KindReplace:
		return "replace"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ReconcileError represents a structured error raised while reconciling.
type ReconcileError struct {
	// Op is the operation that failed (e.g., "core.Spec.Prototype").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Entity is the entity being processed, if any.
	Entity fmt.Stringer
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReconcileError) Error() string {
	if e.Entity != nil {
		return fmt.Sprintf("%s [%s] entity=%s: %v", e.Op, e.Kind, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// Invariant creates a fatal invariant-violation error for op.
func Invariant(op string, format string, args ...any) *ReconcileError {
	return &ReconcileError{
		Op:         op,
		Kind:       KindInvariant,
		Err:        fmt.Errorf(format, args...),
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// Replaced creates the informational error reported when the instance on
// entity is replaced because its element type or key changed.
func Replaced(op string, entity fmt.Stringer, from, to string) *ReconcileError {
	return &ReconcileError{
		Op:        op,
		Kind:      KindReplace,
		Entity:    entity,
		Err:       fmt.Errorf("%s replaced by %s", from, to),
		Timestamp: time.Now(),
	}
}

// Config wraps a configuration or document loading failure.
func Config(op string, err error) *ReconcileError {
	return &ReconcileError{
		Op:        op,
		Kind:      KindConfig,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "cmd.tree").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// DropReason explains why a message was not delivered.
type DropReason string

const (
	// DropNoRecipient means the recipient entity has no mounted instance.
	DropNoRecipient DropReason = "no-recipient"
	// DropRejected means the instance did not accept the payload type.
	DropRejected DropReason = "rejected"
)

// MessageError represents a dropped message.
type MessageError struct {
	// Recipient is the addressed entity.
	Recipient fmt.Stringer
	// Element is the Go type of the mounted element, empty if none.
	Element string
	// Payload is the Go type of the payload.
	Payload string
	// Reason explains the drop.
	Reason DropReason
	// Timestamp is when the message was dropped.
	Timestamp time.Time
}

func (e *MessageError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("message %s to %s (%s) dropped: %s", e.Payload, e.Recipient, e.Element, e.Reason)
	}
	return fmt.Sprintf("message %s to %s dropped: %s", e.Payload, e.Recipient, e.Reason)
}

// ErrorHandler receives errors reported by the reconciler.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ReconcileError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleMessageError is called when a message is dropped.
	HandleMessageError(err *MessageError)
}
