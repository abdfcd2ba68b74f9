package errcode

// Code is a stable, API-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	NotInitialized Code = "not_initialized"
	InvalidKind    Code = "invalid_event_kind"
	Capacity       Code = "capacity_exceeded"
	QueueFull      Code = "queue_full"

	UnknownDemo    Code = "unknown_demo"
	UnknownChannel Code = "unknown_channel"
	UnknownLED     Code = "unknown_led"
	UnknownButton  Code = "unknown_button"
	InvalidParams  Code = "invalid_params"
	NotAvailable   Code = "not_available"
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
