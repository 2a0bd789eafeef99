package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure. The zero value is an unexpected failure.
type Kind int

const (
	KindInterno Kind = iota
	KindValidacion
	KindConflicto
	KindNoEncontrado
	KindAutenticacion
)

func (k Kind) String() string {
	switch k {
	case KindValidacion:
		return "validacion"
	case KindConflicto:
		return "conflicto"
	case KindNoEncontrado:
		return "no_encontrado"
	case KindAutenticacion:
		return "autenticacion"
	default:
		return "interno"
	}
}

// Error is the domain error every service and model hook returns.
// Msg is safe to show to the client; Err (optional) is the internal cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validacion(format string, args ...any) *Error {
	return &Error{Kind: KindValidacion, Msg: fmt.Sprintf(format, args...)}
}

func Conflicto(format string, args ...any) *Error {
	return &Error{Kind: KindConflicto, Msg: fmt.Sprintf(format, args...)}
}

func NoEncontrado(format string, args ...any) *Error {
	return &Error{Kind: KindNoEncontrado, Msg: fmt.Sprintf(format, args...)}
}

func Autenticacion(format string, args ...any) *Error {
	return &Error{Kind: KindAutenticacion, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches an internal cause to a client-facing message.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, KindInterno when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInterno
}

// Is reports whether err is a domain error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidacion:
		return http.StatusBadRequest
	case KindConflicto:
		return http.StatusConflict
	case KindNoEncontrado:
		return http.StatusNotFound
	case KindAutenticacion:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for err. Unexpected failures never
// expose their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInterno {
		return e.Msg
	}
	return "Error interno del servidor"
}
