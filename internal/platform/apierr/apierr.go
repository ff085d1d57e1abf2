// Package apierr carries an HTTP status and a stable machine code alongside
// a service error.
package apierr

import "net/http"

type Error struct {
	Status int
	Code   string
	Err    error
}

// Error prefers the wrapped message, then the code, then the status text.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil:
		return e.Err.Error()
	case e.Code != "":
		return e.Code
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}
