// Package errresponse turns failures into HTTP responses. Error responses
// carry a status code and no body.
package errresponse

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/newsboard/internal/content"
)

// ErrResponse pairs a low-level error with the status reported for it.
type ErrResponse struct {
	Err            error // low-level runtime error, logged but never sent
	HTTPStatusCode int   // http response status code
}

func (e *ErrResponse) Error() string {
	if e.Err == nil {
		return http.StatusText(e.HTTPStatusCode)
	}

	return e.Err.Error()
}

func (e *ErrResponse) Unwrap() error {
	return e.Err
}

// Respond writes the status line with an empty body.
func (e *ErrResponse) Respond(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(e.HTTPStatusCode)
}

func ErrInvalidRequest(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func ErrNotFound(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func ErrInternal(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusInternalServerError}
}

// ErrUnroutable answers any (path, method) pair no handler is registered for.
var ErrUnroutable = &ErrResponse{
	Err:            errors.New("no route for request"),
	HTTPStatusCode: http.StatusBadRequest,
}

// FromError maps err to a response. An *ErrResponse anywhere in the chain
// is used as is; content.ErrInvalid and content.ErrNotFound map to 400 and
// 404; everything else is a 500.
func FromError(err error) *ErrResponse {
	var resp *ErrResponse
	switch {
	case errors.As(err, &resp):
		return resp
	case errors.Is(err, content.ErrInvalid):
		return ErrInvalidRequest(err)
	case errors.Is(err, content.ErrNotFound):
		return ErrNotFound(err)
	default:
		return ErrInternal(err)
	}
}
