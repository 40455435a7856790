package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"minigames/internal/combat"
)

var (
	// ErrNotFound means a referenced character or game is absent from its store.
	ErrNotFound = errors.New("not found")
	// ErrMalformedRequest means the request could not be decoded or is missing fields.
	ErrMalformedRequest = errors.New("malformed request")
)

// MaxBodyBytes caps request bodies read by the adapters.
const MaxBodyBytes = 1 << 16

// ErrorView is the JSON body of every failed call.
type ErrorView struct {
	Error string `json:"error"`
}

// StatusCode maps a service error to an HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrMalformedRequest),
		errors.Is(err, combat.ErrInvalidVariant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody returns the client-facing body for err. Internal failures are not
// described to the client.
func ErrorBody(err error) ErrorView {
	if StatusCode(err) == http.StatusInternalServerError {
		return ErrorView{Error: "internal server error"}
	}
	return ErrorView{Error: err.Error()}
}

// Decode reads one JSON document into v. An empty body decodes as {}.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	return nil
}
