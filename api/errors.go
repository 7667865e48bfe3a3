package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Kind is the coarse classification used to decide how a failure is handled.
type Kind int

const (
	KindNone         Kind = iota
	KindAuthRejected      // 401/403: credentials refused
	KindValidation        // 400/422: request rejected with a message
	KindTransient         // no response, or 5xx
	KindOther             // any other status, or an undecodable success body
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAuthRejected:
		return "auth_rejected"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	}
	return "other"
}

// Error is returned for every failed call. Status is 0 when no response was received.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Errors  []string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if text := e.Text(); text != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, text)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Text is the server supplied message, or its validation messages joined with ", ".
func (e *Error) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Errors, ", ")
}

func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return KindOther
	}
	switch {
	case apiErr.Status == 0:
		return KindTransient
	case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
		return KindAuthRejected
	case apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity:
		return KindValidation
	case apiErr.Status >= http.StatusInternalServerError:
		return KindTransient
	}
	return KindOther
}

func IsAuthRejection(err error) bool {
	return Classify(err) == KindAuthRejected
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ServerMessage returns the server supplied text carried by err, or "".
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Text()
	}
	return ""
}

const maxErrorBody = 64 << 10

type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeError(method, path string, resp *http.Response) *Error {
	apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		apiErr.Err = err
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	if body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = body.Error
	}
	apiErr.Errors = decodeValidationErrors(body.Errors)
	return apiErr
}

// decodeValidationErrors accepts ["msg", ...] or [{"msg": ...} | {"message": ...}, ...].
func decodeValidationErrors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	var objects []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil
	}
	messages := make([]string, 0, len(objects))
	for _, o := range objects {
		if o.Msg != "" {
			messages = append(messages, o.Msg)
		} else if o.Message != "" {
			messages = append(messages, o.Message)
		}
	}
	return messages
}
