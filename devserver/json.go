package devserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxBodyBytes    = 1 << 20
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes the backend's error shape: {"message": "..."}.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

type validationError struct {
	Msg string `json:"msg"`
}

// writeValidation writes 400 with {"errors": [{"msg": "..."}]}.
func writeValidation(w http.ResponseWriter, messages []string) {
	list := make([]validationError, len(messages))
	for i, m := range messages {
		list[i] = validationError{Msg: m}
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": list})
}

func writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	logError(r.Method, r.URL.Path, err.Error())
	writeMessage(w, http.StatusInternalServerError, "Server error")
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "[decodeBody]")
	}
	return nil
}
