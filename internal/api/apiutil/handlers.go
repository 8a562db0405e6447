package apiutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes a JSON error payload for page-level failures. Retry is
// always user-initiated, so the payload carries only the message.
func WriteError(w http.ResponseWriter, status int, message string) {
	_ = WriteJSON(w, status, map[string]string{"error": message})
}

// WriteFieldErrors writes validation failures as 422 with per-field reasons.
func WriteFieldErrors(w http.ResponseWriter, errs []FieldError) {
	_ = WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}
