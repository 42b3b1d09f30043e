package erp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the ERP
type Error struct {
	StatusCode int
	// ExcType is the server-side exception class, e.g. DoesNotExistError
	ExcType string
	Message string
}

func (e *Error) Error() string {
	if e.ExcType != "" {
		return fmt.Sprintf("erp: %d %s: %s", e.StatusCode, e.ExcType, e.Message)
	}
	return fmt.Sprintf("erp: %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an ERP "document does not exist" error
func IsNotFound(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode == http.StatusNotFound || e.ExcType == "DoesNotExistError"
}

// IsUnauthorized reports whether the ERP rejected the credentials or session
func IsUnauthorized(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.ExcType {
	case "AuthenticationError", "SessionExpired", "CSRFTokenError":
		return true
	}
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether the ERP refused access to a document
func IsForbidden(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode == http.StatusForbidden || e.ExcType == "PermissionError"
}

type errorBody struct {
	ExcType        string          `json:"exc_type"`
	Exception      string          `json:"exception"`
	Message        json.RawMessage `json:"message"`
	ServerMessages string          `json:"_server_messages"`
}

// parseError builds an *Error from a failed response body
func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		e.Message = strings.TrimSpace(truncate(string(body), 200))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}

	e.ExcType = parsed.ExcType
	switch {
	case stringMessage(parsed.Message) != "":
		e.Message = stringMessage(parsed.Message)
	case serverMessage(parsed.ServerMessages) != "":
		e.Message = serverMessage(parsed.ServerMessages)
	case parsed.Exception != "":
		e.Message = parsed.Exception
	default:
		e.Message = http.StatusText(status)
	}
	return e
}

func stringMessage(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// serverMessage decodes the first entry of _server_messages, a JSON array of
// JSON-encoded objects.
func serverMessage(raw string) string {
	if raw == "" {
		return ""
	}
	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || len(entries) == 0 {
		return ""
	}
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(entries[0]), &msg); err != nil {
		return entries[0]
	}
	return msg.Message
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
