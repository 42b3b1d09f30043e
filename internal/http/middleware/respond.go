package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/lordsmint/portal-api/internal/domain"
)

func writeJSONError(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{Error: title, Message: message})
}
