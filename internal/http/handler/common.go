package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

// maxJSONBody bounds JSON request bodies
const maxJSONBody = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return domain.ErrorTypeUpstream
	default:
		return domain.ErrorTypeInternal
	}
}

// respondServiceError maps service errors to HTTP. Only unexpected errors
// are logged at error level; the rest are the caller's fault or already
// logged by the service.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, what string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, capitalize(what)+" not found")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": "))
	case errors.Is(err, service.ErrDraftEmpty):
		respondWithError(w, http.StatusBadRequest, "Add at least one item before submitting")
	case errors.Is(err, service.ErrNoWarehouse):
		respondWithError(w, http.StatusBadRequest, "Select a warehouse before submitting")
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrNoCustomer):
		respondWithError(w, http.StatusForbidden, "No customer account is linked to this user")
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "You do not have access to "+what)
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrDocumentUnavailable):
		respondWithError(w, http.StatusBadGateway, "The document could not be generated, please try again later")
	case errors.Is(err, service.ErrUpstream):
		logger.Warn("erp request failed", zap.String("resource", what), zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "The ERP is unavailable, please try again later")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send
		w.WriteHeader(499)
	case errors.Is(err, context.DeadlineExceeded):
		respondWithError(w, http.StatusGatewayTimeout, "The request timed out")
	default:
		logger.Error("request failed", zap.String("resource", what), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load "+what)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decodeJSON reads a bounded JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// parseListParams reads the query options shared by the transaction lists
func parseListParams(r *http.Request) service.ListParams {
	q := r.URL.Query()
	return service.ListParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "pageSize", 20),
		Search:    q.Get("search"),
		FromDate:  q.Get("fromDate"),
		ToDate:    q.Get("toDate"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

// respondPDF streams a rendered document inline
func respondPDF(w http.ResponseWriter, doc *service.PDFDocument) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	if doc.Archived {
		w.Header().Set("X-Document-Source", "archive")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// readUpload opens the multipart file in field. A missing file is not an
// error when optional is set. The returned close func is never nil.
func readUpload(w http.ResponseWriter, r *http.Request, field string, maxMB int64, optional bool) (*service.Upload, func(), bool) {
	noop := func() {}
	limit := maxMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", maxMB))
		return nil, noop, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if optional && errors.Is(err, http.ErrMissingFile) {
			return nil, noop, true
		}
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid file upload: %s field is required", field))
		return nil, noop, false
	}
	return &service.Upload{Filename: header.Filename, Size: header.Size, Content: file}, func() { _ = file.Close() }, true
}
