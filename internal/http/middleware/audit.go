package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lordsmint/portal-api/internal/auth"
	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/service"
	"go.uber.org/zap"
)

// maxAuditBody caps how much of a JSON body is kept as new_values
const maxAuditBody = 64 << 10

// AuditConfig holds configuration for audit middleware
type AuditConfig struct {
	// SkipPaths are path prefixes that are never audited
	SkipPaths []string
	// SkipMethods are never audited, e.g. OPTIONS
	SkipMethods []string
	// AuditReads includes GET requests
	AuditReads bool
}

func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths:   []string{"/health", "/swagger", "/metrics"},
		SkipMethods: []string{http.MethodOptions, http.MethodHead},
	}
}

// Auditor is the part of the audit log service the middleware writes to
type Auditor interface {
	Log(ctx context.Context, r *http.Request, entry service.LogEntry) error
}

// AuditMiddleware records mutating portal requests: order submits, draft
// edits, support requests and sign-ins
type AuditMiddleware struct {
	auditor Auditor
	config  *AuditConfig
	logger  *zap.Logger
	// async runs the write off the request path; tests replace it
	async func(func())
}

func NewAuditMiddleware(auditor Auditor, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		auditor: auditor,
		config:  config,
		logger:  logger,
		async:   func(fn func()) { go fn() },
	}
}

// Audit must wrap the router so the route pattern and the user captured by
// CaptureUser are visible after the handler returns
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.auditor == nil || !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		body := captureJSONBody(r)

		holder := &userHolder{}
		ctx := r.Context()
		if _, ok := ctx.Value(userHolderKey).(*userHolder); !ok {
			ctx = withUserHolder(ctx, holder)
		}
		r = r.WithContext(ctx)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		entry, ok := m.buildEntry(r, rw.statusCode, body)
		if !ok {
			return
		}

		logCtx := context.WithoutCancel(r.Context())
		if user := heldUser(r.Context()); user != nil {
			logCtx = auth.WithUserContext(logCtx, user)
		}
		m.async(func() {
			if err := m.auditor.Log(logCtx, r, entry); err != nil {
				m.logger.Warn("failed to create audit log entry",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
					zap.Error(err))
			}
		})
	})
}

func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	for _, method := range m.config.SkipMethods {
		if r.Method == method {
			return false
		}
	}
	if r.Method == http.MethodGet && !m.config.AuditReads {
		return false
	}
	for _, prefix := range m.config.SkipPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

func (m *AuditMiddleware) buildEntry(r *http.Request, status int, body []byte) (service.LogEntry, bool) {
	pattern := r.URL.Path
	var entityID string
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			pattern = p
		}
		entityID = firstURLParam(rc, "name", "itemCode")
	}

	action := actionFor(r.Method, pattern)
	if action == "" {
		return service.LogEntry{}, false
	}

	success := status >= 200 && status < 300
	// Failed sign-ins are kept; other failures changed nothing
	if !success && action != domain.AuditActionLogin {
		return service.LogEntry{}, false
	}

	entry := service.LogEntry{
		Action:     action,
		EntityType: entityTypeFor(pattern),
		EntityID:   entityID,
		StatusCode: status,
	}

	values := parseAuditValues(body)
	if action == domain.AuditActionLogin {
		if values != nil {
			if u, ok := values["username"].(string); ok {
				entry.Username = u
			}
		}
		// Credentials are never stored
		values = nil
	}
	if values != nil {
		entry.NewValues = values
	}
	return entry, true
}

func actionFor(method, pattern string) domain.AuditAction {
	switch {
	case strings.HasSuffix(pattern, "/auth/login"):
		return domain.AuditActionLogin
	case strings.HasSuffix(pattern, "/auth/logout"):
		return domain.AuditActionLogout
	case strings.HasSuffix(pattern, "/submit"):
		return domain.AuditActionSubmit
	}
	switch method {
	case http.MethodPost:
		return domain.AuditActionCreate
	case http.MethodPut, http.MethodPatch:
		return domain.AuditActionUpdate
	case http.MethodDelete:
		return domain.AuditActionDelete
	default:
		return ""
	}
}

// auditEntities maps route segments to audited entity types, most specific
// first
var auditEntities = []struct {
	segment string
	entity  string
}{
	{"draft", "draft_order"},
	{"complaints", "complaint"},
	{"feedback", "feedback"},
	{"returns", "return_request"},
	{"attachments", "file"},
	{"auth", "session"},
	{"orders", "sales_order"},
}

func entityTypeFor(pattern string) string {
	parts := strings.Split(strings.Trim(pattern, "/"), "/")
	for _, e := range auditEntities {
		for _, part := range parts {
			if part == e.segment {
				return e.entity
			}
		}
	}
	return "unknown"
}

func firstURLParam(rc *chi.Context, keys ...string) string {
	for _, k := range keys {
		if v := rc.URLParam(k); v != "" {
			return v
		}
	}
	return ""
}

// captureJSONBody reads up to maxAuditBody bytes of a JSON request body and
// puts them back in front of the rest of the stream
func captureJSONBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return nil
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxAuditBody+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}
	if err != nil || len(buf) > maxAuditBody {
		return nil
	}
	return buf
}

var sensitiveFields = []string{"password", "secret", "token", "apiKey", "apiSecret"}

func parseAuditValues(body []byte) map[string]interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed map[string]interface{}
	if json.Unmarshal(body, &parsed) != nil {
		return nil
	}
	for _, f := range sensitiveFields {
		delete(parsed, f)
	}
	return parsed
}
