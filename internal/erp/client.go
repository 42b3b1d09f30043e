// Package erp is a client for the ERP's REST API: document resources under
// /resource and whitelisted server methods under /method.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/config"
	"github.com/lordsmint/portal-api/internal/domain"
	"go.uber.org/zap"
)

const (
	maxBodySize = 32 << 20
	maxPDFSize  = 64 << 20
)

// CallObserver records the outcome of each ERP request
type CallObserver interface {
	ObserveERPCall(operation string, status int, duration time.Duration)
}

// Client talks to the ERP. It is safe for concurrent use; per-user ERP
// sessions travel in the request context (see WithSession).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
	logger     *zap.Logger
	observer   CallObserver
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver reports every request to o
func WithObserver(o CallObserver) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates an ERP client from config
func NewClient(cfg *config.ERPConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TokenAuth reports whether requests without a user session use the API token
func (c *Client) TokenAuth() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
}

// GetDoc loads a single document into out
func (c *Client) GetDoc(ctx context.Context, doctype, name string, out interface{}) error {
	path := "/resource/" + url.PathEscape(doctype) + "/" + url.PathEscape(name)
	return c.doJSON(ctx, http.MethodGet, path, nil, nil, out)
}

// ListDocs runs a list query and decodes the rows into out
func (c *Client) ListDocs(ctx context.Context, doctype string, q ListQuery, out interface{}) error {
	values, err := q.Values()
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodGet, "/resource/"+url.PathEscape(doctype), values, nil, out)
}

// InsertDoc creates a document posted as {"data": doc}
func (c *Client) InsertDoc(ctx context.Context, doctype string, doc, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, "/resource/"+url.PathEscape(doctype), nil,
		map[string]interface{}{"data": doc}, out)
}

// SubmitDoc creates a document posted as {"doc": doc}; the portal's custom
// support doctypes read this key.
func (c *Client) SubmitDoc(ctx context.Context, doctype string, doc, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, "/resource/"+url.PathEscape(doctype), nil,
		map[string]interface{}{"doc": doc}, out)
}

// Call invokes a whitelisted server method with GET and decodes its message
func (c *Client) Call(ctx context.Context, method string, params url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, "/method/"+method, params, nil, out)
}

// Ping checks that the ERP answers
func (c *Client) Ping(ctx context.Context) error {
	var msg string
	if err := c.Call(ctx, "ping", nil, &msg); err != nil {
		return err
	}
	if msg != "pong" {
		return fmt.Errorf("erp: unexpected ping reply %q", msg)
	}
	return nil
}

// LoginResult is what a successful password login yields
type LoginResult struct {
	Session  *Session
	FullName string
}

// Login verifies a user's credentials and returns the ERP session it opened
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"usr": username, "pwd": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/method/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req, "login")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var reply struct {
		Message  string `json:"message"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if reply.Message != "Logged In" && reply.Message != "No App" {
		return nil, &Error{StatusCode: http.StatusUnauthorized, ExcType: "AuthenticationError", Message: "login was not accepted"}
	}

	session := &Session{CSRFToken: resp.Header.Get("X-Frappe-CSRF-Token")}
	for _, ck := range resp.Cookies() {
		switch ck.Name {
		case "sid":
			session.SID = ck.Value
		case "csrf_token":
			session.CSRFToken = ck.Value
		}
	}
	if session.SID == "" || session.SID == "Guest" {
		return nil, &Error{StatusCode: http.StatusUnauthorized, ExcType: "AuthenticationError", Message: "login returned no session"}
	}
	return &LoginResult{Session: session, FullName: reply.FullName}, nil
}

// Logout ends the ERP session carried by ctx
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/method/logout", nil, struct{}{}, nil)
}

// LoggedUser returns the ERP user behind the current credentials
func (c *Client) LoggedUser(ctx context.Context) (string, error) {
	var user string
	if err := c.Call(ctx, "frappe.auth.get_logged_user", nil, &user); err != nil {
		return "", err
	}
	return user, nil
}

// DownloadPDF renders a document with the given print format
func (c *Client) DownloadPDF(ctx context.Context, doctype, name, format string) ([]byte, error) {
	params := url.Values{}
	params.Set("doctype", doctype)
	params.Set("name", name)
	params.Set("format", format)

	req, err := c.newRequest(ctx, http.MethodGet, "/method/frappe.utils.print_format.download_pdf", params, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.send(req, "pdf:"+doctype)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, &Error{StatusCode: http.StatusBadGateway, Message: "print format did not return a pdf"}
	}
	return data, nil
}

// UploadFile stores a file in the ERP, optionally attached to a document
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader, doctype, docname string) (*domain.Attachment, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy upload: %w", err)
	}
	if doctype != "" && docname != "" {
		_ = w.WriteField("doctype", doctype)
		_ = w.WriteField("docname", docname)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/method/upload_file", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var file domain.Attachment
	if err := c.decode(req, "upload_file", &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, params, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.decode(req, operationName(method, path), out)
}

// decode sends req and unwraps the data or message envelope into out
func (c *Client) decode(req *http.Request, operation string, out interface{}) error {
	resp, err := c.send(req, operation)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	payload := env.Data
	if len(payload) == 0 {
		payload = env.Message
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", operation, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)
	return req, nil
}

// authorize applies the user's ERP session from the context when present,
// otherwise the API token.
func (c *Client) authorize(req *http.Request) {
	if s, ok := SessionFromContext(req.Context()); ok {
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.SID})
		if s.CSRFToken != "" && req.Method != http.MethodGet {
			req.Header.Set("X-Frappe-CSRF-Token", s.CSRFToken)
		}
		return
	}
	if c.TokenAuth() {
		req.Header.Set("Authorization", "token "+c.apiKey+":"+c.apiSecret)
	}
}

// send executes req and turns non-2xx responses into *Error
func (c *Client) send(req *http.Request, operation string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.observe(operation, 0, elapsed)
		return nil, fmt.Errorf("erp %s failed: %w", operation, err)
	}
	c.observe(operation, resp.StatusCode, elapsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("erp request",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", elapsed))
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	erpErr := parseError(resp.StatusCode, body)
	c.logger.Warn("erp request failed",
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.String("exc_type", erpErr.ExcType),
		zap.Duration("duration", elapsed))
	return nil, erpErr
}

func (c *Client) observe(operation string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveERPCall(operation, status, d)
	}
}

// operationName labels a request for logs and metrics, e.g. "GET Sales Order"
func operationName(method, path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) < 2 {
		return method + " " + path
	}
	target, err := url.PathUnescape(parts[1])
	if err != nil {
		target = parts[1]
	}
	return method + " " + target
}
