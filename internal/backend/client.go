// Package backend is the HTTP client for the invoice assistant API: the
// simple-chat endpoint, the plan-creation endpoint and the team-mode query.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/set-night/invoicedesk/internal/config"
	"github.com/set-night/invoicedesk/internal/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Error is a backend failure with the human-readable message extracted from
// the error payload when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Chat submits a message plus the raw bytes of every attachment to the
// simple-chat endpoint and returns the response body verbatim. The body may
// be plain text or the structured JSON payload; interpreting it is the
// caller's concern.
func (c *Client) Chat(ctx context.Context, userID, message string, attachments []domain.Attachment) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("user_id", userID); err != nil {
		return "", fmt.Errorf("write user_id field: %w", err)
	}
	if err := w.WriteField("message", message); err != nil {
		return "", fmt.Errorf("write message field: %w", err)
	}

	for _, att := range attachments {
		part, err := w.CreatePart(fileHeader(att.Name, att.MimeType))
		if err != nil {
			return "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/simple_chat", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// CreatePlan submits a message to the plan-creation endpoint. Attachments
// are never sent on this path.
func (c *Client) CreatePlan(ctx context.Context, userID, teamID, message string) (*domain.PlanResult, error) {
	payload, err := json.Marshal(map[string]string{
		"user_id": userID,
		"team_id": teamID,
		"message": message,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/plans", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result domain.PlanResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}
	return &result, nil
}

// TeamMode reports whether the user's current team answers in direct-chat
// mode rather than creating plans.
func (c *Client) TeamMode(ctx context.Context, userID string) (bool, error) {
	endpoint := c.baseURL + "/v3/team_mode?user_id=" + url.QueryEscape(userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return false, err
	}

	var result struct {
		DirectChat bool `json:"direct_chat"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("parse team mode response: %w", err)
	}
	return result.DirectChat, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, backendError(resp.StatusCode, body)
	}
	return body, nil
}

// backendError extracts {"error": "..."} when present; otherwise the status
// code alone carries the failure.
func backendError(status int, body []byte) *Error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &Error{Status: status, Message: payload.Error}
	}
	return &Error{Status: status}
}

func fileHeader(name, mimeType string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(name)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h.Set("Content-Type", mimeType)
	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
