package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/domain/entity"
)

const (
	maxBodyLogLength = 500 // Maximum characters to log for body
)

// Client talks to the deployed Apps Script web app. The script multiplexes
// all operations onto one URL and dispatches on the "action" parameter.
type Client interface {
	// Get performs a GET request with the given query parameters
	Get(ctx context.Context, action string, params url.Values, result interface{}) error
	// PostForm performs a url-encoded POST request
	PostForm(ctx context.Context, action string, form url.Values, result interface{}) error
	// PostMultipart performs a multipart/form-data POST request
	PostMultipart(ctx context.Context, action string, fields map[string]string, result interface{}) error
}

// APILogSaver interface for saving API logs
type APILogSaver interface {
	Save(ctx context.Context, log *entity.APILog) error
}

type client struct {
	httpClient  *http.Client
	scriptURL   string
	apiLogSaver APILogSaver
	logger      *zap.Logger
}

func NewClient(cfg *config.Config, apiLogSaver APILogSaver, logger *zap.Logger) Client {
	timeout := cfg.Script.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	logger.Info("Script client initialized",
		zap.String("url", cfg.Script.URL),
		zap.Duration("timeout", timeout),
	)

	return &client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		scriptURL:   cfg.Script.URL,
		apiLogSaver: apiLogSaver,
		logger:      logger,
	}
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}

// truncateBase64 truncates base64-like runs in a logged body. Upload bodies
// carry whole files as base64, which would otherwise swamp the logs.
func truncateBase64(body string, maxLength int) string {
	base64Pattern := regexp.MustCompile(`[A-Za-z0-9+/=%]{200,}`)

	return base64Pattern.ReplaceAllStringFunc(body, func(match string) string {
		return fmt.Sprintf("%s... [base64 truncated, total %d chars]", match[:maxLength], len(match))
	})
}

// formatHeadersForLog formats HTTP headers for logging in "Header Key=Value" format
func formatHeadersForLog(headers http.Header) string {
	var sb strings.Builder
	for key, values := range headers {
		for _, value := range values {
			if len(value) > 100 {
				value = value[:100] + "..."
			}
			sb.WriteString(fmt.Sprintf("Header %s=%s\n", key, value))
		}
	}
	return sb.String()
}

// logRequest logs the HTTP request details
func (c *client) logRequest(method, fullURL, action string, headers http.Header, body []byte) {
	var logBuilder strings.Builder

	logBuilder.WriteString("\n>>> [SCRIPT-REQ]\n")
	logBuilder.WriteString(fmt.Sprintf("Method: %s\n", method))
	logBuilder.WriteString(fmt.Sprintf("URL: %s\n", fullURL))
	logBuilder.WriteString(fmt.Sprintf("Action: %s\n", action))
	logBuilder.WriteString(formatHeadersForLog(headers))

	if len(body) > 0 {
		bodyStr := truncateBase64(string(body), 100)
		bodyStr = truncateString(bodyStr, maxBodyLogLength)
		logBuilder.WriteString(fmt.Sprintf("REQUEST BODY: %s\n", bodyStr))
	}

	c.logger.Info(logBuilder.String())
}

// logResponse logs the HTTP response details
func (c *client) logResponse(statusCode int, statusText string, duration time.Duration, headers http.Header, body []byte) {
	var logBuilder strings.Builder

	logBuilder.WriteString("\n>>> [SCRIPT-RESPONSE]\n")
	logBuilder.WriteString(fmt.Sprintf("Status: %d %s\n", statusCode, statusText))
	logBuilder.WriteString(fmt.Sprintf("Duration: %s\n", duration))
	logBuilder.WriteString(formatHeadersForLog(headers))

	bodyStr := truncateString(string(body), maxBodyLogLength)
	logBuilder.WriteString(fmt.Sprintf("Body: %s\n", bodyStr))

	c.logger.Info(logBuilder.String())
}

// saveAPILog saves the API request/response log to database
func (c *client) saveAPILog(method, endpoint, action string, requestBody, responseBody []byte, statusCode int, duration time.Duration) {
	if c.apiLogSaver == nil {
		return
	}

	reqBodyStr := ""
	if len(requestBody) > 0 {
		reqBodyStr = truncateBase64(string(requestBody), 100)
		if len(reqBodyStr) > 10000 {
			reqBodyStr = reqBodyStr[:10000] + "... [truncated]"
		}
	}

	respBodyStr := string(responseBody)
	if len(respBodyStr) > 10000 {
		respBodyStr = respBodyStr[:10000] + "... [truncated]"
	}

	apiLog := &entity.APILog{
		Endpoint:     endpoint,
		Method:       method,
		Action:       action,
		RequestBody:  reqBodyStr,
		ResponseBody: respBodyStr,
		StatusCode:   statusCode,
		Duration:     duration.Milliseconds(),
		CreatedAt:    time.Now(),
	}

	// Save asynchronously to not block the request
	go func() {
		if err := c.apiLogSaver.Save(context.Background(), apiLog); err != nil {
			c.logger.Warn("Failed to save API log to database",
				zap.String("action", action),
				zap.Error(err),
			)
		}
	}()
}

func (c *client) do(ctx context.Context, req *http.Request, action string, reqBody []byte, result interface{}) error {
	c.logRequest(req.Method, req.URL.String(), action, req.Header, reqBody)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logResponse(resp.StatusCode, resp.Status, duration, resp.Header, respBody)
	c.saveAPILog(req.Method, c.scriptURL, action, reqBody, respBody, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("script error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (c *client) Get(ctx context.Context, action string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("action", action)

	fullURL := c.scriptURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, req, action, nil, result)
}

func (c *client) PostForm(ctx context.Context, action string, form url.Values, result interface{}) error {
	if form == nil {
		form = url.Values{}
	}
	form.Set("action", action)

	body := form.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, req, action, []byte(body), result)
}

func (c *client) PostMultipart(ctx context.Context, action string, fields map[string]string, result interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("action", action); err != nil {
		return fmt.Errorf("failed to write field action: %w", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	// Log a field summary rather than the raw multipart body
	var bodySummary strings.Builder
	bodySummary.WriteString("{fields: [")
	fieldKeys := make([]string, 0, len(fields))
	for k, v := range fields {
		fieldKeys = append(fieldKeys, fmt.Sprintf("%s(%d chars)", k, len(v)))
	}
	bodySummary.WriteString(strings.Join(fieldKeys, ", "))
	bodySummary.WriteString("]}")

	return c.do(ctx, req, action, []byte(bodySummary.String()), result)
}
