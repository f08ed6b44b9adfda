package profilegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	// Timeout bounds a single Generate call. Zero means the default.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client performs one generateContent exchange per Generate call. It never
// retries; the caller decides what to do with a failure.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient validates cfg and returns a ready Client.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GENAI_API_KEY")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("missing GENAI_MODEL")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log.With("service", "ProfileGenClient", "model", cfg.Model),
	}, nil
}

// Model returns the model identifier sent with every request.
func (c *Client) Model() string {
	return c.model
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

type generateContentResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
	Error          *apiError       `json:"error,omitempty"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate sends req and returns a validated profile, or an *Error.
func (c *Client) Generate(ctx context.Context, req Request) (model.QuestProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		},
	})
	if err != nil {
		return model.QuestProfile{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.QuestProfile{}, &Error{Kind: KindTransport, Detail: "build request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn("generate request failed", "error", err, "elapsed", time.Since(start))
		return model.QuestProfile{}, &Error{Kind: KindTransport, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.QuestProfile{}, &Error{Kind: KindTransport, Detail: "read response", Cause: err}
	}

	c.log.Debug("generate response", "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.QuestProfile{}, serviceError(resp.StatusCode, respBody)
	}

	text, err := extractText(respBody)
	if err != nil {
		return model.QuestProfile{}, err
	}
	return ParseProfile([]byte(text))
}

func serviceError(status int, body []byte) *Error {
	var env generateContentResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return &Error{Kind: KindService, StatusCode: status, Detail: env.Error.Message}
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 200 {
		detail = detail[:200]
	}
	return &Error{Kind: KindService, StatusCode: status, Detail: detail}
}

// extractText returns the concatenated text parts of the first candidate.
func extractText(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", &Error{Kind: KindEmpty, Detail: "empty response body"}
	}

	var env generateContentResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &Error{Kind: KindMalformed, Detail: "decode response envelope", Cause: err}
	}
	if env.Error != nil {
		return "", &Error{Kind: KindService, StatusCode: env.Error.Code, Detail: env.Error.Message}
	}
	if env.PromptFeedback != nil && env.PromptFeedback.BlockReason != "" {
		return "", &Error{Kind: KindService, Detail: "prompt blocked: " + env.PromptFeedback.BlockReason}
	}
	if len(env.Candidates) == 0 {
		return "", &Error{Kind: KindEmpty, Detail: "no candidates"}
	}

	var b strings.Builder
	for _, p := range env.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", &Error{Kind: KindEmpty, Detail: "candidate has no text (finish reason " + env.Candidates[0].FinishReason + ")"}
	}
	return b.String(), nil
}
