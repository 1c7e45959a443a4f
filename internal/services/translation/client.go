package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Translator translates one segment of text
type Translator interface {
	Translate(ctx context.Context, segment string) (string, error)
}

// Config holds configuration for the chat-completion client
type Config struct {
	APIKey         string
	APIURL         string
	Model          string
	TargetLanguage string        // Default: Simplified Chinese
	MaxTokens      int           // Default: 3000
	Temperature    float64       // Default: 0.2
	Timeout        time.Duration // Default: 2m

	// Zero disables client-side throttling
	RequestsPerMinute int

	HTTPClient *http.Client
}

// Client calls an OpenAI-compatible chat-completion endpoint
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	prompt      string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const (
	sourceOpen  = "[SOURCE BEGIN]"
	sourceClose = "[SOURCE END]"
)

const systemPromptTemplate = `Follow these text processing rules exactly. Do not improvise, question or deviate from them.

- If the input text is already written in %[1]s, only add appropriate punctuation. Do not alter, polish, reorganize or summarize it.
- If the input text is in any other language, translate it completely and faithfully, sentence by sentence, into modern standard %[1]s. Never omit, skip, summarize or embellish.
- Never add notes, explanations, prefaces or afterwords.
- Output only the final processed text.`

// NewClient creates a new translation client
func NewClient(cfg Config) *Client {
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "Simplified Chinese"
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 3000
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return &Client{
		httpClient:  httpClient,
		rateLimiter: limiter,
		config:      cfg,
		prompt:      fmt.Sprintf(systemPromptTemplate, cfg.TargetLanguage),
	}
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.config.Model
}

// TargetLanguage returns the language segments are translated into
func (c *Client) TargetLanguage() string {
	return c.config.TargetLanguage
}

// Translate sends one segment to the provider and returns the trimmed output
func (c *Client) Translate(ctx context.Context, segment string) (string, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", &TranslationError{Cause: CauseUpstreamHTTP, Err: err}
		}
	}

	body, err := json.Marshal(c.buildRequest(segment))
	if err != nil {
		return "", &TranslationError{Cause: CauseMalformedResponse, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", &TranslationError{Cause: CauseUpstreamHTTP, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TranslationError{Cause: CauseUpstreamHTTP, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &TranslationError{
			Cause:      CauseUpstreamHTTP,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))),
		}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &TranslationError{Cause: CauseMalformedResponse, Err: err}
	}
	if len(out.Choices) == 0 {
		return "", &TranslationError{Cause: CauseMalformedResponse, Err: fmt.Errorf("response has no choices")}
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", &TranslationError{Cause: CauseEmptyResponse}
	}
	return text, nil
}

func (c *Client) buildRequest(segment string) chatRequest {
	return chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.prompt},
			{Role: "user", Content: sourceOpen + "\n" + segment + "\n" + sourceClose},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		TopP:        1,
		Stream:      false,
	}
}
