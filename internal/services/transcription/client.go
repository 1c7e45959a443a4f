package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/killallgit/scribe-api/internal/models"
)

// Config holds configuration for the AssemblyAI client
type Config struct {
	APIKey          string
	BaseURL         string        // Default: https://api.assemblyai.com
	Timeout         time.Duration // Per request. Default: 30s
	DefaultModel    models.SpeechModel
	DefaultLanguage string

	HTTPClient *http.Client
}

// Client talks to the AssemblyAI v2 transcript API
type Client struct {
	httpClient *http.Client
	config     Config
	baseURL    string
}

// wire models accepted by the provider
var speechModels = map[models.SpeechModel]string{
	models.SpeechModelBest: "best",
	models.SpeechModelFast: "nano",
}

type submitRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeechModel       string `json:"speech_model,omitempty"`
	LanguageCode      string `json:"language_code,omitempty"`
	LanguageDetection bool   `json:"language_detection,omitempty"`
}

type transcriptResponse struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	Text          *string  `json:"text"`
	AudioDuration *float64 `json:"audio_duration"`
	Error         string   `json:"error"`
}

// NewClient creates a new AssemblyAI client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.assemblyai.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = models.SpeechModelBest
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Submit creates a transcription job and returns its id
func (c *Client) Submit(ctx context.Context, req models.TranscriptionRequest) (string, error) {
	payload, err := c.buildSubmitRequest(req)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &SubmissionError{Cause: CauseHTTPError, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return "", &SubmissionError{Cause: CauseHTTPError, Err: err}
	}
	httpReq.Header.Set("authorization", c.config.APIKey)
	httpReq.Header.Set("content-type", "application/json")

	log.Printf("[INFO] Submitting transcription for %s (model=%s, language=%s)", req.AudioURL, payload.SpeechModel, languageLabel(payload))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &SubmissionError{Cause: CauseHTTPError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[ERROR] Transcription submission rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		return "", &SubmissionError{
			Cause:      CauseHTTPError,
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	var out transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &SubmissionError{Cause: CauseHTTPError, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if out.Error != "" {
		return "", &SubmissionError{Cause: CauseProviderRejected, StatusCode: resp.StatusCode, Message: out.Error}
	}
	if out.ID == "" {
		return "", &SubmissionError{Cause: CauseProviderRejected, StatusCode: resp.StatusCode, Message: "response carried no job id"}
	}

	log.Printf("[INFO] Transcription job %s created", out.ID)
	return out.ID, nil
}

// Status reads the current state of a job once
func (c *Client) Status(ctx context.Context, jobID string) (*models.TranscriptionJob, error) {
	endpoint := fmt.Sprintf("%s/v2/transcript/%s", c.baseURL, url.PathEscape(jobID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("authorization", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var out transcriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &models.TranscriptionJob{
		ID:              jobID,
		Status:          models.JobStatus(out.Status),
		Text:            out.Text,
		DurationSeconds: out.AudioDuration,
		ErrorMessage:    out.Error,
	}, nil
}

func (c *Client) buildSubmitRequest(req models.TranscriptionRequest) (submitRequest, error) {
	model := req.Model
	if model == "" {
		model = c.config.DefaultModel
	}
	wire, ok := speechModels[model]
	if !ok {
		return submitRequest{}, &SubmissionError{Cause: CauseProviderRejected, Message: fmt.Sprintf("unsupported speech model %q", model)}
	}

	payload := submitRequest{AudioURL: req.AudioURL, SpeechModel: wire}

	lang := req.Language
	if lang == "" {
		lang = c.config.DefaultLanguage
	}
	switch {
	case strings.EqualFold(lang, models.LanguageAuto):
		payload.LanguageDetection = true
	case lang != "":
		payload.LanguageCode = lang
	}

	return payload, nil
}

func languageLabel(p submitRequest) string {
	if p.LanguageDetection {
		return models.LanguageAuto
	}
	if p.LanguageCode == "" {
		return "provider default"
	}
	return p.LanguageCode
}
