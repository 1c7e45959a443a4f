package audiourl

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/killallgit/scribe-api/pkg/errors"
)

// Options configures which audio URLs are accepted
type Options struct {
	AllowedHosts     []string      // Exact host names, e.g. raw.githubusercontent.com
	AllowGitHubRaw   bool          // Accept github.com URLs whose path contains /raw/
	PublicDomain     string        // Public storage origin; its host is allowed
	AllowedMimeTypes []string      // Accepted Content-Type media types
	MaxSize          int64         // Maximum Content-Length in bytes (0 = no limit)
	Timeout          time.Duration // Metadata probe timeout
	UserAgent        string
	HTTPClient       *http.Client
}

// DefaultOptions returns options matching the standard transcription profile
func DefaultOptions() Options {
	return Options{
		AllowedHosts:     []string{"raw.githubusercontent.com"},
		AllowGitHubRaw:   true,
		AllowedMimeTypes: []string{"audio/mpeg", "audio/wav", "audio/flac", "audio/mp4", "audio/x-m4a"},
		MaxSize:          50 * 1024 * 1024,
		Timeout:          10 * time.Second,
		UserAgent:        "ScribeAPI/1.0",
	}
}

// Metadata is what the HEAD probe learned about the resource
type Metadata struct {
	Size        int64
	ContentType string
}

// Validator checks that an audio URL is allowed and fetchable before a job is submitted
type Validator struct {
	client  *http.Client
	options Options
	hosts   map[string]struct{}
	mimes   map[string]struct{}
}

// NewValidator creates a validator with the given options
func NewValidator(options Options) *Validator {
	if options.Timeout == 0 {
		options.Timeout = 10 * time.Second
	}
	if options.UserAgent == "" {
		options.UserAgent = "ScribeAPI/1.0"
	}

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}

	v := &Validator{
		client:  client,
		options: options,
		hosts:   make(map[string]struct{}),
		mimes:   make(map[string]struct{}),
	}
	for _, h := range options.AllowedHosts {
		v.hosts[strings.ToLower(h)] = struct{}{}
	}
	if options.PublicDomain != "" {
		if host := hostOf(options.PublicDomain); host != "" {
			v.hosts[host] = struct{}{}
		}
	}
	for _, m := range options.AllowedMimeTypes {
		v.mimes[strings.ToLower(m)] = struct{}{}
	}
	return v
}

// Validate returns a 403 AppError for a disallowed origin and a 400 AppError
// when the resource is unreachable, too large or not an accepted audio type
func (v *Validator) Validate(ctx context.Context, rawURL string) (*Metadata, error) {
	if !v.IsAllowed(rawURL) {
		return nil, apperrors.ForbiddenError("audio URL must be a GitHub raw link or a link on the configured public storage domain").
			WithDetail("audioUrl", rawURL)
	}

	meta, err := v.probe(ctx, rawURL)
	if err != nil {
		log.Printf("[WARN] Metadata probe for %s failed: %v", rawURL, err)
		return nil, apperrors.ValidationError("audioUrl", "audio URL is not reachable; make sure it is valid and publicly accessible").
			WithCause(err)
	}

	log.Printf("[DEBUG] Audio metadata for %s: size=%d type=%s", rawURL, meta.Size, meta.ContentType)

	if v.options.MaxSize > 0 && meta.Size > v.options.MaxSize {
		return nil, apperrors.ValidationError("audioUrl", fmt.Sprintf("file too large: %.2fMB, limit is %dMB",
			float64(meta.Size)/(1024*1024), v.options.MaxSize/(1024*1024)))
	}

	if !v.isAllowedType(meta.ContentType) {
		return nil, apperrors.ValidationError("audioUrl", fmt.Sprintf("unsupported file type (%s); use mp3, wav, flac or m4a audio", meta.ContentType))
	}

	return meta, nil
}

// IsAllowed reports whether the URL comes from an accepted origin
func (v *Validator) IsAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if _, ok := v.hosts[host]; ok {
		return true
	}
	return v.options.AllowGitHubRaw && host == "github.com" && strings.Contains(u.Path, "/raw/")
}

func (v *Validator) probe(ctx context.Context, rawURL string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", v.options.UserAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	return &Metadata{Size: size, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (v *Validator) isAllowedType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	_, ok := v.mimes[strings.ToLower(mediaType)]
	return ok
}

func hostOf(domain string) string {
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	u, err := url.Parse(domain)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
