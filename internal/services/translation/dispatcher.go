package translation

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/models"
)

const (
	DefaultAttempts      = 2
	DefaultFailureMarker = "[segment translation failed]"
	DefaultSeparator     = "\n\n"
)

// DispatcherConfig controls retries and fan-out
type DispatcherConfig struct {
	Attempts      int           // Default: 2
	RetryDelay    time.Duration // Pause between attempts of one segment
	MaxConcurrent int           // 0 runs one task per segment
	FailureMarker string        // Substituted for segments that never succeed
	Separator     string        // Default: blank line
}

// Dispatcher translates segments concurrently and reassembles them in order
type Dispatcher struct {
	translator Translator
	config     DispatcherConfig
	metrics    *metrics.Metrics
}

// NewDispatcher creates a dispatcher around a translator
func NewDispatcher(t Translator, cfg DispatcherConfig, m *metrics.Metrics) *Dispatcher {
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.MaxConcurrent < 0 {
		cfg.MaxConcurrent = 0
	}
	if cfg.FailureMarker == "" {
		cfg.FailureMarker = DefaultFailureMarker
	}
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	return &Dispatcher{translator: t, config: cfg, metrics: m}
}

// FailureMarker returns the text substituted for failed segments
func (d *Dispatcher) FailureMarker() string {
	return d.config.FailureMarker
}

// DispatchAll translates every segment and joins the results by index.
// It never fails: segments that exhaust their attempts, or are still
// unresolved when ctx ends, contribute the failure marker instead.
func (d *Dispatcher) DispatchAll(ctx context.Context, segments []models.Segment) models.TranslationOutcome {
	results := make([]models.SegmentResult, len(segments))

	var g errgroup.Group
	if d.config.MaxConcurrent > 0 {
		g.SetLimit(d.config.MaxConcurrent)
	}

	for i, seg := range segments {
		g.Go(func() error {
			results[i] = d.translateWithRetry(ctx, i, seg)
			return nil
		})
	}
	_ = g.Wait()

	pieces := make([]string, len(results))
	for i, r := range results {
		pieces[i] = r.TranslatedText
	}

	return models.TranslationOutcome{
		JoinedText: Join(pieces, d.config.Separator),
		Segments:   results,
	}
}

func (d *Dispatcher) translateWithRetry(ctx context.Context, slot int, seg models.Segment) models.SegmentResult {
	start := time.Now()
	result := models.SegmentResult{Index: slot}

	for attempt := 1; attempt <= d.config.Attempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		if attempt > 1 && d.config.RetryDelay > 0 {
			t := time.NewTimer(d.config.RetryDelay)
			select {
			case <-ctx.Done():
				t.Stop()
			case <-t.C:
			}
			if ctx.Err() != nil {
				break
			}
		}

		result.Attempts = attempt
		text, err := d.translator.Translate(ctx, seg.Text)
		d.metrics.RecordSegmentAttempt(err == nil)
		if err == nil {
			result.TranslatedText = text
			result.Outcome = models.SegmentOutcomeSuccess
			d.metrics.RecordSegment(string(result.Outcome), time.Since(start))
			log.Printf("[DEBUG] Segment %d translated in %v (attempt %d, %d runes)", seg.Index, time.Since(start), attempt, seg.Length)
			return result
		}
		log.Printf("[WARN] Segment %d attempt %d/%d failed: %v", seg.Index, attempt, d.config.Attempts, err)
	}

	result.TranslatedText = d.config.FailureMarker
	result.Outcome = models.SegmentOutcomeFailedAfterRetries
	d.metrics.RecordSegment(string(result.Outcome), time.Since(start))
	log.Printf("[ERROR] Segment %d failed after %d attempt(s) in %v", seg.Index, result.Attempts, time.Since(start))
	return result
}
