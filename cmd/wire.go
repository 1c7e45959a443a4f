package cmd

import (
	"fmt"
	"log"

	"github.com/killallgit/scribe-api/api/types"
	"github.com/killallgit/scribe-api/internal/database"
	"github.com/killallgit/scribe-api/internal/metrics"
	"github.com/killallgit/scribe-api/internal/models"
	"github.com/killallgit/scribe-api/internal/services/cache"
	"github.com/killallgit/scribe-api/internal/services/history"
	"github.com/killallgit/scribe-api/internal/services/pipeline"
	"github.com/killallgit/scribe-api/internal/services/transcription"
	"github.com/killallgit/scribe-api/internal/services/translation"
	"github.com/killallgit/scribe-api/pkg/audiourl"
	"github.com/killallgit/scribe-api/pkg/config"
)

// wireOptions selects the optional subsystems of a build
type wireOptions struct {
	withHistory bool
}

// app is the assembled object graph plus its teardown
type app struct {
	deps     *types.Dependencies
	pipeline *pipeline.Service
	closers  []func()
}

// Close releases resources in reverse order of creation
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// buildApp wires every component from configuration
func buildApp(cfg *config.Config, opts wireOptions) (*app, error) {
	a := &app{}
	m := metrics.NewMetrics()

	profile, err := cfg.Transcription.ActiveProfile()
	if err != nil {
		return nil, err
	}

	validatorOpts := audiourl.DefaultOptions()
	if len(cfg.Validation.AllowedHosts) > 0 {
		validatorOpts.AllowedHosts = cfg.Validation.AllowedHosts
	}
	if len(cfg.Validation.AllowedMimeTypes) > 0 {
		validatorOpts.AllowedMimeTypes = cfg.Validation.AllowedMimeTypes
	}
	if cfg.Validation.MetadataTimeout > 0 {
		validatorOpts.Timeout = cfg.Validation.MetadataTimeout
	}
	validatorOpts.AllowGitHubRaw = cfg.Validation.AllowGitHubRawURL
	validatorOpts.PublicDomain = cfg.Validation.PublicDomain
	validatorOpts.MaxSize = profile.MaxFileBytes

	stt := transcription.NewClient(transcription.Config{
		APIKey:          cfg.AssemblyAI.APIKey,
		BaseURL:         cfg.AssemblyAI.BaseURL,
		Timeout:         cfg.AssemblyAI.Timeout,
		DefaultModel:    models.SpeechModel(cfg.Transcription.DefaultModel),
		DefaultLanguage: cfg.Transcription.DefaultLanguage,
	})

	tc := cfg.Translation
	var translator translation.Translator = translation.NewClient(translation.Config{
		APIKey:            tc.APIKey,
		APIURL:            tc.APIURL,
		Model:             tc.Model,
		TargetLanguage:    tc.TargetLanguage,
		MaxTokens:         tc.MaxTokens,
		Temperature:       tc.Temperature,
		Timeout:           tc.Timeout,
		RequestsPerMinute: tc.RequestsPerMinute,
	})

	deps := &types.Dependencies{
		Metrics: m,
		Build:   currentBuild(),
	}

	if cfg.Cache.Enabled {
		mc := cache.NewMemoryCache(cfg.Cache.MaxSizeMB)
		a.closers = append(a.closers, mc.Stop)
		translator = cache.NewCachedTranslator(translator, mc, cfg.Cache.TTL, tc.Model+"|"+tc.TargetLanguage, m)
		deps.Cache = mc
	}

	pipeDeps := pipeline.Dependencies{
		Validator: audiourl.NewValidator(validatorOpts),
		Submitter: stt,
		Poller: transcription.NewPoller(stt, transcription.PollerConfig{
			Interval:    profile.Interval,
			MaxAttempts: profile.MaxAttempts,
		}, m),
		Dispatcher: translation.NewDispatcher(translator, translation.DispatcherConfig{
			Attempts:      tc.Attempts,
			RetryDelay:    tc.RetryDelay,
			MaxConcurrent: tc.MaxConcurrent,
			FailureMarker: tc.FailureMarker,
			Separator:     tc.Separator,
		}, m),
		Metrics: m,
	}

	if opts.withHistory && cfg.Database.Path != "" {
		db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := db.Close(); err != nil {
				log.Printf("[WARN] Closing database: %v", err)
			}
		})
		if err := db.Migrate(); err != nil {
			a.Close()
			return nil, err
		}

		svc := history.NewService(history.NewRepository(db.DB))
		deps.DB = db
		deps.History = svc
		pipeDeps.History = svc
		log.Printf("[INFO] History enabled at %s", cfg.Database.Path)
	}

	a.pipeline = pipeline.NewService(pipeDeps, pipeline.Config{
		MaxSegmentLength:    tc.MaxSegmentLength,
		TranslationDeadline: tc.Deadline,
		EmptyText:           cfg.Transcription.EmptyText,
	})
	deps.Pipeline = a.pipeline
	a.deps = deps

	log.Printf("[INFO] Transcription profile %q: interval=%s attempts=%d budget=%s",
		cfg.Transcription.Profile, profile.Interval, profile.MaxAttempts, profile.Budget())
	return a, nil
}
