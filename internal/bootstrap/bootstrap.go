package bootstrap

import (
	"log/slog"
	"time"

	"github.com/inflective/voice-reader/internal/config"
	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/core/ports"
	"github.com/inflective/voice-reader/internal/core/usecase"
	"github.com/inflective/voice-reader/internal/infrastructure/extractor"
	"github.com/inflective/voice-reader/internal/infrastructure/fetch"
	"github.com/inflective/voice-reader/internal/infrastructure/llm/openai"
	"github.com/inflective/voice-reader/internal/infrastructure/resilience"
	"github.com/inflective/voice-reader/internal/observability/metrics"
)

const ServiceName = "voice-reader"

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	Normalizer ports.ContentNormalizer
	Narrator   ports.Narrator
}

func New(cfg config.Config, logger *slog.Logger) *App {
	m := metrics.New(ServiceName)
	observer := &metricsObserver{metrics: m}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	aiClient := openai.New(openai.Config{
		APIKey:          cfg.OpenAIAPIKey,
		BaseURL:         cfg.OpenAIBaseURL,
		ScriptModel:     cfg.ScriptModel,
		VisionModel:     cfg.VisionModel,
		TTSModel:        cfg.TTSModel,
		TTSVoice:        cfg.TTSVoice,
		STTModel:        cfg.STTModel,
		ScriptMaxTokens: cfg.ScriptMaxTokens,
	}, executor)

	fetcher := fetch.NewFetcher(
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
		cfg.FetchMaxBodyBytes,
	)
	registry := extractor.NewDefaultRegistry(openai.NewDescriber(aiClient))

	normalizer := usecase.NewNormalizeContentUseCase(fetcher, registry, observer, logger)
	narrator := usecase.NewNarrateUseCase(
		normalizer,
		openai.NewScriptWriter(aiClient),
		openai.NewSynthesizer(aiClient),
		openai.NewTranscriber(aiClient),
		observer,
		logger,
		time.Duration(cfg.UpstreamTimeoutSeconds)*time.Second,
	)

	return &App{
		Config:     cfg,
		Metrics:    m,
		Normalizer: normalizer,
		Narrator:   narrator,
	}
}

// metricsObserver bridges pipeline events onto the prometheus instruments.
type metricsObserver struct {
	metrics *metrics.Metrics
}

func (o *metricsObserver) NormalizationCompleted(modality domain.ContentModality) {
	o.metrics.RecordNormalization(ServiceName, string(modality))
}

func (o *metricsObserver) FetchFailed(err error) {
	o.metrics.RecordFetchRejection(ServiceName, fetch.ReasonForError(err))
}

func (o *metricsObserver) ExtractionFailed(ext string) {
	o.metrics.RecordExtractionFailure(ServiceName, ext)
}

func (o *metricsObserver) NarrationCompleted(entry string, duration time.Duration, audioBytes int) {
	o.metrics.RecordNarration(ServiceName, entry, duration, audioBytes)
}
