package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/core/ports"
)

const (
	entryContent = "content"
	entrySpeech  = "voice"
)

// NarrateUseCase is the end-to-end pipeline: normalize (or transcribe), write
// a narration script, render it to speech.
type NarrateUseCase struct {
	normalizer      ports.ContentNormalizer
	scripts         ports.ScriptGenerator
	speech          ports.SpeechSynthesizer
	transcriber     ports.Transcriber
	observer        ports.PipelineObserver
	logger          *slog.Logger
	upstreamTimeout time.Duration
}

func NewNarrateUseCase(
	normalizer ports.ContentNormalizer,
	scripts ports.ScriptGenerator,
	speech ports.SpeechSynthesizer,
	transcriber ports.Transcriber,
	observer ports.PipelineObserver,
	logger *slog.Logger,
	upstreamTimeout time.Duration,
) *NarrateUseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if upstreamTimeout <= 0 {
		upstreamTimeout = 60 * time.Second
	}
	return &NarrateUseCase{
		normalizer:      normalizer,
		scripts:         scripts,
		speech:          speech,
		transcriber:     transcriber,
		observer:        observer,
		logger:          logger,
		upstreamTimeout: upstreamTimeout,
	}
}

func (uc *NarrateUseCase) NarrateContent(ctx context.Context, input domain.RawInput) ([]byte, error) {
	start := time.Now()

	content := uc.normalizer.Normalize(ctx, input)
	audio, err := uc.narrate(ctx, content)
	if err != nil {
		return nil, err
	}

	uc.observer.NarrationCompleted(entryContent, time.Since(start), len(audio))
	uc.logger.Info("narration_completed",
		"entry", entryContent,
		"modality", content.Modality,
		"audio_bytes", len(audio),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return audio, nil
}

func (uc *NarrateUseCase) NarrateSpeech(ctx context.Context, audio []byte, filename string) ([]byte, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.upstreamTimeout)
	defer cancel()

	text, err := uc.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		text = domain.PlaceholderSilentSpeech
	}

	out, err := uc.synthesize(ctx, domain.NormalizedContent{
		Text:     text,
		Modality: domain.ModalityLiveSpeech,
	})
	if err != nil {
		return nil, err
	}

	uc.observer.NarrationCompleted(entrySpeech, time.Since(start), len(out))
	uc.logger.Info("narration_completed",
		"entry", entrySpeech,
		"modality", domain.ModalityLiveSpeech,
		"audio_bytes", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (uc *NarrateUseCase) narrate(ctx context.Context, content domain.NormalizedContent) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.upstreamTimeout)
	defer cancel()
	return uc.synthesize(ctx, content)
}

func (uc *NarrateUseCase) synthesize(ctx context.Context, content domain.NormalizedContent) ([]byte, error) {
	script, err := uc.scripts.GenerateScript(ctx, content.Text, content.Modality)
	if err != nil {
		return nil, err
	}
	return uc.speech.Synthesize(ctx, script)
}
