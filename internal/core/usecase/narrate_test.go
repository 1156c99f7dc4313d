package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inflective/voice-reader/internal/core/domain"
)

type fakeNormalizer struct {
	result domain.NormalizedContent
}

func (f *fakeNormalizer) Normalize(context.Context, domain.RawInput) domain.NormalizedContent {
	return f.result
}

type fakeScriptGenerator struct {
	gotText     string
	gotModality domain.ContentModality
	script      string
	err         error
	hadDeadline bool
}

func (f *fakeScriptGenerator) GenerateScript(ctx context.Context, text string, modality domain.ContentModality) (string, error) {
	f.gotText = text
	f.gotModality = modality
	_, f.hadDeadline = ctx.Deadline()
	return f.script, f.err
}

type fakeSynthesizer struct {
	gotScript string
	audio     []byte
	err       error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, script string) ([]byte, error) {
	f.gotScript = script
	return f.audio, f.err
}

type fakeTranscriber struct {
	gotFilename string
	text        string
	err         error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, filename string) (string, error) {
	f.gotFilename = filename
	return f.text, f.err
}

func TestNarrateContentPipesNormalizedTextThroughScriptAndSpeech(t *testing.T) {
	normalizer := &fakeNormalizer{result: domain.NormalizedContent{
		Text:     "extracted article text",
		Modality: domain.ModalityRemoteURL,
	}}
	scripts := &fakeScriptGenerator{script: "A spoken rendition."}
	speech := &fakeSynthesizer{audio: []byte("mp3")}
	uc := NewNarrateUseCase(normalizer, scripts, speech, &fakeTranscriber{}, nil, nil, time.Minute)

	audio, err := uc.NarrateContent(context.Background(), domain.TextInput("https://example.com"))
	if err != nil {
		t.Fatalf("NarrateContent() error = %v", err)
	}
	if !bytes.Equal(audio, []byte("mp3")) {
		t.Fatalf("unexpected audio %q", audio)
	}
	if scripts.gotText != "extracted article text" || scripts.gotModality != domain.ModalityRemoteURL {
		t.Fatalf("script generator got %q / %s", scripts.gotText, scripts.gotModality)
	}
	if speech.gotScript != "A spoken rendition." {
		t.Fatalf("synthesizer got %q", speech.gotScript)
	}
	if !scripts.hadDeadline {
		t.Fatalf("expected upstream deadline on script generation context")
	}
}

func TestNarrateContentPropagatesScriptFailure(t *testing.T) {
	normalizer := &fakeNormalizer{result: domain.NormalizedContent{Text: "x", Modality: domain.ModalityDirectText}}
	scripts := &fakeScriptGenerator{err: domain.WrapError(domain.ErrUpstream, "generate_script", errors.New("boom"))}
	uc := NewNarrateUseCase(normalizer, scripts, &fakeSynthesizer{}, &fakeTranscriber{}, nil, nil, time.Minute)

	_, err := uc.NarrateContent(context.Background(), domain.TextInput("x"))
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNarrateContentPropagatesSynthesisFailure(t *testing.T) {
	normalizer := &fakeNormalizer{result: domain.NormalizedContent{Text: "x", Modality: domain.ModalityDirectText}}
	scripts := &fakeScriptGenerator{script: "s"}
	speech := &fakeSynthesizer{err: domain.WrapError(domain.ErrTemporary, "synthesize_speech", errors.New("overloaded"))}
	uc := NewNarrateUseCase(normalizer, scripts, speech, &fakeTranscriber{}, nil, nil, time.Minute)

	_, err := uc.NarrateContent(context.Background(), domain.TextInput("x"))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestNarrateSpeechUsesLiveSpeechModality(t *testing.T) {
	transcriber := &fakeTranscriber{text: "what the user said"}
	scripts := &fakeScriptGenerator{script: "echo script"}
	speech := &fakeSynthesizer{audio: []byte("voice-mp3")}
	uc := NewNarrateUseCase(&fakeNormalizer{}, scripts, speech, transcriber, nil, nil, time.Minute)

	audio, err := uc.NarrateSpeech(context.Background(), []byte{0x1a}, "speech.webm")
	if err != nil {
		t.Fatalf("NarrateSpeech() error = %v", err)
	}
	if !bytes.Equal(audio, []byte("voice-mp3")) {
		t.Fatalf("unexpected audio %q", audio)
	}
	if transcriber.gotFilename != "speech.webm" {
		t.Fatalf("transcriber got filename %q", transcriber.gotFilename)
	}
	if scripts.gotText != "what the user said" {
		t.Fatalf("script generator got %q", scripts.gotText)
	}
	if scripts.gotModality != domain.ModalityLiveSpeech {
		t.Fatalf("expected real-time-speech modality, got %s", scripts.gotModality)
	}
}

func TestNarrateSpeechSilentTranscriptGetsPlaceholder(t *testing.T) {
	transcriber := &fakeTranscriber{text: "   \n "}
	scripts := &fakeScriptGenerator{script: "brief reply"}
	speech := &fakeSynthesizer{audio: []byte("mp3")}
	uc := NewNarrateUseCase(&fakeNormalizer{}, scripts, speech, transcriber, nil, nil, time.Minute)

	if _, err := uc.NarrateSpeech(context.Background(), []byte{0x00}, "speech.webm"); err != nil {
		t.Fatalf("NarrateSpeech() error = %v", err)
	}
	if scripts.gotText != domain.PlaceholderSilentSpeech {
		t.Fatalf("expected silent-speech placeholder, got %q", scripts.gotText)
	}
}

func TestNarrateSpeechPropagatesTranscriptionFailure(t *testing.T) {
	transcriber := &fakeTranscriber{err: domain.WrapError(domain.ErrUpstream, "transcribe_audio", errors.New("bad audio"))}
	uc := NewNarrateUseCase(&fakeNormalizer{}, &fakeScriptGenerator{}, &fakeSynthesizer{}, transcriber, nil, nil, time.Minute)

	_, err := uc.NarrateSpeech(context.Background(), []byte{0x00}, "speech.webm")
	if !domain.IsKind(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
