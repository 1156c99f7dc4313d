package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/infrastructure/resilience"
)

// api is the slice of the SDK client the adapters actually call.
type api interface {
	CreateChatCompletion(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
	CreateSpeech(ctx context.Context, request goopenai.CreateSpeechRequest) (goopenai.RawResponse, error)
	CreateTranscription(ctx context.Context, request goopenai.AudioRequest) (goopenai.AudioResponse, error)
}

type Config struct {
	APIKey          string
	BaseURL         string
	ScriptModel     string
	VisionModel     string
	TTSModel        string
	TTSVoice        string
	STTModel        string
	ScriptMaxTokens int
}

type Client struct {
	api      api
	cfg      Config
	executor *resilience.Executor
}

func New(cfg Config, executor *resilience.Executor) *Client {
	transportCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		transportCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Client{
		api:      goopenai.NewClientWithConfig(transportCfg),
		cfg:      cfg,
		executor: executor,
	}
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	err := c.executor.Execute(ctx, operation, fn, classifyAPIError)
	return wrapBoundaryError(operation, err)
}

type ScriptWriter struct {
	client *Client
}

func NewScriptWriter(client *Client) *ScriptWriter {
	return &ScriptWriter{client: client}
}

func (s *ScriptWriter) GenerateScript(ctx context.Context, text string, modality domain.ContentModality) (string, error) {
	request := goopenai.ChatCompletionRequest{
		Model: s.client.cfg.ScriptModel,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: buildScriptPrompt(modality),
			},
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Source modality: %s\n\nRaw content:\n%s", modality, text),
			},
		},
		Temperature: 0.7,
		MaxTokens:   s.client.cfg.ScriptMaxTokens,
	}

	var script string
	err := s.client.execute(ctx, "generate_script", func(ctx context.Context) error {
		resp, err := s.client.api.CreateChatCompletion(ctx, request)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("generate_script: empty choices")
		}
		script = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return script, nil
}

type Describer struct {
	client *Client
}

func NewDescriber(client *Client) *Describer {
	return &Describer{client: client}
}

func (d *Describer) DescribeImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	request := goopenai.ChatCompletionRequest{
		Model: d.client.cfg.VisionModel,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleSystem,
				Content: visionSystemPrompt,
			},
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{
						Type: goopenai.ChatMessagePartTypeText,
						Text: "Describe this image for spoken narration.",
					},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL: dataURI,
						},
					},
				},
			},
		},
	}

	var description string
	err := d.client.execute(ctx, "describe_image", func(ctx context.Context) error {
		resp, err := d.client.api.CreateChatCompletion(ctx, request)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("describe_image: empty choices")
		}
		description = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return description, nil
}

type Synthesizer struct {
	client *Client
}

func NewSynthesizer(client *Client) *Synthesizer {
	return &Synthesizer{client: client}
}

func (s *Synthesizer) Synthesize(ctx context.Context, script string) ([]byte, error) {
	request := goopenai.CreateSpeechRequest{
		Model:          goopenai.SpeechModel(s.client.cfg.TTSModel),
		Input:          script,
		Voice:          goopenai.SpeechVoice(s.client.cfg.TTSVoice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
	}

	var audio []byte
	err := s.client.execute(ctx, "synthesize_speech", func(ctx context.Context) error {
		resp, err := s.client.api.CreateSpeech(ctx, request)
		if err != nil {
			return err
		}
		defer resp.Close()

		audio, err = io.ReadAll(resp)
		if err != nil {
			return fmt.Errorf("read speech stream: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audio, nil
}

type Transcriber struct {
	client *Client
}

func NewTranscriber(client *Client) *Transcriber {
	return &Transcriber{client: client}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	// The SDK infers the container format from the file name extension.
	if filepath.Ext(filename) == "" {
		filename = "speech.webm"
	}

	request := goopenai.AudioRequest{
		Model:    t.client.cfg.STTModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	}

	var text string
	err := t.client.execute(ctx, "transcribe_audio", func(ctx context.Context) error {
		resp, err := t.client.api.CreateTranscription(ctx, request)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}
