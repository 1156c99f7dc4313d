package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	ScriptModel string `yaml:"script_model"`
	VisionModel string `yaml:"vision_model"`
	TTSModel    string `yaml:"tts_model"`
	TTSVoice    string `yaml:"tts_voice"`
	STTModel    string `yaml:"stt_model"`

	FetchTimeoutSeconds    int   `yaml:"fetch_timeout_seconds"`
	FetchMaxBodyBytes      int64 `yaml:"fetch_max_body_bytes"`
	UpstreamTimeoutSeconds int   `yaml:"upstream_timeout_seconds"`
	MaxUploadBytes         int64 `yaml:"max_upload_bytes"`
	ScriptMaxTokens        int   `yaml:"script_max_tokens"`
}

// Load reads configuration from environment variables with defaults. When
// CONFIG_FILE names a YAML file, its values are applied first and environment
// variables override them.
func Load() (Config, error) {
	cfg := fromEnv()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}

	fileCfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	return merge(fileCfg, cfg), nil
}

func fromEnv() Config {
	return Config{
		APIPort:  envOr("API_PORT", "8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		OpenAIAPIKey:  envOr("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", ""),

		ScriptModel: envOr("SCRIPT_MODEL", "gpt-4o-mini"),
		VisionModel: envOr("VISION_MODEL", "gpt-4o-mini"),
		TTSModel:    envOr("TTS_MODEL", "gpt-4o-mini-tts"),
		TTSVoice:    envOr("TTS_VOICE", "coral"),
		STTModel:    envOr("STT_MODEL", "gpt-4o-mini-transcribe"),

		FetchTimeoutSeconds:    envOrInt("FETCH_TIMEOUT_SECONDS", 10),
		FetchMaxBodyBytes:      envOrInt64("FETCH_MAX_BODY_BYTES", 4<<20),
		UpstreamTimeoutSeconds: envOrInt("UPSTREAM_TIMEOUT_SECONDS", 60),
		MaxUploadBytes:         envOrInt64("MAX_UPLOAD_BYTES", 25<<20),
		ScriptMaxTokens:        envOrInt("SCRIPT_MAX_TOKENS", 1200),
	}
}

func loadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays env-derived values on top of file values. An env value wins
// only when the corresponding variable was actually set.
func merge(file, env Config) Config {
	out := file
	overlayString(&out.APIPort, "API_PORT", env.APIPort)
	overlayString(&out.LogLevel, "LOG_LEVEL", env.LogLevel)
	overlayString(&out.OpenAIAPIKey, "OPENAI_API_KEY", env.OpenAIAPIKey)
	overlayString(&out.OpenAIBaseURL, "OPENAI_BASE_URL", env.OpenAIBaseURL)
	overlayString(&out.ScriptModel, "SCRIPT_MODEL", env.ScriptModel)
	overlayString(&out.VisionModel, "VISION_MODEL", env.VisionModel)
	overlayString(&out.TTSModel, "TTS_MODEL", env.TTSModel)
	overlayString(&out.TTSVoice, "TTS_VOICE", env.TTSVoice)
	overlayString(&out.STTModel, "STT_MODEL", env.STTModel)
	overlayInt(&out.FetchTimeoutSeconds, "FETCH_TIMEOUT_SECONDS", env.FetchTimeoutSeconds)
	overlayInt64(&out.FetchMaxBodyBytes, "FETCH_MAX_BODY_BYTES", env.FetchMaxBodyBytes)
	overlayInt(&out.UpstreamTimeoutSeconds, "UPSTREAM_TIMEOUT_SECONDS", env.UpstreamTimeoutSeconds)
	overlayInt64(&out.MaxUploadBytes, "MAX_UPLOAD_BYTES", env.MaxUploadBytes)
	overlayInt(&out.ScriptMaxTokens, "SCRIPT_MAX_TOKENS", env.ScriptMaxTokens)

	// Defaults still apply for fields set by neither source.
	def := fromEnv()
	if out.APIPort == "" {
		out.APIPort = def.APIPort
	}
	if out.LogLevel == "" {
		out.LogLevel = def.LogLevel
	}
	if out.ScriptModel == "" {
		out.ScriptModel = def.ScriptModel
	}
	if out.VisionModel == "" {
		out.VisionModel = def.VisionModel
	}
	if out.TTSModel == "" {
		out.TTSModel = def.TTSModel
	}
	if out.TTSVoice == "" {
		out.TTSVoice = def.TTSVoice
	}
	if out.STTModel == "" {
		out.STTModel = def.STTModel
	}
	if out.FetchTimeoutSeconds <= 0 {
		out.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
	if out.FetchMaxBodyBytes <= 0 {
		out.FetchMaxBodyBytes = def.FetchMaxBodyBytes
	}
	if out.UpstreamTimeoutSeconds <= 0 {
		out.UpstreamTimeoutSeconds = def.UpstreamTimeoutSeconds
	}
	if out.MaxUploadBytes <= 0 {
		out.MaxUploadBytes = def.MaxUploadBytes
	}
	if out.ScriptMaxTokens <= 0 {
		out.ScriptMaxTokens = def.ScriptMaxTokens
	}
	return out
}

// An empty environment variable counts as unset, matching envOr.
func overlayString(dst *string, key, value string) {
	if os.Getenv(key) != "" {
		*dst = value
	}
}

func overlayInt(dst *int, key string, value int) {
	if os.Getenv(key) != "" {
		*dst = value
	}
}

func overlayInt64(dst *int64, key string, value int64) {
	if os.Getenv(key) != "" {
		*dst = value
	}
}

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envOrInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envOrInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
