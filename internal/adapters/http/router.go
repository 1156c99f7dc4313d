package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/inflective/voice-reader/internal/core/domain"
	"github.com/inflective/voice-reader/internal/core/ports"
	"github.com/inflective/voice-reader/internal/observability/metrics"
)

type Router struct {
	narrator       ports.Narrator
	metrics        *metrics.Metrics
	service        string
	maxUploadBytes int64
}

func NewRouter(narrator ports.Narrator, m *metrics.Metrics, service string, maxUploadBytes int64) *Router {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 25 << 20
	}
	return &Router{
		narrator:       narrator,
		metrics:        m,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/process", rt.processContent)
	mux.HandleFunc("/api/voice", rt.processVoice)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// processContent accepts pasted text (possibly a URL) and/or an uploaded file
// and answers with MP3 narration.
func (rt *Router) processContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)

	input, err := rt.readContentInput(r)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	audio, err := rt.narrator.NarrateContent(r.Context(), input)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeAudio(w, audio)
}

// processVoice accepts recorded audio (webm/wav/mp3) and answers with MP3
// narration of the assistant's reply.
func (rt *Router) processVoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, rt.maxUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		if isBodyTooLarge(err) {
			rt.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'audio' is required"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	audio, err := rt.narrator.NarrateSpeech(r.Context(), payload, header.Filename)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeAudio(w, audio)
}

func (rt *Router) readContentInput(r *http.Request) (domain.RawInput, error) {
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		payload, readErr := io.ReadAll(file)
		if readErr != nil {
			return domain.RawInput{}, readErr
		}
		return domain.FileInput(header.Filename, payload), nil
	case errors.Is(err, http.ErrMissingFile):
		return domain.TextInput(r.FormValue("text")), nil
	case isBodyTooLarge(err):
		return domain.RawInput{}, err
	default:
		// No multipart body at all: fall back to form-encoded text.
		return domain.TextInput(r.FormValue("text")), nil
	}
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	logAttrs := []any{
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	}
	if status >= 500 {
		slog.Error("request_failed", logAttrs...)
	} else {
		slog.Warn("request_failed", logAttrs...)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isBodyTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}
	// The multipart reader may flatten the MaxBytesError into its message.
	return strings.Contains(err.Error(), "request body too large")
}

func writeAudio(w http.ResponseWriter, audio []byte) {
	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
