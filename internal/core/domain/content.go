package domain

// ContentModality tells the narration stage how to treat normalized text,
// e.g. describe trends in structured data vs. read prose literally.
type ContentModality string

const (
	ModalityPDFDocument    ContentModality = "pdf-document"
	ModalityWordDocument   ContentModality = "word-document"
	ModalityTextDocument   ContentModality = "text-document"
	ModalityStructuredData ContentModality = "structured-data"
	ModalityImageVisual    ContentModality = "image-visual"
	ModalityUnknownFile    ContentModality = "unknown-file"
	ModalityRemoteURL      ContentModality = "remote-url"
	ModalityDirectText     ContentModality = "direct-text"
	ModalityLiveSpeech     ContentModality = "real-time-speech"
)

// RawInput is what a request hands to the normalization pipeline: either
// pasted text (which may be a URL) or an uploaded file. Exactly one form is
// populated; HasPayload discriminates.
type RawInput struct {
	Text     string
	Payload  []byte
	Filename string
}

func TextInput(text string) RawInput {
	return RawInput{Text: text}
}

func FileInput(filename string, payload []byte) RawInput {
	return RawInput{Filename: filename, Payload: payload}
}

func (in RawInput) HasPayload() bool {
	return in.Payload != nil || in.Filename != ""
}

// NormalizedContent is the sole output of normalization. Text is never empty:
// failures and blank inputs degrade to explanatory placeholder text so the
// narrator always has something to say.
type NormalizedContent struct {
	Text     string          `json:"text"`
	Modality ContentModality `json:"modality"`
}

// Placeholder texts fed to the narrator when no usable content exists.
const (
	PlaceholderEmptyInput    = "The user provided empty content. Briefly explain that there was nothing to read."
	PlaceholderUnparsedFile  = "Unable to parse file; it might be a binary format."
	PlaceholderSilentSpeech  = "The user spoke, but nothing intelligible was detected. Respond briefly."
)
