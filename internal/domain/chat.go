package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Role identifies who authored a turn
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Confidence is the coarse trust label attached to an advisory answer.
// The zero value means the answer carried no label.
type Confidence string

const (
	ConfidenceNone   Confidence = ""
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence parses a wire confidence label. Empty input is ConfidenceNone.
func ParseConfidence(s string) (Confidence, error) {
	switch c := Confidence(strings.ToLower(strings.TrimSpace(s))); c {
	case ConfidenceNone, ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return c, nil
	default:
		return ConfidenceNone, fmt.Errorf("%w: %q", ErrInvalidConfidence, s)
	}
}

// Valid reports whether c is one of the three labels
func (c Confidence) Valid() bool {
	return c == ConfidenceLow || c == ConfidenceMedium || c == ConfidenceHigh
}

// Message is one conversation turn. Fields are unexported so a logged turn
// cannot be edited after the fact; use the constructors.
type Message struct {
	role       Role
	content    string
	sources    []string
	confidence Confidence
}

// NewUserMessage creates a user turn. User turns never carry sources or confidence.
func NewUserMessage(content string) Message {
	return Message{role: RoleUser, content: content}
}

// NewBotMessage creates a bot turn
func NewBotMessage(content string, sources []string, confidence Confidence) Message {
	return Message{
		role:       RoleBot,
		content:    content,
		sources:    slices.Clone(sources),
		confidence: confidence,
	}
}

func (m Message) Role() Role             { return m.role }
func (m Message) Content() string        { return m.content }
func (m Message) Confidence() Confidence { return m.confidence }

// Sources returns a copy of the supporting references
func (m Message) Sources() []string { return slices.Clone(m.sources) }

// AdvisoryRequest is the body sent to the remote advisory service
type AdvisoryRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

// AdvisoryResponse is a successful answer from the advisory service
type AdvisoryResponse struct {
	Answer           string     `json:"answer"`
	Sources          []string   `json:"sources"`
	Confidence       Confidence `json:"confidence"`
	DetectedLanguage string     `json:"detected_language"`
}

// APIError is the optional body of a failed advisory call
type APIError struct {
	Error string `json:"error"`
}
