package service

import (
	"sync"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
)

// MessageView is the read side of a MessageLog
type MessageView interface {
	All() []domain.Message
	Len() int
	IsEmpty() bool
	Last() (domain.Message, bool)
}

// MessageLog is the ordered, append-only record of a conversation. Only the
// owning Session appends to it.
type MessageLog struct {
	mu       sync.RWMutex
	messages []domain.Message
}

// NewMessageLog creates an empty log
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

func (l *MessageLog) add(msg domain.Message) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
}

// appendIfEmpty appends msg only when the log has no turns
func (l *MessageLog) appendIfEmpty(msg domain.Message) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.messages) > 0 {
		return false
	}
	l.messages = append(l.messages, msg)
	return true
}

// All returns a snapshot of the log in insertion order
func (l *MessageLog) All() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of turns
func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// IsEmpty reports whether the log has no turns
func (l *MessageLog) IsEmpty() bool {
	return l.Len() == 0
}

// Last returns the most recent turn
func (l *MessageLog) Last() (domain.Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.messages) == 0 {
		return domain.Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}
