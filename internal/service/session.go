package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
)

// Advisor answers queries. It is satisfied by *advisory.Client.
type Advisor interface {
	Ask(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryResponse, error)
}

// SessionState is the request lifecycle state of a session
type SessionState int

const (
	// StateIdle accepts a new submission
	StateIdle SessionState = iota
	// StateAwaiting has exactly one advisory call outstanding
	StateAwaiting
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Suggestion is a canned query offered on the empty chat screen
type Suggestion struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Session is one client's conversation: the message log, the request
// lifecycle and the active locale.
type Session struct {
	id       string
	clientID string
	advisor  Advisor
	resolver *i18n.Resolver
	prefs    *LocalePreference
	logger   *zap.Logger
	log      *MessageLog
	lastSeen atomic.Int64

	mu      sync.Mutex
	state   SessionState
	locale  string
	catalog *i18n.Catalog
	draft   string
}

// NewSession creates an idle session with an empty log in the default
// locale. Call Start to restore the stored locale.
func NewSession(
	id string,
	clientID string,
	advisor Advisor,
	resolver *i18n.Resolver,
	prefs *LocalePreference,
	logger *zap.Logger,
) *Session {
	s := &Session{
		id:       id,
		clientID: clientID,
		advisor:  advisor,
		resolver: resolver,
		prefs:    prefs,
		logger:   logger.With(zap.String("session_id", id)),
		log:      NewMessageLog(),
	}
	s.catalog = resolver.Resolve(resolver.Default())
	s.locale = s.catalog.Locale()
	return s
}

// Start resolves the stored locale. Like any locale resolution it adds the
// welcome turn when the log is empty.
func (s *Session) Start(ctx context.Context) {
	s.applyLocale(s.prefs.GetStoredLocale(ctx))
}

func (s *Session) ID() string       { return s.id }
func (s *Session) ClientID() string { return s.clientID }

// Messages returns the conversation so far
func (s *Session) Messages() []domain.Message {
	return s.log.All()
}

// Log exposes the read side of the message log
func (s *Session) Log() MessageView {
	return s.log
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// idleSince reports whether the session has been neither used nor busy since t
func (s *Session) idleSince(t time.Time) bool {
	return s.lastSeen.Load() < t.UnixNano() && !s.Busy()
}

// State returns the current lifecycle state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Busy reports whether an advisory call is outstanding
func (s *Session) Busy() bool {
	return s.State() == StateAwaiting
}

// Locale returns the active locale code
func (s *Session) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// Catalog returns the active translation catalog
func (s *Session) Catalog() *i18n.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Draft returns the unsent input text
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the unsent input text
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Suggestions returns the suggestion cards in the active locale
func (s *Session) Suggestions() []Suggestion {
	catalog := s.Catalog()
	out := make([]Suggestion, 0, len(i18n.SuggestionKeys))
	for _, key := range i18n.SuggestionKeys {
		out = append(out, Suggestion{
			Title:    catalog.T(key + ".title"),
			Subtitle: catalog.T(key + ".subtitle"),
		})
	}
	return out
}

// UseSuggestion copies suggestion i into the draft
func (s *Session) UseSuggestion(i int) bool {
	suggestions := s.Suggestions()
	if i < 0 || i >= len(suggestions) {
		return false
	}
	s.SetDraft(suggestions[i].Title)
	return true
}

// SubmitDraft submits the current draft
func (s *Session) SubmitDraft(ctx context.Context) bool {
	return s.Submit(ctx, s.Draft())
}

// Submit sends query to the advisory service and records both turns. It
// returns false, changing nothing, when query is blank or a call is already
// outstanding. Remote failures become a low-confidence bot turn; Submit
// never reports them to the caller.
func (s *Session) Submit(ctx context.Context, query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}

	settle, locale, catalog, ok := s.beginSubmit(query)
	if !ok {
		s.logger.Debug("Submission rejected, call in flight")
		return false
	}

	settled := false
	defer func() {
		// only reached when the advisor panics
		if !settled {
			settle(s.errorTurn(catalog))
		}
	}()

	s.logger.Info("Submitting query", zap.String("locale", locale), zap.Int("query_len", len(query)))

	// An in-flight call is never cancelled by the caller going away.
	resp, err := s.advisor.Ask(context.WithoutCancel(ctx), domain.AdvisoryRequest{
		Query:    query,
		Language: locale,
	})

	var reply domain.Message
	switch {
	case err != nil:
		s.logger.Warn("Advisory call failed", zap.Error(err))
		reply = s.errorTurn(catalog)
	case resp == nil:
		s.logger.Warn("Advisory call returned no response")
		reply = s.errorTurn(catalog)
	default:
		reply = domain.NewBotMessage(resp.Answer, resp.Sources, resp.Confidence)
	}

	settle(reply)
	settled = true
	return true
}

// beginSubmit performs the Idle→Awaiting transition and appends the user
// turn atomically. The returned settle appends the reply and performs
// Awaiting→Idle; it takes effect at most once.
func (s *Session) beginSubmit(query string) (settle func(domain.Message), locale string, catalog *i18n.Catalog, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, "", nil, false
	}
	s.state = StateAwaiting
	s.log.add(domain.NewUserMessage(query))
	s.draft = ""

	var once sync.Once
	settle = func(reply domain.Message) {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.log.add(reply)
			s.state = StateIdle
		})
	}
	return settle, s.locale, s.catalog, true
}

func (s *Session) errorTurn(catalog *i18n.Catalog) domain.Message {
	return domain.NewBotMessage(catalog.T(i18n.KeyError), nil, domain.ConfidenceLow)
}

// SetLocale switches the session to code (normalized to a supported locale),
// persists the choice and returns the locale now in effect.
func (s *Session) SetLocale(ctx context.Context, code string) string {
	locale := s.resolver.Normalize(code)
	s.prefs.SetStoredLocale(ctx, locale)
	s.applyLocale(locale)
	s.logger.Info("Locale changed", zap.String("requested", code), zap.String("locale", locale))
	return locale
}

func (s *Session) applyLocale(code string) {
	catalog := s.resolver.Resolve(code)

	s.mu.Lock()
	s.locale = catalog.Locale()
	s.catalog = catalog
	s.mu.Unlock()

	welcome := domain.NewBotMessage(
		fmt.Sprintf("**%s**\n\n%s", catalog.T(i18n.KeyWelcomeTitle), catalog.T(i18n.KeyWelcomeMessage)),
		nil,
		domain.ConfidenceHigh,
	)
	if s.log.appendIfEmpty(welcome) {
		s.logger.Debug("Welcome turn added", zap.String("locale", catalog.Locale()))
	}
}
