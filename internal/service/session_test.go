package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/advisory"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/confidence"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/markup"
)

func TestSubmitSuccess(t *testing.T) {
	advisor := &fakeAdvisor{resp: &domain.AdvisoryResponse{
		Answer:     "Try **wheat**",
		Sources:    []string{"AgroDept"},
		Confidence: domain.ConfidenceMedium,
	}}
	s := newStartedSession(t, advisor, &memoryStorage{})
	before := s.Log().Len()

	require.True(t, s.Submit(context.Background(), "What crops suit December?"))

	msgs := s.Messages()
	require.Len(t, msgs, before+2)
	assert.Equal(t, domain.NewUserMessage("What crops suit December?"), msgs[before])
	assert.False(t, s.Busy())
	assert.Equal(t, []domain.AdvisoryRequest{{Query: "What crops suit December?", Language: "en"}}, advisor.Calls())

	turn := Present(msgs[len(msgs)-1], s.Catalog())
	assert.Equal(t, domain.RoleBot, turn.Role)
	require.Len(t, turn.Blocks, 1)
	blk := turn.Blocks[0]
	require.Len(t, blk.Spans, 1)
	assert.Equal(t, "wheat", blk.Text[blk.Spans[0].Start:blk.Spans[0].End])
	require.NotNil(t, turn.Badge)
	assert.Equal(t, s.Catalog().T(i18n.KeyConfidenceMedium), turn.Badge.Label)
	assert.Equal(t, confidence.StyleMedium, turn.Badge.Style)
	assert.Equal(t, []string{"AgroDept"}, turn.Sources)
}

func TestSubmitRemoteStatus500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newStartedSession(t, advisory.NewClient(srv.URL, 5*time.Second), &memoryStorage{value: "hi"})
	before := s.Log().Len()

	require.True(t, s.Submit(context.Background(), "मौसम कैसा रहेगा?"))

	msgs := s.Messages()
	require.Len(t, msgs, before+2)
	last := msgs[len(msgs)-1]
	assert.Equal(t, domain.RoleBot, last.Role())
	assert.Equal(t, domain.ConfidenceLow, last.Confidence())
	assert.Equal(t, s.Catalog().T(i18n.KeyError), last.Content())
	assert.Equal(t, "hi", s.Locale())
	assert.False(t, s.Busy())
}

func TestSubmitMalformedBodyIsFailure(t *testing.T) {
	for name, body := range map[string]string{
		"null":         `null`,
		"empty object": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer srv.Close()

			s := newStartedSession(t, advisory.NewClient(srv.URL, 5*time.Second), &memoryStorage{})

			require.True(t, s.Submit(context.Background(), "hello"))

			last, ok := s.Log().Last()
			require.True(t, ok)
			assert.Equal(t, domain.RoleBot, last.Role())
			assert.Equal(t, domain.ConfidenceLow, last.Confidence())
			assert.Equal(t, s.Catalog().T(i18n.KeyError), last.Content())
			assert.False(t, s.Busy())
		})
	}
}

func TestSubmitNilResponseIsFailure(t *testing.T) {
	s := newStartedSession(t, &fakeAdvisor{}, nil)

	require.True(t, s.Submit(context.Background(), "hello"))

	last, ok := s.Log().Last()
	require.True(t, ok)
	assert.Equal(t, domain.ConfidenceLow, last.Confidence())
}

func TestSubmitBlankIsNoop(t *testing.T) {
	advisor := &fakeAdvisor{}
	s := newStartedSession(t, advisor, nil)
	s.SetDraft("keep me")
	before := s.Messages()

	for _, q := range []string{"", "   ", "\n\t "} {
		assert.False(t, s.Submit(context.Background(), q))
	}

	assert.Equal(t, before, s.Messages())
	assert.Empty(t, advisor.Calls())
	assert.Equal(t, "keep me", s.Draft())
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmitWhileBusy(t *testing.T) {
	advisor := &fakeAdvisor{
		resp:    &domain.AdvisoryResponse{Answer: "first"},
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := newStartedSession(t, advisor, nil)

	done := make(chan bool)
	go func() { done <- s.Submit(context.Background(), "first") }()
	<-advisor.entered

	assert.True(t, s.Busy())
	assert.Equal(t, StateAwaiting, s.State())
	during := s.Messages()

	assert.False(t, s.Submit(context.Background(), "second"))
	assert.Equal(t, during, s.Messages())
	assert.Len(t, advisor.Calls(), 1)

	close(advisor.gate)
	assert.True(t, <-done)

	msgs := s.Messages()
	require.Len(t, msgs, len(during)+1)
	assert.Equal(t, "first", msgs[len(msgs)-2].Content())
	assert.Equal(t, domain.RoleUser, msgs[len(msgs)-2].Role())
	assert.Equal(t, "first", msgs[len(msgs)-1].Content())
	assert.Equal(t, domain.RoleBot, msgs[len(msgs)-1].Role())
	assert.False(t, s.Busy())
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	advisor := &fakeAdvisor{resp: &domain.AdvisoryResponse{Answer: "ok"}}
	s := newStartedSession(t, advisor, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.True(t, s.Submit(ctx, "still goes"))
	last, _ := s.Log().Last()
	assert.Equal(t, "ok", last.Content())
}

func TestSubmitAdvisorPanicStillSettles(t *testing.T) {
	s := newStartedSession(t, &fakeAdvisor{panics: true}, nil)

	assert.Panics(t, func() { s.Submit(context.Background(), "boom") })

	assert.False(t, s.Busy())
	last, _ := s.Log().Last()
	assert.Equal(t, domain.ConfidenceLow, last.Confidence())

	// still usable
	s.advisor = &fakeAdvisor{resp: &domain.AdvisoryResponse{Answer: "recovered"}}
	assert.True(t, s.Submit(context.Background(), "again"))
}

func TestDraftAndSuggestions(t *testing.T) {
	advisor := &fakeAdvisor{resp: &domain.AdvisoryResponse{Answer: "prices"}}
	s := newStartedSession(t, advisor, nil)

	suggestions := s.Suggestions()
	require.Len(t, suggestions, len(i18n.SuggestionKeys))
	assert.Equal(t, Suggestion{Title: "Check Market Prices", Subtitle: "Get latest mandi rates"}, suggestions[0])

	assert.False(t, s.UseSuggestion(99))
	require.True(t, s.UseSuggestion(0))
	assert.Equal(t, "Check Market Prices", s.Draft())

	require.True(t, s.SubmitDraft(context.Background()))
	assert.Empty(t, s.Draft())
	assert.Equal(t, "Check Market Prices", advisor.Calls()[0].Query)
}

func TestLocaleSwitchOnEmptyLogAddsWelcome(t *testing.T) {
	storage := &memoryStorage{}
	s := newSession(t, &fakeAdvisor{}, storage)
	require.True(t, s.Log().IsEmpty())

	assert.Equal(t, "hi", s.SetLocale(context.Background(), "hi-IN"))

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	welcome := msgs[0]
	assert.Equal(t, domain.RoleBot, welcome.Role())
	assert.Equal(t, domain.ConfidenceHigh, welcome.Confidence())
	catalog := s.Catalog()
	assert.Equal(t, "**"+catalog.T(i18n.KeyWelcomeTitle)+"**\n\n"+catalog.T(i18n.KeyWelcomeMessage), welcome.Content())
	assert.Equal(t, "hi", storage.value)

	blocks := markup.Format(welcome.Content())
	require.Len(t, blocks, 2)
	assert.Equal(t, catalog.T(i18n.KeyWelcomeTitle), blocks[0].Text)

	// non-empty log: nothing appended
	assert.Equal(t, "mr", s.SetLocale(context.Background(), "mr"))
	assert.Len(t, s.Messages(), 1)
	assert.Equal(t, "mr", storage.value)
	assert.Equal(t, 2, storage.sets)
}

func TestSetLocaleUnknownFallsBack(t *testing.T) {
	s := newStartedSession(t, &fakeAdvisor{}, nil)

	assert.Equal(t, "en", s.SetLocale(context.Background(), "fr"))
	assert.Equal(t, "en", s.Catalog().Locale())
}

func TestStartRestoresStoredLocale(t *testing.T) {
	s := newStartedSession(t, &fakeAdvisor{}, &memoryStorage{value: "mr"})

	assert.Equal(t, "mr", s.Locale())
	require.Len(t, s.Messages(), 1)
	assert.Contains(t, s.Messages()[0].Content(), s.Catalog().T(i18n.KeyWelcomeTitle))
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	storage := &memoryStorage{err: errStorage}
	s := newStartedSession(t, &fakeAdvisor{}, storage)
	assert.Equal(t, "en", s.Locale())

	assert.NotPanics(t, func() {
		assert.Equal(t, "hi", s.SetLocale(context.Background(), "hi"))
	})
	assert.Equal(t, "hi", s.Locale())
}

func TestStoredUnsupportedLocaleIgnored(t *testing.T) {
	s := newStartedSession(t, &fakeAdvisor{}, &memoryStorage{value: "de"})
	assert.Equal(t, "en", s.Locale())
}

func TestSessionStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting", StateAwaiting.String())
	assert.Equal(t, "SessionState(7)", SessionState(7).String())
}
