package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

// CreateSessionRequest is the request to open a session
type CreateSessionRequest struct {
	ClientID string `json:"client_id,omitempty"`
}

// SubmitRequest is the request to send a query. A blank query is accepted
// by the endpoint and ignored by the session.
type SubmitRequest struct {
	Query string `json:"query"`
}

// LocaleRequest is the request to switch locale
type LocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// SessionView is the client-facing state of a session
type SessionView struct {
	SessionID   string               `json:"session_id"`
	ClientID    string               `json:"client_id"`
	Locale      string               `json:"locale"`
	Busy        bool                 `json:"busy"`
	Accepted    *bool                `json:"accepted,omitempty"`
	Messages    []service.Turn       `json:"messages"`
	Suggestions []service.Suggestion `json:"suggestions"`
	Strings     map[string]string    `json:"strings"`
}

// Handler handles chat API requests
type Handler struct {
	sessions *service.SessionManager
}

// NewHandler creates a new chat handler
func NewHandler(sessions *service.SessionManager) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/locales", h.ListLocales)
	r.GET("/i18n/:locale", h.GetStrings)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.POST("/sessions/:id/messages", h.Submit)
	r.PUT("/sessions/:id/locale", h.SetLocale)
	r.GET("/sessions/:id/transcript", h.Transcript)
}

// ListLocales returns the supported locales
func (h *Handler) ListLocales(c *gin.Context) {
	resolver := h.sessions.Resolver()
	c.JSON(http.StatusOK, gin.H{
		"default": resolver.Default(),
		"locales": resolver.Supported(),
	})
}

// GetStrings returns the static UI strings of a locale
func (h *Handler) GetStrings(c *gin.Context) {
	catalog := h.sessions.Resolver().Resolve(c.Param("locale"))
	c.JSON(http.StatusOK, gin.H{
		"locale":  catalog.Locale(),
		"strings": catalog.Strings(i18n.StaticKeys...),
	})
}

// CreateSession opens a session
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	session, err := h.sessions.Create(c.Request.Context(), req.ClientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSessionView(session))
}

// GetSession returns the current state of a session
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newSessionView(session))
}

// DeleteSession ends a session when its client goes away
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Submit sends a query and responds once the reply turn is in the log
func (h *Handler) Submit(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accepted := session.Submit(c.Request.Context(), req.Query)

	view := newSessionView(session)
	view.Accepted = &accepted
	c.JSON(http.StatusOK, view)
}

// SetLocale switches the session locale
func (h *Handler) SetLocale(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req LocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.SetLocale(c.Request.Context(), req.Locale)
	c.JSON(http.StatusOK, newSessionView(session))
}

// Transcript renders the conversation as an escaped HTML fragment
func (h *Handler) Transcript(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	catalog := session.Catalog()
	turns := service.PresentAll(session.Messages(), catalog)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(RenderTranscript(turns, catalog)))
}

func (h *Handler) lookup(c *gin.Context) (*service.Session, bool) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return session, true
}

func newSessionView(s *service.Session) SessionView {
	catalog := s.Catalog()
	return SessionView{
		SessionID:   s.ID(),
		ClientID:    s.ClientID(),
		Locale:      catalog.Locale(),
		Busy:        s.Busy(),
		Messages:    service.PresentAll(s.Messages(), catalog),
		Suggestions: s.Suggestions(),
		Strings:     catalog.Strings(i18n.StaticKeys...),
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
