package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/i18n"
	"github.com/sapatmohit/smart-farming-ai-agent/internal/service"
)

type fakeAdvisor struct{ healthy bool }

func (f fakeAdvisor) Ask(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryResponse, error) {
	return &domain.AdvisoryResponse{Answer: "ok"}, nil
}

func (f fakeAdvisor) Health(ctx context.Context) bool { return f.healthy }

func newRouter(t *testing.T, advisor fakeAdvisor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	resolver, err := i18n.NewResolver("")
	require.NoError(t, err)
	manager := service.NewSessionManager(advisor, resolver, nil, zap.NewNop())
	return SetupRouter(manager, advisor, zap.NewNop(), RouterConfig{AllowOrigins: []string{"*"}})
}

func TestHealth(t *testing.T) {
	for _, healthy := range []bool{true, false} {
		r := newRouter(t, fakeAdvisor{healthy: healthy})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Status   string `json:"status"`
			Advisory bool   `json:"advisory"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, healthy, body.Advisory)
	}
}

func TestStaticClient(t *testing.T) {
	r := newRouter(t, fakeAdvisor{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<script src="/app.js"></script>`)
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "innerHTML")
}

func TestClientShowsUserTurnBeforeReply(t *testing.T) {
	r := newRouter(t, fakeAdvisor{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, http.StatusOK, w.Code)
	js := w.Body.String()

	local := strings.Index(js, "appendTurn($('messages'), { role: 'user'")
	post := strings.Index(js, "'/messages', { query }")
	require.NotEqual(t, -1, local)
	require.NotEqual(t, -1, post)
	assert.Less(t, local, post)
	assert.Contains(t, js, "'pagehide'")
}

func TestAPIMounted(t *testing.T) {
	r := newRouter(t, fakeAdvisor{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
