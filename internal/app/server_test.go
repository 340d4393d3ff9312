package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giraffeql_web/internal/config"
	"giraffeql_web/internal/entry"
	"giraffeql_web/internal/jobs"
	"giraffeql_web/internal/profile"
	"giraffeql_web/internal/session"
	"giraffeql_web/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type noopChecker struct{}

func (noopChecker) Check(context.Context, string) error { return nil }

type ServerTestSuite struct {
	suite.Suite
	server  *Server
	backend *httptest.Server
}

func (s *ServerTestSuite) SetupSuite() {
	s.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(profile.AuthorizationHeader) != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"oAuthId":"gh|1","username":"ada","displayName":"Ada Lovelace","email":"ada@x.com","photos":[{"value":"/ada.png"}]}}`))
	}))

	cfg := &config.Config{
		GinMode:            "test",
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		ProfileAPIBaseURL:  s.backend.URL,
		CORSAllowedOrigins: []string{"https://app.example.com"},
		SessionStore:       config.SessionStoreMemory,
		SessionTTL:         time.Hour,
		DefaultAvatarURL:   "/tempuser.png",
	}
	logger := zap.NewNop()
	store := session.NewMemoryStore(session.MemoryStoreConfig{DefaultExpiration: time.Hour, CleanupInterval: time.Hour})
	client := profile.NewHTTPClient(cfg.ProfileAPIBaseURL, 0, logger)

	server, err := NewServer(
		cfg,
		logger,
		entry.NewHandler(noopChecker{}, logger),
		settings.NewHandler(store, session.NewHTTPResolver(client, logger), client, cfg, logger),
		jobs.NewSessionSweepJob(store, logger, cfg),
	)
	s.Require().NoError(err)
	s.server = server
}

func (s *ServerTestSuite) TearDownSuite() {
	s.backend.Close()
}

func (s *ServerTestSuite) get(path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(w, req)
	return w
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) TestHealth() {
	w := s.get("/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"UP"`)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *ServerTestSuite) TestSettingsPageResolvesThroughBackend() {
	w := s.get("/settings", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok"})
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `value="Ada"`)
	s.Contains(w.Body.String(), `src="/ada.png"`)
}

func (s *ServerTestSuite) TestRejectedTokenRendersAnonymous() {
	w := s.get("/settings?token=expired", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `value="Anonymous"`)
	s.Empty(w.Header().Get("Set-Cookie"))
}

func (s *ServerTestSuite) TestAPICORS() {
	w := s.get("/api/v1/settings", func(r *http.Request) {
		r.Header.Set("Origin", "https://app.example.com")
	})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *ServerTestSuite) TestUnknownRoute() {
	w := s.get("/nowhere", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestCORSConfig_Wildcard(t *testing.T) {
	c := corsConfig(&config.Config{CORSAllowedOrigins: []string{"*"}})
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)
	require.NoError(t, c.Validate())
}
