package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giraffeql_web/internal/profile"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, authorization string) (*profile.User, error) {
	args := m.Called(ctx, authorization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.User), args.Error(1)
}

func TestHTTPResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	bob := &profile.User{Username: "bob"}

	t.Run("empty token skips the lookup", func(t *testing.T) {
		f := new(MockFetcher)
		in := NewHTTPResolver(f, zap.NewNop()).Resolve(ctx, "")
		assert.Nil(t, in.Authorization)
		assert.Nil(t, in.User)
		f.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("resolved user", func(t *testing.T) {
		f := new(MockFetcher)
		f.On("Fetch", ctx, "tok").Return(bob, nil)
		in := NewHTTPResolver(f, zap.NewNop()).Resolve(ctx, "tok")
		require.NotNil(t, in.Authorization)
		assert.Equal(t, "tok", in.Token())
		assert.Equal(t, bob, in.User)
		f.AssertExpectations(t)
	})

	t.Run("rejected token drops authorization", func(t *testing.T) {
		f := new(MockFetcher)
		f.On("Fetch", ctx, "stale").Return(nil, &profile.StatusError{StatusCode: http.StatusUnauthorized})
		in := NewHTTPResolver(f, zap.NewNop()).Resolve(ctx, "stale")
		assert.Nil(t, in.Authorization)
		assert.Nil(t, in.User)
	})

	t.Run("backend failure keeps token without user", func(t *testing.T) {
		f := new(MockFetcher)
		f.On("Fetch", ctx, "tok").Return(nil, errors.New("connection refused"))
		in := NewHTTPResolver(f, zap.NewNop()).Resolve(ctx, "tok")
		assert.Equal(t, "tok", in.Token())
		assert.Nil(t, in.User)
	})
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/settings?token=from-query", nil)
	assert.Equal(t, "from-query", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(r), "cookie wins over query")

	assert.Equal(t, "", TokenFromRequest(httptest.NewRequest(http.MethodGet, "/settings", nil)))
}

func TestContext_StoreAndLogout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(MemoryStoreConfig{DefaultExpiration: time.Hour, CleanupInterval: time.Hour})

	sc, err := Load(ctx, store, "tok", time.Hour, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, sc.User().IsEmpty())

	require.NoError(t, sc.StoreUser(ctx, sampleUser()))
	stored, _ := store.Get(ctx, "tok")
	assert.Equal(t, "bob", stored.Username)

	reloaded, err := Load(ctx, store, "tok", time.Hour, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "bob", reloaded.User().Username)

	require.NoError(t, reloaded.Logout(ctx))
	assert.True(t, reloaded.User().IsEmpty())
	stored, _ = store.Get(ctx, "tok")
	assert.Nil(t, stored)
}

func TestContext_AnonymousWritesStayLocal(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(MemoryStoreConfig{DefaultExpiration: time.Hour, CleanupInterval: time.Hour})

	sc, err := Load(ctx, store, "", time.Hour, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, sc.StoreUser(ctx, sampleUser()))
	assert.Equal(t, "bob", sc.User().Username)

	n, _ := store.DeleteExpired(ctx)
	assert.Zero(t, n)
	got, _ := store.Get(ctx, "")
	assert.Nil(t, got)
}

func TestMirrorTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fallback := 24 * time.Hour

	sign := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
		s, err := tok.SignedString([]byte("irrelevant"))
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, fallback, MirrorTTL("", fallback, now))
	assert.Equal(t, fallback, MirrorTTL("opaque-token", fallback, now))
	assert.Equal(t, 2*time.Hour, MirrorTTL(sign(now.Add(2*time.Hour)), fallback, now))
	assert.Equal(t, fallback, MirrorTTL(sign(now.Add(72*time.Hour)), fallback, now))
	assert.Equal(t, time.Second, MirrorTTL(sign(now.Add(-time.Hour)), fallback, now))
}
