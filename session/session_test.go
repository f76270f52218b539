package session_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/jrsteele09/captal-web/session"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T, at time.Time) *time.Time {
	t.Helper()
	now := at
	prev := session.NowTimeFunc
	session.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { session.NowTimeFunc = prev })
	return &now
}

func testTokens() session.AuthTokens {
	return session.AuthTokens{
		AccessToken:  "access-1",
		IDToken:      "id-1",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}
}

func TestSession_SetAuthCookies(t *testing.T) {
	freezeClock(t, fixedNow)
	sess := session.NewManager().Load(session.NewMemoryStore())

	expiresAt := sess.SetAuthCookies(testTokens())

	want := fixedNow.Unix() + 3600 - 1800
	require.Equal(t, want, expiresAt.Unix())

	stored, ok := sess.Get(session.TokenExpiresInCookie)
	require.True(t, ok)
	require.Equal(t, strconv.FormatInt(want, 10), stored)

	require.True(t, sess.IsAuthenticated())
	require.False(t, sess.IsExpired())
	require.Equal(t, "access-1", sess.AccessToken())
	require.Equal(t, "refresh-1", sess.RefreshToken())
	require.Equal(t, "id-1", sess.IDToken())
	require.Equal(t, "Bearer", sess.TokenType())
}

func TestSession_DefaultTokenType(t *testing.T) {
	freezeClock(t, fixedNow)
	sess := session.NewManager().Load(session.NewMemoryStore())

	tokens := testTokens()
	tokens.TokenType = ""
	sess.SetAuthCookies(tokens)

	require.Equal(t, "Bearer", sess.TokenType())
}

func TestSession_IsExpired(t *testing.T) {
	now := freezeClock(t, fixedNow)

	t.Run("no expiry cookie", func(t *testing.T) {
		sess := session.NewManager().Load(session.NewMemoryStore())
		require.True(t, sess.IsExpired())
	})

	t.Run("unparseable expiry", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Set(session.TokenExpiresInCookie, "soon", time.Time{})
		sess := session.NewManager().Load(store)
		require.True(t, sess.IsExpired())
	})

	t.Run("expiry reached", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Set(session.TokenExpiresInCookie, strconv.FormatInt(now.Unix(), 10), time.Time{})
		sess := session.NewManager().Load(store)
		require.True(t, sess.IsExpired())
	})

	t.Run("expiry ahead", func(t *testing.T) {
		store := session.NewMemoryStore()
		store.Set(session.TokenExpiresInCookie, strconv.FormatInt(now.Unix()+1, 10), time.Time{})
		sess := session.NewManager().Load(store)
		require.False(t, sess.IsExpired())
	})

	t.Run("safety margin larger than lifetime", func(t *testing.T) {
		sess := session.NewManager().Load(session.NewMemoryStore())
		tokens := testTokens()
		tokens.ExpiresIn = 1000
		sess.SetAuthCookies(tokens)
		require.True(t, sess.IsExpired())
	})
}

func TestSession_CustomSafetyMargin(t *testing.T) {
	freezeClock(t, fixedNow)
	sess := session.NewManager(session.WithSafetyMargin(time.Minute)).Load(session.NewMemoryStore())

	expiresAt := sess.SetAuthCookies(testTokens())
	require.Equal(t, fixedNow.Unix()+3600-60, expiresAt.Unix())
}

func TestSession_ClearAll(t *testing.T) {
	freezeClock(t, fixedNow)
	store := session.NewMemoryStore()
	store.Set("unrelated", "keep", time.Time{})
	sess := session.NewManager().Load(store)
	sess.SetAuthCookies(testTokens())

	sess.ClearAll()

	for _, name := range session.ManagedCookies {
		_, ok := sess.Get(name)
		require.False(t, ok, name)
	}
	require.False(t, sess.IsAuthenticated())
	require.True(t, sess.IsExpired())
	require.Nil(t, sess.Token())

	v, ok := store.Get("unrelated")
	require.True(t, ok)
	require.Equal(t, "keep", v)
}

func TestSession_Token(t *testing.T) {
	freezeClock(t, fixedNow)
	sess := session.NewManager().Load(session.NewMemoryStore())
	expiresAt := sess.SetAuthCookies(testTokens())

	tok := sess.Token()
	require.NotNil(t, tok)
	require.Equal(t, "access-1", tok.AccessToken)
	require.Equal(t, "refresh-1", tok.RefreshToken)
	require.Equal(t, "Bearer", tok.Type())
	require.Equal(t, expiresAt.Unix(), tok.Expiry.Unix())
	require.Equal(t, "id-1", tok.Extra("id_token"))

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	tok.SetAuthHeader(req)
	require.Equal(t, "Bearer access-1", req.Header.Get("Authorization"))
}

func TestSession_LoginRequired(t *testing.T) {
	freezeClock(t, fixedNow)
	sess := session.NewManager().Load(session.NewMemoryStore())
	require.False(t, sess.LoginRequired())

	sess.MarkLoginRequired()
	require.True(t, sess.LoginRequired())

	sess.SetAuthCookies(testTokens())
	require.False(t, sess.LoginRequired())
}

func TestContext(t *testing.T) {
	sess := session.NewManager().Load(session.NewMemoryStore())
	ctx := session.NewContext(t.Context(), sess)

	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	require.Same(t, sess, got)

	_, ok = session.FromContext(t.Context())
	require.False(t, ok)
}
