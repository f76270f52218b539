package session_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/captal-web/internal/errors"
	"github.com/jrsteele09/captal-web/session"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	sealer, err := session.NewSealer("a-long-cookie-secret")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		sealed, err := sealer.Seal("accessToken", "value-1")
		require.NoError(t, err)
		require.NotEqual(t, "value-1", sealed)

		plain, err := sealer.Open("accessToken", sealed)
		require.NoError(t, err)
		require.Equal(t, "value-1", plain)
	})

	t.Run("nonce differs per seal", func(t *testing.T) {
		a, err := sealer.Seal("accessToken", "same")
		require.NoError(t, err)
		b, err := sealer.Seal("accessToken", "same")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("wrong name", func(t *testing.T) {
		sealed, err := sealer.Seal("accessToken", "value-1")
		require.NoError(t, err)

		_, err = sealer.Open("refreshToken", sealed)
		require.True(t, errors.Is(err, errors.ErrInvalidToken))
	})

	t.Run("tampered", func(t *testing.T) {
		sealed, err := sealer.Seal("accessToken", "value-1")
		require.NoError(t, err)
		tampered := []byte(sealed)
		mid := len(tampered) / 2
		if tampered[mid] == 'A' {
			tampered[mid] = 'B'
		} else {
			tampered[mid] = 'A'
		}

		_, err = sealer.Open("accessToken", string(tampered))
		require.True(t, errors.Is(err, errors.ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := sealer.Open("accessToken", "%%%")
		require.True(t, errors.Is(err, errors.ErrInvalidToken))
		_, err = sealer.Open("accessToken", "abc")
		require.True(t, errors.Is(err, errors.ErrInvalidToken))
	})

	t.Run("different secret", func(t *testing.T) {
		other, err := session.NewSealer("another-secret")
		require.NoError(t, err)
		sealed, err := sealer.Seal("accessToken", "value-1")
		require.NoError(t, err)
		_, err = other.Open("accessToken", sealed)
		require.Error(t, err)
	})
}

func TestNewSealer_EmptySecret(t *testing.T) {
	_, err := session.NewSealer("")
	require.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestSealedSession(t *testing.T) {
	freezeClock(t, fixedNow)
	sealer, err := session.NewSealer("a-long-cookie-secret")
	require.NoError(t, err)

	raw := session.NewMemoryStore()
	sess := session.NewManager(session.WithSealer(sealer)).Load(raw)
	sess.SetAuthCookies(testTokens())

	stored, ok := raw.Get(session.AccessTokenCookie)
	require.True(t, ok)
	require.NotEqual(t, "access-1", stored)
	require.Equal(t, "access-1", sess.AccessToken())
	require.False(t, sess.IsExpired())

	raw.Set(session.AccessTokenCookie, "forged", time.Time{})
	require.False(t, sess.IsAuthenticated(), "values that fail to open read as absent")
}
