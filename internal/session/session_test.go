package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafune/rede-guti/internal/devstore"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(devstore.Open(filepath.Join(t.TempDir(), "state.json")))
}

func TestLoginRoundTrip(t *testing.T) {
	sess := newSession(t)

	assert.Empty(t, sess.Token())
	_, ok := sess.User()
	assert.False(t, ok)

	profile := Profile{ID: "u-1", Email: "a@b.com", Name: "Ana", Role: "ADMIN"}
	require.NoError(t, sess.SetLogin("jwt-token", profile))

	assert.Equal(t, "jwt-token", sess.Token())
	got, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, profile, got)
	assert.Equal(t, "u-1", sess.UserID())
}

func TestClear(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.SetLogin("jwt-token", Profile{ID: "u-1", Name: "Ana"}))

	require.NoError(t, sess.Clear())
	assert.Empty(t, sess.Token())
	assert.Empty(t, sess.UserID())
	_, ok := sess.User()
	assert.False(t, ok)
}
