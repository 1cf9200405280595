package session_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/b2b-portal-api/internal/client/session"
)

const testPassphrase = "frase-de-prueba"

func newStore(t *testing.T, path, passphrase string) *session.FileStore {
	t.Helper()
	s, err := session.NewFileStore(path, passphrase, session.WithIterations(1000))
	require.NoError(t, err)
	return s
}

func TestFileStore_SetAllGetDeleteAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := newStore(t, path, testPassphrase)

	_, ok, err := s.Get(session.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok, "sin archivo no hay valores")

	require.NoError(t, s.SetAll(map[string]string{
		session.KeyAccessToken:  "tok-123",
		session.KeyUserIdentity: `{"id":"u1"}`,
	}))

	v, ok, err := newStore(t, path, testPassphrase).Get(session.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, s.DeleteAll(session.KeyAccessToken, session.KeyUserIdentity))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, s.DeleteAll(session.KeyAccessToken, session.KeyUserIdentity), "borrar dos veces no falla")
}

func TestFileStore_ContenidoCifrado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := newStore(t, path, testPassphrase)
	require.NoError(t, s.SetAll(map[string]string{session.KeyAccessToken: "token-muy-secreto"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "token-muy-secreto"))
	assert.False(t, strings.Contains(string(raw), session.KeyAccessToken))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no quedan temporales tras escribir")
}

func TestFileStore_PassphraseIncorrectaOAlterado(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, newStore(t, path, testPassphrase).SetAll(map[string]string{session.KeyAccessToken: "t"}))

	_, _, err := newStore(t, path, "otra-frase").Get(session.KeyAccessToken)
	assert.ErrorIs(t, err, session.ErrCorruptStore)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(raw), `"data":"`, `"data":"AAAA`, 1)), 0o600))
	_, _, err = newStore(t, path, testPassphrase).Get(session.KeyAccessToken)
	assert.ErrorIs(t, err, session.ErrCorruptStore)

	require.NoError(t, newStore(t, path, testPassphrase).DeleteAll(session.KeyAccessToken, session.KeyUserIdentity),
		"un archivo ilegible se puede borrar con logout")
}

func TestNewFileStore_PassphraseVacia(t *testing.T) {
	_, err := session.NewFileStore(filepath.Join(t.TempDir(), "s.json"), "")
	assert.Error(t, err)
}
