package authfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileNotFound(t *testing.T) {
	cookies, err := Load("/nonexistent/path/vsauth.json")
	assert.Nil(t, cookies)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	original := map[string]string{
		"sp_session": "abc123",
		"_csrf":      "tok456",
	}

	require.NoError(t, Save(path, original))

	cookies, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cookies["sp_session"])
	assert.Equal(t, "tok456", cookies["_csrf"])
	assert.Len(t, cookies, 2)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	require.NoError(t, os.WriteFile(path, []byte(`{not json}`), 0o600))

	cookies, err := Load(path)
	assert.Nil(t, cookies)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestLoad_WrongShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	// Valid JSON, but an array rather than a name→value object.
	require.NoError(t, os.WriteFile(path, []byte(`["sp_session"]`), 0o600))

	cookies, err := Load(path)
	assert.Nil(t, cookies)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestLoad_EmptyObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	cookies, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cookies)
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub", "dir", "vsauth.json")

	require.NoError(t, Save(nested, map[string]string{"sp_session": "v"}))

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePerms), info.Mode().Perm())
}

func TestSave_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	require.NoError(t, Save(path, map[string]string{"sp_session": "v"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FilePerms), info.Mode().Perm())
}

func TestSave_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	require.NoError(t, Save(path, map[string]string{"sp_session": "old"}))
	require.NoError(t, Save(path, map[string]string{"sp_session": "new"}))

	cookies, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "new", cookies["sp_session"])
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	original := map[string]string{
		"sp_session":      "s",
		"_csrf":           "c",
		"intercom-id-web": "i",
	}

	require.NoError(t, Save(path, original))

	cookies, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, cookies)
}

func TestSave_NoStrayTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vsauth.json")

	require.NoError(t, Save(path, map[string]string{"sp_session": "v"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vsauth.json", entries[0].Name())
}
