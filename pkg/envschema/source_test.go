package envschema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnviron_SnapshotsProcessEnv(t *testing.T) {
	t.Setenv("ENVSCHEMA_TEST_KEY", "a=b")

	env := Environ()
	assert.Equal(t, "a=b", env["ENVSCHEMA_TEST_KEY"], "only the first = separates key and value")

	env["ENVSCHEMA_TEST_KEY"] = "changed"
	assert.Equal(t, "a=b", os.Getenv("ENVSCHEMA_TEST_KEY"))
}

func TestReadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# local overrides\nENV=qa\nAPP_NAME=\"my-app\"\nOWNER=platform-team\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := ReadDotenv(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ENV":      "qa",
		"APP_NAME": "my-app",
		"OWNER":    "platform-team",
	}, env)
}

func TestReadDotenv_FoldsKeysToUpperCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("Mixed_Case=1\nA.B=2\n"), 0o600))

	env, err := ReadDotenv(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MIXED_CASE": "1",
		"A.B":        "2",
	}, env)
}

func TestReadDotenv_MissingFileIsEmpty(t *testing.T) {
	env, err := ReadDotenv(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, env)

	env, err = ReadDotenv("  ")
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestReadDotenv_DirectoryIsAnError(t *testing.T) {
	_, err := ReadDotenv(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envschema: read dotenv")
}

func TestLayer_LaterWins(t *testing.T) {
	got := Layer(
		map[string]string{"ENV": "dev", "OWNER": "file"},
		nil,
		map[string]string{"ENV": "prd"},
	)
	assert.Equal(t, map[string]string{"ENV": "prd", "OWNER": "file"}, got)
}
