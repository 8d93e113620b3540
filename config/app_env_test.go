package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAutoMigrateAllowed(t *testing.T) {
	tests := map[string]bool{
		"":             true,
		"dev":          true,
		"DEV":          true,
		"  Local  ":    true,
		"testing":      true,
		"prod":         false,
		" Production ": false,
		"staging":      false,
		"qa":           false,
	}

	for env, allowed := range tests {
		t.Run(env, func(t *testing.T) {
			err := ValidateAutoMigrateAllowed(env)
			if allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, allowed, IsDevelopmentEnv(env))
		})
	}
}

func TestInitializeEnvFile_LoadsWithoutOverriding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MACRO_TEST_NEW=from-file\nMACRO_TEST_SET=from-file\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "")
	t.Setenv("ENV_FILE", path)
	t.Setenv("MACRO_TEST_SET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("MACRO_TEST_NEW") })

	InitializeEnvFile(log.NewDiscardLogger())

	assert.Equal(t, "from-file", os.Getenv("MACRO_TEST_NEW"))
	assert.Equal(t, "from-env", os.Getenv("MACRO_TEST_SET"))
}

func TestInitializeEnvFile_Skip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skip.env")
	require.NoError(t, os.WriteFile(path, []byte("MACRO_TEST_SKIPPED=1\n"), 0o600))

	t.Setenv("SKIP_DOTENV", "true")
	t.Setenv("ENV_FILE", path)

	InitializeEnvFile(log.NewDiscardLogger())

	_, found := os.LookupEnv("MACRO_TEST_SKIPPED")
	assert.False(t, found)
}
