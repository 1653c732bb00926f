package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPasswordFile_ReadsSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0o600))

	db := Database{PasswordFile: path}
	require.NoError(t, db.applyPasswordFile())

	assert.Equal(t, "s3cret", db.Password)
}

func TestApplyPasswordFile_EnvPasswordWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db_password")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))

	db := Database{Password: "from-env", PasswordFile: path}
	require.NoError(t, db.applyPasswordFile())

	assert.Equal(t, "from-env", db.Password)
}

func TestApplyPasswordFile_MissingFileErrors(t *testing.T) {
	db := Database{PasswordFile: filepath.Join(t.TempDir(), "nope")}
	assert.Error(t, db.applyPasswordFile())
}

func TestApplyPasswordFile_NoSourcesIsNoop(t *testing.T) {
	db := Database{}
	require.NoError(t, db.applyPasswordFile())
	assert.Empty(t, db.Password)
}
