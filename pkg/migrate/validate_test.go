package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDir_Migrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDir_RejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "001_bad.sql")
	require.NoError(t, os.WriteFile(path, []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	require.Error(t, ValidateDir(dir))
}

func TestValidateDir_RequiresGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "20260110120000_missing_markers.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE t (id int);\n"), 0o644))

	require.Error(t, ValidateDir(dir))
}
