package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/artihcus/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Migrate(t *testing.T) {
	t.Run("migrates the configured sqlite database", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "portal.db")
		cfgPath := filepath.Join(dir, "application.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("db:\n  driver: sqlite\n  path: "+dbPath+"\n"), 0o644))
		root := NewRootCommand()
		root.cmd.SetArgs([]string{"migrate", "--config", cfgPath})

		err := root.cmd.ExecuteContext(context.Background())

		require.NoError(t, err)
		assert.Equal(t, config.DriverSQLite, root.cfg.Database.Driver)
		assert.FileExists(t, dbPath)
	})

	t.Run("fails for an invalid config file", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("db: [broken"), 0o644))
		root := NewRootCommand()
		root.cmd.SetArgs([]string{"migrate", "-c", cfgPath})

		err := root.cmd.ExecuteContext(context.Background())

		assert.Error(t, err)
	})
}

func TestRootCommand_Help(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.cmd.SetOut(&out)
	root.cmd.SetArgs([]string{"--help"})

	require.NoError(t, root.cmd.Execute())

	assert.Contains(t, out.String(), "serve")
	assert.Contains(t, out.String(), "migrate")
}
