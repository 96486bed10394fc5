package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poisepms/poise/internal/testutil"
)

func TestRootCmd_Help(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"--help"})

	output, err := testutil.ExecuteCommand(t, root)
	require.NoError(t, err)
	assert.Contains(t, output, "project")
	assert.Contains(t, output, "config")
}

func TestRootCmd_FindsProjectCommands(t *testing.T) {
	root := NewRootCmd()
	for _, path := range [][]string{
		{"project", "add"},
		{"project", "finalise"},
		{"config", "init"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.NotNil(t, cmd)
	}
}
