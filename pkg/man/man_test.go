package man

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManCmd(t *testing.T) {
	cmd := NewManCmd()

	assert.NotNil(t, cmd)
	assert.Equal(t, "man", cmd.Use)
	assert.True(t, cmd.Hidden)
	assert.NotNil(t, cmd.RunE)
}

func TestManCmdOutput(t *testing.T) {
	root := &cobra.Command{
		Use:   "labels2veracode",
		Short: "Bulk-create key/value labels in a Veracode security tenant",
	}
	root.AddCommand(NewManCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"man"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "labels2veracode")
}
