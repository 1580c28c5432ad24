package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/vibrant-notes/internal/notebook"
	"github.com/rcliao/vibrant-notes/internal/persist"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func newTestNotebook(t *testing.T) (*notebook.Notebook, *persist.MemoryBlobs) {
	t.Helper()
	blobs := persist.NewMemoryBlobs()
	nb, err := notebook.New(context.Background(), blobs, notebook.WithSeed(false))
	require.NoError(t, err)
	t.Cleanup(func() { nb.Close() })
	return nb, blobs
}

func TestRemoveMissingNoteOnlyWarns(t *testing.T) {
	nb, _ := newTestNotebook(t)
	cmd, out, errOut := newTestCmd()

	require.NoError(t, removeNote(cmd, nb, "nope"))
	assert.Equal(t, `{"ok":false,"id":"nope","error":"not found"}`+"\n", out.String())
	assert.Equal(t, "warning: rm: note not found: nope\n", errOut.String())
}

func TestRemoveTwice(t *testing.T) {
	nb, _ := newTestNotebook(t)
	n, err := nb.CreateNote(context.Background(), "A", "B", "")
	require.NoError(t, err)

	cmd, out, errOut := newTestCmd()
	require.NoError(t, removeNote(cmd, nb, n.ID))
	assert.Contains(t, out.String(), `"ok":true`)
	assert.Empty(t, errOut.String())

	cmd, out, errOut = newTestCmd()
	require.NoError(t, removeNote(cmd, nb, n.ID))
	assert.Contains(t, out.String(), `"ok":false`)
	assert.Contains(t, errOut.String(), "warning: rm:")
	assert.Empty(t, nb.AllNotes())
}

func TestRemoveSaveFailureWarns(t *testing.T) {
	nb, blobs := newTestNotebook(t)
	n, err := nb.CreateNote(context.Background(), "A", "B", "")
	require.NoError(t, err)
	blobs.SetFailPuts(errors.New("disk full"))

	cmd, out, errOut := newTestCmd()
	require.NoError(t, removeNote(cmd, nb, n.ID))
	assert.Contains(t, out.String(), `"ok":true`)
	assert.Contains(t, errOut.String(), "warning: rm:")
}

func TestRemoveEmptyIDFails(t *testing.T) {
	nb, _ := newTestNotebook(t)
	cmd, out, _ := newTestCmd()

	assert.Error(t, removeNote(cmd, nb, ""))
	assert.Empty(t, out.String())
}
