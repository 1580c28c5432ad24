package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteBlobs(t *testing.T) *SQLiteBlobs {
	t.Helper()
	s, err := NewSQLiteBlobs(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteBlobsPutGet(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteBlobs(t)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrAbsent)

	require.NoError(t, s.Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, s.Put(ctx, "k", []byte(`[2]`)))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestSQLiteBlobsPathCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "dir", "notes.db")
	s, err := NewSQLiteBlobs(dbPath)
	require.NoError(t, err)
	s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestSQLiteBlobsGatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(newTestSQLiteBlobs(t), "", nil)

	want := testNotes()
	require.NoError(t, g.Save(ctx, want))
	got, err := g.Load(ctx)
	require.NoError(t, err)
	assertSameNotes(t, want, got)
}

func TestFileBlobs(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	f := NewFileBlobs(fs, "data/notes")

	_, err := f.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrAbsent)

	require.NoError(t, f.Put(ctx, "k", []byte("old")))
	require.NoError(t, f.Put(ctx, "k", []byte("new")))

	got, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := afero.ReadDir(fs, "data/notes")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileBlobsReadOnlyFs(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "d/k.json", []byte("[]"), 0o644))

	f := NewFileBlobs(afero.NewReadOnlyFs(base), "d")
	got, err := f.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	assert.Error(t, f.Put(ctx, "k", []byte("x")))
}

func TestBlobSizes(t *testing.T) {
	ctx := context.Background()
	sqlite, err := NewSQLiteBlobs(filepath.Join(t.TempDir(), "size.db"))
	require.NoError(t, err)
	defer sqlite.Close()

	media := map[string]interface {
		Blobs
		Sizer
	}{
		"sqlite": sqlite,
		"file":   NewFileBlobs(afero.NewMemMapFs(), "notes"),
		"memory": NewMemoryBlobs(),
	}
	for name, m := range media {
		t.Run(name, func(t *testing.T) {
			_, err := m.Size(ctx, "k")
			assert.ErrorIs(t, err, ErrAbsent)

			require.NoError(t, m.Put(ctx, "k", []byte(`[{"title":"café"}]`)))
			n, err := m.Size(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, int64(len(`[{"title":"café"}]`)), n)
		})
	}
}
