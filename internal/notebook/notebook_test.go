package notebook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rcliao/vibrant-notes/internal/config"
	"github.com/rcliao/vibrant-notes/internal/ident"
	"github.com/rcliao/vibrant-notes/internal/model"
	"github.com/rcliao/vibrant-notes/internal/persist"
	"github.com/rcliao/vibrant-notes/internal/store"
	"github.com/rcliao/vibrant-notes/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestNotebook(t *testing.T, blobs persist.Blobs, opts ...Option) (*Notebook, *ident.FixedClock) {
	t.Helper()
	clock := &ident.FixedClock{T: testNow}
	opts = append([]Option{WithClock(clock), WithLocation(time.UTC), WithSeed(false)}, opts...)
	nb, err := New(context.Background(), blobs, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { nb.Close() })
	return nb, clock
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	nb, _ := newTestNotebook(t, persist.NewMemoryBlobs())

	n, err := nb.CreateNote(ctx, "A", "B", model.ColorBlue)
	require.NoError(t, err)
	require.Len(t, nb.AllNotes(), 1)
	assert.Equal(t, model.StatusTodo, n.Status)
	assert.False(t, n.IsPinned)

	pinned, err := nb.TogglePin(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	out, err := nb.MoveViaDrag(ctx, n.ID, model.StatusTodo, model.StatusDone)
	require.NoError(t, err)
	assert.True(t, out.Celebrated)
	assert.Equal(t, n.ID, nb.Celebration().NoteID)

	require.NoError(t, nb.DeleteNote(ctx, n.ID))
	assert.Empty(t, nb.AllNotes())
	assert.True(t, nb.Celebration().Active, "deleting a completed note leaves the celebration alone")
}

func TestDirectSetStatusDoesNotCelebrate(t *testing.T) {
	ctx := context.Background()
	nb, _ := newTestNotebook(t, persist.NewMemoryBlobs())

	n, err := nb.CreateNote(ctx, "A", "B", "")
	require.NoError(t, err)
	got, err := nb.SetStatus(ctx, n.ID, model.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.False(t, nb.Celebration().Active)
}

func TestMoveViaDragSameColumnIgnored(t *testing.T) {
	ctx := context.Background()
	nb, _ := newTestNotebook(t, persist.NewMemoryBlobs())
	n, _ := nb.CreateNote(ctx, "A", "B", "")

	out, err := nb.MoveViaDrag(ctx, n.ID, model.StatusTodo, model.StatusTodo)
	require.NoError(t, err)
	assert.True(t, out.Ignored)
}

func TestCorruptStorageFallsBack(t *testing.T) {
	blobs := persist.NewMemoryBlobs()
	blobs.Set(persist.DefaultKey, []byte("not json"))

	nb, err := New(context.Background(), blobs, WithClock(&ident.FixedClock{T: testNow}))
	require.NoError(t, err)
	defer nb.Close()

	assert.ErrorIs(t, nb.LoadWarning(), persist.ErrCorrupt)
	assert.Len(t, nb.AllNotes(), 10)

	// The fallback overwrites the corrupt blob.
	reopened, err := New(context.Background(), blobs)
	require.NoError(t, err)
	defer reopened.Close()
	assert.NoError(t, reopened.LoadWarning())
	assert.Len(t, reopened.AllNotes(), 10)
}

func TestFilteredAndGroupedViews(t *testing.T) {
	ctx := context.Background()
	nb, clock := newTestNotebook(t, persist.NewMemoryBlobs())

	groceries, _ := nb.CreateNote(ctx, "Groceries", "milk", model.ColorGreen)
	clock.Advance(24 * time.Hour)
	plan, _ := nb.CreateNote(ctx, "Plan", "Milestones", model.ColorRed)
	_, _ = nb.CreateNote(ctx, "Call", "dentist", model.ColorRed)
	_, err := nb.TogglePin(ctx, groceries.ID)
	require.NoError(t, err)

	nb.SetSearchTerm("MIL")
	got := nb.FilteredNotes()
	require.Len(t, got, 2)

	nb.SetStatusFilter(model.StatusFilter(model.StatusDone))
	assert.Empty(t, nb.FilteredNotes())
	assert.Len(t, nb.PinnedNotes(), 1, "pinned ignores the filters")

	_, err = nb.SetStatus(ctx, plan.ID, model.StatusDone)
	require.NoError(t, err)
	require.Len(t, nb.FilteredNotes(), 1)

	nb.SetSearchTerm("")
	nb.SetStatusFilter("")
	grouped := nb.GroupedByDay()
	assert.Equal(t, []view.DayKey{"2026-06-16", "2026-06-15"}, grouped.Days)
	require.Len(t, grouped.Groups, 2)
	assert.Equal(t, "Today", grouped.Groups[0].Label)
	assert.Equal(t, model.ColorPurple, grouped.Groups[0].Color)
	assert.Len(t, grouped.Groups[0].Notes, 2)
	assert.Equal(t, model.ColorBlue, grouped.Groups[1].Color)

	cols := nb.Board()
	assert.Len(t, cols[0].Notes, 2)
	assert.Len(t, cols[2].Notes, 1)

	st := nb.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Pinned)
	assert.Equal(t, persist.DefaultKey, st.Key)
}

func TestSubscribeSeesCommands(t *testing.T) {
	ctx := context.Background()
	nb, _ := newTestNotebook(t, persist.NewMemoryBlobs())

	var kinds []store.EventKind
	nb.Subscribe(func(ev store.Event) { kinds = append(kinds, ev.Kind) })
	n, _ := nb.CreateNote(ctx, "A", "B", "")
	_, _ = nb.MoveViaDrag(ctx, n.ID, model.StatusTodo, model.StatusInProgress)

	assert.Equal(t, []store.EventKind{store.EventCreated, store.EventStatusChanged}, kinds)
}

func TestPersistenceFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	blobs := persist.NewMemoryBlobs()
	nb, _ := newTestNotebook(t, blobs)
	blobs.SetFailPuts(errors.New("quota exceeded"))

	n, err := nb.CreateNote(ctx, "A", "B", "")
	assert.ErrorIs(t, err, persist.ErrPersistence)
	assert.Len(t, nb.AllNotes(), 1)
	assert.NotEmpty(t, n.ID)
}

func TestOpenFromConfigSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "notes.db")
	cfg.Notes.Seed = false

	nb, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	n, err := nb.CreateNote(ctx, "A", "B", model.ColorYellow)
	require.NoError(t, err)
	require.NoError(t, nb.Close())

	again, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer again.Close()
	all := again.AllNotes()
	require.Len(t, all, 1)
	assert.Equal(t, n.ID, all[0].ID)
	assert.True(t, n.CreatedAt.Equal(all[0].CreatedAt))
	assert.Positive(t, again.Stats().SizeBytes)
}

func TestOpenFromConfigFile(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.Path = t.TempDir()

	nb, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Len(t, nb.AllNotes(), 10, "first run is seeded")
	require.NoError(t, nb.DeleteNote(ctx, "1"))
	require.NoError(t, nb.Close())

	again, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer again.Close()
	assert.Len(t, again.AllNotes(), 9)

	info, err := os.Stat(filepath.Join(cfg.Storage.Path, persist.DefaultKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, info.Size(), again.Stats().SizeBytes)
}

func TestOpenBlobsUnknownBackend(t *testing.T) {
	_, err := OpenBlobs(config.StorageConfig{Backend: "s3", Path: "x"})
	assert.Error(t, err)
}
