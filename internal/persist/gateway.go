package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rcliao/vibrant-notes/internal/model"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "vibrant-notes-data"

var (
	// ErrCorrupt matches any *CorruptDataError.
	ErrCorrupt = errors.New("stored notes are corrupt")
	// ErrPersistence matches any *PersistenceError.
	ErrPersistence = errors.New("notes could not be saved")
)

// CorruptDataError reports a stored blob that could not be decoded.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data under %q: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error        { return e.Err }
func (e *CorruptDataError) Is(target error) bool { return target == ErrCorrupt }

// PersistenceError reports a failed write. The in-memory state it was
// trying to save is still valid.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error        { return e.Err }
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Gateway serializes the full note collection into one blob.
type Gateway struct {
	blobs  Blobs
	key    string
	logger *slog.Logger
}

// NewGateway returns a gateway over blobs. An empty key means DefaultKey;
// a nil logger discards output.
func NewGateway(blobs Blobs, key string, logger *slog.Logger) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Gateway{blobs: blobs, key: key, logger: logger}
}

// Key returns the storage key in use.
func (g *Gateway) Key() string { return g.key }

// wireNote is the stored form of a note. createdAt travels as an ISO-8601 string.
type wireNote struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	FolderColor string `json:"folderColor"`
	IsPinned    bool   `json:"isPinned"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type envelope struct {
	Notes []wireNote `json:"notes"`
}

// Load reads the stored collection. It returns ErrAbsent when nothing was
// saved yet and a *CorruptDataError when the blob cannot be decoded.
func (g *Gateway) Load(ctx context.Context) ([]model.Note, error) {
	data, err := g.blobs.Get(ctx, g.key)
	if errors.Is(err, ErrAbsent) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", g.key, err)
	}

	notes, err := Decode(data)
	if err != nil {
		cerr := &CorruptDataError{Key: g.key, Err: err}
		g.logger.Error("failed to parse saved notes", "key", g.key, "error", err)
		return nil, cerr
	}
	return notes, nil
}

// Save overwrites the stored blob with the full collection.
func (g *Gateway) Save(ctx context.Context, notes []model.Note) error {
	data, err := Encode(notes)
	if err != nil {
		return &PersistenceError{Key: g.key, Err: err}
	}
	if err := g.blobs.Put(ctx, g.key, data); err != nil {
		g.logger.Error("failed to save notes", "key", g.key, "count", len(notes), "error", err)
		return &PersistenceError{Key: g.key, Err: err}
	}
	return nil
}

// Encode renders notes in the stored format: a bare JSON array.
func Encode(notes []model.Note) ([]byte, error) {
	out := make([]wireNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, wireNote{
			ID:          n.ID,
			Title:       n.Title,
			Content:     n.Content,
			FolderColor: string(n.FolderColor),
			IsPinned:    n.IsPinned,
			Status:      string(n.Status),
			CreatedAt:   n.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return json.Marshal(out)
}

// Decode parses either a bare array or an object with a "notes" array.
func Decode(data []byte) ([]model.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty blob")
	}

	var raw []wireNote
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, err
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, err
		}
		if env.Notes == nil {
			return nil, errors.New(`object has no "notes" array`)
		}
		raw = env.Notes
	default:
		return nil, fmt.Errorf("unexpected leading byte %q", trimmed[0])
	}

	notes := make([]model.Note, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, w := range raw {
		if w.ID == "" {
			return nil, fmt.Errorf("note %d has no id", i)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("duplicate note id %q", w.ID)
		}
		seen[w.ID] = true

		created, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("note %q createdAt: %w", w.ID, err)
		}
		status := model.StatusTodo
		if w.Status != "" {
			if status, err = model.ParseStatus(w.Status); err != nil {
				return nil, fmt.Errorf("note %q: %w", w.ID, err)
			}
		}
		color := model.ColorPurple
		if w.FolderColor != "" {
			if color, err = model.ParseFolderColor(w.FolderColor); err != nil {
				return nil, fmt.Errorf("note %q: %w", w.ID, err)
			}
		}
		notes = append(notes, model.Note{
			ID:          w.ID,
			Title:       w.Title,
			Content:     w.Content,
			FolderColor: color,
			IsPinned:    w.IsPinned,
			Status:      status,
			CreatedAt:   created,
		})
	}
	return notes, nil
}
