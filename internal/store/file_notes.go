package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
	"github.com/fxamacker/cbor/v2"
)

// noteFileExt is the extension of per-patient note files.
const noteFileExt = ".dat"

// noteFileStorage keeps the notes of each patient in its own CBOR file
// named after the patient's PHN.
type noteFileStorage struct {
	dir string
}

// NewNoteFileStorage returns a [NotePersister] that stores note files in dir.
func NewNoteFileStorage(dir string) NotePersister {
	return &noteFileStorage{dir: dir}
}

// noteEncMode keeps timestamps at full precision.
var noteEncMode = func() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// noteEntry is the on-disk form of one note.
type noteEntry struct {
	Code      int64     `cbor:"1,keyasint"`
	Text      string    `cbor:"2,keyasint"`
	Timestamp time.Time `cbor:"3,keyasint"`
}

func (s *noteFileStorage) LoadNotes(ctx context.Context, phn int64) ([]models.Note, error) {
	path := s.pathOf(phn)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Note{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoadingNotes, path, err)
	}

	var entries []noteEntry
	if err = cbor.Unmarshal(data, &entries); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*noteFileStorage.LoadNotes").
			Str("path", path).
			Msg("error decoding notes file")
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadingNotes, path, err)
	}

	notes := make([]models.Note, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, models.Note{Code: e.Code, Text: e.Text, Timestamp: e.Timestamp})
	}

	return notes, nil
}

func (s *noteFileStorage) DumpNotes(ctx context.Context, phn int64, notes []models.Note) error {
	entries := make([]noteEntry, 0, len(notes))
	for _, n := range notes {
		entries = append(entries, noteEntry{Code: n.Code, Text: n.Text, Timestamp: n.Timestamp})
	}

	payload, err := noteEncMode.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrDumpingNotes, err)
	}

	if err = writeFile(s.pathOf(phn), payload); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*noteFileStorage.DumpNotes").Msg("error writing notes file")
		return fmt.Errorf("%w: %v", ErrDumpingNotes, err)
	}

	return nil
}

func (s *noteFileStorage) DeleteNotes(_ context.Context, phn int64) error {
	err := os.Remove(s.pathOf(phn))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove notes of %d: %v", ErrDumpingNotes, phn, err)
	}

	return nil
}

func (s *noteFileStorage) pathOf(phn int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(phn, 10)+noteFileExt)
}
