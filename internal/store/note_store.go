package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
)

// Clock returns the current instant. Note timestamps are taken from it.
type Clock func() time.Time

// NoteStore owns the notes of a single patient.
//
// Notes are kept in insertion order with strictly increasing codes. When a
// [NotePersister] is configured, the store loads the patient's notes once on
// construction and rewrites the whole list after every mutation.
type NoteStore struct {
	phn       int64
	notes     []models.Note
	lastCode  int64
	persister NotePersister
	now       Clock
}

// NewNoteStore constructs the note store of the patient identified by phn.
//
// With a non-nil persister the notes are loaded eagerly. A failed load is
// logged and the store starts empty. The next assigned code follows the
// code of the last loaded note.
func NewNoteStore(ctx context.Context, phn int64, persister NotePersister, now Clock) *NoteStore {
	if now == nil {
		now = time.Now
	}

	s := &NoteStore{
		phn:       phn,
		persister: persister,
		now:       now,
	}

	if persister == nil {
		return s
	}

	notes, err := persister.LoadNotes(ctx, phn)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "store.NewNoteStore").
			Int64("phn", phn).
			Msg("error loading notes, starting empty")
		return s
	}

	s.notes = notes
	if len(notes) > 0 {
		s.lastCode = notes[len(notes)-1].Code
	}

	return s
}

// PHN returns the identifier of the patient the notes belong to.
func (s *NoteStore) PHN() int64 {
	return s.phn
}

// Create appends a note with the next sequential code and the current
// instant as its timestamp. Nothing changes when persisting fails.
func (s *NoteStore) Create(ctx context.Context, text string) (models.Note, error) {
	note := models.Note{
		Code:      s.lastCode + 1,
		Text:      text,
		Timestamp: s.now(),
	}
	next := append(slices.Clone(s.notes), note)

	if err := s.persist(ctx, next); err != nil {
		return models.Note{}, err
	}

	s.notes = next
	s.lastCode = note.Code
	return note, nil
}

// Search returns the note with the given code, or nil when absent.
func (s *NoteStore) Search(code int64) *models.Note {
	i := s.indexOf(code)
	if i < 0 {
		return nil
	}

	note := s.notes[i]
	return &note
}

// Retrieve returns every note whose text contains text, ignoring case,
// in storage order.
func (s *NoteStore) Retrieve(text string) []models.Note {
	needle := strings.ToLower(text)

	found := make([]models.Note, 0)
	for _, note := range s.notes {
		if strings.Contains(strings.ToLower(note.Text), needle) {
			found = append(found, note)
		}
	}

	return found
}

// Update replaces the text of the note with the given code and refreshes
// its timestamp. It reports false when no such note exists or the change
// could not be persisted.
func (s *NoteStore) Update(ctx context.Context, code int64, text string) (bool, error) {
	i := s.indexOf(code)
	if i < 0 {
		return false, nil
	}

	next := slices.Clone(s.notes)
	next[i].Text = text
	next[i].Timestamp = s.now()

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}

	s.notes = next
	return true, nil
}

// Delete removes the note with the given code. It reports false when no
// such note exists or the removal could not be persisted.
func (s *NoteStore) Delete(ctx context.Context, code int64) (bool, error) {
	i := s.indexOf(code)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.notes), i, i+1)

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}

	s.notes = next
	return true, nil
}

// List returns every note, newest first.
func (s *NoteStore) List() []models.Note {
	list := slices.Clone(s.notes)
	slices.Reverse(list)
	if list == nil {
		list = make([]models.Note, 0)
	}

	return list
}

// copyTo persists the notes under phn. The store keeps its own key until
// moveTo is called.
func (s *NoteStore) copyTo(ctx context.Context, phn int64) error {
	if s.persister == nil {
		return nil
	}

	if err := s.persister.DumpNotes(ctx, phn, s.notes); err != nil {
		return fmt.Errorf("error copying notes from %d to %d: %w", s.phn, phn, err)
	}

	return nil
}

// moveTo switches the store to phn after a successful copyTo and removes
// the notes persisted under the previous key. A failed removal is logged.
func (s *NoteStore) moveTo(ctx context.Context, phn int64) {
	oldPHN := s.phn
	s.phn = phn

	s.discard(ctx, oldPHN)
}

// discard removes the notes persisted under phn, logging any failure.
func (s *NoteStore) discard(ctx context.Context, phn int64) {
	if s.persister == nil {
		return
	}

	if err := s.persister.DeleteNotes(ctx, phn); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*NoteStore.discard").
			Int64("phn", phn).
			Msg("error removing stale notes")
	}
}

// purge removes every persisted note of the patient.
func (s *NoteStore) purge(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	return s.persister.DeleteNotes(ctx, s.phn)
}

func (s *NoteStore) indexOf(code int64) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool {
		return n.Code == code
	})
}

func (s *NoteStore) persist(ctx context.Context, notes []models.Note) error {
	if s.persister == nil {
		return nil
	}

	if err := s.persister.DumpNotes(ctx, s.phn, notes); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*NoteStore.persist").
			Int64("phn", s.phn).
			Msg("error dumping notes")
		return fmt.Errorf("error persisting notes of %d: %w", s.phn, err)
	}

	return nil
}
