package store

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/MKhiriev/go-clinic/internal/mock"
	"github.com/MKhiriev/go-clinic/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixedClock returns a clock that advances one minute per call.
func fixedClock() Clock {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
}

func TestNoteStore_CreateAssignsSequentialCodes(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 9790012000, nil, fixedClock())

	first, err := s.Create(ctx, "Patient complains of headache.")
	require.NoError(t, err)
	second, err := s.Create(ctx, "Prescribed rest.")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Code)
	assert.Equal(t, int64(2), second.Code)
	assert.True(t, second.Timestamp.After(first.Timestamp))
	assert.Equal(t, int64(9790012000), s.PHN())
}

func TestNoteStore_CodesNeverReused(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, nil)

	_, _ = s.Create(ctx, "a")
	_, _ = s.Create(ctx, "b")
	ok, err := s.Delete(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)

	n, err := s.Create(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Code)
}

func TestNoteStore_Search(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, nil)
	_, _ = s.Create(ctx, "first")

	got := s.Search(1)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Text)

	assert.Nil(t, s.Search(42))

	// returned note is a copy
	got.Text = "changed"
	assert.Equal(t, "first", s.Search(1).Text)
}

func TestNoteStore_Retrieve(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, nil)
	_, _ = s.Create(ctx, "Headache since Monday")
	_, _ = s.Create(ctx, "Blood pressure normal")
	_, _ = s.Create(ctx, "headache persists")

	tests := []struct {
		name  string
		text  string
		codes []int64
	}{
		{name: "case insensitive", text: "HEADACHE", codes: []int64{1, 3}},
		{name: "single match", text: "pressure", codes: []int64{2}},
		{name: "no match", text: "fracture", codes: []int64{}},
		{name: "empty matches all", text: "", codes: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := s.Retrieve(tt.text)
			require.NotNil(t, found)

			codes := make([]int64, 0, len(found))
			for _, n := range found {
				codes = append(codes, n.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestNoteStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, fixedClock())
	created, _ := s.Create(ctx, "draft")

	ok, err := s.Update(ctx, created.Code, "final")
	require.NoError(t, err)
	assert.True(t, ok)

	got := s.Search(created.Code)
	require.NotNil(t, got)
	assert.Equal(t, "final", got.Text)
	assert.True(t, got.Timestamp.After(created.Timestamp))

	ok, err = s.Update(ctx, 99, "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, nil)
	_, _ = s.Create(ctx, "a")

	ok, err := s.Delete(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, s.Search(1))
	assert.Empty(t, s.List())
}

func TestNoteStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewNoteStore(ctx, 1, nil, nil)

	list := s.List()
	require.NotNil(t, list)
	assert.Empty(t, list)

	for _, text := range []string{"a", "b", "c"} {
		_, _ = s.Create(ctx, text)
	}

	list = s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{list[0].Code, list[1].Code, list[2].Code})

	// listing does not reorder the store
	assert.Equal(t, "a", s.Retrieve("")[0].Text)
}

func TestNewNoteStore_LoadsPersistedNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return([]models.Note{
		{Code: 2, Text: "old"},
		{Code: 5, Text: "newer"},
	}, nil)

	s := NewNoteStore(ctx, 7, persister, nil)
	require.Len(t, s.List(), 2)

	persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Len(3)).Return(nil)

	n, err := s.Create(ctx, "next")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n.Code)
}

func TestNewNoteStore_LoadFailureStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return(nil, ErrLoadingNotes)

	s := NewNoteStore(ctx, 7, persister, nil)
	assert.Empty(t, s.List())

	persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Len(1)).Return(nil)
	n, err := s.Create(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Code)
}

func TestNoteStore_PersistsEveryMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return([]models.Note{}, nil)
	s := NewNoteStore(ctx, 7, persister, nil)

	gomock.InOrder(
		persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Len(1)).Return(nil),
		persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Len(1)).Return(nil),
		persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Len(0)).Return(nil),
	)

	_, err := s.Create(ctx, "a")
	require.NoError(t, err)
	_, err = s.Update(ctx, 1, "b")
	require.NoError(t, err)
	_, err = s.Delete(ctx, 1)
	require.NoError(t, err)

	// misses and reads never persist
	_, _ = s.Update(ctx, 1, "x")
	_, _ = s.Delete(ctx, 1)
	_ = s.Retrieve("a")
	_ = s.List()
}

func TestNoteStore_DumpFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()
	dumpErr := errors.New("disk full")

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return(nil, nil)
	persister.EXPECT().DumpNotes(gomock.Any(), int64(7), gomock.Any()).Return(dumpErr)

	s := NewNoteStore(ctx, 7, persister, nil)
	_, err := s.Create(ctx, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, dumpErr)
}

func TestNoteStore_DumpFailureLeavesNotesUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()
	dumpErr := errors.New("disk full")

	loaded := []models.Note{{Code: 1, Text: "Headache"}, {Code: 2, Text: "Rest"}}
	persister.EXPECT().LoadNotes(gomock.Any(), int64(5)).Return(slices.Clone(loaded), nil)
	s := NewNoteStore(ctx, 5, persister, fixedClock())
	before := s.List()

	persister.EXPECT().DumpNotes(gomock.Any(), int64(5), gomock.Any()).Return(dumpErr).Times(3)

	_, err := s.Create(ctx, "Fever")
	assert.ErrorIs(t, err, dumpErr)
	assert.Equal(t, before, s.List())

	updated, err := s.Update(ctx, 1, "Migraine")
	assert.ErrorIs(t, err, dumpErr)
	assert.False(t, updated)
	assert.Equal(t, "Headache", s.Search(1).Text)

	deleted, err := s.Delete(ctx, 2)
	assert.ErrorIs(t, err, dumpErr)
	assert.False(t, deleted)
	assert.NotNil(t, s.Search(2))
	assert.Equal(t, before, s.List())

	// the next successful create takes the code the failed one did not use
	persister.EXPECT().DumpNotes(gomock.Any(), int64(5), gomock.Len(3)).Return(nil)
	n, err := s.Create(ctx, "Fever")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Code)
}

func TestNoteStore_CopyThenMove(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return([]models.Note{{Code: 1, Text: "a"}}, nil)
	s := NewNoteStore(ctx, 7, persister, nil)

	gomock.InOrder(
		persister.EXPECT().DumpNotes(gomock.Any(), int64(8), gomock.Len(1)).Return(nil),
		persister.EXPECT().DeleteNotes(gomock.Any(), int64(7)).Return(nil),
	)

	require.NoError(t, s.copyTo(ctx, 8))
	assert.Equal(t, int64(7), s.PHN())

	s.moveTo(ctx, 8)
	assert.Equal(t, int64(8), s.PHN())
}

func TestNoteStore_FailedCopyKeepsKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	persister := mock.NewMockNotePersister(ctrl)
	ctx := context.Background()

	persister.EXPECT().LoadNotes(gomock.Any(), int64(7)).Return(nil, nil)
	persister.EXPECT().DumpNotes(gomock.Any(), int64(8), gomock.Any()).Return(errors.New("disk full"))

	s := NewNoteStore(ctx, 7, persister, nil)
	require.Error(t, s.copyTo(ctx, 8))
	assert.Equal(t, int64(7), s.PHN())
}
