package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/MKhiriev/go-clinic/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortByPHN(patients []models.Patient) {
	sort.Slice(patients, func(i, j int) bool { return patients[i].PHN < patients[j].PHN })
}

func TestPatientFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clinic", "patients.json")
	s := NewPatientFileStorage(path)

	want := []models.Patient{hughJackman, tomJones}
	require.NoError(t, s.DumpPatients(ctx, want))

	got, err := s.LoadPatients(ctx)
	require.NoError(t, err)
	sortByPHN(got)
	assert.Equal(t, want, got)
}

func TestPatientFileStorage_DocumentShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, NewPatientFileStorage(path).DumpPatients(ctx, []models.Patient{tomJones}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	entry, ok := doc["9798884444"]
	require.True(t, ok, "document must be keyed by PHN text")
	assert.Equal(t, "Patient", entry["__type__"])
	assert.Equal(t, "1980-01-09", entry["dob"])
	assert.Equal(t, "Tom Jones", entry["name"])
}

func TestPatientFileStorage_LoadAcceptsTextPHN(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patients.json")
	doc := `{
  "9798884444": {"__type__": "Patient", "phn": "9798884444", "name": "Tom Jones", "dob": "1980-01-09",
                 "phone": "250 203 1010", "email": "tom.jones@gmail.com", "address": "300 Hillside Ave, Victoria"},
  "9792226666": {"__type__": "Patient", "phn": 9792226666, "name": "Sally Jones"},
  "1": {"__type__": "Doctor", "phn": 1, "name": "Dr. Who"}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	got, err := NewPatientFileStorage(path).LoadPatients(ctx)
	require.NoError(t, err)
	sortByPHN(got)

	require.Len(t, got, 2)
	assert.Equal(t, int64(9792226666), got[0].PHN)
	assert.Equal(t, tomJones, got[1])
}

func TestPatientFileStorage_LoadFallsBackToKey(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"42": {"__type__": "Patient", "name": "No PHN"}}`), 0o600))

	got, err := NewPatientFileStorage(path).LoadPatients(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].PHN)
}

func TestPatientFileStorage_LoadNullPHNFallsBackToKey(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patients.json")
	doc := `{
  "42": {"__type__": "Patient", "phn": null, "name": "Null PHN"},
  "9792226666": {"__type__": "Patient", "phn": 9792226666, "name": "Sally Jones"}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	got, err := NewPatientFileStorage(path).LoadPatients(ctx)
	require.NoError(t, err)
	sortByPHN(got)

	require.Len(t, got, 2)
	assert.Equal(t, int64(42), got[0].PHN)
	assert.Equal(t, "Null PHN", got[0].Name)
	assert.Equal(t, int64(9792226666), got[1].PHN)
}

func TestPatientFileStorage_LoadMissingFile(t *testing.T) {
	got, err := NewPatientFileStorage(filepath.Join(t.TempDir(), "absent.json")).LoadPatients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPatientFileStorage_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewPatientFileStorage(path).LoadPatients(context.Background())
	assert.ErrorIs(t, err, ErrLoadingPatients)
}

func TestPatientFileStorage_DumpReplacesDocument(t *testing.T) {
	ctx := context.Background()
	s := NewPatientFileStorage(filepath.Join(t.TempDir(), "patients.json"))

	require.NoError(t, s.DumpPatients(ctx, []models.Patient{tomJones, sallyJones}))
	require.NoError(t, s.DumpPatients(ctx, []models.Patient{hughJackman}))

	got, err := s.LoadPatients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Patient{hughJackman}, got)
}

func TestNoteFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "records")
	s := NewNoteFileStorage(dir)

	ts := time.Date(2024, 3, 1, 9, 30, 15, 123456789, time.UTC)
	want := []models.Note{
		{Code: 1, Text: "Headache", Timestamp: ts},
		{Code: 3, Text: "Follow-up: better", Timestamp: ts.Add(time.Hour)},
	}
	require.NoError(t, s.DumpNotes(ctx, tomJones.PHN, want))
	assert.FileExists(t, filepath.Join(dir, "9798884444.dat"))

	got, err := s.LoadNotes(ctx, tomJones.PHN)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].Code, got[i].Code)
		assert.Equal(t, want[i].Text, got[i].Text)
		assert.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestNoteFileStorage_LoadMissingFile(t *testing.T) {
	got, err := NewNoteFileStorage(t.TempDir()).LoadNotes(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNoteFileStorage_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.dat"), []byte{0xff, 0x00, 0x13}, 0o600))

	_, err := NewNoteFileStorage(dir).LoadNotes(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLoadingNotes)
}

func TestNoteFileStorage_DeleteNotes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewNoteFileStorage(dir)

	require.NoError(t, s.DumpNotes(ctx, 1, []models.Note{{Code: 1, Text: "a"}}))
	require.NoError(t, s.DeleteNotes(ctx, 1))
	assert.NoFileExists(t, filepath.Join(dir, "1.dat"))

	// deleting twice is fine
	require.NoError(t, s.DeleteNotes(ctx, 1))
}

func TestFileStorage_PatientStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	opts := []PatientStoreOption{
		WithPatientPersister(NewPatientFileStorage(filepath.Join(dir, "patients.json"))),
		WithNotePersister(NewNoteFileStorage(filepath.Join(dir, "records"))),
	}

	s := NewPatientStore(ctx, opts...)
	p, err := s.Create(ctx, tomJones)
	require.NoError(t, err)
	_, err = p.Record().CreateNote(ctx, "first")
	require.NoError(t, err)
	_, err = p.Record().CreateNote(ctx, "second")
	require.NoError(t, err)

	renamed := tomJones
	renamed.PHN = 9790000001
	require.NoError(t, s.Update(ctx, tomJones.PHN, renamed))
	assert.NoFileExists(t, filepath.Join(dir, "records", "9798884444.dat"))

	reopened := NewPatientStore(ctx, opts...)
	got := reopened.Search(renamed.PHN)
	require.NotNil(t, got)
	require.Len(t, got.Record().ListNotes(), 2)

	n, err := got.Record().CreateNote(ctx, "third")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Code)
}
