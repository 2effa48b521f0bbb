package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
	"github.com/goccy/go-json"
)

// patientTypeTag is the discriminator written into every patient entry.
const patientTypeTag = "Patient"

// patientFileStorage keeps the patient collection in one JSON document: an
// object keyed by PHN whose values are tagged patient entries.
type patientFileStorage struct {
	path string
}

// NewPatientFileStorage returns a [PatientPersister] backed by the JSON
// document at path.
func NewPatientFileStorage(path string) PatientPersister {
	return &patientFileStorage{path: path}
}

// patientEntry is the on-disk form of one patient.
type patientEntry struct {
	Type    string   `json:"__type__"`
	PHN     phnValue `json:"phn"`
	Name    string   `json:"name"`
	DOB     string   `json:"dob"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
}

// phnValue decodes a PHN written either as a JSON number or as text.
// A null PHN decodes as zero so the entry falls back to its key.
type phnValue int64

func (v *phnValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}

	data = bytes.Trim(data, `"`)
	phn, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid PHN %q: %w", data, err)
	}

	*v = phnValue(phn)
	return nil
}

func (s *patientFileStorage) LoadPatients(ctx context.Context) ([]models.Patient, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Patient{}, nil
		}
		log.Err(err).Str("func", "*patientFileStorage.LoadPatients").Msg("error reading patients file")
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoadingPatients, s.path, err)
	}

	var doc map[string]patientEntry
	if err = json.Unmarshal(data, &doc); err != nil {
		log.Err(err).Str("func", "*patientFileStorage.LoadPatients").Msg("error decoding patients file")
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadingPatients, s.path, err)
	}

	patients := make([]models.Patient, 0, len(doc))
	for key, entry := range doc {
		if entry.Type != patientTypeTag {
			log.Warn().Str("key", key).Str("type", entry.Type).Msg("skipping entry of unknown type")
			continue
		}

		// the key is authoritative when the entry lacks a PHN
		phn := int64(entry.PHN)
		if phn == 0 {
			if phn, err = strconv.ParseInt(key, 10, 64); err != nil {
				log.Warn().Str("key", key).Msg("skipping entry without PHN")
				continue
			}
		}

		patients = append(patients, models.Patient{
			PHN:       phn,
			Name:      entry.Name,
			BirthDate: entry.DOB,
			Phone:     entry.Phone,
			Email:     entry.Email,
			Address:   entry.Address,
		})
	}

	return patients, nil
}

func (s *patientFileStorage) DumpPatients(ctx context.Context, patients []models.Patient) error {
	doc := make(map[string]patientEntry, len(patients))
	for _, p := range patients {
		doc[strconv.FormatInt(p.PHN, 10)] = patientEntry{
			Type:    patientTypeTag,
			PHN:     phnValue(p.PHN),
			Name:    p.Name,
			DOB:     p.BirthDate,
			Phone:   p.Phone,
			Email:   p.Email,
			Address: p.Address,
		}
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrDumpingPatients, err)
	}

	if err = writeFile(s.path, payload); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*patientFileStorage.DumpPatients").Msg("error writing patients file")
		return fmt.Errorf("%w: %v", ErrDumpingPatients, err)
	}

	return nil
}

// writeFile replaces the file at path with payload, creating parent
// directories as needed.
func writeFile(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
