package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clinic/internal/config"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
)

// Storages bundles what the controller needs from the storage layer: the
// persisters selected by the configured mode and the credential table.
// Persisters are nil in memory mode.
type Storages struct {
	Patients    PatientPersister
	Notes       NotePersister
	Credentials models.Credentials

	db *DB
}

// NewStorages opens the storage backend selected by cfg.Mode.
//
//   - memory: no persistence, built-in credentials.
//   - file: JSON patient document and CBOR note files under cfg.DataDir.
//   - sqlite, postgres: database at cfg.DSN, schema migrated on open.
//
// Outside memory mode credentials come from cfg.CredentialsFile().
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Str("mode", cfg.Mode).Msg("creating storages...")

	if cfg.Mode == config.ModeMemory {
		return &Storages{Credentials: DefaultCredentials()}, nil
	}

	s := new(Storages)
	switch cfg.Mode {
	case config.ModeFile:
		s.Patients = NewPatientFileStorage(cfg.PatientsFile())
		s.Notes = NewNoteFileStorage(cfg.RecordsDir())

	case config.ModeSQLite, config.ModePostgres:
		connect := NewConnectSQLite
		if cfg.Mode == config.ModePostgres {
			connect = NewConnectPostgres
		}

		db, err := connect(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.Mode, err)
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		sqlStorage := NewSQLStorage(db, log)
		s.Patients, s.Notes, s.db = sqlStorage, sqlStorage, db

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageMode, cfg.Mode)
	}

	credentials, err := LoadCredentials(ctx, cfg.CredentialsFile())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.Credentials = credentials

	return s, nil
}

// PatientStoreOptions returns the options wiring the persisters into a
// [PatientStore].
func (s *Storages) PatientStoreOptions() []PatientStoreOption {
	opts := make([]PatientStoreOption, 0, 2)
	if s.Patients != nil {
		opts = append(opts, WithPatientPersister(s.Patients))
	}
	if s.Notes != nil {
		opts = append(opts, WithNotePersister(s.Notes))
	}

	return opts
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
