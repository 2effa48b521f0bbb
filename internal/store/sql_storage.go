package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/models"
)

// maxTxAttempts bounds how many times a rewrite transaction is run when the
// driver reports a retryable failure.
const maxTxAttempts = 3

// SQLStorage persists patients and notes in a relational database. It
// implements both [PatientPersister] and [NotePersister]; every dump
// replaces the affected rows inside one transaction.
type SQLStorage struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLStorage constructs a [SQLStorage] on top of an open connection.
func NewSQLStorage(db *DB, logger *logger.Logger) *SQLStorage {
	logger.Debug().Msg("creating sql storage")
	return &SQLStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SQLStorage) LoadPatients(ctx context.Context) ([]models.Patient, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPatientsQuery(s.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*SQLStorage.LoadPatients").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w: %w", ErrLoadingPatients, ErrExecutingQuery, err)
	}
	defer rows.Close()

	patients := make([]models.Patient, 0)
	for rows.Next() {
		var p models.Patient
		if err = rows.Scan(&p.PHN, &p.Name, &p.BirthDate, &p.Phone, &p.Email, &p.Address); err != nil {
			log.Err(err).Str("func", "*SQLStorage.LoadPatients").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w: %w", ErrLoadingPatients, ErrScanningRows, err)
		}
		patients = append(patients, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrLoadingPatients, ErrScanningRows, err)
	}

	return patients, nil
}

func (s *SQLStorage) DumpPatients(ctx context.Context, patients []models.Patient) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.exec(ctx, tx, buildDeletePatientsQuery); err != nil {
			return err
		}
		if len(patients) == 0 {
			return nil
		}

		return s.exec(ctx, tx, func(b builder) (string, []any, error) {
			return buildInsertPatientsQuery(b, patients)
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStorage.DumpPatients").Msg("error rewriting patients")
		return fmt.Errorf("%w: %w", ErrDumpingPatients, err)
	}

	return nil
}

func (s *SQLStorage) LoadNotes(ctx context.Context, phn int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectNotesQuery(s.db.builder(), phn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*SQLStorage.LoadNotes").Int64("phn", phn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w: %w", ErrLoadingNotes, ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err = rows.Scan(&n.Code, &n.Text, &n.Timestamp); err != nil {
			log.Err(err).Str("func", "*SQLStorage.LoadNotes").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w: %w", ErrLoadingNotes, ErrScanningRows, err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrLoadingNotes, ErrScanningRows, err)
	}

	return notes, nil
}

func (s *SQLStorage) DumpNotes(ctx context.Context, phn int64, notes []models.Note) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.exec(ctx, tx, func(b builder) (string, []any, error) {
			return buildDeleteNotesQuery(b, phn)
		}); err != nil {
			return err
		}
		if len(notes) == 0 {
			return nil
		}

		return s.exec(ctx, tx, func(b builder) (string, []any, error) {
			return buildInsertNotesQuery(b, phn, notes)
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SQLStorage.DumpNotes").Int64("phn", phn).Msg("error rewriting notes")
		return fmt.Errorf("%w: %w", ErrDumpingNotes, err)
	}

	return nil
}

func (s *SQLStorage) DeleteNotes(ctx context.Context, phn int64) error {
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return s.exec(ctx, tx, func(b builder) (string, []any, error) {
			return buildDeleteNotesQuery(b, phn)
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDumpingNotes, err)
	}

	return nil
}

// inTx runs fn in a transaction, retrying the whole transaction when the
// failure is classified as retryable.
func (s *SQLStorage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil {
			return nil
		}

		switch s.classify(err) {
		case Retryable:
			logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying transaction")
			continue
		case UniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		default:
			return err
		}
	}

	return err
}

func (s *SQLStorage) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Err(rbErr).Str("func", "*SQLStorage.runTx").Msg("error rolling back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *SQLStorage) exec(ctx context.Context, tx *sql.Tx, build func(b builder) (string, []any, error)) error {
	query, args, err := build(s.db.builder())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLStorage) classify(err error) ErrorClassification {
	if s.db.errorClassificator == nil {
		return NonRetryable
	}

	return s.db.errorClassificator.Classify(err)
}
