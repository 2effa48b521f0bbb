package store

import (
	"errors"
	"fmt"
)

// ErrIllegalOperation is the root of every store-level precondition
// violation. The specific errors below wrap it, so callers can match either
// the precise condition or the whole class with [errors.Is].
var ErrIllegalOperation = errors.New("illegal operation")

// Patient store precondition violations.
var (
	// ErrPatientAlreadyExists is returned when creating a patient whose PHN
	// is already present in the store.
	ErrPatientAlreadyExists = fmt.Errorf("%w: patient with this PHN already exists", ErrIllegalOperation)

	// ErrPatientNotFound is returned when an operation targets a PHN that
	// is not present in the store.
	ErrPatientNotFound = fmt.Errorf("%w: patient was not found", ErrIllegalOperation)

	// ErrPatientIsCurrent is returned when updating or deleting the
	// currently selected patient.
	ErrPatientIsCurrent = fmt.Errorf("%w: patient is currently selected", ErrIllegalOperation)

	// ErrPHNCollision is returned when an update would rename a patient to
	// a PHN that belongs to a different record.
	ErrPHNCollision = fmt.Errorf("%w: PHN belongs to another patient", ErrIllegalOperation)
)

// Persistence errors. Load-time failures are logged and swallowed by the
// stores; dump-time failures are returned to the caller.
var (
	// ErrLoadingPatients is returned by a [PatientPersister] that cannot
	// read or decode the patient collection.
	ErrLoadingPatients = errors.New("error loading patients")

	// ErrDumpingPatients is returned by a [PatientPersister] that cannot
	// write the patient collection.
	ErrDumpingPatients = errors.New("error dumping patients")

	// ErrLoadingNotes is returned by a [NotePersister] that cannot read or
	// decode a patient's notes.
	ErrLoadingNotes = errors.New("error loading notes")

	// ErrDumpingNotes is returned by a [NotePersister] that cannot write a
	// patient's notes.
	ErrDumpingNotes = errors.New("error dumping notes")

	// ErrDuplicateKey is returned when the database rejects a row because of
	// a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownStorageMode is returned by [NewStorages] for an unsupported
	// storage mode.
	ErrUnknownStorageMode = errors.New("unknown storage mode")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
