package store

// ErrorClassification tells the SQL storage what to do with a failed
// statement.
type ErrorClassification int

const (
	// NonRetryable failures are returned to the caller as they are.
	NonRetryable ErrorClassification = iota

	// Retryable failures may succeed if the transaction is run again
	// (lost connection, deadlock, busy database).
	Retryable

	// UniqueViolation failures are reported as [ErrDuplicateKey].
	UniqueViolation
)

// ErrorClassificator classifies driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
