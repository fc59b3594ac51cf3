package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrRecordNotFound is returned when a lookup matches no document.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned on unique index violations.
	ErrDuplicateKey = errors.New("duplicate key violation")
)

// TranslateError maps driver errors to the sentinels above and returns
// anything else unchanged.
func (m *MongoDB) TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrRecordNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	}
	return err
}

// IsRetryable reports network errors, timeouts and errors the server labels
// as retryable.
func (m *MongoDB) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}

	var labeled mongo.LabeledError
	if errors.As(err, &labeled) {
		return labeled.HasErrorLabel("RetryableWriteError") || labeled.HasErrorLabel("TransientTransactionError")
	}
	return false
}
