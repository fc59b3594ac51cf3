package mariadb

import (
	"database/sql/driver"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Server error numbers this package reacts to.
const (
	errUnknownDatabase     = 1049
	errDuplicateEntry      = 1062
	errRowIsReferenced     = 1451
	errNoReferencedRow     = 1452
	errLockWaitTimeout     = 1205
	errDeadlock            = 1213
	errTooManyConnections  = 1040
	errServerShutdown      = 1053
	errQueryInterrupted    = 1317
	errDataTooLong         = 1406
	errTruncatedWrongValue = 1292
)

var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when a value does not fit its column.
	ErrInvalidData = errors.New("invalid data")
)

// TranslateError maps gorm and MySQL driver errors to the package sentinels.
// Unknown errors are returned unchanged.
func (m *MariaDB) TranslateError(err error) error {
	return TranslateError(err)
}

// TranslateError is the package-level form of (*MariaDB).TranslateError.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errDuplicateEntry:
			return ErrDuplicateKey
		case errRowIsReferenced, errNoReferencedRow:
			return ErrForeignKey
		case errDataTooLong, errTruncatedWrongValue:
			return ErrInvalidData
		}
	}

	return err
}

// IsRetryable reports whether repeating the operation may succeed: lost
// connections, deadlocks, lock wait timeouts and server shutdowns.
func (m *MariaDB) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errLockWaitTimeout, errDeadlock, errTooManyConnections, errServerShutdown, errQueryInterrupted:
			return true
		}
	}
	return false
}

func isUnknownDatabase(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errUnknownDatabase
}
