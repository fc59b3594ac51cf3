package sqlstore

import (
	"time"

	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
)

// observeOperation notifies the observer about an operation if one is
// configured. subResource is the card id, when the operation has one.
func (s *Store) observeOperation(operation, subResource string, duration time.Duration, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   s.Backend(),
		Operation:   operation,
		Resource:    TableName,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
