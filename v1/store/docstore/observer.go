package docstore

import (
	"time"

	"github.com/Aleph-Alpha/gpucatalog/v1/observability"
)

func (s *Store) observeOperation(operation, subResource string, duration time.Duration, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   Backend,
		Operation:   operation,
		Resource:    CollectionName,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
