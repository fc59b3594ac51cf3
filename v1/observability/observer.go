// Package observability defines the hook store adapters call after every
// operation. Implementations typically turn the callbacks into metrics.
package observability

import "time"

// OperationContext describes one finished operation.
type OperationContext struct {
	// Component is the reporting backend, e.g. "mysql" or "mongodb".
	Component string

	// Operation is the action name: create, list, get, update, delete, ping.
	Operation string

	// Resource is the table or collection.
	Resource string

	// SubResource carries extra context such as the record id.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the number of records returned or affected.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives OperationContext values. Implementations must be safe
// for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a single observation out to several observers. Nil entries are
// skipped.
func Multi(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		if o != nil {
			o.ObserveOperation(ctx)
		}
	}
}
