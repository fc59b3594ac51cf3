package observability

import (
	"errors"
	"testing"
	"time"
)

func TestObserverFunc(t *testing.T) {
	var got OperationContext
	var o Observer = ObserverFunc(func(ctx OperationContext) { got = ctx })

	o.ObserveOperation(OperationContext{Component: "mysql", Operation: "get", Duration: time.Millisecond})

	if got.Component != "mysql" || got.Operation != "get" {
		t.Fatalf("unexpected context %#v", got)
	}
}

func TestMultiSkipsNil(t *testing.T) {
	calls := 0
	count := ObserverFunc(func(OperationContext) { calls++ })

	Multi(count, nil, count).ObserveOperation(OperationContext{Error: errors.New("boom")})

	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}
