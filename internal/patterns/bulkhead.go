package patterns

import (
	"fmt"
	"time"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/metrics"
)

// Bulkhead caps how many requests may hit a dependency at once. The
// document store gets one so a slow database cannot absorb every
// request-handling goroutine.
type Bulkhead struct {
	semaphore chan struct{}
	name      string
	service   string
}

// NewBulkhead creates a bulkhead admitting at most size concurrent
// executions.
func NewBulkhead(size int, name, service string) *Bulkhead {
	return &Bulkhead{
		semaphore: make(chan struct{}, size),
		name:      name,
		service:   service,
	}
}

// Execute runs fn if a slot frees up within one second, otherwise
// rejects the call.
func (b *Bulkhead) Execute(fn func() error) error {
	select {
	case b.semaphore <- struct{}{}:
		metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Inc()
		defer func() {
			<-b.semaphore
			metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Dec()
		}()
		return fn()

	case <-time.After(1 * time.Second):
		metrics.BulkheadRejectedRequests.WithLabelValues(b.service, b.name).Inc()
		return fmt.Errorf("bulkhead %s: timeout acquiring resource", b.name)
	}
}
