package patterns

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreaker("TestStore", "shop-service-test")
	boom := errors.New("store down")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen.String(), cb.GetState())

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreakerPassesResultsThrough(t *testing.T) {
	cb := NewCircuitBreaker("TestStorePass", "shop-service-test")

	result, err := cb.Execute(func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, gobreaker.StateClosed.String(), cb.GetState())
}

func TestFormatErrorNamesTheCircuit(t *testing.T) {
	err := FormatError("Mongo", gobreaker.ErrOpenState)
	assert.Contains(t, err.Error(), "Mongo")
	assert.Contains(t, err.Error(), "open")

	passthrough := errors.New("plain failure")
	assert.Equal(t, passthrough, FormatError("Mongo", passthrough))
}

func TestBulkheadLimitsConcurrency(t *testing.T) {
	b := NewBulkhead(1, "test", "shop-service-test")

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = b.Execute(func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := b.Execute(func() error { return nil })
	assert.Error(t, err, "second caller should be rejected while the slot is held")

	close(release)
}
